package model

import "github.com/zerefharsh/amp-csr-portal/pkg/apperror"

// Pagination represents common pagination parameters. Page and Limit are
// both 1-based; anything lower is rejected at the service boundary.
type Pagination struct {
	Page  int `json:"page" form:"page"`
	Limit int `json:"limit" form:"limit"`
}

// Normalize fills defaults for zero values and rejects out-of-range
// pagination. Out-of-range values are a caller mistake, not something to
// silently clamp.
func (p Pagination) Normalize() (Pagination, error) {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Page < 1 {
		return p, apperror.Validationf("page must be >= 1, got %d", p.Page)
	}
	if p.Limit < 1 {
		return p, apperror.Validationf("limit must be >= 1, got %d", p.Limit)
	}
	if p.Limit > MaxPageLimit {
		return p, apperror.Validationf("limit must be <= %d, got %d", MaxPageLimit, p.Limit)
	}
	return p, nil
}

// DefaultPageLimit is applied when a list request does not specify one.
const DefaultPageLimit = 10

// MaxPageLimit caps how many rows a single page may request.
const MaxPageLimit = 100

// PagedResult is the envelope every paginated list operation returns.
// TotalPages is derived from Total and Limit; a page beyond the data still
// reports the full filtered Total.
type PagedResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPagedResult fills the envelope, computing TotalPages with a ceiling
// division.
func NewPagedResult[T any](data []T, total, page, limit int) *PagedResult[T] {
	if data == nil {
		data = []T{}
	}
	return &PagedResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}
}
