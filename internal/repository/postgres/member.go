package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
	"github.com/zerefharsh/amp-csr-portal/internal/repository"
	"github.com/zerefharsh/amp-csr-portal/pkg/apperror"
)

type memberRepository struct {
	BaseRepository
}

func NewMemberRepository(base BaseRepository) repository.MemberRepository {
	return &memberRepository{base}
}

// memberDerivedColumns computes the per-member aggregates on every read.
// They are never persisted, so they can never go stale. Yearly amounts are
// normalized to their monthly equivalent before summing.
const memberDerivedColumns = `
	(SELECT COUNT(*) FROM subscriptions s
		WHERE s.member_id = m.id AND s.status <> 'cancelled') AS total_subscriptions,
	COALESCE((SELECT SUM(CASE WHEN s.billing_cycle = 'yearly' THEN s.amount / 12 ELSE s.amount END)
		FROM subscriptions s
		WHERE s.member_id = m.id AND s.status = 'active'), 0) AS monthly_revenue,
	EXISTS(SELECT 1 FROM subscriptions s
		WHERE s.member_id = m.id AND s.status = 'overdue') AS is_overdue`

const memberFilterClause = `
	($1 = '' OR m.name ILIKE '%' || $1 || '%' OR m.email ILIKE '%' || $1 || '%')
	AND ($2 = '' OR m.status = $2)`

func (r *memberRepository) List(ctx context.Context, filters model.MemberFilters, page model.Pagination) ([]*model.Member, int, error) {
	countQuery := `SELECT COUNT(*) FROM members m WHERE` + memberFilterClause

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, filters.Search, filters.Status); err != nil {
		return nil, 0, translateErr(err, "members")
	}

	query := `
		SELECT m.*,` + memberDerivedColumns + `
		FROM members m
		WHERE` + memberFilterClause + `
		ORDER BY m.created_at DESC, m.id
		LIMIT $3 OFFSET $4`

	members := []*model.Member{}
	offset := (page.Page - 1) * page.Limit
	if err := r.db.SelectContext(ctx, &members, query, filters.Search, filters.Status, page.Limit, offset); err != nil {
		return nil, 0, translateErr(err, "members")
	}

	return members, total, nil
}

func (r *memberRepository) Get(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	query := `
		SELECT m.*,` + memberDerivedColumns + `
		FROM members m
		WHERE m.id = $1`

	var member model.Member
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		return nil, translateErr(err, "member")
	}
	return &member, nil
}

// Update applies only the provided fields and always refreshes updated_at.
// COALESCE keeps the SQL static: a nil field sends NULL and leaves the
// column untouched.
func (r *memberRepository) Update(ctx context.Context, id uuid.UUID, req *model.UpdateMemberRequest) error {
	query := `
		UPDATE members SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			phone = COALESCE($4, phone),
			status = COALESCE($5, status),
			updated_at = $6
		WHERE id = $1`

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			id,
			req.Name,
			req.Email,
			req.Phone,
			(*string)(req.Status),
			time.Now(),
		)
		if err != nil {
			return translateErr(err, "member")
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return apperror.Store("failed to get rows affected", err)
		}
		if rows == 0 {
			return apperror.NotFound("member")
		}
		return nil
	})
}
