package model

import (
	"time"

	"github.com/google/uuid"
)

type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "active"
	MemberStatusSuspended MemberStatus = "suspended"
	MemberStatusCancelled MemberStatus = "cancelled"
)

func (s MemberStatus) Valid() bool {
	switch s {
	case MemberStatusActive, MemberStatusSuspended, MemberStatusCancelled:
		return true
	}
	return false
}

// Member is a customer account. TotalSubscriptions, MonthlyRevenue and
// IsOverdue are derived from the subscriptions table on every read and are
// never persisted.
type Member struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	Name         string       `db:"name" json:"name"`
	Email        string       `db:"email" json:"email"`
	Phone        *string      `db:"phone" json:"phone,omitempty"`
	Status       MemberStatus `db:"status" json:"status"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updatedAt"`
	LastActivity time.Time    `db:"last_activity" json:"lastActivity"`

	TotalSubscriptions int     `db:"total_subscriptions" json:"totalSubscriptions"`
	MonthlyRevenue     float64 `db:"monthly_revenue" json:"monthlyRevenue"`
	IsOverdue          bool    `db:"is_overdue" json:"isOverdue"`
}

// MemberSummary is the member snapshot embedded into subscription rows.
type MemberSummary struct {
	ID     uuid.UUID    `db:"id" json:"id"`
	Name   string       `db:"name" json:"name"`
	Email  string       `db:"email" json:"email"`
	Phone  *string      `db:"phone" json:"phone,omitempty"`
	Status MemberStatus `db:"status" json:"status"`
}

// MemberWithDetails is the detail-page shape: the member plus every owned
// subscription (with its vehicle) and vehicle.
type MemberWithDetails struct {
	Member
	Subscriptions []*SubscriptionWithVehicle `json:"subscriptions"`
	Vehicles      []*Vehicle                 `json:"vehicles"`
}

// MemberFilters narrows a member listing. An empty Search matches
// everything; an empty Status applies no status filter.
type MemberFilters struct {
	Search string       `form:"search"`
	Status MemberStatus `form:"status"`
}

// UpdateMemberRequest carries a partial member update. Nil fields are left
// untouched.
type UpdateMemberRequest struct {
	Name   *string       `json:"name" binding:"omitempty,min=1"`
	Email  *string       `json:"email" binding:"omitempty,email"`
	Phone  *string       `json:"phone"`
	Status *MemberStatus `json:"status"`
}

func (r *UpdateMemberRequest) Empty() bool {
	return r.Name == nil && r.Email == nil && r.Phone == nil && r.Status == nil
}
