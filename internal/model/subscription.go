package model

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
	SubscriptionStatusOverdue   SubscriptionStatus = "overdue"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionStatusActive, SubscriptionStatusPaused,
		SubscriptionStatusOverdue, SubscriptionStatusCancelled:
		return true
	}
	return false
}

// subscriptionTransitions is the full set of legal status moves. Cancelled
// is terminal: it has no outbound entries, so a generic update can never
// resurrect a cancelled subscription.
var subscriptionTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	SubscriptionStatusActive:  {SubscriptionStatusPaused, SubscriptionStatusCancelled, SubscriptionStatusOverdue},
	SubscriptionStatusPaused:  {SubscriptionStatusActive},
	SubscriptionStatusOverdue: {SubscriptionStatusActive, SubscriptionStatusCancelled},
}

// CanTransitionTo reports whether moving from s to next is legal. A
// same-status write is allowed as a no-op.
func (s SubscriptionStatus) CanTransitionTo(next SubscriptionStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range subscriptionTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

func (c BillingCycle) Valid() bool {
	return c == BillingCycleMonthly || c == BillingCycleYearly
}

// MonthlyAmount normalizes an amount billed on cycle c to its monthly
// equivalent.
func (c BillingCycle) MonthlyAmount(amount float64) float64 {
	if c == BillingCycleYearly {
		return amount / 12
	}
	return amount
}

// Subscription is a recurring billing arrangement tied to exactly one
// member and one vehicle at any time.
type Subscription struct {
	ID              uuid.UUID          `db:"id" json:"id"`
	MemberID        uuid.UUID          `db:"member_id" json:"memberId"`
	VehicleID       uuid.UUID          `db:"vehicle_id" json:"vehicleId"`
	PlanName        string             `db:"plan_name" json:"planName"`
	Amount          float64            `db:"amount" json:"amount"`
	Status          SubscriptionStatus `db:"status" json:"status"`
	BillingCycle    BillingCycle       `db:"billing_cycle" json:"billingCycle"`
	NextBillingDate time.Time          `db:"next_billing_date" json:"nextBillingDate"`
	StartDate       time.Time          `db:"start_date" json:"startDate"`
	EndDate         *time.Time         `db:"end_date" json:"endDate,omitempty"`
	CreatedAt       time.Time          `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `db:"updated_at" json:"updatedAt"`
}

// SubscriptionWithDetails is the list/detail row shape: the subscription
// joined with its owning member's summary and its full vehicle record.
type SubscriptionWithDetails struct {
	Subscription
	Member  MemberSummary `db:"member" json:"member"`
	Vehicle Vehicle       `db:"vehicle" json:"vehicle"`
}

// SubscriptionWithVehicle appears inside a member detail view.
type SubscriptionWithVehicle struct {
	Subscription
	Vehicle Vehicle `db:"vehicle" json:"vehicle"`
}

// SubscriptionFilters narrows a subscription listing. Search matches member
// name, member email or vehicle license plate.
type SubscriptionFilters struct {
	Search   string             `form:"search"`
	Status   SubscriptionStatus `form:"status"`
	PlanName string             `form:"planName"`
}

type CreateSubscriptionRequest struct {
	MemberID     uuid.UUID    `json:"memberId" binding:"required"`
	VehicleID    uuid.UUID    `json:"vehicleId" binding:"required"`
	PlanName     string       `json:"planName" binding:"required"`
	Amount       float64      `json:"amount" binding:"required,gt=0"`
	BillingCycle BillingCycle `json:"billingCycle" binding:"required"`
	StartDate    *time.Time   `json:"startDate"`
}

// UpdateSubscriptionRequest carries a partial subscription update. A Status
// change must be a legal transition from the current status.
type UpdateSubscriptionRequest struct {
	PlanName        *string             `json:"planName" binding:"omitempty,min=1"`
	Amount          *float64            `json:"amount" binding:"omitempty,gt=0"`
	Status          *SubscriptionStatus `json:"status"`
	BillingCycle    *BillingCycle       `json:"billingCycle"`
	NextBillingDate *time.Time          `json:"nextBillingDate"`
}

func (r *UpdateSubscriptionRequest) Empty() bool {
	return r.PlanName == nil && r.Amount == nil && r.Status == nil &&
		r.BillingCycle == nil && r.NextBillingDate == nil
}

// TransferSubscriptionRequest reassigns a subscription's owning member
// and/or associated vehicle. Both rewrites happen in one transaction.
type TransferSubscriptionRequest struct {
	MemberID  *uuid.UUID `json:"memberId"`
	VehicleID *uuid.UUID `json:"vehicleId"`
}

func (r *TransferSubscriptionRequest) Empty() bool {
	return r.MemberID == nil && r.VehicleID == nil
}
