package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
)

// All repository interfaces in one file
type (
	// MemberRepository handles member rows including the derived
	// per-member subscription aggregates.
	MemberRepository interface {
		List(ctx context.Context, filters model.MemberFilters, page model.Pagination) ([]*model.Member, int, error)
		Get(ctx context.Context, id uuid.UUID) (*model.Member, error)
		Update(ctx context.Context, id uuid.UUID, req *model.UpdateMemberRequest) error
	}

	VehicleRepository interface {
		Create(ctx context.Context, vehicle *model.Vehicle) error
		Get(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
		ListByMember(ctx context.Context, memberID uuid.UUID) ([]*model.Vehicle, error)
	}

	// SubscriptionRepository handles subscription rows. List and
	// GetWithDetails join the owning member summary and the full vehicle;
	// a subscription referencing a missing member or vehicle surfaces as
	// a store error, never as a silently shorter page.
	SubscriptionRepository interface {
		List(ctx context.Context, filters model.SubscriptionFilters, page model.Pagination) ([]*model.SubscriptionWithDetails, int, error)
		Get(ctx context.Context, id uuid.UUID) (*model.Subscription, error)
		GetWithDetails(ctx context.Context, id uuid.UUID) (*model.SubscriptionWithDetails, error)
		ListByMember(ctx context.Context, memberID uuid.UUID) ([]*model.SubscriptionWithVehicle, error)
		Create(ctx context.Context, sub *model.Subscription) error
		Update(ctx context.Context, id uuid.UUID, req *model.UpdateSubscriptionRequest) error
		// Transfer rewrites member_id and/or vehicle_id in a single
		// transaction, verifying the resulting vehicle belongs to the
		// resulting member.
		Transfer(ctx context.Context, id uuid.UUID, memberID, vehicleID *uuid.UUID) error
	}

	TicketRepository interface {
		List(ctx context.Context, filters model.TicketFilters) ([]*model.SupportTicket, error)
		Get(ctx context.Context, id uuid.UUID) (*model.SupportTicket, error)
		Create(ctx context.Context, ticket *model.SupportTicket) error
		Update(ctx context.Context, id uuid.UUID, req *model.UpdateTicketRequest) error
	}

	// MetricsRepository issues the count/sum queries behind the dashboard
	// snapshot. A zero-value status argument means "count all".
	MetricsRepository interface {
		CountMembers(ctx context.Context, status model.MemberStatus) (int, error)
		CountSubscriptions(ctx context.Context, status model.SubscriptionStatus) (int, error)
		ActiveMonthlyRevenue(ctx context.Context) (float64, error)
		CountMembersCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
		CountSubscriptionsCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
		MonthlyRevenueStartedBetween(ctx context.Context, from, to time.Time) (float64, error)
	}
)
