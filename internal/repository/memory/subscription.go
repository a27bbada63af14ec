package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
	"github.com/zerefharsh/amp-csr-portal/internal/repository"
	"github.com/zerefharsh/amp-csr-portal/pkg/apperror"
)

type subscriptionRepo struct {
	s *Store
}

// Subscriptions returns the subscription view of the store.
func (s *Store) Subscriptions() repository.SubscriptionRepository {
	return &subscriptionRepo{s: s}
}

// join builds the detail row, failing the same way the postgres repo does
// when a foreign key points at nothing.
func (s *Store) join(sub *model.Subscription) (*model.SubscriptionWithDetails, error) {
	m, ok := s.members[sub.MemberID]
	if !ok {
		return nil, apperror.Store("subscription references a missing member or vehicle", nil)
	}
	v, ok := s.vehicles[sub.VehicleID]
	if !ok {
		return nil, apperror.Store("subscription references a missing member or vehicle", nil)
	}

	return &model.SubscriptionWithDetails{
		Subscription: *sub,
		Member: model.MemberSummary{
			ID:     m.ID,
			Name:   m.Name,
			Email:  m.Email,
			Phone:  m.Phone,
			Status: m.Status,
		},
		Vehicle: *v,
	}, nil
}

func (r *subscriptionRepo) List(ctx context.Context, filters model.SubscriptionFilters, page model.Pagination) ([]*model.SubscriptionWithDetails, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []*model.SubscriptionWithDetails{}
	for _, sub := range r.s.subscriptions {
		row, err := r.s.join(sub)
		if err != nil {
			return nil, 0, err
		}
		if filters.Search != "" &&
			!containsFold(row.Member.Name, filters.Search) &&
			!containsFold(row.Member.Email, filters.Search) &&
			!containsFold(row.Vehicle.LicensePlate, filters.Search) {
			continue
		}
		if filters.Status != "" && sub.Status != filters.Status {
			continue
		}
		if filters.PlanName != "" && sub.PlanName != filters.PlanName {
			continue
		}
		matched = append(matched, row)
	}

	sortNewestFirst(matched,
		func(s *model.SubscriptionWithDetails) time.Time { return s.CreatedAt },
		func(s *model.SubscriptionWithDetails) uuid.UUID { return s.ID })

	return paginate(matched, page), len(matched), nil
}

func (r *subscriptionRepo) Get(ctx context.Context, id uuid.UUID) (*model.Subscription, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sub, ok := r.s.subscriptions[id]
	if !ok {
		return nil, apperror.NotFound("subscription")
	}
	cp := *sub
	return &cp, nil
}

func (r *subscriptionRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*model.SubscriptionWithDetails, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sub, ok := r.s.subscriptions[id]
	if !ok {
		return nil, apperror.NotFound("subscription")
	}
	return r.s.join(sub)
}

func (r *subscriptionRepo) ListByMember(ctx context.Context, memberID uuid.UUID) ([]*model.SubscriptionWithVehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	subs := []*model.SubscriptionWithVehicle{}
	for _, sub := range r.s.subscriptions {
		if sub.MemberID != memberID {
			continue
		}
		v, ok := r.s.vehicles[sub.VehicleID]
		if !ok {
			return nil, apperror.Store("subscription references a missing member or vehicle", nil)
		}
		subs = append(subs, &model.SubscriptionWithVehicle{
			Subscription: *sub,
			Vehicle:      *v,
		})
	}

	sortNewestFirst(subs,
		func(s *model.SubscriptionWithVehicle) time.Time { return s.CreatedAt },
		func(s *model.SubscriptionWithVehicle) uuid.UUID { return s.ID })

	return subs, nil
}

func (r *subscriptionRepo) Create(ctx context.Context, sub *model.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sub.CreatedAt = time.Now()
	sub.UpdatedAt = sub.CreatedAt

	cp := *sub
	r.s.subscriptions[sub.ID] = &cp
	return nil
}

func (r *subscriptionRepo) Update(ctx context.Context, id uuid.UUID, req *model.UpdateSubscriptionRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sub, ok := r.s.subscriptions[id]
	if !ok {
		return apperror.NotFound("subscription")
	}

	if req.PlanName != nil {
		sub.PlanName = *req.PlanName
	}
	if req.Amount != nil {
		sub.Amount = *req.Amount
	}
	if req.Status != nil {
		sub.Status = *req.Status
		if *req.Status == model.SubscriptionStatusCancelled {
			now := time.Now()
			sub.EndDate = &now
		}
	}
	if req.BillingCycle != nil {
		sub.BillingCycle = *req.BillingCycle
	}
	if req.NextBillingDate != nil {
		sub.NextBillingDate = *req.NextBillingDate
	}
	sub.UpdatedAt = time.Now()
	return nil
}

func (r *subscriptionRepo) Transfer(ctx context.Context, id uuid.UUID, memberID, vehicleID *uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sub, ok := r.s.subscriptions[id]
	if !ok {
		return apperror.NotFound("subscription")
	}

	targetMember := sub.MemberID
	if memberID != nil {
		targetMember = *memberID
	}
	targetVehicle := sub.VehicleID
	if vehicleID != nil {
		targetVehicle = *vehicleID
	}

	if _, ok := r.s.members[targetMember]; !ok {
		return apperror.NotFound("member")
	}
	v, ok := r.s.vehicles[targetVehicle]
	if !ok {
		return apperror.NotFound("vehicle")
	}
	if v.MemberID != targetMember {
		return apperror.Validationf("vehicle %s is not owned by member %s", targetVehicle, targetMember)
	}

	sub.MemberID = targetMember
	sub.VehicleID = targetVehicle
	sub.UpdatedAt = time.Now()
	return nil
}
