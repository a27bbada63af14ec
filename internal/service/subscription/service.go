package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
	"github.com/zerefharsh/amp-csr-portal/internal/repository"
	"github.com/zerefharsh/amp-csr-portal/pkg/apperror"
)

type Service struct {
	subscriptions repository.SubscriptionRepository
	members       repository.MemberRepository
	vehicles      repository.VehicleRepository
}

func NewService(subscriptions repository.SubscriptionRepository, members repository.MemberRepository, vehicles repository.VehicleRepository) *Service {
	return &Service{
		subscriptions: subscriptions,
		members:       members,
		vehicles:      vehicles,
	}
}

// ListSubscriptions returns a page of subscriptions, each enriched with the
// owning member's summary and the full vehicle record.
func (s *Service) ListSubscriptions(ctx context.Context, filters model.SubscriptionFilters, page model.Pagination) (*model.PagedResult[*model.SubscriptionWithDetails], error) {
	if filters.Status != "" && !filters.Status.Valid() {
		return nil, apperror.Validationf("invalid subscription status filter %q", filters.Status)
	}

	page, err := page.Normalize()
	if err != nil {
		return nil, err
	}

	subs, total, err := s.subscriptions.List(ctx, filters, page)
	if err != nil {
		return nil, err
	}

	return model.NewPagedResult(subs, total, page.Page, page.Limit), nil
}

func (s *Service) GetSubscription(ctx context.Context, id uuid.UUID) (*model.SubscriptionWithDetails, error) {
	return s.subscriptions.GetWithDetails(ctx, id)
}

// CreateSubscription subscribes a member's vehicle to a plan. The vehicle
// must already belong to the member; the subscription starts active with
// the next billing date one cycle ahead of the start date.
func (s *Service) CreateSubscription(ctx context.Context, req *model.CreateSubscriptionRequest) (*model.SubscriptionWithDetails, error) {
	if !req.BillingCycle.Valid() {
		return nil, apperror.Validationf("invalid billing cycle %q", req.BillingCycle)
	}

	if _, err := s.members.Get(ctx, req.MemberID); err != nil {
		return nil, err
	}
	vehicle, err := s.vehicles.Get(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.MemberID != req.MemberID {
		return nil, apperror.Validationf("vehicle %s is not owned by member %s", req.VehicleID, req.MemberID)
	}

	start := time.Now()
	if req.StartDate != nil {
		start = *req.StartDate
	}

	sub := &model.Subscription{
		ID:              uuid.New(),
		MemberID:        req.MemberID,
		VehicleID:       req.VehicleID,
		PlanName:        req.PlanName,
		Amount:          req.Amount,
		Status:          model.SubscriptionStatusActive,
		BillingCycle:    req.BillingCycle,
		NextBillingDate: nextBillingDate(start, req.BillingCycle),
		StartDate:       start,
	}

	if err := s.subscriptions.Create(ctx, sub); err != nil {
		return nil, err
	}
	return s.subscriptions.GetWithDetails(ctx, sub.ID)
}

func nextBillingDate(start time.Time, cycle model.BillingCycle) time.Time {
	if cycle == model.BillingCycleYearly {
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 1, 0)
}

// UpdateSubscription applies a partial update. A status change must be a
// legal move in the subscription state machine; in particular nothing
// leaves the cancelled state through this path.
func (s *Service) UpdateSubscription(ctx context.Context, id uuid.UUID, req *model.UpdateSubscriptionRequest) (*model.SubscriptionWithDetails, error) {
	if req.Empty() {
		return nil, apperror.Validationf("update requires at least one field")
	}
	if req.BillingCycle != nil && !req.BillingCycle.Valid() {
		return nil, apperror.Validationf("invalid billing cycle %q", *req.BillingCycle)
	}

	current, err := s.subscriptions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperror.Validationf("invalid subscription status %q", *req.Status)
		}
		if !current.Status.CanTransitionTo(*req.Status) {
			return nil, apperror.Validationf("illegal status transition %s -> %s", current.Status, *req.Status)
		}
	}

	if err := s.subscriptions.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.subscriptions.GetWithDetails(ctx, id)
}

// Pause, Resume and Cancel are the CSR actions from the subscription
// detail page, expressed through the validated transition path.

func (s *Service) Pause(ctx context.Context, id uuid.UUID) (*model.SubscriptionWithDetails, error) {
	return s.transition(ctx, id, model.SubscriptionStatusPaused)
}

func (s *Service) Resume(ctx context.Context, id uuid.UUID) (*model.SubscriptionWithDetails, error) {
	return s.transition(ctx, id, model.SubscriptionStatusActive)
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*model.SubscriptionWithDetails, error) {
	return s.transition(ctx, id, model.SubscriptionStatusCancelled)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, next model.SubscriptionStatus) (*model.SubscriptionWithDetails, error) {
	return s.UpdateSubscription(ctx, id, &model.UpdateSubscriptionRequest{Status: &next})
}

// TransferSubscription atomically reassigns the owning member and/or the
// associated vehicle. The repository guarantees the resulting vehicle
// belongs to the resulting member and that no intermediate state is
// observable.
func (s *Service) TransferSubscription(ctx context.Context, id uuid.UUID, req *model.TransferSubscriptionRequest) (*model.SubscriptionWithDetails, error) {
	if req.Empty() {
		return nil, apperror.Validationf("transfer requires a member or vehicle")
	}

	current, err := s.subscriptions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == model.SubscriptionStatusCancelled {
		return nil, apperror.Validationf("cannot transfer a cancelled subscription")
	}

	if err := s.subscriptions.Transfer(ctx, id, req.MemberID, req.VehicleID); err != nil {
		return nil, err
	}
	return s.subscriptions.GetWithDetails(ctx, id)
}
