package member

import (
	"context"

	"github.com/google/uuid"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
	"github.com/zerefharsh/amp-csr-portal/internal/repository"
	"github.com/zerefharsh/amp-csr-portal/pkg/apperror"
)

type Service struct {
	members       repository.MemberRepository
	subscriptions repository.SubscriptionRepository
	vehicles      repository.VehicleRepository
}

func NewService(members repository.MemberRepository, subscriptions repository.SubscriptionRepository, vehicles repository.VehicleRepository) *Service {
	return &Service{
		members:       members,
		subscriptions: subscriptions,
		vehicles:      vehicles,
	}
}

// ListMembers returns a stable, correctly-counted page of members. A status
// value outside the member enum (including "overdue", which is a
// subscription state, not a member state) is rejected up front.
func (s *Service) ListMembers(ctx context.Context, filters model.MemberFilters, page model.Pagination) (*model.PagedResult[*model.Member], error) {
	if filters.Status != "" && !filters.Status.Valid() {
		return nil, apperror.Validationf("invalid member status filter %q", filters.Status)
	}

	page, err := page.Normalize()
	if err != nil {
		return nil, err
	}

	members, total, err := s.members.List(ctx, filters, page)
	if err != nil {
		return nil, err
	}

	return model.NewPagedResult(members, total, page.Page, page.Limit), nil
}

// GetMember returns the member with all owned subscriptions (each carrying
// its vehicle) and vehicles.
func (s *Service) GetMember(ctx context.Context, id uuid.UUID) (*model.MemberWithDetails, error) {
	member, err := s.members.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	subs, err := s.subscriptions.ListByMember(ctx, id)
	if err != nil {
		return nil, err
	}

	vehicles, err := s.vehicles.ListByMember(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.MemberWithDetails{
		Member:        *member,
		Subscriptions: subs,
		Vehicles:      vehicles,
	}, nil
}

// UpdateMember applies a partial update. Suspending a member does not
// cascade to their subscriptions; pausing those is an explicit
// per-subscription operation.
func (s *Service) UpdateMember(ctx context.Context, id uuid.UUID, req *model.UpdateMemberRequest) (*model.Member, error) {
	if req.Empty() {
		return nil, apperror.Validationf("update requires at least one field")
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, apperror.Validationf("invalid member status %q", *req.Status)
	}

	if err := s.members.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.members.Get(ctx, id)
}

// AddVehicle registers a new vehicle for an existing member.
func (s *Service) AddVehicle(ctx context.Context, memberID uuid.UUID, req *model.CreateVehicleRequest) (*model.Vehicle, error) {
	if _, err := s.members.Get(ctx, memberID); err != nil {
		return nil, err
	}

	vehicle := &model.Vehicle{
		ID:           uuid.New(),
		MemberID:     memberID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		Color:        req.Color,
	}

	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *Service) ListVehicles(ctx context.Context, memberID uuid.UUID) ([]*model.Vehicle, error) {
	if _, err := s.members.Get(ctx, memberID); err != nil {
		return nil, err
	}
	return s.vehicles.ListByMember(ctx, memberID)
}
