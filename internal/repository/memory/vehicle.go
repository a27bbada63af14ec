package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
	"github.com/zerefharsh/amp-csr-portal/internal/repository"
	"github.com/zerefharsh/amp-csr-portal/pkg/apperror"
)

type vehicleRepo struct {
	s *Store
}

// Vehicles returns the vehicle view of the store.
func (s *Store) Vehicles() repository.VehicleRepository {
	return &vehicleRepo{s: s}
}

func (r *vehicleRepo) Create(ctx context.Context, vehicle *model.Vehicle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = vehicle.CreatedAt

	cp := *vehicle
	r.s.vehicles[vehicle.ID] = &cp
	return nil
}

func (r *vehicleRepo) Get(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.vehicles[id]
	if !ok {
		return nil, apperror.NotFound("vehicle")
	}
	cp := *v
	return &cp, nil
}

func (r *vehicleRepo) ListByMember(ctx context.Context, memberID uuid.UUID) ([]*model.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	vehicles := []*model.Vehicle{}
	for _, v := range r.s.vehicles {
		if v.MemberID != memberID {
			continue
		}
		cp := *v
		vehicles = append(vehicles, &cp)
	}

	sortNewestFirst(vehicles,
		func(v *model.Vehicle) time.Time { return v.CreatedAt },
		func(v *model.Vehicle) uuid.UUID { return v.ID })

	return vehicles, nil
}
