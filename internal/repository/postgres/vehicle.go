package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
	"github.com/zerefharsh/amp-csr-portal/internal/repository"
)

type vehicleRepository struct {
	BaseRepository
}

func NewVehicleRepository(base BaseRepository) repository.VehicleRepository {
	return &vehicleRepository{base}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	query := `
		INSERT INTO vehicles (
			id, member_id, make, model, year, license_plate, color,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = vehicle.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.MemberID,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.LicensePlate,
		vehicle.Color,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)
	return translateErr(err, "vehicle")
}

func (r *vehicleRepository) Get(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	query := `SELECT * FROM vehicles WHERE id = $1`

	var vehicle model.Vehicle
	if err := r.db.GetContext(ctx, &vehicle, query, id); err != nil {
		return nil, translateErr(err, "vehicle")
	}
	return &vehicle, nil
}

func (r *vehicleRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]*model.Vehicle, error) {
	query := `SELECT * FROM vehicles WHERE member_id = $1 ORDER BY created_at DESC, id`

	vehicles := []*model.Vehicle{}
	if err := r.db.SelectContext(ctx, &vehicles, query, memberID); err != nil {
		return nil, translateErr(err, "vehicles")
	}
	return vehicles, nil
}
