package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
	"github.com/zerefharsh/amp-csr-portal/internal/repository"
	"github.com/zerefharsh/amp-csr-portal/pkg/apperror"
)

type subscriptionRepository struct {
	BaseRepository
}

func NewSubscriptionRepository(base BaseRepository) repository.SubscriptionRepository {
	return &subscriptionRepository{base}
}

const subscriptionJoinColumns = `
	m.id AS "member.id",
	m.name AS "member.name",
	m.email AS "member.email",
	m.phone AS "member.phone",
	m.status AS "member.status",
	v.id AS "vehicle.id",
	v.member_id AS "vehicle.member_id",
	v.make AS "vehicle.make",
	v.model AS "vehicle.model",
	v.year AS "vehicle.year",
	v.license_plate AS "vehicle.license_plate",
	v.color AS "vehicle.color",
	v.created_at AS "vehicle.created_at",
	v.updated_at AS "vehicle.updated_at"`

const subscriptionFilterClause = `
	($1 = '' OR m.name ILIKE '%' || $1 || '%' OR m.email ILIKE '%' || $1 || '%' OR v.license_plate ILIKE '%' || $1 || '%')
	AND ($2 = '' OR sub.status = $2)
	AND ($3 = '' OR sub.plan_name = $3)`

func (r *subscriptionRepository) List(ctx context.Context, filters model.SubscriptionFilters, page model.Pagination) ([]*model.SubscriptionWithDetails, int, error) {
	// The count runs over LEFT JOINs so a subscription whose member or
	// vehicle row is missing is detected and reported, not dropped from
	// the page.
	countQuery := `
		SELECT COUNT(*) AS total,
			COUNT(*) FILTER (WHERE m.id IS NULL OR v.id IS NULL) AS orphans
		FROM subscriptions sub
		LEFT JOIN members m ON m.id = sub.member_id
		LEFT JOIN vehicles v ON v.id = sub.vehicle_id
		WHERE` + subscriptionFilterClause

	var counts struct {
		Total   int `db:"total"`
		Orphans int `db:"orphans"`
	}
	if err := r.db.GetContext(ctx, &counts, countQuery, filters.Search, filters.Status, filters.PlanName); err != nil {
		return nil, 0, translateErr(err, "subscriptions")
	}
	if counts.Orphans > 0 {
		return nil, 0, apperror.Store("subscription references a missing member or vehicle", nil)
	}

	query := `
		SELECT sub.*,` + subscriptionJoinColumns + `
		FROM subscriptions sub
		JOIN members m ON m.id = sub.member_id
		JOIN vehicles v ON v.id = sub.vehicle_id
		WHERE` + subscriptionFilterClause + `
		ORDER BY sub.created_at DESC, sub.id
		LIMIT $4 OFFSET $5`

	subs := []*model.SubscriptionWithDetails{}
	offset := (page.Page - 1) * page.Limit
	if err := r.db.SelectContext(ctx, &subs, query, filters.Search, filters.Status, filters.PlanName, page.Limit, offset); err != nil {
		return nil, 0, translateErr(err, "subscriptions")
	}

	return subs, counts.Total, nil
}

func (r *subscriptionRepository) Get(ctx context.Context, id uuid.UUID) (*model.Subscription, error) {
	query := `SELECT * FROM subscriptions WHERE id = $1`

	var sub model.Subscription
	if err := r.db.GetContext(ctx, &sub, query, id); err != nil {
		return nil, translateErr(err, "subscription")
	}
	return &sub, nil
}

func (r *subscriptionRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*model.SubscriptionWithDetails, error) {
	// The bare row is fetched first so a missing join partner can be told
	// apart from a missing subscription.
	if _, err := r.Get(ctx, id); err != nil {
		return nil, err
	}

	query := `
		SELECT sub.*,` + subscriptionJoinColumns + `
		FROM subscriptions sub
		JOIN members m ON m.id = sub.member_id
		JOIN vehicles v ON v.id = sub.vehicle_id
		WHERE sub.id = $1`

	var sub model.SubscriptionWithDetails
	if err := r.db.GetContext(ctx, &sub, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.Store("subscription references a missing member or vehicle", nil)
		}
		return nil, translateErr(err, "subscription")
	}
	return &sub, nil
}

func (r *subscriptionRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]*model.SubscriptionWithVehicle, error) {
	query := `
		SELECT sub.*,
			v.id AS "vehicle.id",
			v.member_id AS "vehicle.member_id",
			v.make AS "vehicle.make",
			v.model AS "vehicle.model",
			v.year AS "vehicle.year",
			v.license_plate AS "vehicle.license_plate",
			v.color AS "vehicle.color",
			v.created_at AS "vehicle.created_at",
			v.updated_at AS "vehicle.updated_at"
		FROM subscriptions sub
		JOIN vehicles v ON v.id = sub.vehicle_id
		WHERE sub.member_id = $1
		ORDER BY sub.created_at DESC, sub.id`

	subs := []*model.SubscriptionWithVehicle{}
	if err := r.db.SelectContext(ctx, &subs, query, memberID); err != nil {
		return nil, translateErr(err, "subscriptions")
	}
	return subs, nil
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	query := `
		INSERT INTO subscriptions (
			id, member_id, vehicle_id, plan_name, amount, status,
			billing_cycle, next_billing_date, start_date, end_date,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	sub.CreatedAt = time.Now()
	sub.UpdatedAt = sub.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		sub.ID,
		sub.MemberID,
		sub.VehicleID,
		sub.PlanName,
		sub.Amount,
		sub.Status,
		sub.BillingCycle,
		sub.NextBillingDate,
		sub.StartDate,
		sub.EndDate,
		sub.CreatedAt,
		sub.UpdatedAt,
	)
	return translateErr(err, "subscription")
}

func (r *subscriptionRepository) Update(ctx context.Context, id uuid.UUID, req *model.UpdateSubscriptionRequest) error {
	query := `
		UPDATE subscriptions SET
			plan_name = COALESCE($2, plan_name),
			amount = COALESCE($3, amount),
			status = COALESCE($4, status),
			billing_cycle = COALESCE($5, billing_cycle),
			next_billing_date = COALESCE($6, next_billing_date),
			end_date = CASE WHEN $7 THEN NOW() ELSE end_date END,
			updated_at = $8
		WHERE id = $1`

	cancelling := req.Status != nil && *req.Status == model.SubscriptionStatusCancelled

	result, err := r.db.ExecContext(ctx, query,
		id,
		req.PlanName,
		req.Amount,
		(*string)(req.Status),
		(*string)(req.BillingCycle),
		req.NextBillingDate,
		cancelling,
		time.Now(),
	)
	if err != nil {
		return translateErr(err, "subscription")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Store("failed to get rows affected", err)
	}
	if rows == 0 {
		return apperror.NotFound("subscription")
	}
	return nil
}

// Transfer rewrites the subscription's foreign keys inside one transaction.
// The row is locked first so no concurrent read can observe a half-moved
// subscription, then the resulting member/vehicle pair is verified before
// both columns are written together.
func (r *subscriptionRepository) Transfer(ctx context.Context, id uuid.UUID, memberID, vehicleID *uuid.UUID) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var current model.Subscription
		if err := tx.GetContext(ctx, &current, `SELECT * FROM subscriptions WHERE id = $1 FOR UPDATE`, id); err != nil {
			return translateErr(err, "subscription")
		}

		targetMember := current.MemberID
		if memberID != nil {
			targetMember = *memberID
		}
		targetVehicle := current.VehicleID
		if vehicleID != nil {
			targetVehicle = *vehicleID
		}

		var memberExists bool
		if err := tx.GetContext(ctx, &memberExists, `SELECT EXISTS(SELECT 1 FROM members WHERE id = $1)`, targetMember); err != nil {
			return translateErr(err, "member")
		}
		if !memberExists {
			return apperror.NotFound("member")
		}

		var vehicle model.Vehicle
		if err := tx.GetContext(ctx, &vehicle, `SELECT * FROM vehicles WHERE id = $1`, targetVehicle); err != nil {
			return translateErr(err, "vehicle")
		}
		if vehicle.MemberID != targetMember {
			return apperror.Validationf("vehicle %s is not owned by member %s", targetVehicle, targetMember)
		}

		_, err := tx.ExecContext(ctx,
			`UPDATE subscriptions SET member_id = $2, vehicle_id = $3, updated_at = $4 WHERE id = $1`,
			id, targetMember, targetVehicle, time.Now(),
		)
		return translateErr(err, "subscription")
	})
}
