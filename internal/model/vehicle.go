package model

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle belongs to exactly one member. Immutable once associated with a
// subscription except for superficial edits.
type Vehicle struct {
	ID           uuid.UUID `db:"id" json:"id"`
	MemberID     uuid.UUID `db:"member_id" json:"memberId"`
	Make         string    `db:"make" json:"make"`
	Model        string    `db:"model" json:"model"`
	Year         int       `db:"year" json:"year"`
	LicensePlate string    `db:"license_plate" json:"licensePlate"`
	Color        *string   `db:"color" json:"color,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

type CreateVehicleRequest struct {
	Make         string  `json:"make" binding:"required"`
	Model        string  `json:"model" binding:"required"`
	Year         int     `json:"year" binding:"required,gte=1980,lte=2100"`
	LicensePlate string  `json:"licensePlate" binding:"required"`
	Color        *string `json:"color"`
}
