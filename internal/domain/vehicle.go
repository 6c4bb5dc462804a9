package domain

import (
	"context"
	"time"
)

// Vehicle represents a vehicle owned by a user. Mileage is the current
// odometer reading used for due-state comparison.
type Vehicle struct {
	ID        int64
	UserID    int64
	Make      string
	Model     string
	Year      int
	Mileage   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VehicleRepository defines persistence operations for vehicles.
// GetOwned filters by both vehicle ID and owner so that a missing vehicle
// and a vehicle owned by someone else are indistinguishable to the caller.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *Vehicle) error
	GetOwned(ctx context.Context, id, userID int64) (*Vehicle, error)
	ListByUser(ctx context.Context, userID int64) ([]Vehicle, error)
	Update(ctx context.Context, vehicle *Vehicle) error
	Delete(ctx context.Context, id int64) error
}
