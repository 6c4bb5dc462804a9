package service

import (
	"context"
	"fmt"

	"github.com/JeffreyGeng/VehicleMaintenanceTracker/internal/domain"
)

// VehicleService handles vehicle CRUD with ownership checks.
type VehicleService struct {
	vehicles domain.VehicleRepository
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(vehicles domain.VehicleRepository) *VehicleService {
	return &VehicleService{vehicles: vehicles}
}

// VehicleUpdate carries a partial update. Zero-value fields keep the
// existing value.
type VehicleUpdate struct {
	Make    string
	Model   string
	Year    int
	Mileage int64
}

// Create creates a new vehicle for the given user after validation.
func (s *VehicleService) Create(ctx context.Context, userID int64, v *domain.Vehicle) error {
	v.UserID = userID
	if err := validateVehicle(v); err != nil {
		return err
	}

	if err := s.vehicles.Create(ctx, v); err != nil {
		return fmt.Errorf("create vehicle: %w", err)
	}
	return nil
}

// ListByUser returns all vehicles owned by the user.
func (s *VehicleService) ListByUser(ctx context.Context, userID int64) ([]domain.Vehicle, error) {
	return s.vehicles.ListByUser(ctx, userID)
}

// GetOwned returns the vehicle only if it is owned by userID. A missing
// vehicle and one owned by another user both return domain.ErrNotFound.
func (s *VehicleService) GetOwned(ctx context.Context, userID, id int64) (*domain.Vehicle, error) {
	return s.vehicles.GetOwned(ctx, id, userID)
}

// Update applies a partial update to an owned vehicle via explicit
// read-merge-write: fetch current state, merge the incoming fields, issue
// a single update.
func (s *VehicleService) Update(ctx context.Context, userID, id int64, upd VehicleUpdate) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	merged := MergeVehicle(*vehicle, upd)
	if err := s.vehicles.Update(ctx, &merged); err != nil {
		return nil, fmt.Errorf("update vehicle: %w", err)
	}
	return &merged, nil
}

// Delete removes an owned vehicle. Maintenance records cascade at the
// store level.
func (s *VehicleService) Delete(ctx context.Context, userID, id int64) error {
	vehicle, err := s.vehicles.GetOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.vehicles.Delete(ctx, vehicle.ID)
}

// MergeVehicle returns a copy of existing with the non-zero fields of upd
// applied. Pure function.
func MergeVehicle(existing domain.Vehicle, upd VehicleUpdate) domain.Vehicle {
	if upd.Make != "" {
		existing.Make = upd.Make
	}
	if upd.Model != "" {
		existing.Model = upd.Model
	}
	if upd.Year != 0 {
		existing.Year = upd.Year
	}
	if upd.Mileage != 0 {
		existing.Mileage = upd.Mileage
	}
	return existing
}

func validateVehicle(v *domain.Vehicle) error {
	if v.Make == "" {
		return fmt.Errorf("%w: make is required", domain.ErrInvalidInput)
	}
	if v.Model == "" {
		return fmt.Errorf("%w: model is required", domain.ErrInvalidInput)
	}
	if v.Year == 0 {
		return fmt.Errorf("%w: year is required", domain.ErrInvalidInput)
	}
	if v.Mileage < 0 {
		return fmt.Errorf("%w: mileage cannot be negative", domain.ErrInvalidInput)
	}
	return nil
}
