package service

import (
	"context"
	"fmt"
	"time"

	"github.com/JeffreyGeng/VehicleMaintenanceTracker/internal/domain"
)

// MaintenanceService handles maintenance record creation and the upcoming
// due-state query.
type MaintenanceService struct {
	maintenance domain.MaintenanceRepository
	vehicles    domain.VehicleRepository
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(maintenance domain.MaintenanceRepository, vehicles domain.VehicleRepository) *MaintenanceService {
	return &MaintenanceService{maintenance: maintenance, vehicles: vehicles}
}

// Add creates a maintenance record for a vehicle owned by userID.
func (s *MaintenanceService) Add(ctx context.Context, userID int64, m *domain.Maintenance) error {
	if m.Type == "" {
		return fmt.Errorf("%w: maintenance type is required", domain.ErrInvalidInput)
	}
	if m.Date.IsZero() {
		return fmt.Errorf("%w: service date is required", domain.ErrInvalidInput)
	}

	// Ownership guard: a vehicle that doesn't exist and one owned by
	// another user are both reported as not found.
	if _, err := s.vehicles.GetOwned(ctx, m.VehicleID, userID); err != nil {
		return err
	}

	if err := s.maintenance.Create(ctx, m); err != nil {
		return fmt.Errorf("create maintenance: %w", err)
	}
	return nil
}

// ListUpcoming returns the due subset of a vehicle's maintenance records,
// evaluated against the vehicle's current mileage and now, in the store's
// iteration order.
func (s *MaintenanceService) ListUpcoming(ctx context.Context, userID, vehicleID int64, now time.Time) ([]domain.DueMaintenance, error) {
	vehicle, err := s.vehicles.GetOwned(ctx, vehicleID, userID)
	if err != nil {
		return nil, err
	}

	records, err := s.maintenance.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list maintenance: %w", err)
	}

	var upcoming []domain.DueMaintenance
	for i := range records {
		if due := Evaluate(vehicle.Mileage, &records[i], now); due != nil {
			upcoming = append(upcoming, *due)
		}
	}
	return upcoming, nil
}

// Evaluate classifies a maintenance record against the vehicle's current
// mileage and now. It returns nil when the record is not due.
//
// The mileage threshold is checked first; the date threshold is only
// consulted when the mileage branch does not fire, so a record past both
// thresholds is reported once, as due by mileage. In that branch DueDate
// is nil whenever the record carries no date threshold, while the date
// branch always sets it.
func Evaluate(vehicleMileage int64, m *domain.Maintenance, now time.Time) *domain.DueMaintenance {
	if m.NextMileage != nil && vehicleMileage >= *m.NextMileage {
		return &domain.DueMaintenance{
			Type:       m.Type,
			DueMileage: m.NextMileage,
			DueDate:    m.NextDate,
			Reason:     domain.DueByMileage,
		}
	}

	if m.NextDate != nil && !now.Before(*m.NextDate) {
		return &domain.DueMaintenance{
			Type:       m.Type,
			DueMileage: m.NextMileage,
			DueDate:    m.NextDate,
			Reason:     domain.DueByDate,
		}
	}

	return nil
}
