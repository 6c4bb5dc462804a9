package domain

import (
	"context"
	"time"
)

// Maintenance is a service record for a vehicle. Mileage and Date capture
// the reading and day the work was done; NextMileage and NextDate are the
// independently optional thresholds for the next service. Records are
// immutable once created.
type Maintenance struct {
	ID          int64
	VehicleID   int64
	Type        string
	Mileage     int64
	Date        time.Time
	NextMileage *int64
	NextDate    *time.Time
	CreatedAt   time.Time
}

// MaintenanceWithVehicle joins a maintenance record with its owning
// vehicle, as loaded by the reminder sweep.
type MaintenanceWithVehicle struct {
	Maintenance Maintenance
	Vehicle     Vehicle
}

// DueReason identifies which threshold put a record in the due state.
type DueReason string

const (
	DueByMileage DueReason = "mileage"
	DueByDate    DueReason = "date"
)

// DueMaintenance is the normalized descriptor produced for a due record.
// DueDate is nil only when the record is due by mileage and carries no
// date threshold.
type DueMaintenance struct {
	Type       string
	DueMileage *int64
	DueDate    *time.Time
	Reason     DueReason
}

// MaintenanceRepository defines persistence operations for maintenance
// records. ListByVehicle preserves insertion order.
type MaintenanceRepository interface {
	Create(ctx context.Context, m *Maintenance) error
	ListByVehicle(ctx context.Context, vehicleID int64) ([]Maintenance, error)
	ListAllWithVehicle(ctx context.Context) ([]MaintenanceWithVehicle, error)
}
