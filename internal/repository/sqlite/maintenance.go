package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/JeffreyGeng/VehicleMaintenanceTracker/internal/domain"
)

// MaintenanceRepository implements domain.MaintenanceRepository using SQLite.
type MaintenanceRepository struct {
	db *sql.DB
}

// NewMaintenanceRepository creates a new SQLite-backed MaintenanceRepository.
func NewMaintenanceRepository(db *DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db.SqlDB}
}

func (r *MaintenanceRepository) Create(ctx context.Context, m *domain.Maintenance) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO maintenance (vehicle_id, type, mileage, date, next_mileage, next_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.VehicleID, m.Type, m.Mileage, m.Date, nullableInt(m.NextMileage), nullableTime(m.NextDate), now,
	)
	if err != nil {
		return fmt.Errorf("insert maintenance: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	m.ID = id
	m.CreatedAt = now
	return nil
}

func (r *MaintenanceRepository) ListByVehicle(ctx context.Context, vehicleID int64) ([]domain.Maintenance, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, vehicle_id, type, mileage, date, next_mileage, next_date, created_at
		 FROM maintenance WHERE vehicle_id = ? ORDER BY id`, vehicleID,
	)
	if err != nil {
		return nil, fmt.Errorf("query maintenance by vehicle: %w", err)
	}
	defer rows.Close()

	var records []domain.Maintenance
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, m)
	}
	return records, rows.Err()
}

// ListAllWithVehicle loads every maintenance record joined with its owning
// vehicle. The reminder sweep reads current mileage from the join.
func (r *MaintenanceRepository) ListAllWithVehicle(ctx context.Context) ([]domain.MaintenanceWithVehicle, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.vehicle_id, m.type, m.mileage, m.date, m.next_mileage, m.next_date, m.created_at,
		        v.id, v.user_id, v.make, v.model, v.year, v.mileage, v.created_at, v.updated_at
		 FROM maintenance m
		 JOIN vehicles v ON v.id = m.vehicle_id
		 ORDER BY m.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query maintenance with vehicles: %w", err)
	}
	defer rows.Close()

	var records []domain.MaintenanceWithVehicle
	for rows.Next() {
		var rec domain.MaintenanceWithVehicle
		var nextMileage sql.NullInt64
		var nextDate sql.NullTime
		err := rows.Scan(
			&rec.Maintenance.ID, &rec.Maintenance.VehicleID, &rec.Maintenance.Type,
			&rec.Maintenance.Mileage, &rec.Maintenance.Date, &nextMileage, &nextDate,
			&rec.Maintenance.CreatedAt,
			&rec.Vehicle.ID, &rec.Vehicle.UserID, &rec.Vehicle.Make, &rec.Vehicle.Model,
			&rec.Vehicle.Year, &rec.Vehicle.Mileage, &rec.Vehicle.CreatedAt, &rec.Vehicle.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan maintenance with vehicle: %w", err)
		}
		if nextMileage.Valid {
			rec.Maintenance.NextMileage = &nextMileage.Int64
		}
		if nextDate.Valid {
			t := nextDate.Time
			rec.Maintenance.NextDate = &t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanMaintenance(rows *sql.Rows) (domain.Maintenance, error) {
	var m domain.Maintenance
	var nextMileage sql.NullInt64
	var nextDate sql.NullTime
	err := rows.Scan(&m.ID, &m.VehicleID, &m.Type, &m.Mileage, &m.Date, &nextMileage, &nextDate, &m.CreatedAt)
	if err != nil {
		return domain.Maintenance{}, fmt.Errorf("scan maintenance: %w", err)
	}
	if nextMileage.Valid {
		m.NextMileage = &nextMileage.Int64
	}
	if nextDate.Valid {
		t := nextDate.Time
		m.NextDate = &t
	}
	return m, nil
}

func nullableInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullableTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}
