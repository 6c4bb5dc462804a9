package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/JeffreyGeng/VehicleMaintenanceTracker/internal/domain"
)

// VehicleRepository implements domain.VehicleRepository using SQLite.
type VehicleRepository struct {
	db *sql.DB
}

// NewVehicleRepository creates a new SQLite-backed VehicleRepository.
func NewVehicleRepository(db *DB) *VehicleRepository {
	return &VehicleRepository{db: db.SqlDB}
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO vehicles (user_id, make, model, year, mileage, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		v.UserID, v.Make, v.Model, v.Year, v.Mileage, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	v.ID = id
	v.CreatedAt = now
	v.UpdatedAt = now
	return nil
}

// GetOwned returns the vehicle only if it exists and belongs to userID.
// Both a missing row and an ownership mismatch yield domain.ErrNotFound.
func (r *VehicleRepository) GetOwned(ctx context.Context, id, userID int64) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, make, model, year, mileage, created_at, updated_at
		 FROM vehicles WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&v.ID, &v.UserID, &v.Make, &v.Model, &v.Year, &v.Mileage, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query vehicle: %w", err)
	}
	return v, nil
}

func (r *VehicleRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, make, model, year, mileage, created_at, updated_at
		 FROM vehicles WHERE user_id = ? ORDER BY id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query vehicles by user: %w", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.UserID, &v.Make, &v.Model, &v.Year, &v.Mileage, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *VehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE vehicles SET make = ?, model = ?, year = ?, mileage = ?, updated_at = ?
		 WHERE id = ?`,
		v.Make, v.Model, v.Year, v.Mileage, now, v.ID,
	)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	v.UpdatedAt = now
	return nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
