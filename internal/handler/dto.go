package handler

import (
	"time"

	"github.com/JeffreyGeng/VehicleMaintenanceTracker/internal/domain"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

// VehicleDTO is the JSON representation of a vehicle.
type VehicleDTO struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Make      string `json:"make"`
	Model     string `json:"model"`
	Year      int    `json:"year"`
	Mileage   int64  `json:"mileage"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toVehicleDTO(v *domain.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:        v.ID,
		UserID:    v.UserID,
		Make:      v.Make,
		Model:     v.Model,
		Year:      v.Year,
		Mileage:   v.Mileage,
		CreatedAt: v.CreatedAt.Format(time.RFC3339),
		UpdatedAt: v.UpdatedAt.Format(time.RFC3339),
	}
}

func toVehicleDTOs(vehicles []domain.Vehicle) []VehicleDTO {
	dtos := make([]VehicleDTO, len(vehicles))
	for i := range vehicles {
		dtos[i] = toVehicleDTO(&vehicles[i])
	}
	return dtos
}

// MaintenanceDTO is the JSON representation of a maintenance record.
type MaintenanceDTO struct {
	ID          int64   `json:"id"`
	VehicleID   int64   `json:"vehicleId"`
	Type        string  `json:"type"`
	Mileage     int64   `json:"mileage"`
	Date        string  `json:"date"`
	NextMileage *int64  `json:"nextMileage"`
	NextDate    *string `json:"nextDate"`
	CreatedAt   string  `json:"createdAt"`
}

func toMaintenanceDTO(m *domain.Maintenance) MaintenanceDTO {
	dto := MaintenanceDTO{
		ID:          m.ID,
		VehicleID:   m.VehicleID,
		Type:        m.Type,
		Mileage:     m.Mileage,
		Date:        m.Date.Format(dateLayout),
		NextMileage: m.NextMileage,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
	if m.NextDate != nil {
		d := m.NextDate.Format(dateLayout)
		dto.NextDate = &d
	}
	return dto
}

// DueMaintenanceDTO is the JSON representation of a due descriptor.
// DueMileage and DueDate are null when the record carries no such
// threshold.
type DueMaintenanceDTO struct {
	Type       string  `json:"type"`
	DueMileage *int64  `json:"dueMileage"`
	DueDate    *string `json:"dueDate"`
}

func toDueMaintenanceDTO(d *domain.DueMaintenance) DueMaintenanceDTO {
	dto := DueMaintenanceDTO{
		Type:       d.Type,
		DueMileage: d.DueMileage,
	}
	if d.DueDate != nil {
		s := d.DueDate.Format(dateLayout)
		dto.DueDate = &s
	}
	return dto
}

func toDueMaintenanceDTOs(items []domain.DueMaintenance) []DueMaintenanceDTO {
	dtos := make([]DueMaintenanceDTO, len(items))
	for i := range items {
		dtos[i] = toDueMaintenanceDTO(&items[i])
	}
	return dtos
}

const dateLayout = "2006-01-02"
