package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/JeffreyGeng/VehicleMaintenanceTracker/internal/domain"
	"github.com/JeffreyGeng/VehicleMaintenanceTracker/internal/service"
)

// MaintenanceHandler handles maintenance-related HTTP requests.
type MaintenanceHandler struct {
	maintenance *service.MaintenanceService
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(maintenance *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: maintenance}
}

// HandleAdd creates a maintenance record for an owned vehicle.
// POST /api/maintenance/add
// Request:  {"vehicleId":1,"type":"Oil Change","mileage":12000,"date":"2024-10-01","nextMileage":17000,"nextDate":"2025-04-01"}
// Response: {"maintenance": {...}}
func (h *MaintenanceHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authorization required.")
		return
	}

	var req struct {
		VehicleID   int64   `json:"vehicleId"`
		Type        string  `json:"type"`
		Mileage     int64   `json:"mileage"`
		Date        string  `json:"date"`
		NextMileage *int64  `json:"nextMileage"`
		NextDate    *string `json:"nextDate"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "date must be formatted YYYY-MM-DD.")
		return
	}

	record := &domain.Maintenance{
		VehicleID:   req.VehicleID,
		Type:        req.Type,
		Mileage:     req.Mileage,
		Date:        date,
		NextMileage: req.NextMileage,
	}
	if req.NextDate != nil {
		next, err := time.Parse(dateLayout, *req.NextDate)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "nextDate must be formatted YYYY-MM-DD.")
			return
		}
		record.NextDate = &next
	}

	if err := h.maintenance.Add(r.Context(), user.ID, record); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Vehicle not found.")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("add maintenance", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"maintenance": toMaintenanceDTO(record),
	})
}

// HandleUpcoming returns the due descriptors for an owned vehicle,
// evaluated at request time.
// GET /api/maintenance/upcoming/{vehicleId}
// Response: [{"type":"...","dueMileage":17000,"dueDate":"2025-04-01"}, ...]
func (h *MaintenanceHandler) HandleUpcoming(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authorization required.")
		return
	}

	vehicleID, err := strconv.ParseInt(r.PathValue("vehicleId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid vehicle ID.")
		return
	}

	upcoming, err := h.maintenance.ListUpcoming(r.Context(), user.ID, vehicleID, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Vehicle not found.")
			return
		}
		slog.Error("list upcoming maintenance", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toDueMaintenanceDTOs(upcoming))
}
