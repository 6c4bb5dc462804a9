package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JeffreyGeng/VehicleMaintenanceTracker/internal/domain"
	"github.com/JeffreyGeng/VehicleMaintenanceTracker/internal/service"
)

// VehicleHandler handles vehicle-related HTTP requests.
type VehicleHandler struct {
	vehicles *service.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicles *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// HandleAdd creates a vehicle for the authenticated user.
// POST /api/vehicles/add
// Request:  {"make":"...","model":"...","year":2020,"mileage":12000}
// Response: {"vehicle": {...}}
func (h *VehicleHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authorization required.")
		return
	}

	var req struct {
		Make    string `json:"make"`
		Model   string `json:"model"`
		Year    int    `json:"year"`
		Mileage int64  `json:"mileage"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	vehicle := &domain.Vehicle{
		Make:    req.Make,
		Model:   req.Model,
		Year:    req.Year,
		Mileage: req.Mileage,
	}
	if err := h.vehicles.Create(r.Context(), user.ID, vehicle); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("create vehicle", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"vehicle": toVehicleDTO(vehicle),
	})
}

// HandleList returns all vehicles owned by the authenticated user.
// GET /api/vehicles
// Response: {"vehicles": [...]}
func (h *VehicleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authorization required.")
		return
	}

	vehicles, err := h.vehicles.ListByUser(r.Context(), user.ID)
	if err != nil {
		slog.Error("list vehicles", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"vehicles": toVehicleDTOs(vehicles),
	})
}

// HandleGet returns one owned vehicle.
// GET /api/vehicles/{id}
// Response: {"vehicle": {...}}
func (h *VehicleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authorization required.")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid vehicle ID.")
		return
	}

	vehicle, err := h.vehicles.GetOwned(r.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Vehicle not found.")
			return
		}
		slog.Error("get vehicle", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"vehicle": toVehicleDTO(vehicle),
	})
}

// HandleUpdate partially updates an owned vehicle. Fields omitted or set
// to their zero value keep the existing value.
// PUT /api/vehicles/{id}
// Response: {"vehicle": {...}}
func (h *VehicleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authorization required.")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid vehicle ID.")
		return
	}

	var req struct {
		Make    string `json:"make"`
		Model   string `json:"model"`
		Year    int    `json:"year"`
		Mileage int64  `json:"mileage"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	vehicle, err := h.vehicles.Update(r.Context(), user.ID, id, service.VehicleUpdate{
		Make:    req.Make,
		Model:   req.Model,
		Year:    req.Year,
		Mileage: req.Mileage,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Vehicle not found.")
			return
		}
		slog.Error("update vehicle", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"vehicle": toVehicleDTO(vehicle),
	})
}

// HandleDelete removes an owned vehicle.
// DELETE /api/vehicles/{id}
func (h *VehicleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authorization required.")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid vehicle ID.")
		return
	}

	if err := h.vehicles.Delete(r.Context(), user.ID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Vehicle not found.")
			return
		}
		slog.Error("delete vehicle", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"msg": "Vehicle deleted successfully",
	})
}
