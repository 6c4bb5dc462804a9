package handler

import (
	"net/http"

	"github.com/JeffreyGeng/VehicleMaintenanceTracker/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	vehicles *service.VehicleService,
	maintenance *service.MaintenanceService,
	loginLimiter *service.TokenBucket,
) {
	authHandler := NewAuthHandler(auth, loginLimiter)
	vehicleHandler := NewVehicleHandler(vehicles)
	maintenanceHandler := NewMaintenanceHandler(maintenance)

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /", HandleRoot)

	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)

	protected := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, h)
	}

	mux.Handle("POST /api/vehicles/add", protected(vehicleHandler.HandleAdd))
	mux.Handle("GET /api/vehicles", protected(vehicleHandler.HandleList))
	mux.Handle("GET /api/vehicles/{id}", protected(vehicleHandler.HandleGet))
	mux.Handle("PUT /api/vehicles/{id}", protected(vehicleHandler.HandleUpdate))
	mux.Handle("DELETE /api/vehicles/{id}", protected(vehicleHandler.HandleDelete))

	mux.Handle("POST /api/maintenance/add", protected(maintenanceHandler.HandleAdd))
	mux.Handle("GET /api/maintenance/upcoming/{vehicleId}", protected(maintenanceHandler.HandleUpcoming))
}
