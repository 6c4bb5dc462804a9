package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/JeffreyGeng/VehicleMaintenanceTracker/internal/domain"
	"github.com/JeffreyGeng/VehicleMaintenanceTracker/internal/repository/sqlite"
	"github.com/JeffreyGeng/VehicleMaintenanceTracker/internal/service"
)

func int64Ptr(v int64) *int64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEvaluate(t *testing.T) {
	now := date("2024-12-01")

	tests := []struct {
		name       string
		mileage    int64
		record     domain.Maintenance
		wantNil    bool
		wantReason domain.DueReason
	}{
		{
			name:    "below mileage threshold and date in future",
			mileage: 12000,
			record:  domain.Maintenance{Type: "Oil Change", NextMileage: int64Ptr(17000), NextDate: timePtr(date("2025-04-01"))},
			wantNil: true,
		},
		{
			name:       "past mileage threshold",
			mileage:    18000,
			record:     domain.Maintenance{Type: "Oil Change", NextMileage: int64Ptr(17000), NextDate: timePtr(date("2025-04-01"))},
			wantReason: domain.DueByMileage,
		},
		{
			name:       "exactly at mileage threshold",
			mileage:    17000,
			record:     domain.Maintenance{Type: "Oil Change", NextMileage: int64Ptr(17000)},
			wantReason: domain.DueByMileage,
		},
		{
			name:       "no mileage threshold, date passed",
			mileage:    5000,
			record:     domain.Maintenance{Type: "Tire Rotation", NextDate: timePtr(date("2024-01-01"))},
			wantReason: domain.DueByDate,
		},
		{
			name:       "date exactly now",
			mileage:    0,
			record:     domain.Maintenance{Type: "Inspection", NextDate: timePtr(date("2024-12-01"))},
			wantReason: domain.DueByDate,
		},
		{
			name:    "no thresholds at all",
			mileage: 999999,
			record:  domain.Maintenance{Type: "Detailing"},
			wantNil: true,
		},
		{
			name:       "due by both thresholds reports mileage",
			mileage:    50000,
			record:     domain.Maintenance{Type: "Brakes", NextMileage: int64Ptr(40000), NextDate: timePtr(date("2023-01-01"))},
			wantReason: domain.DueByMileage,
		},
		{
			name:       "mileage condition failed but date passed",
			mileage:    30000,
			record:     domain.Maintenance{Type: "Coolant", NextMileage: int64Ptr(40000), NextDate: timePtr(date("2024-06-01"))},
			wantReason: domain.DueByDate,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := service.Evaluate(tc.mileage, &tc.record, now)
			if tc.wantNil {
				if got != nil {
					t.Fatalf("expected not due, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected a due descriptor, got nil")
			}
			if got.Reason != tc.wantReason {
				t.Fatalf("expected reason %s, got %s", tc.wantReason, got.Reason)
			}
			if got.Type != tc.record.Type {
				t.Fatalf("expected type %s, got %s", tc.record.Type, got.Type)
			}
		})
	}
}

func TestEvaluate_MileageBranchCarriesThresholds(t *testing.T) {
	now := date("2024-12-01")
	record := domain.Maintenance{
		Type:        "Oil Change",
		NextMileage: int64Ptr(17000),
		NextDate:    timePtr(date("2025-04-01")),
	}

	got := service.Evaluate(18000, &record, now)
	if got == nil {
		t.Fatal("expected due descriptor")
	}
	if got.DueMileage == nil || *got.DueMileage != 17000 {
		t.Fatalf("expected dueMileage 17000, got %v", got.DueMileage)
	}
	if got.DueDate == nil || !got.DueDate.Equal(date("2025-04-01")) {
		t.Fatalf("expected dueDate 2025-04-01, got %v", got.DueDate)
	}
}

func TestEvaluate_MileageBranchWithoutDateThreshold(t *testing.T) {
	record := domain.Maintenance{Type: "Oil Change", NextMileage: int64Ptr(10000)}

	got := service.Evaluate(12000, &record, date("2024-12-01"))
	if got == nil {
		t.Fatal("expected due descriptor")
	}
	if got.DueDate != nil {
		t.Fatalf("expected nil dueDate when record has no date threshold, got %v", got.DueDate)
	}
}

func TestEvaluate_DateBranchCarriesNilMileage(t *testing.T) {
	record := domain.Maintenance{Type: "Tire Rotation", NextDate: timePtr(date("2024-01-01"))}

	got := service.Evaluate(5000, &record, date("2024-12-01"))
	if got == nil {
		t.Fatal("expected due descriptor")
	}
	if got.DueMileage != nil {
		t.Fatalf("expected nil dueMileage, got %d", *got.DueMileage)
	}
	if got.DueDate == nil || !got.DueDate.Equal(date("2024-01-01")) {
		t.Fatalf("expected dueDate 2024-01-01, got %v", got.DueDate)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	now := date("2024-12-01")
	record := domain.Maintenance{Type: "Oil Change", NextMileage: int64Ptr(17000), NextDate: timePtr(date("2025-04-01"))}

	first := service.Evaluate(18000, &record, now)
	second := service.Evaluate(18000, &record, now)
	if first == nil || second == nil {
		t.Fatal("expected due descriptors")
	}
	if *first != *second {
		t.Fatalf("expected identical results, got %+v and %+v", *first, *second)
	}
}

func newTestMaintenanceService(t *testing.T) (*service.MaintenanceService, *service.VehicleService, *service.AuthService) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return service.NewMaintenanceService(db.Maintenance(), db.Vehicles()),
		service.NewVehicleService(db.Vehicles()),
		service.NewAuthService(db.Users(), testJWTSecret, 4)
}

func registerUser(t *testing.T, auth *service.AuthService, email string) *domain.User {
	t.Helper()
	user, err := auth.Register(context.Background(), "Test User", email, "password123")
	if err != nil {
		t.Fatalf("Register %s: %v", email, err)
	}
	return user
}

func createVehicle(t *testing.T, vehicles *service.VehicleService, userID, mileage int64) *domain.Vehicle {
	t.Helper()
	v := &domain.Vehicle{Make: "Toyota", Model: "Corolla", Year: 2020, Mileage: mileage}
	if err := vehicles.Create(context.Background(), userID, v); err != nil {
		t.Fatalf("Create vehicle: %v", err)
	}
	return v
}

func TestMaintenanceService_Add_OwnershipGuard(t *testing.T) {
	maintenance, vehicles, auth := newTestMaintenanceService(t)
	ctx := context.Background()

	owner := registerUser(t, auth, "owner@example.com")
	other := registerUser(t, auth, "other@example.com")
	vehicle := createVehicle(t, vehicles, owner.ID, 12000)

	record := &domain.Maintenance{
		VehicleID: vehicle.ID,
		Type:      "Oil Change",
		Mileage:   12000,
		Date:      date("2024-10-01"),
	}
	if err := maintenance.Add(ctx, other.ID, record); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-owner, got %v", err)
	}

	if err := maintenance.Add(ctx, owner.ID, record); err != nil {
		t.Fatalf("Add for owner: %v", err)
	}
	if record.ID == 0 {
		t.Fatal("expected record ID to be set")
	}
}

func TestMaintenanceService_Add_RequiresType(t *testing.T) {
	maintenance, vehicles, auth := newTestMaintenanceService(t)
	ctx := context.Background()

	owner := registerUser(t, auth, "owner@example.com")
	vehicle := createVehicle(t, vehicles, owner.ID, 12000)

	record := &domain.Maintenance{VehicleID: vehicle.ID, Mileage: 12000, Date: date("2024-10-01")}
	if err := maintenance.Add(ctx, owner.ID, record); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMaintenanceService_ListUpcoming(t *testing.T) {
	maintenance, vehicles, auth := newTestMaintenanceService(t)
	ctx := context.Background()
	now := date("2024-12-01")

	owner := registerUser(t, auth, "owner@example.com")
	vehicle := createVehicle(t, vehicles, owner.ID, 18000)

	records := []*domain.Maintenance{
		{VehicleID: vehicle.ID, Type: "Oil Change", Mileage: 12000, Date: date("2024-10-01"), NextMileage: int64Ptr(17000), NextDate: timePtr(date("2025-04-01"))},
		{VehicleID: vehicle.ID, Type: "Tire Rotation", Mileage: 12000, Date: date("2024-10-01"), NextMileage: int64Ptr(99000)},
		{VehicleID: vehicle.ID, Type: "Inspection", Mileage: 12000, Date: date("2024-10-01"), NextDate: timePtr(date("2024-11-01"))},
	}
	for _, rec := range records {
		if err := maintenance.Add(ctx, owner.ID, rec); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	upcoming, err := maintenance.ListUpcoming(ctx, owner.ID, vehicle.ID, now)
	if err != nil {
		t.Fatalf("ListUpcoming: %v", err)
	}

	if len(upcoming) != 2 {
		t.Fatalf("expected 2 due records, got %d", len(upcoming))
	}
	// Insertion order is preserved.
	if upcoming[0].Type != "Oil Change" || upcoming[0].Reason != domain.DueByMileage {
		t.Fatalf("unexpected first descriptor: %+v", upcoming[0])
	}
	if upcoming[1].Type != "Inspection" || upcoming[1].Reason != domain.DueByDate {
		t.Fatalf("unexpected second descriptor: %+v", upcoming[1])
	}
}

func TestMaintenanceService_ListUpcoming_EmptyWhenNothingDue(t *testing.T) {
	maintenance, vehicles, auth := newTestMaintenanceService(t)
	ctx := context.Background()

	owner := registerUser(t, auth, "owner@example.com")
	vehicle := createVehicle(t, vehicles, owner.ID, 12000)

	record := &domain.Maintenance{
		VehicleID:   vehicle.ID,
		Type:        "Oil Change",
		Mileage:     12000,
		Date:        date("2024-10-01"),
		NextMileage: int64Ptr(17000),
		NextDate:    timePtr(date("2025-04-01")),
	}
	if err := maintenance.Add(ctx, owner.ID, record); err != nil {
		t.Fatalf("Add: %v", err)
	}

	upcoming, err := maintenance.ListUpcoming(ctx, owner.ID, vehicle.ID, date("2024-12-01"))
	if err != nil {
		t.Fatalf("ListUpcoming: %v", err)
	}
	if len(upcoming) != 0 {
		t.Fatalf("expected no due records, got %d", len(upcoming))
	}
}

func TestMaintenanceService_ListUpcoming_OwnershipIsolation(t *testing.T) {
	maintenance, vehicles, auth := newTestMaintenanceService(t)
	ctx := context.Background()

	owner := registerUser(t, auth, "owner@example.com")
	other := registerUser(t, auth, "other@example.com")
	vehicle := createVehicle(t, vehicles, owner.ID, 50000)

	record := &domain.Maintenance{
		VehicleID:   vehicle.ID,
		Type:        "Oil Change",
		Mileage:     40000,
		Date:        date("2024-10-01"),
		NextMileage: int64Ptr(45000),
	}
	if err := maintenance.Add(ctx, owner.ID, record); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Another user must not learn whether the vehicle even exists.
	_, err := maintenance.ListUpcoming(ctx, other.ID, vehicle.ID, date("2024-12-01"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-owner, got %v", err)
	}
}
