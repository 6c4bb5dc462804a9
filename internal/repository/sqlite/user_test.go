package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/JeffreyGeng/VehicleMaintenanceTracker/internal/domain"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := &domain.User{Name: "Jane", Email: "jane@example.com", PasswordHash: "hash"}
	if err := db.Users().Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected ID to be set after create")
	}

	byID, err := db.Users().GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Email != "jane@example.com" {
		t.Fatalf("expected email jane@example.com, got %s", byID.Email)
	}

	byEmail, err := db.Users().GetByEmail(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Fatalf("expected ID %d, got %d", user.ID, byEmail.ID)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first := &domain.User{Name: "A", Email: "dup@example.com", PasswordHash: "hash"}
	if err := db.Users().Create(ctx, first); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	second := &domain.User{Name: "B", Email: "dup@example.com", PasswordHash: "hash"}
	if err := db.Users().Create(ctx, second); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserRepository_NotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.Users().GetByID(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := db.Users().GetByEmail(ctx, "ghost@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
