package service

import (
	"context"
	"errors"
	"testing"

	"github.com/nzsnyn/pos-sub000/models"

	"golang.org/x/crypto/bcrypt"
)

func passwordMatches(u *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func TestUserCreateAndUpdate(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	u, err := svc.Users.Create(ctx, CreateUserInput{
		Username: "siti", Email: strPtr("siti@toko.id"), FullName: "Siti Aminah",
		Password: "rahasia1", Role: models.RoleCashier,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !passwordMatches(u, "rahasia1") {
		t.Errorf("password not hashed correctly")
	}
	if u.AvatarURL == "" {
		t.Errorf("default avatar not set")
	}
	if _, err := svc.Users.Create(ctx, CreateUserInput{Username: "budi", FullName: "Budi", Password: "rahasia1", Role: models.RoleManager}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	role := models.RoleManager
	updated, err := svc.Users.Update(ctx, u.ID, UpdateUserInput{Password: strPtr("barubaru"), Role: &role})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Role != models.RoleManager {
		t.Errorf("role not updated")
	}
	if !passwordMatches(updated, "barubaru") || passwordMatches(updated, "rahasia1") {
		t.Errorf("password not rehashed")
	}

	// username sendiri boleh dikirim ulang
	if _, err := svc.Users.Update(ctx, u.ID, UpdateUserInput{Username: strPtr("siti")}); err != nil {
		t.Errorf("updating with own username must pass: %v", err)
	}

	bad := models.UserRole("OWNER")
	tests := []struct {
		name string
		in   UpdateUserInput
		msg  string
	}{
		{"duplicate username", UpdateUserInput{Username: strPtr("budi")}, "Username sudah digunakan"},
		{"invalid role", UpdateUserInput{Role: &bad}, "Role tidak valid"},
		{"short password", UpdateUserInput{Password: strPtr("123")}, "Password minimal 6 karakter"},
		{"nothing to update", UpdateUserInput{}, "Tidak ada data yang diubah"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Users.Update(ctx, u.ID, tt.in)
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Msg != tt.msg {
				t.Errorf("expected %q, got %v", tt.msg, err)
			}
		})
	}
}

func TestUserCreate_Rejects(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	if _, err := svc.Users.Create(ctx, CreateUserInput{Username: "siti", Email: strPtr("s@toko.id"), FullName: "Siti", Password: "rahasia1", Role: models.RoleCashier}); err != nil {
		t.Fatalf("create: %v", err)
	}

	var ve *ValidationError
	if _, err := svc.Users.Create(ctx, CreateUserInput{Username: "siti2", Email: strPtr("s@toko.id"), FullName: "Siti", Password: "rahasia1", Role: models.RoleCashier}); !errors.As(err, &ve) || ve.Msg != "Email sudah digunakan" {
		t.Errorf("expected duplicate email error, got %v", err)
	}
	if _, err := svc.Users.Create(ctx, CreateUserInput{Username: "joko", FullName: "Joko", Password: "rahasia1", Role: "BOSS"}); !errors.As(err, &ve) {
		t.Errorf("expected invalid role error, got %v", err)
	}
}

func TestUserDeactivate(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	u, err := svc.Users.Create(ctx, CreateUserInput{Username: "siti", FullName: "Siti", Password: "rahasia1", Role: models.RoleCashier})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Users.Deactivate(ctx, u.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	got, err := svc.Users.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("user must still exist: %v", err)
	}
	if got.IsActive {
		t.Errorf("expected inactive user")
	}
	if err := svc.Users.Deactivate(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	active := false
	rows, _, err := svc.Users.List(ctx, UserFilter{Active: &active})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected 1 inactive user, got %d", len(rows))
	}
}
