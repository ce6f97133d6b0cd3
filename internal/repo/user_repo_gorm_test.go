package repo

import (
	"errors"
	"testing"
	"time"

	"kunstcollectie/internal/core/database/dbtest"
	"kunstcollectie/internal/domain"
)

func TestLastAdminGuard(t *testing.T) {
	r := NewUserRepo(dbtest.Open(t))
	ctx := t.Context()

	admin := &domain.User{Email: "admin@x.nl", Name: "A", PasswordHash: "h", Role: domain.RoleAdmin}
	if err := r.Create(ctx, admin); err != nil {
		t.Fatal(err)
	}

	if err := r.Delete(ctx, admin.ID); !errors.Is(err, domain.ErrLastAdmin) {
		t.Fatalf("delete last admin: %v", err)
	}
	admin.Role = domain.RoleReadonly
	if err := r.Update(ctx, admin); !errors.Is(err, domain.ErrLastAdmin) {
		t.Fatalf("demote last admin: %v", err)
	}
	if !errors.Is(domain.ErrLastAdmin, domain.ErrConflict) {
		t.Fatal("ErrLastAdmin must be a conflict")
	}
	if n, _ := r.CountAdmins(ctx); n != 1 {
		t.Fatalf("admins = %d", n)
	}

	second := &domain.User{Email: "b@x.nl", Name: "B", PasswordHash: "h", Role: domain.RoleAdmin}
	if err := r.Create(ctx, second); err != nil {
		t.Fatal(err)
	}
	if err := r.Delete(ctx, admin.ID); err != nil {
		t.Fatalf("delete with another admin present: %v", err)
	}
}

func TestUserEmailUniqueAndTouch(t *testing.T) {
	db := dbtest.Open(t)
	r := NewUserRepo(db)
	ctx := t.Context()
	u := &domain.User{Email: "a@x.nl", Name: "A", PasswordHash: "h", Role: domain.RoleReadonly}
	if err := r.Create(ctx, u); err != nil {
		t.Fatal(err)
	}
	if err := r.Create(ctx, &domain.User{Email: "a@x.nl", Name: "B", PasswordHash: "h", Role: domain.RoleReadonly}); !IsDupKey(err) {
		t.Fatalf("dup email: %v", err)
	}
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := r.TouchLogin(ctx, u.ID, at); err != nil {
		t.Fatal(err)
	}
	got, err := r.FindByEmail(ctx, "a@x.nl")
	if err != nil || got.LastLoginAt == nil || !got.LastLoginAt.Equal(at) {
		t.Fatalf("got = %+v, %v", got, err)
	}
	if none, err := r.FindByID(ctx, 999); none != nil || err != nil {
		t.Fatalf("FindByID(999) = %v, %v", none, err)
	}
}
