package service

import (
	"errors"
	"testing"

	"kunstcollectie/internal/domain"
)

func TestAuthenticate(t *testing.T) {
	e := newEnv(t)
	if _, err := e.userSvc.Create(e.ctx, UserInput{Email: "Admin@Example.nl", Name: "Admin", Password: "geheim123", Role: domain.RoleAdmin}); err != nil {
		t.Fatal(err)
	}

	s, err := e.auth.Authenticate(e.ctx, " admin@example.NL ", "geheim123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if s.Token == "" || s.User.Role != domain.RoleAdmin || s.User.LastLoginAt == nil {
		t.Fatalf("session = %+v", s)
	}
	claims, err := e.jwt.Verify(e.ctx, s.Token)
	if err != nil || claims.UID != s.User.ID {
		t.Fatalf("verify: %v %+v", err, claims)
	}

	// 未知邮箱与错误密码不可区分
	_, errUnknown := e.auth.Authenticate(e.ctx, "niemand@example.nl", "geheim123")
	_, errWrong := e.auth.Authenticate(e.ctx, "admin@example.nl", "fout")
	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) || !errors.Is(errWrong, domain.ErrInvalidCredentials) {
		t.Fatalf("errors = %v / %v", errUnknown, errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Fatalf("messages differ: %q vs %q", errUnknown, errWrong)
	}

	_, err = e.auth.Authenticate(e.ctx, "", "")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || len(ve.Fields) != 2 {
		t.Fatalf("empty credentials: %v", err)
	}
}

func TestLogoutAndMe(t *testing.T) {
	e := newEnv(t)
	u, err := e.userSvc.Create(e.ctx, UserInput{Email: "lezer@example.nl", Name: "Lezer", Password: "geheim123", Role: domain.RoleReadonly})
	if err != nil {
		t.Fatal(err)
	}
	s, err := e.auth.Authenticate(e.ctx, "lezer@example.nl", "geheim123")
	if err != nil {
		t.Fatal(err)
	}
	me, err := e.auth.Me(e.ctx, u.ID)
	if err != nil || me.Email != "lezer@example.nl" {
		t.Fatalf("me = %+v, %v", me, err)
	}

	claims, err := e.jwt.Verify(e.ctx, s.Token)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.auth.Logout(e.ctx, claims); err != nil {
		t.Fatal(err)
	}
	if _, err := e.jwt.Verify(e.ctx, s.Token); err == nil {
		t.Fatal("revoked token still verifies")
	}

	if _, err := e.auth.Me(e.ctx, 999); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("deleted user: %v", err)
	}
}

func TestUserService(t *testing.T) {
	e := newEnv(t)
	admin, err := e.userSvc.Create(e.ctx, UserInput{Email: "a@example.nl", Name: "A", Password: "geheim123", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name  string
		in    UserInput
		field string
	}{
		{"bad email", UserInput{Email: "geen-email", Name: "B", Password: "geheim123", Role: domain.RoleReadonly}, "email"},
		{"bad role", UserInput{Email: "b@example.nl", Name: "B", Password: "geheim123", Role: "root"}, "rol"},
		{"short password", UserInput{Email: "b@example.nl", Name: "B", Password: "kort", Role: domain.RoleReadonly}, "wachtwoord"},
		{"missing name", UserInput{Email: "b@example.nl", Password: "geheim123", Role: domain.RoleReadonly}, "naam"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.userSvc.Create(e.ctx, tc.in)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) || ve.Fields[0] != tc.field {
				t.Fatalf("err = %v, want field %s", err, tc.field)
			}
		})
	}

	if _, err := e.userSvc.Create(e.ctx, UserInput{Email: "A@example.nl", Name: "Dubbel", Password: "geheim123", Role: domain.RoleReadonly}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate email: %v", err)
	}
	if _, err := e.userSvc.Update(e.ctx, admin.ID, UserInput{Email: "a@example.nl", Name: "A", Role: domain.RoleReadonly}); !errors.Is(err, domain.ErrLastAdmin) {
		t.Fatalf("demote last admin: %v", err)
	}
	if err := e.userSvc.Delete(e.ctx, admin.ID); !errors.Is(err, domain.ErrLastAdmin) {
		t.Fatalf("delete last admin: %v", err)
	}

	// 密码为空时保留旧 hash
	if _, err := e.userSvc.Update(e.ctx, admin.ID, UserInput{Email: "a@example.nl", Name: "Nieuwe naam"}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.auth.Authenticate(e.ctx, "a@example.nl", "geheim123"); err != nil {
		t.Fatalf("password changed unexpectedly: %v", err)
	}
}
