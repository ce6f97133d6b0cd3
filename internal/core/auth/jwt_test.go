package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"kunstcollectie/internal/domain"
)

func newJWTer() *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour, Denylist: NewMemoryDenylist()}
}

func TestIssueVerify(t *testing.T) {
	j := newJWTer()
	tok, exp, err := j.Issue(&domain.User{ID: 7, Email: "a@b.nl", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("exp in the past: %v", exp)
	}
	c, err := j.Verify(context.Background(), tok)
	if err != nil {
		t.Fatal(err)
	}
	if c.UID != 7 || c.Role != domain.RoleAdmin || c.ID == "" {
		t.Fatalf("claims = %+v", c)
	}
}

func TestVerifyRejects(t *testing.T) {
	j := newJWTer()
	tok, _, _ := j.Issue(&domain.User{ID: 1, Role: domain.RoleReadonly})

	other := newJWTer()
	other.Secret = []byte("other")
	expired := newJWTer()
	expired.TTL = -time.Hour
	old, _, _ := expired.Issue(&domain.User{ID: 1, Role: domain.RoleReadonly})
	badRole, _, _ := j.Issue(&domain.User{ID: 1, Role: "root"})

	cases := map[string]struct {
		j   *JWTer
		tok string
	}{
		"garbage":      {j, "not-a-token"},
		"wrong secret": {other, tok},
		"expired":      {j, old},
		"unknown role": {j, badRole},
	}
	for name, c := range cases {
		if _, err := c.j.Verify(context.Background(), c.tok); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Errorf("%s: err = %v", name, err)
		}
	}
}

func TestRevoke(t *testing.T) {
	j := newJWTer()
	ctx := context.Background()
	tok, _, _ := j.Issue(&domain.User{ID: 1, Role: domain.RoleReadonly})
	c, err := j.Verify(ctx, tok)
	if err != nil {
		t.Fatal(err)
	}
	if err := j.Revoke(ctx, c); err != nil {
		t.Fatal(err)
	}
	if _, err := j.Verify(ctx, tok); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("revoked token accepted: %v", err)
	}
}

func TestMemoryDenylistExpiry(t *testing.T) {
	d := NewMemoryDenylist()
	now := time.Now()
	d.now = func() time.Time { return now }
	ctx := context.Background()
	_ = d.Revoke(ctx, "a", now.Add(time.Minute))
	if ok, _ := d.IsRevoked(ctx, "a"); !ok {
		t.Fatal("expected revoked")
	}
	d.now = func() time.Time { return now.Add(2 * time.Minute) }
	if ok, _ := d.IsRevoked(ctx, "a"); ok {
		t.Fatal("entry should have expired")
	}
}

func TestAuthorize(t *testing.T) {
	admin := &Claims{Role: domain.RoleAdmin}
	ro := &Claims{Role: domain.RoleReadonly}
	if !Authorize(admin, domain.RoleAdmin) || !Authorize(admin, "") {
		t.Fatal("admin should pass")
	}
	if Authorize(ro, domain.RoleAdmin) {
		t.Fatal("readonly must not satisfy admin")
	}
	if !Authorize(ro, "") || Authorize(nil, "") {
		t.Fatal("unexpected result")
	}
}
