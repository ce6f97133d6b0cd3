package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadDefaultsAndFile(t *testing.T) {
	p := writeConfig(t, `
jwt:
  secret: s3cret
db:
  driver: sqlite
  dsn: "file::memory:"
`)
	c, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if c.JWT.Secret != "s3cret" || c.DB.Driver != "sqlite" {
		t.Fatalf("file values not applied: %+v", c.JWT)
	}
	if c.App.HTTP.Port != 3000 || c.Storage.MaxImageMB != 5 || c.Storage.MaxAttachmentMB != 10 {
		t.Fatalf("defaults not applied: %+v %+v", c.App.HTTP, c.Storage)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	p := writeConfig(t, "db:\n  driver: sqlite\n  dsn: x.db\n")
	t.Setenv("APP_JWT_SECRET", "from-env")
	t.Setenv("APP_APP_HTTP_PORT", "8081")
	c, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if c.JWT.Secret != "from-env" || c.App.HTTP.Port != 8081 {
		t.Fatalf("env not applied: secret=%q port=%d", c.JWT.Secret, c.App.HTTP.Port)
	}
}

func TestLoadValidation(t *testing.T) {
	p := writeConfig(t, "db:\n  driver: oracle\n")
	_, err := Load(p)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"jwt.secret", "db.driver", "db.dsn"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestMB(t *testing.T) {
	if MB(5) != 5<<20 {
		t.Fatal("MB(5)")
	}
}
