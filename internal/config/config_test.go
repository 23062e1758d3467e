package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gofinger.yaml")
	content := `
addr: ":9443"
host: example.com
db_url: "file:test.db"
seed_file: seed.json
tls:
  self_signed: true
  acme_domains: ["example.com", "www.example.com"]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GOFINGER_DEBUG", "true")
	t.Setenv("GOFINGER_TLS_ACME_CACHE_DIR", "/var/cache/gofinger")

	cfg, err := ReadConfigFile(path)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}

	expected := Configuration{
		Addr:             ":9443",
		Host:             "example.com",
		Debug:            true,
		DbUrl:            "file:test.db",
		MigrationsFolder: "migrations",
		SeedFile:         "seed.json",
		TLS: TLS{
			AcmeDomains:  []string{"example.com", "www.example.com"},
			AcmeCacheDir: "/var/cache/gofinger",
			SelfSigned:   true,
		},
	}
	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Error(diff)
	}
	if !cfg.TLS.Enabled() {
		t.Error("expected tls to be enabled")
	}
}

func TestReadConfigFile_Missing(t *testing.T) {
	if _, err := ReadConfigFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing explicit file")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		cfg   Configuration
		valid bool
	}{
		{"valid", Configuration{Addr: ":8443", Host: "localhost", DbUrl: "x.db"}, true},
		{"bad addr", Configuration{Addr: "8443", Host: "localhost", DbUrl: "x.db"}, false},
		{"no host", Configuration{Addr: ":8443", DbUrl: "x.db"}, false},
		{"no db", Configuration{Addr: ":8443", Host: "localhost"}, false},
		{"cert without key", Configuration{Addr: ":8443", Host: "localhost", DbUrl: "x.db", TLS: TLS{CertFile: "c.pem"}}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if c.valid && err != nil {
				t.Error("unexpected error:", err)
			} else if !c.valid && err == nil {
				t.Error("expected an error")
			}
		})
	}
}
