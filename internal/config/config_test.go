package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TODOQ_BACKEND", "")
	t.Setenv("TODOQ_DATABASE", "")
	t.Setenv("TODOQ_ENDPOINT", "")
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendLocal {
		t.Fatalf("expected local default, got %q", cfg.Backend)
	}
	if cfg.Local.Database == "" {
		t.Fatal("expected a default database path")
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "backend = \"remote\"\n\n[remote]\nendpoint = \"https://tasks.example.com/graphql\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendRemote {
		t.Fatalf("expected remote backend, got %q", cfg.Backend)
	}
	if cfg.Remote.Endpoint != "https://tasks.example.com/graphql" {
		t.Fatalf("unexpected endpoint %q", cfg.Remote.Endpoint)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODOQ_BACKEND", "remote")
	t.Setenv("TODOQ_ENDPOINT", "https://override.example.com/graphql")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendRemote || cfg.Remote.Endpoint != "https://override.example.com/graphql" {
		t.Fatalf("env override not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"local with db", Config{Backend: BackendLocal, Local: LocalConfig{Database: "/tmp/x.db"}}, false},
		{"local without db", Config{Backend: BackendLocal}, true},
		{"remote with endpoint", Config{Backend: BackendRemote, Remote: RemoteConfig{Endpoint: "https://x/graphql"}}, false},
		{"remote without endpoint", Config{Backend: BackendRemote}, true},
		{"unknown backend", Config{Backend: "cloud"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
