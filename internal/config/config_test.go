package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default addr = %q", cfg.Server.Addr)
	}
	if cfg.Matchmaking.QueueCapacity != 0 {
		t.Errorf("default queue capacity = %d", cfg.Matchmaking.QueueCapacity)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	body := `
server:
  addr: ":9000"
  allowed_origins:
    - https://dama.example.com
storage:
  dir: /var/lib/dama
matchmaking:
  queue_capacity: 64
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "https://dama.example.com" {
		t.Errorf("origins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Storage.Dir != "/var/lib/dama" {
		t.Errorf("storage dir = %q", cfg.Storage.Dir)
	}
	if cfg.Matchmaking.QueueCapacity != 64 {
		t.Errorf("queue capacity = %d", cfg.Matchmaking.QueueCapacity)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed YAML accepted")
	}
}
