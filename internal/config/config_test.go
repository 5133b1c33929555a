package config

import (
	"testing"
	"time"
)

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != 3001 {
		t.Fatalf("expected default port 3001, got %d", cfg.Server.Port)
	}
	if cfg.Storage.Backend != StorageBackendDisk {
		t.Fatalf("expected disk backend by default, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.MaxFileSize != 100*1024*1024 {
		t.Fatalf("expected 100MiB file ceiling, got %d", cfg.Storage.MaxFileSize)
	}
	if cfg.Storage.MaxBatchFiles != 500 {
		t.Fatalf("expected 500 batch files, got %d", cfg.Storage.MaxBatchFiles)
	}
	if cfg.Postgres.DSN() == "" {
		t.Fatalf("expected non-empty DSN")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("FILEHUB_API_PORT", "9090")
	t.Setenv("FILEHUB_API_READ_TIMEOUT", "30s")
	t.Setenv("FILEHUB_STORAGE_BACKEND", "minio")
	t.Setenv("FILEHUB_UPLOAD_DIR", "/tmp/blobs")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Fatalf("expected 30s read timeout, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Storage.Backend != StorageBackendMinIO {
		t.Fatalf("expected minio backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.UploadDir != "/tmp/blobs" {
		t.Fatalf("expected overridden upload dir, got %q", cfg.Storage.UploadDir)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("FILEHUB_STORAGE_BACKEND", "tape")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestAddressFormat(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8081}
	if s.Address() != "127.0.0.1:8081" {
		t.Fatalf("unexpected address %q", s.Address())
	}
}
