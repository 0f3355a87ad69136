package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadOptionsDefaults(t *testing.T) {
	opts, err := LoadOptions("")
	if err != nil {
		t.Fatalf("LoadOptions() error = %v", err)
	}

	if opts.Workers != DefaultWorkers {
		t.Errorf("Workers got = %d, want %d", opts.Workers, DefaultWorkers)
	}
	if opts.HTTPTimeout() != time.Duration(DefaultTimeout)*time.Second {
		t.Errorf("HTTPTimeout() got = %v", opts.HTTPTimeout())
	}
	if opts.UserAgent == "" {
		t.Errorf("UserAgent default is empty")
	}
}

func TestLoadOptionsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plugscan.yaml")

	data := "kb: /etc/plugscan/kb.json\nworkers: 2\ntimeout: 5\nuser_agent: plugscan-audit\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions() error = %v", err)
	}

	if opts.KBFile != "/etc/plugscan/kb.json" {
		t.Errorf("KBFile got = %s", opts.KBFile)
	}
	if opts.Workers != 2 {
		t.Errorf("Workers got = %d, want 2", opts.Workers)
	}
	if opts.HTTPTimeout() != 5*time.Second {
		t.Errorf("HTTPTimeout() got = %v, want 5s", opts.HTTPTimeout())
	}
	if opts.UserAgent != "plugscan-audit" {
		t.Errorf("UserAgent got = %s", opts.UserAgent)
	}
}

func TestLoadOptionsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plugscan.yaml")

	if err := os.WriteFile(path, []byte("workers: [not, a, number]"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := LoadOptions(path); err == nil {
		t.Errorf("LoadOptions() expected error on malformed file")
	}
}

func TestLoadOptionsClamps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plugscan.yaml")

	if err := os.WriteFile(path, []byte("workers: 0\ntimeout: -3\n"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions() error = %v", err)
	}

	if opts.Workers != DefaultWorkers || opts.Timeout != DefaultTimeout {
		t.Errorf("zero values were not clamped: workers=%d timeout=%d",
			opts.Workers, opts.Timeout)
	}
}
