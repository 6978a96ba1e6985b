package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test pack defaults
	if len(cfg.Packs.Paths) != 0 {
		t.Errorf("expected no default pack paths, got %v", cfg.Packs.Paths)
	}
	if cfg.Packs.Seed != 0 {
		t.Errorf("expected seed 0, got %d", cfg.Packs.Seed)
	}

	// Test compute defaults
	if cfg.Compute.Workers != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.Compute.Workers)
	}
	if cfg.Compute.QueueSize != 64 {
		t.Errorf("expected queue size 64, got %d", cfg.Compute.QueueSize)
	}
	if cfg.Compute.Timeout != 2*time.Second {
		t.Errorf("expected timeout 2s, got %v", cfg.Compute.Timeout)
	}

	// Test animation defaults
	if cfg.Animation.TickRate != 20 {
		t.Errorf("expected tick rate 20, got %f", cfg.Animation.TickRate)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "voxelpack.yaml")

	yamlContent := `
packs:
  paths:
    - /data/packs/base
    - /data/packs/overrides
  seed: 12345

compute:
  workers: 8
  queue_size: 256
  timeout: 5s

animation:
  tick_rate: 40

logging:
  level: "debug"
  log_file: "voxelpack.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if len(cfg.Packs.Paths) != 2 || cfg.Packs.Paths[1] != "/data/packs/overrides" {
		t.Errorf("expected 2 pack paths, got %v", cfg.Packs.Paths)
	}
	if cfg.Packs.Seed != 12345 {
		t.Errorf("expected seed 12345, got %d", cfg.Packs.Seed)
	}

	if cfg.Compute.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Compute.Workers)
	}
	if cfg.Compute.QueueSize != 256 {
		t.Errorf("expected queue size 256, got %d", cfg.Compute.QueueSize)
	}
	if cfg.Compute.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.Compute.Timeout)
	}

	if cfg.Animation.TickRate != 40 {
		t.Errorf("expected tick rate 40, got %f", cfg.Animation.TickRate)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "voxelpack.log" {
		t.Errorf("expected log file 'voxelpack.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
compute:
  workers: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/voxelpack.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create voxelpack.yaml in current directory
	configPath := filepath.Join(tmpDir, "voxelpack.yaml")
	if err := os.WriteFile(configPath, []byte("packs:\n  seed: 7\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find voxelpack.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "seed flag",
			setup: func() {
				*flagSeed = 99
				flagSeedSet = true
			},
			verify: func(cfg *Config) {
				if cfg.Packs.Seed != 99 {
					t.Errorf("expected seed 99, got %d", cfg.Packs.Seed)
				}
			},
			teardown: func() {
				*flagSeed = 0
				flagSeedSet = false
			},
		},
		{
			name: "packs flag",
			setup: func() {
				*flagPacks = "/a/base, /b/extra"
			},
			verify: func(cfg *Config) {
				if len(cfg.Packs.Paths) != 2 || cfg.Packs.Paths[1] != "/b/extra" {
					t.Errorf("expected packs [/a/base /b/extra], got %v", cfg.Packs.Paths)
				}
			},
			teardown: func() {
				*flagPacks = ""
			},
		},
		{
			name: "workers flag",
			setup: func() {
				*flagWorkers = 4
			},
			verify: func(cfg *Config) {
				if cfg.Compute.Workers != 4 {
					t.Errorf("expected 4 workers, got %d", cfg.Compute.Workers)
				}
			},
			teardown: func() {
				*flagWorkers = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "voxelpack.yaml")

	yamlContent := `
packs:
  seed: 555
compute:
  workers: 3
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWorkers = 6
	defer func() {
		*flagConfig = ""
		*flagWorkers = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Workers should be from flag (6), not file (3)
	if cfg.Compute.Workers != 6 {
		t.Errorf("expected 6 workers from flag, got %d", cfg.Compute.Workers)
	}

	// Seed should be from file (555) since no flag override
	if cfg.Packs.Seed != 555 {
		t.Errorf("expected seed 555 from file, got %d", cfg.Packs.Seed)
	}
}
