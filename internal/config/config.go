// Package config handles tool configuration loading and management.
package config

import "time"

// Config holds all resolver settings.
type Config struct {
	Packs     PacksConfig     `yaml:"packs"`
	Compute   ComputeConfig   `yaml:"compute"`
	Animation AnimationConfig `yaml:"animation"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// PacksConfig holds resource pack sources and ordering.
type PacksConfig struct {
	// Paths to pack root directories, lowest priority first. Later packs
	// override earlier ones for the assets they both provide.
	Paths []string `yaml:"paths"`
	// Seed for weighted variant picks.
	Seed int64 `yaml:"seed"`
}

// ComputeConfig holds geometry pool settings.
type ComputeConfig struct {
	Workers   int           `yaml:"workers"`
	QueueSize int           `yaml:"queue_size"`
	Timeout   time.Duration `yaml:"timeout"`
}

// AnimationConfig holds animation timing settings.
type AnimationConfig struct {
	TickRate float64 `yaml:"tick_rate"` // simulated ticks per second
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Packs: PacksConfig{
			Paths: nil,
			Seed:  0,
		},
		Compute: ComputeConfig{
			Workers:   2,
			QueueSize: 64,
			Timeout:   2 * time.Second,
		},
		Animation: AnimationConfig{
			TickRate: 20,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
