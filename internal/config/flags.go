package config

import (
	"flag"
	"strings"
)

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagSeed    = flag.Int64("seed", 0, "Placement seed for weighted variant picks")
	flagSeedSet = false
	flagPacks   = flag.String("packs", "", "Comma-separated pack directories, lowest priority first")
	flagWorkers = flag.Int("workers", 0, "Geometry worker count")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			flagSeedSet = true
		}
	})
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagSeedSet {
		cfg.Packs.Seed = *flagSeed
	}
	if *flagPacks != "" {
		cfg.Packs.Paths = nil
		for _, p := range strings.Split(*flagPacks, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Packs.Paths = append(cfg.Packs.Paths, p)
			}
		}
	}
	if *flagWorkers > 0 {
		cfg.Compute.Workers = *flagWorkers
	}
}
