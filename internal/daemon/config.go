// Package daemon holds walletd's runtime configuration.
// Configuration is layered: built-in defaults, then an optional TOML file,
// then a .env file, then environment variables.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/trymyra/walletd/internal/domain"
)

// Config is the full walletd configuration.
type Config struct {
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	Metrics MetricsConfig `toml:"metrics"`
	Pricing PricingConfig `toml:"pricing"`
}

// APIConfig configures the HTTP listener.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns the listen address in host:port form.
func (a APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// StorageConfig configures the embedded database location.
type StorageConfig struct {
	Dir string `toml:"dir"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// PricingConfig is the credit cost per generation action kind.
// The price list is external configuration: the wallet service never
// computes prices.
type PricingConfig struct {
	Image   int64 `toml:"image"`
	UGC     int64 `toml:"ugc"`
	VFX     int64 `toml:"vfx"`
	NoHuman int64 `toml:"no_human"`
}

// PriceList converts the config section into the domain mapping.
func (p PricingConfig) PriceList() domain.PriceList {
	return domain.PriceList{
		domain.ActionImage:   p.Image,
		domain.ActionUGC:     p.UGC,
		domain.ActionVFX:     p.VFX,
		domain.ActionNoHuman: p.NoHuman,
	}
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	dataDir := ".walletd"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".walletd")
	}
	return Config{
		API:     APIConfig{Host: "127.0.0.1", Port: 8787},
		Storage: StorageConfig{Dir: dataDir},
		Metrics: MetricsConfig{Enabled: true},
		Pricing: PricingConfig{Image: 5, UGC: 20, VFX: 25, NoHuman: 15},
	}
}

// Load builds the effective configuration. path may be empty; a missing
// config file is not an error, the defaults simply apply.
func Load(path string) (Config, error) {
	// .env is optional and only feeds the env override step below.
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)

	if cfg.API.Port <= 0 || cfg.API.Port > 65535 {
		return Config{}, fmt.Errorf("invalid api port %d", cfg.API.Port)
	}
	return cfg, nil
}

// applyEnv lets deployment platforms override the file-based config.
func applyEnv(cfg *Config) {
	if v := os.Getenv("WALLETD_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("WALLETD_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = port
		}
	}
	if v := os.Getenv("WALLETD_DATA_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv("WALLETD_METRICS"); v != "" {
		cfg.Metrics.Enabled = v == "1" || v == "true"
	}
}
