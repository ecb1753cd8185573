package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Ingest  IngestConfig  `yaml:"ingest"`
}

type ServerConfig struct {
	ListenAddr     string        `yaml:"listen_addr" validate:"required"`
	CorsOrigins    []string      `yaml:"cors_origins"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`
	// requests per second per client ip, 0 disables limiting
	RateLimit float64 `yaml:"rate_limit" validate:"gte=0"`
}

type DataConfig struct {
	AirportsFile string `yaml:"airports_file"`
	RoutesFile   string `yaml:"routes_file"`
	ZonesFile    string `yaml:"zones_file"`
	Watch        bool   `yaml:"watch"`
}

type StorageConfig struct {
	BadgerDir string `yaml:"badger_dir"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

type IngestConfig struct {
	Seed        uint64  `yaml:"seed"`
	CruiseKmh   float64 `yaml:"cruise_kmh" validate:"gt=0"`
	TaxiMinutes float64 `yaml:"taxi_minutes" validate:"gte=0"`
	PricePerKm  float64 `yaml:"price_per_km" validate:"gt=0"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:     ":5000",
			CorsOrigins:    []string{"http://localhost:4200", "https://*", "http://*"},
			RequestTimeout: 30 * time.Second,
			RateLimit:      0,
		},
		Data: DataConfig{
			AirportsFile: "data/airports.dat",
			RoutesFile:   "data/routes.dat",
		},
		Storage: StorageConfig{
			BadgerDir: "data/skyroute_db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Ingest: IngestConfig{
			Seed:        42,
			CruiseKmh:   900,
			TaxiMinutes: 45,
			PricePerKm:  0.12,
		},
	}
}

var ErrNoDataSource = errors.New("config: neither source files nor badger_dir configured")

// Load reads the yaml file at path over DefaultConfig. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read the config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse the config file %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Data.AirportsFile == "" && c.Storage.BadgerDir == "" {
		return ErrNoDataSource
	}
	return nil
}
