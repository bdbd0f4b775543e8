package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env                string        `mapstructure:"ENV"`
	Port               string        `mapstructure:"PORT"`
	DatabaseURL        string        `mapstructure:"DATABASE_URL"`
	AdminKey           string        `mapstructure:"ADMIN_KEY"`
	CORSAllowed        string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout     time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
	GeocodeURL         string        `mapstructure:"GEOCODE_URL"`
	GeocodeUserAgent   string        `mapstructure:"GEOCODE_USER_AGENT"`
	GeocodeCity        string        `mapstructure:"GEOCODE_CITY"`
	GeocodeCountry     string        `mapstructure:"GEOCODE_COUNTRY"`
	GeocodeMinInterval time.Duration `mapstructure:"GEOCODE_MIN_INTERVAL"`
	DefaultLat         float64       `mapstructure:"DEFAULT_LAT"`
	DefaultLon         float64       `mapstructure:"DEFAULT_LON"`
	GridPrecision      int           `mapstructure:"GRID_PRECISION"`
	TopZones           int           `mapstructure:"TOP_ZONES"`
	ClusterEpsKm       float64       `mapstructure:"CLUSTER_EPS_KM"`
	ClusterMinSamples  int           `mapstructure:"CLUSTER_MIN_SAMPLES"`
	ScoreWorkers       int           `mapstructure:"SCORE_WORKERS"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	// Keys without a default are invisible to Unmarshal even when set in the
	// environment.
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("ADMIN_KEY", "")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("GEOCODE_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("GEOCODE_USER_AGENT", "FixMyCity/1.0")
	v.SetDefault("GEOCODE_CITY", "Chennai")
	v.SetDefault("GEOCODE_COUNTRY", "India")
	v.SetDefault("GEOCODE_MIN_INTERVAL", "1s")
	v.SetDefault("DEFAULT_LAT", 13.0827)
	v.SetDefault("DEFAULT_LON", 80.2707)
	v.SetDefault("GRID_PRECISION", 2)
	v.SetDefault("TOP_ZONES", 5)
	v.SetDefault("CLUSTER_EPS_KM", 0.5)
	v.SetDefault("CLUSTER_MIN_SAMPLES", 2)
	v.SetDefault("SCORE_WORKERS", 4)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects engine settings the hotspot engine would refuse at request
// time anyway.
func (c Config) Validate() error {
	var errs []error
	if c.GridPrecision < 0 || c.GridPrecision > 6 {
		errs = append(errs, fmt.Errorf("GRID_PRECISION must be between 0 and 6, got %d", c.GridPrecision))
	}
	if c.TopZones < 1 {
		errs = append(errs, fmt.Errorf("TOP_ZONES must be at least 1, got %d", c.TopZones))
	}
	if c.ClusterEpsKm <= 0 {
		errs = append(errs, fmt.Errorf("CLUSTER_EPS_KM must be positive, got %v", c.ClusterEpsKm))
	}
	if c.ClusterMinSamples < 1 {
		errs = append(errs, fmt.Errorf("CLUSTER_MIN_SAMPLES must be at least 1, got %d", c.ClusterMinSamples))
	}
	if c.ScoreWorkers < 1 {
		errs = append(errs, fmt.Errorf("SCORE_WORKERS must be at least 1, got %d", c.ScoreWorkers))
	}
	if c.DefaultLat < -90 || c.DefaultLat > 90 || c.DefaultLon < -180 || c.DefaultLon > 180 {
		errs = append(errs, fmt.Errorf("DEFAULT_LAT/DEFAULT_LON out of range: (%v, %v)", c.DefaultLat, c.DefaultLon))
	}
	return errors.Join(errs...)
}
