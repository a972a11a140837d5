package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	HERE      HEREConfig      `mapstructure:"here"`
	MapView   MapViewConfig   `mapstructure:"mapview"`
	Regions   RegionsConfig   `mapstructure:"regions"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// HEREConfig points the service gateway at the HERE platform.
type HEREConfig struct {
	APIKey         string `mapstructure:"api_key"`
	RoutingURL     string `mapstructure:"routing_url"`
	GeocodeURL     string `mapstructure:"geocode_url"`
	TransportMode  string `mapstructure:"transport_mode"`
	RoutingMode    string `mapstructure:"routing_mode"`
	CountryFilter  string `mapstructure:"country_filter"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Timeout is the per-call deadline for upstream requests.
func (h HEREConfig) Timeout() time.Duration {
	return time.Duration(h.TimeoutSeconds) * time.Second
}

// MapViewConfig holds the controller's tunables.
type MapViewConfig struct {
	ProbeRadiusMeters float64 `mapstructure:"probe_radius_meters"`
	ClusterEps        float64 `mapstructure:"cluster_eps"`
	ClusterMinWeight  int     `mapstructure:"cluster_min_weight"`
	DefaultZoom       float64 `mapstructure:"default_zoom"`
	DefaultLat        float64 `mapstructure:"default_lat"`
	DefaultLon        float64 `mapstructure:"default_lon"`
}

// RegionsConfig maps geofence region keys to boundary files.
type RegionsConfig struct {
	Dir   string            `mapstructure:"dir"`
	Files map[string]string `mapstructure:"files"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "heremap")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "heremap")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("here.routing_url", "https://router.hereapi.com/v8/routes")
	v.SetDefault("here.geocode_url", "https://geocode.search.hereapi.com/v1/geocode")
	v.SetDefault("here.transport_mode", "truck")
	v.SetDefault("here.routing_mode", "fast")
	v.SetDefault("here.country_filter", "countryCode:USA")
	v.SetDefault("here.timeout_seconds", 10)
	v.SetDefault("mapview.probe_radius_meters", 10000)
	v.SetDefault("mapview.cluster_eps", 32)
	v.SetDefault("mapview.cluster_min_weight", 2)
	v.SetDefault("mapview.default_zoom", 7)
	v.SetDefault("mapview.default_lat", 34.061966881560096)
	v.SetDefault("mapview.default_lon", -118.23685846823405)
	v.SetDefault("regions.dir", "./data/regions")
	v.SetDefault("regions.files", map[string]string{
		"los_angeles": "los_angeles.json",
		"newyork":     "newyork.json",
		"washington":  "washington.json",
		"alabama":     "alabama.json",
	})

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: HEREMAP_HERE_API_KEY → here.api_key
	v.SetEnvPrefix("HEREMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Database.Host == "" {
		errs = append(errs, "database.host is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", c.Database.Port))
	}
	if c.Database.User == "" {
		errs = append(errs, "database.user is required")
	}
	if c.Database.DBName == "" {
		errs = append(errs, "database.dbname is required")
	}
	if c.NATS.URL == "" {
		errs = append(errs, "nats.url is required")
	}
	if c.Valkey.Addr == "" {
		errs = append(errs, "valkey.addr is required")
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.HERE.RoutingURL == "" || c.HERE.GeocodeURL == "" {
		errs = append(errs, "here.routing_url and here.geocode_url are required")
	}
	if c.HERE.TimeoutSeconds <= 0 {
		errs = append(errs, "here.timeout_seconds must be positive")
	}
	if c.MapView.ProbeRadiusMeters <= 0 {
		errs = append(errs, "mapview.probe_radius_meters must be positive")
	}
	if c.MapView.ClusterEps <= 0 {
		errs = append(errs, "mapview.cluster_eps must be positive")
	}
	if c.MapView.ClusterMinWeight < 1 {
		errs = append(errs, "mapview.cluster_min_weight must be at least 1")
	}
	if c.Regions.Dir == "" {
		errs = append(errs, "regions.dir is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
