package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mohamedthameursassi/saferoute/models"
)

// EnvPrefix prefixes every environment override, e.g. SAFEROUTE_SERVER_ADDR.
const EnvPrefix = "SAFEROUTE"

type ServerConfig struct {
	Addr        string   `mapstructure:"addr"`
	CorsOrigins []string `mapstructure:"cors_origins"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Dir   string `mapstructure:"dir"`
}

// GeocoderConfig selects the address resolver: nominatim, google or static.
type GeocoderConfig struct {
	Provider      string        `mapstructure:"provider"`
	BaseURL       string        `mapstructure:"base_url"`
	UserAgent     string        `mapstructure:"user_agent"`
	APIKey        string        `mapstructure:"api_key"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	CacheSize     int           `mapstructure:"cache_size"`
	Region        models.Region `mapstructure:"region"`
}

type RoutesConfig struct {
	PathPoints   int  `mapstructure:"path_points"`
	RandomCurves bool `mapstructure:"random_curves"`
}

type SimulationConfig struct {
	Step     int           `mapstructure:"step"`
	Interval time.Duration `mapstructure:"interval"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Geocoder   GeocoderConfig   `mapstructure:"geocoder"`
	Routes     RoutesConfig     `mapstructure:"routes"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Fixtures   *models.Fixtures `mapstructure:"fixtures"`
}

// FixtureData returns the configured reference data, or the built-in set.
func (c *Config) FixtureData() models.Fixtures {
	if c.Fixtures == nil {
		return models.DefaultFixtures()
	}
	return *c.Fixtures
}

// Load reads .env, then the YAML file at path, then SAFEROUTE_* environment
// overrides. A missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := newViper(path)
	if err := readInConfig(v, path); err != nil {
		return nil, err
	}
	return decode(v)
}

// Watch reloads the file at path whenever it changes and hands the new
// configuration to fn. Reloads that fail to decode are passed to onErr.
func Watch(path string, fn func(*Config), onErr func(error)) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("watch config: %w", err)
	}

	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := decode(v)
		if err != nil {
			if onErr != nil {
				onErr(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		fn(cfg)
	})
	v.WatchConfig()
	return nil
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func readInConfig(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Geocoder.Provider == "google" && cfg.Geocoder.APIKey == "" {
		if key := os.Getenv("GOOGLE_MAPS_API_KEY"); key != "" {
			cfg.Geocoder.APIKey = key
		}
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", "")

	r := models.BengaluruRegion
	v.SetDefault("geocoder.provider", "nominatim")
	v.SetDefault("geocoder.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoder.user_agent", "saferoute/1.0")
	v.SetDefault("geocoder.api_key", "")
	v.SetDefault("geocoder.rate_per_second", 1.0)
	v.SetDefault("geocoder.cache_size", 256)
	v.SetDefault("geocoder.region.min_lat", r.MinLat)
	v.SetDefault("geocoder.region.min_lng", r.MinLng)
	v.SetDefault("geocoder.region.max_lat", r.MaxLat)
	v.SetDefault("geocoder.region.max_lng", r.MaxLng)
	v.SetDefault("geocoder.region.country", r.Country)

	v.SetDefault("routes.path_points", 200)
	v.SetDefault("routes.random_curves", false)

	v.SetDefault("simulation.step", 4)
	v.SetDefault("simulation.interval", 200*time.Millisecond)
}
