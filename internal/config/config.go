package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	pkgconfig "github.com/bc-vibes/bcid/pkg/config"
	pkglog "github.com/bc-vibes/bcid/pkg/log"
)

const envPrefix = "BCID"

type Config struct {
	MachineID int           `mapstructure:"machine_id"`
	Entropy   EntropyConfig `mapstructure:"entropy"`
	Time      TimeConfig    `mapstructure:"time"`
	Log       pkglog.Config `mapstructure:"log"`
}

type EntropyConfig struct {
	Device string `mapstructure:"device"`
}

type TimeConfig struct {
	// Location used to interpret explicit calendar strings: "Local", "UTC"
	// or an IANA zone name.
	Location string `mapstructure:"location"`
}

// Load reads config.yaml from ./config or the working directory, or the file
// at path when non-empty, then applies BCID_* environment overrides.
func Load(path string) (*Config, error) {
	var (
		v   *viper.Viper
		err error
	)
	if path != "" {
		v, err = pkgconfig.LoadFile(path, envPrefix)
	} else {
		v, err = pkgconfig.Load("./config", "config", envPrefix)
	}
	if err != nil {
		return nil, err
	}

	setDefaults(v)

	v.BindEnv("machine_id", "BCID_MACHINE_ID")
	v.BindEnv("entropy.device", "BCID_ENTROPY_DEVICE")
	v.BindEnv("time.location", "BCID_TIME_LOCATION")
	v.BindEnv("log.level", "BCID_LOG_LEVEL")
	v.BindEnv("log.pretty", "BCID_LOG_PRETTY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("machine_id", 1)
	v.SetDefault("entropy.device", "/dev/urandom")
	v.SetDefault("time.location", "Local")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.service_name", "bcid")
}

// Location resolves the configured calendar location.
func (c *Config) Location() (*time.Location, error) {
	if c.Time.Location == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Time.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid time.location %q: %w", c.Time.Location, err)
	}
	return loc, nil
}
