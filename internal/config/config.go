package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"coke_oee/internal/oee"
)

// EnvPrefix prefixes environment overrides, e.g. OEE_DB_PATH for db.path.
const EnvPrefix = "OEE"

type Config struct {
	Port    string        `mapstructure:"port"`
	DB      DBConfig      `mapstructure:"db"`
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Plant   PlantConfig   `mapstructure:"plant"`
	Targets TargetsConfig `mapstructure:"targets"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console | json
}

type ServerConfig struct {
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
}

type AuthConfig struct {
	Secret       string        `mapstructure:"secret"`
	Username     string        `mapstructure:"username"`
	PasswordHash string        `mapstructure:"password_hash"` // bcrypt
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
}

type PlantConfig struct {
	Timezone                 string  `mapstructure:"timezone"`
	TargetOvensPerDay        float64 `mapstructure:"target_ovens_per_day"`
	TargetShiftChangesPerDay float64 `mapstructure:"target_shift_changes_per_day"`
}

type TargetsConfig struct {
	OEE   float64 `mapstructure:"oee"`
	Avail float64 `mapstructure:"avail"`
	Perf  float64 `mapstructure:"perf"`
	Qual  float64 `mapstructure:"qual"`
}

func setDefaults(v *viper.Viper) {
	t := oee.DefaultTargets()

	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "oee.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.max_upload_bytes", 32<<20)
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.username", "")
	v.SetDefault("auth.password_hash", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("plant.timezone", "America/Sao_Paulo")
	v.SetDefault("plant.target_ovens_per_day", t.OvensPerDay)
	v.SetDefault("plant.target_shift_changes_per_day", t.ShiftChangesPerDay)
	v.SetDefault("targets.oee", t.OEE)
	v.SetDefault("targets.avail", t.Avail)
	v.SetDefault("targets.perf", t.Perf)
	v.SetDefault("targets.qual", t.Qual)
}

// Load reads configuration from path, or from configs/config.yml when path
// is empty. A missing default file is not an error. Environment variables
// with the OEE_ prefix override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would make reports meaningless.
func (c *Config) Validate() error {
	if c.Plant.TargetOvensPerDay <= 0 {
		return fmt.Errorf("plant.target_ovens_per_day must be positive, got %v", c.Plant.TargetOvensPerDay)
	}
	for name, pct := range map[string]float64{
		"targets.oee": c.Targets.OEE, "targets.avail": c.Targets.Avail,
		"targets.perf": c.Targets.Perf, "targets.qual": c.Targets.Qual,
	} {
		if pct <= 0 || pct > 100 {
			return fmt.Errorf("%s must be in (0, 100], got %v", name, pct)
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location is the plant timezone in which spreadsheet wall-clock values are read.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Plant.Timezone)
	if err != nil {
		return nil, fmt.Errorf("plant.timezone %q: %w", c.Plant.Timezone, err)
	}
	return loc, nil
}

// OEETargets converts the configured goals for the computation core.
func (c *Config) OEETargets() oee.Targets {
	return oee.Targets{
		OEE:                c.Targets.OEE,
		Avail:              c.Targets.Avail,
		Perf:               c.Targets.Perf,
		Qual:               c.Targets.Qual,
		OvensPerDay:        c.Plant.TargetOvensPerDay,
		ShiftChangesPerDay: c.Plant.TargetShiftChangesPerDay,
	}
}
