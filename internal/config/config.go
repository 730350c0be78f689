// Package config loads server settings from a YAML file with ARENA_*
// environment overrides
package config

import (
	"bytes"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// EnvPrefix prefixes every environment override. A setting's variable is the
// prefix plus its key path in upper case with dots as underscores, e.g.
// ARENA_AUCTION_SWEEP_INTERVAL.
const EnvPrefix = "ARENA"

// Config holds every server setting
type Config struct {
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
	Redis       RedisConfig       `yaml:"redis" mapstructure:"redis"`
	Presence    PresenceConfig    `yaml:"presence" mapstructure:"presence"`
	Auction     AuctionConfig     `yaml:"auction" mapstructure:"auction"`
	Automated   AutomatedConfig   `yaml:"automated" mapstructure:"automated"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard" mapstructure:"leaderboard"`
	Accounts    AccountsConfig    `yaml:"accounts" mapstructure:"accounts"`
}

// ServerConfig configures the gRPC listener
type ServerConfig struct {
	Port            int           `yaml:"port" mapstructure:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// LogConfig configures the slog handler
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// RedisConfig selects the store backend. With no addresses the server keeps
// state in memory.
type RedisConfig struct {
	Addrs      []string `yaml:"addrs" mapstructure:"addrs"`
	MasterName string   `yaml:"master_name" mapstructure:"master_name"`
	Password   string   `yaml:"password" mapstructure:"password"`
	DB         int      `yaml:"db" mapstructure:"db"`
	PoolSize   int      `yaml:"pool_size" mapstructure:"pool_size"`
	UseTLS     bool     `yaml:"use_tls" mapstructure:"use_tls"`
	// MaxAttempts bounds optimistic transaction retries
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// Enabled reports whether a Redis backend is configured
func (r RedisConfig) Enabled() bool {
	return len(r.Addrs) > 0
}

// PresenceConfig configures the online tracker
type PresenceConfig struct {
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// AuctionConfig configures the skill auction clock
type AuctionConfig struct {
	Window        time.Duration `yaml:"window" mapstructure:"window"`
	SweepInterval time.Duration `yaml:"sweep_interval" mapstructure:"sweep_interval"`
}

// AutomatedConfig configures automated account progression
type AutomatedConfig struct {
	Enabled       bool          `yaml:"enabled" mapstructure:"enabled"`
	TowerInterval time.Duration `yaml:"tower_interval" mapstructure:"tower_interval"`
}

// LeaderboardConfig configures the guild wins board
type LeaderboardConfig struct {
	Size int `yaml:"size" mapstructure:"size"`
}

// AccountsConfig lists accounts the server guarantees at startup
type AccountsConfig struct {
	// Admins are created as admin accounts when no account has the name
	Admins []string `yaml:"admins" mapstructure:"admins"`
}

// Default returns the settings used when nothing overrides them
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            50051,
			ShutdownTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Redis: RedisConfig{
			MaxAttempts: 8,
		},
		Presence: PresenceConfig{
			TTL: 2 * time.Minute,
		},
		Auction: AuctionConfig{
			Window:        8 * time.Hour,
			SweepInterval: 30 * time.Second,
		},
		Automated: AutomatedConfig{
			Enabled:       true,
			TowerInterval: time.Minute,
		},
		Leaderboard: LeaderboardConfig{
			Size: 10,
		},
	}
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("server.port", int64(c.Server.Port), 1, 65535, vb)
	if c.Server.ShutdownTimeout <= 0 {
		vb.InvalidField("server.shutdown_timeout", "must be positive")
	}
	errors.ValidateEnum("log.level", strings.ToLower(c.Log.Level), []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("log.format", strings.ToLower(c.Log.Format), []string{"text", "json"}, vb)
	if c.Redis.MasterName != "" && len(c.Redis.Addrs) == 0 {
		vb.InvalidField("redis.addrs", "sentinel addresses are required with a master name")
	}
	if c.Redis.MaxAttempts < 1 {
		vb.InvalidField("redis.max_attempts", "must be at least 1")
	}
	if c.Presence.TTL <= 0 {
		vb.InvalidField("presence.ttl", "must be positive")
	}
	if c.Auction.Window <= 0 {
		vb.InvalidField("auction.window", "must be positive")
	}
	if c.Auction.SweepInterval <= 0 || c.Auction.SweepInterval > time.Minute {
		vb.InvalidField("auction.sweep_interval", "must be between 0 and 1m")
	}
	if c.Automated.Enabled && c.Automated.TowerInterval <= 0 {
		vb.InvalidField("automated.tower_interval", "must be positive")
	}
	errors.ValidatePositive("leaderboard.size", int64(c.Leaderboard.Size), vb)
	for _, name := range c.Accounts.Admins {
		if strings.TrimSpace(name) == "" {
			vb.InvalidField("accounts.admins", "names cannot be blank")
			break
		}
	}

	return vb.Build()
}

// Load reads path over the defaults, then applies environment overrides. An
// empty path skips the file. envFile, when it exists, supplies ARENA_*
// values that the process environment has not set.
func Load(path, envFile string) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		}
		if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse config")
		}
	}

	if envFile != "" {
		fileEnv, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			applyEnvFile(v, fileEnv)
		case !os.IsNotExist(err):
			return nil, errors.Wrapf(err, "failed to read env file %s", envFile)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// newViper seeds a viper instance with Default() so every key is known to
// AutomaticEnv
func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults, err := yaml.Marshal(Default())
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode defaults")
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}
	return v, nil
}

// applyEnvFile copies dotenv values for known keys the process environment
// leaves unset
func applyEnvFile(v *viper.Viper, fileEnv map[string]string) {
	replacer := strings.NewReplacer(".", "_")
	for _, key := range v.AllKeys() {
		name := EnvPrefix + "_" + strings.ToUpper(replacer.Replace(key))
		if _, set := os.LookupEnv(name); set {
			continue
		}
		if val, ok := fileEnv[name]; ok {
			v.Set(key, val)
		}
	}
}
