package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/smeargame/smearcli/internal/factory"
	redisstore "github.com/smeargame/smearcli/internal/store/redis"
)

// Config holds CLI configuration. Every flag can also be set through a
// SMEAR_* environment variable.
type Config struct {
	ServerURL    string
	Output       string
	StoreType    string
	StoreDir     string
	RedisURL     string
	PollInterval time.Duration
	Verbose      bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:    "http://localhost:4000/api",
		Output:       "text",
		StoreType:    factory.StoreTypeFile,
		PollInterval: 2 * time.Second,
	}
}

func (c *Config) validate() error {
	if c.Output != "text" && c.Output != "json" {
		return fmt.Errorf("invalid output format %q: must be text or json", c.Output)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	return nil
}

// registerFlags declares the global flags and wires them to the
// SMEAR_* environment through viper
func (c *Config) registerFlags(cmd *cobra.Command) {
	v := viper.New()
	v.SetEnvPrefix("SMEAR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs := cmd.PersistentFlags()
	fs.StringVar(&c.ServerURL, "server", c.ServerURL, "Server API base URL (env: SMEAR_SERVER)")
	fs.StringVarP(&c.Output, "output", "o", c.Output, "Output format: text, json (env: SMEAR_OUTPUT)")
	fs.StringVar(&c.StoreType, "store", c.StoreType, "Local store backend: file, memory, redis (env: SMEAR_STORE)")
	fs.StringVar(&c.StoreDir, "store-dir", c.StoreDir, "Directory for the file store (env: SMEAR_STORE_DIR)")
	fs.StringVar(&c.RedisURL, "redis-url", c.RedisURL, "Redis URL for the redis store (env: SMEAR_REDIS_URL)")
	fs.DurationVar(&c.PollInterval, "poll-interval", c.PollInterval, "Status poll cadence while watching (env: SMEAR_POLL_INTERVAL)")
	fs.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "Verbose logging (env: SMEAR_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}

// newLogger builds the CLI logger. Logs go to stderr so they never mix
// with command output.
func (c *Config) newLogger() *slog.Logger {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newApp wires the client components from the resolved config
func (c *Config) newApp() (*factory.App, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	cfg := factory.Config{
		ServerURL:    c.ServerURL,
		Logger:       c.newLogger(),
		StoreType:    c.StoreType,
		StoreDir:     c.StoreDir,
		PollInterval: c.PollInterval,
	}
	if c.StoreType == factory.StoreTypeRedis {
		redisCfg := redisstore.DefaultConfig()
		if c.RedisURL != "" {
			redisCfg.URL = c.RedisURL
		}
		cfg.RedisConfig = &redisCfg
	}
	return factory.New(cfg)
}
