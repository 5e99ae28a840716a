// Package config gathers command line settings from flags, RETRO_* environment variables and an
// optional YAML file, in that order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"retrograde/solver"
)

const (
	KeyConfig     = "config"
	KeyDebug      = "debug"
	KeyMaxDepth   = "max-depth"
	KeyLossPolicy = "loss-policy"
	KeyDB         = "db"
	KeyReport     = "report"
	KeyLine       = "line"
	KeyWorkers    = "workers"
	KeySeed       = "seed"
)

// RegisterFlags declares every setting on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeyConfig, "", "YAML file with default settings")
	fs.Bool(KeyDebug, false, "log solver progress")
	fs.Int(KeyMaxDepth, solver.DefaultMaxDepth, "abort when a line grows longer than this")
	fs.String(KeyLossPolicy, solver.DelayLoss.String(), "losing side plays to delay or hasten the loss")
	fs.String(KeyDB, "", "SQLite file caching solved results")
	fs.String(KeyReport, "", "directory for CSV reports")
	fs.Bool(KeyLine, false, "print the principal line of play")
	fs.Int(KeyWorkers, 4, "solves running at once in batch commands")
	fs.Uint64(KeySeed, 0, "zobrist seed; 0 draws keys from a secure source")
}

type Config struct {
	v *viper.Viper
}

func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RETRO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}
	return &Config{v: v}, nil
}

func (c *Config) Debug() bool {
	return c.v.GetBool(KeyDebug)
}

func (c *Config) MaxDepth() int {
	return c.v.GetInt(KeyMaxDepth)
}

func (c *Config) LossPolicy() (solver.LossPolicy, error) {
	return solver.ParseLossPolicy(c.v.GetString(KeyLossPolicy))
}

// DB is the path of the result cache, empty when caching is off.
func (c *Config) DB() string {
	return c.v.GetString(KeyDB)
}

// Report is the CSV report directory, empty when reports are off.
func (c *Config) Report() string {
	return c.v.GetString(KeyReport)
}

func (c *Config) Line() bool {
	return c.v.GetBool(KeyLine)
}

func (c *Config) Workers() int {
	return c.v.GetInt(KeyWorkers)
}

func (c *Config) Seed() uint64 {
	return c.v.GetUint64(KeySeed)
}

// SolverOptions translates the settings into solver options.
func (c *Config) SolverOptions() ([]solver.Option, error) {
	policy, err := c.LossPolicy()
	if err != nil {
		return nil, err
	}
	options := []solver.Option{
		solver.WithLossPolicy(policy),
		solver.WithMaxDepth(c.MaxDepth()),
	}
	if c.Report() != "" {
		options = append(options, solver.WithMetrics())
	}
	return options, nil
}
