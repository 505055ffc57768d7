// Package config loads cmd/sokoban-solve's settings from flags and
// environment variables (SOKOBAN_ prefix), layered through viper. No
// config file is read.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config mirrors sokoban.SolveOptions plus the CLI-only settings
// (input level file, log level) that aren't part of the library API.
type Config struct {
	MaxNodes    int    `mapstructure:"max-nodes"`
	MaxMillis   int    `mapstructure:"max-ms"`
	NoCorral    bool   `mapstructure:"no-corral"`
	NoBipartite bool   `mapstructure:"no-bipartite"`
	Seed        int64  `mapstructure:"seed"`
	LogLevel    string `mapstructure:"log-level"`
	LevelFile   string `mapstructure:"level-file"`
	Quiet       bool   `mapstructure:"quiet"`
}

// BindFlags registers every Config field as a pflag on fs, using
// spec.md §6's defaults, and returns a viper instance with those flags
// bound plus SOKOBAN_-prefixed environment variable support.
func BindFlags(fs *pflag.FlagSet) *viper.Viper {
	fs.Int("max-nodes", 2_000_000, "maximum number of search-tree nodes to expand before giving up")
	fs.Int("max-ms", 600_000, "maximum wall-clock milliseconds to search before giving up")
	fs.Bool("no-corral", false, "disable the corral deadlock check")
	fs.Bool("no-bipartite", false, "disable the bipartite feasibility deadlock check")
	fs.Int64("seed", 0, "Zobrist hash seed; 0 uses the board's default seed")
	fs.String("log-level", "info", "log level: debug, info, warn, error, disabled")
	fs.String("level-file", "", "path to a Sokoban level file; defaults to stdin")
	fs.Bool("quiet", false, "suppress the progress bar")

	v := viper.New()
	v.SetEnvPrefix("sokoban")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(fs)
	return v
}

// Load unmarshals v into a Config.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
