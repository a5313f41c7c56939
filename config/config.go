// Package config loads settings from defaults, an optional YAML file and
// ABSTRACTGAMES_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"strings"

	"abstractgames/meta"
	"abstractgames/searcher"

	"github.com/spf13/viper"
)

const EnvPrefix = "ABSTRACTGAMES"

type Config struct {
	Mode      string       `mapstructure:"mode"` // play, experiment, pruning or solve
	OutputDir string       `mapstructure:"output_dir"`
	Log       LogConfig    `mapstructure:"log"`
	Search    SearchConfig `mapstructure:"search"`
	Match     MatchConfig  `mapstructure:"match"`
	Puzzle    PuzzleConfig `mapstructure:"puzzle"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type SearchConfig struct {
	Depth        int    `mapstructure:"depth"`
	Step         int    `mapstructure:"step"`
	Pruning      string `mapstructure:"pruning"`
	RootOrdering bool   `mapstructure:"root_ordering"`
}

type MatchConfig struct {
	Game          string `mapstructure:"game"`     // loa or tictactoe
	Opponent      string `mapstructure:"opponent"` // random or minimax
	OpponentDepth int    `mapstructure:"opponent_depth"`
	Games         int    `mapstructure:"games"`
	Parallelism   int    `mapstructure:"parallelism"`
	MaxMoves      int    `mapstructure:"max_moves"`
	Seed          uint64 `mapstructure:"seed"`
}

type PuzzleConfig struct {
	Path      string `mapstructure:"path"` // empty: built-in puzzle
	NodeLimit int    `mapstructure:"node_limit"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "play")
	v.SetDefault("output_dir", "experiments")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
	v.SetDefault("search.depth", meta.SEARCH_DEPTH)
	v.SetDefault("search.step", meta.DEPTH_STEP)
	v.SetDefault("search.pruning", "both")
	v.SetDefault("search.root_ordering", false)
	v.SetDefault("match.game", "loa")
	v.SetDefault("match.opponent", "random")
	v.SetDefault("match.opponent_depth", 2)
	v.SetDefault("match.games", meta.GAMES)
	v.SetDefault("match.parallelism", meta.GO_ROUTINES)
	v.SetDefault("match.max_moves", meta.MAX_TURNS)
	v.SetDefault("match.seed", meta.SEED)
	v.SetDefault("puzzle.path", "")
	v.SetDefault("puzzle.node_limit", 0)
}

// Load reads the configuration. path may be empty.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Mode {
	case "play", "experiment", "pruning", "solve":
	default:
		return fmt.Errorf("invalid mode %q", c.Mode)
	}
	if c.Search.Depth < 1 {
		return fmt.Errorf("search.depth must be at least 1, got %d", c.Search.Depth)
	}
	if c.Search.Step < 1 {
		return fmt.Errorf("search.step must be at least 1, got %d", c.Search.Step)
	}
	if _, err := searcher.ParsePruning(c.Search.Pruning); err != nil {
		return fmt.Errorf("search.pruning: %w", err)
	}
	switch c.Match.Game {
	case "loa", "tictactoe":
	default:
		return fmt.Errorf("invalid match.game %q", c.Match.Game)
	}
	switch c.Match.Opponent {
	case "random":
	case "minimax":
		if c.Match.OpponentDepth < 1 {
			return fmt.Errorf("match.opponent_depth must be at least 1, got %d", c.Match.OpponentDepth)
		}
	default:
		return fmt.Errorf("invalid match.opponent %q", c.Match.Opponent)
	}
	if c.Match.Games < 1 {
		return fmt.Errorf("match.games must be at least 1, got %d", c.Match.Games)
	}
	if c.Match.Parallelism < 1 {
		return fmt.Errorf("match.parallelism must be at least 1, got %d", c.Match.Parallelism)
	}
	if c.Match.MaxMoves < 1 {
		return fmt.Errorf("match.max_moves must be at least 1, got %d", c.Match.MaxMoves)
	}
	return nil
}
