package config

import (
	"os"
	"path/filepath"
	"testing"

	"abstractgames/meta"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load("")

		require.NoError(t, err)
		require.Equal(t, "play", cfg.Mode)
		require.Equal(t, meta.SEARCH_DEPTH, cfg.Search.Depth)
		require.Equal(t, meta.DEPTH_STEP, cfg.Search.Step)
		require.Equal(t, "both", cfg.Search.Pruning)
		require.Equal(t, "loa", cfg.Match.Game)
		require.Equal(t, meta.GAMES, cfg.Match.Games)
		require.Equal(t, meta.GO_ROUTINES, cfg.Match.Parallelism)
		require.Equal(t, uint64(meta.SEED), cfg.Match.Seed)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		err := os.WriteFile(path, []byte(`
mode: experiment
search:
  depth: 6
  step: 2
  pruning: minimizer
match:
  game: tictactoe
  opponent: minimax
`), 0644)
		require.NoError(t, err)

		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, "experiment", cfg.Mode)
		require.Equal(t, 6, cfg.Search.Depth)
		require.Equal(t, 2, cfg.Search.Step)
		require.Equal(t, "minimizer", cfg.Search.Pruning)
		require.Equal(t, "tictactoe", cfg.Match.Game)
		require.Equal(t, "minimax", cfg.Match.Opponent)
		require.Equal(t, meta.GAMES, cfg.Match.Games, "Unset keys should keep their defaults")
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("search:\n  depth: 6\n"), 0644))
		t.Setenv("ABSTRACTGAMES_SEARCH_DEPTH", "3")
		t.Setenv("ABSTRACTGAMES_MATCH_GAMES", "2")

		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 3, cfg.Search.Depth)
		require.Equal(t, 2, cfg.Match.Games)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("opponent depth from environment", func(t *testing.T) {
		t.Setenv("ABSTRACTGAMES_MATCH_OPPONENT", "minimax")
		t.Setenv("ABSTRACTGAMES_MATCH_OPPONENT_DEPTH", "0")

		_, err := Load("")

		require.Error(t, err, "A minimax opponent needs a search depth")
	})

	t.Run("random opponent ignores depth", func(t *testing.T) {
		t.Setenv("ABSTRACTGAMES_MATCH_OPPONENT_DEPTH", "0")

		_, err := Load("")

		require.NoError(t, err)
	})

	valid := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := map[string]func(c *Config){
		"mode":           func(c *Config) { c.Mode = "train" },
		"depth":          func(c *Config) { c.Search.Depth = 0 },
		"step":           func(c *Config) { c.Search.Step = 0 },
		"pruning":        func(c *Config) { c.Search.Pruning = "sometimes" },
		"game":           func(c *Config) { c.Match.Game = "chess" },
		"opponent":       func(c *Config) { c.Match.Opponent = "human" },
		"games":          func(c *Config) { c.Match.Games = 0 },
		"parallelism":    func(c *Config) { c.Match.Parallelism = 0 },
		"max moves":      func(c *Config) { c.Match.MaxMoves = -5 },
		"opponent depth": func(c *Config) { c.Match.Opponent, c.Match.OpponentDepth = "minimax", 0 },
	}
	for name, breakIt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			breakIt(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
