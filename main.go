package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"abstractgames/config"
	"abstractgames/engine"
	"abstractgames/experiments"
	"abstractgames/experiments/metrics"
	"abstractgames/game"
	"abstractgames/game/loa"
	"abstractgames/game/rushhour"
	"abstractgames/game/tictactoe"
	"abstractgames/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Solved in three moves: A down, C down, then X out.
const defaultPuzzle = `
..ABBB
..A..C
XXA..C
......
DD....
......
`

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	mode := flag.String("mode", "", "Overrides the configured mode: play, experiment, pruning or solve")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *mode != "" {
		cfg.Mode = *mode
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	setupLogging(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch cfg.Mode {
	case "play":
		err = play(ctx, cfg)
	case "experiment":
		_, err = experiments.RunMatch(ctx, cfg)
	case "pruning":
		_, err = experiments.RunPruningExperiment(ctx, cfg)
	case "solve":
		err = solve(cfg.Puzzle)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", cfg.Mode)
	}
}

func setupLogging(c config.LogConfig) {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
}

func play(ctx context.Context, cfg *config.Config) error {
	player := experiments.SearchAgentConfig(1, cfg.Search)
	opponent := experiments.OpponentAgentConfig(2, cfg)
	switch cfg.Match.Game {
	case "loa":
		board := loa.NewBoard()
		return playOne[loa.Move](ctx, board, board, player, opponent, cfg.Match.MaxMoves, loa.Move.String)
	case "tictactoe":
		board := tictactoe.NewBoard()
		return playOne[tictactoe.Move](ctx, board, board, player, opponent, cfg.Match.MaxMoves, tictactoe.Move.String)
	}
	return fmt.Errorf("unknown game %q", cfg.Match.Game)
}

func playOne[M comparable](ctx context.Context, board game.Board[M], view fmt.Stringer, player, opponent metrics.AgentConfig, maxMoves int, describe func(M) string) error {
	player0, err := experiments.NewAgent[M](player, 0)
	if err != nil {
		return err
	}
	player1, err := experiments.NewAgent[M](opponent, 0)
	if err != nil {
		return err
	}

	e := engine.NewLocal(board, player0, player1,
		engine.WithMaxMoves[M](maxMoves),
		engine.WithDescriber(describe))
	outcome, gameMetric, _, err := e.Run(ctx)
	if err != nil {
		return err
	}

	log.Info().Msgf("final position after %d moves:\n%s", gameMetric.TotalMoves, view)
	log.Info().Str("outcome", outcome.String()).Dur("duration", gameMetric.Duration).Msg("game over")
	return nil
}

func solve(c config.PuzzleConfig) error {
	text := defaultPuzzle
	if c.Path != "" {
		data, err := os.ReadFile(c.Path)
		if err != nil {
			return fmt.Errorf("failed to read puzzle: %w", err)
		}
		text = string(data)
	}
	board, err := rushhour.Parse(text)
	if err != nil {
		return err
	}

	var options []searcher.BFSOption
	if c.NodeLimit > 0 {
		options = append(options, searcher.WithNodeLimit(c.NodeLimit))
	}
	solution, err := searcher.BreadthFirst[rushhour.Move](board, options...)
	if err != nil {
		return err
	}

	log.Info().Msgf("solved in %d moves after expanding %d nodes (%d states seen)",
		len(solution.Moves), solution.Nodes, solution.Visited)
	replay := board.Clone()
	for i, m := range solution.Moves {
		log.Info().Msgf("%d: %s", i+1, replay.MoveString(m))
		replay.MakeMove(m)
	}
	return nil
}
