package experiments

import (
	"context"
	"fmt"

	"abstractgames/config"
	"abstractgames/engine"
	"abstractgames/experiments/metrics"
	"abstractgames/game"
	"abstractgames/game/loa"
	"abstractgames/game/tictactoe"
	"abstractgames/searcher"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

type Settings struct {
	Game        string
	Games       int // Per match up
	Parallelism int
	MaxMoves    int
	OutputDir   string
}

func SettingsFrom(cfg *config.Config) Settings {
	return Settings{
		Game:        cfg.Match.Game,
		Games:       cfg.Match.Games,
		Parallelism: cfg.Match.Parallelism,
		MaxMoves:    cfg.Match.MaxMoves,
		OutputDir:   cfg.OutputDir,
	}
}

// SearchAgentConfig describes the minimax agent configured under search.
func SearchAgentConfig(id int, sc config.SearchConfig) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:           id,
		Kind:         "minimax",
		Depth:        sc.Depth,
		Step:         sc.Step,
		Pruning:      sc.Pruning,
		RootOrdering: sc.RootOrdering,
	}
}

// OpponentAgentConfig describes the agent configured under match.opponent.
func OpponentAgentConfig(id int, cfg *config.Config) metrics.AgentConfig {
	if cfg.Match.Opponent == "random" {
		return metrics.AgentConfig{ID: id, Kind: "random", Seed: cfg.Match.Seed}
	}
	return metrics.AgentConfig{
		ID:      id,
		Kind:    "minimax",
		Depth:   cfg.Match.OpponentDepth,
		Step:    1,
		Pruning: searcher.PruneBoth.String(),
	}
}

// RunMatch plays the configured search agent against the configured opponent.
func RunMatch(ctx context.Context, cfg *config.Config) (metrics.Summary, error) {
	player := SearchAgentConfig(1, cfg.Search)
	opponent := OpponentAgentConfig(2, cfg)
	configs := []metrics.AgentConfig{player, opponent}
	matchUps := [][2]metrics.AgentConfig{{player, opponent}}

	return runExperiment(ctx, "match", SettingsFrom(cfg), configs, matchUps)
}

type job struct {
	id    int
	seats [2]metrics.AgentConfig // indexed by game.Player
}

func runExperiment(ctx context.Context, name string, s Settings, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig) (metrics.Summary, error) {
	// Each game of a match up swaps seats with the previous one
	var jobs []job
	for _, matchUp := range matchUps {
		for i := 0; i < s.Games; i++ {
			seats := matchUp
			if i%2 == 1 {
				seats[0], seats[1] = seats[1], seats[0]
			}
			jobs = append(jobs, job{id: len(jobs) + 1, seats: seats})
		}
	}

	log.Info().Msgf("starting %s experiment with %d games...", name, len(jobs))

	gameRecords := make([]metrics.GameRecord, len(jobs))
	moveRecords := make([][]metrics.MoveRecord, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Parallelism)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			gameMetric, moveMetrics, err := runGame(ctx, s, j)
			if err != nil {
				return fmt.Errorf("game %d: %w", j.id, err)
			}
			gameRecords[i] = metrics.GameRecord{
				ID:         j.id,
				Agent1:     j.seats[0].ID,
				Agent2:     j.seats[1].ID,
				GameMetric: gameMetric,
			}
			moveRecords[i] = lo.Map(moveMetrics, func(mm metrics.MoveMetric, _ int) metrics.MoveRecord {
				return metrics.MoveRecord{Game: j.id, Agent: j.seats[mm.Player].ID, MoveMetric: mm}
			})
			log.Info().Msgf("completed game %d of %d with winner: %s", j.id, len(jobs), gameMetric.Winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return metrics.Summary{}, err
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(s.OutputDir, name)
	if err != nil {
		return metrics.Summary{}, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return metrics.Summary{}, fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return metrics.Summary{}, fmt.Errorf("failed to write game records: %w", err)
	}
	moves := lo.Flatten(moveRecords)
	if err := writer.WriteMoveRecords(moves); err != nil {
		return metrics.Summary{}, fmt.Errorf("failed to write move records: %w", err)
	}

	summary := metrics.Summarize(name, configs, gameRecords, moves)
	if err := writer.WriteSummary(summary); err != nil {
		return metrics.Summary{}, err
	}
	log.Info().Msgf("stored results in %s", writer.Dir())
	return summary, nil
}

func runGame(ctx context.Context, s Settings, j job) (metrics.GameMetric, []metrics.MoveMetric, error) {
	switch s.Game {
	case "loa":
		return playGame[loa.Move](ctx, loa.NewBoard(), j, s, loa.Move.String)
	case "tictactoe":
		return playGame[tictactoe.Move](ctx, tictactoe.NewBoard(), j, s, tictactoe.Move.String)
	}
	return metrics.GameMetric{}, nil, fmt.Errorf("unknown game %q", s.Game)
}

func playGame[M comparable](ctx context.Context, board game.Board[M], j job, s Settings, describe func(M) string) (metrics.GameMetric, []metrics.MoveMetric, error) {
	player0, err := NewAgent[M](j.seats[0], uint64(j.id))
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	player1, err := NewAgent[M](j.seats[1], uint64(j.id))
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	e := engine.NewLocal(board, player0, player1,
		engine.WithMaxMoves[M](s.MaxMoves),
		engine.WithDescriber(describe))
	_, gameMetric, moveMetrics, err := e.Run(ctx)
	return gameMetric, moveMetrics, err
}

// NewAgent builds the agent described by c. offset varies the seed of
// random agents between games.
func NewAgent[M any](c metrics.AgentConfig, offset uint64) (engine.Agent[M], error) {
	switch c.Kind {
	case "random":
		return engine.NewRandomAgent[M](c.Seed + offset), nil
	case "minimax":
		pruning, err := searcher.ParsePruning(c.Pruning)
		if err != nil {
			return nil, err
		}
		options := []searcher.Option{
			searcher.WithStep(c.Step),
			searcher.WithPruning(pruning),
		}
		if c.RootOrdering {
			options = append(options, searcher.WithRootOrdering())
		}
		return engine.NewSearchAgent[M](c.Depth, options...), nil
	}
	return nil, fmt.Errorf("unknown agent kind %q", c.Kind)
}
