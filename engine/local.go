package engine

import (
	"context"
	"fmt"
	"time"

	"abstractgames/experiments/metrics"
	"abstractgames/game"
	"abstractgames/meta"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type Option[M comparable] func(l *Local[M])

// WithMaxMoves stops the game undecided after limit moves.
func WithMaxMoves[M comparable](limit int) Option[M] {
	return func(l *Local[M]) {
		if limit > 0 {
			l.maxMoves = limit
		}
	}
}

// WithDescriber sets how moves are written into move metrics.
func WithDescriber[M comparable](describe func(M) string) Option[M] {
	return func(l *Local[M]) {
		if describe != nil {
			l.describe = describe
		}
	}
}

// Local plays two agents against each other on a single in-process board.
type Local[M comparable] struct {
	board    game.Board[M]
	agents   [2]Agent[M] // indexed by game.Player
	maxMoves int
	describe func(M) string
}

func NewLocal[M comparable](board game.Board[M], player0, player1 Agent[M], options ...Option[M]) *Local[M] {
	if player0 == nil || player1 == nil {
		panic("both players need an agent")
	}
	l := &Local[M]{
		board:    board,
		agents:   [2]Agent[M]{player0, player1},
		maxMoves: meta.MAX_TURNS,
		describe: func(m M) string { return fmt.Sprint(m) },
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// Run executes the game loop until the board is terminal, the move limit is
// reached or ctx is done. Cancellation is only checked between moves.
func (l *Local[M]) Run(ctx context.Context) (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(l.board.CurrentPlayer()),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("player %d is starting", gameMetric.StartingPlayer)

	outcome := l.board.EndGame()
	step := 0
	for !outcome.IsTerminal() && step < l.maxMoves {
		if err := ctx.Err(); err != nil {
			return outcome, l.finish(gameMetric, outcome, step), moveMetrics, err
		}

		player := l.board.CurrentPlayer()
		move, searchMetric, err := l.agents[player].FindMove(ctx, l.board)
		if err != nil {
			return outcome, l.finish(gameMetric, outcome, step),
				moveMetrics, fmt.Errorf("player %d at move %d: %w", player, step+1, err)
		}
		if !lo.Contains(l.board.GenerateMoves(), move) {
			return outcome, l.finish(gameMetric, outcome, step),
				moveMetrics, fmt.Errorf("%w: player %d played %s", ErrIllegalMove, player, l.describe(move))
		}

		step++
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       int(player),
			Move:         l.describe(move),
			SearchMetric: searchMetric,
		})
		log.Debug().Msgf("move %d: player %d plays %s", step, player, l.describe(move))

		l.board.MakeMove(move)
		outcome = l.board.EndGame()
	}

	if outcome.IsTerminal() {
		log.Debug().Msgf("game ended after %d moves: %s", step, outcome)
	} else {
		log.Debug().Msgf("stopped after %d moves (no winner yet)", step)
	}
	return outcome, l.finish(gameMetric, outcome, step), moveMetrics, nil
}

func (l *Local[M]) finish(m metrics.GameMetric, outcome game.Outcome, moves int) metrics.GameMetric {
	m.Winner = outcome.String()
	m.EndTime = time.Now()
	m.Duration = m.EndTime.Sub(m.StartTime)
	m.TotalMoves = moves
	return m
}
