package engine

import (
	"context"
	"fmt"

	"abstractgames/experiments/metrics"
	"abstractgames/game"
	"abstractgames/searcher"

	"golang.org/x/exp/rand"
)

type Agent[M any] interface {
	FindMove(ctx context.Context, board game.Board[M]) (M, metrics.SearchMetric, error)
}

// SearchAgent plays the best move found by a fixed-depth minimax search.
type SearchAgent[M any] struct {
	searcher *searcher.Minimax[M]
	depth    int
}

func NewSearchAgent[M any](depth int, options ...searcher.Option) *SearchAgent[M] {
	return &SearchAgent[M]{
		searcher: searcher.NewMinimax[M](options...),
		depth:    depth,
	}
}

// FindMove ignores ctx: a search always runs every iteration to completion.
func (a *SearchAgent[M]) FindMove(_ context.Context, board game.Board[M]) (M, metrics.SearchMetric, error) {
	result, err := a.searcher.FindBestMove(board, a.depth)
	if err != nil {
		var zero M
		return zero, metrics.SearchMetric{}, err
	}
	return result.Move, result.Metrics, nil
}

// RandomAgent plays a uniformly random legal move.
type RandomAgent[M any] struct {
	rng *rand.Rand
}

func NewRandomAgent[M any](seed uint64) *RandomAgent[M] {
	return &RandomAgent[M]{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent[M]) FindMove(_ context.Context, board game.Board[M]) (M, metrics.SearchMetric, error) {
	moves := board.GenerateMoves()
	if len(moves) == 0 {
		var zero M
		return zero, metrics.SearchMetric{}, fmt.Errorf("%w: random agent", searcher.ErrNoMoveAvailable)
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}, nil
}
