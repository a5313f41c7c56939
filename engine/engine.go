package engine

import (
	"context"
	"errors"

	"abstractgames/experiments/metrics"
	"abstractgames/game"
)

var ErrIllegalMove = errors.New("illegal move")

type Engine interface {
	// Run plays a game till it is decided or a max number of moves is reached
	Run(ctx context.Context) (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error)
}
