package searcher

import (
	"fmt"
	"sort"

	"abstractgames/experiments/metrics"
	"abstractgames/game"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type Option func(s *settings)

type settings struct {
	step         int
	pruning      Pruning
	rootOrdering bool
}

// WithStep sets the depth increment between iterative deepening passes.
func WithStep(step int) Option {
	return func(s *settings) {
		if step > 0 {
			s.step = step
		}
	}
}

func WithPruning(pruning Pruning) Option {
	return func(s *settings) {
		s.pruning = pruning
	}
}

// WithRootOrdering searches root moves in order of the previous iteration's
// values.
func WithRootOrdering() Option {
	return func(s *settings) {
		s.rootOrdering = true
	}
}

// Minimax finds the best move with iterative deepening minimax and alpha-beta
// pruning. It holds no per-search state, so one value can serve any number of
// searches as long as each search has its own board.
type Minimax[M any] struct {
	settings
}

func NewMinimax[M any](options ...Option) *Minimax[M] {
	m := &Minimax[M]{ // Default values
		settings: settings{
			step:    1,
			pruning: PruneBoth,
		},
	}
	for _, option := range options {
		option(&m.settings)
	}
	return m
}

func (m *Minimax[M]) Step() int {
	return m.step
}

func (m *Minimax[M]) Pruning() Pruning {
	return m.pruning
}

// Result is the move chosen by the deepest completed iteration.
type Result[M any] struct {
	Move    M
	Value   float64
	Depth   int
	Metrics metrics.SearchMetric
}

// Nodes returns the node count of the final iteration.
func (r Result[M]) Nodes() int {
	final, _ := r.Metrics.Final()
	return final.Nodes
}

// Leaves returns the heuristic evaluation count of the final iteration.
func (r Result[M]) Leaves() int {
	final, _ := r.Metrics.Final()
	return final.Leaves
}

// FindBestMove searches the board to maxDepth plies. The board is mutated
// during the search and restored before returning.
func (m *Minimax[M]) FindBestMove(board game.Board[M], maxDepth int) (Result[M], error) {
	if maxDepth < 1 {
		return Result[M]{}, fmt.Errorf("%w: got %d", ErrInvalidDepth, maxDepth)
	}
	if outcome := board.EndGame(); outcome.IsTerminal() {
		return Result[M]{}, fmt.Errorf("%w: game already over (%s)", ErrNoMoveAvailable, outcome)
	}

	moves := lo.Map(board.GenerateMoves(), func(move M, _ int) scored[M] {
		return scored[M]{move: move}
	})
	if len(moves) == 0 {
		return Result[M]{}, fmt.Errorf("%w: side to move has no legal moves", ErrNoMoveAvailable)
	}

	s := &session[M]{
		board:   board,
		root:    board.CurrentPlayer(),
		pruning: m.pruning,
	}
	collector := metrics.NewCollector()
	collector.Start(maxDepth, m.step, m.pruning.String())

	var result Result[M]
	found := false
	for _, depth := range schedule(maxDepth, m.step) {
		s.reset()

		best, value := s.searchRoot(depth, moves)
		it := collector.AddIteration(depth, s.nodes, s.leaves, s.cutoffs, value)
		log.Debug().
			Int("depth", depth).
			Dur("elapsed", it.Elapsed).
			Dur("period", it.Period).
			Int("nodes", it.Nodes).
			Int("leaves", it.Leaves).
			Int("cutoffs", it.Cutoffs).
			Float64("rate", it.Rate).
			Float64("value", value).
			Msg("completed iteration")

		if best >= 0 {
			result = Result[M]{Move: moves[best].move, Value: value, Depth: depth}
			found = true
		}

		if m.rootOrdering {
			sort.SliceStable(moves, func(i, j int) bool {
				return moves[i].value > moves[j].value
			})
		}
	}

	result.Metrics = collector.Complete()
	log.Debug().Msgf("nodes per second = %.0f", result.Metrics.NodesPerSecond())

	if !found {
		return Result[M]{}, fmt.Errorf("%w: search error at depth %d", ErrNoMoveAvailable, maxDepth)
	}
	return result, nil
}

// MustFindBestMove is like FindBestMove but panics when no move is available.
func (m *Minimax[M]) MustFindBestMove(board game.Board[M], maxDepth int) Result[M] {
	result, err := m.FindBestMove(board, maxDepth)
	if err != nil {
		panic(err)
	}
	return result
}

// schedule lists the depths searched by iterative deepening. The last depth
// is always maxDepth, even when the step does not divide evenly.
func schedule(maxDepth, step int) []int {
	if step < 1 {
		step = 1
	}
	var depths []int
	for d := 1; d < maxDepth; d += step {
		depths = append(depths, d)
	}
	return append(depths, maxDepth)
}
