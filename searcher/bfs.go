package searcher

import (
	"fmt"
	"slices"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
)

// Puzzle is a single-agent state space explored breadth first. It shares the
// make/reverse discipline of game.Board; CanonicalKey must be equal for
// structurally identical states.
type Puzzle[M any, P any] interface {
	GenerateMoves() []M
	MakeMove(M)
	ReverseMove(M)
	IsGoal() bool
	CanonicalKey() []byte
	Clone() P
}

type Solution[M any] struct {
	Moves   []M
	Nodes   int // states taken off the queue
	Visited int // distinct states discovered
}

type BFSOption func(b *bfsSettings)

type bfsSettings struct {
	nodeLimit int
}

// WithNodeLimit stops the search after expanding limit states.
func WithNodeLimit(limit int) BFSOption {
	return func(b *bfsSettings) {
		if limit > 0 {
			b.nodeLimit = limit
		}
	}
}

type frontier[M any, P any] struct {
	state  P
	parent int
	move   M
}

// BreadthFirst returns a shortest sequence of moves from start to a goal
// state. The start state is never mutated.
func BreadthFirst[M any, P Puzzle[M, P]](start P, options ...BFSOption) (Solution[M], error) {
	var cfg bfsSettings
	for _, option := range options {
		option(&cfg)
	}

	visited := map[uint64]struct{}{
		xxhash.Sum64(start.CanonicalKey()): {},
	}
	queue := []frontier[M, P]{{state: start.Clone(), parent: -1}}

	expanded := 0
	for head := 0; head < len(queue); head++ {
		current := queue[head].state
		queue[head].state = *new(P) // Release expanded states
		expanded++

		if current.IsGoal() {
			log.Debug().Int("nodes", expanded).Int("visited", len(visited)).Msg("puzzle solved")
			return Solution[M]{
				Moves:   path(queue, head),
				Nodes:   expanded,
				Visited: len(visited),
			}, nil
		}
		if cfg.nodeLimit > 0 && expanded >= cfg.nodeLimit {
			return Solution[M]{Nodes: expanded, Visited: len(visited)},
				fmt.Errorf("%w: expanded %d states", ErrNodeLimit, expanded)
		}

		for _, move := range current.GenerateMoves() {
			current.MakeMove(move)
			key := xxhash.Sum64(current.CanonicalKey())
			if _, seen := visited[key]; !seen {
				visited[key] = struct{}{}
				queue = append(queue, frontier[M, P]{
					state:  current.Clone(),
					parent: head,
					move:   move,
				})
			}
			current.ReverseMove(move)
		}
	}

	return Solution[M]{Nodes: expanded, Visited: len(visited)},
		fmt.Errorf("%w: exhausted %d states", ErrNoSolution, len(visited))
}

func path[M any, P any](queue []frontier[M, P], last int) []M {
	var moves []M
	for i := last; queue[i].parent >= 0; i = queue[i].parent {
		moves = append(moves, queue[i].move)
	}
	slices.Reverse(moves)
	return moves
}
