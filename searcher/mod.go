package searcher

import (
	"errors"
	"fmt"
	"strings"
)

// TerminalBias is the magnitude of a decided game. It is larger than any
// heuristic score so that wins and losses always dominate evaluations.
const TerminalBias = 20.0

var (
	ErrNoMoveAvailable = errors.New("no move available")
	ErrInvalidDepth    = errors.New("search depth must be at least 1")
	ErrNoSolution      = errors.New("puzzle has no solution")
	ErrNodeLimit       = errors.New("node limit reached")
)

// Pruning selects where alpha-beta cut-offs are applied.
type Pruning int

const (
	// PruneBoth cuts inside the maximizer and the minimizer loops.
	PruneBoth Pruning = iota
	// PruneMinimizer only cuts inside the minimizer loop.
	PruneMinimizer
	// PruneNone visits the full minimax tree.
	PruneNone
)

func (p Pruning) String() string {
	switch p {
	case PruneBoth:
		return "both"
	case PruneMinimizer:
		return "minimizer"
	case PruneNone:
		return "none"
	}
	return fmt.Sprintf("pruning(%d)", int(p))
}

func ParsePruning(s string) (Pruning, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both":
		return PruneBoth, nil
	case "minimizer", "min":
		return PruneMinimizer, nil
	case "none", "off":
		return PruneNone, nil
	}
	return PruneBoth, fmt.Errorf("unknown pruning policy %q", s)
}

// winValue is the score of a game decided at the given distance from the
// root; earlier wins score higher.
func winValue(ply int) float64 {
	return TerminalBias - float64(ply)
}
