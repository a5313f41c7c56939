package searcher

import (
	"math"

	"abstractgames/game"
)

type scored[M any] struct {
	move  M
	value float64
}

// session is the state of one FindBestMove call. Values are always from the
// point of view of the root player: max nodes are root-player turns and min
// nodes are opponent turns.
type session[M any] struct {
	board   game.Board[M]
	root    game.Player
	pruning Pruning

	nodes   int
	leaves  int
	cutoffs int
}

func (s *session[M]) reset() {
	s.nodes, s.leaves, s.cutoffs = 0, 0, 0
}

// searchRoot is a max node that remembers the value of every root move and
// returns the index of the best one.
func (s *session[M]) searchRoot(depth int, moves []scored[M]) (int, float64) {
	s.nodes++

	alpha, beta := math.Inf(-1), math.Inf(1)
	bestIndex, best := -1, math.Inf(-1)
	for i := range moves {
		s.board.MakeMove(moves[i].move)
		v := s.min(depth-1, 1, alpha, beta)
		s.board.ReverseMove(moves[i].move)

		moves[i].value = v
		if v > best {
			bestIndex, best = i, v
		}
		alpha = math.Max(alpha, best)
	}
	return bestIndex, best
}

func (s *session[M]) max(depth, ply int, alpha, beta float64) float64 {
	s.nodes++

	if v, ok := s.terminal(ply); ok {
		return v
	}
	if depth <= 0 {
		return s.evaluate()
	}

	moves := s.board.GenerateMoves()
	if len(moves) == 0 { // Side to move is stuck
		return -winValue(ply)
	}

	best := math.Inf(-1)
	for _, move := range moves {
		s.board.MakeMove(move)
		v := s.min(depth-1, ply+1, alpha, beta)
		s.board.ReverseMove(move)

		if v > best {
			best = v
		}
		alpha = math.Max(alpha, best)
		if alpha >= beta && s.pruning == PruneBoth {
			s.cutoffs++
			break
		}
	}
	return best
}

func (s *session[M]) min(depth, ply int, alpha, beta float64) float64 {
	s.nodes++

	if v, ok := s.terminal(ply); ok {
		return v
	}
	if depth <= 0 {
		return s.evaluate()
	}

	moves := s.board.GenerateMoves()
	if len(moves) == 0 { // Side to move is stuck
		return winValue(ply)
	}

	best := math.Inf(1)
	for _, move := range moves {
		s.board.MakeMove(move)
		v := s.max(depth-1, ply+1, alpha, beta)
		s.board.ReverseMove(move)

		if v < best {
			best = v
		}
		beta = math.Min(beta, best)
		if beta <= alpha && s.pruning != PruneNone {
			s.cutoffs++
			break
		}
	}
	return best
}

func (s *session[M]) terminal(ply int) (float64, bool) {
	outcome := s.board.EndGame()
	if !outcome.IsTerminal() {
		return 0, false
	}
	winner, decisive := outcome.Winner()
	if !decisive {
		return 0, true
	}
	if winner == s.root {
		return winValue(ply), true
	}
	return -winValue(ply), true
}

// evaluate scores a frontier position. Evaluators score for the side to
// move, so positions where the opponent moves are negated.
func (s *session[M]) evaluate() float64 {
	s.leaves++

	v := s.board.HeuristicEvaluation()
	if s.board.CurrentPlayer() != s.root {
		return -v
	}
	return v
}
