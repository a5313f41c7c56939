package game

// Player identifies one of the two sides of a game.
type Player int

const (
	Player0 Player = iota
	Player1
)

// Opponent returns the other side.
func (p Player) Opponent() Player {
	return 1 - p
}

// Outcome classifies a board as still in progress or finished.
type Outcome int

const (
	Continue Outcome = iota
	Player0Wins
	Player1Wins
	Draw
)

// Winner returns the winning player of a decisive outcome.
func (o Outcome) Winner() (Player, bool) {
	switch o {
	case Player0Wins:
		return Player0, true
	case Player1Wins:
		return Player1, true
	}
	return 0, false
}

// IsTerminal reports whether the game is over.
func (o Outcome) IsTerminal() bool {
	return o != Continue
}

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Player0Wins:
		return "player0"
	case Player1Wins:
		return "player1"
	case Draw:
		return "draw"
	}
	return "unknown"
}

// WinFor returns the outcome in which p wins.
func WinFor(p Player) Outcome {
	if p == Player0 {
		return Player0Wins
	}
	return Player1Wins
}

// Board is a mutable two-player game state that a searcher explores in place.
//
// MakeMove and ReverseMove must be called in strict stack order: every move
// made is reversed before the move made before it. GenerateMoves returns the
// legal moves of the side to move in a deterministic order; an empty slice
// means the side to move has no legal moves.
type Board[M any] interface {
	GenerateMoves() []M
	MakeMove(M)
	ReverseMove(M)
	EndGame() Outcome
	CurrentPlayer() Player
	// HeuristicEvaluation scores a non-terminal position in [-1, 1] from the
	// perspective of the side to move.
	HeuristicEvaluation() float64
}

// StaticBoardEvaluator estimates the winning potential of a non-terminal board
// for the side to move. Implementations must be pure, deterministic and
// bounded in [-1, 1].
type StaticBoardEvaluator[B any] interface {
	HeuristicEvaluation(board B) float64
}

// EvaluatorFunc adapts a plain function to a StaticBoardEvaluator.
type EvaluatorFunc[B any] func(board B) float64

func (f EvaluatorFunc[B]) HeuristicEvaluation(board B) float64 {
	return f(board)
}
