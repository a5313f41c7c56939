// Package tictactoe is a 3x3 noughts and crosses board. X is game.Player0
// and moves first.
package tictactoe

import (
	"errors"
	"fmt"
	"strings"

	"abstractgames/game"
)

const Size = 3

var ErrMalformedBoard = errors.New("malformed board")

type Cell int8

const (
	Empty Cell = iota
	X
	O
)

// Move is the index (row*Size+col) of the square to mark.
type Move int

func (m Move) String() string {
	return fmt.Sprintf("%c%d", 'a'+rune(int(m)%Size), int(m)/Size+1)
}

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

type Board struct {
	cells  [Size * Size]Cell
	toMove game.Player
	filled int
}

func NewBoard() *Board {
	return &Board{toMove: game.Player0}
}

// Parse reads three rows of 'x', 'o' or '.'; the side to move is derived
// from the piece counts.
func Parse(s string) (*Board, error) {
	rows := strings.Fields(s)
	if len(rows) != Size {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrMalformedBoard, Size, len(rows))
	}
	b := NewBoard()
	xCount, oCount := 0, 0
	for r, row := range rows {
		if len(row) != Size {
			return nil, fmt.Errorf("%w: row %d: expected %d cells, got %d", ErrMalformedBoard, r+1, Size, len(row))
		}
		for c, ch := range strings.ToLower(row) {
			switch ch {
			case 'x':
				b.cells[r*Size+c] = X
				xCount++
			case 'o':
				b.cells[r*Size+c] = O
				oCount++
			case '.':
			default:
				return nil, fmt.Errorf("%w: row %d: unexpected %q", ErrMalformedBoard, r+1, ch)
			}
		}
	}
	switch xCount - oCount {
	case 0:
		b.toMove = game.Player0
	case 1:
		b.toMove = game.Player1
	default:
		return nil, fmt.Errorf("%w: impossible piece counts x=%d o=%d", ErrMalformedBoard, xCount, oCount)
	}
	b.filled = xCount + oCount
	return b, nil
}

func (b *Board) At(m Move) Cell {
	return b.cells[m]
}

func (b *Board) GenerateMoves() []Move {
	if b.winner() != Empty {
		return nil
	}
	moves := make([]Move, 0, Size*Size-b.filled)
	for i, c := range b.cells {
		if c == Empty {
			moves = append(moves, Move(i))
		}
	}
	return moves
}

func (b *Board) MakeMove(m Move) {
	b.cells[m] = mark(b.toMove)
	b.filled++
	b.toMove = b.toMove.Opponent()
}

func (b *Board) ReverseMove(m Move) {
	b.cells[m] = Empty
	b.filled--
	b.toMove = b.toMove.Opponent()
}

func (b *Board) EndGame() game.Outcome {
	switch b.winner() {
	case X:
		return game.Player0Wins
	case O:
		return game.Player1Wins
	}
	if b.filled == Size*Size {
		return game.Draw
	}
	return game.Continue
}

func (b *Board) CurrentPlayer() game.Player {
	return b.toMove
}

func (b *Board) HeuristicEvaluation() float64 {
	return LineEvaluator{}.HeuristicEvaluation(b)
}

func (b *Board) winner() Cell {
	for _, l := range lines {
		c := b.cells[l[0]]
		if c != Empty && c == b.cells[l[1]] && c == b.cells[l[2]] {
			return c
		}
	}
	return Empty
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch b.cells[r*Size+c] {
			case X:
				sb.WriteByte('x')
			case O:
				sb.WriteByte('o')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func mark(p game.Player) Cell {
	if p == game.Player0 {
		return X
	}
	return O
}

// LineEvaluator counts lines still open to each side, weighted by how many
// marks they hold.
type LineEvaluator struct{}

func (LineEvaluator) HeuristicEvaluation(b *Board) float64 {
	own, other := mark(b.toMove), mark(b.toMove.Opponent())
	score := 0.0
	for _, l := range lines {
		mine, theirs := 0, 0
		for _, i := range l {
			switch b.cells[i] {
			case own:
				mine++
			case other:
				theirs++
			}
		}
		switch {
		case theirs == 0 && mine > 0:
			score += float64(mine * mine)
		case mine == 0 && theirs > 0:
			score -= float64(theirs * theirs)
		}
	}
	// 8 lines with at most 2 marks each before the game ends
	return score / 32
}

var _ game.Board[Move] = (*Board)(nil)
var _ game.StaticBoardEvaluator[*Board] = LineEvaluator{}
