// Package loa implements Lines of Action on the standard 8x8 board.
//
// Black is game.Player1 and starts on the top and bottom rows; White is
// game.Player0 and starts on the outer columns. Black moves first. A piece
// moves in a straight line exactly as many squares as there are pieces (of
// either colour) on that line. It may jump over its own pieces but not over
// enemy pieces, and captures by landing on an enemy piece. A side whose pieces
// form a single 8-connected group wins; a move that connects both sides at
// once draws.
package loa

import (
	"errors"
	"fmt"
	"strings"

	"abstractgames/game"
)

const Size = 8

var ErrMalformedBoard = errors.New("malformed board")

type Piece int8

const (
	Empty Piece = iota
	Black
	White
)

// PieceOf returns the piece colour played by p.
func PieceOf(p game.Player) Piece {
	if p == game.Player0 {
		return White
	}
	return Black
}

func (p Piece) owner() game.Player {
	if p == White {
		return game.Player0
	}
	return game.Player1
}

type Move struct {
	FromX, FromY int8
	ToX, ToY     int8
	Capture      bool
}

func (m Move) String() string {
	sep := "-"
	if m.Capture {
		sep = "x"
	}
	return fmt.Sprintf("%c%d%s%c%d", 'a'+rune(m.FromX), m.FromY+1, sep, 'a'+rune(m.ToX), m.ToY+1)
}

// directions in generation order: E, W, S, N, SE, NW, SW, NE.
var directions = [8][2]int8{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {-1, -1}, {-1, 1}, {1, -1},
}

type Option func(b *Board)

// WithEvaluator replaces the default QuadEvaluator.
func WithEvaluator(e game.StaticBoardEvaluator[*Board]) Option {
	return func(b *Board) {
		if e != nil {
			b.evaluator = e
		}
	}
}

type Board struct {
	squares   [Size][Size]Piece // [y][x]
	counts    [3]int            // indexed by Piece
	toMove    game.Player
	evaluator game.StaticBoardEvaluator[*Board]
}

// NewBoard returns the standard starting position with Black to move.
func NewBoard(options ...Option) *Board {
	b := newEmpty(options...)
	for i := 1; i < Size-1; i++ {
		b.put(int8(i), 0, Black)
		b.put(int8(i), Size-1, Black)
		b.put(0, int8(i), White)
		b.put(Size-1, int8(i), White)
	}
	b.toMove = game.Player1
	return b
}

func newEmpty(options ...Option) *Board {
	b := &Board{evaluator: QuadEvaluator{}}
	for _, option := range options {
		option(b)
	}
	return b
}

// Parse reads eight rows of '.', 'b' or 'w' (top row first) followed by an
// optional line naming the side to move ("black" or "white", default black).
func Parse(s string, options ...Option) (*Board, error) {
	fields := strings.Fields(s)
	if len(fields) != Size && len(fields) != Size+1 {
		return nil, fmt.Errorf("%w: expected %d rows, got %d fields", ErrMalformedBoard, Size, len(fields))
	}

	b := newEmpty(options...)
	b.toMove = game.Player1
	for y := 0; y < Size; y++ {
		row := strings.ToLower(fields[y])
		if len(row) != Size {
			return nil, fmt.Errorf("%w: row %d has %d squares", ErrMalformedBoard, y+1, len(row))
		}
		for x, ch := range row {
			switch ch {
			case 'b':
				b.put(int8(x), int8(y), Black)
			case 'w':
				b.put(int8(x), int8(y), White)
			case '.':
			default:
				return nil, fmt.Errorf("%w: row %d: unexpected %q", ErrMalformedBoard, y+1, ch)
			}
		}
	}

	if len(fields) == Size+1 {
		switch strings.ToLower(fields[Size]) {
		case "black", "b":
			b.toMove = game.Player1
		case "white", "w":
			b.toMove = game.Player0
		default:
			return nil, fmt.Errorf("%w: unknown side to move %q", ErrMalformedBoard, fields[Size])
		}
	}
	if b.counts[Black] == 0 || b.counts[White] == 0 {
		return nil, fmt.Errorf("%w: both sides need at least one piece", ErrMalformedBoard)
	}
	return b, nil
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			switch b.squares[y][x] {
			case Black:
				sb.WriteByte('b')
			case White:
				sb.WriteByte('w')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	if b.toMove == game.Player0 {
		sb.WriteString("white\n")
	} else {
		sb.WriteString("black\n")
	}
	return sb.String()
}

func (b *Board) At(x, y int) Piece {
	return b.squares[y][x]
}

// Count returns the number of pieces of the given colour.
func (b *Board) Count(p Piece) int {
	return b.counts[p]
}

func (b *Board) CurrentPlayer() game.Player {
	return b.toMove
}

func (b *Board) HeuristicEvaluation() float64 {
	return b.evaluator.HeuristicEvaluation(b)
}

func (b *Board) GenerateMoves() []Move {
	own := PieceOf(b.toMove)
	enemy := PieceOf(b.toMove.Opponent())

	var moves []Move
	for y := int8(0); y < Size; y++ {
		for x := int8(0); x < Size; x++ {
			if b.squares[y][x] != own {
				continue
			}
			for _, d := range directions {
				dist := b.lineCount(x, y, d[0], d[1])
				tx, ty := x+d[0]*dist, y+d[1]*dist
				if !onBoard(tx, ty) || b.squares[ty][tx] == own {
					continue
				}
				if b.blocked(x, y, d[0], d[1], dist, enemy) {
					continue
				}
				moves = append(moves, Move{
					FromX: x, FromY: y,
					ToX: tx, ToY: ty,
					Capture: b.squares[ty][tx] == enemy,
				})
			}
		}
	}
	return moves
}

func (b *Board) MakeMove(m Move) {
	piece := b.squares[m.FromY][m.FromX]
	if m.Capture {
		b.counts[b.squares[m.ToY][m.ToX]]--
	}
	b.squares[m.FromY][m.FromX] = Empty
	b.squares[m.ToY][m.ToX] = piece
	b.toMove = b.toMove.Opponent()
}

func (b *Board) ReverseMove(m Move) {
	b.toMove = b.toMove.Opponent()
	piece := b.squares[m.ToY][m.ToX]
	b.squares[m.FromY][m.FromX] = piece
	if m.Capture {
		enemy := PieceOf(piece.owner().Opponent())
		b.squares[m.ToY][m.ToX] = enemy
		b.counts[enemy]++
	} else {
		b.squares[m.ToY][m.ToX] = Empty
	}
}

func (b *Board) EndGame() game.Outcome {
	white := b.connected(White)
	black := b.connected(Black)
	switch {
	case white && black:
		return game.Draw
	case white:
		return game.Player0Wins
	case black:
		return game.Player1Wins
	}
	return game.Continue
}

func (b *Board) put(x, y int8, p Piece) {
	b.squares[y][x] = p
	b.counts[p]++
}

// lineCount counts the pieces on the whole line through (x, y) along (dx, dy).
func (b *Board) lineCount(x, y, dx, dy int8) int8 {
	count := int8(1)
	for cx, cy := x+dx, y+dy; onBoard(cx, cy); cx, cy = cx+dx, cy+dy {
		if b.squares[cy][cx] != Empty {
			count++
		}
	}
	for cx, cy := x-dx, y-dy; onBoard(cx, cy); cx, cy = cx-dx, cy-dy {
		if b.squares[cy][cx] != Empty {
			count++
		}
	}
	return count
}

// blocked reports whether an enemy piece sits strictly between the origin and
// the destination.
func (b *Board) blocked(x, y, dx, dy, dist int8, enemy Piece) bool {
	for i := int8(1); i < dist; i++ {
		if b.squares[y+dy*i][x+dx*i] == enemy {
			return true
		}
	}
	return false
}

func (b *Board) connected(p Piece) bool {
	total := b.counts[p]
	if total == 0 {
		return false
	}

	var seen [Size][Size]bool
	stack := make([][2]int8, 0, total)
	for y := int8(0); y < Size && len(stack) == 0; y++ {
		for x := int8(0); x < Size; x++ {
			if b.squares[y][x] == p {
				stack = append(stack, [2]int8{x, y})
				seen[y][x] = true
				break
			}
		}
	}

	found := 0
	for len(stack) > 0 {
		sq := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		found++
		for dy := int8(-1); dy <= 1; dy++ {
			for dx := int8(-1); dx <= 1; dx++ {
				nx, ny := sq[0]+dx, sq[1]+dy
				if onBoard(nx, ny) && !seen[ny][nx] && b.squares[ny][nx] == p {
					seen[ny][nx] = true
					stack = append(stack, [2]int8{nx, ny})
				}
			}
		}
	}
	return found == total
}

func onBoard(x, y int8) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

var _ game.Board[Move] = (*Board)(nil)
