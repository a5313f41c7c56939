// Package rushhour is the sliding-block escape puzzle: cars and trucks slide
// along their orientation on a 6x6 grid until the target car X reaches the
// exit on the right edge of the third row.
package rushhour

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	Size   = 6
	ExitY  = 2
	Target = 'X'
	empty  = '.'
)

var ErrMalformedBoard = errors.New("malformed board")

// Move slides piece Piece (an index into the board's piece list) by Delta
// cells: positive is right or down.
type Move struct {
	Piece int
	Delta int8
}

type piece struct {
	name       byte
	x, y       int8
	length     int8
	horizontal bool
}

type Board struct {
	grid   [Size][Size]byte
	pieces []piece // sorted by name
	target int
}

// Parse reads six rows of '.' or piece letters. Every letter must occupy a
// straight run of two or three cells, and X must lie horizontally on the exit
// row.
func Parse(s string) (*Board, error) {
	rows := strings.Fields(s)
	if len(rows) != Size {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrMalformedBoard, Size, len(rows))
	}

	b := &Board{target: -1}
	cells := map[byte][][2]int8{}
	for y, row := range rows {
		if len(row) != Size {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrMalformedBoard, y+1, len(row))
		}
		for x := 0; x < Size; x++ {
			ch := row[x]
			b.grid[y][x] = ch
			if ch != empty {
				cells[ch] = append(cells[ch], [2]int8{int8(x), int8(y)})
			}
		}
	}

	names := make([]byte, 0, len(cells))
	for name := range cells {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	for _, name := range names {
		p, err := newPiece(name, cells[name])
		if err != nil {
			return nil, err
		}
		if name == Target {
			if !p.horizontal || p.y != ExitY {
				return nil, fmt.Errorf("%w: %c must be horizontal on row %d", ErrMalformedBoard, Target, ExitY+1)
			}
			b.target = len(b.pieces)
		}
		b.pieces = append(b.pieces, p)
	}
	if b.target < 0 {
		return nil, fmt.Errorf("%w: no target car %c", ErrMalformedBoard, Target)
	}
	return b, nil
}

func newPiece(name byte, cells [][2]int8) (piece, error) {
	n := int8(len(cells))
	if n < 2 || n > 3 {
		return piece{}, fmt.Errorf("%w: piece %c has %d cells", ErrMalformedBoard, name, n)
	}
	// cells are collected in row-major order, so the first is the top-left
	first := cells[0]
	p := piece{name: name, x: first[0], y: first[1], length: n, horizontal: cells[1][1] == first[1]}
	for k, c := range cells {
		want := [2]int8{first[0], first[1] + int8(k)}
		if p.horizontal {
			want = [2]int8{first[0] + int8(k), first[1]}
		}
		if c != want {
			return piece{}, fmt.Errorf("%w: piece %c is not a straight run", ErrMalformedBoard, name)
		}
	}
	return p, nil
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < Size; y++ {
		sb.Write(b.grid[y][:])
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) MoveString(m Move) string {
	return fmt.Sprintf("%c%+d", b.pieces[m.Piece].name, m.Delta)
}

func (b *Board) GenerateMoves() []Move {
	var moves []Move
	for i, p := range b.pieces {
		dx, dy := int8(0), int8(1)
		if p.horizontal {
			dx, dy = 1, 0
		}
		// backwards from the head, then forwards from the tail
		for d := int8(1); b.free(p.x-dx*d, p.y-dy*d); d++ {
			moves = append(moves, Move{Piece: i, Delta: -d})
		}
		for d := int8(1); b.free(p.x+dx*(p.length-1+d), p.y+dy*(p.length-1+d)); d++ {
			moves = append(moves, Move{Piece: i, Delta: d})
		}
	}
	return moves
}

func (b *Board) MakeMove(m Move) {
	b.slide(m.Piece, m.Delta)
}

func (b *Board) ReverseMove(m Move) {
	b.slide(m.Piece, -m.Delta)
}

// IsGoal reports whether the target car has reached the exit.
func (b *Board) IsGoal() bool {
	p := b.pieces[b.target]
	return p.x+p.length == Size
}

// CanonicalKey is the grid itself: piece names are fixed, so two boards are
// the same state exactly when their grids match.
func (b *Board) CanonicalKey() []byte {
	key := make([]byte, 0, Size*Size)
	for y := 0; y < Size; y++ {
		key = append(key, b.grid[y][:]...)
	}
	return key
}

func (b *Board) Clone() *Board {
	c := *b
	c.pieces = append([]piece(nil), b.pieces...)
	return &c
}

func (b *Board) free(x, y int8) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size && b.grid[y][x] == empty
}

func (b *Board) slide(i int, delta int8) {
	p := &b.pieces[i]
	b.paint(*p, empty)
	if p.horizontal {
		p.x += delta
	} else {
		p.y += delta
	}
	b.paint(*p, p.name)
}

func (b *Board) paint(p piece, ch byte) {
	for k := int8(0); k < p.length; k++ {
		if p.horizontal {
			b.grid[p.y][p.x+k] = ch
		} else {
			b.grid[p.y+k][p.x] = ch
		}
	}
}
