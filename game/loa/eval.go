package loa

import (
	"math"

	"abstractgames/game"
)

// QuadEvaluator follows Winands, "Analysis and implementation of Lines of
// Action" (2000): pieces are rewarded for gathering around their centre of
// mass, penalised for sitting on the edge, and the number of separate groups
// is estimated from the quad (2x2 window) counts through the Euler number.
//
// The score for the side to move is tanh(potential(own) - potential(enemy)),
// which keeps it in (-1, 1) and makes it antisymmetric between the sides.
type QuadEvaluator struct{}

const (
	concentrationWeight = 1.0
	spreadWeight        = 0.1
	groupWeight         = 0.5
	edgeWeight          = 0.05
)

func (QuadEvaluator) HeuristicEvaluation(b *Board) float64 {
	own := PieceOf(b.CurrentPlayer())
	enemy := PieceOf(b.CurrentPlayer().Opponent())
	return math.Tanh(potential(b, own) - potential(b, enemy))
}

// potential is larger for sides closer to connecting all their pieces.
func potential(b *Board, p Piece) float64 {
	n := b.counts[p]
	if n == 0 {
		return 0
	}

	cx, cy := centreOfMass(b, p)
	sum, edges := 0, 0
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if b.squares[y][x] != p {
				continue
			}
			sum += chebyshev(x, y, cx, cy)
			if x == 0 || y == 0 || x == Size-1 || y == Size-1 {
				edges++
			}
		}
	}

	// The minimal sum of distances stops boards with few pieces from being
	// preferred just for having few pieces.
	spread := float64(sum - minimalDistances(n))
	concentration := 1.0
	if sum > 0 {
		concentration = float64(n) / float64(sum)
	}

	return concentrationWeight*concentration -
		spreadWeight*spread -
		groupWeight*(Euler(b, p)-1) -
		edgeWeight*float64(edges)
}

func centreOfMass(b *Board, p Piece) (int, int) {
	sx, sy, n := 0, 0, 0
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if b.squares[y][x] == p {
				sx += x
				sy += y
				n++
			}
		}
	}
	return int(math.Round(float64(sx) / float64(n))), int(math.Round(float64(sy) / float64(n)))
}

// minimalDistances is the smallest possible sum of distances to a centre for
// n pieces: one on the centre, then rings of 8, 16, 24, ... squares.
func minimalDistances(n int) int {
	sum := 0
	n-- // the centre square
	for ring := 1; n > 0; ring++ {
		placed := min(n, 8*ring)
		sum += placed * ring
		n -= placed
	}
	return sum
}

// Euler estimates the number of groups minus holes of p from the quad counts
// over the board padded by one empty square on every side.
func Euler(b *Board, p Piece) float64 {
	q1, q3, qd := 0, 0, 0
	for y := -1; y < Size; y++ {
		for x := -1; x < Size; x++ {
			tl := owns(b, x, y, p)
			tr := owns(b, x+1, y, p)
			bl := owns(b, x, y+1, p)
			br := owns(b, x+1, y+1, p)

			switch count(tl, tr, bl, br) {
			case 1:
				q1++
			case 3:
				q3++
			case 2:
				if tl == br { // diagonal pair
					qd++
				}
			}
		}
	}
	return float64(q1-q3-2*qd) / 4
}

func owns(b *Board, x, y int, p Piece) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size && b.squares[y][x] == p
}

func count(bits ...bool) int {
	n := 0
	for _, bit := range bits {
		if bit {
			n++
		}
	}
	return n
}

func chebyshev(x1, y1, x2, y2 int) int {
	return max(abs(x1-x2), abs(y1-y2))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var _ game.StaticBoardEvaluator[*Board] = QuadEvaluator{}
