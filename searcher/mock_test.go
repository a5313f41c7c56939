package searcher

import (
	"encoding/binary"
	"os"
	"testing"

	"abstractgames/game"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

// mockNode is a position of a hand built game tree. value is the heuristic
// score for the side to move.
type mockNode struct {
	outcome  game.Outcome
	value    float64
	children []*mockNode
}

func leaf(value float64) *mockNode {
	return &mockNode{value: value}
}

func end(outcome game.Outcome) *mockNode {
	return &mockNode{outcome: outcome}
}

func branch(children ...*mockNode) *mockNode {
	return &mockNode{children: children}
}

// mockBoard walks a mockNode tree. Moves are child indices and the players
// alternate, starting with first at the root.
type mockBoard struct {
	first game.Player
	path  []*mockNode
	moves []int
}

func newMockBoard(root *mockNode, first game.Player) *mockBoard {
	return &mockBoard{first: first, path: []*mockNode{root}}
}

func (b *mockBoard) current() *mockNode {
	return b.path[len(b.path)-1]
}

func (b *mockBoard) GenerateMoves() []int {
	moves := make([]int, len(b.current().children))
	for i := range moves {
		moves[i] = i
	}
	return moves
}

func (b *mockBoard) MakeMove(move int) {
	b.path = append(b.path, b.current().children[move])
	b.moves = append(b.moves, move)
}

func (b *mockBoard) ReverseMove(move int) {
	last := len(b.moves) - 1
	if last < 0 || b.moves[last] != move {
		panic("moves reversed out of order")
	}
	b.moves = b.moves[:last]
	b.path = b.path[:len(b.path)-1]
}

func (b *mockBoard) EndGame() game.Outcome {
	return b.current().outcome
}

func (b *mockBoard) CurrentPlayer() game.Player {
	if len(b.moves)%2 == 0 {
		return b.first
	}
	return b.first.Opponent()
}

func (b *mockBoard) HeuristicEvaluation() float64 {
	return b.current().value
}

// randomTree builds a tree with up to four moves per position, occasional
// decided games and stuck positions, and random leaf values.
func randomTree(rng *rand.Rand, depth int) *mockNode {
	if depth == 0 {
		return leaf(rng.Float64()*2 - 1)
	}
	switch r := rng.Intn(20); {
	case r == 0:
		return end(game.Player0Wins)
	case r == 1:
		return end(game.Player1Wins)
	case r == 2:
		return end(game.Draw)
	case r == 3:
		return branch()
	}
	n := 1 + rng.Intn(4)
	node := &mockNode{value: rng.Float64()*2 - 1}
	for i := 0; i < n; i++ {
		node.children = append(node.children, randomTree(rng, depth-1))
	}
	return node
}

// counter is a puzzle over the integers 1..limit: add one or double.
type counter struct {
	value  int
	target int
	limit  int
}

type counterMove int

const (
	increment counterMove = iota
	double
)

func (c *counter) GenerateMoves() []counterMove {
	var moves []counterMove
	if c.value+1 <= c.limit {
		moves = append(moves, increment)
	}
	if c.value*2 <= c.limit {
		moves = append(moves, double)
	}
	return moves
}

func (c *counter) MakeMove(m counterMove) {
	if m == increment {
		c.value++
	} else {
		c.value *= 2
	}
}

func (c *counter) ReverseMove(m counterMove) {
	if m == increment {
		c.value--
	} else {
		c.value /= 2
	}
}

func (c *counter) IsGoal() bool {
	return c.value == c.target
}

func (c *counter) CanonicalKey() []byte {
	return binary.LittleEndian.AppendUint64(nil, uint64(c.value))
}

func (c *counter) Clone() *counter {
	clone := *c
	return &clone
}
