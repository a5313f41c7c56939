package loa

import (
	"testing"

	"abstractgames/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const blockedPosition = `
........
........
........
..bwb...
........
bb......
........
w.......
black
`

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	require.Equal(t, 12, b.Count(Black))
	require.Equal(t, 12, b.Count(White))
	require.Equal(t, game.Player1, b.CurrentPlayer(), "Black should move first")
	require.Equal(t, game.Continue, b.EndGame())
	require.Equal(t, Black, b.At(1, 0))
	require.Equal(t, White, b.At(0, 1))
	require.Equal(t, Empty, b.At(0, 0), "Corners should start empty")
	require.Len(t, b.GenerateMoves(), 36)
	require.Equal(t, Move{FromX: 1, FromY: 0, ToX: 7, ToY: 0}, b.GenerateMoves()[0],
		"Pieces should jump over their own pieces")
}

func TestGenerateMoves(t *testing.T) {
	b, err := Parse(blockedPosition)
	require.NoError(t, err)

	moves := b.GenerateMoves()

	require.NotContains(t, moves, Move{FromX: 2, FromY: 3, ToX: 5, ToY: 3},
		"Pieces should not jump over enemy pieces")
	require.NotContains(t, moves, Move{FromX: 4, FromY: 3, ToX: 1, ToY: 3},
		"Pieces should not jump over enemy pieces")
	require.Contains(t, moves, Move{FromX: 4, FromY: 3, ToX: 7, ToY: 3})
	require.Contains(t, moves, Move{FromX: 0, FromY: 5, ToX: 2, ToY: 5},
		"Pieces should jump over their own pieces")
	for _, m := range moves {
		require.Equal(t, Black, b.At(int(m.FromX), int(m.FromY)), "Only the side to move should move")
	}
}

func TestMakeReverseMove(t *testing.T) {
	t.Run("capture", func(t *testing.T) {
		b, err := Parse(`
			b......b
			........
			........
			...b.w..
			........
			........
			........
			w......w
		`)
		require.NoError(t, err)
		before := b.String()
		capture := Move{FromX: 3, FromY: 3, ToX: 5, ToY: 3, Capture: true}
		require.Contains(t, b.GenerateMoves(), capture)

		b.MakeMove(capture)

		require.Equal(t, Black, b.At(5, 3))
		require.Equal(t, Empty, b.At(3, 3))
		require.Equal(t, 2, b.Count(White), "Captured piece should be removed")
		require.Equal(t, game.Player0, b.CurrentPlayer())

		b.ReverseMove(capture)

		require.Equal(t, before, b.String(), "Reversing should restore the position")
		require.Equal(t, 3, b.Count(White))
	})

	t.Run("random games restore every position", func(t *testing.T) {
		rng := rand.New(rand.NewSource(523))
		for i := 0; i < 20; i++ {
			b := NewBoard()
			var played []Move
			var positions []string
			for step := 0; step < 60 && !b.EndGame().IsTerminal(); step++ {
				moves := b.GenerateMoves()
				if len(moves) == 0 {
					break
				}
				m := moves[rng.Intn(len(moves))]
				positions = append(positions, b.String())
				played = append(played, m)
				b.MakeMove(m)
			}
			for j := len(played) - 1; j >= 0; j-- {
				b.ReverseMove(played[j])
				require.Equal(t, positions[j], b.String(), "game %d: reversing move %d", i, j+1)
			}
			require.Equal(t, 12, b.Count(Black))
			require.Equal(t, 12, b.Count(White))
		}
	})
}

func TestEndGame(t *testing.T) {
	tests := []struct {
		name  string
		board string
		want  game.Outcome
	}{
		{
			name: "black connected",
			board: `
				........
				..bb....
				...b....
				....b...
				........
				........
				w.......
				.......w`,
			want: game.Player1Wins,
		},
		{
			name: "white connected",
			board: `
				b.......
				........
				........
				...ww...
				...w....
				........
				........
				.......b`,
			want: game.Player0Wins,
		},
		{
			name: "both connected draws",
			board: `
				........
				........
				........
				...bw...
				........
				........
				........
				........`,
			want: game.Draw,
		},
		{
			name: "neither connected",
			board: `
				b......b
				........
				........
				........
				........
				........
				........
				w......w`,
			want: game.Continue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Parse(tt.board)
			require.NoError(t, err)
			require.Equal(t, tt.want, b.EndGame())
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		b, err := Parse(blockedPosition)
		require.NoError(t, err)

		again, err := Parse(b.String())

		require.NoError(t, err)
		require.Equal(t, b.String(), again.String())
	})

	t.Run("side to move", func(t *testing.T) {
		b, err := Parse(NewBoard().String()[:72] + "white")
		require.NoError(t, err)
		require.Equal(t, game.Player0, b.CurrentPlayer())
	})

	invalid := map[string]string{
		"too few rows":     "........\n........",
		"short row":        "b......\n........\n........\n........\n........\n........\n........\n.......w",
		"unknown piece":    "x.......\n........\n........\n........\n........\n........\n........\n.......w",
		"unknown side":     "b.......\n........\n........\n........\n........\n........\n........\n.......w\nred",
		"missing a colour": "b.......\n........\n........\n........\n........\n........\n........\n........",
	}
	for name, s := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(s)
			require.ErrorIs(t, err, ErrMalformedBoard)
		})
	}
}

func TestMoveString(t *testing.T) {
	require.Equal(t, "b1-h1", Move{FromX: 1, FromY: 0, ToX: 7, ToY: 0}.String())
	require.Equal(t, "d4xf4", Move{FromX: 3, FromY: 3, ToX: 5, ToY: 3, Capture: true}.String())
}
