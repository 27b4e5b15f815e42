package layout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nrharido/pacman/game"
)

const tinyLayout = `%%%%%
%2..%
%o1 %
%%%%%
`

func TestParse(t *testing.T) {
	lay, err := Parse(tinyLayout)
	require.NoError(t, err)

	require.Equal(t, 5, lay.Width)
	require.Equal(t, 4, lay.Height)

	// The first text row is the top of the board.
	require.True(t, lay.Walls.At(0, 0))
	require.True(t, lay.Walls.At(4, 3))
	require.False(t, lay.Walls.At(2, 2))

	require.True(t, lay.Food.At(2, 2))
	require.True(t, lay.Food.At(3, 2))
	require.Equal(t, 2, lay.Food.Count())

	require.Equal(t, []game.Point{{X: 1, Y: 1}}, lay.Capsules)

	// Agents come out in digit order regardless of text order.
	require.Equal(t, []game.Point{{X: 2, Y: 1}, {X: 1, Y: 2}}, lay.AgentPositions)
}

func TestParseNormalizesCRLF(t *testing.T) {
	crlf := "%%%\n%1%\n%%%\n"
	windows := "%%%\r\n%1%\r\n%%%\r\n"

	a, err := Parse(crlf)
	require.NoError(t, err)
	b, err := Parse(windows)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"ragged rows":  "%%%\n%%\n",
		"unknown char": "%%%\n%X%\n%%%\n",
		"no agents":    "%%%\n%.%\n%%%\n",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(text)
			require.Error(t, err)

			var layoutErr *LayoutError
			require.True(t, errors.As(err, &layoutErr), "err=%v", err)
		})
	}
}

func TestSourceReparsesIdentically(t *testing.T) {
	lay, err := Parse(tinyLayout)
	require.NoError(t, err)

	again, err := Parse(lay.Source)
	require.NoError(t, err)
	require.Equal(t, lay, again)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.lay")
	require.NoError(t, os.WriteFile(path, []byte(tinyLayout), 0o644))

	lay, err := Load(path)
	require.NoError(t, err)

	direct, err := Parse(tinyLayout)
	require.NoError(t, err)
	require.Equal(t, direct, lay)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.lay"))
	require.Error(t, err)
}

func TestDefaultLayout(t *testing.T) {
	lay := Default()

	require.Equal(t, 20, lay.Width)
	require.Equal(t, 8, lay.Height)
	require.Len(t, lay.AgentPositions, 4)

	// Two starts per half, alternating red and blue by index.
	half := lay.Width / 2
	for i, pos := range lay.AgentPositions {
		if i%2 == 0 {
			require.Less(t, pos.X, half, "agent %d should start on the red half", i)
		} else {
			require.GreaterOrEqual(t, pos.X, half, "agent %d should start on the blue half", i)
		}
	}

	// The board is rotationally symmetric, so the food supply splits evenly.
	redFood := lay.Food.HalfGrid(true).Count()
	blueFood := lay.Food.HalfGrid(false).Count()
	require.Equal(t, redFood, blueFood)
	require.Greater(t, redFood, 2, "each side needs food above the win floor")

	require.Len(t, lay.Capsules, 2)

	// The outer ring is solid wall.
	for x := 0; x < lay.Width; x++ {
		require.True(t, lay.Walls.At(x, 0))
		require.True(t, lay.Walls.At(x, lay.Height-1))
	}
	for y := 0; y < lay.Height; y++ {
		require.True(t, lay.Walls.At(0, y))
		require.True(t, lay.Walls.At(lay.Width-1, y))
	}
}
