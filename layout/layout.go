// Package layout parses text board layouts.
//
// A layout is a rectangular character grid: '%' wall, '.' food, 'o'
// capsule, space for an empty cell, and digits for numbered agent start
// positions (sorted by digit, so agent indices are stable). The first text
// row is the top of the board. The board midline (width/2) decides team
// membership: agents starting left of it are red.
package layout

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/nrharido/pacman/game"
)

//go:embed layouts/defaultCapture.lay
var defaultCapture string

// LayoutError reports a malformed layout. The engine does not attempt
// partial recovery.
type LayoutError struct {
	Reason string
}

func (e *LayoutError) Error() string {
	return "layout: " + e.Reason
}

// Layout is a parsed board.
type Layout struct {
	Width  int
	Height int

	Walls          *game.Grid
	Food           *game.Grid
	Capsules       []game.Point
	AgentPositions []game.Point

	// Source is the normalized text the layout was parsed from, kept for
	// replay records.
	Source string
}

// Parse reads a layout from its text form.
func Parse(text string) (*Layout, error) {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(strings.TrimRight(normalized, "\n"), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, &LayoutError{Reason: "empty layout"}
	}

	width, height := len(lines[0]), len(lines)
	lay := &Layout{
		Width:  width,
		Height: height,
		Walls:  game.NewGrid(width, height),
		Food:   game.NewGrid(width, height),
		Source: strings.Join(lines, "\n") + "\n",
	}

	type numbered struct {
		n int
		p game.Point
	}
	var agents []numbered

	for row, line := range lines {
		if len(line) != width {
			return nil, &LayoutError{Reason: fmt.Sprintf("row %d has width %d, want %d", row, len(line), width)}
		}
		y := height - 1 - row
		for x := 0; x < width; x++ {
			switch ch := line[x]; {
			case ch == '%':
				lay.Walls.Set(x, y, true)
			case ch == '.':
				lay.Food.Set(x, y, true)
			case ch == 'o':
				lay.Capsules = append(lay.Capsules, game.Point{X: x, Y: y})
			case ch >= '1' && ch <= '9':
				agents = append(agents, numbered{n: int(ch - '0'), p: game.Point{X: x, Y: y}})
			case ch == ' ':
			default:
				return nil, &LayoutError{Reason: fmt.Sprintf("unknown character %q at row %d col %d", ch, row, x)}
			}
		}
	}

	if len(agents) == 0 {
		return nil, &LayoutError{Reason: "no agent start positions"}
	}
	sort.Slice(agents, func(i, j int) bool { return agents[i].n < agents[j].n })
	for _, a := range agents {
		lay.AgentPositions = append(lay.AgentPositions, a.p)
	}

	return lay, nil
}

// Load reads a layout file from disk.
func Load(path string) (*Layout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read layout %s", path)
	}
	lay, err := Parse(string(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "parse layout %s", path)
	}
	return lay, nil
}

// Default returns the embedded contest layout.
func Default() *Layout {
	lay, err := Parse(defaultCapture)
	if err != nil {
		panic(err)
	}
	return lay
}
