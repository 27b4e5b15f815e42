package replay_test

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nrharido/pacman/game"
	"github.com/nrharido/pacman/layout"
	"github.com/nrharido/pacman/replay"
	"github.com/nrharido/pacman/runner"
)

const smallLayout = `%%%%%%%%%%
%    ....%
%1      2%
%....    %
%%%%%%%%%%
`

func TestRecordSaveLoadRoundTrip(t *testing.T) {
	rec := &replay.Record{
		Layout:     smallLayout,
		AgentNames: []string{"agent0", "agent1"},
		Moves: []replay.Move{
			{AgentIndex: 0, Action: game.East},
			{AgentIndex: 1, Action: game.West},
			{AgentIndex: 0, Action: game.Stop},
		},
		Length:       300,
		RedTeamName:  "Crimson",
		BlueTeamName: "Navy",
	}

	path := filepath.Join(t.TempDir(), "match.json")
	require.NoError(t, rec.Save(path))

	loaded, err := replay.Load(path)
	require.NoError(t, err)
	require.Equal(t, rec, loaded)
}

func TestLoadMissingRecord(t *testing.T) {
	_, err := replay.Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestReplayReproducesFinalScore(t *testing.T) {
	lay := layout.Default()
	agents := runner.NewRandomTeams(len(lay.AgentPositions), 11)

	g, err := runner.New(lay, agents, 80, rand.New(rand.NewSource(11)))
	require.NoError(t, err)
	g.Rules.Quiet = true
	g.Run()

	rec := g.Record("Red", "Blue")
	require.Len(t, rec.Moves, len(g.MoveHistory))

	steps := 0
	final, err := rec.Replay(func(*game.GameState) { steps++ })
	require.NoError(t, err)
	require.Equal(t, len(rec.Moves), steps)
	require.Equal(t, g.State.Score(), final.Score())
	require.Equal(t, g.State.TimeLeft(), final.TimeLeft())
}

func TestReplayRejectsMalformedLayout(t *testing.T) {
	rec := &replay.Record{Layout: "%%\n%", Length: 10}
	_, err := rec.Replay(nil)
	require.Error(t, err)
}

func TestReplayRejectsIllegalMove(t *testing.T) {
	rec := &replay.Record{
		Layout: smallLayout,
		Moves:  []replay.Move{{AgentIndex: 0, Action: game.West}},
		Length: 10,
	}
	_, err := rec.Replay(nil)
	require.Error(t, err)
}
