// Package replay persists match records and parquet turn archives.
//
// A record stores everything needed to re-run a match: the board layout
// text, placeholder agent identities, the ordered action sequence, the
// match length, and the two team names. Replaying feeds the recorded
// actions back through successor generation and reproduces the original
// final score, because the recorded sequence already encodes any decisions
// the original run's randomness produced.
package replay

import (
	"encoding/json"
	"math/rand"
	"os"

	"github.com/pkg/errors"

	"github.com/nrharido/pacman/game"
	"github.com/nrharido/pacman/layout"
	"github.com/nrharido/pacman/rules"
)

// Move is one applied action.
type Move struct {
	AgentIndex int            `json:"agent_index"`
	Action     game.Direction `json:"action"`
}

// Record is the persisted form of one match.
type Record struct {
	Layout       string   `json:"layout"`
	AgentNames   []string `json:"agent_names"`
	Moves        []Move   `json:"moves"`
	Length       int      `json:"length"`
	RedTeamName  string   `json:"red_team_name"`
	BlueTeamName string   `json:"blue_team_name"`
}

// Save writes the record as JSON.
func (r *Record) Save(path string) error {
	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode replay")
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return errors.Wrapf(err, "write replay %s", path)
	}
	return nil
}

// Load reads a record written by Save.
func Load(path string) (*Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read replay %s", path)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errors.Wrapf(err, "decode replay %s", path)
	}
	return &rec, nil
}

// Replay re-runs the recorded match and returns the final state. onStep, if
// non-nil, is called after every applied action. Randomness is not
// re-invoked beyond the starting-team draw, which the recorded sequence
// makes irrelevant.
func (r *Record) Replay(onStep func(*game.GameState)) (*game.GameState, error) {
	lay, err := layout.Parse(r.Layout)
	if err != nil {
		return nil, errors.Wrap(err, "replay layout")
	}

	captureRules := rules.NewCaptureRules()
	captureRules.Quiet = true
	state, _ := captureRules.NewGame(lay, r.Length, rand.New(rand.NewSource(0)))

	for i, mv := range r.Moves {
		state, err = rules.GenerateSuccessor(state, mv.AgentIndex, mv.Action)
		if err != nil {
			return nil, errors.Wrapf(err, "replay move %d", i)
		}
		if onStep != nil {
			onStep(state)
		}
		captureRules.Process(state, i+1)
	}
	return state, nil
}
