package rules

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/nrharido/pacman/layout"
)

func TestProcessMoveLimitEndsTheMatch(t *testing.T) {
	r, state := startMatch(t, openLayout, 10)

	out := r.Process(state, 9)
	if out.Over {
		t.Fatalf("match over at move 9 of 10: %+v", out)
	}

	out = r.Process(state, 10)
	if !out.Over || out.Winner != "Tie" || out.ByStarvation {
		t.Fatalf("outcome=%+v want a tie at the move limit", out)
	}
	if !state.IsOver() {
		t.Fatalf("Process must set the win flag at the move limit")
	}
}

func TestProcessScoreDecidesWinner(t *testing.T) {
	cases := []struct {
		score  int
		winner string
	}{
		{3, "Red"},
		{-2, "Blue"},
		{0, "Tie"},
	}
	for _, c := range cases {
		r, state := startMatch(t, eatLayout, 10)
		state.Data.Score = c.score
		state.Data.Win = true

		out := r.Process(state, 5)
		if !out.Over || out.Winner != c.winner || out.ByStarvation {
			t.Fatalf("score=%d outcome=%+v want winner=%s", c.score, out, c.winner)
		}
	}
}

func TestAgentCrashScoresByParity(t *testing.T) {
	r, state := startMatch(t, openLayout, 10)
	r.AgentCrash(state, 0)
	if got := state.Score(); got != -1 {
		t.Fatalf("red crash score=%d want=-1", got)
	}

	r, state = startMatch(t, openLayout, 10)
	r.AgentCrash(state, 1)
	if got := state.Score(); got != 1 {
		t.Fatalf("blue crash score=%d want=1", got)
	}
}

func TestProgress(t *testing.T) {
	r, state := startMatch(t, eatLayout, 100)

	if got := r.Progress(state, 0); got != 0 {
		t.Fatalf("initial progress=%v want=0", got)
	}
	if got := r.Progress(state, 100); math.Abs(got-0.25) > 1e-9 {
		t.Fatalf("move-limit progress=%v want=0.25", got)
	}

	// Half the blue food gone plus half the moves used.
	state.Data.Food.Set(5, 3, false)
	state.Data.Food.Set(6, 3, false)
	if got := r.Progress(state, 50); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("progress=%v want=0.5", got)
	}

	if got := r.Progress(state, 1000); got > 1 {
		t.Fatalf("progress=%v must clamp to 1", got)
	}
}

func TestTimeBudgets(t *testing.T) {
	r := NewCaptureRules()
	if r.MaxTotalTime(0) != 900*time.Second {
		t.Fatalf("total budget=%v", r.MaxTotalTime(0))
	}
	if r.MaxStartupTime(0) != 15*time.Second {
		t.Fatalf("startup budget=%v", r.MaxStartupTime(0))
	}
	if r.MoveWarningTime(0) != time.Second {
		t.Fatalf("warning threshold=%v", r.MoveWarningTime(0))
	}
	if r.MoveTimeout(0) != 3*time.Second {
		t.Fatalf("move timeout=%v", r.MoveTimeout(0))
	}
	if r.MaxTimeWarnings(0) != 2 {
		t.Fatalf("warning limit=%d", r.MaxTimeWarnings(0))
	}
}

func TestNewGameStartingDrawIsSeeded(t *testing.T) {
	lay, err := layout.Parse(openLayout)
	if err != nil {
		t.Fatalf("parse layout: %v", err)
	}

	r := NewCaptureRules()
	r.Quiet = true
	_, a := r.NewGame(lay, 100, rand.New(rand.NewSource(5)))
	_, b := r.NewGame(lay, 100, rand.New(rand.NewSource(5)))
	if a != b {
		t.Fatalf("starter differs for the same seed: %d vs %d", a, b)
	}
	if a != 0 && a != 1 {
		t.Fatalf("starter=%d want 0 or 1", a)
	}
}
