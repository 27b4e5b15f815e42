package rules

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/nrharido/pacman/game"
	"github.com/nrharido/pacman/layout"
)

// FixedSeed reproduces the reference contest draw when fixed-seed play is
// requested.
const FixedSeed = 140188

// CaptureRules decides when and how a match starts and ends. One value
// referees one match.
type CaptureRules struct {
	Cfg   Config
	Quiet bool

	length       int
	initRedFood  int
	initBlueFood int
}

func NewCaptureRules() *CaptureRules {
	return &CaptureRules{Cfg: DefaultConfig()}
}

// NewGame builds the initial state for a match and draws the starting team
// from the supplied random source. The returned index is the first agent to
// move. The initial per-team food counts are snapshotted for Progress.
func (r *CaptureRules) NewGame(lay *layout.Layout, length int, rng *rand.Rand) (*game.GameState, int) {
	state := game.NewInitialState(lay.Walls, lay.Food, lay.Capsules, lay.AgentPositions, length)

	r.length = length
	r.initRedFood = state.RedFood().Count()
	r.initBlueFood = state.BlueFood().Count()

	starter := rng.Intn(2)
	if !r.Quiet {
		log.Printf("%s team starts", []string{"Red", "Blue"}[starter])
	}
	return state, starter
}

// Outcome describes how, and whether, a match ended.
type Outcome struct {
	Over         bool
	Winner       string // "Red", "Blue", or "Tie"
	ByStarvation bool
}

// Process checks for termination after every successor. movesMade is the
// total number of actions applied so far; reaching the move limit sets the
// win flag on the state.
func (r *CaptureRules) Process(state *game.GameState, movesMade int) Outcome {
	if movesMade == r.length {
		state.Data.Win = true
	}
	if !state.IsOver() {
		return Outcome{}
	}

	out := Outcome{Over: true, Winner: "Tie"}
	redFood := state.RedFood().Count()
	blueFood := state.BlueFood().Count()

	switch {
	case redFood == r.Cfg.MinFood:
		out.Winner = "Blue"
		out.ByStarvation = true
		if !r.Quiet {
			log.Printf("The Blue team has captured all but %d of the opponents' dots.", r.Cfg.MinFood)
		}
	case blueFood == r.Cfg.MinFood:
		out.Winner = "Red"
		out.ByStarvation = true
		if !r.Quiet {
			log.Printf("The Red team has captured all but %d of the opponents' dots.", r.Cfg.MinFood)
		}
	default:
		switch {
		case state.Score() > 0:
			out.Winner = "Red"
		case state.Score() < 0:
			out.Winner = "Blue"
		}
		if !r.Quiet {
			if state.Score() == 0 {
				log.Printf("Tie game!")
			} else {
				log.Printf("The %s team wins by %d points.", out.Winner, absInt(state.Score()))
			}
		}
	}
	return out
}

// Progress estimates match completion in [0, 1] from food eaten and moves
// used.
func (r *CaptureRules) Progress(state *game.GameState, movesMade int) float64 {
	blue := 1.0 - float64(state.BlueFood().Count())/float64(r.initBlueFood)
	red := 1.0 - float64(state.RedFood().Count())/float64(r.initRedFood)
	moves := float64(movesMade) / float64(r.length)

	p := 0.75*math.Max(red, blue) + 0.25*moves
	return math.Min(math.Max(p, 0), 1)
}

// AgentCrash assigns the fixed forfeit score when a team's agent program
// fails irrecoverably. Invoked by the driving loop, never by the engine's
// own transition logic.
func (r *CaptureRules) AgentCrash(state *game.GameState, agentIndex int) {
	if agentIndex%2 == 0 {
		if !r.Quiet {
			log.Printf("Red agent crashed")
		}
		state.Data.Score = -1
	} else {
		if !r.Quiet {
			log.Printf("Blue agent crashed")
		}
		state.Data.Score = 1
	}
}

// Advisory time budgets for the driving loop. The engine itself never
// blocks; enforcement is the loop's job.

// MaxTotalTime is the cumulative decision-time budget per agent. Move
// limits should keep a match well below it.
func (r *CaptureRules) MaxTotalTime(agentIndex int) time.Duration { return 900 * time.Second }

// MaxStartupTime bounds one-time agent setup.
func (r *CaptureRules) MaxStartupTime(agentIndex int) time.Duration { return 15 * time.Second }

// MoveWarningTime is the per-move threshold that earns a warning.
func (r *CaptureRules) MoveWarningTime(agentIndex int) time.Duration { return time.Second }

// MoveTimeout is the per-move threshold that forfeits the match outright.
func (r *CaptureRules) MoveTimeout(agentIndex int) time.Duration { return 3 * time.Second }

// MaxTimeWarnings is how many warnings an agent may accumulate; the next
// violation forfeits.
func (r *CaptureRules) MaxTimeWarnings(agentIndex int) int { return 2 }

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
