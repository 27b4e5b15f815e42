// Package rules implements the capture-the-flag transition function and
// episode orchestration.
//
// All transitions go through GenerateSuccessor, which deep-copies the world
// before mutating it; callers never observe a half-applied move. The rules
// only ever resolve the acting agent's collisions: two overlapping agents
// that both stand still are left alone.
package rules

import (
	"github.com/nrharido/pacman/game"
)

// Config groups the tunable policy constants of the capture variant.
type Config struct {
	// CollisionTolerance is the Manhattan distance at which an offense
	// agent and a defender collide.
	CollisionTolerance float64
	// EatTolerance is how close to a grid point an offense agent must be
	// to consume it.
	EatTolerance float64
	// ScaredTime is set on every opposing agent's timer when a capsule is
	// eaten.
	ScaredTime int
	// MinFood is the food floor: a side wins once the opposing supply is
	// down to this count.
	MinFood int
	// KillPoints is the score bonus for a capture, signed by team.
	KillPoints int
}

// DefaultConfig matches the standard contest rules.
func DefaultConfig() Config {
	return Config{
		CollisionTolerance: 0.7,
		EatTolerance:       0.9,
		ScaredTime:         40,
		MinFood:            2,
		KillPoints:         0,
	}
}

// GetLegalActions returns the legal actions for an agent in a fixed order.
// The base rules apply no filtering beyond geometry.
func GetLegalActions(state *game.GameState, agentIndex int) []game.Direction {
	conf := state.AgentState(agentIndex).Config
	possible := game.PossibleActions(*conf, state.Walls())
	return filterForAllowedActions(possible)
}

// filterForAllowedActions is an extension hook; the base rules allow every
// geometrically possible move.
func filterForAllowedActions(possible []game.Direction) []game.Direction {
	return possible
}

// GenerateSuccessor applies one agent's action to a fresh copy of the state
// under the default config. The input state is never mutated.
func GenerateSuccessor(state *game.GameState, agentIndex int, action game.Direction) (*game.GameState, error) {
	return GenerateSuccessorWithConfig(state, agentIndex, action, DefaultConfig())
}

// GenerateSuccessorWithConfig is GenerateSuccessor with explicit policy
// constants.
func GenerateSuccessorWithConfig(state *game.GameState, agentIndex int, action game.Direction, cfg Config) (*game.GameState, error) {
	next := state.Clone()

	if err := applyAction(next, action, agentIndex, cfg); err != nil {
		return nil, err
	}
	checkDeath(next, agentIndex, cfg)
	decrementTimer(next.AgentState(agentIndex))

	next.Data.AgentMoved = agentIndex
	next.Data.Score += next.Data.ScoreChange
	next.Data.TimeLeft--
	return next, nil
}

// applyAction validates the action and edits the state to reflect it:
// movement, consumption, and the offense/defense role change.
func applyAction(state *game.GameState, action game.Direction, agentIndex int, cfg Config) error {
	legal := GetLegalActions(state, agentIndex)
	if !containsDirection(legal, action) {
		return &game.IllegalActionError{AgentIndex: agentIndex, Action: action}
	}

	agentState := state.AgentState(agentIndex)

	const speed = 1.0
	dx, dy := action.Vector()
	next := agentState.Config.Successor(dx*speed, dy*speed)
	agentState.Config = &next

	nextPos := next.Pos
	nearest := game.NearestPoint(nextPos)
	if agentState.IsPacman && game.ManhattanDistancePos(nearest.ToPosition(), nextPos) <= cfg.EatTolerance {
		consume(nearest, state, state.IsOnRedTeam(agentIndex), cfg)
	}

	// The role is re-derived only at exact grid alignment: an agent is on
	// offense exactly when it stands on enemy territory.
	if nextPos == nearest.ToPosition() {
		agentState.IsPacman = state.IsOnRedTeam(agentIndex) != state.IsRedHalf(nextPos)
	}
	return nil
}

// consume eats whatever sits at a grid point on behalf of one team.
func consume(pos game.Point, state *game.GameState, isRed bool, cfg Config) {
	if state.HasFood(pos.X, pos.Y) {
		score := -1
		if isRed {
			score = 1
		}
		state.Data.ScoreChange += score
		state.Data.Food.Set(pos.X, pos.Y, false)
		eaten := pos
		state.Data.FoodEaten = &eaten

		// The floor is 2, not 0: two morsels per side stay uneatable.
		if (isRed && state.BlueFood().Count() == cfg.MinFood) ||
			(!isRed && state.RedFood().Count() == cfg.MinFood) {
			state.Data.Win = true
		}
	}

	capsules := state.RedCapsules()
	if isRed {
		capsules = state.BlueCapsules()
	}
	if containsPoint(capsules, pos) {
		state.Data.Capsules = removePoint(state.Data.Capsules, pos)
		eaten := pos
		state.Data.CapsuleEaten = &eaten

		otherTeam := state.RedTeamIndices()
		if isRed {
			otherTeam = state.BlueTeamIndices()
		}
		for _, index := range otherTeam {
			state.AgentState(index).ScaredTimer = cfg.ScaredTime
		}
	}
}

// decrementTimer counts a scared timer down. On the final tick the agent is
// snapped to the nearest grid point, so a capturable agent cannot sit
// mid-cell at the instant its vulnerability ends.
func decrementTimer(agent *game.AgentState) {
	if agent.ScaredTimer == 1 {
		agent.Config.Pos = game.NearestPoint(agent.Config.Pos).ToPosition()
	}
	if agent.ScaredTimer > 0 {
		agent.ScaredTimer--
	}
}

// checkDeath resolves captures for the acting agent against the opposing
// team's complementary role. Each collision pair resolves at most once per
// turn: the scan stops as soon as the acting agent has been sent home.
func checkDeath(state *game.GameState, agentIndex int, cfg Config) {
	agentState := state.AgentState(agentIndex)
	myPos, ok := agentState.Position()
	if !ok {
		return
	}

	otherTeam := state.BlueTeamIndices()
	if !state.IsOnRedTeam(agentIndex) {
		otherTeam = state.RedTeamIndices()
	}

	if agentState.IsPacman {
		for _, index := range otherTeam {
			other := state.AgentState(index)
			if other.IsPacman {
				continue
			}
			ghostPos, ok := other.Position()
			if !ok {
				continue
			}
			if game.ManhattanDistancePos(ghostPos, myPos) > cfg.CollisionTolerance {
				continue
			}
			score := cfg.KillPoints
			if state.IsOnRedTeam(agentIndex) {
				score = -score
			}
			state.Data.ScoreChange += score
			if other.ScaredTimer <= 0 {
				sendHome(agentState)
				return
			}
			sendHome(other)
		}
		return
	}

	for _, index := range otherTeam {
		other := state.AgentState(index)
		if !other.IsPacman {
			continue
		}
		pacPos, ok := other.Position()
		if !ok {
			continue
		}
		if game.ManhattanDistancePos(pacPos, myPos) > cfg.CollisionTolerance {
			continue
		}
		if agentState.ScaredTimer <= 0 {
			score := cfg.KillPoints
			if !state.IsOnRedTeam(agentIndex) {
				score = -score
			}
			state.Data.ScoreChange += score
			sendHome(other)
			continue
		}
		score := cfg.KillPoints
		if state.IsOnRedTeam(agentIndex) {
			score = -score
		}
		state.Data.ScoreChange += score
		sendHome(agentState)
		return
	}
}

// sendHome teleports a captured agent back to its fixed start, on defense
// with a cleared timer.
func sendHome(agent *game.AgentState) {
	start := agent.Start
	agent.Config = &start
	agent.IsPacman = false
	agent.ScaredTimer = 0
}

func containsDirection(list []game.Direction, d game.Direction) bool {
	for _, v := range list {
		if v == d {
			return true
		}
	}
	return false
}

func containsPoint(list []game.Point, p game.Point) bool {
	for _, v := range list {
		if v == p {
			return true
		}
	}
	return false
}

func removePoint(list []game.Point, p game.Point) []game.Point {
	out := list[:0]
	for _, v := range list {
		if v != p {
			out = append(out, v)
		}
	}
	return out
}
