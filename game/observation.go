package game

import "math/rand"

const (
	// SightRange is the Manhattan distance inside which an opponent is
	// directly observable.
	SightRange = 5

	// sonarNoiseRange is the width of the uniform noise kernel applied to
	// distance readings. Must be odd so the kernel is symmetric.
	sonarNoiseRange = 13
)

// DistanceProb returns the probability of reading noisyDistance when the
// true distance is trueDistance: a discrete uniform kernel over offsets in
// [-6, 6]. Inference agents depend on this exact shape.
func (s *GameState) DistanceProb(trueDistance, noisyDistance int) float64 {
	diff := noisyDistance - trueDistance
	half := (sonarNoiseRange - 1) / 2
	if diff >= -half && diff <= half {
		return 1.0 / sonarNoiseRange
	}
	return 0
}

// AgentDistances returns the noisy distance vector attached by
// MakeObservation, or nil if this state instance has none.
func (s *GameState) AgentDistances() []int {
	return append([]int(nil), s.agentDistances...)
}

func noisyDistance(a, b Point, rng *rand.Rand) int {
	half := (sonarNoiseRange - 1) / 2
	return ManhattanDistance(a, b) + rng.Intn(sonarNoiseRange) - half
}

// MakeObservation projects the state for one agent: it attaches a fresh
// noisy distance reading per agent and redacts every opponent that no
// teammate of the observer is within SightRange of. The projection is
// recomputed on every call, never cached.
func (s *GameState) MakeObservation(agentIndex int, rng *rand.Rand) *GameState {
	state := s.Clone()

	pos, _ := state.AgentPosition(agentIndex)
	distances := make([]int, state.NumAgents())
	for i := range distances {
		other, ok := state.AgentPosition(i)
		if !ok {
			continue
		}
		distances[i] = noisyDistance(pos, other, rng)
	}
	state.agentDistances = distances

	team, otherTeam := state.redTeam, state.blueTeam
	if !s.IsOnRedTeam(agentIndex) {
		team, otherTeam = state.blueTeam, state.redTeam
	}

	for _, enemy := range otherTeam {
		enemyPos, ok := state.AgentPosition(enemy)
		if !ok {
			continue
		}
		seen := false
		for _, teammate := range team {
			matePos, ok := state.AgentPosition(teammate)
			if ok && ManhattanDistance(enemyPos, matePos) <= SightRange {
				seen = true
			}
		}
		if !seen {
			state.Data.Agents[enemy].Config = nil
		}
	}

	return state
}
