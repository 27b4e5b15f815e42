package game

// Configuration is an agent's continuous position plus facing direction.
type Configuration struct {
	Pos Position
	Dir Direction
}

// Successor returns the configuration after moving by the given vector.
// A zero vector keeps the current facing.
func (c Configuration) Successor(dx, dy float64) Configuration {
	dir := VectorToDirection(dx, dy)
	if dir == Stop {
		dir = c.Dir
	}
	return Configuration{
		Pos: Position{X: c.Pos.X + dx, Y: c.Pos.Y + dy},
		Dir: dir,
	}
}

// AgentState is the per-agent record the engine mutates during a match.
//
// Config is nil only on states produced by MakeObservation, when the agent
// has been redacted from an opponent's view; the authoritative state always
// has a configuration for every agent. Start is fixed at initialization and
// never mutated: captured agents respawn there.
type AgentState struct {
	Config      *Configuration
	Start       Configuration
	IsPacman    bool
	ScaredTimer int
}

// Position reports the agent's continuous position, or ok=false if the
// agent has been redacted by an observation projection.
func (a *AgentState) Position() (Position, bool) {
	if a.Config == nil {
		return Position{}, false
	}
	return a.Config.Pos, true
}

func (a *AgentState) clone() AgentState {
	out := *a
	if a.Config != nil {
		c := *a.Config
		out.Config = &c
	}
	return out
}
