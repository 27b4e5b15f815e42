// Package game defines the board and match state for a two-team
// capture-the-flag pacman variant.
//
// WorldData owns the raw mutable board contents; GameState is the
// accessor-only view handed to rules and agents. Successor states are full
// deep copies, so search and inference agents can explore hypothetical
// futures without corrupting the authoritative state.
package game

import "strings"

// WorldData is the raw, copyable snapshot of the board.
//
// Walls never change after setup and are shared between copies; everything
// else is deep-copied by Clone. ScoreChange is the pending score delta of
// the step currently being applied. The transient markers (Win, FoodEaten,
// CapsuleEaten, AgentMoved) describe only the step that produced this
// snapshot and reset on every copy.
type WorldData struct {
	Walls    *Grid
	Food     *Grid
	Capsules []Point
	Agents   []AgentState

	Score       int
	ScoreChange int
	TimeLeft    int

	Win          bool
	FoodEaten    *Point
	CapsuleEaten *Point
	AgentMoved   int
}

// Clone is the exhaustive value copy used for successor generation.
func (d *WorldData) Clone() *WorldData {
	out := &WorldData{
		Walls:      d.Walls,
		Food:       d.Food.Clone(),
		Score:      d.Score,
		TimeLeft:   d.TimeLeft,
		AgentMoved: -1,
	}

	if len(d.Capsules) > 0 {
		out.Capsules = make([]Point, len(d.Capsules))
		copy(out.Capsules, d.Capsules)
	}

	if len(d.Agents) > 0 {
		out.Agents = make([]AgentState, len(d.Agents))
		for i := range d.Agents {
			out.Agents[i] = d.Agents[i].clone()
		}
	}

	return out
}

// GameState wraps one WorldData snapshot with fixed team membership.
//
// Team membership is computed once at initialization from each agent's
// starting column relative to the board midline and never changes, even
// though an agent's offense/defense role flips as it crosses the midline.
type GameState struct {
	Data *WorldData

	redTeam  []int
	blueTeam []int
	teams    []bool

	agentDistances []int
}

// NewInitialState builds the match-start state from board contents and the
// agents' start cells.
func NewInitialState(walls, food *Grid, capsules []Point, agentStarts []Point, timeLeft int) *GameState {
	data := &WorldData{
		Walls:      walls,
		Food:       food.Clone(),
		TimeLeft:   timeLeft,
		AgentMoved: -1,
	}
	data.Capsules = append(data.Capsules, capsules...)

	s := &GameState{Data: data}
	for i, p := range agentStarts {
		conf := Configuration{Pos: p.ToPosition(), Dir: Stop}
		c := conf
		data.Agents = append(data.Agents, AgentState{Config: &c, Start: conf})

		red := p.X < walls.Width/2
		s.teams = append(s.teams, red)
		if red {
			s.redTeam = append(s.redTeam, i)
		} else {
			s.blueTeam = append(s.blueTeam, i)
		}
	}
	return s
}

// Clone performs a deep copy of the state. The noisy-distance vector is
// carried forward; it is only re-derived by MakeObservation.
func (s *GameState) Clone() *GameState {
	return &GameState{
		Data:           s.Data.Clone(),
		redTeam:        append([]int(nil), s.redTeam...),
		blueTeam:       append([]int(nil), s.blueTeam...),
		teams:          append([]bool(nil), s.teams...),
		agentDistances: append([]int(nil), s.agentDistances...),
	}
}

func (s *GameState) NumAgents() int {
	return len(s.Data.Agents)
}

// Score is the running match score. Positive favors the red team.
func (s *GameState) Score() int {
	return s.Data.Score
}

func (s *GameState) TimeLeft() int {
	return s.Data.TimeLeft
}

// AgentState returns the mutable record for one agent. Rules code uses
// this; agents should prefer the read-only accessors.
func (s *GameState) AgentState(agentIndex int) *AgentState {
	return &s.Data.Agents[agentIndex]
}

// AgentPosition returns the agent's cell, truncating any fractional
// position, or ok=false if the agent was redacted by an observation.
func (s *GameState) AgentPosition(agentIndex int) (Point, bool) {
	pos, ok := s.Data.Agents[agentIndex].Position()
	if !ok {
		return Point{}, false
	}
	return Point{X: int(pos.X), Y: int(pos.Y)}, true
}

// InitialAgentPosition returns the agent's fixed start cell.
func (s *GameState) InitialAgentPosition(agentIndex int) Point {
	start := s.Data.Agents[agentIndex].Start.Pos
	return Point{X: int(start.X), Y: int(start.Y)}
}

func (s *GameState) Walls() *Grid {
	return s.Data.Walls
}

func (s *GameState) HasWall(x, y int) bool {
	return s.Data.Walls.At(x, y)
}

func (s *GameState) HasFood(x, y int) bool {
	return s.Data.Food.At(x, y)
}

// Capsules returns the remaining capsule cells.
func (s *GameState) Capsules() []Point {
	return append([]Point(nil), s.Data.Capsules...)
}

// IsOver reports whether the win flag has been set, either by consumption
// logic or by the driving loop on reaching the move limit.
func (s *GameState) IsOver() bool {
	return s.Data.Win
}

func (s *GameState) IsOnRedTeam(agentIndex int) bool {
	return s.teams[agentIndex]
}

func (s *GameState) RedTeamIndices() []int {
	return append([]int(nil), s.redTeam...)
}

func (s *GameState) BlueTeamIndices() []int {
	return append([]int(nil), s.blueTeam...)
}

// IsRedHalf reports whether a continuous position lies on the red side of
// the board midline.
func (s *GameState) IsRedHalf(pos Position) bool {
	return pos.X < float64(s.Data.Walls.Width/2)
}

// RedFood returns the food the red team is protecting (blue eats it).
func (s *GameState) RedFood() *Grid {
	return s.Data.Food.HalfGrid(true)
}

// BlueFood returns the food the blue team is protecting (red eats it).
func (s *GameState) BlueFood() *Grid {
	return s.Data.Food.HalfGrid(false)
}

func (s *GameState) RedCapsules() []Point {
	return halfPoints(s.Data.Capsules, s.Data.Walls.Width, true)
}

func (s *GameState) BlueCapsules() []Point {
	return halfPoints(s.Data.Capsules, s.Data.Walls.Width, false)
}

// String renders the board for logs and test output: '%' wall, '.' food,
// 'o' capsule, and each visible agent as its index digit.
func (s *GameState) String() string {
	w, h := s.Data.Walls.Width, s.Data.Walls.Height
	rows := make([][]byte, h)
	for y := range rows {
		rows[y] = make([]byte, w)
		for x := range rows[y] {
			switch {
			case s.Data.Walls.At(x, h-1-y):
				rows[y][x] = '%'
			case s.Data.Food.At(x, h-1-y):
				rows[y][x] = '.'
			default:
				rows[y][x] = ' '
			}
		}
	}
	for _, c := range s.Data.Capsules {
		rows[h-1-c.Y][c.X] = 'o'
	}
	for i := range s.Data.Agents {
		p, ok := s.AgentPosition(i)
		if !ok {
			continue
		}
		rows[h-1-p.Y][p.X] = byte('0' + i)
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}
