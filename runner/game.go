// Package runner drives a match: it feeds observations to agents, applies
// their actions, enforces the advisory time budgets, and records history.
//
// The engine itself is a pure turn simulator; everything wall-clock lives
// here. Agent failures never propagate: they forfeit the match through
// AgentCrash so every match produces a defined outcome.
package runner

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/nrharido/pacman/game"
	"github.com/nrharido/pacman/layout"
	"github.com/nrharido/pacman/replay"
	"github.com/nrharido/pacman/rules"
)

// Agent is an opaque decision maker. It only ever sees observation states
// produced by MakeObservation, never the authoritative one.
type Agent interface {
	RegisterInitialState(state *game.GameState)
	ChooseAction(state *game.GameState) game.Direction
}

// Game owns one match from start to finish.
type Game struct {
	MatchID string
	Rules   *rules.CaptureRules
	Layout  *layout.Layout
	State   *game.GameState
	Agents  []Agent
	Length  int

	// OnStep, if set, is called after every applied action. Resolved once
	// at construction; there is no per-call capability probing.
	OnStep func(state *game.GameState, mv replay.Move)

	MoveHistory  []replay.Move
	Outcome      rules.Outcome
	Crashed      bool
	CrashedAgent int

	startingIndex int
	rng           *rand.Rand
	totalTime     []time.Duration
	warnings      []int
}

// New sets up a match on the given layout. The random source seeds both the
// starting-team draw and all observation noise, so a fixed seed plus a
// fixed action sequence reproduces a match exactly.
func New(lay *layout.Layout, agents []Agent, length int, rng *rand.Rand) (*Game, error) {
	if len(agents) != len(lay.AgentPositions) {
		return nil, fmt.Errorf("layout has %d agent positions, got %d agents", len(lay.AgentPositions), len(agents))
	}

	captureRules := rules.NewCaptureRules()
	state, starter := captureRules.NewGame(lay, length, rng)

	return &Game{
		MatchID:       uuid.NewString(),
		Rules:         captureRules,
		Layout:        lay,
		State:         state,
		Agents:        agents,
		Length:        length,
		CrashedAgent:  -1,
		startingIndex: starter,
		rng:           rng,
		totalTime:     make([]time.Duration, len(agents)),
		warnings:      make([]int, len(agents)),
	}, nil
}

// Run plays the match to completion and returns its outcome.
func (g *Game) Run() rules.Outcome {
	for i, agent := range g.Agents {
		obs := g.State.MakeObservation(i, g.rng)
		elapsed := timed(func() { agent.RegisterInitialState(obs) })
		g.totalTime[i] += elapsed
		if elapsed > g.Rules.MaxStartupTime(i) {
			log.Printf("agent %d took %v to start up, forfeiting", i, elapsed)
			return g.crash(i)
		}
	}

	agentIndex := g.startingIndex
	for !g.State.IsOver() {
		agent := g.Agents[agentIndex]
		obs := g.State.MakeObservation(agentIndex, g.rng)

		var action game.Direction
		elapsed := timed(func() { action = agent.ChooseAction(obs) })
		g.totalTime[agentIndex] += elapsed

		if g.budgetExhausted(agentIndex, elapsed) {
			return g.crash(agentIndex)
		}

		next, err := rules.GenerateSuccessor(g.State, agentIndex, action)
		if err != nil {
			log.Printf("agent %d: %v", agentIndex, err)
			return g.crash(agentIndex)
		}
		g.State = next

		mv := replay.Move{AgentIndex: agentIndex, Action: action}
		g.MoveHistory = append(g.MoveHistory, mv)
		if g.OnStep != nil {
			g.OnStep(g.State, mv)
		}

		g.Outcome = g.Rules.Process(g.State, len(g.MoveHistory))
		agentIndex = (agentIndex + 1) % len(g.Agents)
	}
	return g.Outcome
}

// Record builds the replay record for this match.
func (g *Game) Record(redTeamName, blueTeamName string) *replay.Record {
	names := make([]string, len(g.Agents))
	for i := range names {
		names[i] = fmt.Sprintf("agent%d", i)
	}
	return &replay.Record{
		Layout:       g.Layout.Source,
		AgentNames:   names,
		Moves:        append([]replay.Move(nil), g.MoveHistory...),
		Length:       g.Length,
		RedTeamName:  redTeamName,
		BlueTeamName: blueTeamName,
	}
}

// budgetExhausted applies the per-move warning and timeout policy from the
// rules.
func (g *Game) budgetExhausted(agentIndex int, elapsed time.Duration) bool {
	if elapsed > g.Rules.MoveTimeout(agentIndex) {
		log.Printf("agent %d took %v for one move, forfeiting", agentIndex, elapsed)
		return true
	}
	if elapsed > g.Rules.MoveWarningTime(agentIndex) {
		g.warnings[agentIndex]++
		log.Printf("agent %d move warning %d/%d (%v)",
			agentIndex, g.warnings[agentIndex], g.Rules.MaxTimeWarnings(agentIndex), elapsed)
		if g.warnings[agentIndex] > g.Rules.MaxTimeWarnings(agentIndex) {
			return true
		}
	}
	if g.totalTime[agentIndex] > g.Rules.MaxTotalTime(agentIndex) {
		log.Printf("agent %d exceeded the total time budget", agentIndex)
		return true
	}
	return false
}

func (g *Game) crash(agentIndex int) rules.Outcome {
	g.Crashed = true
	g.CrashedAgent = agentIndex
	g.Rules.AgentCrash(g.State, agentIndex)
	g.State.Data.Win = true
	g.Outcome = g.Rules.Process(g.State, len(g.MoveHistory))
	return g.Outcome
}

func timed(fn func()) time.Duration {
	startedAt := time.Now()
	fn()
	return time.Since(startedAt)
}
