package runner

import (
	"math/rand"

	"github.com/nrharido/pacman/game"
	"github.com/nrharido/pacman/rules"
)

// RandomAgent picks uniformly among its legal actions. It is the CLI
// default opponent and the reference agent in tests.
type RandomAgent struct {
	Index int
	Rng   *rand.Rand
}

func (a *RandomAgent) RegisterInitialState(*game.GameState) {}

func (a *RandomAgent) ChooseAction(state *game.GameState) game.Direction {
	legal := rules.GetLegalActions(state, a.Index)
	return legal[a.Rng.Intn(len(legal))]
}

// NewRandomTeams builds one RandomAgent per start position, each with its
// own seeded source so matches are reproducible.
func NewRandomTeams(numAgents int, seed int64) []Agent {
	agents := make([]Agent, numAgents)
	for i := range agents {
		agents[i] = &RandomAgent{Index: i, Rng: rand.New(rand.NewSource(seed + int64(i)))}
	}
	return agents
}
