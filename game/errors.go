package game

import "fmt"

// IllegalActionError reports an action outside an agent's legal set. The
// engine never clamps or ignores a bad action.
type IllegalActionError struct {
	AgentIndex int
	Action     Direction
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal action %v for agent %d", e.Action, e.AgentIndex)
}
