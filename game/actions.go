package game

import "math"

// Direction is one of the five moves an agent can make. North is +y.
type Direction int

const (
	North Direction = iota
	South
	East
	West
	Stop
)

// Directions lists every direction in legal-action order.
var Directions = []Direction{North, South, East, West, Stop}

var directionNames = [...]string{"North", "South", "East", "West", "Stop"}

func (d Direction) String() string {
	if d < North || d > Stop {
		return "Unknown"
	}
	return directionNames[d]
}

// ParseDirection maps a direction name back to its value.
func ParseDirection(name string) (Direction, bool) {
	for i, n := range directionNames {
		if n == name {
			return Direction(i), true
		}
	}
	return Stop, false
}

// Vector returns the unit movement vector for d.
func (d Direction) Vector() (float64, float64) {
	switch d {
	case North:
		return 0, 1
	case South:
		return 0, -1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}

// VectorToDirection maps a movement vector back to a direction.
func VectorToDirection(dx, dy float64) Direction {
	switch {
	case dy > 0:
		return North
	case dy < 0:
		return South
	case dx < 0:
		return West
	case dx > 0:
		return East
	}
	return Stop
}

// Point is a grid cell coordinate. (0,0) is bottom-left.
type Point struct {
	X int
	Y int
}

// Position is a continuous board coordinate. Agents sit exactly on grid
// points except while mid-move at fractional speeds.
type Position struct {
	X float64
	Y float64
}

// NearestPoint rounds a continuous position to the closest grid cell.
func NearestPoint(p Position) Point {
	return Point{X: int(p.X + 0.5), Y: int(p.Y + 0.5)}
}

// ToPosition converts a grid cell to its continuous coordinates.
func (p Point) ToPosition() Position {
	return Position{X: float64(p.X), Y: float64(p.Y)}
}

// ManhattanDistance between two grid cells.
func ManhattanDistance(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// ManhattanDistancePos between two continuous positions.
func ManhattanDistancePos(a, b Position) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// moveTolerance is how far from a grid point an agent may drift and still
// count as aligned when choosing a new direction.
const moveTolerance = 0.001

// PossibleActions returns the moves geometrically available from conf.
// Between grid points an agent can only continue in its current direction;
// on a grid point every non-wall neighbor is available, and Stop always is.
func PossibleActions(conf Configuration, walls *Grid) []Direction {
	x, y := conf.Pos.X, conf.Pos.Y
	xInt, yInt := int(x+0.5), int(y+0.5)

	if math.Abs(x-float64(xInt))+math.Abs(y-float64(yInt)) > moveTolerance {
		return []Direction{conf.Dir}
	}

	possible := make([]Direction, 0, len(Directions))
	for _, d := range Directions {
		dx, dy := d.Vector()
		if !walls.At(xInt+int(dx), yInt+int(dy)) {
			possible = append(possible, d)
		}
	}
	return possible
}
