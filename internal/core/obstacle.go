package core

import "fmt"

// MovingObstacle follows a fixed cycle of cells forever.
type MovingObstacle struct {
	positions []Cell
}

// NewMovingObstacle creates an obstacle from one period of motion.
func NewMovingObstacle(positions ...Cell) (*MovingObstacle, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("%w: obstacle needs at least one position", ErrInvalidWorld)
	}
	return &MovingObstacle{positions: append([]Cell(nil), positions...)}, nil
}

// Period returns the cycle length.
func (o *MovingObstacle) Period() int {
	return len(o.positions)
}

// PositionAt returns the obstacle cell at time step t.
func (o *MovingObstacle) PositionAt(t int) Cell {
	n := len(o.positions)
	i := t % n
	if i < 0 {
		i += n
	}
	return o.positions[i]
}

// Positions returns a copy of one period of motion.
func (o *MovingObstacle) Positions() []Cell {
	return append([]Cell(nil), o.positions...)
}
