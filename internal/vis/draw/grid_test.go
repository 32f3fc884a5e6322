package draw

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellColor(t *testing.T) {
	assert.Equal(t, ColorCellBlocked, CellColor(math.Inf(1), 5))
	assert.Equal(t, ColorCellOpen, CellColor(1, 5))
	assert.Equal(t, ColorCellOpen, CellColor(0.25, 5))
	assert.Equal(t, ColorCellOpen, CellColor(3, 1))

	mid, dark := CellColor(3, 5), CellColor(5, 5)
	assert.Less(t, mid.R, ColorCellOpen.R)
	assert.Less(t, dark.R, mid.R)
	assert.Equal(t, uint8(255), dark.A)
}
