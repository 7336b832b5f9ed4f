package visualizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstrainOffsetClamps(t *testing.T) {
	got := ConstrainOffset(10, 10, 50, 30, 100, 60)
	assert.Equal(t, AreaOffset{X: 25, Y: 15}, got)

	got = ConstrainOffset(99, 59, 50, 30, 100, 60)
	assert.Equal(t, AreaOffset{X: 75, Y: 45}, got)

	got = ConstrainOffset(40, 30, 50, 30, 100, 60)
	assert.Equal(t, AreaOffset{X: 40, Y: 30}, got)
}

func TestConstrainOffsetOversizedAreaCollapsesToMidpoint(t *testing.T) {
	got := ConstrainOffset(0, 0, 150, 80, 100, 60)
	assert.InDelta(t, 50, got.X, 1e-12)
	assert.InDelta(t, 30, got.Y, 1e-12)
}

func TestConstrainOffsetProperties(t *testing.T) {
	const eps = 1e-9
	tablets := [][2]float64{{100, 60}, {152.4, 95.25}, {10, 10}, {300, 200}}
	fractions := []float64{0, 0.1, 0.5, 0.99, 1}
	offsets := []float64{-500, -1, 0, 3.3, 50, 149.9, 1000}

	for _, tab := range tablets {
		for _, fw := range fractions {
			for _, fh := range fractions {
				areaW, areaH := tab[0]*fw, tab[1]*fh
				for _, ox := range offsets {
					for _, oy := range offsets {
						once := ConstrainOffset(ox, oy, areaW, areaH, tab[0], tab[1])
						twice := ConstrainOffset(once.X, once.Y, areaW, areaH, tab[0], tab[1])
						assert.Equal(t, once, twice)

						assert.GreaterOrEqual(t, once.X, areaW/2-eps)
						assert.LessOrEqual(t, once.X, tab[0]-areaW/2+eps)
						assert.GreaterOrEqual(t, once.Y, areaH/2-eps)
						assert.LessOrEqual(t, once.Y, tab[1]-areaH/2+eps)
					}
				}
			}
		}
	}
}
