package console

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGauge_StaysInBounds(t *testing.T) {
	g := NewGauge(rand.New(rand.NewPCG(1, 2)))
	assert.InDelta(t, GaugeStart, g.Value(), 1e-9)

	prev := g.Value()
	for i := 0; i < 10000; i++ {
		v := g.Step()
		assert.GreaterOrEqual(t, v, GaugeMin)
		assert.LessOrEqual(t, v, GaugeMax)
		assert.LessOrEqual(t, v-prev, 2.0+1e-9)
		assert.GreaterOrEqual(t, v-prev, -2.0-1e-9)
		prev = v
	}
}

func TestGauge_DefaultSource(t *testing.T) {
	g := NewGauge(nil)
	g.Step()
	assert.InDelta(t, g.Value()/100, g.Fraction(), 1e-9)
}
