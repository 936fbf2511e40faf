package console

import (
	"math/rand/v2"
	"sync"
	"time"
)

const (
	GaugeStart = 12.4
	GaugeMin   = 5.0
	GaugeMax   = 95.0

	gaugeSpread = 2.0
)

// Gauge is the simulated neural load, a bounded random walk
type Gauge struct {
	mu    sync.Mutex
	value float64
	rng   *rand.Rand
}

// NewGauge creates a gauge at GaugeStart. A nil rng seeds from the clock.
func NewGauge(rng *rand.Rand) *Gauge {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Gauge{value: GaugeStart, rng: rng}
}

// Value returns the current load
func (g *Gauge) Value() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value
}

// Step moves the load by a uniform amount in [-2, 2) and clamps it
func (g *Gauge) Step() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.value += g.rng.Float64()*2*gaugeSpread - gaugeSpread
	if g.value < GaugeMin {
		g.value = GaugeMin
	}
	if g.value > GaugeMax {
		g.value = GaugeMax
	}
	return g.value
}

// Fraction returns the load in [0, 1]
func (g *Gauge) Fraction() float64 {
	return g.Value() / 100
}
