package emitter

import (
	"math/rand"
	"sync"
	"time"

	"telemetry_demo/internal/models"
)

// Nominal operating point and spread of the simulated sensor.
const (
	PressureBase   = 8.0
	PressureSpread = 0.3
	TempBase       = 45.0
	TempSpread     = 1.5
	VibBase        = 0.8
	VibSpread      = 0.2

	// Fault mode only moves temperature; pressure and vibration stay nominal.
	FaultTempBase   = 95.0
	FaultTempSpread = 2.0
)

// Generator synthesizes readings. Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator seeded from the clock.
func NewGenerator() *Generator {
	return NewGeneratorWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewGeneratorWithSource makes the sequence reproducible for tests.
func NewGeneratorWithSource(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// Next returns a nominal reading, or an OVERTEMP one when fault is set.
func (g *Generator) Next(fault bool) models.Reading {
	g.mu.Lock()
	defer g.mu.Unlock()

	r := models.Reading{
		Pressure: g.around(PressureBase, PressureSpread),
		Temp:     g.around(TempBase, TempSpread),
		Vib:      g.around(VibBase, VibSpread),
		Status:   models.StatusOK,
	}
	if fault {
		r.Temp = g.around(FaultTempBase, FaultTempSpread)
		r.Status = models.StatusOverTemp
	}
	return r
}

// around draws uniformly from [base-spread, base+spread]. Caller holds g.mu.
func (g *Generator) around(base, spread float64) float64 {
	return base + (g.rng.Float64()*2-1)*spread
}
