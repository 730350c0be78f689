// Package rng provides the uniform randomness the combat rules draw from.
//
// Every probabilistic rule in the engine is phrased as "draw u in [0,1)". The
// production source is backed by an rpg-toolkit dice roller so the same
// roller can be swapped for a seeded one in replays; tests use Fixed.
package rng

import (
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// resolution is the number of faces rolled to build one uniform draw
const resolution = 1 << 30

// Source produces uniform floats in [0,1)
type Source interface {
	Float64() float64
}

// Dice adapts a dice.Roller into a Source
type Dice struct {
	roller dice.Roller
}

// NewDice wraps roller; a nil roller uses dice.DefaultRoller
func NewDice(roller dice.Roller) *Dice {
	if roller == nil {
		roller = dice.DefaultRoller
	}
	return &Dice{roller: roller}
}

// Float64 rolls a d(2^30) and scales it into [0,1)
func (d *Dice) Float64() float64 {
	face, err := d.roller.Roll(resolution)
	if err != nil {
		slog.Warn("dice roller failed, falling back to math/rand", "error", err)
		return rand.Float64()
	}
	return float64(face-1) / float64(resolution)
}

// Fixed replays a sequence of draws, cycling when exhausted
type Fixed struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewFixed returns a Source that yields values in order. With no values it always yields 0.
func NewFixed(values ...float64) *Fixed {
	return &Fixed{values: values}
}

// Float64 returns the next value in the sequence
func (f *Fixed) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}
