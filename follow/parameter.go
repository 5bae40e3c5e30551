// Package follow moves scene objects along a curve. A Parameter holds the
// position along the curve; keyboard presses advance it and every frame Tick
// maps the sampled point onto the follower objects.
package follow

import (
	"fmt"
	"sync/atomic"
)

// Steps is the number of positions along the curve; the parameter t moves in
// increments of 1/Steps.
const Steps = 10

// StepSize is the increment of t applied by one Advance.
const StepSize = 1.0 / Steps

// Direction is the sense of an Advance.
type Direction int8

const (
	Forward  Direction = 1
	Backward Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("Direction(%d)", int8(d))
	}
}

// Parameter is the curve parameter t in [0, 1), kept as a whole number of
// steps so repeated advances never drift. It may be advanced from any
// goroutine; readers always see a complete value.
type Parameter struct {
	step atomic.Int32
}

// NewParameter returns a parameter at the given step in [0, Steps).
func NewParameter(step int) (*Parameter, error) {
	if step < 0 || step >= Steps {
		return nil, fmt.Errorf("follow: step %d out of range [0, %d)", step, Steps)
	}
	p := &Parameter{}
	p.step.Store(int32(step))
	return p, nil
}

// Advance moves t by one step and reports whether t changed. Forward wraps
// from the last step back to 0. Backward stops at 0 instead of wrapping.
func (p *Parameter) Advance(d Direction) bool {
	for {
		cur := p.step.Load()
		next := cur
		switch d {
		case Forward:
			next = (cur + 1) % Steps
		case Backward:
			if cur < 1 {
				return false
			}
			next = cur - 1
		default:
			return false
		}
		if p.step.CompareAndSwap(cur, next) {
			return true
		}
	}
}

// Step returns the current step in [0, Steps).
func (p *Parameter) Step() int {
	return int(p.step.Load())
}

// T returns the current parameter value in [0, 1).
func (p *Parameter) T() float64 {
	return float64(p.Step()) / Steps
}
