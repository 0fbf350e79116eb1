package engine

import (
	"fmt"
	"time"
)

// StepState is the fixed-step driver state
type StepState uint8

const (
	// StepIdle means less than one step of time is accumulated
	StepIdle StepState = iota
	// StepStepping means the driver is inside its sub-step loop
	StepStepping
)

func (s StepState) String() string {
	if s == StepStepping {
		return "stepping"
	}
	return "idle"
}

// Stepper turns variable frame time into whole fixed steps
// The accumulator is integer nanoseconds so a total T always yields floor(T/step)
// steps regardless of how T is split across frames
type Stepper struct {
	step     time.Duration
	maxFrame time.Duration

	acc   time.Duration
	state StepState
	total uint64
}

// NewStepper creates a driver; maxFrame > 0 clamps each frame's contribution
func NewStepper(step, maxFrame time.Duration) *Stepper {
	if step <= 0 {
		panic(fmt.Sprintf("engine: fixed step must be positive, got %v", step))
	}
	return &Stepper{step: step, maxFrame: maxFrame}
}

// Advance accumulates dt and calls fn once per whole step, returns the steps taken
func (s *Stepper) Advance(dt time.Duration, fn func()) int {
	if dt < 0 {
		dt = 0
	}
	if s.maxFrame > 0 && dt > s.maxFrame {
		dt = s.maxFrame
	}
	s.acc += dt

	steps := 0
	for s.acc >= s.step {
		s.state = StepStepping
		fn()
		s.acc -= s.step
		steps++
	}
	s.state = StepIdle
	s.total += uint64(steps)
	return steps
}

// Step returns the fixed step size
func (s *Stepper) Step() time.Duration {
	return s.step
}

// Accumulated returns the time carried to the next frame, always < Step()
func (s *Stepper) Accumulated() time.Duration {
	return s.acc
}

// State returns the current driver state
func (s *Stepper) State() StepState {
	return s.state
}

// Total returns the number of steps taken since creation or Reset
func (s *Stepper) Total() uint64 {
	return s.total
}

// Reset drops accumulated time and the step counter
func (s *Stepper) Reset() {
	s.acc = 0
	s.total = 0
	s.state = StepIdle
}
