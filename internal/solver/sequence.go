package solver

import (
	"errors"
	"fmt"

	"github.com/san-kum/popsim/internal/popdyn"
)

// Sequence is a lazy, finite sample generator over one system. The first
// Next yields (t0, x0) unmodified, followed by exactly the requested number
// of advanced samples. State lives entirely inside the Sequence, so pulls
// can be interleaved with other work and the sequence abandoned at any
// point. Sequences over the same system are independent; each holds its own
// state vector and method instance.
type Sequence struct {
	sys    popdyn.System
	method Method

	t0 float64
	x0 popdyn.State

	t       float64
	x       popdyn.State
	h       float64
	steps   int
	done    int
	started bool
	failed  bool
}

// NewSequence creates an RK4 sequence producing steps+1 samples.
func NewSequence(sys popdyn.System, t0 float64, x0 popdyn.State, h float64, steps int) (*Sequence, error) {
	return NewSequenceMethod(NewRK4(), sys, t0, x0, h, steps)
}

// NewSequenceMethod is NewSequence with an explicit integration method.
func NewSequenceMethod(m Method, sys popdyn.System, t0 float64, x0 popdyn.State, h float64, steps int) (*Sequence, error) {
	if h == 0 {
		return nil, popdyn.ErrZeroStep
	}
	if steps < 0 {
		return nil, fmt.Errorf("%w: %d", popdyn.ErrInvalidStepCount, steps)
	}
	if len(x0) != len(sys) {
		return nil, fmt.Errorf("%w: state has %d values, system has %d equations",
			popdyn.ErrDimensionMismatch, len(x0), len(sys))
	}
	s := &Sequence{
		sys:    sys,
		method: m,
		t0:     t0,
		x0:     x0.Clone(),
		h:      h,
		steps:  steps,
	}
	s.t = t0
	s.x = s.x0.Clone()
	return s, nil
}

// Steps returns the number of advanced samples the sequence will produce
// after the initial one.
func (s *Sequence) Steps() int { return s.steps }

// Done returns how many advanced samples have been produced so far.
func (s *Sequence) Done() int { return s.done }

// Next produces the next sample. ok is false once the sequence is exhausted
// or a previous pull failed. A returned error invalidates only the failing
// step; samples already produced remain valid. Evaluation failures carry the
// failing step index and equation text via *popdyn.EvalError.
func (s *Sequence) Next() (popdyn.Sample, bool, error) {
	if s.failed {
		return popdyn.Sample{}, false, nil
	}
	if !s.started {
		s.started = true
		return popdyn.Sample{T: s.t, X: s.x.Clone()}, true, nil
	}
	if s.done >= s.steps {
		return popdyn.Sample{}, false, nil
	}
	nx, err := s.method.Step(s.sys, s.t, s.x, s.h)
	if err != nil {
		s.failed = true
		return popdyn.Sample{}, false, s.stepError(err)
	}
	s.x = nx
	s.t += s.h
	s.done++
	return popdyn.Sample{T: s.t, X: s.x.Clone()}, true, nil
}

// Reset rewinds the sequence to (t0, x0). Replaying from the same inputs
// reproduces the earlier samples bit-identically.
func (s *Sequence) Reset() {
	s.t = s.t0
	s.x = s.x0.Clone()
	s.done = 0
	s.started = false
	s.failed = false
}

// stepError stamps the index of the sample that could not be produced onto
// the evaluation error. Sample 0 is the initial condition, so the first
// advance that can fail is step 1.
func (s *Sequence) stepError(err error) error {
	step := s.done + 1
	var ee *popdyn.EvalError
	if errors.As(err, &ee) {
		return &popdyn.EvalError{Step: step, Time: ee.Time, Expr: ee.Expr, Wrapped: ee.Wrapped}
	}
	return &popdyn.EvalError{Step: step, Time: s.t, Wrapped: err}
}

// Solve runs a fresh sequence to exhaustion and collects the trajectory:
// steps+1 samples on success. On a step failure the samples produced before
// the failure are returned alongside the error.
func Solve(sys popdyn.System, t0 float64, x0 popdyn.State, h float64, steps int) (popdyn.Trajectory, error) {
	seq, err := NewSequence(sys, t0, x0, h, steps)
	if err != nil {
		return nil, err
	}
	traj := make(popdyn.Trajectory, 0, steps+1)
	for {
		sample, ok, err := seq.Next()
		if err != nil {
			return traj, err
		}
		if !ok {
			return traj, nil
		}
		traj = append(traj, sample)
	}
}
