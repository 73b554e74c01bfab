package analysis

import (
	"fmt"
	"sync"

	"github.com/san-kum/popsim/internal/model"
	"github.com/san-kum/popsim/internal/popdyn"
	"github.com/san-kum/popsim/internal/solver"
)

// SweepPoint records the final state reached for one value of the swept
// parameter.
type SweepPoint struct {
	Value float64
	Final popdyn.State
}

// Sweep varies one declared parameter across [min, max] in points evenly
// spaced values, runs each configuration for the given step count, and
// records the final state. Runs execute concurrently; each worker binds its
// own system and owns its own sequence, so no state is shared. The solver
// itself stays single-threaded.
func Sweep(def *model.Definition, base, initial map[string]float64, name string, min, max float64, points int, h float64, steps int) ([]SweepPoint, error) {
	declared := false
	for _, p := range def.Parameters {
		if p.Name == name {
			declared = true
			break
		}
	}
	if !declared {
		return nil, fmt.Errorf("model %q has no parameter %q", def.Key, name)
	}
	if points < 2 {
		points = 2
	}

	x0 := def.InitialState(initial)
	results := make([]SweepPoint, points)
	errs := make([]error, points)
	stride := (max - min) / float64(points-1)

	var wg sync.WaitGroup
	for i := 0; i < points; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			params := make(map[string]float64, len(base))
			for k, v := range base {
				params[k] = v
			}
			params[name] = min + float64(idx)*stride

			sys, err := def.Bind(params)
			if err != nil {
				errs[idx] = err
				return
			}
			traj, err := solver.Solve(sys, 0, x0, h, steps)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx] = SweepPoint{Value: params[name], Final: traj.Last().X}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
