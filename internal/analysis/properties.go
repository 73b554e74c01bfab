package analysis

import "github.com/san-kum/popsim/internal/popdyn"

// VarStats summarizes one state variable over a finished trajectory.
type VarStats struct {
	Name   string
	Min    float64
	Max    float64
	Mean   float64
	Final  float64
	Cycles int
}

// TrajectoryStats computes per-variable statistics. Cycles counts completed
// oscillations, detected through sign changes of the first difference; short
// or monotone series report zero.
func TrajectoryStats(traj popdyn.Trajectory, names []string) []VarStats {
	if len(traj) == 0 {
		return nil
	}
	dim := len(traj[0].X)
	stats := make([]VarStats, dim)
	for i := 0; i < dim; i++ {
		data := traj.Column(i)
		s := VarStats{Min: data[0], Max: data[0], Final: data[len(data)-1]}
		if i < len(names) {
			s.Name = names[i]
		}
		sum := 0.0
		for _, v := range data {
			if v < s.Min {
				s.Min = v
			}
			if v > s.Max {
				s.Max = v
			}
			sum += v
		}
		s.Mean = sum / float64(len(data))
		s.Cycles = countCycles(data)
		stats[i] = s
	}
	return stats
}

func countCycles(data []float64) int {
	if len(data) <= 100 {
		return 0
	}
	signChanges := 0
	prevDiff := 0.0
	for i := 1; i < len(data); i++ {
		diff := data[i] - data[i-1]
		if diff == 0 {
			continue
		}
		if prevDiff != 0 && (diff > 0) != (prevDiff > 0) {
			signChanges++
		}
		prevDiff = diff
	}
	if signChanges <= 10 {
		return 0
	}
	return signChanges / 2
}
