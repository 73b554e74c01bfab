package metrics

import "github.com/san-kum/popsim/internal/popdyn"

// Peak records the maximum value one state variable reaches, e.g. the peak
// infected count of an SIR run.
type Peak struct {
	name    string
	index   int
	max     float64
	samples int
}

func NewPeak(index int) *Peak {
	return &Peak{name: "peak", index: index}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(s popdyn.Sample) {
	if p.index >= len(s.X) {
		return
	}
	v := s.X[p.index]
	if p.samples == 0 || v > p.max {
		p.max = v
	}
	p.samples++
}

func (p *Peak) Value() float64 { return p.max }

func (p *Peak) Reset() {
	p.max = 0
	p.samples = 0
}
