package model

// catalog returns the built-in model definitions in registration order.
// Equilibria, conserved quantities, and reproduction numbers are reporting
// metadata consumed by the analyze/equations commands, never by the solver.
func catalog() []*Definition {
	return []*Definition{
		{
			Key:         "logistic",
			Name:        "Logistic growth",
			Description: "Population growth limited by environmental carrying capacity",
			Variables:   []string{"x"},
			VarLabels:   []string{"Population"},
			Equations:   []string{"r*x*(1 - x/K)"},
			Parameters: []Param{
				{Name: "r", Label: "Growth rate (r)", Desc: "Intrinsic population growth rate [1/time]", Default: 0.5, Min: 0.1, Max: 2.0},
				{Name: "K", Label: "Carrying capacity (K)", Desc: "Maximum population the environment sustains", Default: 100, Min: 10, Max: 1000},
			},
			Initial: []Initial{
				{Name: "x0", Label: "Initial population", Default: 10},
			},
			Equilibrium: "x* = K (stable equilibrium)",
			Analytical:  "x(t) = K / (1 + ((K-x0)/x0) * exp(-r*t))",
		},
		{
			Key:         "lotka_volterra",
			Name:        "Lotka-Volterra (predator-prey)",
			Description: "Interaction between prey and predator populations",
			Variables:   []string{"x", "y"},
			VarLabels:   []string{"Prey", "Predators"},
			Equations:   []string{"a*x - b*x*y", "c*x*y - d*y"},
			Parameters: []Param{
				{Name: "a", Label: "Prey growth rate (a)", Desc: "Prey growth rate without predators [1/time]", Default: 1.0, Min: 0.1, Max: 3.0},
				{Name: "b", Label: "Predation rate (b)", Desc: "Predator hunting efficiency [1/(population*time)]", Default: 0.5, Min: 0.1, Max: 2.0},
				{Name: "c", Label: "Conversion efficiency (c)", Desc: "Conversion of prey into predator growth [1/(population*time)]", Default: 0.3, Min: 0.1, Max: 1.0},
				{Name: "d", Label: "Predator mortality (d)", Desc: "Natural predator death rate [1/time]", Default: 0.8, Min: 0.1, Max: 2.0},
			},
			Initial: []Initial{
				{Name: "x0", Label: "Prey population", Default: 10},
				{Name: "y0", Label: "Predator population", Default: 5},
			},
			Equilibrium: "equilibrium point: (d/c, a/b), neutrally stable center",
			Conserved:   "H(x,y) = c*x + b*y - d*ln(x) - a*ln(y) = const",
		},
		{
			Key:         "competition",
			Name:        "Interspecies competition",
			Description: "Two species competing for the same resources",
			Variables:   []string{"x", "y"},
			VarLabels:   []string{"Species 1", "Species 2"},
			Equations: []string{
				"r1*x*(1 - (x + alpha*y)/K1)",
				"r2*y*(1 - (y + beta*x)/K2)",
			},
			Parameters: []Param{
				{Name: "r1", Label: "Growth rate sp. 1 (r1)", Desc: "Growth rate of species 1 [1/time]", Default: 1.0, Min: 0.1, Max: 2.0},
				{Name: "r2", Label: "Growth rate sp. 2 (r2)", Desc: "Growth rate of species 2 [1/time]", Default: 0.8, Min: 0.1, Max: 2.0},
				{Name: "K1", Label: "Capacity sp. 1 (K1)", Desc: "Carrying capacity for species 1", Default: 100, Min: 10, Max: 200},
				{Name: "K2", Label: "Capacity sp. 2 (K2)", Desc: "Carrying capacity for species 2", Default: 80, Min: 10, Max: 200},
				{Name: "alpha", Label: "Effect of sp. 2 on sp. 1 (alpha)", Desc: "Competition coefficient: species 2 pressure on species 1", Default: 0.5, Min: 0.1, Max: 2.0},
				{Name: "beta", Label: "Effect of sp. 1 on sp. 2 (beta)", Desc: "Competition coefficient: species 1 pressure on species 2", Default: 0.6, Min: 0.1, Max: 2.0},
			},
			Initial: []Initial{
				{Name: "x0", Label: "Species 1 population", Default: 20},
				{Name: "y0", Label: "Species 2 population", Default: 15},
			},
			Equilibrium: "coexistence possible when alpha*beta < 1",
			Coexistence: "alpha < K1/K2 and beta < K2/K1",
		},
		{
			Key:         "sir",
			Name:        "SIR epidemic",
			Description: "Spread of a disease through a closed population",
			Variables:   []string{"S", "I", "R"},
			VarLabels:   []string{"Susceptible", "Infected", "Recovered"},
			Equations: []string{
				"-beta*S*I/N",
				"beta*S*I/N - gamma*I",
				"gamma*I",
			},
			Parameters: []Param{
				{Name: "beta", Label: "Transmission rate (beta)", Desc: "Disease transmission rate [1/time]", Default: 0.3, Min: 0.01, Max: 1.0},
				{Name: "gamma", Label: "Recovery rate (gamma)", Desc: "Recovery/removal rate [1/time]", Default: 0.1, Min: 0.01, Max: 0.5},
				{Name: "N", Label: "Total population (N)", Desc: "Total population (constant)", Default: 1000, Min: 100, Max: 10000},
			},
			Initial: []Initial{
				{Name: "S0", Label: "Susceptible", Default: 990},
				{Name: "I0", Label: "Infected", Default: 10},
				{Name: "R0", Label: "Recovered", Default: 0},
			},
			Equilibrium:  "basic reproduction number: R0 = beta/gamma",
			Conserved:    "S + I + R = N",
			Reproduction: "R0 = beta/gamma (epidemic when R0 > 1)",
		},
		{
			Key:         "metapopulation",
			Name:        "Two-patch metapopulation",
			Description: "Population split into two subpopulations coupled by migration",
			Variables:   []string{"x", "y"},
			VarLabels:   []string{"Population 1", "Population 2"},
			Equations: []string{
				"r1*x*(1 - x/K1) + m*(y - x)",
				"r2*y*(1 - y/K2) + m*(x - y)",
			},
			Parameters: []Param{
				{Name: "r1", Label: "Growth rate pop. 1 (r1)", Desc: "Growth rate of subpopulation 1 [1/time]", Default: 0.8, Min: 0.1, Max: 2.0},
				{Name: "r2", Label: "Growth rate pop. 2 (r2)", Desc: "Growth rate of subpopulation 2 [1/time]", Default: 0.6, Min: 0.1, Max: 2.0},
				{Name: "K1", Label: "Capacity pop. 1 (K1)", Desc: "Carrying capacity of patch 1", Default: 100, Min: 10, Max: 200},
				{Name: "K2", Label: "Capacity pop. 2 (K2)", Desc: "Carrying capacity of patch 2", Default: 80, Min: 10, Max: 200},
				{Name: "m", Label: "Migration rate (m)", Desc: "Migration rate between patches [1/time]", Default: 0.1, Min: 0.01, Max: 0.5},
			},
			Initial: []Initial{
				{Name: "x0", Label: "Population 1", Default: 50},
				{Name: "y0", Label: "Population 2", Default: 30},
			},
			Equilibrium: "equilibrium depends on the migration rate m; migration m*(y-x) evens out density differences",
		},
	}
}
