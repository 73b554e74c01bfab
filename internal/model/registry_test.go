package model_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/popsim/internal/model"
	"github.com/san-kum/popsim/internal/popdyn"
)

var _ = Describe("Registry", func() {
	var reg *model.Registry

	BeforeEach(func() {
		reg = model.New()
	})

	It("lists the built-in models in registration order", func() {
		Expect(reg.Keys()).To(Equal([]string{
			"logistic", "lotka_volterra", "competition", "sir", "metapopulation",
		}))
	})

	It("returns a copy of the key slice", func() {
		keys := reg.Keys()
		keys[0] = "mutated"
		Expect(reg.Keys()[0]).To(Equal("logistic"))
	})

	It("resolves every listed key", func() {
		for _, key := range reg.Keys() {
			def, err := reg.Get(key)
			Expect(err).NotTo(HaveOccurred())
			Expect(def.Key).To(Equal(key))
			Expect(def.Dimension()).To(Equal(len(def.Equations)))
			Expect(def.Dimension()).To(Equal(len(def.Initial)))
		}
	})

	It("rejects unknown keys with ErrUnknownModel", func() {
		_, err := reg.Get("gompertz")
		Expect(err).To(MatchError(popdyn.ErrUnknownModel))
		Expect(err.Error()).To(ContainSubstring("gompertz"))
	})

	It("exposes declared defaults", func() {
		def, err := reg.Get("logistic")
		Expect(err).NotTo(HaveOccurred())
		Expect(def.DefaultParams()).To(Equal(map[string]float64{"r": 0.5, "K": 100}))
		Expect(def.DefaultInitial()).To(Equal(map[string]float64{"x0": 10}))
	})

	It("builds the initial state vector in variable order", func() {
		def, err := reg.Get("sir")
		Expect(err).NotTo(HaveOccurred())
		x := def.InitialState(map[string]float64{"I0": 25})
		Expect(x).To(Equal(popdyn.State{990, 25, 0}))
	})
})

var _ = Describe("Bind", func() {
	reg := model.New()

	It("evaluates the logistic growth rate", func() {
		def, err := reg.Get("logistic")
		Expect(err).NotTo(HaveOccurred())
		sys, err := def.Bind(map[string]float64{"r": 0.5, "K": 100})
		Expect(err).NotTo(HaveOccurred())

		dx, err := sys.Eval(0, popdyn.State{10})
		Expect(err).NotTo(HaveOccurred())
		Expect(dx[0]).To(BeNumerically("~", 4.5, 1e-12))
	})

	It("evaluates coupled predator-prey derivatives", func() {
		def, err := reg.Get("lotka_volterra")
		Expect(err).NotTo(HaveOccurred())
		sys, err := def.Bind(def.DefaultParams())
		Expect(err).NotTo(HaveOccurred())

		dx, err := sys.Eval(0, popdyn.State{10, 5})
		Expect(err).NotTo(HaveOccurred())
		Expect(dx[0]).To(BeNumerically("~", -15, 1e-12)) // 1*10 - 0.5*10*5
		Expect(dx[1]).To(BeNumerically("~", 11, 1e-12))  // 0.3*10*5 - 0.8*5
	})

	It("fails fast on a missing parameter", func() {
		def, err := reg.Get("lotka_volterra")
		Expect(err).NotTo(HaveOccurred())
		_, err = def.Bind(map[string]float64{"a": 1, "b": 0.5, "c": 0.3})
		Expect(err).To(MatchError(popdyn.ErrMissingParameter))
		Expect(err.Error()).To(ContainSubstring(`"d"`))
	})

	It("rejects non-finite parameter values", func() {
		def, err := reg.Get("logistic")
		Expect(err).NotTo(HaveOccurred())
		_, err = def.Bind(map[string]float64{"r": math.NaN(), "K": 100})
		Expect(err).To(MatchError(popdyn.ErrMissingParameter))
	})

	It("ignores extra names in the parameter map", func() {
		def, err := reg.Get("logistic")
		Expect(err).NotTo(HaveOccurred())
		_, err = def.Bind(map[string]float64{"r": 0.5, "K": 100, "gamma": 9})
		Expect(err).NotTo(HaveOccurred())
	})

	It("snapshots parameter values at bind time", func() {
		def, err := reg.Get("logistic")
		Expect(err).NotTo(HaveOccurred())
		params := map[string]float64{"r": 0.5, "K": 100}
		sys, err := def.Bind(params)
		Expect(err).NotTo(HaveOccurred())

		params["r"] = 99
		dx, err := sys.Eval(0, popdyn.State{10})
		Expect(err).NotTo(HaveOccurred())
		Expect(dx[0]).To(BeNumerically("~", 4.5, 1e-12))
	})

	It("keeps r and r1 distinct in prefix-heavy models", func() {
		def, err := reg.Get("competition")
		Expect(err).NotTo(HaveOccurred())
		params := def.DefaultParams()
		sys, err := def.Bind(params)
		Expect(err).NotTo(HaveOccurred())

		// dx/dt = r1*x*(1 - (x + alpha*y)/K1) with r1=1.0, alpha=0.5, K1=100
		dx, err := sys.Eval(0, popdyn.State{20, 15})
		Expect(err).NotTo(HaveOccurred())
		Expect(dx[0]).To(BeNumerically("~", 20*(1-27.5/100.0), 1e-12))
	})

	It("wraps evaluation failures with the equation text", func() {
		def, err := reg.Get("sir")
		Expect(err).NotTo(HaveOccurred())
		params := def.DefaultParams()
		params["N"] = 0 // forces division by zero in beta*S*I/N
		sys, err := def.Bind(params)
		Expect(err).NotTo(HaveOccurred())

		_, err = sys.Eval(0, popdyn.State{990, 10, 0})
		Expect(err).To(HaveOccurred())
		var ee *popdyn.EvalError
		Expect(errors.As(err, &ee)).To(BeTrue())
		Expect(ee.Expr).To(ContainSubstring("beta*S*I/N"))
	})
})
