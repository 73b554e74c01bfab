package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/popsim/internal/model"
)

const (
	DefaultDt       = 0.05
	DefaultDuration = 30.0
)

// Config is one runnable simulation setup: a model key, the time grid, and
// the name-value mappings handed to the binder. Missing entries are filled
// from the model definition by Normalize.
type Config struct {
	Model    string             `yaml:"model"`
	Dt       float64            `yaml:"dt"`
	Duration float64            `yaml:"duration"`
	Params   map[string]float64 `yaml:"params"`
	Initial  map[string]float64 `yaml:"initial"`
}

// FromDefinition builds the default configuration of a model.
func FromDefinition(def *model.Definition) *Config {
	return &Config{
		Model:    def.Key,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Params:   def.DefaultParams(),
		Initial:  def.DefaultInitial(),
	}
}

// Normalize fills unset fields from the definition's defaults. Explicit
// values always win.
func (c *Config) Normalize(def *model.Definition) {
	if c.Model == "" {
		c.Model = def.Key
	}
	if c.Dt == 0 {
		c.Dt = DefaultDt
	}
	if c.Duration == 0 {
		c.Duration = DefaultDuration
	}
	if c.Params == nil {
		c.Params = make(map[string]float64, len(def.Parameters))
	}
	for _, p := range def.Parameters {
		if _, ok := c.Params[p.Name]; !ok {
			c.Params[p.Name] = p.Default
		}
	}
	if c.Initial == nil {
		c.Initial = make(map[string]float64, len(def.Initial))
	}
	for _, ic := range def.Initial {
		if _, ok := c.Initial[ic.Name]; !ok {
			c.Initial[ic.Name] = ic.Default
		}
	}
}

// Steps derives the solver step count from the time grid.
func (c *Config) Steps() int {
	if c.Dt == 0 {
		return 0
	}
	return int(c.Duration / c.Dt)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
