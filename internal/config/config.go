// Package config loads and saves run configurations and resolves them
// into a tableau and a gravity model.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lpaiva/kutta/internal/gravity"
	"github.com/lpaiva/kutta/internal/tableau"
)

const (
	DefaultMethod = "ralston2"
	DefaultDt     = 0.025
	DefaultTF     = 500.0
	DefaultG      = 1.0
)

// Config describes one integration run.
type Config struct {
	Method  string       `yaml:"method"`
	Custom  *TableauSpec `yaml:"custom_tableau,omitempty"`
	Dt      float64      `yaml:"dt"`
	T0      float64      `yaml:"t0"`
	TF      float64      `yaml:"tf"`
	Gravity GravitySpec  `yaml:"gravity"`
}

// TableauSpec is a user-supplied Butcher tableau. When present it
// overrides Method.
type TableauSpec struct {
	Stages int         `yaml:"stages"`
	Order  int         `yaml:"order"`
	A      [][]float64 `yaml:"a"`
	B      []float64   `yaml:"b"`
}

// GravitySpec configures the N-body model.
type GravitySpec struct {
	G         float64    `yaml:"g"`
	Softening float64    `yaml:"softening"`
	Bodies    []BodySpec `yaml:"bodies"`
}

// BodySpec is one body's mass and initial conditions.
type BodySpec struct {
	Name     string     `yaml:"name,omitempty"`
	Mass     float64    `yaml:"mass"`
	Position [2]float64 `yaml:"position,flow"`
	Momentum [2]float64 `yaml:"momentum,flow"`
}

// Default returns the two-body example configuration.
func Default() *Config {
	cfg := GetPreset("two_body")
	if cfg == nil {
		panic("config: missing two_body preset")
	}
	return cfg
}

// Load reads a YAML configuration, applying file values over defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Tableau resolves the configured method: the custom tableau when
// given, otherwise the named one.
func (c *Config) Tableau() (*tableau.Tableau, error) {
	if c.Custom != nil {
		return tableau.New("custom", c.Custom.Stages, c.Custom.Order, c.Custom.A, c.Custom.B)
	}
	return tableau.FromName(c.Method)
}

// Model builds the gravity model from the configured bodies.
func (c *Config) Model() (*gravity.Model, error) {
	if len(c.Gravity.Bodies) == 0 {
		return nil, fmt.Errorf("config: no bodies configured")
	}

	bodies := make([]gravity.Body, len(c.Gravity.Bodies))
	for i, b := range c.Gravity.Bodies {
		bodies[i] = gravity.Body{
			Name:     b.Name,
			Mass:     b.Mass,
			Position: b.Position,
			Momentum: b.Momentum,
		}
	}
	return gravity.New(c.Gravity.G, c.Gravity.Softening, bodies)
}
