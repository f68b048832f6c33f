package config

import "sort"

// Presets mirror the worked two- and three-body examples this engine
// was built around.
var presets = map[string]func() *Config{
	"two_body": func() *Config {
		return &Config{
			Method: DefaultMethod,
			Dt:     DefaultDt,
			T0:     0,
			TF:     DefaultTF,
			Gravity: GravitySpec{
				G: DefaultG,
				Bodies: []BodySpec{
					{Name: "a", Mass: 5, Position: [2]float64{20, 20}, Momentum: [2]float64{-2, 2}},
					{Name: "b", Mass: 50, Position: [2]float64{-20, -20}},
				},
			},
		}
	},
	"three_body": func() *Config {
		return &Config{
			Method: DefaultMethod,
			Dt:     DefaultDt,
			T0:     0,
			TF:     DefaultTF,
			Gravity: GravitySpec{
				G: DefaultG,
				Bodies: []BodySpec{
					{Name: "a", Mass: 50, Position: [2]float64{-10, 10}, Momentum: [2]float64{100, 0}},
					{Name: "b", Mass: 30, Position: [2]float64{50, 10}, Momentum: [2]float64{-20, 30}},
					{Name: "c", Mass: 500, Position: [2]float64{-10, -40}},
				},
			},
		}
	},
}

// GetPreset returns a named preset configuration, or nil if unknown.
func GetPreset(name string) *Config {
	ctor, ok := presets[name]
	if !ok {
		return nil
	}
	return ctor()
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
