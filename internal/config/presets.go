package config

import "sort"

func ptr(v float64) *float64 { return &v }

// Presets are named recipes per dispersion law. Each law has a "default"
// entry using the law's default c.
var Presets = map[string]map[string]*Config{
	"sck": {
		"default": {Law: "sck", Components: 200, C: ptr(1e5)},
		"dense":   {Law: "sck", Components: 2000, C: ptr(1e5)},
	},
	"ck": {
		"default": {Law: "ck", Components: 200, C: ptr(30000)},
		"sparse":  {Law: "ck", Components: 20, C: ptr(30000)},
		"dense":   {Law: "ck", Components: 5000, C: ptr(30000)},
	},
	"ck2": {
		"default": {Law: "ck2", Components: 200, C: ptr(1e5)},
		"dense":   {Law: "ck2", Components: 1000, C: ptr(1e5)},
	},
	"sbck2": {
		"default": {Law: "sbck2", Components: 200, C: ptr(1e5)},
		"stiff":   {Law: "sbck2", Components: 500, C: ptr(1e5), B: 100},
	},
	"cdk": {
		"default": {Law: "cdk", Components: 200, C: ptr(1000)},
		"slow":    {Law: "cdk", Components: 200, C: ptr(100)},
	},
	"k4dc": {
		"default": {Law: "k4dc", Components: 200, C: ptr(1)},
		"beats":   {Law: "k4dc", Components: 2},
	},
	"k2k": {
		"default": {Law: "k2k", Components: 200},
		"pair":    {Law: "k2k", Components: 2},
	},
}

// GetPreset returns a copy of the preset with unset fields filled from
// DefaultConfig, or nil when the law or name is unknown.
func GetPreset(law, name string) *Config {
	lawPresets, ok := Presets[law]
	if !ok {
		return nil
	}
	p, ok := lawPresets[name]
	if !ok {
		return nil
	}

	cfg := DefaultConfig()
	cfg.Law = p.Law
	cfg.Components = p.Components
	if p.C != nil {
		cfg.SetVelocity(*p.C)
	}
	if p.B != 0 {
		cfg.B = p.B
	}
	return cfg
}

// ListPresets returns the preset names for law in sorted order.
func ListPresets(law string) []string {
	lawPresets, ok := Presets[law]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(lawPresets))
	for name := range lawPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
