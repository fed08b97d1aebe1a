package config

import "slices"

func fill(typ string, size int, v string) ArrayConfig {
	return ArrayConfig{Type: typ, Size: size, Fill: v}
}

func values(typ string, vs ...string) ArrayConfig {
	return ArrayConfig{Type: typ, Values: vs}
}

var Presets = map[string]map[string]*Config{
	"lazy": {
		"basic": {
			Arrays: map[string]ArrayConfig{
				"v1": fill("float64", 10, "1"),
				"v2": fill("float64", 10, "1"),
				"v3": fill("float64", 10, "1"),
				"v4": fill("float64", 10, "1"),
			},
			Formulas: []FormulaConfig{
				{Formula: "v1 + v2 - v3 * v4"},
				{Name: "ans", Formula: "v1 + v2 - v3 * v4"},
			},
			Plot: DefaultPlot(),
		},
		"nested": {
			Arrays: map[string]ArrayConfig{
				"v1": fill("int", 5, "4"),
			},
			Formulas: []FormulaConfig{
				{Name: "v2", Type: "int", Formula: "-sqrt(v1 * 4)"},
				{Name: "v3", Type: "int", Formula: "v1 * (-sqrt(v1 * 4) + v1) / v1"},
			},
			Plot: DefaultPlot(),
		},
	},
	"promotion": {
		"mixed": {
			Arrays: map[string]ArrayConfig{
				"x": values("int", "0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
				"y": values("float64", "10", "9", "8", "7", "6", "5", "4", "3", "2", "1"),
			},
			Formulas: []FormulaConfig{
				{Formula: "x + y"},
				{Name: "r", Type: "float32", Formula: "sqrt(x) / y"},
			},
			Plot: DefaultPlot(),
		},
		"complex": {
			Arrays: map[string]ArrayConfig{
				"c": values("complex64", "1", "2", "3"),
				"d": values("float64", "3.5", "5.5", "7.5"),
			},
			Formulas: []FormulaConfig{
				{Name: "e", Formula: "c + d"},
				{Formula: "abs(e * 1i)"},
			},
			Plot: DefaultPlot(),
		},
	},
	"broadcast": {
		"scalar": {
			Arrays: map[string]ArrayConfig{
				"x": fill("int", 10, "1"),
			},
			Formulas: []FormulaConfig{
				{Formula: "x + 1"},
				{Formula: "1 - x"},
				{Formula: "x * 1"},
				{Formula: "1 / x"},
			},
			Plot: DefaultPlot(),
		},
		"center": {
			Arrays: map[string]ArrayConfig{
				"x": values("float64", "1", "4", "9", "16", "25"),
			},
			Formulas: []FormulaConfig{
				{Formula: "sum(x) / len(x)"},
				{Name: "centered", Formula: "x - sum(x) / len(x)"},
			},
			Plot: PlotConfig{Height: 8, Width: 40, Caption: "centered"},
		},
	},
}

func GetPreset(group, preset string) *Config {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	cfg, ok := groupPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(group string) []string {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(groupPresets))
	for name := range groupPresets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func Groups() []string {
	groups := make([]string, 0, len(Presets))
	for g := range Presets {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	return groups
}
