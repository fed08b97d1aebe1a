package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/valarray/internal/expr"
	"github.com/san-kum/valarray/internal/numeric"
	"github.com/san-kum/valarray/internal/workspace"
)

func quietWorkspace() *workspace.Workspace {
	return workspace.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Plot.Height != DefaultPlotHeight || cfg.Plot.Width != DefaultPlotWidth {
		t.Errorf("plot = %+v", cfg.Plot)
	}
	if len(cfg.Arrays) == 0 {
		t.Error("default config defines no arrays")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("lazy", "nested")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Arrays["v1"].Size != 5 {
		t.Errorf("expected v1 of size 5, got %d", cfg.Arrays["v1"].Size)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("lazy", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "basic"); cfg != nil {
		t.Error("expected nil for nonexistent group")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("broadcast")
	if len(presets) != 2 || presets[0] != "center" || presets[1] != "scalar" {
		t.Errorf("ListPresets(broadcast) = %v", presets)
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent group")
	}
}

func TestPresets_Run(t *testing.T) {
	for _, group := range Groups() {
		for _, name := range ListPresets(group) {
			t.Run(group+"/"+name, func(t *testing.T) {
				cfg := GetPreset(group, name)
				if err := cfg.Validate(); err != nil {
					t.Fatalf("invalid: %v", err)
				}
				results, err := cfg.Apply(quietWorkspace())
				if err != nil {
					t.Fatalf("Apply: %v", err)
				}
				if len(results) != len(cfg.Formulas) {
					t.Errorf("got %d results for %d formulas", len(results), len(cfg.Formulas))
				}
			})
		}
	}
}

func TestPresets_Values(t *testing.T) {
	tests := []struct {
		group, name string
		result      int
		want        string
	}{
		{"lazy", "nested", 0, "-4 -4 -4 -4 -4\n"},
		{"lazy", "nested", 1, "0 0 0 0 0\n"},
		{"promotion", "complex", 0, "(4.5,0) (7.5,0) (10.5,0)\n"},
		{"broadcast", "scalar", 1, "0 0 0 0 0 0 0 0 0 0\n"},
		{"broadcast", "center", 0, "11\n"},
		{"broadcast", "center", 1, "-10 -7 -2 5 14\n"},
	}

	for _, tt := range tests {
		t.Run(tt.group+"/"+tt.name, func(t *testing.T) {
			results, err := GetPreset(tt.group, tt.name).Apply(quietWorkspace())
			if err != nil {
				t.Fatal(err)
			}
			if got := results[tt.result].Text; got != tt.want {
				t.Errorf("result %d = %q, want %q", tt.result, got, tt.want)
			}
		})
	}
}

func TestApply_RebindKeepsEarlierResults(t *testing.T) {
	cfg := &Config{
		Arrays: map[string]ArrayConfig{
			"x": {Type: "int", Values: []string{"1", "2", "3"}},
		},
		Formulas: []FormulaConfig{
			{Formula: "x + 1"},
			{Name: "x", Formula: "x * 2"},
			{Formula: "x / 0"},
		},
		Plot: DefaultPlot(),
	}

	_, err := cfg.Apply(quietWorkspace())
	if !errors.Is(err, workspace.ErrEval) {
		t.Fatalf("Apply with a division by zero: err = %v", err)
	}

	cfg.Formulas = cfg.Formulas[:2]
	w := quietWorkspace()
	results, err := cfg.Apply(w)
	if err != nil {
		t.Fatal(err)
	}
	if got := results[0].Text; got != "2 3 4\n" {
		t.Errorf("x + 1 after rebinding x = %q, want %q", got, "2 3 4\n")
	}
	if got := results[1].Text; got != "2 4 6\n" {
		t.Errorf("x = x * 2 gave %q", got)
	}
	x, _ := w.Lookup("x")
	if got := expr.Format(x); got != "2 4 6\n" {
		t.Errorf("x = %q", got)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.yaml")
	cfg := GetPreset("promotion", "mixed")

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Arrays["y"].Values) != 10 || loaded.Formulas[1].Type != "float32" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "min.yaml")
	data := "arrays:\n  a:\n    values: [\"1\", \"2.5\"]\nformulas:\n  - formula: a * 2\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Plot != DefaultPlot() {
		t.Errorf("plot = %+v, want defaults", cfg.Plot)
	}
	k, err := cfg.Arrays["a"].Kind()
	if err != nil || k != numeric.Float64 {
		t.Errorf("untyped array kind = %v, %v", k, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"bad type", Config{Arrays: map[string]ArrayConfig{"a": {Type: "quaternion"}}, Plot: DefaultPlot()}},
		{"values and size", Config{Arrays: map[string]ArrayConfig{"a": {Values: []string{"1"}, Size: 2}}, Plot: DefaultPlot()}},
		{"negative size", Config{Arrays: map[string]ArrayConfig{"a": {Size: -1}}, Plot: DefaultPlot()}},
		{"empty formula", Config{Formulas: []FormulaConfig{{Name: "a"}}, Plot: DefaultPlot()}},
		{"typed bare formula", Config{Formulas: []FormulaConfig{{Type: "int", Formula: "1"}}, Plot: DefaultPlot()}},
		{"bad formula type", Config{Formulas: []FormulaConfig{{Name: "a", Type: "bool", Formula: "1"}}, Plot: DefaultPlot()}},
		{"zero plot", Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestElements(t *testing.T) {
	vs, err := ArrayConfig{Size: 3, Fill: "2i"}.Elements()
	if err != nil {
		t.Fatal(err)
	}
	if len(vs) != 3 || vs[2].Complex() != 2i {
		t.Errorf("Elements() = %v", vs)
	}

	if _, err := (ArrayConfig{Values: []string{"1", "x"}}).Elements(); !errors.Is(err, numeric.ErrInvalidLiteral) {
		t.Errorf("bad literal error = %v", err)
	}
}

func TestFormulaLine(t *testing.T) {
	tests := []struct {
		f    FormulaConfig
		want string
	}{
		{FormulaConfig{Formula: "x + 1"}, "x + 1"},
		{FormulaConfig{Name: "y", Formula: "x + 1"}, "y = x + 1"},
		{FormulaConfig{Name: "y", Type: "int", Formula: "x + 1"}, "y:int = x + 1"},
	}
	for _, tt := range tests {
		if got := tt.f.Line(); got != tt.want {
			t.Errorf("Line() = %q, want %q", got, tt.want)
		}
	}
}
