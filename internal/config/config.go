package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/valarray/internal/numeric"
	"github.com/san-kum/valarray/internal/workspace"
)

const (
	DefaultPlotHeight = 10
	DefaultPlotWidth  = 80
	DefaultType       = "float64"
)

var ErrInvalid = errors.New("config: invalid")

// Config describes a workspace: the arrays to define and the formulas to
// run over them, in order.
type Config struct {
	Arrays   map[string]ArrayConfig `yaml:"arrays"`
	Formulas []FormulaConfig        `yaml:"formulas,omitempty"`
	Plot     PlotConfig             `yaml:"plot"`
}

// ArrayConfig is either an explicit list of values or Size copies of Fill.
type ArrayConfig struct {
	Type   string   `yaml:"type"`
	Values []string `yaml:"values,omitempty"`
	Size   int      `yaml:"size,omitempty"`
	Fill   string   `yaml:"fill,omitempty"`
}

// FormulaConfig is one workspace line. Without a name the result is only
// printed.
type FormulaConfig struct {
	Name    string `yaml:"name,omitempty"`
	Type    string `yaml:"type,omitempty"`
	Formula string `yaml:"formula"`
}

type PlotConfig struct {
	Height  int    `yaml:"height"`
	Width   int    `yaml:"width"`
	Caption string `yaml:"caption,omitempty"`
}

func DefaultPlot() PlotConfig {
	return PlotConfig{Height: DefaultPlotHeight, Width: DefaultPlotWidth}
}

func DefaultConfig() *Config {
	return &Config{
		Arrays: map[string]ArrayConfig{
			"x": {Type: "int", Values: []string{"1", "2", "3", "4", "5"}},
			"y": {Type: DefaultType, Size: 5, Fill: "0.5"},
		},
		Plot: DefaultPlot(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{Plot: DefaultPlot()}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

func (c *Config) Validate() error {
	for _, name := range c.ArrayNames() {
		a := c.Arrays[name]
		if _, err := a.Kind(); err != nil {
			return fmt.Errorf("array %s: %w", name, err)
		}
		if len(a.Values) > 0 && a.Size > 0 {
			return fmt.Errorf("%w: array %s sets both values and size", ErrInvalid, name)
		}
		if a.Size < 0 {
			return fmt.Errorf("%w: array %s has negative size", ErrInvalid, name)
		}
	}
	for i, f := range c.Formulas {
		if f.Formula == "" {
			return fmt.Errorf("%w: formula %d is empty", ErrInvalid, i)
		}
		if f.Type != "" && f.Name == "" {
			return fmt.Errorf("%w: formula %d has a type but no name", ErrInvalid, i)
		}
		if _, ok := numeric.ParseKind(f.Type); f.Type != "" && !ok {
			return fmt.Errorf("%w: formula %d: unknown type %q", ErrInvalid, i, f.Type)
		}
	}
	if c.Plot.Height <= 0 || c.Plot.Width <= 0 {
		return fmt.Errorf("%w: plot size %dx%d", ErrInvalid, c.Plot.Width, c.Plot.Height)
	}
	return nil
}

// ArrayNames lists the configured arrays in order.
func (c *Config) ArrayNames() []string {
	names := make([]string, 0, len(c.Arrays))
	for name := range c.Arrays {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (a ArrayConfig) Kind() (numeric.Kind, error) {
	typ := a.Type
	if typ == "" {
		typ = DefaultType
	}
	k, ok := numeric.ParseKind(typ)
	if !ok {
		return numeric.Opaque, fmt.Errorf("%w: unknown type %q", ErrInvalid, a.Type)
	}
	return k, nil
}

// Elements parses the configured values.
func (a ArrayConfig) Elements() ([]numeric.Value, error) {
	if len(a.Values) > 0 {
		out := make([]numeric.Value, len(a.Values))
		for i, s := range a.Values {
			v, err := numeric.Parse(s)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	fill := numeric.IntValue(0)
	if a.Fill != "" {
		v, err := numeric.Parse(a.Fill)
		if err != nil {
			return nil, err
		}
		fill = v
	}
	out := make([]numeric.Value, max(a.Size, 0))
	for i := range out {
		out[i] = fill
	}
	return out, nil
}

// Line renders f as a workspace line.
func (f FormulaConfig) Line() string {
	switch {
	case f.Name == "":
		return f.Formula
	case f.Type == "":
		return f.Name + " = " + f.Formula
	}
	return f.Name + ":" + f.Type + " = " + f.Formula
}

// Apply defines every array in w and runs the formulas in order. Each
// result carries the text it rendered when its formula ran, which stays
// correct after a later formula rebinds an array it used.
func (c *Config) Apply(w *workspace.Workspace) ([]workspace.Result, error) {
	for _, name := range c.ArrayNames() {
		a := c.Arrays[name]
		kind, err := a.Kind()
		if err != nil {
			return nil, fmt.Errorf("array %s: %w", name, err)
		}
		values, err := a.Elements()
		if err != nil {
			return nil, fmt.Errorf("array %s: %w", name, err)
		}
		if err := w.Define(name, kind, values); err != nil {
			return nil, err
		}
	}

	results := make([]workspace.Result, 0, len(c.Formulas))
	for _, f := range c.Formulas {
		res, err := w.Exec(f.Line())
		if err != nil {
			return nil, fmt.Errorf("formula %q: %w", f.Line(), err)
		}
		results = append(results, res)
	}
	return results, nil
}
