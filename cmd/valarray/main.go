package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/lmittmann/tint"
	"github.com/san-kum/valarray/internal/config"
	"github.com/san-kum/valarray/internal/expr"
	"github.com/san-kum/valarray/internal/numeric"
	"github.com/san-kum/valarray/internal/tui"
	"github.com/san-kum/valarray/internal/valarray"
	"github.com/san-kum/valarray/internal/vector"
	"github.com/san-kum/valarray/internal/workspace"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configFile string
	preset     string
	describe   bool
	height     int
	width      int
	benchN     int
)

var header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

func main() {
	rootCmd := &cobra.Command{
		Use:               "valarray",
		Short:             "lazy numeric arrays with type promotion",
		PersistentPreRunE: setupLogging,
		RunE:              runRepl,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "workspace file (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "built-in workspace as group/name")

	evalCmd := &cobra.Command{
		Use:   "eval [formula...]",
		Short: "run the workspace formulas, then each argument",
		RunE:  runEval,
	}
	evalCmd.Flags().BoolVar(&describe, "describe", false, "print the expression tree of each result")

	plotCmd := &cobra.Command{
		Use:   "plot [formula]",
		Short: "plot the real parts of a formula",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlot,
	}
	plotCmd.Flags().IntVar(&height, "height", config.DefaultPlotHeight, "plot height")
	plotCmd.Flags().IntVar(&width, "width", config.DefaultPlotWidth, "plot width")

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "interactive formula shell",
		RunE:  runRepl,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [group]",
		Short: "list built-in workspaces",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groups := config.Groups()
			if len(args) > 0 {
				if config.ListPresets(args[0]) == nil {
					return fmt.Errorf("unknown preset group: %s (available: %v)", args[0], groups)
				}
				groups = args
			}
			for _, g := range groups {
				fmt.Printf("%s:\n", g)
				for _, p := range config.ListPresets(g) {
					cfg := config.GetPreset(g, p)
					fmt.Printf("  %-10s %d arrays, %d formulas\n", p, len(cfg.Arrays), len(cfg.Formulas))
				}
			}
			return nil
		},
	}

	promoteCmd := &cobra.Command{
		Use:   "promote",
		Short: "print the type promotion table",
		RunE:  printPromotion,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark growth and materialisation",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchN, "n", 1_000_000, "elements per run")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "workspace files",
	}
	saveCmd := &cobra.Command{
		Use:   "save [path]",
		Short: "write the selected workspace to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			slog.Info("saved workspace", "path", args[0], "arrays", len(cfg.Arrays))
			return nil
		},
	}
	configCmd.AddCommand(saveCmd)

	rootCmd.AddCommand(evalCmd, plotCmd, replCmd, presetsCmd, promoteCmd, benchCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("bad --log-level %q: %w", logLevel, err)
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	})))
	return nil
}

// loadConfig picks the workspace: a config file wins over a preset, and
// the default workspace is used when neither is given.
func loadConfig() (*config.Config, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}
	if preset != "" {
		group, name, _ := strings.Cut(preset, "/")
		cfg := config.GetPreset(group, name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available in %s: %v)", preset, group, config.ListPresets(group))
		}
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

func openWorkspace() (*config.Config, *workspace.Workspace, []workspace.Result, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	ws := workspace.New(slog.Default())
	results, err := cfg.Apply(ws)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, ws, results, nil
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, ws, results, err := openWorkspace()
	if err != nil {
		return err
	}

	lines := make([]string, 0, len(cfg.Formulas)+len(args))
	for _, f := range cfg.Formulas {
		lines = append(lines, f.Line())
	}
	for _, line := range args {
		res, err := ws.Exec(line)
		if err != nil {
			return err
		}
		lines = append(lines, line)
		results = append(results, res)
	}

	if len(results) == 0 {
		for _, name := range ws.Names() {
			a, _ := ws.Lookup(name)
			fmt.Printf("%s = %s", name, expr.Format(a))
		}
		return nil
	}
	for i, res := range results {
		fmt.Printf("%s\n  %s", lines[i], res.Text)
		if describe {
			fmt.Printf("  %s %s\n", res.Kind, res.Tree)
		}
	}
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, ws, results, err := openWorkspace()
	if err != nil {
		return err
	}

	var e expr.Expr
	caption := cfg.Plot.Caption
	switch {
	case len(args) > 0:
		res, err := ws.Exec(args[0])
		if err != nil {
			return err
		}
		e, caption = res.Value, args[0]
	case len(results) > 0:
		e = results[len(results)-1].Value
		if caption == "" {
			caption = cfg.Formulas[len(cfg.Formulas)-1].Line()
		}
	default:
		return fmt.Errorf("nothing to plot: give a formula or a workspace with formulas")
	}

	if !cmd.Flags().Changed("height") {
		height = cfg.Plot.Height
	}
	if !cmd.Flags().Changed("width") {
		width = cfg.Plot.Width
	}

	data := expr.Collect[float64](e)
	if len(data) == 0 {
		return fmt.Errorf("%s is empty", caption)
	}
	if e.Kind().IsComplex() {
		caption += " (real part)"
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	return nil
}

func runRepl(cmd *cobra.Command, args []string) error {
	_, ws, _, err := openWorkspace()
	if err != nil {
		return err
	}
	return tui.Run(ws)
}

func printPromotion(cmd *cobra.Command, args []string) error {
	kinds := numeric.Kinds()

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "\t")
	for _, k := range kinds {
		fmt.Fprintf(w, "%s\t", k)
	}
	fmt.Fprintln(w)
	for _, a := range kinds {
		fmt.Fprintf(w, "%s\t", a)
		for _, b := range kinds {
			fmt.Fprintf(w, "%s\t", numeric.Promote(a, b))
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	first, rest, _ := strings.Cut(buf.String(), "\n")
	fmt.Println(header.Render(first))
	fmt.Print(rest)
	return nil
}

type pushFunc func(v *vector.Vector[float64], x float64)

func runBench(cmd *cobra.Command, args []string) error {
	if benchN <= 0 {
		return fmt.Errorf("--n must be positive, got %d", benchN)
	}

	runs := []struct {
		name string
		push pushFunc
	}{
		{"back", func(v *vector.Vector[float64], x float64) { v.PushBack(x) }},
		{"front", func(v *vector.Vector[float64], x float64) { v.PushFront(x) }},
		{"alternate", func(v *vector.Vector[float64], x float64) {
			if v.Len()%2 == 0 {
				v.PushBack(x)
			} else {
				v.PushFront(x)
			}
		}},
	}

	fmt.Printf("pushing %d elements\n\n", benchN)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "END\tGROWS\tFINAL CAP\tFRONT/BACK SPARE\tTIME\tPUSHES/SEC")

	transitions := make(map[string][]int, len(runs))
	for _, r := range runs {
		v := vector.New[float64]()
		caps := []int{v.Cap()}

		start := time.Now()
		for i := 0; i < benchN; i++ {
			r.push(v, float64(i))
			if c := v.Cap(); c != caps[len(caps)-1] {
				caps = append(caps, c)
			}
		}
		elapsed := time.Since(start)
		transitions[r.name] = caps

		fmt.Fprintf(w, "%s\t%d\t%d\t%d/%d\t%v\t%.0f\n",
			r.name, len(caps)-1, v.Cap(), v.FrontCap(), v.BackCap(), elapsed,
			float64(benchN)/elapsed.Seconds())
		v.Release()
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	for _, r := range runs {
		caps := transitions[r.name]
		shown := caps[:min(len(caps), 8)]
		parts := make([]string, len(shown))
		for i, c := range shown {
			parts[i] = fmt.Sprint(c)
		}
		more := ""
		if len(caps) > len(shown) {
			more = fmt.Sprintf(" ... %d", caps[len(caps)-1])
		}
		fmt.Printf("%-10s %s%s\n", r.name, strings.Join(parts, " → "), more)
	}

	return benchMaterialize()
}

// benchMaterialize times building a nested view and copying it into one
// array.
func benchMaterialize() error {
	x := valarray.Collect(func(yield func(float64) bool) {
		for i := 0; i < benchN; i++ {
			if !yield(float64(i)) {
				return
			}
		}
	})
	y := valarray.From[int](expr.Add(expr.Broadcast(2), valarray.Make[int](benchN)))

	before := vector.Instances()
	start := time.Now()
	e := expr.Sub(expr.Mul(x, y), expr.Sqrt(x))
	built := time.Since(start)
	z := valarray.From[float64](e)
	elapsed := time.Since(start)

	fmt.Printf("\nmaterialise %s over %d elements: build %v, copy %v, %d array(s) constructed\n",
		expr.Describe(e), z.Len(), built, elapsed-built, vector.Instances()-before)
	return nil
}
