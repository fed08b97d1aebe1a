// Package workspace keeps named numeric arrays and evaluates formulas over
// them.
package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"

	"github.com/san-kum/valarray/internal/expr"
	"github.com/san-kum/valarray/internal/formula"
	"github.com/san-kum/valarray/internal/numeric"
	"github.com/san-kum/valarray/internal/valarray"
)

var (
	ErrUnknownName = errors.New("workspace: unknown name")
	ErrUnknownType = errors.New("workspace: unknown element type")
	ErrBadName     = errors.New("workspace: invalid name")
	ErrEval        = errors.New("workspace: evaluation failed")
)

// Array is a named array held by a workspace. It borrows like any other
// container and renders under its name in expr.Describe.
type Array struct {
	expr.Container
	name string
}

func (a Array) Label() string { return a.name }
func (a Array) Name() string  { return a.name }

type Workspace struct {
	arrays map[string]Array
	logger *slog.Logger
}

func New(logger *slog.Logger) *Workspace {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workspace{
		arrays: make(map[string]Array),
		logger: logger,
	}
}

// Lookup returns the array bound to name.
func (w *Workspace) Lookup(name string) (expr.Expr, error) {
	a, ok := w.arrays[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	return a, nil
}

// Names lists the bound names in order.
func (w *Workspace) Names() []string {
	names := make([]string, 0, len(w.arrays))
	for name := range w.arrays {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Define binds name to a new array of kind holding values converted to
// that kind. An existing binding is released and replaced.
func (w *Workspace) Define(name string, kind numeric.Kind, values []numeric.Value) error {
	return w.bind(name, kind, literal{kind: kind, values: values})
}

// Remove releases the array bound to name and forgets it.
func (w *Workspace) Remove(name string) error {
	a, ok := w.arrays[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	release(a.Container)
	delete(w.arrays, name)
	w.logger.Debug("removed array", "name", name)
	return nil
}

// Eval parses src into a lazy expression over the workspace arrays.
func (w *Workspace) Eval(src string) (expr.Expr, error) {
	return formula.Parse(src, w)
}

// Materialize evaluates src and binds the result to name as an array of
// kind. Opaque keeps the kind of the formula.
func (w *Workspace) Materialize(name string, kind numeric.Kind, src string) (Array, error) {
	e, err := w.Eval(src)
	if err != nil {
		return Array{}, err
	}
	if kind == numeric.Opaque {
		kind = e.Kind()
	}
	if err := w.bind(name, kind, e); err != nil {
		return Array{}, err
	}
	return w.arrays[name], nil
}

// Result is the outcome of one executed line. Name is empty for a bare
// formula, whose Value stays lazy and borrows the arrays it names. Text and
// Tree are rendered when the line runs, so they stay valid after a later
// line rebinds one of those arrays.
type Result struct {
	Name  string
	Value expr.Expr
	Kind  numeric.Kind
	Text  string
	Tree  string
}

// Exec runs one line of input:
//
//	name = formula
//	name:type = formula
//	formula
//
// A runtime fault while evaluating, such as an integer division by zero, is
// returned as an error wrapping ErrEval and leaves the bindings unchanged.
func (w *Workspace) Exec(line string) (res Result, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		re, ok := r.(runtime.Error)
		if !ok {
			panic(r)
		}
		w.logger.Warn("evaluation failed", "line", line, "err", re)
		res, err = Result{}, fmt.Errorf("%w: %v", ErrEval, re)
	}()

	res, err = w.exec(line)
	if err != nil {
		return Result{}, err
	}
	res.Kind = res.Value.Kind()
	res.Text = expr.Format(res.Value)
	res.Tree = expr.Describe(res.Value)
	return res, nil
}

func (w *Workspace) exec(line string) (Result, error) {
	target, src, assign := strings.Cut(line, "=")
	if !assign {
		e, err := w.Eval(line)
		if err != nil {
			return Result{}, err
		}
		return Result{Value: e}, nil
	}

	name, typ, typed := strings.Cut(strings.TrimSpace(target), ":")
	name = strings.TrimSpace(name)
	kind := numeric.Opaque
	if typed {
		k, ok := numeric.ParseKind(strings.TrimSpace(typ))
		if !ok {
			return Result{}, fmt.Errorf("%w: %q", ErrUnknownType, strings.TrimSpace(typ))
		}
		kind = k
	}

	a, err := w.Materialize(name, kind, src)
	if err != nil {
		return Result{}, err
	}
	return Result{Name: name, Value: a}, nil
}

func (w *Workspace) bind(name string, kind numeric.Kind, e expr.Expr) error {
	if err := checkName(name); err != nil {
		return err
	}
	c, err := materialize(kind, e)
	if err != nil {
		return err
	}
	if old, ok := w.arrays[name]; ok {
		release(old.Container)
	}
	w.arrays[name] = Array{Container: c, name: name}
	w.logger.Info("bound array", "name", name, "kind", kind, "len", c.Len())
	return nil
}

func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrBadName)
	}
	for i, r := range name {
		letter := r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
		digit := '0' <= r && r <= '9'
		if !letter && (!digit || i == 0) {
			return fmt.Errorf("%w: %q", ErrBadName, name)
		}
	}
	if _, ok := formula.Funcs[name]; ok {
		return fmt.Errorf("%w: %q is a function", ErrBadName, name)
	}
	return nil
}

// materialize copies e into a fresh array of kind. It is the only place a
// workspace constructs arrays.
func materialize(kind numeric.Kind, e expr.Expr) (expr.Container, error) {
	switch kind {
	case numeric.Int:
		return valarray.From[int](e), nil
	case numeric.Float32:
		return valarray.From[float32](e), nil
	case numeric.Float64:
		return valarray.From[float64](e), nil
	case numeric.Complex64:
		return valarray.From[complex64](e), nil
	case numeric.Complex128:
		return valarray.From[complex128](e), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownType, kind)
}

func release(c expr.Container) {
	if r, ok := c.(interface{ Release() }); ok {
		r.Release()
	}
}

// literal is a view over parsed values.
type literal struct {
	kind   numeric.Kind
	values []numeric.Value
}

func (l literal) Len() int                 { return len(l.values) }
func (l literal) Elem(i int) numeric.Value { return l.values[i] }
func (l literal) Kind() numeric.Kind       { return l.kind }
