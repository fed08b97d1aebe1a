package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/valarray/internal/expr"
	"github.com/san-kum/valarray/internal/formula"
	"github.com/san-kum/valarray/internal/workspace"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

const maxShown = 8

type entry struct {
	input  string
	output string
	tree   string
	failed bool
}

type model struct {
	ws       *workspace.Workspace
	input    textinput.Model
	history  []entry
	recall   int
	describe bool
	last     []float64

	width  int
	height int
}

func newModel(ws *workspace.Workspace) model {
	in := textinput.New()
	in.Placeholder = "x = y * 2 + 1"
	in.Prompt = "» "
	in.CharLimit = 256
	in.Width = 60
	in.Focus()

	return model{
		ws:     ws,
		input:  in,
		width:  80,
		height: 24,
	}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-8, 20)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "enter":
		line := strings.TrimSpace(m.input.Value())
		if line == "" {
			return m, nil
		}
		m.input.SetValue("")
		return m.run(line)
	case "up":
		if m.recall > 0 {
			m.recall--
			m.input.SetValue(m.history[m.recall].input)
			m.input.CursorEnd()
		}
		return m, nil
	case "down":
		if m.recall < len(m.history)-1 {
			m.recall++
			m.input.SetValue(m.history[m.recall].input)
			m.input.CursorEnd()
		} else {
			m.recall = len(m.history)
			m.input.SetValue("")
		}
		return m, nil
	case "ctrl+t":
		m.describe = !m.describe
		return m, nil
	case "ctrl+l":
		m.history = nil
		m.recall = 0
		m.last = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) run(line string) (model, tea.Cmd) {
	e := entry{input: line}
	switch line {
	case ":q", ":quit":
		return m, tea.Quit
	case ":names":
		e.output = strings.Join(m.ws.Names(), " ")
	case ":funcs":
		e.output = strings.Join(formula.FuncNames(), " ")
	case ":help":
		e.output = "name = formula | name:type = formula | formula | :names :funcs :q"
	default:
		res, err := m.ws.Exec(line)
		if err != nil {
			e.output = err.Error()
			e.failed = true
			break
		}
		e.output = strings.TrimSuffix(res.Text, "\n")
		if res.Name != "" {
			e.output = res.Name + " = " + e.output
		}
		e.tree = res.Tree
		m.last = realParts(res.Value)
	}
	m.history = append(m.history, e)
	m.recall = len(m.history)
	return m, nil
}

func realParts(e expr.Expr) []float64 {
	out := make([]float64, 0, expr.Extent(e))
	for _, v := range expr.All(e) {
		out = append(out, v.Float())
	}
	return out
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("  ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("         " + cyan.Render("v a l a r r a y") + "\n")
	b.WriteString(dimmer.Render("  ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	start := max(len(m.history)-maxShown, 0)
	for _, e := range m.history[start:] {
		b.WriteString("  " + dim.Render("» ") + white.Render(e.input) + "\n")
		if e.failed {
			b.WriteString("    " + red.Render(e.output) + "\n")
			continue
		}
		b.WriteString("    " + green.Render(e.output) + "\n")
		if m.describe && e.tree != "" {
			b.WriteString("    " + magenta.Render(e.tree) + "\n")
		}
	}

	if len(m.last) > 1 {
		b.WriteString("\n  " + cyan.Render(sparkline(m.last, m.width-8)) + "\n")
	}

	b.WriteString("\n  " + m.input.View() + "\n\n")
	b.WriteString(dim.Render(fmt.Sprintf("  %d arrays   enter run   ↑↓ history   ctrl+t tree   ctrl+l clear   esc quit",
		len(m.ws.Names()))) + "\n")

	return b.String()
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := max(len(data)/width, 1)
	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		idx := int((data[i*step] - minVal) / rang * 7)
		sb.WriteRune(chars[min(max(idx, 0), 7)])
	}
	return sb.String()
}

// Run starts the interactive shell over ws.
func Run(ws *workspace.Workspace) error {
	p := tea.NewProgram(newModel(ws), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
