package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/jsontree/pkg/document"
	"github.com/matzehuels/jsontree/pkg/errors"
	"github.com/matzehuels/jsontree/pkg/locate"
	"github.com/matzehuels/jsontree/pkg/tree"
	"github.com/matzehuels/jsontree/pkg/workspace"
)

const (
	minCellWidth = 14
	chromeHeight = 6 // title, input, status, help and spacing around the canvas
)

var (
	viewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	viewStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	viewBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

// =============================================================================
// ViewModel - Interactive tree viewer
// =============================================================================

// ViewModel is the bubbletea model behind `jsontree view`: a search box over
// a scrollable canvas of the current diagram.
type ViewModel struct {
	ctx    context.Context
	ws     *workspace.Workspace
	source string // file to regenerate from; empty for the built-in sample
	format document.Format

	input   textinput.Model
	canvas  viewport.Model
	lines   map[string]int // node id -> canvas line
	status  string
	isError bool
	width   int
	height  int

	copy func(string) error
	read func(string) ([]byte, error)
}

// NewViewModel creates a viewer over ws, which should already hold a diagram.
// source is re-read on regenerate.
func NewViewModel(ctx context.Context, ws *workspace.Workspace, source string, format document.Format) ViewModel {
	ti := textinput.New()
	ti.Placeholder = "$.user.address.city"
	ti.Prompt = "path › "
	ti.CharLimit = 512
	ti.Width = 40
	ti.Focus()

	m := ViewModel{
		ctx:    ctx,
		ws:     ws,
		source: source,
		format: format,
		input:  ti,
		canvas: viewport.New(80, 20),
		status: locate.UsageHint,
		width:  80,
		height: 20 + chromeHeight,
		copy:   clipboard.WriteAll,
		read:   os.ReadFile,
	}
	m.redraw()
	return m
}

func (m ViewModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.canvas.Width = max(msg.Width-2, minCellWidth)
		m.canvas.Height = max(msg.Height-chromeHeight-2, 3)
		m.input.Width = max(msg.Width-12, 10)
		m.redraw()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			m.search()
			return m, nil
		case "ctrl+r":
			m.regenerate()
			return m, nil
		case "ctrl+y":
			m.copyHighlighted()
			return m, nil
		case "ctrl+f":
			m.canvas.GotoTop()
			return m, nil
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.canvas, cmd = m.canvas.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// search highlights the node addressed by the input and scrolls it into the
// middle of the canvas. Misses only change the status line.
func (m *ViewModel) search() {
	res, err := m.ws.Search(m.ctx, m.input.Value())
	if err != nil {
		m.setError(err)
		return
	}
	m.redraw()
	if line, ok := m.lines[res.ID]; ok {
		m.canvas.SetYOffset(line - m.canvas.Height/2)
	}
	m.setStatus(fmt.Sprintf("%s → %s", res.Query, res.Node.Label))
}

// regenerate re-reads the source file and replaces the diagram. A parse
// failure keeps the previous diagram on screen.
func (m *ViewModel) regenerate() {
	text := []byte(document.Sample)
	if m.source != "" {
		data, err := m.read(m.source)
		if err != nil {
			m.setError(errors.Wrap(errors.ErrCodeFileNotFound, err, "Cannot read %s", m.source))
			return
		}
		text = data
	}
	if _, err := m.ws.Generate(m.ctx, text, m.format); err != nil {
		m.setError(err)
		return
	}
	m.redraw()
	m.canvas.GotoTop()
	d := m.ws.Diagram()
	m.setStatus(fmt.Sprintf("Generated %d nodes, %d edges", len(d.Nodes), len(d.Edges)))
}

func (m *ViewModel) copyHighlighted() {
	d := m.ws.Diagram()
	n, ok := d.Highlighted()
	if !ok {
		m.setStatus("Nothing highlighted")
		return
	}
	if err := m.copy(n.Path); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("Copied " + n.Path)
}

func (m *ViewModel) setStatus(s string) { m.status, m.isError = s, false }

func (m *ViewModel) setError(err error) { m.status, m.isError = errors.UserMessage(err), true }

func (m *ViewModel) redraw() {
	d := m.ws.Diagram()
	content, lines := drawCanvas(d, m.canvas.Width)
	m.lines = lines
	m.canvas.SetContent(content)
}

func (m ViewModel) View() string {
	var b strings.Builder

	title := StyleTitle.Render(appName)
	if m.source != "" {
		title += StyleDim.Render("  " + m.source)
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(viewBorderStyle.Render(m.canvas.View()))
	b.WriteString("\n")

	d := m.ws.Diagram()
	if n, ok := d.Highlighted(); ok {
		b.WriteString(nodeTable(n))
		b.WriteString("\n")
	}

	if m.isError {
		b.WriteString(StyleError.Render(iconError + " " + m.status))
	} else {
		b.WriteString(viewStatusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(viewHelpStyle.Render("⏎ find  ↑/↓ scroll  ^f fit  ^r regenerate  ^y copy path  esc quit"))
	return b.String()
}

// nodeTable summarizes the highlighted node.
func nodeTable(n tree.Node) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Path", "Type", "Depth", "Position").
		Row(n.Path, n.Type.String(), fmt.Sprint(n.Depth),
			document.FormatNumber(n.Position.X)+", "+document.FormatNumber(n.Position.Y)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

// =============================================================================
// Canvas
// =============================================================================

// drawCanvas places every node on a character grid: one column per distinct
// x position and one line per distinct y position, with an empty line
// between rows. It returns the rendered grid and the line of each node.
func drawCanvas(d tree.Diagram, width int) (string, map[string]int) {
	lines := make(map[string]int, len(d.Nodes))
	if len(d.Nodes) == 0 {
		return StyleDim.Render("(empty)"), lines
	}

	xs, ys := distinct(d.Nodes, func(n tree.Node) float64 { return n.Position.X }),
		distinct(d.Nodes, func(n tree.Node) float64 { return n.Position.Y })
	cell := max(width/len(xs), minCellWidth)

	grid := make([][]string, len(ys))
	for i := range grid {
		grid[i] = make([]string, len(xs))
	}
	for _, n := range d.Nodes {
		row, _ := slices.BinarySearch(ys, n.Position.Y)
		col, _ := slices.BinarySearch(xs, n.Position.X)
		if grid[row][col] == "" {
			grid[row][col] = nodeCell(n, cell-1)
		}
		if _, seen := lines[n.ID]; !seen {
			lines[n.ID] = row * 2
		}
	}

	blank := strings.Repeat(" ", cell)
	var b strings.Builder
	for i, row := range grid {
		if i > 0 {
			b.WriteString("\n\n")
		}
		var line strings.Builder
		for _, c := range row {
			if c == "" {
				line.WriteString(blank)
				continue
			}
			line.WriteString(c)
			line.WriteString(" ")
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
	}
	return b.String(), lines
}

func distinct(nodes []tree.Node, key func(tree.Node) float64) []float64 {
	out := make([]float64, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, key(n))
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// nodeCell renders a node label in its theme colors, truncated to width.
// The highlighted node is drawn in the highlight border color.
func nodeCell(n tree.Node, width int) string {
	label := n.Label
	if r := []rune(label); len(r) > width-2 {
		label = string(r[:max(width-3, 1)]) + "…"
	}

	st := n.EffectiveStyle()
	style := lipgloss.NewStyle().
		Width(width).
		MaxWidth(width).
		Padding(0, 1).
		Background(lipgloss.Color(st.Background)).
		Foreground(lipgloss.Color(st.Color))
	if n.Highlighted {
		style = style.Bold(true).
			Background(lipgloss.Color(borderColor(st.Border))).
			Foreground(lipgloss.Color("#111"))
	}
	return style.Render(label)
}

// borderColor returns the color part of a CSS border shorthand such as
// "4px solid #fef08a".
func borderColor(border string) string {
	fields := strings.Fields(border)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
