package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bubblechart/pkg/pipeline"
	"github.com/matzehuels/bubblechart/pkg/render/bubble"
	"github.com/matzehuels/bubblechart/pkg/render/bubble/sink"
	"github.com/matzehuels/bubblechart/pkg/scale"
)

// Keyboard step sizes of the inspect view.
const (
	inspectZoomStep = 1.25
	inspectPanStep  = 40.0
	inspectPageSize = 12
)

var (
	inspectHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	inspectCursorStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	inspectPanelStyle  = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// inspectCommand creates the interactive inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := renderOpts{
		vizID:  pipeline.DefaultVizID,
		width:  pipeline.DefaultWidth,
		height: pipeline.DefaultHeight,
		hover:  -1,
		scale:  pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "inspect <query.json>",
		Short: "Browse rendered bubbles, tooltips and axes in the terminal",
		Long: `Browse rendered bubbles, tooltips and axes in the terminal.

Keys:
  ↑/↓ or k/j   move the hover between bubbles
  +/-          zoom in/out about the plot centre
  ←/→ or h/l   pan horizontally
  0            reset zoom
  q            quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := importQuery(args[0])
			if err != nil {
				return err
			}
			popts, err := opts.pipelineOptions()
			if err != nil {
				return err
			}
			popts.Formats = []string{pipeline.FormatJSON}

			runner := pipeline.NewRunner(nil, nil, nil, c.Logger)
			result, err := runner.Execute(cmd.Context(), pipeline.NewRequest(doc, popts))
			if err != nil {
				return err
			}

			p := tea.NewProgram(newInspectModel(result.Scene),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.config, "config", "c", "", "style option file (.toml, .yaml, .json)")
	f.StringArrayVar(&opts.sets, "set", nil, "style option override key=value (repeatable)")
	f.Float64Var(&opts.width, "width", opts.width, "canvas width in pixels")
	f.Float64Var(&opts.height, "height", opts.height, "canvas height in pixels")

	return cmd
}

// =============================================================================
// inspectModel - Interactive scene browser
// =============================================================================

// inspectModel browses a scene. base is the unzoomed, unhovered render;
// scene is base with the current transform and hover applied.
type inspectModel struct {
	base   bubble.Scene
	scene  bubble.Scene
	t      scale.Transform
	cursor int
	offset int
}

func newInspectModel(s bubble.Scene) inspectModel {
	m := inspectModel{base: s, t: scale.Identity}
	m.refresh()
	return m
}

func (m inspectModel) Init() tea.Cmd { return nil }

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.base.Bubbles)-1 {
			m.cursor++
		}
	case "+", "=":
		m.zoom(inspectZoomStep)
	case "-", "_":
		m.zoom(1 / inspectZoomStep)
	case "left", "h":
		m.t = m.t.Pan(inspectPanStep, 0)
	case "right", "l":
		m.t = m.t.Pan(-inspectPanStep, 0)
	case "0":
		m.t = scale.Identity
	default:
		return m, nil
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+inspectPageSize {
		m.offset = m.cursor - inspectPageSize + 1
	}
	m.refresh()
	return m, nil
}

// zoom scales by factor about the plot centre, clamped to the SVG zoom range.
func (m *inspectModel) zoom(factor float64) {
	k := math.Min(math.Max(m.t.K*factor, sink.MinZoom), sink.MaxZoom)
	m.t = m.t.Then(k/m.t.K, m.base.Plot.W/2, m.base.Plot.H/2)
	m.t.K = k
}

func (m *inspectModel) refresh() {
	s := m.base.Zoom(m.t)
	if b, ok := m.current(); ok {
		s = s.Hover(b.Datum.Index)
	}
	m.scene = s
}

// current returns the bubble under the cursor in the unzoomed scene.
func (m inspectModel) current() (bubble.Bubble, bool) {
	if m.cursor < 0 || m.cursor >= len(m.base.Bubbles) {
		return bubble.Bubble{}, false
	}
	return m.base.Bubbles[m.cursor], true
}

// position returns the zoomed centre of datum i and whether it is inside
// the plot.
func (m inspectModel) position(i int) (bubble.Point, bool) {
	for _, b := range m.scene.Bubbles {
		if b.Datum.Index == i {
			in := b.CX >= 0 && b.CX <= m.scene.Plot.W && b.CY >= 0 && b.CY <= m.scene.Plot.H
			return bubble.Point{X: b.CX, Y: b.CY}, in
		}
	}
	return bubble.Point{}, false
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Store Efficiency"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ hover  +/- zoom  ←/→ pan  0 reset  q quit"))
	b.WriteString("\n\n")

	if m.scene.Empty() {
		b.WriteString(StyleWarning.Render(m.scene.Text()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.bubbleTable())
	b.WriteString("\n")
	if hb, ok := m.scene.Hovered(); ok {
		b.WriteString(tooltipPanel(hb.Tooltip))
		b.WriteString("\n")
	}
	b.WriteString(axisLine(m.scene.X))
	b.WriteString("\n")
	b.WriteString(axisLine(m.scene.Y))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  zoom %.2f×  [%d/%d]", m.t.K, m.cursor+1, len(m.base.Bubbles))))
	b.WriteString("\n")
	return b.String()
}

func (m inspectModel) bubbleTable() string {
	end := min(m.offset+inspectPageSize, len(m.base.Bubbles))
	rows := make([][]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		bb := m.base.Bubbles[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		pos := "outside"
		if p, in := m.position(bb.Datum.Index); in {
			pos = fmt.Sprintf("%.0f, %.0f", p.X, p.Y)
		}
		r := bb.Datum.Rendered
		rows = append(rows, []string{cursor, bb.Datum.Store, r.X, r.Y, r.Size, pos})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Store", m.scene.X.Title, m.scene.Y.Title, "Size", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return inspectHeaderStyle
			}
			if m.offset+row == m.cursor {
				return inspectCursorStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}

func tooltipPanel(tip bubble.Tooltip) string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(tip.Title))
	for _, r := range tip.Rows {
		b.WriteString("\n")
		b.WriteString(styleKey.Width(24).Render(r.Label))
		b.WriteString(StyleValue.Render(r.Value))
	}
	return inspectPanelStyle.Render(b.String())
}

func axisLine(a bubble.Axis) string {
	labels := make([]string, len(a.Ticks))
	for i, t := range a.Ticks {
		labels[i] = t.Label
	}
	return styleKey.Render(a.Title) + " " + StyleDim.Render(strings.Join(labels, "  "))
}
