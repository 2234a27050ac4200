package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/censusplot/pkg/census"
	"github.com/matzehuels/censusplot/pkg/chart"
	"github.com/matzehuels/censusplot/pkg/chart/sink"
)

// frameInterval paces redraws while a transition runs.
const frameInterval = time.Second / 30

var (
	tuiHelpStyle    = lipgloss.NewStyle().Foreground(colorDim)
	tuiTooltipStyle = lipgloss.NewStyle().Foreground(colorWhite).Background(lipgloss.Color("23")).Padding(0, 1)
	tuiErrorStyle   = lipgloss.NewStyle().Foreground(colorRed)
)

// frameMsg asks the model to redraw an animation frame.
type frameMsg time.Time

// ExploreModel is the bubbletea model of the explore command. Number keys
// stand in for clicks on the axis labels: each key dispatches a label event
// to the controller and the model redraws until the transition settles.
type ExploreModel struct {
	ctrl      *chart.Controller
	keys      []census.Field // keys[i] is bound to key i+1
	width     int
	height    int
	cursor    int
	tooltip   bool
	animating bool
	err       error
}

// NewExploreModel creates a model driving ctrl.
func NewExploreModel(ctrl *chart.Controller) ExploreModel {
	return ExploreModel{
		ctrl:   ctrl,
		keys:   census.AllFields(),
		width:  80,
		height: 24,
	}
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case frameMsg:
		if m.ctrl.Settled(m.ctrl.Now()) {
			m.animating = false
			return m, nil
		}
		return m, nextFrame()
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m ExploreModel) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		m.cursor = (m.cursor + m.ctrl.Marks().Len() - 1) % m.ctrl.Marks().Len()
	case "right", "l":
		m.cursor = (m.cursor + 1) % m.ctrl.Marks().Len()
	case "enter", " ":
		m.tooltip = !m.tooltip
	default:
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 || n > len(m.keys) {
			return m, nil
		}
		changed, err := m.ctrl.Dispatch(chart.Event{Field: m.keys[n-1], At: m.ctrl.Now()})
		m.err = err
		if changed && !m.animating {
			m.animating = true
			return m, nextFrame()
		}
	}
	return m, nil
}

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Selected returns the key of the highlighted mark.
func (m ExploreModel) Selected() string {
	return m.ctrl.Marks().All()[m.cursor].Key
}

func (m ExploreModel) View() string {
	var b strings.Builder

	sc := m.ctrl.Scene(m.ctrl.Now())
	b.WriteString(StyleTitle.Render(appName))
	b.WriteString(StyleDim.Render("  " + sc.Source))
	b.WriteString("\n")

	// title, two label rows, status and help
	chartHeight := m.height - 5
	b.WriteString(sink.RenderTerminal(sc, m.width, chartHeight, sink.WithHighlight(m.Selected())))
	b.WriteString("\n")

	b.WriteString(m.labelRow(census.AxisX) + "\n")
	b.WriteString(m.labelRow(census.AxisY) + "\n")
	b.WriteString(m.status(sc) + "\n")
	b.WriteString(tuiHelpStyle.Render("1-6: rebind axis  ←/→: select state  enter: tooltip  q: quit"))
	return b.String()
}

// labelRow lists the labels of axis a with their keys, the active one bold.
func (m ExploreModel) labelRow(a census.Axis) string {
	parts := []string{StyleDim.Render(fmt.Sprintf("%s:", a))}
	for _, l := range m.ctrl.Labels(a) {
		text := fmt.Sprintf("[%d] %s", m.keyFor(l.Field), l.Text)
		if l.Active {
			parts = append(parts, styleLabelActive.Render(text))
		} else {
			parts = append(parts, styleLabelInactive.Render(text))
		}
	}
	return strings.Join(parts, "  ")
}

func (m ExploreModel) keyFor(f census.Field) int {
	for i, k := range m.keys {
		if k == f {
			return i + 1
		}
	}
	return 0
}

func (m ExploreModel) status(sc chart.Scene) string {
	if m.err != nil {
		return tuiErrorStyle.Render(m.err.Error())
	}
	key := m.Selected()
	mk, ok := sc.Mark(key)
	if !ok {
		return ""
	}
	if !m.tooltip {
		return StyleHighlight.Render(key) + StyleDim.Render("  "+mk.Record.State)
	}
	return tuiTooltipStyle.Render(strings.Join(mk.Tooltip.Lines(), " · "))
}
