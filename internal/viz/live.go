package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/walnuts/internal/metrics"
	"github.com/san-kum/walnuts/internal/vec"
	"github.com/san-kum/walnuts/internal/walnuts"
)

const (
	width           = 64
	height          = 20
	historyCapacity = 400
	chainPoints     = 300
	tickInterval    = time.Second / 20
)

type TickMsg time.Time

// lastTransition keeps the proposal event of the most recent transition.
type lastTransition struct {
	ev walnuts.Event
	ok bool
}

func (l *lastTransition) OnEvent(ev walnuts.Event) {
	if ev.Kind == walnuts.KindProposal {
		l.ev = ev
		l.ok = true
	}
}

// Model runs a sampler one transition per tick and draws its trajectories.
type Model struct {
	sampler    *walnuts.Sampler
	targetName string
	last       *lastTransition
	acceptance *metrics.Acceptance
	depth      *metrics.TreeDepth
	moves      *metrics.MoveRate
	canvas     *Canvas
	theme      Theme
	running    bool
	trace      []float64
	depths     []float64
	status     string
}

// NewModel wraps s. The model registers its own observers on s.
func NewModel(s *walnuts.Sampler, targetName string) Model {
	m := Model{
		sampler:    s,
		targetName: targetName,
		last:       &lastTransition{},
		acceptance: metrics.NewAcceptance(),
		depth:      metrics.NewTreeDepth(),
		moves:      metrics.NewMoveRate(),
		canvas:     NewCanvas(width, height),
		theme:      Themes[0],
		running:    true,
		trace:      make([]float64, 0, historyCapacity),
		depths:     make([]float64, 0, historyCapacity),
	}
	s.AddObserver(m.last)
	s.AddObserver(metrics.Set{m.acceptance, m.depth, m.moves})
	m.trace = append(m.trace, s.Tip()[0])
	return m
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the sampler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			m.adjust(func(c *walnuts.Config) { c.Dt *= 1.25 })
		case "-", "_":
			m.adjust(func(c *walnuts.Config) { c.Dt /= 1.25 })
		case "]":
			m.adjust(func(c *walnuts.Config) { c.MaxError *= 2 })
		case "[":
			m.adjust(func(c *walnuts.Config) { c.MaxError /= 2 })
		case "r":
			m.reset()
		case "t":
			m.theme = NextTheme(m.theme)
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

// adjust applies a configuration change before the next transition.
func (m *Model) adjust(change func(*walnuts.Config)) {
	cfg := m.sampler.Config()
	change(&cfg)
	if err := m.sampler.SetConfig(cfg); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("dt %.3g  max error %.3g", cfg.Dt, cfg.MaxError)
}

func (m *Model) step() {
	st := m.sampler.Transition()
	m.trace = appendCapped(m.trace, m.sampler.Tip()[0])
	m.depths = appendCapped(m.depths, float64(st.Depth))
}

// reset starts a fresh chain on the next seed.
func (m *Model) reset() {
	m.sampler.Reset(m.sampler.Config().Seed + 1)
	m.acceptance.Reset()
	m.depth.Reset()
	m.moves.Reset()
	m.last.ok = false
	m.trace = append(m.trace[:0], m.sampler.Tip()[0])
	m.depths = m.depths[:0]
	m.status = "reset"
}

func appendCapped(xs []float64, x float64) []float64 {
	xs = append(xs, x)
	if len(xs) > historyCapacity {
		xs = xs[1:]
	}
	return xs
}

// project returns the 2-D view of q: the first two coordinates, or the
// single coordinate on the horizontal axis.
func project(q vec.Vector) (float64, float64) {
	if len(q) >= 2 {
		return q[0], q[1]
	}
	return q[0], 0
}

// draw renders recent draws and the last trajectory onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()

	chain := m.sampler.Chain()
	if len(chain) > chainPoints {
		chain = chain[len(chain)-chainPoints:]
	}

	var xs, ys []float64
	for _, q := range chain {
		x, y := project(q)
		xs, ys = append(xs, x), append(ys, y)
	}
	var traj []walnuts.Event
	if m.last.ok {
		traj = m.last.ev.Trajectory
		for _, ev := range traj {
			if ev.To == nil {
				continue
			}
			x, y := project(ev.To)
			xs, ys = append(xs, x), append(ys, y)
		}
	}
	vp := FitViewport(xs, ys, 0.1)

	for _, q := range chain {
		x, y := project(q)
		px, py := vp.Pixel(m.canvas, x, y)
		m.canvas.Set(px, py)
	}

	for _, ev := range traj {
		if ev.From == nil || ev.To == nil {
			continue
		}
		fx, fy := project(ev.From)
		tx, ty := project(ev.To)
		x0, y0 := vp.Pixel(m.canvas, fx, fy)
		x1, y1 := vp.Pixel(m.canvas, tx, ty)
		switch ev.Kind {
		case walnuts.KindLeapfrog:
			m.canvas.DrawLine(x0, y0, x1, y1)
		case walnuts.KindAccept:
			m.canvas.Block(x1, y1, 0)
		case walnuts.KindReject:
			m.canvas.Cross(x1, y1, 1)
		}
	}

	x, y := project(m.sampler.Tip())
	px, py := vp.Pixel(m.canvas, x, y)
	m.canvas.Block(px, py, 1)
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Foreground(m.theme.Canvas).Render(m.canvas.String())

	cfg := m.sampler.Config()
	stats := m.sampler.Stats()

	var s strings.Builder
	s.WriteString(headerStyle(m.theme).Render("WALNUTS · "+strings.ToUpper(m.targetName)) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.trace) > 1 {
		chart := asciigraph.Plot(m.trace, asciigraph.Height(5), asciigraph.Width(32), asciigraph.Caption("q[0]"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Transitions", fmt.Sprintf("%d", stats.Transitions))
	row("dt", fmt.Sprintf("%.4g", cfg.Dt))
	row("Max error", fmt.Sprintf("%.4g", cfg.MaxError))
	row("Mean depth", fmt.Sprintf("%.2f (max %d)", m.depth.Value(), m.depth.Max()))
	row("Moved", fmt.Sprintf("%.1f%%", 100*m.moves.Value()))
	row("Leapfrog", fmt.Sprintf("%d", stats.LeapfrogSteps))
	s.WriteString(labelStyle.Render("Acceptance") + ProgressBar(m.theme, m.acceptance.Value(), 16) +
		valueStyle.Render(fmt.Sprintf(" %.0f%%", 100*m.acceptance.Value())) + "\n")

	rejects := lipgloss.NewStyle().Foreground(m.theme.Bad)
	row("Rejected", rejects.Render(fmt.Sprintf("energy %d  rev %d  nan %d",
		m.acceptance.Rejected(walnuts.RejectEnergy),
		m.acceptance.Rejected(walnuts.RejectReversibility),
		m.acceptance.Rejected(walnuts.RejectNonFinite))))

	if m.last.ok {
		st := m.last.ev.Stats
		row("Last", fmt.Sprintf("depth %d, %s", st.Depth, st.Stop))
		tip := m.sampler.Tip()
		x, y := project(tip)
		row("Tip", fmt.Sprintf("(%.3f, %.3f)", x, y))
	}
	s.WriteString(labelStyle.Render("Depth") + lipgloss.NewStyle().Foreground(m.theme.Accent).Render(Sparkline(m.depths, 28)) + "\n")

	if m.status != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Muted).Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause R:Reset Q:Quit T:Theme\n+/-:dt  [/]:max error"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// Run starts the live view in the alternate screen.
func Run(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

