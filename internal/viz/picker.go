package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/walnuts/internal/config"
	"github.com/san-kum/walnuts/internal/target"
	"github.com/san-kum/walnuts/internal/walnuts"
)

var targetInfo = map[string]string{
	"gaussian":   "isotropic normal",
	"correlated": "2-d correlated normal",
	"banana":     "twisted normal",
	"funnel":     "neal's funnel",
	"doublewell": "bimodal quartic",
	"nan":        "broken gradient",
}

const (
	stateMenu = iota
	stateConfig
	stateLive
)

var pickerFields = []string{"dim", "dt", "max_error", "max_depth", "seed"}

var (
	pickTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	pickSub      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	pickCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	pickActive   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	pickValue    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Bold(true)
	pickInactive = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	pickKey      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	pickError    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// Picker chooses a target and its sampler settings, then hands over to the
// live view.
type Picker struct {
	state, cursor int
	registry      *target.Registry
	targets       []string
	base          *config.Config
	selected      string
	values        map[string]float64
	fieldCursor   int
	editing       bool
	editBuf       string
	err           error
	live          Model
}

// NewPicker lists the targets of reg. base supplies the initial settings.
func NewPicker(reg *target.Registry, base *config.Config) *Picker {
	return &Picker{
		state:    stateMenu,
		registry: reg,
		targets:  reg.Names(),
		base:     base,
	}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch p.state {
		case stateMenu:
			return p.menuKey(key)
		case stateConfig:
			return p.configKey(key)
		}
	}
	if p.state == stateLive {
		next, cmd := p.live.Update(msg)
		p.live = next.(Model)
		return p, cmd
	}
	return p, nil
}

func (p Picker) menuKey(msg tea.KeyMsg) (Picker, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.targets)-1 {
			p.cursor++
		}
	case "enter", " ":
		p.selected = p.targets[p.cursor]
		p.state, p.fieldCursor, p.err = stateConfig, 0, nil
		p.loadValues()
	}
	return p, nil
}

func (p Picker) configKey(msg tea.KeyMsg) (Picker, tea.Cmd) {
	field := pickerFields[p.fieldCursor]
	if p.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(p.editBuf, "%g", &val); err == nil {
				p.values[field] = val
			}
			p.editing, p.editBuf = false, ""
		case "esc":
			p.editing, p.editBuf = false, ""
		case "backspace":
			if len(p.editBuf) > 0 {
				p.editBuf = p.editBuf[:len(p.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					p.editBuf += string(c)
				}
			}
		}
		return p, nil
	}

	switch msg.String() {
	case "q", "esc":
		p.state = stateMenu
	case "up", "k":
		if p.fieldCursor > 0 {
			p.fieldCursor--
		}
	case "down", "j":
		if p.fieldCursor < len(pickerFields)-1 {
			p.fieldCursor++
		}
	case "enter", " ":
		p.editing, p.editBuf = true, fmt.Sprintf("%g", p.values[field])
	case "left", "h":
		p.nudge(field, -1)
	case "right", "l":
		p.nudge(field, 1)
	case "s":
		return p.start()
	}
	return p, nil
}

func (p *Picker) nudge(field string, dir float64) {
	switch field {
	case "dt", "max_error":
		if dir > 0 {
			p.values[field] *= 1.25
		} else {
			p.values[field] /= 1.25
		}
	default:
		p.values[field] += dir
	}
}

// loadValues starts from the target's default preset when there is one.
func (p *Picker) loadValues() {
	cfg := p.base
	if preset := config.GetPreset(p.selected, "default"); preset != nil {
		cfg = preset
	}
	p.values = map[string]float64{
		"dim":       float64(cfg.Dim),
		"dt":        cfg.Dt,
		"max_error": cfg.MaxError,
		"max_depth": float64(cfg.MaxDepth),
		"seed":      float64(p.base.Seed),
	}
}

// Config returns the settings chosen for the selected target.
func (p Picker) Config() *config.Config {
	cfg := p.base.Clone()
	if preset := config.GetPreset(p.selected, "default"); preset != nil {
		cfg = preset
		cfg.RefineIrreversible = p.base.RefineIrreversible
		cfg.MaxHalvings = p.base.MaxHalvings
	}
	cfg.Target = p.selected
	cfg.Dim = int(p.values["dim"])
	cfg.Dt = p.values["dt"]
	cfg.MaxError = p.values["max_error"]
	cfg.MaxDepth = int(p.values["max_depth"])
	cfg.Seed = int64(p.values["seed"])
	cfg.Init = nil
	return cfg
}

func (p Picker) start() (Picker, tea.Cmd) {
	cfg := p.Config()
	if err := cfg.Validate(); err != nil {
		p.err = err
		return p, nil
	}
	tgt, err := p.registry.Get(cfg.Target, cfg.Dim, cfg.TargetParams)
	if err != nil {
		p.err = err
		return p, nil
	}
	s, err := walnuts.New(tgt, cfg.SamplerConfig())
	if err != nil {
		p.err = err
		return p, nil
	}

	p.live = NewModel(s, cfg.Target)
	p.state = stateLive
	return p, p.live.Init()
}

func (p Picker) View() string {
	switch p.state {
	case stateMenu:
		return p.viewMenu()
	case stateConfig:
		return p.viewConfig()
	case stateLive:
		return p.live.View()
	}
	return ""
}

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(pickKey.Render(pairs[i]) + pickInactive.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (p Picker) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + pickTitle.Render("WALNUTS") + "\n    " + pickSub.Render("adaptive-step no-u-turn sampler") + "\n    " + pickSub.Render("─────────────────────────") + "\n\n")
	for i, name := range p.targets {
		desc := targetInfo[name]
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", pickCursor.Render("▸"), pickActive.Render(fmt.Sprintf("%-12s", name)), pickValue.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", pickInactive.Render(fmt.Sprintf("  %-12s", name)), pickInactive.Render(desc)))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (p Picker) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + pickTitle.Render(strings.ToUpper(p.selected)) + "\n    " + pickSub.Render(targetInfo[p.selected]) + "\n    " + pickSub.Render("─────────────────────────") + "\n\n")
	for i, name := range pickerFields {
		valStr := fmt.Sprintf("%10.4g", p.values[name])
		if p.editing && i == p.fieldCursor {
			valStr = fmt.Sprintf("%10s", p.editBuf+"_")
		}
		if i == p.fieldCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", pickCursor.Render("▸"), pickActive.Render(fmt.Sprintf("%-10s", name)), pickValue.Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", pickInactive.Render(fmt.Sprintf("  %-10s", name)), pickInactive.Render(valStr)))
		}
	}
	if p.err != nil {
		b.WriteString("\n    " + pickError.Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back") + "\n")
	return b.String()
}
