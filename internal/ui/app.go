package ui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"debugpanels/internal/overlay"
)

// Model is the root tea.Model: it owns the overlay and renders it over a
// background text.
type Model struct {
	Overlay    *overlay.Overlay
	Keys       KeyMap
	Help       help.Model
	Background string
	// Clipboard writes the default panel's text; nil uses the system clipboard.
	Clipboard func(string) error
	// OnResize is told about every new screen size, e.g. to resize a PTY.
	OnResize func(width, height int)
	Logger   *log.Logger

	frame Frame
}

// Ensure Model implements tea.Model.
var _ tea.Model = (*Model)(nil)

// NewModel wraps o with the default key map.
func NewModel(o *overlay.Overlay) *Model {
	m := &Model{
		Overlay:   o,
		Keys:      DefaultKeyMap(),
		Help:      help.New(),
		Clipboard: clipboard.WriteAll,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Overlay.Resize(msg.Width, msg.Height)
		m.Help.Width = msg.Width
		if m.OnResize != nil {
			m.OnResize(msg.Width, msg.Height)
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.click(msg.X, msg.Y)
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.Keys.ToggleDefault):
			m.Overlay.ToggleDefault()
		case key.Matches(msg, m.Keys.CopyDefault):
			cmd = m.copyDefault()
		case key.Matches(msg, m.Keys.Resize):
			m.Overlay.TriggerResize()
		}
	case LogMsg:
		m.Overlay.Log(msg.Options, msg.Values...)
	case ReplaceTextMsg:
		m.Overlay.ReplaceText(msg.Options, msg.Values...)
	case MeterSampleMsg:
		m.Overlay.DrawMeterSample(msg.Percent, msg.Target)
	case ErrorMsg:
		m.Overlay.CaptureError(msg.Err)
	case ApplyMsg:
		msg(m.Overlay)
	case CopiedMsg:
		if msg.Err != nil {
			m.logger().Warn("copy to clipboard", "err", msg.Err)
		}
	}
	m.refresh()
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	return m.frame.View
}

// Frame returns the last rendered frame.
func (m *Model) Frame() Frame {
	return m.frame
}

func (m *Model) refresh() {
	m.frame = Render(m.Overlay, m.background())
}

func (m *Model) background() string {
	if m.Background == "" {
		return ""
	}
	return m.Background + "\n\n" + m.Help.View(m.Keys)
}

// click dispatches a left click at cell (x, y). Link panels are left to the
// terminal's own hyperlink handling.
func (m *Model) click(x, y int) {
	hit, ok := m.frame.HitAt(x, y)
	if !ok {
		return
	}
	switch hit.Kind {
	case HitControl:
		m.Overlay.ClickControl(hit.Quadrant)
	case HitBadge:
		m.Overlay.ClickBadge(hit.Quadrant)
	case HitPanel:
		if hit.Panel.Kind == overlay.KindLink {
			return
		}
		m.Overlay.Click(hit.Panel)
	}
}

func (m *Model) copyDefault() tea.Cmd {
	text := m.Overlay.DefaultText()
	write := m.Clipboard
	return func() tea.Msg {
		return CopiedMsg{Err: write(text)}
	}
}

func (m *Model) logger() *log.Logger {
	if m.Logger == nil {
		return log.Default()
	}
	return m.Logger
}
