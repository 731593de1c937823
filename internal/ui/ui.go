package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/idursun/text3d/internal/config"
	"github.com/idursun/text3d/internal/runner"
	"github.com/idursun/text3d/internal/screen"
	"github.com/idursun/text3d/internal/terminal"
	"github.com/muesli/termenv"
)

type KeyMap struct {
	Quit  key.Binding
	Pause key.Binding
}

func NewKeyMap(keys config.KeysConfig) KeyMap {
	return KeyMap{
		Quit:  key.NewBinding(key.WithKeys(keys.Quit...), key.WithHelp(helpKeys(keys.Quit), "quit")),
		Pause: key.NewBinding(key.WithKeys(keys.Pause...), key.WithHelp(helpKeys(keys.Pause), "pause")),
	}
}

func helpKeys(keys []string) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		names[i] = k
	}
	return strings.Join(names, "/")
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6400"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")).Bold(true)
)

type frameTickMsg time.Time

// Model drives a runner from bubbletea ticks instead of its own loop.
type Model struct {
	runner  *runner.Runner
	profile termenv.Profile
	keyMap  KeyMap
	help    help.Model
	paused  bool
	done    bool
	last    time.Time
	delta   time.Duration
	frame   string
	err     error
}

func NewModel(r *runner.Runner, profile termenv.Profile) *Model {
	return &Model{
		runner:  r,
		profile: profile,
		keyMap:  NewKeyMap(config.Current.Keys),
		help:    help.New(),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("text3d"), m.tick())
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.runner.Period(), func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

// Err returns the error that stopped the runner, if any.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) Paused() bool {
	return m.paused
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.done {
		return nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			m.done = true
			return tea.Quit
		case key.Matches(msg, m.keyMap.Pause):
			m.paused = !m.paused
			m.last = time.Time{}
		}
	case frameTickMsg:
		return m.step(time.Time(msg))
	}
	return nil
}

func (m *Model) step(now time.Time) tea.Cmd {
	if m.paused {
		return m.tick()
	}
	delta := m.runner.Period()
	if !m.last.IsZero() {
		delta = now.Sub(m.last)
	}
	m.last = now

	next, err := m.runner.Step(delta)
	if err != nil {
		log.Println("runner stopped:", err)
		m.err = err
		m.done = true
		return tea.Quit
	}
	if next == runner.End {
		m.done = true
		return tea.Quit
	}
	m.delta = delta
	m.frame = strings.ReplaceAll(terminal.Encode(m.runner.Buffer(), m.profile), "\r\n", "\n")
	return m.tick()
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.frame)
	b.WriteByte('\n')
	status := fmt.Sprintf("frame %d", m.runner.Frames())
	if m.delta > 0 {
		status += fmt.Sprintf(" · %.1f fps", float64(time.Second)/float64(m.delta))
	}
	paused := ""
	if m.paused {
		paused = "paused"
	}
	b.WriteString(screen.Join(" ",
		screen.Segment{Text: status, Style: statusStyle},
		screen.Segment{Text: paused, Style: pausedStyle},
	))
	b.WriteByte('\n')
	b.WriteString(m.help.ShortHelpView(m.keyMap.ShortHelp()))
	return b.String()
}

var _ tea.Model = (*wrapper)(nil)

type wrapper struct {
	ui *Model
}

func (w *wrapper) Init() tea.Cmd {
	return w.ui.Init()
}

func (w *wrapper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return w, w.ui.Update(msg)
}

func (w *wrapper) View() string {
	return w.ui.View()
}

// New wraps m for tea.NewProgram.
func New(m *Model) tea.Model {
	return &wrapper{ui: m}
}
