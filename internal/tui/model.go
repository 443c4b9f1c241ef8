package tui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pkt.systems/pslog"
	"pkt.systems/simry/core"
	"pkt.systems/simry/internal/appconfig"
	"pkt.systems/simry/internal/format"
	"pkt.systems/simry/internal/logx"
	"pkt.systems/simry/schema"
)

const tabGap = " "

// Options configures the terminal surface.
type Options struct {
	Tabs   appconfig.TabsConfig
	Theme  appconfig.ThemeConfig
	Logger pslog.Logger
}

type tabCell struct {
	label  string
	active bool
	click  func()
}

type promptState struct {
	active bool
	input  string
}

type intentMsg struct {
	intent schema.Intent
}

type windowEventMsg struct {
	event schema.WindowEvent
}

// Model is the bubbletea program state and the core.Surface of one window.
// Surface calls arrive from window operations, which the model only runs
// inside Update, so its fields are owned by the program loop.
type Model struct {
	ctx        context.Context
	window     *core.Window
	dispatcher *core.Dispatcher
	events     <-chan schema.WindowEvent
	log        pslog.Logger
	styles     styles
	renderer   *format.PlainRenderer
	tabsCfg    appconfig.TabsConfig

	tabs         []tabCell
	content      *core.Content
	contentIndex int

	width     int
	height    int
	status    string
	statusErr bool
	prompt    promptState
}

var _ core.Surface = (*Model)(nil)

// New constructs a detached model. Pass it as the window Surface, then Attach the window.
func New(ctx context.Context, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = pslog.Ctx(ctx)
	}
	return &Model{
		ctx:          ctx,
		log:          logger,
		styles:       newStyles(opts.Theme),
		renderer:     format.NewPlainRenderer(),
		tabsCfg:      opts.Tabs,
		contentIndex: -1,
	}
}

// Attach binds the window the model drives and the event stream it reports.
func (m *Model) Attach(w *core.Window, events <-chan schema.WindowEvent) {
	m.ctx = logx.ContextWithWindowLogger(m.ctx, m.log.With("window", w.ID()), w.ID())
	m.log = logx.Ctx(m.ctx)
	m.window = w
	m.dispatcher = w.Dispatcher()
	m.events = events
}

// InsertTab implements core.Surface.
func (m *Model) InsertTab(tab core.TabView) {
	m.tabs = append(m.tabs, tabCell{label: tab.Label, active: tab.Active, click: tab.Click})
}

// SetTabActive implements core.Surface.
func (m *Model) SetTabActive(index int, active bool) {
	if index < 0 || index >= len(m.tabs) {
		return
	}
	m.tabs[index].active = active
}

// BindContent implements core.Surface.
func (m *Model) BindContent(index int, content *core.Content) {
	m.contentIndex = index
	m.content = content
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitIntent(), m.waitEvent())
}

func (m *Model) waitIntent() tea.Cmd {
	ch := m.dispatcher.Intents()
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		return intentMsg{intent: <-ch}
	}
}

func (m *Model) waitEvent() tea.Cmd {
	ch := m.events
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return windowEventMsg{event: event}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case intentMsg:
		m.apply(msg.intent)
		return m, m.waitIntent()
	case windowEventMsg:
		m.report(msg.event)
		return m, m.waitEvent()
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		if m.prompt.active {
			m.handlePromptKey(msg)
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) apply(intent schema.Intent) {
	if m.window == nil {
		return
	}
	if _, err := core.Apply(m.ctx, m.window, intent); err != nil {
		// Open failures already reach the status line through the event stream.
		var ioErr *schema.IOError
		var decodeErr *schema.DecodeError
		if errors.As(err, &ioErr) || errors.As(err, &decodeErr) {
			return
		}
		m.setError(err.Error())
	}
}

// report shows additions and failures. Selection changes are already
// visible in the tab bar.
func (m *Model) report(event schema.WindowEvent) {
	switch event.Type {
	case schema.WindowEventOpenFailed, schema.WindowEventBufferAdded:
	default:
		return
	}
	line := m.renderer.FormatEvent(event)
	if m.renderer.IsError(event) {
		m.setError(line)
		return
	}
	m.setStatus(line)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+q", "ctrl+c":
		return m, tea.Quit
	case "ctrl+n":
		m.dispatcher.Emit(schema.NewIntent(true))
	case "ctrl+o":
		m.prompt = promptState{active: true}
	case "tab":
		m.cycle(1)
	case "shift+tab":
		m.cycle(-1)
	default:
		if index, ok := altDigit(key); ok {
			m.dispatcher.Emit(schema.SelectIntent(index))
		}
	}
	return m, nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.prompt = promptState{}
	case tea.KeyEnter:
		path := strings.TrimSpace(m.prompt.input)
		m.prompt = promptState{}
		if path == "" {
			return
		}
		m.dispatcher.Emit(schema.OpenIntent(path, true))
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		runes := []rune(m.prompt.input)
		if len(runes) > 0 {
			m.prompt.input = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.prompt.input += " "
	case tea.KeyRunes:
		m.prompt.input += string(msg.Runes)
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft || msg.Y != 0 {
		return
	}
	index := m.tabAt(msg.X)
	if index < 0 || m.tabs[index].click == nil {
		return
	}
	m.tabs[index].click()
}

func (m *Model) cycle(step int) {
	count := len(m.tabs)
	if count == 0 || m.window == nil {
		return
	}
	current, ok := m.window.Selected()
	if !ok {
		current = 0
		step = 0
	}
	next := ((current+step)%count + count) % count
	m.dispatcher.Emit(schema.SelectIntent(next))
}

func (m *Model) tabAt(x int) int {
	if x < 0 {
		return -1
	}
	pos := 0
	for i, tab := range m.tabs {
		w := lipgloss.Width(m.renderTab(tab))
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + lipgloss.Width(tabGap)
	}
	return -1
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *Model) setError(text string) {
	m.status = text
	m.statusErr = true
	m.log.Debug("tui status error", "status", text)
}

func altDigit(key string) (int, bool) {
	if len(key) != len("alt+1") || !strings.HasPrefix(key, "alt+") {
		return 0, false
	}
	d := key[len(key)-1]
	if d < '1' || d > '9' {
		return 0, false
	}
	return int(d - '1'), true
}
