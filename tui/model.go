// Package tui is a terminal front end for the chat widget. The widget owns
// the state; the bubbletea model renders it and turns key presses into
// widget operations.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/samanthauoviawe/chatbot-web-interface/widget"
	"go.uber.org/zap"
)

const (
	headerHeight = 2
	inputHeight  = 3
	footerHeight = 1
)

// Options configures the terminal front end
type Options struct {
	// Endpoint is shown under the title
	Endpoint string
	// Markdown renders bot messages with glamour
	Markdown bool
	// Visible opens the panel at start
	Visible bool
	Logger  *zap.Logger
}

// Messages for tea updates
type (
	stateMsg  struct{}
	scrollMsg struct{}
)

// Model is the bubbletea model of a mounted chat widget
type Model struct {
	widget   *widget.ChatWidget
	state    widget.State
	changes  chan struct{}
	scrolls  chan struct{}
	endpoint string

	textinput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	renderer  *glamour.TermRenderer
	markdown  bool
	spinning  bool

	width  int
	height int
}

// New mounts a widget sending through sender and returns its model
func New(sender widget.Sender, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := Model{
		changes:  make(chan struct{}, 1),
		scrolls:  make(chan struct{}, 1),
		endpoint: opts.Endpoint,
		markdown: opts.Markdown,
		width:    80,
		height:   24,
	}

	changes, scrolls := m.changes, m.scrolls
	m.widget = widget.New(sender,
		widget.WithLogger(logger),
		widget.WithVisible(opts.Visible),
		widget.WithAnchor(widget.AnchorFunc(func() { signal(scrolls) })),
	)
	m.widget.Subscribe(func(prev, next widget.State) { signal(changes) })
	m.state = m.widget.State()

	ti := textinput.New()
	ti.Placeholder = "Type your message"
	ti.Prompt = "> "
	ti.CharLimit = 4000
	ti.Focus()
	m.textinput = ti

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	m.viewport = viewport.New(m.width-4, m.viewportHeight())
	m.resize(m.width, m.height)

	return m
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func waitFor(ch <-chan struct{}, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return msg
	}
}

// Widget returns the mounted widget
func (m Model) Widget() *widget.ChatWidget {
	return m.widget
}

// Init starts listening for widget changes
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		waitFor(m.changes, stateMsg{}),
		waitFor(m.scrolls, scrollMsg{}),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.widget.Unmount()
			return m, tea.Quit

		case tea.KeyCtrlT:
			m.widget.Toggle()
			return m, nil

		case tea.KeyEnter:
			if m.widget.State().Visible {
				m.widget.Submit()
			}
			return m, nil

		case tea.KeyPgUp:
			m.viewport.LineUp(m.viewport.Height / 2)
			return m, nil

		case tea.KeyPgDown:
			m.viewport.LineDown(m.viewport.Height / 2)
			return m, nil
		}

		if s := m.widget.State(); !s.Visible || s.InputDisabled() {
			return m, nil
		}

		var cmd tea.Cmd
		m.textinput, cmd = m.textinput.Update(msg)
		m.widget.SetInput(m.textinput.Value())
		return m, cmd

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case stateMsg:
		cmd := m.sync()
		return m, tea.Batch(cmd, waitFor(m.changes, stateMsg{}))

	case scrollMsg:
		// the change that triggered the scroll may not have reached the view yet
		cmd := m.sync()
		m.viewport.GotoBottom()
		return m, tea.Batch(cmd, waitFor(m.scrolls, scrollMsg{}))

	case spinner.TickMsg:
		if !m.state.Loading {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.textinput, cmd = m.textinput.Update(msg)
	return m, cmd
}

// sync copies the widget state into the view
func (m *Model) sync() tea.Cmd {
	m.state = m.widget.State()

	if m.textinput.Value() != m.state.Input {
		m.textinput.SetValue(m.state.Input)
	}

	var cmds []tea.Cmd
	if m.state.InputDisabled() {
		m.textinput.Blur()
		if !m.spinning {
			m.spinning = true
			cmds = append(cmds, m.spinner.Tick)
		}
	} else {
		cmds = append(cmds, m.textinput.Focus())
	}

	m.viewport.SetContent(m.renderHistory())
	return tea.Batch(cmds...)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	m.viewport.Width = width - 4
	m.viewport.Height = m.viewportHeight()
	m.textinput.Width = width - 16

	if m.markdown {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width-8),
		)
		if err == nil {
			m.renderer = r
		}
	}

	m.viewport.SetContent(m.renderHistory())
}

func (m Model) viewportHeight() int {
	h := m.height - headerHeight - inputHeight - footerHeight - 2
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) renderHistory() string {
	var b strings.Builder
	for i, msg := range m.state.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if msg.Type == widget.TypeUser {
			b.WriteString(userStyle.Render(msg.Author()))
			b.WriteString("\n")
			b.WriteString(msg.Text)
			continue
		}

		b.WriteString(botStyle.Render(msg.Author()))
		b.WriteString("\n")
		b.WriteString(m.renderBot(msg.Text))
	}
	return b.String()
}

func (m Model) renderBot(text string) string {
	if m.renderer == nil || text == widget.ErrorText {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}

// View renders the model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Chatbot"))
	if m.endpoint != "" {
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render(m.endpoint))
	}
	b.WriteString("\n\n")

	if !m.state.Visible {
		b.WriteString("Welcome to the Chatbot!\n")
		b.WriteString(subtitleStyle.Render("Press Ctrl+T to open the chat."))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("ctrl+t open • esc quit"))
		return b.String()
	}

	send := m.state.SendLabel()
	if m.state.Loading {
		send = fmt.Sprintf("%s %s", m.spinner.View(), send)
	}

	panel := m.viewport.View() + "\n" + m.textinput.View() + "  [" + send + "]"
	b.WriteString(panelStyle.Width(m.width - 2).Render(panel))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter send • pgup/pgdn scroll • ctrl+t close • esc quit"))

	return b.String()
}
