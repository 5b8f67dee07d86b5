// Package cli provides the local transports used when the bot runs
// against a terminal instead of a remote chat service: an interactive
// bubbletea console on a TTY and a line-pipe mode otherwise.
package cli

import (
	"context"
	"strings"

	"github.com/avetisov/deadlinebot/internal/bot"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	userLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	botLabelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	hintStyle      = lipgloss.NewStyle().Faint(true)
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// ChannelSender implements bot.Sender by pushing outbound messages onto
// a channel the console model drains. Single-owner by construction.
type ChannelSender struct {
	ch chan string
}

var _ bot.Sender = (*ChannelSender)(nil)

// NewChannelSender creates a sender with a small buffer so reminder
// sweeps don't block when the user is mid-keystroke.
func NewChannelSender() *ChannelSender {
	return &ChannelSender{ch: make(chan string, 16)}
}

func (s *ChannelSender) Send(ctx context.Context, owner, text string) error {
	select {
	case s.ch <- text:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// botReplyMsg carries one outbound bot message into the tea loop.
type botReplyMsg string

// inboundHandledMsg signals that the dispatcher finished a turn.
type inboundHandledMsg struct{}

// consoleModel is the bubbletea Model for the chat console: a viewport
// transcript above a text input, with the reply keyboard rendered as a
// hint bar.
type consoleModel struct {
	ctx      context.Context
	handle   func(ctx context.Context, text string)
	outbound <-chan string

	input    textinput.Model
	viewport viewport.Model
	lines    []string

	width  int
	height int
	ready  bool
}

// newConsoleModel builds the model. handle is the dispatcher entry
// bound to the console owner.
func newConsoleModel(ctx context.Context, handle func(ctx context.Context, text string), outbound <-chan string) consoleModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = promptStyle.Render("> ")
	ti.CharLimit = 500

	return consoleModel{
		ctx:      ctx,
		handle:   handle,
		outbound: outbound,
		input:    ti,
	}
}

func (m consoleModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForReply())
}

// waitForReply re-arms the outbound listener after every bot message.
func (m consoleModel) waitForReply() tea.Cmd {
	return func() tea.Msg {
		select {
		case text := <-m.outbound:
			return botReplyMsg(text)
		case <-m.ctx.Done():
			return tea.Quit()
		}
	}
}

func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chromeLines := 3 // input line, blank line, hint bar
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chromeLines)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chromeLines
		}
		m.input.Width = msg.Width - 4
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			m.appendLine(userLabelStyle.Render("you") + "  " + text)
			return m, m.dispatch(text)
		}

	case botReplyMsg:
		m.appendLine(botLabelStyle.Render("bot") + "  " + string(msg))
		return m, m.waitForReply()

	case inboundHandledMsg:
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// dispatch runs one dispatcher turn off the UI goroutine; replies come
// back asynchronously through the outbound channel.
func (m consoleModel) dispatch(text string) tea.Cmd {
	return func() tea.Msg {
		m.handle(m.ctx, text)
		return inboundHandledMsg{}
	}
}

func (m *consoleModel) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.refreshTranscript()
}

func (m *consoleModel) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n\n"))
	m.viewport.GotoBottom()
}

func (m consoleModel) View() string {
	if !m.ready {
		return "starting…"
	}
	return m.viewport.View() + "\n" +
		m.input.View() + "\n\n" +
		hintStyle.Render(keyboardBar())
}

// keyboardBar flattens the reply keyboard into one hint line.
func keyboardBar() string {
	var labels []string
	for _, row := range bot.Keyboard() {
		labels = append(labels, row...)
	}
	return strings.Join(labels, "  ·  ") + "   (/cancel to abort, esc to quit)"
}

// RunConsole runs the interactive chat console until the user quits or
// ctx is cancelled.
func RunConsole(ctx context.Context, handle func(ctx context.Context, text string), sender *ChannelSender) error {
	model := newConsoleModel(ctx, handle, sender.ch)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
