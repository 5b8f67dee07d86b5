package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resize primes the model so the viewport exists.
func resize(m consoleModel) consoleModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(consoleModel)
}

func TestConsoleModel_EnterDispatchesInput(t *testing.T) {
	var mu sync.Mutex
	var handled []string
	handle := func(_ context.Context, text string) {
		mu.Lock()
		defer mu.Unlock()
		handled = append(handled, text)
	}

	sender := NewChannelSender()
	m := resize(newConsoleModel(context.Background(), handle, sender.ch))

	m.input.SetValue("/list")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(consoleModel)
	require.NotNil(t, cmd)

	msg := cmd()
	assert.IsType(t, inboundHandledMsg{}, msg)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, handled, 1)
	assert.Equal(t, "/list", handled[0])
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.viewport.View(), "/list")
}

func TestConsoleModel_EmptyInputIgnored(t *testing.T) {
	sender := NewChannelSender()
	m := resize(newConsoleModel(context.Background(), func(context.Context, string) {}, sender.ch))

	m.input.SetValue("   ")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(consoleModel)

	assert.Nil(t, cmd)
	assert.Empty(t, m.lines)
}

func TestConsoleModel_BotReplyAppended(t *testing.T) {
	sender := NewChannelSender()
	m := resize(newConsoleModel(context.Background(), func(context.Context, string) {}, sender.ch))

	updated, cmd := m.Update(botReplyMsg("📭 No assignments yet."))
	m = updated.(consoleModel)

	require.NotNil(t, cmd, "listener should re-arm after a reply")
	assert.Contains(t, m.viewport.View(), "No assignments yet")
}

func TestConsoleModel_WaitForReplyDeliversSend(t *testing.T) {
	sender := NewChannelSender()
	m := newConsoleModel(context.Background(), func(context.Context, string) {}, sender.ch)

	require.NoError(t, sender.Send(context.Background(), "student-1", "hello"))

	msg := m.waitForReply()()
	require.IsType(t, botReplyMsg(""), msg)
	assert.Equal(t, "hello", string(msg.(botReplyMsg)))
}

func TestConsoleModel_ViewShowsKeyboardHints(t *testing.T) {
	sender := NewChannelSender()
	m := resize(newConsoleModel(context.Background(), func(context.Context, string) {}, sender.ch))

	view := m.View()
	assert.Contains(t, view, "Add assignment")
	assert.Contains(t, view, "/cancel")
}

func TestChannelSender_SendHonorsContext(t *testing.T) {
	sender := &ChannelSender{ch: make(chan string)} // unbuffered, nobody reading

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sender.Send(ctx, "student-1", "dropped")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriterSender_WritesMessages(t *testing.T) {
	var buf bytes.Buffer
	sender := NewWriterSender(&buf)

	require.NoError(t, sender.Send(context.Background(), "student-1", "first"))
	require.NoError(t, sender.Send(context.Background(), "student-1", "second"))

	assert.Equal(t, "first\n\nsecond\n\n", buf.String())
}

func TestRunPipe_FeedsNonEmptyLines(t *testing.T) {
	var mu sync.Mutex
	var handled []string
	handle := func(_ context.Context, text string) {
		mu.Lock()
		defer mu.Unlock()
		handled = append(handled, text)
	}

	input := strings.NewReader("/start\n\n   \n/list\n")
	require.NoError(t, RunPipe(context.Background(), handle, input))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/start", "/list"}, handled)
}

func TestRunPipe_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := strings.NewReader("/start\n/list\n")
	var calls int
	err := RunPipe(ctx, func(context.Context, string) { calls++ }, input)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}
