package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/avetisov/deadlinebot/internal/bot"
)

var _ bot.Sender = (*WriterSender)(nil)

// WriterSender implements bot.Sender by printing outbound messages to a
// writer. Used in pipe mode and shared between the dispatcher and the
// reminder sweeper, so writes are serialized.
type WriterSender struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSender(w io.Writer) *WriterSender {
	return &WriterSender{w: w}
}

func (s *WriterSender) Send(_ context.Context, owner, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, "%s\n\n", text)
	return err
}

// RunPipe reads input lines until EOF or ctx cancellation and feeds
// each non-empty line through the dispatcher. Replies go out via the
// WriterSender wired into the dispatcher, not through this function.
func RunPipe(ctx context.Context, handle func(ctx context.Context, text string), r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		handle(ctx, line)
	}
	return scanner.Err()
}
