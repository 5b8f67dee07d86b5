package bot

import "context"

// Sender is the outbound half of the chat transport. Send failures are
// the transport's concern; the core logs them and never retries.
type Sender interface {
	Send(ctx context.Context, owner, text string) error
}
