package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubClient struct {
	text string
	err  error
}

func (c stubClient) Advise(ctx context.Context, prompt string) (string, error) {
	return c.text, c.err
}

func TestService_Advise_RelaysText(t *testing.T) {
	svc := NewService(stubClient{text: "Do the reading first."}, nil)
	got := svc.Advise(context.Background(), "what now?")
	assert.Equal(t, "Do the reading first.", got)
}

func TestService_Advise_AbsorbsFailures(t *testing.T) {
	for _, err := range []error{ErrTimeout, ErrUnavailable, ErrBadResponse, errors.New("anything else")} {
		svc := NewService(stubClient{err: err}, nil)
		got := svc.Advise(context.Background(), "what now?")
		assert.Equal(t, FallbackMessage, got, "error %v must collapse into the fallback", err)
	}
}
