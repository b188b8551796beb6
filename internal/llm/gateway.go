package llm

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/document-analyzer-api/internal/prompt"
)

// Gateway sends a message sequence to a remote model and returns the text of
// the first completion.
type Gateway interface {
	Generate(ctx context.Context, messages []prompt.Message, model string) (string, error)
}

// GatewayError is the single failure type of a gateway call. StatusCode is
// set when the provider answered with a non-2xx status.
type GatewayError struct {
	Cause      string
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Cause, e.Err)
	}
	return e.Cause
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
