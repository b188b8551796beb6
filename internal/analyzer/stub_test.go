package analyzer

import (
	"context"
	"sync"

	"github.com/BerylCAtieno/document-analyzer-api/internal/prompt"
)

// stubGateway returns a canned reply and records what it was sent.
type stubGateway struct {
	mu       sync.Mutex
	reply    string
	err      error
	calls    int
	messages []prompt.Message
	model    string
}

func (s *stubGateway) Generate(_ context.Context, messages []prompt.Message, model string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.messages = messages
	s.model = model
	return s.reply, s.err
}
