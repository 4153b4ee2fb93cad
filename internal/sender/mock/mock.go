package mock

import (
	"context"
	"sync"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
)

// Sender records messages and returns Err from every Send.
type Sender struct {
	Err error

	mu   sync.Mutex
	sent []*domain.EmailMessage
}

// NewSender creates a recording sender that fails with err when non-nil.
func NewSender(err error) *Sender {
	return &Sender{Err: err}
}

// Name returns "mock".
func (s *Sender) Name() string { return "mock" }

// Send records msg.
func (s *Sender) Send(_ context.Context, msg *domain.EmailMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return s.Err
}

// Sent returns the recorded messages.
func (s *Sender) Sent() []*domain.EmailMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.EmailMessage, len(s.sent))
	copy(out, s.sent)
	return out
}
