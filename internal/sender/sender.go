package sender

import (
	"context"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
)

// Sender delivers a composed email through one transport.
type Sender interface {
	Name() string
	Send(ctx context.Context, msg *domain.EmailMessage) error
}
