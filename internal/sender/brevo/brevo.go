package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
	"github.com/VivekRai08/Jain-Foam-website/pkg/httpclient"
)

// DefaultAPIURL is Brevo's transactional email endpoint.
const DefaultAPIURL = "https://api.brevo.com/v3/smtp/email"

// Config holds Brevo API settings.
type Config struct {
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendRequest struct {
	Sender      address   `json:"sender"`
	To          []address `json:"to"`
	ReplyTo     *address  `json:"replyTo,omitempty"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"htmlContent"`
	TextContent string    `json:"textContent,omitempty"`
}

type sendResponse struct {
	MessageID string `json:"messageId"`
}

// Sender delivers email through the Brevo HTTP API. Each Send is a single
// request; a circuit breaker stops calls while Brevo keeps failing.
type Sender struct {
	url    string
	client *httpclient.CircuitBreakerClient
	logger *slog.Logger
}

// New creates a Brevo sender.
func New(cfg Config, logger *slog.Logger) *Sender {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	hcfg := httpclient.DefaultConfig()
	hcfg.MaxRetries = 0
	if cfg.Timeout > 0 {
		hcfg.Timeout = cfg.Timeout
	}

	base := httpclient.New(hcfg).
		WithHeader("api-key", cfg.APIKey).
		WithHeader("Accept", "application/json")

	return &Sender{
		url:    cfg.APIURL,
		client: httpclient.NewCircuitBreakerClient(base, httpclient.DefaultCircuitBreakerConfig("brevo"), logger),
		logger: logger,
	}
}

// Name returns "brevo".
func (s *Sender) Name() string { return "brevo" }

// Send posts msg to Brevo. Any non-2xx response is an error.
func (s *Sender) Send(ctx context.Context, msg *domain.EmailMessage) error {
	req := sendRequest{
		Sender:      address{Email: msg.From.Email, Name: msg.From.Name},
		To:          make([]address, 0, len(msg.To)),
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
		TextContent: msg.Text,
	}
	for _, to := range msg.To {
		req.To = append(req.To, address{Email: to.Email, Name: to.Name})
	}
	if msg.ReplyTo != nil {
		req.ReplyTo = &address{Email: msg.ReplyTo.Email, Name: msg.ReplyTo.Name}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal brevo request: %w", err)
	}

	resp, err := s.client.Post(ctx, s.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("brevo send: %w", err)
	}
	if !httpclient.IsSuccess(resp.StatusCode) {
		return fmt.Errorf("brevo send: %w", httpclient.ParseResponseError(resp, "brevo"))
	}
	defer resp.Body.Close()

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		s.logger.WarnContext(ctx, "brevo accepted message but response was unreadable",
			slog.String("error", err.Error()),
		)
		return nil
	}
	s.logger.DebugContext(ctx, "brevo accepted message", slog.String("message_id", out.MessageID))
	return nil
}

// Status reports the breaker state, for logs and tests.
func (s *Sender) Status() string {
	return s.client.State().String()
}

