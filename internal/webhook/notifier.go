// Package webhook posts quote lifecycle events to an external endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/adar-commits/quotes/internal/domain"
	"go.uber.org/zap"
)

type Notifier struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// New returns a notifier posting to the given URL. Returns nil when no
// URL is configured; callers treat a nil notifier as "notifications off".
func New(url string, timeout time.Duration, logger *zap.Logger) *Notifier {
	if url == "" {
		return nil
	}
	return &Notifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// signedEvent is the wire format of the signed-quote notification
type signedEvent struct {
	Event    string        `json:"event"`
	SignedAt time.Time     `json:"signedAt"`
	Quote    *domain.Quote `json:"quote"`
}

// QuoteSigned posts the full quote graph to the configured endpoint.
// Non-2xx responses are reported as errors; the caller decides whether
// the failure is fatal.
func (n *Notifier) QuoteSigned(ctx context.Context, quote *domain.Quote) error {
	body, err := json.Marshal(signedEvent{
		Event:    "quote.signed",
		SignedAt: time.Now().UTC(),
		Quote:    quote,
	})
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	n.logger.Debug("webhook delivered",
		zap.String("event", "quote.signed"),
		zap.String("public_id", quote.PublicID.String()))
	return nil
}
