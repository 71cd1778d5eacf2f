package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// APISender posts messages to a transactional-email HTTP API. An empty API
// key means the sender is unconfigured; sends then log and succeed as no-ops
// so a missing credential never fails an order.
type APISender struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   zerolog.Logger
}

// NewAPISender creates a sender for the given API endpoint.
func NewAPISender(endpoint, apiKey string, client *http.Client, logger zerolog.Logger) *APISender {
	if client == nil {
		client = http.DefaultClient
	}
	return &APISender{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   client,
		logger:   logger.With().Str("component", "mail-sender").Logger(),
	}
}

type apiPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Send implements Sender.
func (s *APISender) Send(ctx context.Context, msg Message) error {
	if s.apiKey == "" {
		s.logger.Warn().Str("to", msg.To).Msg("mail API key not configured, skipping send")
		return nil
	}

	body, err := json.Marshal(apiPayload{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("failed to encode mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("mail API returned status %d", resp.StatusCode)
	}

	return nil
}
