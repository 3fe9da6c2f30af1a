// Package gateway implements the HTTP client used to notify counterpart
// banks of outbound transfers.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/banklink/banklink/internal/domain"
	"github.com/banklink/banklink/internal/infrastructure/metrics"
	"github.com/banklink/banklink/internal/usecase"
)

const transferPath = "/api/transfers/receive"

// HTTPGateway implements usecase.BankGateway over plain HTTP. Each bank
// record carries its own base URL; the client and timeout are shared.
type HTTPGateway struct {
	client *http.Client
	logger zerolog.Logger
}

// NewHTTPGateway creates a new HTTPGateway.
func NewHTTPGateway(timeout time.Duration, logger zerolog.Logger) *HTTPGateway {
	return &HTTPGateway{
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type transferRequest struct {
	DestinationNumber string `json:"destination_number"`
	Amount            string `json:"amount"`
	Description       string `json:"description"`
	OriginBank        string `json:"origin_bank"`
	SentAt            string `json:"sent_at"`
}

type transferResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// SendTransfer notifies the counterpart bank of an outbound transfer and
// returns its reference. Transport failures and non-2xx responses are
// wrapped in domain.ErrGatewayFailure.
func (g *HTTPGateway) SendTransfer(ctx context.Context, bank *domain.ExternalBank, notification usecase.GatewayNotification) (string, error) {
	payload := transferRequest{
		DestinationNumber: notification.DestinationNumber,
		Amount:            notification.Amount.String(),
		Description:       notification.Description,
		OriginBank:        notification.OriginBank,
		SentAt:            notification.SentAt.UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", domain.ErrGatewayFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, bank.BaseURL+transferPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", domain.ErrGatewayFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := g.client.Do(req)
	metrics.GatewayDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.GatewayRequests.WithLabelValues("error").Inc()
		g.logger.Warn().
			Err(err).
			Str("bank_id", bank.ID).
			Str("bank", bank.Name).
			Msg("gateway request failed")

		return "", fmt.Errorf("%w: %v", domain.ErrGatewayFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.GatewayRequests.WithLabelValues("rejected").Inc()

		// Read a bounded slice of the body for the log; counterparts are
		// not trusted to be well behaved.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		g.logger.Warn().
			Int("status", resp.StatusCode).
			Str("bank_id", bank.ID).
			Str("body", string(snippet)).
			Msg("gateway rejected transfer")

		return "", fmt.Errorf("%w: unexpected status %d", domain.ErrGatewayFailure, resp.StatusCode)
	}

	var result transferResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		metrics.GatewayRequests.WithLabelValues("error").Inc()

		return "", fmt.Errorf("%w: decode response: %v", domain.ErrGatewayFailure, err)
	}

	metrics.GatewayRequests.WithLabelValues("ok").Inc()

	return result.Reference, nil
}
