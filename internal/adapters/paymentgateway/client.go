// Package paymentgateway polls the external payment provider for the status of top-ups.
package paymentgateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	portssvc "github.com/SscSPs/print_quota_service/internal/core/ports/services"
	"golang.org/x/oauth2/clientcredentials"
)

// Config describes how to reach and authenticate against the provider.
type Config struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client implements portssvc.PaymentGateway over the provider's JSON status API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ portssvc.PaymentGateway = (*Client)(nil)

// NewClient builds a client whose requests carry an OAuth2 client-credentials token.
// The token is fetched lazily and refreshed by the oauth2 transport.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("payment gateway base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid payment gateway base URL: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}
	httpClient := cc.Client(ctx)
	httpClient.Timeout = cfg.Timeout

	return &Client{baseURL: strings.TrimRight(cfg.BaseURL, "/"), httpClient: httpClient}, nil
}

type statusResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
}

// CheckPayment fetches GET {base}/payments/{reference}. An unknown reference is reported
// as still pending, since the provider only learns about it once the user starts paying.
func (c *Client) CheckPayment(ctx context.Context, reference string) (*domain.GatewayPayment, error) {
	endpoint := c.baseURL + "/payments/" + url.PathEscape(reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &domain.GatewayPayment{Reference: reference, Status: domain.GatewayPending}, nil
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apperrors.NewAppError(resp.StatusCode, "payment gateway returned an error", fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(body))))
	}

	var body statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode payment gateway response: %w", err)
	}

	status := domain.GatewayPaymentStatus(strings.ToUpper(body.Status))
	switch status {
	case domain.GatewayPaid, domain.GatewayPending, domain.GatewayFailed:
	default:
		return nil, fmt.Errorf("payment gateway reported unknown status %q", body.Status)
	}
	return &domain.GatewayPayment{Reference: reference, Status: status, Amount: body.Amount}, nil
}
