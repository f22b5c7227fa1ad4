package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nowopenyyc/nowopen/internal/pkg/env"
)

// ErrProviderUnavailable signals that the payment provider could not be
// reached or answered with an error status.
var ErrProviderUnavailable = errors.New("payment provider unavailable")

// CreateSessionRequest is the input for a new checkout session.
type CreateSessionRequest struct {
	BusinessID  uint64 `json:"business_id,string"`
	FeatureTier string `json:"feature_tier"`
	AmountCents int64  `json:"amount_cents"`
	SuccessURL  string `json:"success_url"`
	CancelURL   string `json:"cancel_url"`
}

// Provider is the payment-provider surface the checkout flow depends on.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, req CreateSessionRequest) (*CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (*PaymentStatus, error)
}

// Client talks to the hosted-checkout API of the payment provider.
type Client struct {
	APIBaseURL string
	APIKey     string

	HTTPClient *http.Client
}

// NewClientFromEnv builds a provider client from environment configuration.
func NewClientFromEnv() *Client {
	return &Client{
		APIBaseURL: strings.TrimRight(env.GetEnv("PAYMENT_API_BASE_URL", ""), "/"),
		APIKey:     strings.TrimSpace(env.GetEnv("PAYMENT_API_KEY", "")),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type sessionResponse struct {
	ID          string `json:"id"`
	RedirectURL string `json:"redirect_url"`
	Status      string `json:"status"`
	BusinessID  uint64 `json:"business_id,string"`
	FeatureTier string `json:"feature_tier"`
	PaymentRef  string `json:"payment_ref"`
}

// CreateCheckoutSession opens a hosted checkout session with the provider.
func (c *Client) CreateCheckoutSession(ctx context.Context, req CreateSessionRequest) (*CheckoutSession, error) {
	if strings.TrimSpace(c.APIBaseURL) == "" || strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("PAYMENT_API_BASE_URL/PAYMENT_API_KEY are not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", body, &resp); err != nil {
		return nil, err
	}
	if resp.ID == "" || resp.RedirectURL == "" {
		return nil, fmt.Errorf("provider returned incomplete session")
	}
	return &CheckoutSession{SessionID: resp.ID, RedirectURL: resp.RedirectURL}, nil
}

// GetSession verifies the payment state of an existing checkout session.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*PaymentStatus, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, errors.New("session id is required")
	}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodGet, "/v1/checkout/sessions/"+sessionID, nil, &resp); err != nil {
		return nil, err
	}

	status := &PaymentStatus{
		Paid:        resp.Status == "paid",
		BusinessID:  resp.BusinessID,
		FeatureTier: resp.FeatureTier,
		PaymentRef:  resp.PaymentRef,
	}
	if tier, err := ResolveTier(resp.FeatureTier); err == nil {
		status.Duration = tier.Duration
	}
	return status, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.APIBaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrProviderUnavailable, resp.StatusCode, respBody)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
