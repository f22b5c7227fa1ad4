package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return &Client{
		APIBaseURL: url,
		APIKey:     "sk_test_123",
		HTTPClient: http.DefaultClient,
	}
}

func TestClientCreateCheckoutSession(t *testing.T) {
	var gotAuth string
	var gotReq CreateSessionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]string{
			"id":           "cs_987",
			"redirect_url": "https://pay.test/cs_987",
		})
	}))
	defer srv.Close()

	session, err := newTestClient(srv.URL).CreateCheckoutSession(context.Background(), CreateSessionRequest{
		BusinessID:  42,
		FeatureTier: TierPremium,
		AmountCents: 4999,
		SuccessURL:  "https://nowopen.test/ok",
		CancelURL:   "https://nowopen.test/cancel",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk_test_123", gotAuth)
	assert.Equal(t, uint64(42), gotReq.BusinessID)
	assert.Equal(t, TierPremium, gotReq.FeatureTier)
	assert.Equal(t, "cs_987", session.SessionID)
	assert.Equal(t, "https://pay.test/cs_987", session.RedirectURL)
}

func TestClientCreateCheckoutSessionProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream error", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateCheckoutSession(context.Background(), CreateSessionRequest{})
	assert.True(t, errors.Is(err, ErrProviderUnavailable))
}

func TestClientCreateCheckoutSessionIncompleteResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "cs_1"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateCheckoutSession(context.Background(), CreateSessionRequest{})
	assert.Error(t, err)
}

func TestClientGetSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions/cs_55", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"id":           "cs_55",
			"status":       "paid",
			"business_id":  "7",
			"feature_tier": TierBasic,
			"payment_ref":  "pi_abc",
		})
	}))
	defer srv.Close()

	status, err := newTestClient(srv.URL).GetSession(context.Background(), "cs_55")
	require.NoError(t, err)

	assert.True(t, status.Paid)
	assert.Equal(t, uint64(7), status.BusinessID)
	assert.Equal(t, TierBasic, status.FeatureTier)
	assert.Equal(t, "pi_abc", status.PaymentRef)
	assert.Equal(t, 7*24*3600, int(status.Duration.Seconds()))
}

func TestClientGetSessionRequiresID(t *testing.T) {
	_, err := newTestClient("http://unused").GetSession(context.Background(), "")
	assert.Error(t, err)
}

func TestClientRequiresConfiguration(t *testing.T) {
	c := &Client{HTTPClient: http.DefaultClient}
	_, err := c.CreateCheckoutSession(context.Background(), CreateSessionRequest{})
	assert.Error(t, err)
}
