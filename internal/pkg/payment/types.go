package payment

import "time"

// Feature tiers purchasable for a listing.
const (
	TierBasic      = "basic"
	TierPremium    = "premium"
	TierEnterprise = "enterprise"
)

// Webhook event types the dispatcher acts on; anything else is ignored.
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventPaymentFailed     = "payment_intent.payment_failed"
)

// Tier describes one purchasable feature tier.
type Tier struct {
	Name        string
	Duration    time.Duration
	AmountCents int64
}

// CheckoutSession is the provider-side session a buyer is redirected to.
type CheckoutSession struct {
	SessionID   string `json:"session_id"`
	RedirectURL string `json:"redirect_url"`
}

// PaymentStatus is the provider's answer when a session is verified.
type PaymentStatus struct {
	Paid        bool
	BusinessID  uint64
	FeatureTier string
	Duration    time.Duration
	PaymentRef  string
}

// Event is a verified, parsed webhook callback.
type Event struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	SessionID   string `json:"session_id"`
	BusinessID  uint64 `json:"business_id,string"`
	FeatureTier string `json:"feature_tier"`
	PaymentRef  string `json:"payment_ref"`
	RawJSON     string `json:"-"`
}
