package payment

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidSignature signals that a webhook payload failed the authenticity
// check. The callback must be rejected before any processing happens.
var ErrInvalidSignature = errors.New("webhook signature verification failed")

// VerifyAndParseWebhook authenticates a raw webhook body and decodes it into
// a typed event. Events of types the system does not act on are still
// returned so they can be recorded; dispatch decides to skip them.
func VerifyAndParseWebhook(rawBody []byte, signatureHeader, webhookSecret string) (*Event, error) {
	if !VerifyWebhookSignature(rawBody, signatureHeader, webhookSecret) {
		return nil, ErrInvalidSignature
	}

	var event Event
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return nil, fmt.Errorf("decode webhook payload: %w", err)
	}
	if event.ID == "" {
		return nil, fmt.Errorf("webhook payload missing event id")
	}
	if event.Type == "" {
		return nil, fmt.Errorf("webhook payload missing event type")
	}
	event.RawJSON = string(rawBody)
	return &event, nil
}

// IsActionable reports whether the dispatcher acts on the event type.
func (e *Event) IsActionable() bool {
	switch e.Type {
	case EventCheckoutCompleted, EventPaymentFailed:
		return true
	default:
		return false
	}
}
