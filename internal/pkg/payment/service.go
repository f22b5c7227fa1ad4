package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/nowopenyyc/nowopen/app/models"
	"github.com/nowopenyyc/nowopen/app/repository"
)

// Service owns the featured-listing checkout flow: opening provider sessions,
// verifying payment state and applying webhook outcomes.
type Service struct {
	provider   Provider
	businesses repository.BusinessRepository
	listings   repository.FeaturedListingRepository
	events     repository.WebhookEventRepository
}

// NewService creates a payment service from injected collaborators.
func NewService(
	provider Provider,
	businesses repository.BusinessRepository,
	listings repository.FeaturedListingRepository,
	events repository.WebhookEventRepository,
) *Service {
	return &Service{
		provider:   provider,
		businesses: businesses,
		listings:   listings,
		events:     events,
	}
}

// CreateFeaturedCheckout validates the tier, opens a provider session and
// records a pending featured-listing order correlated by session id.
func (s *Service) CreateFeaturedCheckout(ctx context.Context, businessID uint64, tierName, successURL, cancelURL string) (*CheckoutSession, error) {
	tier, err := ResolveTier(tierName)
	if err != nil {
		return nil, err
	}
	if businessID == 0 {
		return nil, errors.New("business id is required")
	}
	if successURL == "" || cancelURL == "" {
		return nil, errors.New("success and cancel URLs are required")
	}

	if _, err := s.businesses.GetByID(businessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("business %d not found", businessID)
		}
		return nil, err
	}

	session, err := s.provider.CreateCheckoutSession(ctx, CreateSessionRequest{
		BusinessID:  businessID,
		FeatureTier: tier.Name,
		AmountCents: tier.AmountCents,
		SuccessURL:  successURL,
		CancelURL:   cancelURL,
	})
	if err != nil {
		return nil, err
	}

	listing := &models.FeaturedListing{
		BusinessID:  businessID,
		FeatureTier: tier.Name,
		AmountCents: tier.AmountCents,
		Status:      models.FeaturedStatusPending,
		SessionID:   session.SessionID,
	}
	if err := s.listings.Create(listing); err != nil {
		return nil, err
	}

	return session, nil
}

// VerifyPayment asks the provider for the current state of a session.
func (s *Service) VerifyPayment(ctx context.Context, sessionID string) (*PaymentStatus, error) {
	return s.provider.GetSession(ctx, sessionID)
}

// HandleWebhook authenticates a raw webhook callback, records it idempotently
// and applies its outcome. Redelivered events and event types the system does
// not act on are recorded but otherwise skipped.
func (s *Service) HandleWebhook(ctx context.Context, rawBody []byte, signatureHeader, webhookSecret string) (*Event, error) {
	event, err := VerifyAndParseWebhook(rawBody, signatureHeader, webhookSecret)
	if err != nil {
		return nil, err
	}

	created, stored, err := s.events.CreateIfNotExists(&models.PaymentWebhookEvent{
		ProviderEventID: event.ID,
		EventType:       event.Type,
		PayloadJSON:     event.RawJSON,
		SignatureValid:  true,
	})
	if err != nil {
		return nil, err
	}
	if !created {
		// Redelivery of an already-recorded event.
		return event, nil
	}

	processingErr := s.dispatch(ctx, event)
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	if err := s.events.MarkProcessed(stored.ID, errMsg); err != nil {
		// Keep the dispatch failure visible alongside the bookkeeping one.
		return event, errors.Join(processingErr, err)
	}
	return event, processingErr
}

func (s *Service) dispatch(_ context.Context, event *Event) error {
	if !event.IsActionable() {
		return nil
	}
	if event.SessionID == "" {
		return errors.New("event missing session id")
	}

	listing, err := s.listings.GetBySessionID(event.SessionID)
	if err != nil {
		return fmt.Errorf("lookup session %s: %w", event.SessionID, err)
	}

	switch event.Type {
	case EventCheckoutCompleted:
		tier, err := ResolveTier(listing.FeatureTier)
		if err != nil {
			return err
		}
		until := time.Now().Add(tier.Duration)
		listing.Status = models.FeaturedStatusPaid
		listing.PaymentRef = event.PaymentRef
		listing.FeaturedUntil = &until
		return s.listings.Update(listing)

	case EventPaymentFailed:
		listing.Status = models.FeaturedStatusFailed
		return s.listings.Update(listing)
	}
	return nil
}

// FormatAmount renders an amount in cents as dollars for display.
func FormatAmount(cents int64) string {
	return "$" + strconv.FormatFloat(float64(cents)/100, 'f', 2, 64)
}
