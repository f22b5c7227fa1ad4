package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/nowopenyyc/nowopen/app/models"
)

type fakeProvider struct {
	lastReq CreateSessionRequest
	session *CheckoutSession
	status  *PaymentStatus
	err     error
}

func (f *fakeProvider) CreateCheckoutSession(_ context.Context, req CreateSessionRequest) (*CheckoutSession, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeProvider) GetSession(_ context.Context, sessionID string) (*PaymentStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.status, nil
}

type fakeBusinessRepo struct {
	businesses map[uint64]*models.Business
}

func (f *fakeBusinessRepo) Create(*models.Business) error { return nil }
func (f *fakeBusinessRepo) GetByID(id uint64) (*models.Business, error) {
	if b, ok := f.businesses[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeBusinessRepo) GetBySlug(string) (*models.Business, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeBusinessRepo) GetByExternalID(string) (*models.Business, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeBusinessRepo) Update(*models.Business) error             { return nil }
func (f *fakeBusinessRepo) List(int, int) ([]models.Business, error)  { return nil, nil }
func (f *fakeBusinessRepo) Count() (int64, error)                     { return 0, nil }
func (f *fakeBusinessRepo) SlugExists(string) (bool, error)           { return false, nil }
func (f *fakeBusinessRepo) SetActive(uint64, bool) error              { return nil }
func (f *fakeBusinessRepo) IncrementViewCount(uint64) error           { return nil }

type fakeListingRepo struct {
	bySession map[string]*models.FeaturedListing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{bySession: make(map[string]*models.FeaturedListing)}
}

func (f *fakeListingRepo) Create(l *models.FeaturedListing) error {
	copied := *l
	f.bySession[l.SessionID] = &copied
	return nil
}

func (f *fakeListingRepo) GetBySessionID(sessionID string) (*models.FeaturedListing, error) {
	if l, ok := f.bySession[sessionID]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeListingRepo) Update(l *models.FeaturedListing) error {
	copied := *l
	f.bySession[l.SessionID] = &copied
	return nil
}

func (f *fakeListingRepo) GetLive(time.Time, int) ([]models.FeaturedListing, error) {
	return nil, nil
}

type fakeEventRepo struct {
	seen      map[string]*models.PaymentWebhookEvent
	processed map[uint64]string
	nextID    uint64
	markErr   error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		seen:      make(map[string]*models.PaymentWebhookEvent),
		processed: make(map[uint64]string),
		nextID:    1,
	}
}

func (f *fakeEventRepo) CreateIfNotExists(e *models.PaymentWebhookEvent) (bool, *models.PaymentWebhookEvent, error) {
	if stored, ok := f.seen[e.ProviderEventID]; ok {
		return false, stored, nil
	}
	e.ID = f.nextID
	f.nextID++
	copied := *e
	f.seen[e.ProviderEventID] = &copied
	return true, &copied, nil
}

func (f *fakeEventRepo) MarkProcessed(id uint64, processingError string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.processed[id] = processingError
	return nil
}

func newTestService(provider *fakeProvider, listings *fakeListingRepo, events *fakeEventRepo) *Service {
	businesses := &fakeBusinessRepo{businesses: map[uint64]*models.Business{
		42: {ID: 42, Name: "Café & Co.", Slug: "cafe-and-co", Active: true},
	}}
	return NewService(provider, businesses, listings, events)
}

func TestCreateFeaturedCheckout(t *testing.T) {
	provider := &fakeProvider{session: &CheckoutSession{SessionID: "cs_123", RedirectURL: "https://pay.example/cs_123"}}
	listings := newFakeListingRepo()
	svc := newTestService(provider, listings, newFakeEventRepo())

	session, err := svc.CreateFeaturedCheckout(context.Background(), 42, "premium", "https://nowopen.example/ok", "https://nowopen.example/cancel")
	assert.NoError(t, err)
	assert.Equal(t, "cs_123", session.SessionID)
	assert.Equal(t, int64(4999), provider.lastReq.AmountCents)

	listing, err := listings.GetBySessionID("cs_123")
	assert.NoError(t, err)
	assert.Equal(t, models.FeaturedStatusPending, listing.Status)
	assert.Equal(t, uint64(42), listing.BusinessID)
	assert.Equal(t, TierPremium, listing.FeatureTier)
}

func TestCreateFeaturedCheckout_Validation(t *testing.T) {
	provider := &fakeProvider{session: &CheckoutSession{SessionID: "cs_1", RedirectURL: "https://pay.example/cs_1"}}
	svc := newTestService(provider, newFakeListingRepo(), newFakeEventRepo())
	ctx := context.Background()

	_, err := svc.CreateFeaturedCheckout(ctx, 42, "platinum", "https://s", "https://c")
	assert.Error(t, err, "unknown tier must be rejected")

	_, err = svc.CreateFeaturedCheckout(ctx, 0, "basic", "https://s", "https://c")
	assert.Error(t, err, "missing business id must be rejected")

	_, err = svc.CreateFeaturedCheckout(ctx, 42, "basic", "", "https://c")
	assert.Error(t, err, "missing urls must be rejected")

	_, err = svc.CreateFeaturedCheckout(ctx, 99, "basic", "https://s", "https://c")
	assert.Error(t, err, "unknown business must be rejected")
}

func TestHandleWebhook_CompletedActivatesListing(t *testing.T) {
	listings := newFakeListingRepo()
	listings.Create(&models.FeaturedListing{
		BusinessID:  42,
		FeatureTier: TierBasic,
		AmountCents: 1999,
		Status:      models.FeaturedStatusPending,
		SessionID:   "cs_123",
	})
	svc := newTestService(&fakeProvider{}, listings, newFakeEventRepo())

	secret := "whsec-test"
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","session_id":"cs_123","payment_ref":"pi_9"}`)

	event, err := svc.HandleWebhook(context.Background(), payload, signPayload(payload, secret), secret)
	assert.NoError(t, err)
	assert.Equal(t, EventCheckoutCompleted, event.Type)

	listing, _ := listings.GetBySessionID("cs_123")
	assert.Equal(t, models.FeaturedStatusPaid, listing.Status)
	assert.Equal(t, "pi_9", listing.PaymentRef)
	if assert.NotNil(t, listing.FeaturedUntil) {
		expected := time.Now().Add(7 * 24 * time.Hour)
		assert.WithinDuration(t, expected, *listing.FeaturedUntil, time.Minute)
	}
}

func TestHandleWebhook_FailedMarksListing(t *testing.T) {
	listings := newFakeListingRepo()
	listings.Create(&models.FeaturedListing{
		BusinessID:  42,
		FeatureTier: TierBasic,
		Status:      models.FeaturedStatusPending,
		SessionID:   "cs_123",
	})
	svc := newTestService(&fakeProvider{}, listings, newFakeEventRepo())

	secret := "whsec-test"
	payload := []byte(`{"id":"evt_2","type":"payment_intent.payment_failed","session_id":"cs_123"}`)

	_, err := svc.HandleWebhook(context.Background(), payload, signPayload(payload, secret), secret)
	assert.NoError(t, err)

	listing, _ := listings.GetBySessionID("cs_123")
	assert.Equal(t, models.FeaturedStatusFailed, listing.Status)
	assert.Nil(t, listing.FeaturedUntil)
}

func TestHandleWebhook_RedeliveryIsIdempotent(t *testing.T) {
	listings := newFakeListingRepo()
	listings.Create(&models.FeaturedListing{
		BusinessID:  42,
		FeatureTier: TierBasic,
		Status:      models.FeaturedStatusPending,
		SessionID:   "cs_123",
	})
	events := newFakeEventRepo()
	svc := newTestService(&fakeProvider{}, listings, events)

	secret := "whsec-test"
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","session_id":"cs_123","payment_ref":"pi_9"}`)
	sig := signPayload(payload, secret)

	_, err := svc.HandleWebhook(context.Background(), payload, sig, secret)
	assert.NoError(t, err)
	first, _ := listings.GetBySessionID("cs_123")

	_, err = svc.HandleWebhook(context.Background(), payload, sig, secret)
	assert.NoError(t, err)
	second, _ := listings.GetBySessionID("cs_123")

	assert.Equal(t, first.FeaturedUntil, second.FeaturedUntil, "redelivery must not extend the placement")
	assert.Len(t, events.seen, 1)
}

func TestHandleWebhook_BadSignatureHasNoSideEffects(t *testing.T) {
	listings := newFakeListingRepo()
	listings.Create(&models.FeaturedListing{
		BusinessID:  42,
		FeatureTier: TierBasic,
		Status:      models.FeaturedStatusPending,
		SessionID:   "cs_123",
	})
	events := newFakeEventRepo()
	svc := newTestService(&fakeProvider{}, listings, events)

	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","session_id":"cs_123"}`)

	_, err := svc.HandleWebhook(context.Background(), payload, "deadbeef", "whsec-test")
	assert.ErrorIs(t, err, ErrInvalidSignature)

	listing, _ := listings.GetBySessionID("cs_123")
	assert.Equal(t, models.FeaturedStatusPending, listing.Status)
	assert.Len(t, events.seen, 0, "rejected callbacks must not be recorded")
}

func TestHandleWebhook_MarkProcessedFailureKeepsDispatchError(t *testing.T) {
	events := newFakeEventRepo()
	events.markErr = errors.New("events table write failed")
	// No listing for the session, so dispatch fails with a lookup error.
	svc := newTestService(&fakeProvider{}, newFakeListingRepo(), events)

	secret := "whsec-test"
	payload := []byte(`{"id":"evt_4","type":"checkout.session.completed","session_id":"cs_missing"}`)

	_, err := svc.HandleWebhook(context.Background(), payload, signPayload(payload, secret), secret)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "dispatch failure must stay visible")
	assert.ErrorIs(t, err, events.markErr, "bookkeeping failure must stay visible")
}

func TestHandleWebhook_IgnoredEventIsRecordedButSkipped(t *testing.T) {
	listings := newFakeListingRepo()
	events := newFakeEventRepo()
	svc := newTestService(&fakeProvider{}, listings, events)

	secret := "whsec-test"
	payload := []byte(`{"id":"evt_3","type":"invoice.created"}`)

	_, err := svc.HandleWebhook(context.Background(), payload, signPayload(payload, secret), secret)
	assert.NoError(t, err)
	assert.Len(t, events.seen, 1)
}

func TestResolveTier(t *testing.T) {
	for name, wantDuration := range map[string]time.Duration{
		"basic":      7 * 24 * time.Hour,
		"premium":    14 * 24 * time.Hour,
		"enterprise": 30 * 24 * time.Hour,
	} {
		tier, err := ResolveTier(name)
		assert.NoError(t, err)
		assert.Equal(t, wantDuration, tier.Duration)
	}

	_, err := ResolveTier("gold")
	assert.Error(t, err)

	tier, err := ResolveTier("  Premium ")
	assert.NoError(t, err)
	assert.Equal(t, TierPremium, tier.Name)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$19.99", FormatAmount(1999))
	assert.Equal(t, "$0.00", FormatAmount(0))
	assert.Equal(t, "$100.00", FormatAmount(10000))
}
