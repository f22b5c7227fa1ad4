package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/nowopenyyc/nowopen/app/models"
)

// BusinessRepository defines the interface for business-related database operations
type BusinessRepository interface {
	Create(business *models.Business) error
	GetByID(id uint64) (*models.Business, error)
	GetBySlug(slug string) (*models.Business, error)
	GetByExternalID(externalID string) (*models.Business, error)
	Update(business *models.Business) error
	List(offset, limit int) ([]models.Business, error)
	Count() (int64, error)
	SlugExists(slug string) (bool, error)
	SetActive(id uint64, active bool) error
	IncrementViewCount(id uint64) error
}

// FeaturedListingRepository defines the interface for featured listing operations
type FeaturedListingRepository interface {
	Create(listing *models.FeaturedListing) error
	GetBySessionID(sessionID string) (*models.FeaturedListing, error)
	Update(listing *models.FeaturedListing) error
	GetLive(now time.Time, limit int) ([]models.FeaturedListing, error)
}

// WebhookEventRepository defines the interface for payment webhook event persistence
type WebhookEventRepository interface {
	CreateIfNotExists(event *models.PaymentWebhookEvent) (bool, *models.PaymentWebhookEvent, error)
	MarkProcessed(id uint64, processingError string) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	Business        BusinessRepository
	FeaturedListing FeaturedListingRepository
	WebhookEvent    WebhookEventRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Business:        NewBusinessRepository(db),
		FeaturedListing: NewFeaturedListingRepository(db),
		WebhookEvent:    NewWebhookEventRepository(db),
	}
}
