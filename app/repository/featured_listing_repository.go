package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/nowopenyyc/nowopen/app/models"
)

// featuredListingRepository implements the FeaturedListingRepository interface
type featuredListingRepository struct {
	db *gorm.DB
}

// NewFeaturedListingRepository creates a new featured listing repository instance
func NewFeaturedListingRepository(db *gorm.DB) FeaturedListingRepository {
	return &featuredListingRepository{db: db}
}

// Create records a new pending featured listing order
func (r *featuredListingRepository) Create(listing *models.FeaturedListing) error {
	return r.db.Create(listing).Error
}

// GetBySessionID retrieves a featured listing by its checkout session id
func (r *featuredListingRepository) GetBySessionID(sessionID string) (*models.FeaturedListing, error) {
	var listing models.FeaturedListing
	err := r.db.Where("session_id = ?", sessionID).First(&listing).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// Update updates an existing featured listing
func (r *featuredListingRepository) Update(listing *models.FeaturedListing) error {
	return r.db.Save(listing).Error
}

// GetLive returns paid placements that have not expired yet, soonest to expire last
func (r *featuredListingRepository) GetLive(now time.Time, limit int) ([]models.FeaturedListing, error) {
	var listings []models.FeaturedListing
	err := r.db.Preload("Business").
		Where("status = ? AND featured_until > ?", models.FeaturedStatusPaid, now).
		Order("featured_until DESC").Limit(limit).Find(&listings).Error
	return listings, err
}
