package repository

import (
	"gorm.io/gorm"

	"github.com/nowopenyyc/nowopen/app/models"
)

// businessRepository implements the BusinessRepository interface
type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository creates a new business repository instance
func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

// Create creates a new business in the database
func (r *businessRepository) Create(business *models.Business) error {
	return r.db.Create(business).Error
}

// GetByID retrieves a business by its ID
func (r *businessRepository) GetByID(id uint64) (*models.Business, error) {
	var business models.Business
	err := r.db.First(&business, id).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

// GetBySlug retrieves a business by its slug. Inactive businesses are still
// returned so published detail-page URLs keep working after moderation.
func (r *businessRepository) GetBySlug(slug string) (*models.Business, error) {
	var business models.Business
	err := r.db.Where("slug = ?", slug).First(&business).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

// GetByExternalID retrieves a business by the municipal source identifier
func (r *businessRepository) GetByExternalID(externalID string) (*models.Business, error) {
	var business models.Business
	err := r.db.Where("external_id = ?", externalID).First(&business).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

// Update updates an existing business in the database
func (r *businessRepository) Update(business *models.Business) error {
	return r.db.Save(business).Error
}

// List retrieves businesses with pagination, newest licenses first
func (r *businessRepository) List(offset, limit int) ([]models.Business, error) {
	var businesses []models.Business
	err := r.db.Order("first_issued_date DESC, id ASC").
		Offset(offset).Limit(limit).Find(&businesses).Error
	return businesses, err
}

// Count returns the total number of businesses
func (r *businessRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Business{}).Count(&count).Error
	return count, err
}

// SlugExists checks if a slug is already taken
func (r *businessRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Business{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// SetActive toggles the public visibility flag for a business
func (r *businessRepository) SetActive(id uint64, active bool) error {
	return r.db.Model(&models.Business{}).Where("id = ?", id).
		Update("active", active).Error
}

// IncrementViewCount bumps the stored view counter for a business
func (r *businessRepository) IncrementViewCount(id uint64) error {
	return r.db.Model(&models.Business{}).Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}
