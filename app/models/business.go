package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Business represents a licensed business listed in the directory.
type Business struct {
	ID               uint64     `gorm:"primaryKey" json:"id"`
	ExternalID       string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"external_id" validate:"required,max=100"`
	Name             string     `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=1,max=255"`
	Address          string     `gorm:"type:varchar(255)" json:"address"`
	Community        *string    `gorm:"type:varchar(100);index" json:"community"`
	LicenseType      string     `gorm:"type:varchar(100);index" json:"license_type"`
	FirstIssuedDate  time.Time  `gorm:"type:date;index" json:"first_issued_date"`
	Slug             string     `gorm:"type:varchar(80) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"slug" validate:"required,min=1,max=80"`
	Category         *string    `gorm:"type:varchar(100);index" json:"category"`
	IsConsumerFacing bool       `gorm:"default:true;index" json:"is_consumer_facing"`
	Latitude         *float64   `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude        *float64   `gorm:"type:decimal(11,8)" json:"longitude"`
	ViewCount        int        `gorm:"default:0" json:"view_count"`
	Active           bool       `gorm:"default:true;index" json:"active"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Business model
func (Business) TableName() string {
	return "businesses"
}

func (b *Business) Validate() error {
	v := validator.New()
	return v.Struct(b)
}

// IncrementViewCount bumps the detail-page view counter directly in storage.
// The hot path goes through the Redis-backed counter package instead; this is
// the fallback when the cache is unavailable.
func (b *Business) IncrementViewCount(db *gorm.DB) error {
	return db.Model(b).Update("view_count", gorm.Expr("view_count + 1")).Error
}

// FindBusinessBySlug finds a business by its slug. It deliberately does not
// filter on Active: inactive listings stay addressable by their public URL
// even though they are excluded from every search/listing result.
func FindBusinessBySlug(db *gorm.DB, slug string) (*Business, error) {
	var business Business
	err := db.Where("slug = ?", slug).First(&business).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

// FindBusinessByExternalID finds a business by the municipal source identifier.
func FindBusinessByExternalID(db *gorm.DB, externalID string) (*Business, error) {
	var business Business
	err := db.Where("external_id = ?", externalID).First(&business).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}
