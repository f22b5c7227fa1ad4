package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FeatureTierBasic      = "basic"
	FeatureTierPremium    = "premium"
	FeatureTierEnterprise = "enterprise"
)

const (
	FeaturedStatusPending = "pending"
	FeaturedStatusPaid    = "paid"
	FeaturedStatusFailed  = "failed"
)

// FeaturedListing is a paid, time-boxed promotional placement for a business,
// correlated to the payment provider via the checkout session id.
type FeaturedListing struct {
	ID            uint64     `gorm:"primaryKey" json:"id"`
	OrderRef      string     `gorm:"type:varchar(36);not null;uniqueIndex" json:"order_ref"`
	BusinessID    uint64     `gorm:"not null;index" json:"business_id"`
	Business      Business   `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
	FeatureTier   string     `gorm:"type:varchar(20);not null" json:"feature_tier"`
	AmountCents   int64      `gorm:"not null" json:"amount_cents"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	SessionID     string     `gorm:"type:varchar(191);not null;uniqueIndex" json:"session_id"`
	PaymentRef    string     `gorm:"type:varchar(191)" json:"payment_ref"`
	FeaturedUntil *time.Time `gorm:"type:timestamp;default:null" json:"featured_until,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the FeaturedListing model
func (FeaturedListing) TableName() string {
	return "featured_listings"
}

// BeforeCreate assigns the internal order reference used in support
// correspondence and receipts.
func (f *FeaturedListing) BeforeCreate(tx *gorm.DB) error {
	if f.OrderRef == "" {
		f.OrderRef = uuid.New().String()
	}
	return nil
}

// IsLive reports whether the placement is paid for and not yet expired.
func (f *FeaturedListing) IsLive(now time.Time) bool {
	return f.Status == FeaturedStatusPaid && f.FeaturedUntil != nil && f.FeaturedUntil.After(now)
}
