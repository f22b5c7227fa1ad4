package directory

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/nowopenyyc/nowopen/app/models"
)

// Store provides the DB operations used by the directory service.
type Store interface {
	// Find returns the page of businesses selected by opts and the total
	// number of matches. opts is already normalized by the service.
	Find(ctx context.Context, opts QueryOptions) ([]models.Business, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Business, error)
}

type gormStore struct {
	db *gorm.DB
}

// NewStore creates a directory store backed by GORM.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Find(ctx context.Context, opts QueryOptions) ([]models.Business, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Business{}).
		Where("active = ?", true)

	if !opts.IncludeNonConsumer {
		q = q.Where("is_consumer_facing = ?", true)
	}
	if opts.Query != "" {
		needle := "%" + escapeLike(opts.Query) + "%"
		q = q.Where("name LIKE ? OR address LIKE ?", needle, needle)
	}
	if opts.Community != "" {
		q = q.Where("community = ?", opts.Community)
	}
	if opts.Category != "" {
		q = q.Where("category = ?", opts.Category)
	}
	if opts.LicenseType != "" {
		q = q.Where("license_type = ?", opts.LicenseType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Secondary id ASC keeps pagination stable when sort values tie.
	order := fmt.Sprintf("%s %s, id ASC", opts.SortBy, sqlDirection(opts.SortOrder))

	var businesses []models.Business
	err := q.Order(order).Offset(opts.Offset).Limit(opts.Limit).Find(&businesses).Error
	if err != nil {
		return nil, 0, err
	}
	return businesses, total, nil
}

func (s *gormStore) GetBySlug(ctx context.Context, slug string) (*models.Business, error) {
	var business models.Business
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&business).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func sqlDirection(order string) string {
	if order == SortAsc {
		return "ASC"
	}
	return "DESC"
}

// escapeLike escapes LIKE wildcards so user text is matched literally.
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
