package directory

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nowopenyyc/nowopen/app/models"
)

// Service answers directory queries with stable filter/sort/pagination
// semantics shared by page rendering, the JSON API and sitemap generation.
type Service struct {
	store Store
}

// NewService creates a directory service from an injected store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// NewServiceFromDB creates a directory service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewStore(db))
}

// Search returns one page of businesses matching opts plus the total count.
// All filters are conjunctive and inactive businesses never match regardless
// of the supplied options.
func (s *Service) Search(ctx context.Context, opts QueryOptions) (*Result, error) {
	normalized, err := normalize(opts)
	if err != nil {
		return nil, err
	}

	items, total, err := s.store.Find(ctx, normalized)
	if err != nil {
		return nil, errors.Join(ErrStorageUnavailable, err)
	}
	if items == nil {
		items = []models.Business{}
	}

	return &Result{
		Items:      items,
		TotalCount: total,
		HasMore:    int64(normalized.Offset+len(items)) < total,
	}, nil
}

// GetBySlug looks a business up by its public slug. It bypasses the active
// filter on purpose: published URLs stay addressable after moderation.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.Business, error) {
	if slug == "" {
		return nil, &ValidationError{Field: "slug", Message: "must not be empty"}
	}
	business, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrStorageUnavailable, err)
	}
	return business, nil
}

// normalize applies defaults and rejects invalid enumerated values.
func normalize(opts QueryOptions) (QueryOptions, error) {
	if opts.Offset < 0 {
		return opts, &ValidationError{Field: "offset", Message: "must not be negative"}
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Limit > MaxLimit {
		opts.Limit = MaxLimit
	}

	switch opts.SortBy {
	case "":
		opts.SortBy = SortByFirstIssued
	case SortByFirstIssued, SortByName, SortByViewCount:
	default:
		return opts, &ValidationError{Field: "sort_by", Message: "must be one of first_issued_date, name, view_count"}
	}

	switch opts.SortOrder {
	case "":
		opts.SortOrder = SortDesc
	case SortAsc, SortDesc:
	default:
		return opts, &ValidationError{Field: "sort_order", Message: "must be asc or desc"}
	}

	return opts, nil
}
