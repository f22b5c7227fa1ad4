// Package ingest syncs municipal business-licence records into the directory.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/nowopenyyc/nowopen/app/models"
	"github.com/nowopenyyc/nowopen/app/repository"
	"github.com/nowopenyyc/nowopen/internal/pkg/opendata"
	"github.com/nowopenyyc/nowopen/internal/pkg/slug"
)

// Source pages through the remote open-data endpoint.
type Source interface {
	FetchPage(ctx context.Context, offset int) ([]opendata.RawLicense, error)
	PageSize() int
}

// Failure describes one record that could not be ingested.
type Failure struct {
	ExternalID string `json:"external_id"`
	Reason     string `json:"reason"`
}

// Stats summarizes one sync run.
type Stats struct {
	Processed int           `json:"processed"`
	Created   int           `json:"created"`
	Updated   int           `json:"updated"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Failures  []Failure     `json:"failures,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// Service pulls licence pages sequentially and upserts each record by its
// external id. Pages are fetched one at a time on purpose: the run executes
// inside a bounded job window and predictable runtime beats throughput here.
type Service struct {
	source     Source
	businesses repository.BusinessRepository
	maxPages   int
}

// NewService creates an ingest service.
func NewService(source Source, businesses repository.BusinessRepository, maxPages int) *Service {
	if maxPages <= 0 {
		maxPages = 20
	}
	return &Service{
		source:     source,
		businesses: businesses,
		maxPages:   maxPages,
	}
}

// Run executes one full sync. A malformed record is collected as a failure
// without aborting the batch; a page fetch failure ends the run early but
// keeps everything already upserted (each upsert is its own commit unit).
// Re-running against an unchanged source creates nothing.
func (s *Service) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}

	log.Infof("[Ingest] Starting sync (page size %d, max pages %d)", s.source.PageSize(), s.maxPages)

	offset := 0
	for page := 0; page < s.maxPages; page++ {
		records, err := s.source.FetchPage(ctx, offset)
		if err != nil {
			stats.Duration = time.Since(start)
			return stats, fmt.Errorf("fetch page at offset %d: %w", offset, err)
		}

		for _, raw := range records {
			stats.Processed++
			if err := s.upsertRecord(raw, stats); err != nil {
				stats.Failed++
				stats.Failures = append(stats.Failures, Failure{
					ExternalID: raw.LicenceNumber,
					Reason:     err.Error(),
				})
			}
		}

		if len(records) < s.source.PageSize() {
			break
		}
		offset += len(records)
	}

	stats.Duration = time.Since(start)
	log.Infof("[Ingest] Sync completed: processed=%d created=%d updated=%d skipped=%d failed=%d in %s",
		stats.Processed, stats.Created, stats.Updated, stats.Skipped, stats.Failed, stats.Duration)

	return stats, nil
}

func (s *Service) upsertRecord(raw opendata.RawLicense, stats *Stats) error {
	lic, err := opendata.Map(raw)
	if err != nil {
		return err
	}

	existing, err := s.businesses.GetByExternalID(lic.ExternalID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup external id: %w", err)
	}

	if existing != nil {
		changed := applyUpdates(existing, lic)
		if !changed {
			stats.Skipped++
			return nil
		}
		if err := s.businesses.Update(existing); err != nil {
			return fmt.Errorf("update: %w", err)
		}
		stats.Updated++
		return nil
	}

	newSlug, err := slug.MakeUnique(lic.Name, lic.ExternalID, s.businesses.SlugExists)
	if err != nil {
		return fmt.Errorf("derive slug: %w", err)
	}

	business := &models.Business{
		ExternalID:       lic.ExternalID,
		Name:             lic.Name,
		Address:          lic.Address,
		Community:        optional(lic.Community),
		LicenseType:      lic.LicenseType,
		FirstIssuedDate:  lic.FirstIssued,
		Slug:             newSlug,
		Category:         Categorize(lic.LicenseType),
		IsConsumerFacing: IsConsumerFacing(lic.LicenseType),
		Latitude:         lic.Latitude,
		Longitude:        lic.Longitude,
		Active:           true,
	}
	if err := business.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if err := s.businesses.Create(business); err != nil {
		return fmt.Errorf("create: %w", err)
	}
	stats.Created++
	return nil
}

// applyUpdates copies refreshed source fields onto an existing record and
// reports whether anything changed. Slug, first-issued date, view count and
// the moderation flag are never touched by sync.
func applyUpdates(existing *models.Business, lic *opendata.License) bool {
	changed := false

	if existing.Name != lic.Name {
		existing.Name = lic.Name
		changed = true
	}
	if existing.Address != lic.Address {
		existing.Address = lic.Address
		changed = true
	}
	if !equalOptional(existing.Community, optional(lic.Community)) {
		existing.Community = optional(lic.Community)
		changed = true
	}
	if existing.LicenseType != lic.LicenseType {
		existing.LicenseType = lic.LicenseType
		existing.Category = Categorize(lic.LicenseType)
		existing.IsConsumerFacing = IsConsumerFacing(lic.LicenseType)
		changed = true
	}
	if !equalFloatPtr(existing.Latitude, lic.Latitude) || !equalFloatPtr(existing.Longitude, lic.Longitude) {
		existing.Latitude = lic.Latitude
		existing.Longitude = lic.Longitude
		changed = true
	}

	return changed
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
