package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/nowopenyyc/nowopen/app/repository"
	"github.com/nowopenyyc/nowopen/internal/pkg/cache"
	"github.com/nowopenyyc/nowopen/internal/pkg/database"
	"github.com/nowopenyyc/nowopen/internal/pkg/directory"
	"github.com/nowopenyyc/nowopen/internal/pkg/metrics/counter"
)

const (
	htmlPageSize      = 24
	maxFeaturedOnHome = 4

	homeCacheKey = "page:home:html"
	homeCacheTTL = time.Minute
)

func directoryService() *directory.Service {
	return directory.NewServiceFromDB(database.GetDB())
}

// HandleHome renders the landing page: live featured placements first, then
// the newest consumer-facing businesses. The rendered page is cached briefly
// since it is identical for every visitor.
func HandleHome(c *fiber.Ctx) error {
	if cached, err := cache.Get(homeCacheKey); err == nil && cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(cached)
	}

	res, err := directoryService().Search(c.Context(), directory.QueryOptions{Limit: htmlPageSize})
	if err != nil {
		return respondDirectoryError(c, err)
	}

	featured, err := repository.GetGlobalFactory().GetFeaturedListingRepository().GetLive(time.Now(), maxFeaturedOnHome)
	if err != nil {
		log.Warnf("failed to load featured listings: %v", err)
	}

	if err := c.Render("businesses", fiber.Map{
		"Title":      "Now Open Calgary",
		"Featured":   featured,
		"Businesses": res.Items,
		"TotalCount": res.TotalCount,
		"HasMore":    res.HasMore,
		"Page":       1,
		"NextPage":   2,
		"Query":      "",
		"Community":  "",
		"Category":   "",
	}); err != nil {
		return err
	}

	if err := cache.Set(homeCacheKey, string(c.Response().Body()), homeCacheTTL); err != nil {
		log.Warnf("failed to cache home page: %v", err)
	}
	return nil
}

// HandleBusinessIndex renders the browsable, filterable business listing.
func HandleBusinessIndex(c *fiber.Ctx) error {
	opts := parseQueryOptions(c)
	opts.Limit = htmlPageSize

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	opts.Offset = (page - 1) * htmlPageSize

	res, err := directoryService().Search(c.Context(), opts)
	if err != nil {
		return respondDirectoryError(c, err)
	}

	return c.Render("businesses", fiber.Map{
		"Title":      "Businesses - Now Open Calgary",
		"Businesses": res.Items,
		"TotalCount": res.TotalCount,
		"HasMore":    res.HasMore,
		"Page":       page,
		"PrevPage":   page - 1,
		"NextPage":   page + 1,
		"Query":      opts.Query,
		"Community":  opts.Community,
		"Category":   opts.Category,
	})
}

// HandleBusinessShow renders a business detail page by slug and counts the
// view. Inactive businesses still resolve here so published URLs keep
// working; the page carries a notice instead of a 404.
func HandleBusinessShow(c *fiber.Ctx) error {
	business, err := directoryService().GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Business not found")
		}
		return respondDirectoryError(c, err)
	}

	countBusinessView(business.ID)

	return c.Render("business_detail", fiber.Map{
		"Title":    business.Name + " - Now Open Calgary",
		"Business": business,
	})
}

// countBusinessView records a detail-page view. The Redis counter is the fast
// path; when the cache is down the increment goes straight to the database.
func countBusinessView(businessID uint64) {
	if err := counter.AddBusinessView(businessID); err != nil {
		log.Warnf("view counter cache unavailable, writing through: %v", err)
		repo := repository.GetGlobalFactory().GetBusinessRepository()
		if err := repo.IncrementViewCount(businessID); err != nil {
			log.Errorf("failed to count view for business %d: %v", businessID, err)
		}
	}
}
