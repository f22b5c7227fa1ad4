package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/nowopenyyc/nowopen/internal/pkg/cache"
	"github.com/nowopenyyc/nowopen/internal/pkg/env"
	"github.com/nowopenyyc/nowopen/internal/pkg/sitemap"
)

const (
	sitemapCacheKey = "sitemap:xml"
	sitemapCacheTTL = 30 * time.Minute
)

// HandleSitemap serves the sitemap, cached in Redis so crawler bursts do not
// hammer the database.
func HandleSitemap(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")

	if cached, err := cache.Get(sitemapCacheKey); err == nil && cached != "" {
		return c.SendString(cached)
	}

	baseURL := env.GetEnv("PUBLIC_DOMAIN", "https://nowopencalgary.ca")
	out, err := sitemap.Generate(c.Context(), directoryService(), baseURL)
	if err != nil {
		return respondDirectoryError(c, err)
	}

	if err := cache.Set(sitemapCacheKey, string(out), sitemapCacheTTL); err != nil {
		log.Warnf("failed to cache sitemap: %v", err)
	}

	return c.Send(out)
}
