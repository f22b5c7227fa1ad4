package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nowopenyyc/nowopen/internal/pkg/directory"
)

// parseQueryOptions reads the directory query contract from request
// parameters. Unknown enum values are passed through so the service rejects
// them explicitly instead of masking caller bugs.
func parseQueryOptions(c *fiber.Ctx) directory.QueryOptions {
	return directory.QueryOptions{
		Query:              c.Query("q"),
		Community:          c.Query("community"),
		Category:           c.Query("category"),
		LicenseType:        c.Query("license_type"),
		IncludeNonConsumer: c.QueryBool("include_non_consumer"),
		Limit:              c.QueryInt("limit"),
		Offset:             c.QueryInt("offset"),
		SortBy:             c.Query("sort_by"),
		SortOrder:          c.Query("sort_order"),
	}
}

// respondDirectoryError maps the directory error taxonomy onto HTTP statuses.
func respondDirectoryError(c *fiber.Ctx, err error) error {
	var ve *directory.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": ve.Error(),
		})
	case errors.Is(err, directory.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "not_found",
			"message": "Business not found",
		})
	case errors.Is(err, directory.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "storage_unavailable",
			"message": "The directory is temporarily unavailable, try again shortly",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal_server_error",
			"message": "Unexpected error",
		})
	}
}
