package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nowopenyyc/nowopen/internal/pkg/directory"
)

// HandleAPIBusinessSearch serves the JSON search endpoint. It exposes the
// same query contract as the rendered listing pages.
func HandleAPIBusinessSearch(c *fiber.Ctx) error {
	res, err := directoryService().Search(c.Context(), parseQueryOptions(c))
	if err != nil {
		return respondDirectoryError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

// HandleAPIBusinessShow serves a single business as JSON, looked up by slug.
func HandleAPIBusinessShow(c *fiber.Ctx) error {
	business, err := directoryService().GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "not_found",
				"message": "Business not found",
			})
		}
		return respondDirectoryError(c, err)
	}

	countBusinessView(business.ID)
	return c.Status(fiber.StatusOK).JSON(business)
}
