package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/nowopenyyc/nowopen/internal/pkg/jobs"
)

// HandleAdminSync triggers one open-data sync run and returns its stats.
// Protected by the admin API-key middleware in the router.
func HandleAdminSync(c *fiber.Ctx) error {
	log.Info("manual sync triggered via admin API")

	stats, err := jobs.RunSync(c.Context())
	if err != nil {
		log.Errorf("manual sync failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "sync_failed",
			"message": err.Error(),
			"stats":   stats,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "completed",
		"stats":  stats,
	})
}
