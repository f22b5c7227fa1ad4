package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/nowopenyyc/nowopen/internal/pkg/env"
	"github.com/nowopenyyc/nowopen/internal/pkg/payment"
)

// HandlePaymentWebhook takes signed provider callbacks. The signature is
// checked against the raw body before anything else happens; a bad signature
// is rejected with no side effects.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	secret := env.GetEnv("PAYMENT_WEBHOOK_SECRET", "")
	if secret == "" {
		log.Error("PAYMENT_WEBHOOK_SECRET is not configured, rejecting webhook")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "webhook_not_configured",
		})
	}

	signature := c.Get("X-Payment-Signature")
	event, err := paymentService().HandleWebhook(c.Context(), c.Body(), signature, secret)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "invalid_signature",
				"message": "Webhook signature verification failed",
			})
		}
		log.Errorf("webhook processing failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "webhook_error",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"received": true,
		"type":     event.Type,
	})
}
