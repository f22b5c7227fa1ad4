package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/nowopenyyc/nowopen/app/repository"
	"github.com/nowopenyyc/nowopen/internal/pkg/env"
	"github.com/nowopenyyc/nowopen/internal/pkg/payment"
)

type checkoutRequest struct {
	BusinessID  uint64 `json:"business_id"`
	FeatureTier string `json:"feature_tier"`
}

func paymentService() *payment.Service {
	repos := repository.GetGlobalFactory()
	return payment.NewService(
		payment.NewClientFromEnv(),
		repos.GetBusinessRepository(),
		repos.GetFeaturedListingRepository(),
		repos.GetWebhookEventRepository(),
	)
}

// HandleCreateCheckout opens a provider checkout session for a featured
// listing purchase and returns the redirect URL.
func HandleCreateCheckout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "Malformed request body",
		})
	}

	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	session, err := paymentService().CreateFeaturedCheckout(
		c.Context(),
		req.BusinessID,
		req.FeatureTier,
		base+"/featured/success",
		base+"/featured/cancel",
	)
	if err != nil {
		if errors.Is(err, payment.ErrProviderUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error":   "provider_unavailable",
				"message": "Payment provider is temporarily unavailable",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": err.Error(),
		})
	}

	log.Infof("opened checkout session %s for business %d (%s)", session.SessionID, req.BusinessID, req.FeatureTier)
	return c.Status(fiber.StatusCreated).JSON(session)
}

// HandleVerifyCheckout reports the provider-side payment state of a session.
func HandleVerifyCheckout(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")
	status, err := paymentService().VerifyPayment(c.Context(), sessionID)
	if err != nil {
		if errors.Is(err, payment.ErrProviderUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error":   "provider_unavailable",
				"message": "Payment provider is temporarily unavailable",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"paid":         status.Paid,
		"business_id":  status.BusinessID,
		"feature_tier": status.FeatureTier,
		"duration":     status.Duration.String(),
		"payment_ref":  status.PaymentRef,
	})
}
