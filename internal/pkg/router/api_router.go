package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/nowopenyyc/nowopen/app/controllers"
	"github.com/nowopenyyc/nowopen/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	// API v1 routes
	v1 := api.Group("/v1")
	v1.Get("/businesses", controllers.HandleAPIBusinessSearch)
	v1.Get("/businesses/:slug", controllers.HandleAPIBusinessShow)

	v1.Post("/checkout", controllers.HandleCreateCheckout)
	v1.Get("/checkout/:session_id", controllers.HandleVerifyCheckout)
	v1.Post("/webhooks/payment", controllers.HandlePaymentWebhook)

	admin := v1.Group("/admin", middleware.AdminAPIKeyMiddleware())
	admin.Post("/sync", controllers.HandleAdminSync)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
