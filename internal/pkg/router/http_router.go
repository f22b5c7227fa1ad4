package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nowopenyyc/nowopen/app/controllers"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	app.Get("/", controllers.HandleHome)
	app.Get("/businesses", controllers.HandleBusinessIndex)
	app.Get("/business/:slug", controllers.HandleBusinessShow)
	app.Get("/sitemap.xml", controllers.HandleSitemap)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
