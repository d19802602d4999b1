package middlewares

import (
	"github.com/gofiber/fiber/v2"
)

// Chained registers the handlers on app in order.
func Chained(app *fiber.App, handlers ...fiber.Handler) {
	for _, handler := range handlers {
		app.Use(handler)
	}
}
