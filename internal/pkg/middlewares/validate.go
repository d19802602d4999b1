package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"xivcrit.app/backend/internal/pkg/rekuest"
)

func InjectValidBody[T any]() func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		var dest T
		if err := rekuest.ValidBody(ctx, &dest); err != nil {
			return err
		}

		ctx.Locals("body", dest)

		return ctx.Next()
	}
}

func ValidateReportCodeAsParam(c *fiber.Ctx) error {
	if err := rekuest.ValidVar(c, c.Params("code"), "required,reportcode"); err != nil {
		return err
	}
	return c.Next()
}

func ValidateRegionAsQuery(c *fiber.Ctx) error {
	if err := rekuest.ValidVar(c, c.Query("region", "global"), "region"); err != nil {
		return err
	}
	return c.Next()
}
