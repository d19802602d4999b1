package v1

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"

	"xivcrit.app/backend/internal/pkg/bininfo"
	"xivcrit.app/backend/internal/server/svr"
	"xivcrit.app/backend/internal/service"
)

type MetaController struct {
	HealthService *service.Health
}

func RegisterMeta(v1 *svr.V1, healthService *service.Health) {
	c := &MetaController{HealthService: healthService}

	v1.Get("/bininfo", c.BinInfo)

	v1.Get("/health", cache.New(cache.Config{
		// cache it for a second to mitigate potential DDoS
		Expiration: time.Second,
	}), c.Health)
}

func (c *MetaController) BinInfo(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"version": bininfo.Version,
		"build":   bininfo.BuildTime,
	})
}

func (c *MetaController) Health(ctx *fiber.Ctx) error {
	if err := c.HealthService.Ping(ctx.UserContext()); err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"status": "ok",
	})
}
