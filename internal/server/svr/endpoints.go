package svr

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"xivcrit.app/backend/internal/app/appconfig"
	"xivcrit.app/backend/internal/server/httpserver"
)

type V1 struct {
	fiber.Router
}

type Admin struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App, adminApp *httpserver.AdminApp, conf *appconfig.Config) (*V1, *Admin) {
	base := strings.TrimSuffix(conf.BasePath, "/")
	v1 := app.Group(base + "/api/v1")
	admin := adminApp.Group("/api/_/admin")

	return &V1{Router: v1}, &Admin{Router: admin}
}
