package admin

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"xivcrit.app/backend/internal/app/appconfig"
	"xivcrit.app/backend/internal/pkg/apperr"
	"xivcrit.app/backend/internal/pkg/middlewares"
	"xivcrit.app/backend/internal/pkg/rekuest"
	"xivcrit.app/backend/internal/server/svr"
	"xivcrit.app/backend/internal/service"
)

type Controller struct {
	fx.In

	AdminService *service.Admin
}

type resolveRequest struct {
	ErrorIDs []string `json:"errorIds" validate:"required,min=1,dive,required"`
}

type flagRequest struct {
	DPS      bool `json:"dps"`
	Rotation bool `json:"rotation"`
}

type flagEncounterRequest struct {
	EncounterName string `json:"encounterName" validate:"required"`
	PhaseID       int    `json:"phaseId" validate:"min=-1,max=16"`
	Since         string `json:"since" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Until         string `json:"until" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

func RegisterAdmin(admin *svr.Admin, conf *appconfig.Config, c Controller) {
	admin.Use(middlewares.AdminKey(conf.AdminKey))

	admin.Get("/errors", c.ListErrors)
	admin.Get("/errors/:errorId", c.GetErrorDetail)
	admin.Post("/errors/resolve", c.ResolveErrors)
	admin.Delete("/errors/:errorId", c.DeleteError)

	admin.Get("/party-errors", c.ListPartyErrors)
	admin.Get("/party-errors/:errorId", c.GetPartyErrorDetail)
	admin.Post("/party-errors/resolve", c.ResolvePartyErrors)
	admin.Delete("/party-errors/:errorId", c.DeletePartyError)

	admin.Post("/analyses/:analysisId/flag", c.FlagAnalysis)
	admin.Post("/encounters/flag", c.FlagEncounter)
}

func listFilters(ctx *fiber.Ctx) (activeOnly bool, since time.Time, err error) {
	activeOnly = ctx.QueryBool("active", true)
	if raw := ctx.Query("since"); raw != "" {
		since, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return false, time.Time{}, apperr.ErrInvalidReq.Msg("since must be RFC 3339: %v", err)
		}
	}
	return activeOnly, since, nil
}

func (c *Controller) ListErrors(ctx *fiber.Ctx) error {
	activeOnly, since, err := listFilters(ctx)
	if err != nil {
		return err
	}
	rows, err := c.AdminService.ListErrors(ctx.UserContext(), activeOnly, since)
	if err != nil {
		return err
	}
	return ctx.JSON(rows)
}

func (c *Controller) GetErrorDetail(ctx *fiber.Ctx) error {
	detail, err := c.AdminService.GetErrorDetail(ctx.UserContext(), ctx.Params("errorId"))
	if err != nil {
		return err
	}
	return ctx.JSON(detail)
}

func (c *Controller) ResolveErrors(ctx *fiber.Ctx) error {
	var req resolveRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}
	if err := c.AdminService.ResolveErrors(ctx.UserContext(), req.ErrorIDs); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *Controller) DeleteError(ctx *fiber.Ctx) error {
	if err := c.AdminService.DeleteError(ctx.UserContext(), ctx.Params("errorId")); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *Controller) ListPartyErrors(ctx *fiber.Ctx) error {
	activeOnly, since, err := listFilters(ctx)
	if err != nil {
		return err
	}
	rows, err := c.AdminService.ListPartyErrors(ctx.UserContext(), activeOnly, since)
	if err != nil {
		return err
	}
	return ctx.JSON(rows)
}

func (c *Controller) GetPartyErrorDetail(ctx *fiber.Ctx) error {
	detail, err := c.AdminService.GetPartyErrorDetail(ctx.UserContext(), ctx.Params("errorId"))
	if err != nil {
		return err
	}
	return ctx.JSON(detail)
}

func (c *Controller) ResolvePartyErrors(ctx *fiber.Ctx) error {
	var req resolveRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}
	if err := c.AdminService.ResolvePartyErrors(ctx.UserContext(), req.ErrorIDs); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *Controller) DeletePartyError(ctx *fiber.Ctx) error {
	if err := c.AdminService.DeletePartyError(ctx.UserContext(), ctx.Params("errorId")); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *Controller) FlagAnalysis(ctx *fiber.Ctx) error {
	var req flagRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}
	if !req.DPS && !req.Rotation {
		return apperr.ErrInvalidReq.Msg("at least one of dps and rotation must be flagged")
	}
	if err := c.AdminService.FlagAnalysis(ctx.UserContext(), ctx.Params("analysisId"), req.DPS, req.Rotation); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *Controller) FlagEncounter(ctx *fiber.Ctx) error {
	var req flagEncounterRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	var since, until time.Time
	if req.Since != "" {
		since, _ = time.Parse(time.RFC3339, req.Since)
	}
	if req.Until != "" {
		until, _ = time.Parse(time.RFC3339, req.Until)
	}

	flagged, err := c.AdminService.FlagEncounter(ctx.UserContext(), req.EncounterName, req.PhaseID, since, until)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"flagged": flagged,
	})
}
