package v1

import (
	"github.com/gofiber/fiber/v2"

	"xivcrit.app/backend/internal/model/types"
	"xivcrit.app/backend/internal/pkg/cachectrl"
	"xivcrit.app/backend/internal/pkg/rekuest"
	"xivcrit.app/backend/internal/server/svr"
	"xivcrit.app/backend/internal/service"
)

type Analysis struct {
	PlayerService *service.PlayerAnalysis
	PartyService  *service.PartyAnalysis
}

func RegisterAnalysis(v1 *svr.V1, playerService *service.PlayerAnalysis, partyService *service.PartyAnalysis) {
	c := &Analysis{
		PlayerService: playerService,
		PartyService:  partyService,
	}

	v1.Post("/analysis", c.SubmitAnalysis)
	v1.Get("/analysis/:analysisId", c.GetAnalysis)

	v1.Post("/party-analysis", c.SubmitPartyAnalysis)
	v1.Get("/party-analysis/:partyAnalysisId", c.GetPartyAnalysis)
}

// SubmitAnalysis resolves the submitted pull and gear set, then enqueues the
// computation. Identical inputs return the prior analysis instead.
func (c *Analysis) SubmitAnalysis(ctx *fiber.Ctx) error {
	var req types.PlayerAnalysisRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	analysisID, existing, err := c.PlayerService.Submit(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	status := fiber.StatusAccepted
	if existing {
		status = fiber.StatusOK
	}
	return ctx.Status(status).JSON(fiber.Map{
		"analysisId": analysisID,
		"existing":   existing,
	})
}

func (c *Analysis) GetAnalysis(ctx *fiber.Ctx) error {
	v, err := c.PlayerService.Get(ctx.UserContext(), ctx.Params("analysisId"))
	if err != nil {
		return err
	}

	if v.Payload == nil {
		cachectrl.OptOut(ctx)
		return ctx.Status(fiber.StatusAccepted).JSON(v)
	}
	if v.Meta.CreatedAt != nil {
		cachectrl.OptIn(ctx, *v.Meta.CreatedAt)
	}
	return ctx.JSON(v)
}

func (c *Analysis) SubmitPartyAnalysis(ctx *fiber.Ctx) error {
	var req types.PartyAnalysisRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	partyAnalysisID, existing, err := c.PartyService.Submit(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	status := fiber.StatusAccepted
	if existing {
		status = fiber.StatusOK
	}
	return ctx.Status(status).JSON(fiber.Map{
		"partyAnalysisId": partyAnalysisID,
		"existing":        existing,
	})
}

func (c *Analysis) GetPartyAnalysis(ctx *fiber.Ctx) error {
	v, err := c.PartyService.Get(ctx.UserContext(), ctx.Params("partyAnalysisId"))
	if err != nil {
		return err
	}

	if v.Payload == nil {
		cachectrl.OptOut(ctx)
		return ctx.Status(fiber.StatusAccepted).JSON(v)
	}
	if v.Meta.CreatedAt != nil {
		cachectrl.OptIn(ctx, *v.Meta.CreatedAt)
	}
	return ctx.JSON(v)
}
