package v1

import (
	"github.com/gofiber/fiber/v2"

	"xivcrit.app/backend/internal/server/svr"
	"xivcrit.app/backend/internal/service"
)

type HistoryController struct {
	HistoryService *service.History
}

func RegisterHistory(v1 *svr.V1, historyService *service.History) {
	c := &HistoryController{HistoryService: historyService}

	v1.Get("/history/analysis/:analysisId", c.GetPlayerRecords)
	v1.Get("/history/party-analysis/:partyAnalysisId", c.GetPartyRecords)
}

func (c *HistoryController) GetPlayerRecords(ctx *fiber.Ctx) error {
	records, err := c.HistoryService.PlayerRecords(ctx.UserContext(), ctx.Params("analysisId"))
	if err != nil {
		return err
	}
	return ctx.JSON(records)
}

func (c *HistoryController) GetPartyRecords(ctx *fiber.Ctx) error {
	records, err := c.HistoryService.PartyRecords(ctx.UserContext(), ctx.Params("partyAnalysisId"))
	if err != nil {
		return err
	}
	return ctx.JSON(records)
}
