package v1

import (
	"github.com/gofiber/fiber/v2"

	"xivcrit.app/backend/internal/pkg/rekuest"
	"xivcrit.app/backend/internal/server/svr"
	"xivcrit.app/backend/internal/service"
)

type EncounterController struct {
	EncounterService *service.Encounter
	JobBuildService  *service.JobBuild
}

func RegisterEncounter(v1 *svr.V1, encounterService *service.Encounter, jobBuildService *service.JobBuild) {
	c := &EncounterController{
		EncounterService: encounterService,
		JobBuildService:  jobBuildService,
	}

	v1.Get("/encounter", c.ResolveReport)
	v1.Get("/job-build", c.ResolveJobBuild)
}

// ResolveReport turns an FFLogs report URL into the "select your player"
// listing for the linked fight.
func (c *EncounterController) ResolveReport(ctx *fiber.Ctx) error {
	reportURL := ctx.Query("url")
	if err := rekuest.ValidVar(ctx, reportURL, "required,url"); err != nil {
		return err
	}

	listing, err := c.EncounterService.ResolveReport(ctx.UserContext(), reportURL)
	if err != nil {
		return err
	}
	return ctx.JSON(listing)
}

// ResolveJobBuild previews the stats of an etro or xivgear set so the
// frontend can fill the stat fields before submission.
func (c *EncounterController) ResolveJobBuild(ctx *fiber.Ctx) error {
	buildURL := ctx.Query("url")
	if err := rekuest.ValidVar(ctx, buildURL, "required,url"); err != nil {
		return err
	}

	build, err := c.JobBuildService.Fetch(ctx.UserContext(), buildURL)
	if err != nil {
		return err
	}
	return ctx.JSON(build)
}
