package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"xivcrit.app/backend/internal/model"
	"xivcrit.app/backend/internal/model/view"
	"xivcrit.app/backend/internal/repo"
)

// Admin serves the error triage app: listing failed analyses, inspecting
// their dumps and flagging analyses for recomputation after gamedata fixes.
type Admin struct {
	Blob *Blob

	PlayerRepo     *repo.PlayerAnalysis
	PartyRepo      *repo.PartyAnalysis
	ErrorRepo      *repo.AnalysisError
	PartyErrorRepo *repo.PartyAnalysisError
}

func NewAdmin(
	blob *Blob,
	playerRepo *repo.PlayerAnalysis,
	partyRepo *repo.PartyAnalysis,
	errorRepo *repo.AnalysisError,
	partyErrorRepo *repo.PartyAnalysisError,
) *Admin {
	return &Admin{
		Blob:           blob,
		PlayerRepo:     playerRepo,
		PartyRepo:      partyRepo,
		ErrorRepo:      errorRepo,
		PartyErrorRepo: partyErrorRepo,
	}
}

func (s *Admin) ListErrors(ctx context.Context, activeOnly bool, since time.Time) ([]*model.AnalysisError, error) {
	return s.ErrorRepo.List(ctx, activeOnly, since)
}

func (s *Admin) ListPartyErrors(ctx context.Context, activeOnly bool, since time.Time) ([]*model.PartyAnalysisError, error) {
	return s.PartyErrorRepo.List(ctx, activeOnly, since)
}

func (s *Admin) GetErrorDetail(ctx context.Context, errorID string) (*view.AnalysisErrorDetail, error) {
	row, err := s.ErrorRepo.GetByID(ctx, errorID)
	if err != nil {
		return nil, err
	}
	return &view.AnalysisErrorDetail{Error: row, Dump: s.errorDump(ctx, errorID)}, nil
}

func (s *Admin) GetPartyErrorDetail(ctx context.Context, errorID string) (*view.PartyAnalysisErrorDetail, error) {
	rows, err := s.PartyErrorRepo.GetByID(ctx, errorID)
	if err != nil {
		return nil, err
	}
	return &view.PartyAnalysisErrorDetail{Errors: rows, Dump: s.errorDump(ctx, errorID)}, nil
}

// errorDump is best effort, the row alone is often enough to triage.
func (s *Admin) errorDump(ctx context.Context, errorID string) string {
	dump, err := s.Blob.GetErrorLog(ctx, errorID)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("error_id", errorID).Msg("no error dump stored")
		return ""
	}
	return string(dump)
}

func (s *Admin) ResolveErrors(ctx context.Context, errorIDs []string) error {
	return s.ErrorRepo.Resolve(ctx, errorIDs)
}

func (s *Admin) ResolvePartyErrors(ctx context.Context, errorIDs []string) error {
	return s.PartyErrorRepo.Resolve(ctx, errorIDs)
}

func (s *Admin) DeleteError(ctx context.Context, errorID string) error {
	return s.ErrorRepo.Delete(ctx, errorID)
}

func (s *Admin) DeletePartyError(ctx context.Context, errorID string) error {
	return s.PartyErrorRepo.Delete(ctx, errorID)
}

// FlagAnalysis marks one player analysis for recomputation. Party analyses
// built on it are flagged along with it.
func (s *Admin) FlagAnalysis(ctx context.Context, analysisID string, dps, rotation bool) error {
	if err := s.PlayerRepo.FlagByID(ctx, analysisID, dps, rotation); err != nil {
		return err
	}

	parties, err := s.PartyRepo.GetByMemberID(ctx, analysisID)
	if err != nil {
		return err
	}
	for _, p := range parties {
		if err := s.PartyRepo.FlagByID(ctx, p.PartyAnalysisID, true); err != nil {
			return err
		}
	}
	return nil
}

// FlagEncounter marks every analysis of an encounter for recomputation,
// optionally scoped to one phase and a creation window. A phase of -1 means
// all phases. Returns the number of flagged analyses.
func (s *Admin) FlagEncounter(ctx context.Context, encounterName string, phaseID int, since, until time.Time) (int64, error) {
	return s.PlayerRepo.FlagByEncounter(ctx, encounterName, phaseID, since, until)
}
