package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog/log"

	"xivcrit.app/backend/internal/fflogs"
	"xivcrit.app/backend/internal/gamedata"
	"xivcrit.app/backend/internal/model"
	"xivcrit.app/backend/internal/model/cache"
	"xivcrit.app/backend/internal/model/types"
	"xivcrit.app/backend/internal/model/view"
	"xivcrit.app/backend/internal/pkg/apperr"
	"xivcrit.app/backend/internal/pkg/async"
	"xivcrit.app/backend/internal/pkg/observability"
	"xivcrit.app/backend/internal/repo"
	"xivcrit.app/backend/internal/rotation"
	"xivcrit.app/backend/internal/xivmath"
)

// PartyAnalysis convolves completed member analyses into the party level
// damage distribution and its kill time splits.
type PartyAnalysis struct {
	FFLogs    *fflogs.Client
	Encounter *Encounter
	Blob      *Blob
	Queue     *Queue

	PartyRepo  *repo.PartyAnalysis
	MemberRepo *repo.PlayerAnalysis
	ErrorRepo  *repo.PartyAnalysisError
	AccessRepo *repo.Access
}

func NewPartyAnalysis(
	client *fflogs.Client,
	encounter *Encounter,
	blob *Blob,
	queue *Queue,
	partyRepo *repo.PartyAnalysis,
	memberRepo *repo.PlayerAnalysis,
	errorRepo *repo.PartyAnalysisError,
	accessRepo *repo.Access,
) *PartyAnalysis {
	return &PartyAnalysis{
		FFLogs:     client,
		Encounter:  encounter,
		Blob:       blob,
		Queue:      queue,
		PartyRepo:  partyRepo,
		MemberRepo: memberRepo,
		ErrorRepo:  errorRepo,
		AccessRepo: accessRepo,
	}
}

// Submit validates that every member analysis belongs to the requested pull
// and phase, then either returns the prior party analysis over the same
// members or enqueues a fresh one.
func (s *PartyAnalysis) Submit(ctx context.Context, req *types.PartyAnalysisRequest) (partyAnalysisID string, existing bool, err error) {
	listing, err := s.Encounter.ResolveReport(ctx, req.ReportURL)
	if err != nil {
		return "", false, err
	}

	members, err := s.members(ctx, req.AnalysisIDs)
	if err != nil {
		return "", false, err
	}
	for _, m := range members {
		if m.ReportID != listing.ReportID || m.FightID != listing.FightID {
			return "", false, apperr.ErrInvalidReq.Msg("analysis %s belongs to a different pull", m.AnalysisID)
		}
		if m.PhaseID != req.PhaseID {
			return "", false, apperr.ErrInvalidReq.Msg("analysis %s covers phase %d, not phase %d", m.AnalysisID, m.PhaseID, req.PhaseID)
		}
	}

	memberIDs := append([]string(nil), req.AnalysisIDs...)
	sort.Strings(memberIDs)

	if prior, err := s.PartyRepo.GetMatching(ctx, listing.ReportID, listing.FightID, req.PhaseID, memberIDs); err == nil {
		return prior.PartyAnalysisID, true, nil
	}

	m := &model.PartyAnalysis{
		PartyAnalysisID: NewAnalysisID(),
		ReportID:        listing.ReportID,
		FightID:         listing.FightID,
		PhaseID:         req.PhaseID,
		MemberIDs:       memberIDs,
	}
	if err := s.PartyRepo.Save(ctx, m); err != nil {
		return "", false, err
	}
	if err := s.Queue.PublishPartyAnalysis(ctx, m.PartyAnalysisID); err != nil {
		return "", false, err
	}
	return m.PartyAnalysisID, false, nil
}

// members loads the player analysis rows for a set of IDs and verifies all
// of them exist.
func (s *PartyAnalysis) members(ctx context.Context, analysisIDs []string) ([]*model.PlayerAnalysis, error) {
	members, err := s.MemberRepo.GetByIDs(ctx, analysisIDs)
	if err != nil {
		return nil, err
	}
	if len(members) != len(analysisIDs) {
		found := make(map[string]bool, len(members))
		for _, m := range members {
			found[m.AnalysisID] = true
		}
		for _, id := range analysisIDs {
			if !found[id] {
				return nil, apperr.ErrNotFound.Msg("player analysis %s does not exist", id)
			}
		}
	}
	return members, nil
}

// Get assembles the party view. The payload is nil while the computation is
// still queued.
func (s *PartyAnalysis) Get(ctx context.Context, partyAnalysisID string) (*view.PartyAnalysis, error) {
	m, err := s.PartyRepo.GetByID(ctx, partyAnalysisID)
	if err != nil {
		return nil, err
	}

	if err := s.AccessRepo.Record(ctx, partyAnalysisID); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("party_analysis_id", partyAnalysisID).Msg("failed to record analysis access")
	}

	var v view.PartyAnalysis
	err = cache.PartyAnalysisByID.MutexGetSet(partyAnalysisID, &v, func() (view.PartyAnalysis, error) {
		members, err := s.members(ctx, m.MemberIDs)
		if err != nil {
			return view.PartyAnalysis{}, err
		}
		payload, err := s.Blob.GetPartyAnalysis(ctx, partyAnalysisID)
		if err != nil {
			return view.PartyAnalysis{Meta: m, Members: members}, nil
		}
		interpolatePartyPayload(payload, interpolatedPoints)
		return view.PartyAnalysis{Meta: m, Members: members, Payload: payload}, nil
	}, time.Minute*10)
	if err != nil {
		return nil, err
	}
	if v.Payload == nil {
		_ = cache.PartyAnalysisByID.Delete(partyAnalysisID)
		v.Meta = m
	}
	return &v, nil
}

// Compute derives the party distribution from the members' stored payloads.
// Members that have not finished computing yet fail the run, which requeues
// it.
func (s *PartyAnalysis) Compute(ctx context.Context, partyAnalysisID string) error {
	started := time.Now()
	defer func() {
		observability.AnalysisComputeDuration.WithLabelValues("party").Observe(time.Since(started).Seconds())
	}()

	m, err := s.PartyRepo.GetByID(ctx, partyAnalysisID)
	if err != nil {
		return err
	}
	members, err := s.members(ctx, m.MemberIDs)
	if err != nil {
		return err
	}

	payload, err := s.compute(ctx, m, members)
	if err != nil {
		s.recordError(ctx, m, members, err)
		return err
	}

	if err := s.Blob.PutPartyAnalysis(ctx, payload); err != nil {
		return err
	}
	if err := s.PartyRepo.FlagByID(ctx, partyAnalysisID, false); err != nil {
		return err
	}
	_ = cache.PartyAnalysisByID.Delete(partyAnalysisID)

	if err := s.ErrorRepo.Resolve(ctx, []string{PartyErrorID(m.ReportID, m.FightID, m.PhaseID)}); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to resolve prior party analysis error")
	}
	return nil
}

func (s *PartyAnalysis) compute(ctx context.Context, m *model.PartyAnalysis, members []*model.PlayerAnalysis) (*view.PartyAnalysisPayload, error) {
	payloads, err := async.Map(members, 4, func(member *model.PlayerAnalysis) (*view.PlayerAnalysisPayload, error) {
		p, err := s.Blob.GetPlayerAnalysis(ctx, member.AnalysisID)
		if err != nil {
			return nil, apperr.ErrInternalError.Msg("player analysis %s has not finished computing", member.AnalysisID)
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}

	encInfo, err := s.FFLogs.EncounterInfo(ctx, m.ReportID, m.FightID)
	if err != nil {
		return nil, err
	}

	info, err := s.FFLogs.FightInformation(ctx, m.ReportID, m.FightID, members[0].PlayerID)
	if err != nil {
		return nil, err
	}
	if m.PhaseID > 0 {
		start, end, err := rotation.PhaseWindow(info, encInfo.EncounterID, m.PhaseID)
		if err != nil {
			return nil, err
		}
		downtime, err := s.FFLogs.PhaseDowntime(ctx, m.ReportID, m.FightID, start, end)
		if err != nil {
			return nil, err
		}
		info.StartTime, info.EndTime, info.Downtime = start, end, downtime
	}

	lbDamage, err := s.limitBreakDamage(ctx, m, encInfo, info)
	if err != nil {
		return nil, err
	}

	rotations := make([]xivmath.RotationDistribution, len(payloads))
	var (
		totalDamage float64
		meanNoLB    float64
		variance    float64
		m3Total     float64
	)
	for i, p := range payloads {
		rotations[i] = xivmath.RotationDistribution{
			Mean:     p.Mean,
			Variance: p.Std * p.Std,
			Std:      p.Std,
			Skewness: p.Skewness,
			PDF:      p.PDF,
			Support:  p.Support,
		}
		totalDamage += p.TotalDamage
		meanNoLB += p.Mean
		variance += p.Std * p.Std
		m3Total += p.Skewness * math.Pow(p.Std*p.Std, 1.5)
	}

	pdf, support := xivmath.PartyDistribution(rotations, lbDamage, xivmath.DefaultDamageStep)
	if pdf == nil {
		return nil, apperr.ErrInternalError.Msg("party convolution produced no damage density")
	}

	bossHP := totalDamage + lbDamage
	splits, err := s.killTimeSplits(payloads, encInfo.EncounterID, m.PhaseID, pdf, support, meanNoLB, lbDamage, bossHP)
	if err != nil {
		return nil, err
	}

	var skewness float64
	if variance > 0 {
		skewness = m3Total / math.Pow(variance, 1.5)
	}

	return &view.PartyAnalysisPayload{
		PartyAnalysisID:  m.PartyAnalysisID,
		BossHP:           bossHP,
		ActiveDPSTime:    float64(info.EndTime-info.StartTime-info.Downtime) / 1000,
		FightDuration:    float64(info.EndTime-info.StartTime) / 1000,
		LimitBreakDamage: lbDamage,
		Percentile:       xivmath.KillTimePercentile(bossHP, pdf, support),
		Mean:             meanNoLB + lbDamage,
		Std:              math.Sqrt(variance),
		Skewness:         skewness,
		PDF:              pdf,
		Support:          support,
		Splits:           splits,
	}, nil
}

// limitBreakDamage sums the damage events of every Limit Break actor over
// the analyzed window. Limit Break damage does not roll, so it shifts the
// party support instead of widening it.
func (s *PartyAnalysis) limitBreakDamage(ctx context.Context, m *model.PartyAnalysis, encInfo *fflogs.EncounterInfo, info *fflogs.FightInfo) (float64, error) {
	var total float64
	for _, lb := range encInfo.LimitBreak {
		events, err := s.FFLogs.DamageEvents(ctx, m.ReportID, m.FightID, lb.PlayerID, info.StartTime, info.EndTime)
		if err != nil {
			return 0, err
		}
		for _, e := range events {
			if e.Unpaired {
				continue
			}
			total += e.Amount
		}
	}
	return total, nil
}

// killTimeSplits answers "would the party still have killed N seconds
// earlier" by removing the convolved final seconds of every member's
// rotation from the party distribution.
func (s *PartyAnalysis) killTimeSplits(
	payloads []*view.PlayerAnalysisPayload,
	encounterID, phase int,
	partyPDF, partySupport []float64,
	partyMeanNoLB, lbDamage, bossHP float64,
) ([]view.PartySplit, error) {
	for _, skip := range gamedata.SkipKillTimeAnalysisPhases[encounterID] {
		if phase == skip {
			return nil, nil
		}
	}

	splits := make([]view.PartySplit, 0, len(clipSeconds))
	for _, seconds := range clipSeconds {
		clips := make([]xivmath.RotationDistribution, 0, len(payloads))
		var clipMean float64
		for _, p := range payloads {
			c, ok := clippingFor(p, seconds)
			if !ok {
				continue
			}
			clips = append(clips, xivmath.RotationDistribution{
				Mean:    c.Mean,
				PDF:     c.PDF,
				Support: c.Support,
			})
			clipMean += c.Mean
		}
		if len(clips) == 0 {
			continue
		}

		clipPDF, clipSupport := xivmath.PartyDistribution(clips, 0, xivmath.DefaultDamageStep)
		if clipPDF == nil {
			continue
		}

		pdf, support := xivmath.UnconvolveClippedPDF(
			partyPDF, clipPDF, partySupport, clipSupport,
			partyMeanNoLB, clipMean, lbDamage, xivmath.DefaultDamageStep,
		)
		splits = append(splits, view.PartySplit{
			SecondsShortened: seconds,
			Percentile:       xivmath.KillTimePercentile(bossHP, pdf, support),
			PDF:              pdf,
			Support:          support,
		})
	}
	return splits, nil
}

// clippingFor finds the member clipping closest to the requested shortening.
// Clip windows carry a per player offset to the final damage event, so exact
// float comparison would be brittle.
func clippingFor(p *view.PlayerAnalysisPayload, seconds float64) (view.RotationClipping, bool) {
	for _, c := range p.Clippings {
		if math.Abs(c.SecondsShortened-seconds) < 0.25 {
			return c, true
		}
	}
	return view.RotationClipping{}, false
}

func (s *PartyAnalysis) recordError(ctx context.Context, m *model.PartyAnalysis, members []*model.PlayerAnalysis, cause error) {
	errorID := PartyErrorID(m.ReportID, m.FightID, m.PhaseID)

	var encounterID int
	if len(members) > 0 {
		if enc, err := s.Encounter.GetEncounter(ctx, m.ReportID, m.FightID, members[0].PlayerID); err == nil {
			encounterID = enc.EncounterID
		}
	}

	rows := make([]*model.PartyAnalysisError, 0, len(members))
	for _, member := range members {
		rows = append(rows, &model.PartyAnalysisError{
			ErrorID:     errorID,
			ReportID:    m.ReportID,
			FightID:     m.FightID,
			PhaseID:     m.PhaseID,
			EncounterID: encounterID,
			Job:         member.Job,
			PlayerName:  member.PlayerName,
			PlayerID:    member.PlayerID,

			MainStatPreBonus:   member.MainStatPreBonus,
			SecondaryStat:      member.SecondaryStat,
			Determination:      member.Determination,
			Speed:              member.Speed,
			CriticalHit:        member.CriticalHit,
			DirectHit:          member.DirectHit,
			WeaponDamage:       member.WeaponDamage,
			MainStatMultiplier: member.PartyBonus,
			MedicationAmount:   member.MedicationAmount,

			Message:   cause.Error(),
			Traceback: fmt.Sprintf("%+v", cause),
		})
	}
	if err := s.ErrorRepo.Upsert(ctx, rows); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("error_id", errorID).Msg("failed to record party analysis error")
	}

	if err := s.Blob.PutErrorLog(ctx, errorID, []byte(spew.Sdump(m, cause))); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("error_id", errorID).Msg("failed to offload error dump")
	}
}
