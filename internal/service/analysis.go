package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog/log"
	"gopkg.in/guregu/null.v3"

	"xivcrit.app/backend/internal/app/appconfig"
	"xivcrit.app/backend/internal/fflogs"
	"xivcrit.app/backend/internal/gamedata"
	"xivcrit.app/backend/internal/model"
	"xivcrit.app/backend/internal/model/cache"
	"xivcrit.app/backend/internal/model/types"
	"xivcrit.app/backend/internal/model/view"
	"xivcrit.app/backend/internal/pkg/apperr"
	"xivcrit.app/backend/internal/pkg/observability"
	"xivcrit.app/backend/internal/repo"
	"xivcrit.app/backend/internal/rotation"
	"xivcrit.app/backend/internal/xivmath"
)

// DefaultPartyBonus is the full composition bonus: one job of each role.
const DefaultPartyBonus = 1.05

// interpolatedPoints is how many samples each stored density is resampled
// down to before it leaves the compute path.
const interpolatedPoints = 5000

// PlayerAnalysis runs single player analyses: submission resolves stats and
// enqueues, the worker computes, persists and offloads the distributions.
type PlayerAnalysis struct {
	Config    *appconfig.Config
	FFLogs    *fflogs.Client
	Encounter *Encounter
	JobBuild  *JobBuild
	Blob      *Blob
	Queue     *Queue

	AnalysisRepo *repo.PlayerAnalysis
	ErrorRepo    *repo.AnalysisError
	AccessRepo   *repo.Access
}

func NewPlayerAnalysis(
	conf *appconfig.Config,
	client *fflogs.Client,
	encounter *Encounter,
	jobBuild *JobBuild,
	blob *Blob,
	queue *Queue,
	analysisRepo *repo.PlayerAnalysis,
	errorRepo *repo.AnalysisError,
	accessRepo *repo.Access,
) *PlayerAnalysis {
	return &PlayerAnalysis{
		Config:       conf,
		FFLogs:       client,
		Encounter:    encounter,
		JobBuild:     jobBuild,
		Blob:         blob,
		Queue:        queue,
		AnalysisRepo: analysisRepo,
		ErrorRepo:    errorRepo,
		AccessRepo:   accessRepo,
	}
}

// Submit validates the request, resolves the gear set and either returns a
// prior analysis with identical inputs or enqueues a fresh computation.
func (s *PlayerAnalysis) Submit(ctx context.Context, req *types.PlayerAnalysisRequest) (analysisID string, existing bool, err error) {
	listing, err := s.Encounter.ResolveReport(ctx, req.ReportURL)
	if err != nil {
		return "", false, err
	}

	enc, err := s.Encounter.GetEncounter(ctx, listing.ReportID, listing.FightID, req.PlayerID)
	if err != nil {
		return "", false, apperr.ErrNotFound.Msg("player %d did not participate in fight %d", req.PlayerID, listing.FightID)
	}

	if err := validatePhase(enc, req.PhaseID); err != nil {
		return "", false, err
	}

	profile, ok := gamedata.JobProfileOf(enc.Job)
	if !ok {
		return "", false, apperr.ErrUnsupportedJob.Msg("%s is not supported for analysis", enc.Job)
	}

	stats, err := s.resolveStats(ctx, req, enc)
	if err != nil {
		return "", false, err
	}

	m := buildAnalysisRow(enc, req, profile, stats)

	if prior, err := s.AnalysisRepo.GetMatching(ctx, m); err == nil {
		return prior.AnalysisID, true, nil
	}

	m.AnalysisID = NewAnalysisID()
	if err := s.AnalysisRepo.Save(ctx, m); err != nil {
		return "", false, err
	}
	if err := s.Queue.PublishPlayerAnalysis(ctx, m.AnalysisID); err != nil {
		return "", false, err
	}
	return m.AnalysisID, false, nil
}

func validatePhase(enc *model.Encounter, phaseID int) error {
	if phaseID == 0 {
		return nil
	}

	phases := gamedata.EncounterPhases[enc.EncounterID]
	if phases == nil {
		return apperr.ErrInvalidReq.Msg("encounter %s has no phase data", enc.EncounterName)
	}
	if _, ok := phases[phaseID]; !ok {
		return apperr.ErrInvalidReq.Msg("encounter %s has no phase %d", enc.EncounterName, phaseID)
	}
	if enc.LastPhaseIndex.Valid && int64(phaseID) > enc.LastPhaseIndex.Int64 {
		return apperr.ErrInvalidReq.Msg("pull ended in phase %d, phase %d was not reached", enc.LastPhaseIndex.Int64, phaseID)
	}
	return nil
}

func (s *PlayerAnalysis) resolveStats(ctx context.Context, req *types.PlayerAnalysisRequest, enc *model.Encounter) (*types.JobBuildStats, error) {
	if req.Stats != nil {
		return req.Stats, nil
	}
	if req.JobBuildURL == "" {
		return nil, apperr.ErrInvalidReq.Msg("either a job build URL or explicit stats are required")
	}

	build, err := s.JobBuild.Fetch(ctx, req.JobBuildURL)
	if err != nil {
		return nil, err
	}
	if build.Job != enc.Job {
		return nil, apperr.ErrInvalidReq.Msg("gear set is for %s but the player logged as %s", build.Job, enc.Job)
	}
	return &build.Stats, nil
}

func buildAnalysisRow(enc *model.Encounter, req *types.PlayerAnalysisRequest, profile gamedata.JobProfile, stats *types.JobBuildStats) *model.PlayerAnalysis {
	partyBonus := stats.PartyBonus
	if partyBonus == 0 {
		partyBonus = DefaultPartyBonus
	}

	medication := req.MedicationAmount
	if medication == 0 {
		medication = fflogs.DefaultMedicationAmount
	}

	m := &model.PlayerAnalysis{
		ReportID:      enc.ReportID,
		FightID:       enc.FightID,
		PlayerID:      enc.PlayerID,
		PhaseID:       req.PhaseID,
		EncounterName: enc.EncounterName,
		Job:           enc.Job,
		PlayerName:    enc.PlayerName,

		MainStatPreBonus: stats.MainStatPreBonus,
		MainStat:         int(math.Floor(float64(stats.MainStatPreBonus) * partyBonus)),
		MainStatType:     profile.MainStatType,
		Determination:    stats.Determination,
		Speed:            stats.Speed,
		CriticalHit:      stats.CriticalHit,
		DirectHit:        stats.DirectHit,
		WeaponDamage:     stats.WeaponDamage,
		Delay:            stats.Delay,
		MedicationAmount: medication,
		PartyBonus:       partyBonus,
		GearSetID:        stats.GearSetID,
		GearSetProvider:  stats.GearSetProvider,
	}
	if stats.SecondaryStat.Valid {
		m.SecondaryStat = stats.SecondaryStat
		m.SecondaryStatPreBonus = stats.SecondaryStat
		m.SecondaryStatType = null.StringFrom(secondaryStatType(profile))
	}
	return m
}

func secondaryStatType(profile gamedata.JobProfile) string {
	if profile.Tank {
		return "TEN"
	}
	return "None"
}

// Get assembles the full analysis view. The payload is nil while the
// computation is still queued.
func (s *PlayerAnalysis) Get(ctx context.Context, analysisID string) (*view.PlayerAnalysis, error) {
	m, err := s.AnalysisRepo.GetByID(ctx, analysisID)
	if err != nil {
		return nil, err
	}

	if err := s.AccessRepo.Record(ctx, analysisID); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("analysis_id", analysisID).Msg("failed to record analysis access")
	}

	var v view.PlayerAnalysis
	err = cache.PlayerAnalysisByID.MutexGetSet(analysisID, &v, func() (view.PlayerAnalysis, error) {
		payload, err := s.Blob.GetPlayerAnalysis(ctx, analysisID)
		if err != nil {
			// queued but not yet computed
			return view.PlayerAnalysis{Meta: m}, nil
		}
		// blobs keep the densities at full step resolution for the party
		// convolutions; responses carry a resampled copy
		interpolatePlayerPayload(payload, interpolatedPoints)
		return view.PlayerAnalysis{Meta: m, Payload: payload}, nil
	}, time.Minute*10)
	if err != nil {
		return nil, err
	}
	if v.Payload == nil {
		// do not let a pending view linger in cache once computed
		_ = cache.PlayerAnalysisByID.Delete(analysisID)
		v.Meta = m
	}
	return &v, nil
}

// Compute runs the full pipeline for a persisted analysis row and offloads
// the resulting distributions. Failures are recorded as error rows for the
// admin app.
func (s *PlayerAnalysis) Compute(ctx context.Context, analysisID string) error {
	started := time.Now()
	defer func() {
		observability.AnalysisComputeDuration.WithLabelValues("player").Observe(time.Since(started).Seconds())
	}()

	m, err := s.AnalysisRepo.GetByID(ctx, analysisID)
	if err != nil {
		return err
	}

	payload, err := s.compute(ctx, m)
	if err != nil {
		s.recordError(ctx, m, err)
		return err
	}

	if err := s.Blob.PutPlayerAnalysis(ctx, payload); err != nil {
		return err
	}

	m.ActiveDPSTime = payload.ActiveDPSTime
	if err := s.AnalysisRepo.Save(ctx, m); err != nil {
		return err
	}
	if err := s.AnalysisRepo.ClearFlags(ctx, analysisID); err != nil {
		return err
	}
	_ = cache.PlayerAnalysisByID.Delete(analysisID)

	if err := s.ErrorRepo.Resolve(ctx, []string{PlayerErrorID(m.ReportID, m.FightID, m.PhaseID, m.PlayerID)}); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to resolve prior analysis error")
	}
	return nil
}

func (s *PlayerAnalysis) compute(ctx context.Context, m *model.PlayerAnalysis) (*view.PlayerAnalysisPayload, error) {
	enc, err := s.Encounter.GetEncounter(ctx, m.ReportID, m.FightID, m.PlayerID)
	if err != nil {
		return nil, err
	}

	level, err := encounterLevel(enc.EncounterID)
	if err != nil {
		return nil, err
	}
	profile, ok := gamedata.JobProfileOf(enc.Job)
	if !ok {
		return nil, apperr.ErrUnsupportedJob.Msg("%s is not supported for analysis", enc.Job)
	}

	rt, err := s.rotationTable(ctx, m, enc, level)
	if err != nil {
		return nil, err
	}

	rows, err := rt.Rows(rotation.Clip{})
	if err != nil {
		return nil, err
	}

	stats := jobStats(m, profile, level)
	dists, err := actionDistributions(rows, stats)
	if err != nil {
		return nil, err
	}

	dist := xivmath.ComputeRotation(dists, xivmath.DefaultDamageStep)
	if dist.PDF == nil {
		return nil, apperr.ErrInternalError.Msg("rotation produced no damage density")
	}

	clippings, err := rotationClippings(rt, stats, enc.EncounterID, m.PhaseID)
	if err != nil {
		return nil, err
	}

	actual := totalDamage(rows)
	activeDPSTime := rt.FightDPSTime
	summaries := summarizeActions(rows, dist, activeDPSTime)
	percentile := xivmath.PercentileOfValue(actual, dist.PDF, dist.Support)

	return &view.PlayerAnalysisPayload{
		AnalysisID:    m.AnalysisID,
		ActiveDPSTime: activeDPSTime,
		TotalDamage:   actual,
		Percentile:    percentile,
		Mean:          dist.Mean,
		Std:           dist.Std,
		Skewness:      dist.Skewness,
		PDF:           dist.PDF,
		Support:       dist.Support,
		UniqueActions: dist.UniqueActions,
		Actions:       summaries,
		Clippings:     clippings,
	}, nil
}

// rotationTable rebuilds the action and rotation tables for one analysis
// row, phase window applied.
func (s *PlayerAnalysis) rotationTable(ctx context.Context, m *model.PlayerAnalysis, enc *model.Encounter, level int) (*rotation.RotationTable, error) {
	info, err := s.FFLogs.FightInformation(ctx, m.ReportID, m.FightID, m.PlayerID)
	if err != nil {
		return nil, err
	}

	if m.PhaseID > 0 {
		start, end, err := rotation.PhaseWindow(info, enc.EncounterID, m.PhaseID)
		if err != nil {
			return nil, err
		}
		downtime, err := s.FFLogs.PhaseDowntime(ctx, m.ReportID, m.FightID, start, end)
		if err != nil {
			return nil, err
		}
		info.StartTime, info.EndTime, info.Downtime = start, end, downtime
	}

	// pet damage is reported under the pet's own actor ID; fetch the player
	// and every pet, then fold them into one timeline
	sources := append([]int{m.PlayerID}, enc.PetIDs...)
	batches := make([][]fflogs.Event, 0, len(sources))
	for _, sourceID := range sources {
		evs, err := s.FFLogs.DamageEvents(ctx, m.ReportID, m.FightID, sourceID, info.StartTime, info.EndTime)
		if err != nil {
			return nil, err
		}
		batches = append(batches, evs)
	}
	events := fflogs.MergeEvents(batches...)

	// the excluded enemy actor IDs are report specific; re-resolve them
	encInfo, err := s.FFLogs.EncounterInfo(ctx, m.ReportID, m.FightID)
	if err != nil {
		return nil, err
	}

	if m.MedicationAmount > 0 {
		info.MedicationAmount = m.MedicationAmount
	}

	at, err := rotation.New(ctx, s.FFLogs, info, events, rotation.Params{
		ReportCode:       m.ReportID,
		FightID:          m.FightID,
		Job:              enc.Job,
		PlayerID:         m.PlayerID,
		PetIDs:           enc.PetIDs,
		ExcludedEnemyIDs: encInfo.ExcludedEnemyIDs,
		Level:            level,
		Phase:            m.PhaseID,
		CriticalHit:      m.CriticalHit,
		DirectHit:        m.DirectHit,
		Determination:    m.Determination,
	})
	if err != nil {
		return nil, err
	}
	return rotation.NewRotationTable(at)
}

func (s *PlayerAnalysis) recordError(ctx context.Context, m *model.PlayerAnalysis, cause error) {
	errorID := PlayerErrorID(m.ReportID, m.FightID, m.PhaseID, m.PlayerID)

	var encounterID int
	if enc, err := s.Encounter.GetEncounter(ctx, m.ReportID, m.FightID, m.PlayerID); err == nil {
		encounterID = enc.EncounterID
	}

	row := &model.AnalysisError{
		ErrorID:       errorID,
		ReportID:      m.ReportID,
		FightID:       m.FightID,
		PlayerID:      m.PlayerID,
		EncounterID:   encounterID,
		EncounterName: m.EncounterName,
		PhaseID:       m.PhaseID,
		Job:           m.Job,
		PlayerName:    m.PlayerName,

		MainStatPreBonus:      m.MainStatPreBonus,
		MainStat:              m.MainStat,
		MainStatType:          m.MainStatType,
		SecondaryStatPreBonus: m.SecondaryStatPreBonus,
		SecondaryStat:         m.SecondaryStat,
		SecondaryStatType:     m.SecondaryStatType,
		Determination:         m.Determination,
		Speed:                 m.Speed,
		CriticalHit:           m.CriticalHit,
		DirectHit:             m.DirectHit,
		WeaponDamage:          m.WeaponDamage,
		Delay:                 m.Delay,
		MedicationAmount:      m.MedicationAmount,
		PartyBonus:            m.PartyBonus,

		Message:   cause.Error(),
		Traceback: fmt.Sprintf("%+v", cause),
	}
	if err := s.ErrorRepo.Upsert(ctx, row); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("error_id", errorID).Msg("failed to record analysis error")
	}

	if err := s.Blob.PutErrorLog(ctx, errorID, []byte(spew.Sdump(m, cause))); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("error_id", errorID).Msg("failed to offload error dump")
	}
}
