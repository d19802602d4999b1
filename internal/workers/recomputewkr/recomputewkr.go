package recomputewkr

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"xivcrit.app/backend/internal/app/appconfig"
	"xivcrit.app/backend/internal/pkg/observability"
	"xivcrit.app/backend/internal/repo"
	"xivcrit.app/backend/internal/service"
)

// batchLimit caps how many flagged analyses one pass picks up, so a
// whole-encounter recompute spreads over multiple batches instead of
// hammering FFLogs in one go.
const batchLimit = 100

type WorkerDeps struct {
	fx.In

	PlayerService *service.PlayerAnalysis
	PartyService  *service.PartyAnalysis
	PlayerRepo    *repo.PlayerAnalysis
	PartyRepo     *repo.PartyAnalysis
}

type Worker struct {
	// count counts batches worker has completed so far
	count int

	// sep describes the separation time in-between different tasks
	sep time.Duration

	// interval describes the interval in-between different batches
	interval time.Duration

	// timeout bounds one batch
	timeout time.Duration

	dryRun bool

	heartbeatURL string

	WorkerDeps
}

func Start(conf *appconfig.Config, deps WorkerDeps) {
	if !conf.WorkerEnabled {
		log.Info().Msg("recompute worker is disabled")
		return
	}
	(&Worker{
		sep:          conf.WorkerSeparation,
		interval:     conf.WorkerInterval,
		timeout:      conf.WorkerTimeout,
		dryRun:       conf.DryRun,
		heartbeatURL: conf.WorkerHeartbeatURL["recompute"],
		WorkerDeps:   deps,
	}).do()
}

func (w *Worker) do() context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for {
			log.Info().
				Int("count", w.count).
				Msg("recompute batch started")

			start := time.Now()
			batchCtx, cancelBatch := context.WithTimeout(ctx, w.timeout)
			if err := w.batch(batchCtx); err != nil {
				log.Error().Err(err).Msg("recompute batch failed")
			} else {
				w.heartbeat()
			}
			cancelBatch()
			observability.WorkerRecomputeDuration.WithLabelValues("all").Set(time.Since(start).Seconds())

			log.Info().Int("count", w.count).Msg("recompute batch finished")

			w.count++
			time.Sleep(w.interval)
		}
	}()

	return cancel
}

func (w *Worker) batch(ctx context.Context) error {
	players, err := w.PlayerRepo.GetFlagged(ctx, batchLimit)
	if err != nil {
		return err
	}
	for _, m := range players {
		if w.dryRun {
			log.Info().Str("analysisId", m.AnalysisID).Msg("dry run: would recompute player analysis")
			continue
		}
		if err := w.PlayerService.Compute(ctx, m.AnalysisID); err != nil {
			log.Error().Err(err).Str("analysisId", m.AnalysisID).Msg("failed to recompute player analysis")
		}
		time.Sleep(w.sep)
	}

	parties, err := w.PartyRepo.GetFlagged(ctx, batchLimit)
	if err != nil {
		return err
	}
	for _, m := range parties {
		if w.dryRun {
			log.Info().Str("partyAnalysisId", m.PartyAnalysisID).Msg("dry run: would recompute party analysis")
			continue
		}
		if err := w.PartyService.Compute(ctx, m.PartyAnalysisID); err != nil {
			log.Error().Err(err).Str("partyAnalysisId", m.PartyAnalysisID).Msg("failed to recompute party analysis")
		}
		time.Sleep(w.sep)
	}
	return nil
}

func (w *Worker) heartbeat() {
	if w.heartbeatURL == "" {
		return
	}
	resp, err := http.Get(w.heartbeatURL)
	if err != nil {
		log.Error().Err(err).Msg("failed to send recompute heartbeat")
		return
	}
	resp.Body.Close()
}

func (w *Worker) Count() int {
	return w.count
}
