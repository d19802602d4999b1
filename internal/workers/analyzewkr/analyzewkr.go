package analyzewkr

import (
	"context"
	"runtime"
	"time"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"xivcrit.app/backend/internal/app/appconfig"
	"xivcrit.app/backend/internal/constant"
	"xivcrit.app/backend/internal/model/types"
	"xivcrit.app/backend/internal/pkg/observability"
	"xivcrit.app/backend/internal/service"
)

// taskDeadline bounds one analysis computation. FFLogs fetches dominate the
// wall time; the convolutions themselves finish in seconds.
const taskDeadline = time.Minute * 5

type WorkerDeps struct {
	fx.In

	NatsJS        nats.JetStreamContext
	PlayerService *service.PlayerAnalysis
	PartyService  *service.PartyAnalysis
}

type Worker struct {
	// count is the number of consumers spawned
	count int

	WorkerDeps
}

func Start(conf *appconfig.Config, deps WorkerDeps) {
	ch := make(chan error)
	// handle & dump errors from workers
	go func() {
		for {
			err := <-ch
			if err != nil {
				log.Error().Err(err).Msg("analysis worker error")
			}
		}
	}()

	analysisWorkers := &Worker{
		count:      0,
		WorkerDeps: deps,
	}

	consumers := conf.AnalysisWorkers
	if consumers <= 0 {
		consumers = runtime.NumCPU()
	}
	for i := 0; i < consumers; i++ {
		go func() {
			err := analysisWorkers.Consumer(context.Background(), ch)
			if err != nil {
				ch <- err
			}
		}()
		analysisWorkers.count += 1
	}
}

func (w *Worker) Consumer(ctx context.Context, ch chan error) error {
	msgChan := make(chan *nats.Msg, 16)

	_, err := w.NatsJS.ChanQueueSubscribe(constant.AnalysisStreamSubjects, constant.AnalysisQueueGroup, msgChan, nats.AckWait(time.Second*10), nats.MaxAckPending(128))
	if err != nil {
		log.Err(err).Msgf("failed to subscribe to %s", constant.AnalysisStreamSubjects)
		return err
	}

	for {
		select {
		case msg := <-msgChan:
			if err := w.consume(ctx, msg); err != nil {
				ch <- err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// consume runs one analysis task. The in-progress informer keeps extending
// the ack deadline while the computation runs, so a slow FFLogs fetch does
// not double-deliver the task.
func (w *Worker) consume(ctx context.Context, msg *nats.Msg) error {
	taskCtx, cancelTask := context.WithDeadline(ctx, time.Now().Add(taskDeadline))
	defer cancelTask()

	informer := time.NewTicker(time.Second * 5)
	defer informer.Stop()
	go func() {
		for {
			select {
			case <-informer.C:
				if err := msg.InProgress(); err != nil {
					log.Error().Err(err).Msg("failed to set msg InProgress")
				}
			case <-taskCtx.Done():
				return
			}
		}
	}()

	var err error
	switch msg.Subject {
	case constant.AnalysisTaskSubject:
		err = w.consumePlayerTask(taskCtx, msg.Data)
	case constant.PartyAnalysisTaskSubject:
		err = w.consumePartyTask(taskCtx, msg.Data)
	default:
		log.Warn().Str("subject", msg.Subject).Msg("unexpected subject on analysis queue")
		return msg.Ack()
	}

	if err != nil {
		if nakErr := msg.Nak(); nakErr != nil {
			log.Error().Err(nakErr).Msg("failed to nak")
		}
		return err
	}
	return msg.Ack()
}

func (w *Worker) consumePlayerTask(ctx context.Context, data []byte) error {
	task := &types.AnalysisTask{}
	if err := json.Unmarshal(data, task); err != nil {
		return err
	}
	observeLatency(task.CreatedAt)

	err := w.PlayerService.Compute(ctx, task.AnalysisID)
	if err != nil {
		observability.AnalysisOutcome.WithLabelValues("failed", "player").Inc()
		log.Error().
			Err(err).
			Str("analysisId", task.AnalysisID).
			Msg("failed to compute player analysis")
		return err
	}

	observability.AnalysisOutcome.WithLabelValues("success", "player").Inc()
	log.Info().Str("analysisId", task.AnalysisID).Msg("player analysis computed")
	return nil
}

func (w *Worker) consumePartyTask(ctx context.Context, data []byte) error {
	task := &types.PartyAnalysisTask{}
	if err := json.Unmarshal(data, task); err != nil {
		return err
	}
	observeLatency(task.CreatedAt)

	err := w.PartyService.Compute(ctx, task.PartyAnalysisID)
	if err != nil {
		observability.AnalysisOutcome.WithLabelValues("failed", "party").Inc()
		log.Error().
			Err(err).
			Str("partyAnalysisId", task.PartyAnalysisID).
			Msg("failed to compute party analysis")
		return err
	}

	observability.AnalysisOutcome.WithLabelValues("success", "party").Inc()
	log.Info().Str("partyAnalysisId", task.PartyAnalysisID).Msg("party analysis computed")
	return nil
}

func observeLatency(createdAtMicro int64) {
	if createdAtMicro == 0 {
		return
	}
	observability.AnalysisConsumeMessagingLatency.
		WithLabelValues().
		Observe(time.Since(time.UnixMicro(createdAtMicro)).Seconds())
}
