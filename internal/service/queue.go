package service

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"

	"xivcrit.app/backend/internal/constant"
	"xivcrit.app/backend/internal/model/types"
)

// Queue publishes analysis tasks onto the JetStream work queue. The message
// ID doubles as the JetStream dedupe key so a double submit within the
// duplicate window enqueues once.
type Queue struct {
	JS nats.JetStreamContext
}

func NewQueue(js nats.JetStreamContext) *Queue {
	return &Queue{JS: js}
}

func (s *Queue) publish(ctx context.Context, subject, msgID string, task any) error {
	body, err := json.Marshal(task)
	if err != nil {
		return errors.Wrap(err, "queue: marshal task")
	}

	pub, err := s.JS.PublishAsync(subject, body, nats.MsgId(msgID))
	if err != nil {
		return errors.Wrapf(err, "queue: publish %s", subject)
	}

	select {
	case err := <-pub.Err():
		return errors.Wrapf(err, "queue: publish %s", subject)
	case <-pub.Ok():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Millisecond * 500):
		return errors.Errorf("queue: timeout waiting for ack on %s", subject)
	}
}

func (s *Queue) PublishPlayerAnalysis(ctx context.Context, analysisID string) error {
	return s.publish(ctx, constant.AnalysisTaskSubject, analysisID, types.AnalysisTask{
		AnalysisID: analysisID,
		CreatedAt:  time.Now().UnixMicro(),
	})
}

func (s *Queue) PublishPartyAnalysis(ctx context.Context, partyAnalysisID string) error {
	return s.publish(ctx, constant.PartyAnalysisTaskSubject, partyAnalysisID, types.PartyAnalysisTask{
		PartyAnalysisID: partyAnalysisID,
		CreatedAt:       time.Now().UnixMicro(),
	})
}
