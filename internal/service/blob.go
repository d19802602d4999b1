package service

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"xivcrit.app/backend/internal/app/appconfig"
	"xivcrit.app/backend/internal/constant"
	"xivcrit.app/backend/internal/model/view"
)

// Blob offloads serialized distribution payloads to the object store. The
// database rows only carry analysis inputs; everything derived lives here.
type Blob struct {
	Client *minio.Client
	Bucket string
}

func NewBlob(client *minio.Client, conf *appconfig.Config) *Blob {
	return &Blob{
		Client: client,
		Bucket: conf.BlobBucket,
	}
}

func (s *Blob) put(ctx context.Context, key string, payload any) error {
	b, err := msgpack.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "blob: marshal payload")
	}

	_, err = s.Client.PutObject(ctx, s.Bucket, key, bytes.NewReader(b), int64(len(b)), minio.PutObjectOptions{
		ContentType: "application/msgpack",
	})
	return errors.Wrapf(err, "blob: put %s", key)
}

func (s *Blob) get(ctx context.Context, key string, dest any) error {
	obj, err := s.Client.GetObject(ctx, s.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return errors.Wrapf(err, "blob: get %s", key)
	}
	defer obj.Close()

	b, err := io.ReadAll(obj)
	if err != nil {
		return errors.Wrapf(err, "blob: read %s", key)
	}
	return errors.Wrapf(msgpack.Unmarshal(b, dest), "blob: unmarshal %s", key)
}

func (s *Blob) PutPlayerAnalysis(ctx context.Context, payload *view.PlayerAnalysisPayload) error {
	return s.put(ctx, constant.BlobPlayerAnalysisPrefix+payload.AnalysisID, payload)
}

func (s *Blob) GetPlayerAnalysis(ctx context.Context, analysisID string) (*view.PlayerAnalysisPayload, error) {
	var payload view.PlayerAnalysisPayload
	if err := s.get(ctx, constant.BlobPlayerAnalysisPrefix+analysisID, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (s *Blob) PutPartyAnalysis(ctx context.Context, payload *view.PartyAnalysisPayload) error {
	return s.put(ctx, constant.BlobPartyAnalysisPrefix+payload.PartyAnalysisID, payload)
}

func (s *Blob) GetPartyAnalysis(ctx context.Context, partyAnalysisID string) (*view.PartyAnalysisPayload, error) {
	var payload view.PartyAnalysisPayload
	if err := s.get(ctx, constant.BlobPartyAnalysisPrefix+partyAnalysisID, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// PutErrorLog dumps an arbitrary failure payload for later inspection from
// the admin app.
func (s *Blob) PutErrorLog(ctx context.Context, errorID string, dump []byte) error {
	_, err := s.Client.PutObject(ctx, s.Bucket, constant.BlobErrorLogPrefix+errorID, bytes.NewReader(dump), int64(len(dump)), minio.PutObjectOptions{
		ContentType: "text/plain",
	})
	return errors.Wrapf(err, "blob: put error log %s", errorID)
}

func (s *Blob) GetErrorLog(ctx context.Context, errorID string) ([]byte, error) {
	obj, err := s.Client.GetObject(ctx, s.Bucket, constant.BlobErrorLogPrefix+errorID, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "blob: get error log %s", errorID)
	}
	defer obj.Close()

	b, err := io.ReadAll(obj)
	return b, errors.Wrapf(err, "blob: read error log %s", errorID)
}
