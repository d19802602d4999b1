package infra

import (
	"context"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"xivcrit.app/backend/internal/app/appconfig"
)

func Blob(conf *appconfig.Config) (*minio.Client, error) {
	client, err := minio.New(conf.BlobEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.BlobAccessKey, conf.BlobSecretKey, ""),
		Secure: conf.BlobUseSSL,
	})
	if err != nil {
		log.Error().Err(err).Msg("infra: blob: failed to create minio client")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	exists, err := client.BucketExists(ctx, conf.BlobBucket)
	if err != nil {
		log.Error().Err(err).Msg("infra: blob: failed to check bucket")
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, conf.BlobBucket, minio.MakeBucketOptions{}); err != nil {
			log.Error().Err(err).Msg("infra: blob: failed to create bucket")
			return nil, err
		}
	}

	return client, nil
}
