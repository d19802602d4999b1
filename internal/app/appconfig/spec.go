package appconfig

import (
	"time"

	"xivcrit.app/backend/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving normal service requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:8000"`

	// AdminAddress is the listen address would listen on for serving the error-tracking admin app.
	// Leaving this empty will disable the admin server.
	// This address is only intended to be used in intra-cluster requests, and is not intended to be exposed to the public.
	AdminAddress string `split_words:"true"`

	// BasePath is the URL path prefix the public API is mounted under, e.g. when served behind
	// a reverse proxy at a sub-path. Leave empty to mount at the root.
	BasePath string `split_words:"true"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging and
	// provide a more contextual message when encountered a panic. See internal/server/httpserver/http.go for the
	// actual implementation details.
	DevMode bool `split_words:"true"`

	// DryRun makes the recompute worker report what it would recompute without persisting anything.
	DryRun bool `split_words:"true"`

	// FFLogsToken is the FFLogs v2 API client credentials bearer token used for all upstream
	// GraphQL queries. See https://www.fflogs.com/api/docs for how to obtain one.
	FFLogsToken string `required:"true" split_words:"true"`

	// infrastructure components connection instructions

	// DBURI is the data source name for the SQLite database holding analyses, encounters and
	// access records. A plain file path with query options, e.g. "file:crit.db?_fk=1".
	DBURI string `required:"true" split_words:"true"`

	DBMaxOpenConns    int           `split_words:"true" default:"10"`
	DBMaxIdleConns    int           `split_words:"true" default:"2"`
	DBConnMaxLifeTime time.Duration `split_words:"true" default:"5m"`
	DBConnMaxIdleTime time.Duration `split_words:"true" default:"5m"`

	BunDebugVerbose bool `split_words:"true"`

	// NatsURL is the URL of the NATS server. See https://pkg.go.dev/github.com/nats-io/nats.go#Connect
	// for more information on how to construct a NATS URL.
	NatsURL string `required:"true" split_words:"true" default:"nats://127.0.0.1:4222"`

	// RedisURL is the URL of the Redis server, and by default uses redis db 1, to avoid potential collision
	// with the previous running backend instance. See https://pkg.go.dev/github.com/go-redis/redis/v9#ParseURL
	// for more information on how to construct a Redis URL.
	RedisURL string `required:"true" split_words:"true" default:"redis://127.0.0.1:6379/1"`

	// BlobEndpoint is the S3-compatible endpoint serialized analysis distributions and error
	// payloads are written to. Analyses cannot be stored or served without it, so it must
	// be set.
	BlobEndpoint string `required:"true" split_words:"true"`

	// BlobAccessKey is the access key of the blob store account.
	BlobAccessKey string `split_words:"true"`

	// BlobSecretKey is the secret key of the blob store account.
	BlobSecretKey string `split_words:"true"`

	// BlobBucket is the bucket name analyses are stored under.
	BlobBucket string `split_words:"true" default:"crit-analyses"`

	// BlobUseSSL is whether to connect to the blob endpoint over TLS.
	BlobUseSSL bool `split_words:"true" default:"true"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`

	// AnalysisWorkers is the number of concurrent NATS consumers draining the analysis
	// task queue. Zero means one consumer per CPU.
	AnalysisWorkers int `split_words:"true"`

	// WorkerInterval describes the interval in-between different recompute batches
	WorkerInterval time.Duration `required:"true" split_words:"true" default:"6h"`

	// WorkerSeparation describes the separation time in-between different microtasks
	WorkerSeparation time.Duration `required:"true" split_words:"true" default:"3s"`

	// WorkerTimeout describes the timeout for a single batch to run
	WorkerTimeout time.Duration `required:"true" split_words:"true" default:"10m"`

	// WorkerHeartbeatURL is the map of URLs to ping to check if the worker is alive.
	// The key is the name of the worker, and the value is the URL.
	// Possible keys are: "recompute"
	WorkerHeartbeatURL WorkerHeartbeatURLMap `split_words:"true"`

	// WorkerEnabled is a flag to indicate whether to enable the worker.
	WorkerEnabled bool `split_words:"true"`

	// AdminKey is the key used to authenticate the admin API.
	AdminKey string `split_words:"true"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
