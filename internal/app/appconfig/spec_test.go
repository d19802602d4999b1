package appconfig

import (
	"os"
	"testing"

	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CRIT_APP_FF_LOGS_TOKEN", "token")
	t.Setenv("CRIT_APP_DBURI", "file:crit.db")
	t.Setenv("CRIT_APP_BLOB_ENDPOINT", "127.0.0.1:9000")
}

func TestSpecParses(t *testing.T) {
	setRequiredEnv(t)

	var spec ConfigSpec
	require.NoError(t, envconfig.Process("crit_app", &spec))
	assert.Equal(t, "127.0.0.1:9000", spec.BlobEndpoint)
	assert.Equal(t, "crit-analyses", spec.BlobBucket)
	assert.Equal(t, "localhost:8000", spec.ServiceAddress)
}

func TestSpecRequiresBlobEndpoint(t *testing.T) {
	// Analyses live in the blob store, so a deployment without an endpoint
	// must fail at parse time instead of at the first minio call.
	setRequiredEnv(t)
	t.Setenv("CRIT_APP_BLOB_ENDPOINT", "") // register the restore
	require.NoError(t, os.Unsetenv("CRIT_APP_BLOB_ENDPOINT"))

	var spec ConfigSpec
	assert.Error(t, envconfig.Process("crit_app", &spec))
}

func TestWorkerHeartbeatURLMapDecode(t *testing.T) {
	var m WorkerHeartbeatURLMap
	require.NoError(t, m.Decode("player=http://hb/p, party=http://hb/q"))
	assert.Equal(t, WorkerHeartbeatURLMap{"player": "http://hb/p", "party": "http://hb/q"}, m)

	assert.Error(t, m.Decode("nodelimiter"))
}
