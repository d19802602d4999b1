package fflogs

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"xivcrit.app/backend/internal/app/appconfig"
	"xivcrit.app/backend/internal/pkg/apperr"
	"xivcrit.app/backend/internal/pkg/observability"
)

const apiURL = "https://www.fflogs.com/api/v2/client"

const privateReportMessage = "You do not have permission to view this report."

// Client queries the FFLogs GraphQL v2 API with bearer token auth.
type Client struct {
	http  *http.Client
	token string
	url   string
}

func NewClient(conf *appconfig.Config) *Client {
	return &Client{
		http: &http.Client{
			Timeout: time.Second * 30,
		},
		token: conf.FFLogsToken,
		url:   apiURL,
	}
}

type gqlRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

// Query runs one GraphQL operation and returns the parsed response body.
// GraphQL-level errors are mapped to apperr values; transient transport
// failures are retried.
func (c *Client) Query(ctx context.Context, operationName, query string, variables map[string]any) (gjson.Result, error) {
	payload, err := json.Marshal(gqlRequest{
		Query:         query,
		Variables:     variables,
		OperationName: operationName,
	})
	if err != nil {
		return gjson.Result{}, errors.Wrap(err, "fflogs: marshal query")
	}

	started := time.Now()
	defer func() {
		observability.FFLogsRequestDuration.
			WithLabelValues(operationName).
			Observe(time.Since(started).Seconds())
	}()

	body, err := retry.DoWithData(func() ([]byte, error) {
		return c.post(ctx, payload)
	},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return gjson.Result{}, apperr.ErrUpstream.Msg("FFLogs API request failed: %s", err)
	}

	result := gjson.ParseBytes(body)
	if gqlErrors := result.Get("errors"); gqlErrors.Exists() && len(gqlErrors.Array()) > 0 {
		message := gqlErrors.Get("0.message").String()
		log.Ctx(ctx).Warn().
			Str("operation", operationName).
			Str("message", message).
			Msg("fflogs query returned an error")
		if message == privateReportMessage {
			return gjson.Result{}, ErrReportPrivate
		}
		return gjson.Result{}, apperr.ErrUpstream.Msg("%s", message)
	}

	return result, nil
}

func (c *Client) post(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "fflogs: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fflogs: execute request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fflogs: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "fflogs: read response")
	}
	return body, nil
}
