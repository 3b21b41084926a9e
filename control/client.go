// Package control implements the orchestrator's command surface: a small
// REST client used to manage the activity catalog, recording sessions, and
// prediction mode.
package control

import (
	"context"
	"net/http"
	"strings"

	"github.com/RodCaba/fp-orchestrator/internal/log"
	"github.com/RodCaba/fp-orchestrator/wire"
	"github.com/go-resty/resty/v2"
)

// Client issues commands to the orchestrator's REST API.
type Client struct {
	rest    *resty.Client
	options ClientOptions

	log logger
}

// NewClient constructs a new control client for the orchestrator at the
// given base URL.
func NewClient(baseURL string, opt ...ClientOption) *Client {
	client := &Client{}
	client.options.Apply(opt)

	client.rest = resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(client.options.Timeout).
		SetHeader("Accept", "application/json, text/plain")

	client.log.Logger = log.Wrap(client.options.Logger)

	return client
}

// ListActivities fetches the activity catalog.
func (c *Client) ListActivities(ctx context.Context) ([]wire.Activity, error) {
	c.log.request(ctx, http.MethodGet, "/api/activities")

	var activities []wire.Activity
	res, err := c.rest.R().
		SetContext(ctx).
		SetResult(&activities).
		Get("/api/activities")
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, remoteError(res)
	}
	return activities, nil
}

// CreateActivity defines a new activity in the catalog and returns it as
// stored by the orchestrator.
func (c *Client) CreateActivity(
	ctx context.Context,
	name string,
	description string,
) (*wire.Activity, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &InvalidArgumentError{
			message: "activity name must not be empty",
		}
	}

	c.log.request(ctx, http.MethodPost, "/api/activities")

	var created wire.Activity
	res, err := c.rest.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"name":        name,
			"description": description,
		}).
		SetResult(&created).
		Post("/api/activities")
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, remoteError(res)
	}
	return &created, nil
}

// StartActivity asks the orchestrator to begin recording the named activity.
// On success it returns the orchestrator's confirmation message.
func (c *Client) StartActivity(
	ctx context.Context,
	name string,
) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", &InvalidArgumentError{
			message: "activity name must not be empty",
		}
	}
	return c.post(ctx, "/api/start_activity", map[string]string{
		"activity_name": name,
	})
}

// StopActivity asks the orchestrator to stop the running recording session.
func (c *Client) StopActivity(ctx context.Context) (string, error) {
	return c.post(ctx, "/api/stop_activity", nil)
}

// StartPrediction asks the orchestrator to enter prediction mode.
func (c *Client) StartPrediction(ctx context.Context) (string, error) {
	return c.post(ctx, "/api/start_prediction", map[string]string{})
}

// StopPrediction asks the orchestrator to leave prediction mode.
func (c *Client) StopPrediction(ctx context.Context) (string, error) {
	return c.post(ctx, "/api/stop_prediction", nil)
}

// LatestMetrics fetches the most recent performance metrics.
func (c *Client) LatestMetrics(ctx context.Context) (map[string]any, error) {
	return c.get(ctx, "/api/metrics/latest")
}

// MetricsSummary fetches the aggregated performance metrics.
func (c *Client) MetricsSummary(ctx context.Context) (map[string]any, error) {
	return c.get(ctx, "/api/metrics/summary")
}

// post issues a command and returns the orchestrator's plain-text response.
func (c *Client) post(
	ctx context.Context,
	path string,
	body any,
) (string, error) {
	c.log.request(ctx, http.MethodPost, path)

	req := c.rest.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	res, err := req.Post(path)
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", remoteError(res)
	}
	return strings.TrimSpace(string(res.Body())), nil
}

func (c *Client) get(
	ctx context.Context,
	path string,
) (map[string]any, error) {
	c.log.request(ctx, http.MethodGet, path)

	var result map[string]any
	res, err := c.rest.R().
		SetContext(ctx).
		SetResult(&result).
		Get(path)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, remoteError(res)
	}
	return result, nil
}
