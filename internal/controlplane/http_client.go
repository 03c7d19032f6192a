package controlplane

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/srand/tilecore/internal/project"
	"github.com/srand/tilecore/pkg/log"
)

// stateUpdate is the wire payload posted to the control plane.
type stateUpdate struct {
	ProjectID        string `json:"project_id"`
	InputSourceState string `json:"input_source_state"`
}

// HTTPClient posts project state updates asynchronously through a
// bounded, channel-buffered goroutine, grounded on the teacher's
// dashboard.dashboardHooks telemetry hook: never block the ingestor tick on
// a slow or unreachable control plane, and drop-and-log when the backlog is
// full rather than apply backpressure.
type HTTPClient struct {
	baseURL string
	client  http.Client
	ch      chan stateUpdate
	log     *log.ComponentLogger
}

// NewHTTPClient creates an HTTPClient posting to baseURL and starts its
// background sender.
func NewHTTPClient(baseURL string) *HTTPClient {
	c := &HTTPClient{
		baseURL: baseURL,
		ch:      make(chan stateUpdate, 1000),
		log:     log.Component("controlplane"),
	}
	go c.run()
	return c
}

func (c *HTTPClient) UpdateProject(ctx context.Context, projectID string, state project.InputSourceState) error {
	update := stateUpdate{ProjectID: projectID, InputSourceState: string(state)}
	select {
	case c.ch <- update:
	default:
		c.log.Warnf("dropping project state update for %s, channel full", projectID)
	}
	return nil
}

func (c *HTTPClient) run() {
	for update := range c.ch {
		if err := c.post(update); err != nil {
			c.log.Tracef("failed to post project state update: %v", err)
		}
	}
}

func (c *HTTPClient) post(update stateUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}

	uri := fmt.Sprintf("%s/api/v1/projects/%s", c.baseURL, update.ProjectID)
	resp, err := c.client.Post(uri, echo.MIMEApplicationJSON, bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}
