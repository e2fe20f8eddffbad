package agent

import (
	"context"

	"github.com/rivetlabs/rivet"
)

// Client exposes the agent service API over a configured rivet.Client.
type Client struct {
	rc *rivet.Client
}

// NewClient wraps an existing rivet.Client.
func NewClient(rc *rivet.Client) *Client {
	return &Client{rc: rc}
}

// Dial is a convenience constructor: an agent client over the thin HTTP
// transport targeting baseURL, e.g. "http://127.0.0.1:8500/v1".
func Dial(baseURL string) (*Client, error) {
	transport, err := rivet.NewHTTPTransport(baseURL)
	if err != nil {
		return nil, err
	}
	return NewClient(rivet.NewClient(transport)), nil
}

// Rivet returns the underlying rivet.Client for interceptor or codec
// configuration.
func (c *Client) Rivet() *rivet.Client {
	return c.rc
}

// Services lists all services registered with the local agent, keyed by
// instance ID. A nil request lists the default namespace.
func (c *Client) Services(ctx context.Context, req *ListServicesRequest) (map[string]ServiceSummary, error) {
	if req == nil {
		req = &ListServicesRequest{}
	}
	return rivet.Do[map[string]ServiceSummary](ctx, c.rc, req)
}

// Service reads one service instance's full definition.
func (c *Client) Service(ctx context.Context, req *ReadServiceRequest) (*ServiceSummary, error) {
	res, err := rivet.Do[ServiceSummary](ctx, c.rc, req)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Register adds a service to the local agent.
func (c *Client) Register(ctx context.Context, req *RegisterServiceRequest) error {
	return rivet.Call(ctx, c.rc, req)
}

// Deregister removes a service instance from the local agent.
func (c *Client) Deregister(ctx context.Context, req *DeregisterServiceRequest) error {
	return rivet.Call(ctx, c.rc, req)
}

// Maintenance toggles maintenance mode for a service instance.
func (c *Client) Maintenance(ctx context.Context, req *EnableMaintenanceRequest) error {
	return rivet.Call(ctx, c.rc, req)
}

// Health retrieves aggregated health for all instances of a named service.
func (c *Client) Health(ctx context.Context, req *ServiceHealthRequest) ([]HealthSummary, error) {
	return rivet.Do[[]HealthSummary](ctx, c.rc, req)
}

// HealthByID retrieves aggregated health for one service instance.
func (c *Client) HealthByID(ctx context.Context, req *ServiceHealthByIDRequest) ([]HealthSummary, error) {
	return rivet.Do[[]HealthSummary](ctx, c.rc, req)
}
