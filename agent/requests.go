// Package agent provides typed endpoints for an orchestration agent's
// service API: registration, deregistration, maintenance mode, and local
// health and discovery reads.
//
// Request types implement rivet.Endpoint. Fields serialized into bodies use
// the agent's PascalCase wire names (the identifier is always "ID"); absent
// optional fields are omitted, never sent as null. Namespace filters travel
// as the "ns" query parameter.
package agent

import (
	"net/http"

	"github.com/rivetlabs/rivet"
)

// ListServicesRequest returns all services registered with the local agent.
//
// GET agent/services
type ListServicesRequest struct {
	Namespace *string `schema:"ns" json:"-"`
}

func (r *ListServicesRequest) Describe() rivet.Descriptor {
	return rivet.Descriptor{
		Method:       http.MethodGet,
		PathTemplate: "agent/services",
		QueryFields:  []string{"ns"},
		HasResponse:  true,
	}
}

// WithNamespace sets the namespace filter.
func (r *ListServicesRequest) WithNamespace(ns string) *ListServicesRequest {
	r.Namespace = &ns
	return r
}

// ReadServiceRequest returns the full definition of a single service
// instance registered on the local agent.
//
// GET agent/service/{name}
type ReadServiceRequest struct {
	Name      string  `path:"name" json:"-"`
	Namespace *string `schema:"ns" json:"-"`
}

// NewReadServiceRequest creates a request for the given service instance name.
func NewReadServiceRequest(name string) *ReadServiceRequest {
	return &ReadServiceRequest{Name: name}
}

func (r *ReadServiceRequest) Describe() rivet.Descriptor {
	return rivet.Descriptor{
		Method:       http.MethodGet,
		PathTemplate: "agent/service/{name}",
		QueryFields:  []string{"ns"},
		HasResponse:  true,
	}
}

// WithNamespace sets the namespace filter.
func (r *ReadServiceRequest) WithNamespace(ns string) *ReadServiceRequest {
	r.Namespace = &ns
	return r
}

// ServiceHealthRequest retrieves the aggregated health of services on the
// local agent by service name.
//
// GET agent/health/service/name/{name}
type ServiceHealthRequest struct {
	Name      string  `path:"name" json:"-"`
	Namespace *string `schema:"ns" json:"-"`
}

// NewServiceHealthRequest creates a health request for the given service name.
func NewServiceHealthRequest(name string) *ServiceHealthRequest {
	return &ServiceHealthRequest{Name: name}
}

func (r *ServiceHealthRequest) Describe() rivet.Descriptor {
	return rivet.Descriptor{
		Method:       http.MethodGet,
		PathTemplate: "agent/health/service/name/{name}",
		QueryFields:  []string{"ns"},
		HasResponse:  true,
	}
}

// WithNamespace sets the namespace filter.
func (r *ServiceHealthRequest) WithNamespace(ns string) *ServiceHealthRequest {
	r.Namespace = &ns
	return r
}

// ServiceHealthByIDRequest retrieves the health of a specific service
// instance on the local agent by ID.
//
// GET agent/health/service/id/{id}
type ServiceHealthByIDRequest struct {
	ID        string  `path:"id" json:"-"`
	Namespace *string `schema:"ns" json:"-"`
}

// NewServiceHealthByIDRequest creates a health request for the given
// instance ID.
func NewServiceHealthByIDRequest(id string) *ServiceHealthByIDRequest {
	return &ServiceHealthByIDRequest{ID: id}
}

func (r *ServiceHealthByIDRequest) Describe() rivet.Descriptor {
	return rivet.Descriptor{
		Method:       http.MethodGet,
		PathTemplate: "agent/health/service/id/{id}",
		QueryFields:  []string{"ns"},
		HasResponse:  true,
	}
}

// WithNamespace sets the namespace filter.
func (r *ServiceHealthByIDRequest) WithNamespace(ns string) *ServiceHealthByIDRequest {
	r.Namespace = &ns
	return r
}

// RegisterServiceRequest adds a new service, with optional health checks and
// sidecar configuration, to the local agent. Registration is idempotent by
// instance ID. Even a registration with no optional fields set sends a body.
//
// PUT agent/service/register
type RegisterServiceRequest struct {
	Name              string            `json:"Name" validate:"required" schema:"-"`
	ID                *string           `json:"ID,omitempty" schema:"-"`
	Address           *string           `json:"Address,omitempty" schema:"-"`
	Port              *int              `json:"Port,omitempty" validate:"omitempty,gte=1,lte=65535" schema:"-"`
	Kind              *string           `json:"Kind,omitempty" schema:"-"`
	Tags              []string          `json:"Tags,omitempty" schema:"-"`
	Meta              map[string]string `json:"Meta,omitempty" schema:"-"`
	TaggedAddresses   map[string]string `json:"TaggedAddresses,omitempty" schema:"-"`
	EnableTagOverride *bool             `json:"EnableTagOverride,omitempty" schema:"-"`
	Check             *CheckDefinition  `json:"Check,omitempty" schema:"-"`
	Checks            []CheckDefinition `json:"Checks,omitempty" schema:"-"`
	Connect           *Connect          `json:"Connect,omitempty" schema:"-"`
	Proxy             *Proxy            `json:"Proxy,omitempty" schema:"-"`
	Weights           *Weights          `json:"Weights,omitempty" schema:"-"`
	Namespace         *string           `schema:"ns" json:"-"`
}

// NewRegisterServiceRequest creates a registration for the given service
// name; everything else starts absent.
func NewRegisterServiceRequest(name string) *RegisterServiceRequest {
	return &RegisterServiceRequest{Name: name}
}

func (r *RegisterServiceRequest) Describe() rivet.Descriptor {
	return rivet.Descriptor{
		Method:       http.MethodPut,
		PathTemplate: "agent/service/register",
		QueryFields:  []string{"ns"},
		HasBody:      true,
	}
}

// WithID sets the instance ID. Defaults to the service name on the agent
// side when absent.
func (r *RegisterServiceRequest) WithID(id string) *RegisterServiceRequest {
	r.ID = &id
	return r
}

// WithAddress sets the service address.
func (r *RegisterServiceRequest) WithAddress(addr string) *RegisterServiceRequest {
	r.Address = &addr
	return r
}

// WithPort sets the service port.
func (r *RegisterServiceRequest) WithPort(port int) *RegisterServiceRequest {
	r.Port = &port
	return r
}

// WithKind sets the service kind, e.g. "connect-proxy".
func (r *RegisterServiceRequest) WithKind(kind string) *RegisterServiceRequest {
	r.Kind = &kind
	return r
}

// WithTags appends tags.
func (r *RegisterServiceRequest) WithTags(tags ...string) *RegisterServiceRequest {
	r.Tags = append(r.Tags, tags...)
	return r
}

// WithMeta adds one metadata key-value pair.
func (r *RegisterServiceRequest) WithMeta(key, value string) *RegisterServiceRequest {
	if r.Meta == nil {
		r.Meta = make(map[string]string)
	}
	r.Meta[key] = value
	return r
}

// WithTaggedAddress adds one tagged address.
func (r *RegisterServiceRequest) WithTaggedAddress(tag, addr string) *RegisterServiceRequest {
	if r.TaggedAddresses == nil {
		r.TaggedAddresses = make(map[string]string)
	}
	r.TaggedAddresses[tag] = addr
	return r
}

// WithEnableTagOverride controls external tag updates.
func (r *RegisterServiceRequest) WithEnableTagOverride(enable bool) *RegisterServiceRequest {
	r.EnableTagOverride = &enable
	return r
}

// WithCheck sets the single health check definition.
func (r *RegisterServiceRequest) WithCheck(check *CheckDefinition) *RegisterServiceRequest {
	r.Check = check
	return r
}

// WithChecks appends health check definitions.
func (r *RegisterServiceRequest) WithChecks(checks ...CheckDefinition) *RegisterServiceRequest {
	r.Checks = append(r.Checks, checks...)
	return r
}

// WithConnect sets the connect configuration.
func (r *RegisterServiceRequest) WithConnect(connect *Connect) *RegisterServiceRequest {
	r.Connect = connect
	return r
}

// WithProxy sets the proxy configuration.
func (r *RegisterServiceRequest) WithProxy(proxy *Proxy) *RegisterServiceRequest {
	r.Proxy = proxy
	return r
}

// WithWeights sets the service weights.
func (r *RegisterServiceRequest) WithWeights(weights *Weights) *RegisterServiceRequest {
	r.Weights = weights
	return r
}

// WithNamespace sets the target namespace.
func (r *RegisterServiceRequest) WithNamespace(ns string) *RegisterServiceRequest {
	r.Namespace = &ns
	return r
}

// DeregisterServiceRequest removes a service instance from the local agent.
//
// PUT agent/service/deregister/{id}
type DeregisterServiceRequest struct {
	ID        string  `path:"id" json:"-"`
	Namespace *string `schema:"ns" json:"-"`
}

// NewDeregisterServiceRequest creates a deregistration for the given
// instance ID.
func NewDeregisterServiceRequest(id string) *DeregisterServiceRequest {
	return &DeregisterServiceRequest{ID: id}
}

func (r *DeregisterServiceRequest) Describe() rivet.Descriptor {
	return rivet.Descriptor{
		Method:       http.MethodPut,
		PathTemplate: "agent/service/deregister/{id}",
		QueryFields:  []string{"ns"},
	}
}

// WithNamespace sets the target namespace.
func (r *DeregisterServiceRequest) WithNamespace(ns string) *DeregisterServiceRequest {
	r.Namespace = &ns
	return r
}

// EnableMaintenanceRequest toggles maintenance mode for a service instance.
// While in maintenance mode the instance is marked critical and excluded
// from discovery results.
//
// PUT agent/service/maintenance/{id}
type EnableMaintenanceRequest struct {
	ID        string  `path:"id" json:"-"`
	Enable    bool    `schema:"enable" json:"-"`
	Reason    *string `schema:"reason" json:"-"`
	Namespace *string `schema:"ns" json:"-"`
}

// NewEnableMaintenanceRequest creates a maintenance toggle for the given
// instance ID. Enable is always sent, even when false.
func NewEnableMaintenanceRequest(id string, enable bool) *EnableMaintenanceRequest {
	return &EnableMaintenanceRequest{ID: id, Enable: enable}
}

func (r *EnableMaintenanceRequest) Describe() rivet.Descriptor {
	return rivet.Descriptor{
		Method:       http.MethodPut,
		PathTemplate: "agent/service/maintenance/{id}",
		QueryFields:  []string{"enable", "reason", "ns"},
	}
}

// WithReason attaches a human-readable reason to the maintenance toggle.
func (r *EnableMaintenanceRequest) WithReason(reason string) *EnableMaintenanceRequest {
	r.Reason = &reason
	return r
}

// WithNamespace sets the target namespace.
func (r *EnableMaintenanceRequest) WithNamespace(ns string) *EnableMaintenanceRequest {
	r.Namespace = &ns
	return r
}
