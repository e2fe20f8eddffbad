package agent

// CheckDefinition describes a health check attached to a service
// registration. Exactly one probe style (HTTP, TCP, GRPC, or TTL) is
// normally set; intervals and timeouts travel as duration strings like
// "10s". Absent fields are omitted from the serialized registration.
type CheckDefinition struct {
	Name                           string              `json:"Name,omitempty"`
	CheckID                        *string             `json:"CheckID,omitempty"`
	Notes                          *string             `json:"Notes,omitempty"`
	Status                         *string             `json:"Status,omitempty" validate:"omitempty,oneof=passing warning critical"`
	HTTP                           *string             `json:"HTTP,omitempty"`
	Method                         *string             `json:"Method,omitempty"`
	Body                           *string             `json:"Body,omitempty"`
	Header                         map[string][]string `json:"Header,omitempty"`
	TCP                            *string             `json:"TCP,omitempty"`
	GRPC                           *string             `json:"GRPC,omitempty"`
	GRPCUseTLS                     *bool               `json:"GRPCUseTLS,omitempty"`
	TLSSkipVerify                  *bool               `json:"TLSSkipVerify,omitempty"`
	TTL                            *string             `json:"TTL,omitempty"`
	Interval                       *string             `json:"Interval,omitempty"`
	Timeout                        *string             `json:"Timeout,omitempty"`
	SuccessBeforePassing           *int                `json:"SuccessBeforePassing,omitempty"`
	FailuresBeforeCritical         *int                `json:"FailuresBeforeCritical,omitempty"`
	DeregisterCriticalServiceAfter *string             `json:"DeregisterCriticalServiceAfter,omitempty"`
}

// NewHTTPCheck creates an HTTP probe polled at the given interval.
func NewHTTPCheck(url, interval string) *CheckDefinition {
	return &CheckDefinition{HTTP: &url, Interval: &interval}
}

// NewTCPCheck creates a TCP connect probe polled at the given interval.
func NewTCPCheck(addr, interval string) *CheckDefinition {
	return &CheckDefinition{TCP: &addr, Interval: &interval}
}

// NewTTLCheck creates a TTL check that the service must refresh itself.
func NewTTLCheck(ttl string) *CheckDefinition {
	return &CheckDefinition{TTL: &ttl}
}

// WithName sets the check's display name.
func (c *CheckDefinition) WithName(name string) *CheckDefinition {
	c.Name = name
	return c
}

// WithCheckID sets an explicit check ID.
func (c *CheckDefinition) WithCheckID(id string) *CheckDefinition {
	c.CheckID = &id
	return c
}

// WithTimeout sets the probe timeout as a duration string.
func (c *CheckDefinition) WithTimeout(timeout string) *CheckDefinition {
	c.Timeout = &timeout
	return c
}

// WithStatus sets the initial check status.
func (c *CheckDefinition) WithStatus(status string) *CheckDefinition {
	c.Status = &status
	return c
}

// WithDeregisterCriticalServiceAfter asks the agent to remove the service
// once the check has been critical for the given duration.
func (c *CheckDefinition) WithDeregisterCriticalServiceAfter(after string) *CheckDefinition {
	c.DeregisterCriticalServiceAfter = &after
	return c
}
