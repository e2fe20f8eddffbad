package agent

// ServiceSummary is one registered service instance as reported by the
// agent's discovery endpoints.
type ServiceSummary struct {
	ID                string            `json:"ID"`
	Service           string            `json:"Service"`
	Address           string            `json:"Address,omitempty"`
	Port              int               `json:"Port,omitempty"`
	Kind              string            `json:"Kind,omitempty"`
	Tags              []string          `json:"Tags,omitempty"`
	Meta              map[string]string `json:"Meta,omitempty"`
	TaggedAddresses   map[string]string `json:"TaggedAddresses,omitempty"`
	EnableTagOverride bool              `json:"EnableTagOverride,omitempty"`
	Weights           *ServiceWeights   `json:"Weights,omitempty"`
	Datacenter        string            `json:"Datacenter,omitempty"`
	Namespace         string            `json:"Namespace,omitempty"`
	ContentHash       string            `json:"ContentHash,omitempty"`
}

// ServiceWeights are the effective numeric discovery weights on the read
// side. Registrations send them as strings; the agent reports integers.
type ServiceWeights struct {
	Passing int `json:"Passing"`
	Warning int `json:"Warning"`
}

// Aggregated health states reported for a service instance.
const (
	StatusPassing     = "passing"
	StatusWarning     = "warning"
	StatusCritical    = "critical"
	StatusMaintenance = "maintenance"
)

// HealthSummary is the aggregated health of one service instance: the worst
// state across its checks, the instance itself, and the individual check
// results.
type HealthSummary struct {
	AggregatedStatus string         `json:"AggregatedStatus"`
	Service          ServiceSummary `json:"Service"`
	Checks           []CheckRecord  `json:"Checks,omitempty"`
}

// CheckRecord is one check result attached to a service instance.
type CheckRecord struct {
	CheckID     string `json:"CheckID"`
	Name        string `json:"Name,omitempty"`
	Status      string `json:"Status"`
	Notes       string `json:"Notes,omitempty"`
	Output      string `json:"Output,omitempty"`
	ServiceID   string `json:"ServiceID,omitempty"`
	ServiceName string `json:"ServiceName,omitempty"`
	Type        string `json:"Type,omitempty"`
}
