package agent

// Connect configures service mesh participation for a registration: either
// the service speaks the mesh protocol natively or a sidecar proxy is
// registered alongside it.
type Connect struct {
	Native         *bool           `json:"Native,omitempty"`
	SidecarService *SidecarService `json:"SidecarService,omitempty"`
}

// SidecarService is a nested registration for a sidecar proxy. It mirrors
// the outer registration's shape minus the connect block, and follows the
// same omit-absent rule.
type SidecarService struct {
	Name              string            `json:"Name,omitempty"`
	ID                *string           `json:"ID,omitempty"`
	Address           *string           `json:"Address,omitempty"`
	Port              *int              `json:"Port,omitempty" validate:"omitempty,gte=1,lte=65535"`
	Kind              *string           `json:"Kind,omitempty"`
	Tags              []string          `json:"Tags,omitempty"`
	Meta              map[string]string `json:"Meta,omitempty"`
	TaggedAddresses   map[string]string `json:"TaggedAddresses,omitempty"`
	EnableTagOverride *bool             `json:"EnableTagOverride,omitempty"`
	Check             *CheckDefinition  `json:"Check,omitempty"`
	Checks            []CheckDefinition `json:"Checks,omitempty"`
	Proxy             *Proxy            `json:"Proxy,omitempty"`
	Weights           *Weights          `json:"Weights,omitempty"`
}

// Proxy configures a connect proxy's upstream target.
type Proxy struct {
	DestinationServiceName string `json:"DestinationServiceName"`
}

// Weights sets the relative discovery weights applied while the service is
// passing or warning. Values travel as strings on this wire.
type Weights struct {
	Passing *string `json:"Passing,omitempty"`
	Warning *string `json:"Warning,omitempty"`
}
