package rivet

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"testing"
)

type maintenanceRequest struct {
	ID        string  `path:"id" json:"-"`
	Enable    bool    `schema:"enable" json:"-"`
	Namespace *string `schema:"ns" json:"-"`
}

func (r *maintenanceRequest) Describe() Descriptor {
	return Descriptor{
		Method:       http.MethodPut,
		PathTemplate: "agent/service/maintenance/{id}",
		QueryFields:  []string{"enable", "ns"},
	}
}

type registerRequest struct {
	Name    string  `json:"Name" validate:"required" schema:"-"`
	ID      *string `json:"ID,omitempty" schema:"-"`
	Address *string `json:"Address,omitempty" schema:"-"`
	Port    *int    `json:"Port,omitempty" validate:"omitempty,gte=1,lte=65535" schema:"-"`
}

func (r *registerRequest) Describe() Descriptor {
	return Descriptor{
		Method:       http.MethodPut,
		PathTemplate: "agent/service/register",
		HasBody:      true,
	}
}

func TestCompileMaintenanceBoundary(t *testing.T) {
	c := NewCompiler()
	resolved, err := c.Compile(&maintenanceRequest{ID: "svc1", Enable: true})
	if err != nil {
		t.Fatal(err)
	}
	if resolved.Method != http.MethodPut {
		t.Errorf("expected PUT, got %s", resolved.Method)
	}
	if resolved.URL != "agent/service/maintenance/svc1?enable=true" {
		t.Errorf("unexpected URL %q", resolved.URL)
	}
	if resolved.Body != nil {
		t.Errorf("expected no body, got %q", resolved.Body)
	}
}

func TestCompileMinimalRegisterBody(t *testing.T) {
	c := NewCompiler()
	resolved, err := c.Compile(&registerRequest{Name: "web"})
	if err != nil {
		t.Fatal(err)
	}
	if resolved.URL != "agent/service/register" {
		t.Errorf("unexpected URL %q", resolved.URL)
	}
	// Absent optional fields are omitted, never serialized as null.
	if string(resolved.Body) != `{"Name":"web"}` {
		t.Errorf("expected minimal body, got %s", resolved.Body)
	}
	if got := resolved.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("expected application/json, got %q", got)
	}
}

func TestCompileMissingPathField(t *testing.T) {
	c := NewCompiler()

	t.Run("zero-valued identifier", func(t *testing.T) {
		_, err := c.Compile(&maintenanceRequest{Enable: true})
		var rivetErr *Error
		if !errors.As(err, &rivetErr) || rivetErr.Code != CodeMissingPathField {
			t.Fatalf("expected %s, got %v", CodeMissingPathField, err)
		}
	})

	t.Run("no matching field", func(t *testing.T) {
		_, err := c.Compile(&orphanPlaceholderRequest{})
		var rivetErr *Error
		if !errors.As(err, &rivetErr) || rivetErr.Code != CodeMissingPathField {
			t.Fatalf("expected %s, got %v", CodeMissingPathField, err)
		}
	})
}

type orphanPlaceholderRequest struct {
	Name string `json:"-"`
}

func (r *orphanPlaceholderRequest) Describe() Descriptor {
	return Descriptor{PathTemplate: "agent/service/deregister/{id}"}
}

type danglingQueryRequest struct {
	Name string
}

func (r *danglingQueryRequest) Describe() Descriptor {
	return Descriptor{PathTemplate: "agent/services", QueryFields: []string{"ns"}}
}

type unmatchedPathFieldRequest struct {
	ID string `path:"id"`
}

func (r *unmatchedPathFieldRequest) Describe() Descriptor {
	return Descriptor{PathTemplate: "agent/services"}
}

type bodyRequest struct {
	Name string `json:"Name"`
}

func (r *bodyRequest) Describe() Descriptor {
	return Descriptor{Method: http.MethodPut, PathTemplate: "agent/service/register", HasBody: true}
}

func TestCompileMalformedDescriptor(t *testing.T) {
	tests := []struct {
		name string
		c    *Compiler
		req  Endpoint
	}{
		{
			name: "query field without struct field",
			c:    NewCompiler(),
			req:  &danglingQueryRequest{},
		},
		{
			name: "path field without placeholder",
			c:    NewCompiler(),
			req:  &unmatchedPathFieldRequest{ID: "x"},
		},
		{
			name: "body claimed with no codec",
			c:    NewCompiler().WithCodec(nil),
			req:  &bodyRequest{Name: "web"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.c.Compile(tt.req)
			var rivetErr *Error
			if !errors.As(err, &rivetErr) || rivetErr.Code != CodeMalformedDescriptor {
				t.Fatalf("expected %s, got %v", CodeMalformedDescriptor, err)
			}
		})
	}
}

func TestCompileValidation(t *testing.T) {
	c := NewCompiler()

	t.Run("missing required field", func(t *testing.T) {
		_, err := c.Compile(&registerRequest{})
		var rivetErr *Error
		if !errors.As(err, &rivetErr) || rivetErr.Code != CodeInvalidArgument {
			t.Fatalf("expected %s, got %v", CodeInvalidArgument, err)
		}
		if _, ok := rivetErr.Details["Name"]; !ok {
			t.Errorf("expected field detail for Name, got %v", rivetErr.Details)
		}
	})

	t.Run("out of range port", func(t *testing.T) {
		_, err := c.Compile(&registerRequest{Name: "web", Port: Ptr(70000)})
		var rivetErr *Error
		if !errors.As(err, &rivetErr) || rivetErr.Code != CodeInvalidArgument {
			t.Fatalf("expected %s, got %v", CodeInvalidArgument, err)
		}
	})
}

func TestCompileIdempotent(t *testing.T) {
	c := NewCompiler()
	req := &registerRequest{Name: "web", ID: Ptr("web-1"), Port: Ptr(8080)}

	first, err := c.Compile(req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Compile(req)
	if err != nil {
		t.Fatal(err)
	}

	if first.Method != second.Method || first.URL != second.URL {
		t.Errorf("method/URL differ: %s %s vs %s %s", first.Method, first.URL, second.Method, second.URL)
	}
	if !bytes.Equal(first.Body, second.Body) {
		t.Errorf("bodies differ: %s vs %s", first.Body, second.Body)
	}
}

func TestCompileDefaultsToGET(t *testing.T) {
	c := NewCompiler()
	resolved, err := c.Compile(&danglingQueryFreeRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if resolved.Method != http.MethodGet {
		t.Errorf("expected GET default, got %s", resolved.Method)
	}
}

type danglingQueryFreeRequest struct{}

func (r *danglingQueryFreeRequest) Describe() Descriptor {
	return Descriptor{PathTemplate: "agent/services"}
}

type unmarshalableBodyRequest struct {
	Name   string   `json:"Name"`
	Signal chan int `json:"Signal"`
}

func (r *unmarshalableBodyRequest) Describe() Descriptor {
	return Descriptor{
		Method:       http.MethodPut,
		PathTemplate: "agent/service/register",
		HasBody:      true,
	}
}

func TestCompileBodyEncodingFailure(t *testing.T) {
	c := NewCompiler()
	_, err := c.Compile(&unmarshalableBodyRequest{Name: "web", Signal: make(chan int)})

	var rivetErr *Error
	if !errors.As(err, &rivetErr) || rivetErr.Code != CodeEncodingFailure {
		t.Fatalf("expected %s, got %v", CodeEncodingFailure, err)
	}
	if rivetErr.Unwrap() == nil {
		t.Error("expected wrapped marshal error as cause")
	}
}

type sliceQueryRequest struct {
	Tags []string `schema:"tags" json:"-"`
}

func (r *sliceQueryRequest) Describe() Descriptor {
	return Descriptor{
		Method:       http.MethodGet,
		PathTemplate: "agent/services",
		QueryFields:  []string{"tags"},
	}
}

func TestCompileQueryEncodingFailure(t *testing.T) {
	c := NewCompiler()
	_, err := c.Compile(&sliceQueryRequest{Tags: []string{"primary", "v2"}})

	var rivetErr *Error
	if !errors.As(err, &rivetErr) || rivetErr.Code != CodeEncodingFailure {
		t.Fatalf("expected %s, got %v", CodeEncodingFailure, err)
	}
	if !strings.Contains(rivetErr.Message, `"tags"`) {
		t.Errorf("expected failing field named in message, got %q", rivetErr.Message)
	}
}

func TestCompileRawPath(t *testing.T) {
	c := NewCompiler()

	escaped, err := c.Compile(&maintenanceRequest{ID: "svc/1", Enable: true})
	if err != nil {
		t.Fatal(err)
	}
	if escaped.URL != "agent/service/maintenance/svc%2F1?enable=true" {
		t.Errorf("expected escaped identifier, got %q", escaped.URL)
	}

	raw, err := c.Compile(&rawMaintenanceRequest{ID: "svc/1", Enable: true})
	if err != nil {
		t.Fatal(err)
	}
	if raw.URL != "agent/service/maintenance/svc/1?enable=true" {
		t.Errorf("expected verbatim identifier, got %q", raw.URL)
	}
}

type rawMaintenanceRequest struct {
	ID     string `path:"id" json:"-"`
	Enable bool   `schema:"enable" json:"-"`
}

func (r *rawMaintenanceRequest) Describe() Descriptor {
	return Descriptor{
		Method:       http.MethodPut,
		PathTemplate: "agent/service/maintenance/{id}",
		QueryFields:  []string{"enable"},
		RawPath:      true,
	}
}
