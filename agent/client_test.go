package agent

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rivetlabs/rivet"
	"github.com/rivetlabs/rivet/testutil"
)

func newTestClient(t *testing.T, server *testutil.Server) *Client {
	t.Helper()
	client, err := Dial(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestServices(t *testing.T) {
	server := testutil.NewServer().WithJSON(map[string]ServiceSummary{
		"web-1": {ID: "web-1", Service: "web", Address: "10.0.0.5", Port: 8080, Tags: []string{"v2"}},
		"db-1":  {ID: "db-1", Service: "db", Port: 5432},
	})
	defer server.Close()

	client := newTestClient(t, server)
	services, err := client.Services(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(services) != 2 {
		t.Fatalf("expected 2 services, got %d", len(services))
	}
	if services["web-1"].Address != "10.0.0.5" {
		t.Errorf("unexpected service record %+v", services["web-1"])
	}

	captured := server.Last(t)
	if captured.Method != http.MethodGet || captured.Path != "/agent/services" {
		t.Errorf("unexpected request %s %s", captured.Method, captured.Path)
	}
}

func TestServiceNotFound(t *testing.T) {
	server := testutil.NewServer().WithStatus(http.StatusNotFound).WithBody(`unknown service ID "web-9"`)
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.Service(context.Background(), NewReadServiceRequest("web-9"))

	var rivetErr *rivet.Error
	if !errors.As(err, &rivetErr) || rivetErr.Code != rivet.CodeNotFound {
		t.Fatalf("expected %s, got %v", rivet.CodeNotFound, err)
	}
}

func TestRegisterQueryAndBody(t *testing.T) {
	server := testutil.NewServer()
	defer server.Close()

	client := newTestClient(t, server)
	req := NewRegisterServiceRequest("web").
		WithID("web-1").
		WithPort(8080).
		WithNamespace("team-a")
	if err := client.Register(context.Background(), req); err != nil {
		t.Fatal(err)
	}

	captured := server.Last(t)
	if captured.Method != http.MethodPut || captured.Path != "/agent/service/register" {
		t.Errorf("unexpected request %s %s", captured.Method, captured.Path)
	}

	// Round-trip the query through the same schema tags the request declares.
	var filters struct {
		Namespace string `schema:"ns"`
	}
	testutil.DecodeQuery(t, captured.RawQuery, &filters)
	if filters.Namespace != "team-a" {
		t.Errorf("expected ns=team-a, got %q", filters.Namespace)
	}

	var body RegisterServiceRequest
	testutil.DecodeJSON(t, captured.Body, &body)
	if body.Name != "web" || body.ID == nil || *body.ID != "web-1" {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestMaintenanceWire(t *testing.T) {
	server := testutil.NewServer()
	defer server.Close()

	client := newTestClient(t, server)
	err := client.Maintenance(context.Background(), NewEnableMaintenanceRequest("svc1", true))
	if err != nil {
		t.Fatal(err)
	}

	captured := server.Last(t)
	if captured.Path != "/agent/service/maintenance/svc1" {
		t.Errorf("unexpected path %q", captured.Path)
	}
	if captured.RawQuery != "enable=true" {
		t.Errorf("unexpected query %q", captured.RawQuery)
	}
	if len(captured.Body) != 0 {
		t.Errorf("expected no body, got %s", captured.Body)
	}
}

func TestHealth(t *testing.T) {
	server := testutil.NewServer().WithJSON([]HealthSummary{
		{
			AggregatedStatus: StatusWarning,
			Service:          ServiceSummary{ID: "web-1", Service: "web"},
			Checks: []CheckRecord{
				{CheckID: "service:web-1", Status: StatusWarning, Output: "high latency"},
			},
		},
	})
	defer server.Close()

	client := newTestClient(t, server)
	summaries, err := client.Health(context.Background(), NewServiceHealthRequest("web"))
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].AggregatedStatus != StatusWarning {
		t.Errorf("unexpected status %q", summaries[0].AggregatedStatus)
	}

	if server.Last(t).Path != "/agent/health/service/name/web" {
		t.Errorf("unexpected path %q", server.Last(t).Path)
	}
}

func TestHealthByID(t *testing.T) {
	server := testutil.NewServer().WithJSON([]HealthSummary{
		{AggregatedStatus: StatusPassing, Service: ServiceSummary{ID: "web-1", Service: "web"}},
	})
	defer server.Close()

	client := newTestClient(t, server)
	summaries, err := client.HealthByID(context.Background(), NewServiceHealthByIDRequest("web-1"))
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 || summaries[0].AggregatedStatus != StatusPassing {
		t.Errorf("unexpected summaries %+v", summaries)
	}

	if server.Last(t).Path != "/agent/health/service/id/web-1" {
		t.Errorf("unexpected path %q", server.Last(t).Path)
	}
}

func TestDeregister(t *testing.T) {
	server := testutil.NewServer()
	defer server.Close()

	client := newTestClient(t, server)
	if err := client.Deregister(context.Background(), NewDeregisterServiceRequest("web-1")); err != nil {
		t.Fatal(err)
	}

	captured := server.Last(t)
	if captured.Method != http.MethodPut || captured.Path != "/agent/service/deregister/web-1" {
		t.Errorf("unexpected request %s %s", captured.Method, captured.Path)
	}
}
