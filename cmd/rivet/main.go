package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/rivetlabs/rivet/agent"
)

type CLI struct {
	Addr    string        `help:"Agent HTTP base address." default:"http://127.0.0.1:8500/v1" env:"RIVET_ADDR"`
	Ns      string        `help:"Namespace to operate in." env:"RIVET_NAMESPACE"`
	Timeout time.Duration `help:"Per-request timeout." default:"10s"`
	Verbose bool          `help:"Log each request." short:"v"`

	Version    VersionCmd    `cmd:"" help:"Print version information."`
	Services   ServicesCmd   `cmd:"" help:"List services registered with the agent."`
	Service    ServiceCmd    `cmd:"" help:"Show one registered service instance."`
	Register   RegisterCmd   `cmd:"" help:"Register a service with the agent."`
	Deregister DeregisterCmd `cmd:"" help:"Deregister a service instance."`
	Maint      MaintCmd      `cmd:"" help:"Toggle maintenance mode for a service instance."`
	Health     HealthCmd     `cmd:"" help:"Show aggregated service health."`
}

func (cli *CLI) client() (*agent.Client, error) {
	c, err := agent.Dial(cli.Addr)
	if err != nil {
		return nil, err
	}
	if cli.Verbose {
		c.Rivet().WithLogger(slog.Default())
	}
	return c, nil
}

func (cli *CLI) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cli.Timeout)
}

//go:embed VERSION
var embeddedVersion string

// version resolves the build's version string: the module version when the
// binary was installed with `go install ...@version`, otherwise the embedded
// base version suffixed with -dev and the VCS revision when one is recorded.
func version() string {
	v := strings.TrimSpace(embeddedVersion)

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	if mv := info.Main.Version; mv != "" && mv != "(devel)" {
		return mv
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return v + "-dev." + s.Value[:7]
		}
	}
	return v + "-dev"
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(version())
	return nil
}

type ServicesCmd struct{}

func (c *ServicesCmd) Run(cli *CLI) error {
	client, err := cli.client()
	if err != nil {
		return err
	}
	ctx, cancel := cli.context()
	defer cancel()

	req := &agent.ListServicesRequest{}
	if cli.Ns != "" {
		req.WithNamespace(cli.Ns)
	}
	services, err := client.Services(ctx, req)
	if err != nil {
		return err
	}
	for id, svc := range services {
		fmt.Printf("%s\t%s\t%s:%d\n", id, svc.Service, svc.Address, svc.Port)
	}
	return nil
}

type ServiceCmd struct {
	Name string `arg:"" help:"Service instance name."`
}

func (c *ServiceCmd) Run(cli *CLI) error {
	client, err := cli.client()
	if err != nil {
		return err
	}
	ctx, cancel := cli.context()
	defer cancel()

	req := agent.NewReadServiceRequest(c.Name)
	if cli.Ns != "" {
		req.WithNamespace(cli.Ns)
	}
	svc, err := client.Service(ctx, req)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(svc, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

type RegisterCmd struct {
	Name          string            `arg:"" help:"Service name."`
	ID            string            `help:"Instance ID. Defaults to <name>-<generated suffix>."`
	Address       string            `help:"Service address."`
	Port          int               `help:"Service port." short:"p"`
	Tags          []string          `help:"Service tags." short:"t"`
	Meta          map[string]string `help:"Metadata key=value pairs."`
	CheckHTTP     string            `name:"check-http" help:"HTTP health check URL."`
	CheckTCP      string            `name:"check-tcp" help:"TCP health check host:port."`
	CheckInterval string            `name:"check-interval" help:"Health check interval." default:"10s"`
}

func (c *RegisterCmd) Run(cli *CLI) error {
	client, err := cli.client()
	if err != nil {
		return err
	}
	ctx, cancel := cli.context()
	defer cancel()

	id := c.ID
	if id == "" {
		id = c.Name + "-" + uuid.NewString()[:8]
	}

	req := agent.NewRegisterServiceRequest(c.Name).WithID(id)
	if c.Address != "" {
		req.WithAddress(c.Address)
	}
	if c.Port != 0 {
		req.WithPort(c.Port)
	}
	if len(c.Tags) > 0 {
		req.WithTags(c.Tags...)
	}
	for k, v := range c.Meta {
		req.WithMeta(k, v)
	}
	switch {
	case c.CheckHTTP != "":
		req.WithCheck(agent.NewHTTPCheck(c.CheckHTTP, c.CheckInterval))
	case c.CheckTCP != "":
		req.WithCheck(agent.NewTCPCheck(c.CheckTCP, c.CheckInterval))
	}
	if cli.Ns != "" {
		req.WithNamespace(cli.Ns)
	}

	if err := client.Register(ctx, req); err != nil {
		return err
	}
	fmt.Printf("registered %s as %s\n", c.Name, id)
	return nil
}

type DeregisterCmd struct {
	ID string `arg:"" help:"Service instance ID."`
}

func (c *DeregisterCmd) Run(cli *CLI) error {
	client, err := cli.client()
	if err != nil {
		return err
	}
	ctx, cancel := cli.context()
	defer cancel()

	req := agent.NewDeregisterServiceRequest(c.ID)
	if cli.Ns != "" {
		req.WithNamespace(cli.Ns)
	}
	if err := client.Deregister(ctx, req); err != nil {
		return err
	}
	fmt.Printf("deregistered %s\n", c.ID)
	return nil
}

type MaintCmd struct {
	ID      string `arg:"" help:"Service instance ID."`
	Disable bool   `help:"Disable maintenance mode instead of enabling it."`
	Reason  string `help:"Reason recorded with the toggle."`
}

func (c *MaintCmd) Run(cli *CLI) error {
	client, err := cli.client()
	if err != nil {
		return err
	}
	ctx, cancel := cli.context()
	defer cancel()

	req := agent.NewEnableMaintenanceRequest(c.ID, !c.Disable)
	if c.Reason != "" {
		req.WithReason(c.Reason)
	}
	if cli.Ns != "" {
		req.WithNamespace(cli.Ns)
	}
	if err := client.Maintenance(ctx, req); err != nil {
		return err
	}
	if c.Disable {
		fmt.Printf("%s: maintenance mode disabled\n", c.ID)
	} else {
		fmt.Printf("%s: maintenance mode enabled\n", c.ID)
	}
	return nil
}

type HealthCmd struct {
	Name string `arg:"" help:"Service name, or instance ID with --id."`
	ByID bool   `name:"id" help:"Treat the argument as an instance ID."`
}

func (c *HealthCmd) Run(cli *CLI) error {
	client, err := cli.client()
	if err != nil {
		return err
	}
	ctx, cancel := cli.context()
	defer cancel()

	var summaries []agent.HealthSummary
	if c.ByID {
		req := agent.NewServiceHealthByIDRequest(c.Name)
		if cli.Ns != "" {
			req.WithNamespace(cli.Ns)
		}
		summaries, err = client.HealthByID(ctx, req)
	} else {
		req := agent.NewServiceHealthRequest(c.Name)
		if cli.Ns != "" {
			req.WithNamespace(cli.Ns)
		}
		summaries, err = client.Health(ctx, req)
	}
	if err != nil {
		return err
	}

	for _, s := range summaries {
		statusColor(s.AggregatedStatus).Printf("%-12s", s.AggregatedStatus)
		fmt.Printf(" %s (%s)\n", s.Service.ID, s.Service.Service)
		for _, check := range s.Checks {
			statusColor(check.Status).Printf("  %-10s", check.Status)
			fmt.Printf(" %s", check.CheckID)
			if check.Output != "" {
				fmt.Printf(": %s", check.Output)
			}
			fmt.Println()
		}
	}
	return nil
}

func statusColor(status string) *color.Color {
	switch status {
	case agent.StatusPassing:
		return color.New(color.FgGreen)
	case agent.StatusWarning:
		return color.New(color.FgYellow)
	case agent.StatusMaintenance:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgRed)
	}
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("rivet"),
		kong.Description("Rivet CLI for the agent service API."),
		kong.UsageOnError(),
	)
	err := ctx.Run(cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rivet: %v\n", err)
		os.Exit(1)
	}
}
