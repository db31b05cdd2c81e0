package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/crossplatform/resourcesvc/client/internal/config"
	"github.com/crossplatform/resourcesvc/client/internal/rpcclient"
	"github.com/crossplatform/resourcesvc/pkg/types"
)

const usage = `usage: resourcectl [flags] <command>

commands:
  ping                 check server liveness
  list                 print every stored resource
  get <id>             print one resource
  save <id> <payload>  create or overwrite a resource

flags:
`

// errUsage marks command-line mistakes; run exits 2 for these.
var errUsage = errors.New("usage")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("resourcectl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "path to config file (optional)")
	endpoint := fs.String("endpoint", "", "server gRPC endpoint, overrides client.server_endpoint")
	timeout := fs.Duration("timeout", 0, "per-call timeout, overrides client.timeout")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	// Logs go to stderr so stdout carries only command output.
	slog.SetDefault(slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cmd, err := parseCommand(fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "resourcectl: %v\n", err)
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		return 1
	}
	if *endpoint != "" {
		cfg.Client.ServerEndpoint = *endpoint
	}
	if *timeout != 0 {
		cfg.Client.Timeout = *timeout
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "err", err)
		return 1
	}

	client := rpcclient.New(cfg.Client)
	if err := client.Connect(ctx); err != nil {
		slog.Error("connect failed", "endpoint", cfg.Client.ServerEndpoint, "err", err)
		return 1
	}
	defer client.Close()

	out, err := cmd.exec(ctx, client)
	if err != nil {
		writeJSON(stdout, errorOutput(err))
		return 1
	}
	writeJSON(stdout, out)
	return 0
}

// command is a parsed invocation.
type command struct {
	name    string
	id      int32
	payload string
}

// parseCommand validates positional arguments.
func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, fmt.Errorf("%w: missing command", errUsage)
	}
	cmd := command{name: args[0]}
	want := map[string]int{"ping": 1, "list": 1, "get": 2, "save": 3}
	n, ok := want[cmd.name]
	if !ok {
		return command{}, fmt.Errorf("%w: unknown command %q", errUsage, cmd.name)
	}
	if len(args) != n {
		return command{}, fmt.Errorf("%w: %s takes %d argument(s)", errUsage, cmd.name, n-1)
	}
	if n >= 2 {
		id, err := strconv.ParseInt(args[1], 10, 32)
		if err != nil {
			return command{}, fmt.Errorf("%w: id %q is not a 32-bit integer", errUsage, args[1])
		}
		cmd.id = int32(id)
	}
	if n == 3 {
		cmd.payload = args[2]
	}
	return cmd, nil
}

// exec runs the command against c and returns a JSON-encodable result.
func (cmd command) exec(ctx context.Context, c *rpcclient.Client) (any, error) {
	switch cmd.name {
	case "ping":
		ok, err := c.Ping(ctx)
		return map[string]bool{"ok": ok}, err
	case "list":
		return c.GetList(ctx)
	case "get":
		return c.Get(ctx, cmd.id)
	case "save":
		r := types.Resource{ID: cmd.id, Payload: cmd.payload}
		if err := c.Save(ctx, r); err != nil {
			return nil, err
		}
		return r, nil
	}
	return nil, fmt.Errorf("%w: unknown command %q", errUsage, cmd.name)
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func errorOutput(err error) errorBody {
	body := errorBody{Error: err.Error()}
	var inv *types.InvalidOperation
	if errors.As(err, &inv) {
		body.Kind = inv.Kind()
	}
	return body
}

func writeJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		slog.Error("encode output", "err", err)
	}
}
