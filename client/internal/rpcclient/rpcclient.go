package rpcclient

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	pb "github.com/crossplatform/resourcesvc/api/crossplatform/v1"
	"github.com/crossplatform/resourcesvc/client/internal/config"
	"github.com/crossplatform/resourcesvc/pkg/types"
)

const (
	backoffInitial    = 1 * time.Second
	backoffMax        = 60 * time.Second
	backoffMultiplier = 2.0
	backoffJitter     = 0.25
)

// ErrNotConnected is returned by calls made before Connect succeeds.
var ErrNotConnected = errors.New("rpcclient: not connected")

// Client is a resourcesvc gRPC client with retry on unavailability.
type Client struct {
	cfg    config.ClientConfig
	conn   *grpc.ClientConn
	rpc    pb.CrossPlatformServiceClient
	dialFn dialFunc // injectable for tests

	backoffInitial time.Duration
}

// dialFunc is the function signature used to open a gRPC connection.
type dialFunc func(ctx context.Context, endpoint string, cfg config.ClientConfig) (*grpc.ClientConn, error)

// New creates a Client using the given client config. Call Connect before use.
func New(cfg config.ClientConfig) *Client {
	return &Client{
		cfg:            cfg,
		dialFn:         defaultDial,
		backoffInitial: backoffInitial,
	}
}

// Connect opens the gRPC connection. The connection is established lazily,
// so an unreachable server surfaces as codes.Unavailable on the first call.
func (c *Client) Connect(ctx context.Context) error {
	conn, err := c.dialFn(ctx, c.cfg.ServerEndpoint, c.cfg)
	if err != nil {
		return fmt.Errorf("rpcclient: dial %s: %w", c.cfg.ServerEndpoint, err)
	}
	c.conn = conn
	c.rpc = pb.NewCrossPlatformServiceClient(conn)
	return nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Get fetches the resource stored under id.
func (c *Client) Get(ctx context.Context, id int32) (types.Resource, error) {
	var out *pb.Resource
	err := c.call(ctx, types.OpGet, func(ctx context.Context) error {
		var err error
		out, err = c.rpc.Get(ctx, &pb.GetRequest{Id: id})
		return err
	})
	if err != nil {
		return types.Resource{}, err
	}
	return types.Resource{ID: out.GetId(), Payload: out.GetPayload()}, nil
}

// Save creates or overwrites r on the server. A payload that is not valid
// UTF-8 is rejected locally, the same way the server would reject it.
func (c *Client) Save(ctx context.Context, r types.Resource) error {
	if !utf8.ValidString(r.Payload) {
		return types.NewInvalidOperation(types.OpSave,
			fmt.Errorf("%w: payload is not valid UTF-8", types.ErrInvalidArgument))
	}
	req := &pb.SaveRequest{Resource: &pb.Resource{Id: r.ID, Payload: r.Payload}}
	return c.call(ctx, types.OpSave, func(ctx context.Context) error {
		_, err := c.rpc.Save(ctx, req)
		return err
	})
}

// GetList returns every stored resource in insertion order. Never nil.
func (c *Client) GetList(ctx context.Context) ([]types.Resource, error) {
	var out *pb.GetListResponse
	err := c.call(ctx, types.OpGetList, func(ctx context.Context) error {
		var err error
		out, err = c.rpc.GetList(ctx, &pb.GetListRequest{})
		return err
	})
	if err != nil {
		return nil, err
	}
	list := make([]types.Resource, 0, len(out.Resources))
	for _, r := range out.Resources {
		list = append(list, types.Resource{ID: r.GetId(), Payload: r.GetPayload()})
	}
	return list, nil
}

// Ping reports whether the server is live.
func (c *Client) Ping(ctx context.Context) (bool, error) {
	var out *pb.PingResponse
	err := c.call(ctx, types.OpPing, func(ctx context.Context) error {
		var err error
		out, err = c.rpc.Ping(ctx, &pb.PingRequest{})
		return err
	})
	if err != nil {
		return false, err
	}
	return out.Ok, nil
}

// call runs fn with auth metadata and a per-attempt timeout, retrying while
// the server is unavailable and retries remain.
func (c *Client) call(ctx context.Context, op string, fn func(context.Context) error) error {
	if c.rpc == nil {
		return ErrNotConnected
	}
	bo := backoff.WithContext(newBackoff(c.backoffInitial), ctx)

	for attempt := 0; ; attempt++ {
		callCtx, cancel := context.WithTimeout(c.withAuth(ctx), c.cfg.Timeout)
		err := fn(callCtx)
		cancel()
		if err == nil {
			return nil
		}

		if isPermanentError(err) || attempt >= c.cfg.Retries {
			return fromStatus(op, err)
		}

		wait := bo.NextBackOff()
		if wait == backoff.Stop {
			return ctx.Err()
		}
		slog.Warn("rpcclient: server unavailable, will retry",
			"op", op,
			"endpoint", c.cfg.ServerEndpoint,
			"attempt", attempt+1,
			"err", err,
			"retry_in", wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// withAuth injects the API key header if configured.
func (c *Client) withAuth(ctx context.Context) context.Context {
	auth := c.cfg.ServerAuth
	if auth.Mode != "apikey" || auth.KeyEnv == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, auth.EffectiveHeader(), auth.Key())
}

// isPermanentError returns true for every gRPC error except Unavailable.
func isPermanentError(err error) bool {
	return status.Code(err) != codes.Unavailable
}

// fromStatus converts InvalidArgument and NotFound statuses into
// *types.InvalidOperation. Other errors are returned wrapped with op.
func fromStatus(op string, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpcclient: %s: %w", op, err)
	}

	var kind error
	switch st.Code() {
	case codes.InvalidArgument:
		kind = types.ErrInvalidArgument
	case codes.NotFound:
		kind = types.ErrNotFound
	default:
		return fmt.Errorf("rpcclient: %s: %w", op, err)
	}

	// The server message is already "invalid operation <op>: <kind>: <detail>".
	msg := strings.TrimPrefix(st.Message(), "invalid operation "+op+": ")
	return &types.InvalidOperation{Op: op, Err: &remoteError{kind: kind, msg: msg}}
}

// remoteError carries the server's message while matching the local sentinel.
type remoteError struct {
	kind error
	msg  string
}

func (e *remoteError) Error() string { return e.msg }
func (e *remoteError) Unwrap() error { return e.kind }

// defaultDial opens a gRPC connection to endpoint with auth configured from cfg.
func defaultDial(ctx context.Context, endpoint string, cfg config.ClientConfig) (*grpc.ClientConn, error) {
	opts, err := dialOptions(cfg)
	if err != nil {
		return nil, err
	}
	return grpc.DialContext(ctx, endpoint, opts...) //nolint:staticcheck // NewClient is not available in grpc v1.62
}

// dialOptions builds grpc.DialOption slice based on the server auth config.
func dialOptions(cfg config.ClientConfig) ([]grpc.DialOption, error) {
	switch cfg.ServerAuth.Mode {
	case "mtls":
		creds, err := buildMTLSCreds(cfg.ServerAuth)
		if err != nil {
			return nil, fmt.Errorf("rpcclient: build mtls creds: %w", err)
		}
		slog.Debug("rpcclient: dialing with mTLS; the endpoint must be a TLS-terminating proxy",
			"endpoint", cfg.ServerEndpoint)
		return []grpc.DialOption{grpc.WithTransportCredentials(creds)}, nil

	default: // "apikey", "none" or empty; the API key travels as per-call metadata
		return []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, nil
	}
}

// buildMTLSCreds loads client certificate and optional CA from the auth config.
func buildMTLSCreds(auth config.AuthConfig) (credentials.TransportCredentials, error) {
	cert, err := tls.LoadX509KeyPair(auth.CertFile, auth.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("load client cert: %w", err)
	}

	tlsCfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}

	if auth.CAFile != "" {
		caPEM, err := os.ReadFile(auth.CAFile)
		if err != nil {
			return nil, fmt.Errorf("read ca file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caPEM) {
			return nil, fmt.Errorf("no valid certs in ca file %q", auth.CAFile)
		}
		tlsCfg.RootCAs = pool
	}

	return credentials.NewTLS(tlsCfg), nil
}

// newBackoff returns truncated exponential backoff (initial→60s, ±25% jitter)
// with no elapsed-time limit; the caller bounds attempts by count.
func newBackoff(initial time.Duration) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial
	b.RandomizationFactor = backoffJitter
	b.Multiplier = backoffMultiplier
	b.MaxInterval = backoffMax
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}
