package rpcclient

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	pb "github.com/crossplatform/resourcesvc/api/crossplatform/v1"
	"github.com/crossplatform/resourcesvc/client/internal/config"
	"github.com/crossplatform/resourcesvc/pkg/types"
)

// mockServer implements CrossPlatformServiceServer for testing.
type mockServer struct {
	pb.UnimplementedCrossPlatformServiceServer
	mu           sync.Mutex
	data         map[int32]string
	order        []int32
	unavailableN int // fail the first N calls with codes.Unavailable
	calls        int
	lastMD       metadata.MD
}

func newMockServer() *mockServer {
	return &mockServer{data: make(map[int32]string)}
}

// enter records the call and reports whether it should fail as unavailable.
func (m *mockServer) enter(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastMD, _ = metadata.FromIncomingContext(ctx)
	if m.unavailableN > 0 {
		m.unavailableN--
		return status.Error(codes.Unavailable, "mock unavailable")
	}
	return nil
}

func (m *mockServer) Get(ctx context.Context, req *pb.GetRequest) (*pb.Resource, error) {
	if err := m.enter(ctx); err != nil {
		return nil, err
	}
	if req.Id < 0 {
		return nil, status.Errorf(codes.InvalidArgument, "invalid operation get: invalid argument: id %d is negative", req.Id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.data[req.Id]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "invalid operation get: not found: resource %d", req.Id)
	}
	return &pb.Resource{Id: req.Id, Payload: p}, nil
}

func (m *mockServer) Save(ctx context.Context, req *pb.SaveRequest) (*pb.SaveResponse, error) {
	if err := m.enter(ctx); err != nil {
		return nil, err
	}
	if req.Resource == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid operation save: invalid argument: resource is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[req.Resource.Id]; !ok {
		m.order = append(m.order, req.Resource.Id)
	}
	m.data[req.Resource.Id] = req.Resource.Payload
	return &pb.SaveResponse{}, nil
}

func (m *mockServer) GetList(ctx context.Context, _ *pb.GetListRequest) (*pb.GetListResponse, error) {
	if err := m.enter(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := &pb.GetListResponse{}
	for _, id := range m.order {
		out.Resources = append(out.Resources, &pb.Resource{Id: id, Payload: m.data[id]})
	}
	return out, nil
}

func (m *mockServer) Ping(ctx context.Context, _ *pb.PingRequest) (*pb.PingResponse, error) {
	if err := m.enter(ctx); err != nil {
		return nil, err
	}
	return &pb.PingResponse{Ok: true}, nil
}

func (m *mockServer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockServer) lastMetadata() metadata.MD {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastMD
}

// startTestServer starts an in-process gRPC server and returns a dial
// function that connects to it.
func startTestServer(t *testing.T, srv *mockServer) dialFunc {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	gs := grpc.NewServer()
	pb.RegisterCrossPlatformServiceServer(gs, srv)

	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	addr := lis.Addr().String()
	return func(ctx context.Context, _ string, _ config.ClientConfig) (*grpc.ClientConn, error) {
		return grpc.DialContext(ctx, addr, //nolint:staticcheck
			grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
}

func clientCfg() config.ClientConfig {
	return config.ClientConfig{
		ServerEndpoint: "unused-overridden-by-dialFn",
		Timeout:        2 * time.Second,
		Retries:        2,
	}
}

func connect(t *testing.T, cfg config.ClientConfig, srv *mockServer) *Client {
	t.Helper()
	c := New(cfg)
	c.dialFn = startTestServer(t, srv)
	c.backoffInitial = 5 * time.Millisecond
	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// --- Tests ---

func TestClient_SaveThenGet(t *testing.T) {
	c := connect(t, clientCfg(), newMockServer())
	ctx := context.Background()

	if err := c.Save(ctx, types.Resource{ID: 5, Payload: "hello"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := c.Get(ctx, 5)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != 5 || got.Payload != "hello" {
		t.Errorf("Get: got %+v, want {5 hello}", got)
	}
}

func TestClient_GetListOrder(t *testing.T) {
	c := connect(t, clientCfg(), newMockServer())
	ctx := context.Background()

	empty, err := c.GetList(ctx)
	if err != nil {
		t.Fatalf("GetList: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("GetList on empty server: got %v, want empty non-nil slice", empty)
	}

	for _, id := range []int32{3, 1, 2} {
		if err := c.Save(ctx, types.Resource{ID: id, Payload: "p"}); err != nil {
			t.Fatalf("Save(%d): %v", id, err)
		}
	}
	list, err := c.GetList(ctx)
	if err != nil {
		t.Fatalf("GetList: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("GetList: got %d resources, want 3", len(list))
	}
	for i, want := range []int32{3, 1, 2} {
		if list[i].ID != want {
			t.Errorf("list[%d].ID = %d, want %d", i, list[i].ID, want)
		}
	}
}

func TestClient_Ping(t *testing.T) {
	c := connect(t, clientCfg(), newMockServer())
	ok, err := c.Ping(context.Background())
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if !ok {
		t.Error("Ping: got false, want true")
	}
}

func TestClient_NotFoundMapsToInvalidOperation(t *testing.T) {
	srv := newMockServer()
	c := connect(t, clientCfg(), srv)

	_, err := c.Get(context.Background(), 77)
	if !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("Get: got %v, want ErrNotFound", err)
	}
	var inv *types.InvalidOperation
	if !errors.As(err, &inv) {
		t.Fatalf("Get: got %T, want *types.InvalidOperation", err)
	}
	if inv.Op != types.OpGet {
		t.Errorf("Op: got %q, want %q", inv.Op, types.OpGet)
	}
	if want := "invalid operation get: not found: resource 77"; err.Error() != want {
		t.Errorf("message: got %q, want %q", err.Error(), want)
	}
	if n := srv.callCount(); n != 1 {
		t.Errorf("calls: got %d, want 1 (NotFound must not be retried)", n)
	}
}

func TestClient_InvalidArgumentNotRetried(t *testing.T) {
	srv := newMockServer()
	c := connect(t, clientCfg(), srv)

	_, err := c.Get(context.Background(), -1)
	if !errors.Is(err, types.ErrInvalidArgument) {
		t.Fatalf("Get(-1): got %v, want ErrInvalidArgument", err)
	}
	var inv *types.InvalidOperation
	if !errors.As(err, &inv) || inv.Kind() != "invalid_argument" {
		t.Errorf("Kind: got %v, want invalid_argument", err)
	}
	if n := srv.callCount(); n != 1 {
		t.Errorf("calls: got %d, want 1", n)
	}
}

func TestClient_SaveInvalidUTF8_RejectedLocally(t *testing.T) {
	srv := newMockServer()
	c := connect(t, clientCfg(), srv)

	err := c.Save(context.Background(), types.Resource{ID: 1, Payload: "a\xffb"})
	if !errors.Is(err, types.ErrInvalidArgument) {
		t.Fatalf("Save: got %v, want ErrInvalidArgument", err)
	}
	if n := srv.callCount(); n != 0 {
		t.Errorf("calls: got %d, want 0", n)
	}
}

func TestClient_RetriesUnavailable(t *testing.T) {
	srv := newMockServer()
	srv.unavailableN = 2
	c := connect(t, clientCfg(), srv)

	ok, err := c.Ping(context.Background())
	if err != nil {
		t.Fatalf("Ping after transient failures: %v", err)
	}
	if !ok {
		t.Error("Ping: got false, want true")
	}
	if n := srv.callCount(); n != 3 {
		t.Errorf("calls: got %d, want 3", n)
	}
}

func TestClient_RetriesExhausted(t *testing.T) {
	srv := newMockServer()
	srv.unavailableN = 10
	cfg := clientCfg()
	cfg.Retries = 1
	c := connect(t, cfg, srv)

	_, err := c.Ping(context.Background())
	if status.Code(errors.Unwrap(err)) != codes.Unavailable {
		t.Errorf("Ping: got %v, want wrapped Unavailable", err)
	}
	if n := srv.callCount(); n != 2 {
		t.Errorf("calls: got %d, want 2", n)
	}
}

func TestClient_APIKeyMetadata(t *testing.T) {
	t.Setenv("CTL_TEST_KEY", "s3cret")
	cfg := clientCfg()
	cfg.ServerAuth = config.AuthConfig{Mode: "apikey", KeyEnv: "CTL_TEST_KEY", Header: "x-custom-key"}

	srv := newMockServer()
	c := connect(t, cfg, srv)

	if _, err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if got := srv.lastMetadata().Get("x-custom-key"); len(got) != 1 || got[0] != "s3cret" {
		t.Errorf("x-custom-key metadata: got %v, want [s3cret]", got)
	}
}

func TestClient_NotConnected(t *testing.T) {
	c := New(clientCfg())
	if _, err := c.Ping(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Ping before Connect: got %v, want ErrNotConnected", err)
	}
}

func TestDialOptions_MTLSMissingCert(t *testing.T) {
	cfg := clientCfg()
	cfg.ServerAuth = config.AuthConfig{Mode: "mtls", CertFile: "/nonexistent/cert.pem", KeyFile: "/nonexistent/key.pem"}
	if _, err := dialOptions(cfg); err == nil {
		t.Error("dialOptions: expected error for missing cert, got nil")
	}
}

func TestBackoff_Grows(t *testing.T) {
	b := newBackoff(backoffInitial)
	first := b.NextBackOff()
	if first > 2*time.Second {
		t.Errorf("first backoff too large: %v", first)
	}
	for i := 0; i < 4; i++ {
		b.NextBackOff()
	}
	// Sixth step is 32s ±25%.
	if d := b.NextBackOff(); d < 16*time.Second {
		t.Errorf("backoff after growth too small: %v", d)
	}
}

func TestBackoff_NeverExceedsMax(t *testing.T) {
	b := newBackoff(backoffInitial)
	for i := 0; i < 50; i++ {
		d := b.NextBackOff()
		// With jitter, max is backoffMax * 1.25
		if d > backoffMax*2 {
			t.Errorf("backoff[%d] = %v, exceeds 2×max", i, d)
		}
	}
}

func TestCall_CancelledContextStopsRetrying(t *testing.T) {
	srv := newMockServer()
	srv.unavailableN = 100
	cfg := clientCfg()
	cfg.Retries = 50
	c := connect(t, cfg, srv)
	c.backoffInitial = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := c.Ping(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Ping: got %v, want context.DeadlineExceeded", err)
	}
}
