package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "github.com/crossplatform/resourcesvc/api/crossplatform/v1"
)

type stubServer struct {
	pb.UnimplementedCrossPlatformServiceServer
}

func (stubServer) Ping(context.Context, *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Ok: true}, nil
}

func (stubServer) Get(_ context.Context, req *pb.GetRequest) (*pb.Resource, error) {
	if req.Id == 1 {
		return &pb.Resource{Id: 1, Payload: "one"}, nil
	}
	return nil, status.Errorf(codes.NotFound, "invalid operation get: not found: resource %d", req.Id)
}

func startStub(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	gs := grpc.NewServer()
	pb.RegisterCrossPlatformServiceServer(gs, stubServer{})
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)
	return lis.Addr().String()
}

func runCLI(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String()
}

func TestParseCommand(t *testing.T) {
	cmd, err := parseCommand([]string{"save", "7", "payload"})
	require.NoError(t, err)
	assert.Equal(t, command{name: "save", id: 7, payload: "payload"}, cmd)

	cmd, err = parseCommand([]string{"get", "-3"})
	require.NoError(t, err)
	assert.Equal(t, int32(-3), cmd.id, "negative ids are left for the server to reject")

	for _, args := range [][]string{
		nil,
		{"delete", "1"},
		{"get"},
		{"get", "abc"},
		{"get", "99999999999"},
		{"save", "1"},
		{"ping", "extra"},
	} {
		_, err := parseCommand(args)
		assert.True(t, errors.Is(err, errUsage), "args %v: got %v, want errUsage", args, err)
	}
}

func TestRun_UsageErrorExitsTwo(t *testing.T) {
	code, _ := runCLI(t, "frobnicate")
	assert.Equal(t, 2, code)

	code, _ = runCLI(t, "-no-such-flag", "ping")
	assert.Equal(t, 2, code)
}

func TestRun_Ping(t *testing.T) {
	addr := startStub(t)
	code, out := runCLI(t, "-endpoint", addr, "ping")
	require.Equal(t, 0, code)
	assert.JSONEq(t, `{"ok": true}`, out)
}

func TestRun_Get(t *testing.T) {
	addr := startStub(t)
	code, out := runCLI(t, "-endpoint", addr, "get", "1")
	require.Equal(t, 0, code)
	assert.JSONEq(t, `{"id": 1, "payload": "one"}`, out)
}

func TestRun_GetNotFoundExitsOne(t *testing.T) {
	addr := startStub(t)
	code, out := runCLI(t, "-endpoint", addr, "get", "2")
	require.Equal(t, 1, code)

	var body errorBody
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "not_found", body.Kind)
	assert.Equal(t, "invalid operation get: not found: resource 2", body.Error)
}

func TestRun_UnreachableServerExitsOne(t *testing.T) {
	t.Setenv("RESOURCECTL_RETRIES", "0")
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())

	code, out := runCLI(t, "-endpoint", addr, "-timeout", "2s", "ping")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, `"error"`)
}
