package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "xml", "info")
	assert.Error(t, err)
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "json", "info")
	require.NoError(t, err)

	l.Debug("hidden")
	assert.Zero(t, buf.Len())

	require.NoError(t, l.SetLevel("debug"))
	assert.Equal(t, slog.LevelDebug, l.Level())
	l.Debug("shown")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	assert.Error(t, l.SetLevel("loud"))
	assert.Equal(t, slog.LevelDebug, l.Level(), "failed SetLevel must keep the previous level")
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "text", "info")
	require.NoError(t, err)
	l.Info("hello", "k", "v")
	assert.True(t, strings.Contains(buf.String(), "msg=hello"), buf.String())
}

func runInterceptor(t *testing.T, ctx context.Context, handlerErr error) (map[string]any, string) {
	t.Helper()
	var buf bytes.Buffer
	l, err := New(&buf, "json", "debug")
	require.NoError(t, err)

	var seen string
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		seen = RequestID(ctx)
		return "ok", handlerErr
	}
	info := &grpc.UnaryServerInfo{FullMethod: "/crossplatform.v1.CrossPlatformService/Get"}
	_, gotErr := UnaryServerInterceptor(l.Logger)(ctx, nil, info, handler)
	assert.Equal(t, handlerErr, gotErr)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	return line, seen
}

func TestUnaryServerInterceptor_GeneratesRequestID(t *testing.T) {
	line, seen := runInterceptor(t, context.Background(), nil)

	_, err := uuid.Parse(seen)
	assert.NoError(t, err, "request id %q should be a UUID", seen)
	assert.Equal(t, seen, line["request_id"])
	assert.Equal(t, "OK", line["code"])
	assert.Equal(t, "DEBUG", line["level"])
}

func TestUnaryServerInterceptor_ReusesIncomingID(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "req-123"))
	line, seen := runInterceptor(t, ctx, status.Error(codes.NotFound, "missing"))

	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", line["request_id"])
	assert.Equal(t, "NotFound", line["code"])
	assert.Equal(t, "WARN", line["level"])
}

func TestRecoveryInterceptor_PanicBecomesInternal(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	info := &grpc.UnaryServerInfo{FullMethod: "/test.Service/Boom"}

	resp, err := RecoveryInterceptor(logger)(context.Background(), nil, info,
		func(context.Context, interface{}) (interface{}, error) {
			panic("boom")
		})

	assert.Nil(t, resp)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.NotContains(t, err.Error(), "boom")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "boom", line["panic"])
	assert.Equal(t, "ERROR", line["level"])
}

func TestRecoveryInterceptor_PassesThrough(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	info := &grpc.UnaryServerInfo{FullMethod: "/test.Service/Ok"}

	resp, err := RecoveryInterceptor(logger)(context.Background(), "req", info,
		func(_ context.Context, req interface{}) (interface{}, error) {
			return req, nil
		})
	require.NoError(t, err)
	assert.Equal(t, "req", resp)
}
