// Package rpcclient calls the four CrossPlatformService operations (Get, Save,
// GetList, Ping) on resourcesvc-server via gRPC.
//
// Client.Connect() dials the configured endpoint. Each call runs under the
// configured per-attempt timeout and is retried with truncated exponential
// backoff (1s→60s, ±25% jitter) only when the server reports
// codes.Unavailable. Every other failure is returned immediately.
//
// InvalidArgument and NotFound statuses are turned back into
// *types.InvalidOperation so callers use errors.Is(err, types.ErrNotFound)
// exactly as they would against the in-process dispatcher.
//
// Auth: mTLS via credentials.NewTLS(), API key via gRPC metadata header,
// or insecure (plaintext) for local development. resourcesvc-server itself
// serves plaintext gRPC; mtls is for endpoints behind a TLS-terminating proxy.
//
// The dialFn field is injectable for testing (net.Listen on 127.0.0.1:0).
package rpcclient
