// Package logging configures the process-wide slog logger and provides a
// gRPC interceptor that logs every call with a request id.
//
// New(format, level) builds a JSON or text handler on the given writer whose
// level is held in a slog.LevelVar, so SetLevel can change verbosity without
// rebuilding the logger (config hot-reload uses this).
//
// UnaryServerInterceptor reuses the caller's "x-request-id" metadata when
// present, otherwise generates a UUID; the id is echoed back as a response
// header and attached to every log line for the call.
//
// RecoveryInterceptor wraps the go-grpc-middleware recovery interceptor so a
// panicking handler returns codes.Internal and is logged with its stack.
package logging
