// Package auth provides authentication middleware for resourcesvc-server.
//
// An Authenticator holds the active Settings and exposes them both as a gRPC
// UnaryServerInterceptor and as HTTP middleware. Settings can be swapped at
// runtime with Update, which is how config hot-reload rotates the API key.
//
// When Mode != "apikey" or Key == "", all calls pass through (useful for
// local development with auth disabled). Otherwise a missing or incorrect
// key yields codes.Unauthenticated (gRPC) or 401 (HTTP). The Ping method,
// /api/v1/health and /metrics are always public so probes and scrapers work
// without credentials.
//
// APIKeyInterceptor(mode, header, key) is a shorthand for a fixed-settings
// gRPC interceptor.
package auth
