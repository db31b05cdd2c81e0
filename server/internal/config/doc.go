// Package config loads the server-side configuration from the `server:` section
// of config.yaml (the `client:` key is ignored by the server binary).
//
// Config fields:
//   - GRPCPort                port for the gRPC service (default 50051)
//   - HTTPPort                port for REST, WebSocket and /metrics (default 8080)
//   - Auth.Mode               "apikey" or "none"
//   - Auth.KeyEnv             environment variable holding the expected API key
//   - Auth.Header             gRPC metadata/HTTP header name (default "x-api-key")
//   - Log.Level               debug | info | warn | error (default info)
//   - Log.Format              json | text (default json)
//   - Limits.MaxPayloadBytes  longest accepted payload, 0 = unlimited
//   - Limits.MaxRecvMsgBytes  largest gRPC message (default 4 MiB)
//   - Stream.Interval         WebSocket change-check period (default 5s)
//   - Notify.Timeout          per-webhook POST timeout (default 10s)
//   - Notify.MaxInFlight      concurrent event deliveries (default 16)
//   - Notify.MaxQueued        events waiting for a delivery slot (default 256)
//   - Notify.Webhooks         targets {type: slack|teams|http, url_env}
//
// Load(path) applies defaults, unmarshals the file, applies RESOURCESVC_*
// environment overrides (RESOURCESVC_GRPC_PORT, RESOURCESVC_AUTH_MODE,
// RESOURCESVC_LOG_LEVEL, ...), then validates.
//
// Watch(ctx, path, fn) reloads the file on every write. The server applies
// Log.Level and Auth live; RestartRequired tells it when a change needs a
// restart instead.
package config
