// Package ws implements the WebSocket change stream for resourcesvc-server.
//
// Hub manages a set of connected clients and pushes the full resource list
// to them whenever the store revision changes. The store is polled on a
// configurable interval (default 5s in production).
//
// New(source, interval) creates a Hub.
// Hub.Run(ctx) starts the ticker and blocks until ctx is cancelled, then
// closes all active connections.
// Hub.ServeHTTP upgrades an HTTP connection to WebSocket, sends the current
// list immediately on connect, then streams updates.
//
// Message format sent to clients:
//
//	{
//	  "event": "resources",
//	  "data":  {"resources": [...], "revision": 7, "generated_at": "..."}
//	}
//
// The upgrader accepts all origins. Apply CORS restrictions at the reverse
// proxy level. The endpoint is mounted at /ws/stream by the server.
package ws
