// Package api implements the HTTP REST gateway for resourcesvc-server.
//
// New(svc, maxBody) returns an http.Handler (a chi router) that serves:
//
//	GET /api/v1/health          {"ok": true} while the process is alive
//	GET /api/v1/resources       all resources in insertion order ([]Resource)
//	GET /api/v1/resources/{id}  one resource; 400 bad id, 404 unknown id
//	PUT /api/v1/resources/{id}  save {"payload": "..."}; 204 on success,
//	                            413 when the body exceeds maxBody
//
// All endpoints:
//   - Respond with Content-Type: application/json
//   - Return 405 for unsupported methods, 404 for unknown paths
//   - Report failures as {"error": "...", "kind": "invalid_argument|not_found|..."}
//
// JSON types are defined in types.go. BuildSnapshot produces the payload the
// WebSocket stream pushes (see package ws).
package api
