package api

import "github.com/crossplatform/resourcesvc/pkg/types"

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	OK bool `json:"ok"`
}

// SaveRequest is the body of PUT /api/v1/resources/{id}. ID is optional;
// when present it must match the path.
type SaveRequest struct {
	ID      *int32 `json:"id,omitempty"`
	Payload string `json:"payload"`
}

// SnapshotResponse is the full resource list at one store revision.
type SnapshotResponse struct {
	Resources   []types.Resource `json:"resources"`
	Revision    uint64           `json:"revision"`
	GeneratedAt string           `json:"generated_at"` // RFC3339
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
