// Package types defines shared Go types used by both the client and server.
// These are the canonical in-memory representations of resources and of the
// failures the service reports, separate from the gRPC wire format.
//
// Every failure surfaced by the service is an *InvalidOperation wrapping one
// of two sentinels:
//   - ErrInvalidArgument: malformed input (negative id, missing resource)
//   - ErrNotFound       : the requested id is not stored
//
// Use errors.Is to branch on the sub-case and errors.As to recover the
// operation name.
package types
