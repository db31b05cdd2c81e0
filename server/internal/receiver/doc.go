// Package receiver implements pb.CrossPlatformServiceServer, the gRPC
// endpoint in front of the service dispatcher.
//
// Each method converts the wire message to pkg/types, calls the dispatcher,
// and converts the result back. Dispatcher failures become gRPC statuses:
//
//	types.ErrInvalidArgument → codes.InvalidArgument
//	types.ErrNotFound        → codes.NotFound
//	anything else            → codes.Internal
//
// The status message is the InvalidOperation text, which names the operation
// and the sub-case. Authentication, logging and metrics are applied upstream
// by server interceptors, so the receiver only translates.
//
// New(svc) wires the receiver to the given dispatcher.
package receiver
