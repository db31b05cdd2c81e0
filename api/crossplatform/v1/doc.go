// Package crossplatformv1 is the wire contract of the crossplatform resource
// service: request/response messages, the gRPC service descriptor, server
// registration and a typed client.
//
// Messages are plain structs carried by a JSON codec registered with gRPC
// under the content-subtype "json" (see codec.go). The client in this package
// selects that codec on every call, so callers only need a *grpc.ClientConn.
//
// Service: crossplatform.v1.CrossPlatformService
//
//	Get     (GetRequest)     returns (Resource)
//	Save    (SaveRequest)    returns (SaveResponse)
//	GetList (GetListRequest) returns (GetListResponse)
//	Ping    (PingRequest)    returns (PingResponse)
package crossplatformv1
