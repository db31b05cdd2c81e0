// Package metrics exposes Prometheus metrics for resourcesvc-server:
//
//	resourcesvc_grpc_requests_total{method,code}          counter
//	resourcesvc_grpc_request_duration_seconds{method}     histogram
//	resourcesvc_resources_stored                          gauge
//
// Metrics live in their own registry (not the global default) so tests can
// build independent instances.
package metrics
