package types

// Resource is the entity exchanged by the service, keyed by ID.
// Payload is opaque UTF-8 text; the service never inspects it.
type Resource struct {
	ID      int32  `json:"id" yaml:"id"`
	Payload string `json:"payload" yaml:"payload"`
}
