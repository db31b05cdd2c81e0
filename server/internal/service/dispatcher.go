package service

import (
	"iter"
	"log/slog"

	"github.com/crossplatform/resourcesvc/pkg/types"
	"github.com/crossplatform/resourcesvc/server/internal/store"
	"github.com/crossplatform/resourcesvc/server/internal/validate"
)

// SaveObserver is told about every save that changed the stored state.
type SaveObserver interface {
	ResourceSaved(r types.Resource, change store.Change)
}

// Dispatcher routes service calls through the validator to the store.
type Dispatcher struct {
	store     *store.Store
	validator validate.Validator
	observers []SaveObserver
}

// New creates a Dispatcher over st.
func New(st *store.Store, v validate.Validator) *Dispatcher {
	return &Dispatcher{store: st, validator: v}
}

// Observe registers o for save notifications. It must be called before the
// dispatcher starts serving calls.
func (d *Dispatcher) Observe(o SaveObserver) {
	d.observers = append(d.observers, o)
}

// Get returns the resource stored under id.
func (d *Dispatcher) Get(id int32) (types.Resource, error) {
	if err := d.validator.Get(id); err != nil {
		return types.Resource{}, types.NewInvalidOperation(types.OpGet, err)
	}
	r, err := d.store.Get(id)
	if err != nil {
		return types.Resource{}, types.NewInvalidOperation(types.OpGet, err)
	}
	return r, nil
}

// Save creates or overwrites r. The dispatcher stores a copy, so the caller
// may reuse r afterwards.
func (d *Dispatcher) Save(r *types.Resource) error {
	if err := d.validator.Save(r); err != nil {
		return types.NewInvalidOperation(types.OpSave, err)
	}
	change := d.store.Put(*r)
	slog.Debug("service: resource saved", "id", r.ID, "change", change.String(), "payload_bytes", len(r.Payload))
	if change != store.Unchanged {
		for _, o := range d.observers {
			o.ResourceSaved(*r, change)
		}
	}
	return nil
}

// GetList returns every stored resource in insertion order. An empty store
// yields an empty sequence.
func (d *Dispatcher) GetList() iter.Seq[types.Resource] {
	return d.store.All()
}

// Ping reports liveness. It is true for as long as the process serves calls.
func (d *Dispatcher) Ping() bool {
	return true
}
