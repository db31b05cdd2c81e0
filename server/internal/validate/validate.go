package validate

import (
	"fmt"
	"unicode/utf8"

	"github.com/crossplatform/resourcesvc/pkg/types"
)

// Validator checks per-operation preconditions.
type Validator struct {
	// MaxPayloadBytes caps the payload length accepted by Save.
	// Zero means unlimited.
	MaxPayloadBytes int
}

// Get fails when id is negative.
func (v Validator) Get(id int32) error {
	return checkID(id)
}

// Save fails when r is nil, its id is negative, its payload is not valid
// UTF-8 or the payload exceeds MaxPayloadBytes.
func (v Validator) Save(r *types.Resource) error {
	if r == nil {
		return fmt.Errorf("%w: resource is required", types.ErrInvalidArgument)
	}
	if err := checkID(r.ID); err != nil {
		return err
	}
	if !utf8.ValidString(r.Payload) {
		return fmt.Errorf("%w: payload is not valid UTF-8", types.ErrInvalidArgument)
	}
	if v.MaxPayloadBytes > 0 && len(r.Payload) > v.MaxPayloadBytes {
		return fmt.Errorf("%w: payload is %d bytes, limit is %d",
			types.ErrInvalidArgument, len(r.Payload), v.MaxPayloadBytes)
	}
	return nil
}

// GetList has no preconditions.
func (v Validator) GetList() error { return nil }

func checkID(id int32) error {
	if id < 0 {
		return fmt.Errorf("%w: id %d is negative", types.ErrInvalidArgument, id)
	}
	return nil
}
