package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidOperation_WrapsSentinels(t *testing.T) {
	err := NewInvalidOperation(OpGet, fmt.Errorf("%w: resource 7", ErrNotFound))
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidArgument))

	var op *InvalidOperation
	require.True(t, errors.As(err, &op))
	assert.Equal(t, OpGet, op.Op)
	assert.Equal(t, "not_found", op.Kind())
	assert.Equal(t, "invalid operation get: not found: resource 7", err.Error())
}

func TestInvalidOperation_Kind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: id -1 is negative", ErrInvalidArgument), "invalid_argument"},
		{fmt.Errorf("%w: resource 3", ErrNotFound), "not_found"},
		{errors.New("boom"), "unknown"},
	}
	for _, c := range cases {
		op := &InvalidOperation{Op: OpSave, Err: c.err}
		assert.Equal(t, c.want, op.Kind(), c.err.Error())
	}
}

func TestNewInvalidOperation_NilIsNil(t *testing.T) {
	assert.NoError(t, NewInvalidOperation(OpSave, nil))
}
