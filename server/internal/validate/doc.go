// Package validate rejects malformed requests before they reach the store.
// Every check is pure: it returns nil or an error wrapping
// types.ErrInvalidArgument, and never touches shared state.
package validate
