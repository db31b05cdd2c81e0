// Package service implements the dispatcher behind every transport: the
// four-operation surface Get, Save, GetList and Ping.
//
// Get and Save run the validator, then delegate to the store. Any failure is
// returned as a *types.InvalidOperation wrapping types.ErrInvalidArgument or
// types.ErrNotFound. GetList has no preconditions and Ping never touches the
// store. The dispatcher keeps no state of its own beyond the observers
// registered with Observe, which hear about every save that changed the store.
package service
