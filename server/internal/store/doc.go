// Package store holds the in-memory resource state. It provides a
// thread-safe store keyed by resource id with insertion-ordered listing.
//
// Puts are mutually exclusive; Get and All may run concurrently with each
// other and never observe a partially applied Put. There is no delete and
// no persistence: entries live until the process exits.
package store
