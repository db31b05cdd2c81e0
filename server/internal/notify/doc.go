// Package notify delivers resource change events to webhooks.
//
// The service dispatcher calls Notifier.ResourceSaved after every save that
// changed the store (identical saves are not reported). Each event is POSTed
// asynchronously to every configured target: Slack and Teams receive a
// formatted message card, generic "http" targets receive the Event as JSON.
// Webhook URLs are read from environment variables named in the config so
// secrets never live in the file.
//
// At most MaxInFlight events are delivered concurrently; further events wait
// on a weighted semaphore. Delivery failures are logged and never affect the caller. Wait blocks until
// in-flight deliveries finish and is called on shutdown.
package notify
