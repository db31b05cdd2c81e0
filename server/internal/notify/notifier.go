package notify

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/crossplatform/resourcesvc/pkg/types"
	"github.com/crossplatform/resourcesvc/server/internal/config"
	"github.com/crossplatform/resourcesvc/server/internal/store"
)

// Event is one resource change delivered to webhooks.
type Event struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"` // "created" | "updated"
	Resource types.Resource `json:"resource"`
	At       time.Time      `json:"at"`
}

// Notifier sends change events to the configured webhook targets.
//
// Notifier is safe for concurrent use.
type Notifier struct {
	webhooks []config.WebhookConfig
	client   *http.Client
	// pending bounds delivering plus waiting events, and with it the number
	// of goroutines; sem bounds the ones delivering.
	pending *semaphore.Weighted
	sem     *semaphore.Weighted
	wg      sync.WaitGroup
}

// New creates a Notifier from the server notify configuration.
// A Notifier with no webhooks is valid; ResourceSaved becomes a no-op.
func New(cfg config.NotifyConfig) *Notifier {
	inFlight := cfg.MaxInFlight
	if inFlight <= 0 {
		inFlight = config.DefaultNotifyInFlight
	}
	queued := max(cfg.MaxQueued, 0)
	return &Notifier{
		webhooks: cfg.Webhooks,
		client:   &http.Client{Timeout: cfg.Timeout},
		pending:  semaphore.NewWeighted(int64(inFlight + queued)),
		sem:      semaphore.NewWeighted(int64(inFlight)),
	}
}

// ResourceSaved builds an event for r and delivers it asynchronously. It
// never blocks: when MaxInFlight deliveries are running and MaxQueued more
// are waiting, the event is dropped with a warning.
func (n *Notifier) ResourceSaved(r types.Resource, change store.Change) {
	if len(n.webhooks) == 0 || change == store.Unchanged {
		return
	}
	ev := Event{
		ID:       uuid.NewString(),
		Type:     change.String(),
		Resource: r,
		At:       time.Now().UTC(),
	}
	if !n.pending.TryAcquire(1) {
		slog.Warn("notify: delivery backlog full, event dropped",
			"event", ev.ID, "id", r.ID, "type", ev.Type)
		return
	}
	slog.Debug("notify: resource change queued", "event", ev.ID, "id", r.ID, "type", ev.Type)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer n.pending.Release(1)
		// Acquire cannot fail with a background context.
		_ = n.sem.Acquire(context.Background(), 1)
		defer n.sem.Release(1)
		n.deliver(&ev)
	}()
}

// Wait blocks until every queued delivery has completed.
func (n *Notifier) Wait() {
	n.wg.Wait()
}
