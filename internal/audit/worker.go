package audit

import (
	"context"
	"log/slog"
	"time"

	"anonid/internal/platform/metrics"
)

const appendTimeout = 5 * time.Second

// Worker drains the audit inbox, persisting every event to the store and,
// when a publisher is configured, streaming it to Kafka. A failure on one
// sink does not stop the other.
type Worker struct {
	inbox     <-chan Event
	store     Store
	publisher Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewWorker(inbox <-chan Event, store Store, publisher Publisher, logger *slog.Logger, m *metrics.Metrics) *Worker {
	return &Worker{
		inbox:     inbox,
		store:     store,
		publisher: publisher,
		logger:    logger,
		metrics:   m,
	}
}

// Run consumes events until the context is cancelled, then drains whatever
// is still buffered in the inbox before returning.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case event := <-w.inbox:
			w.handle(event)
		case <-ctx.Done():
			for {
				select {
				case event := <-w.inbox:
					w.handle(event)
				default:
					return
				}
			}
		}
	}
}

func (w *Worker) handle(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()

	if err := w.store.Append(ctx, event); err != nil {
		w.logger.Error("append audit event",
			"request_id", event.RequestID,
			"endpoint", event.Endpoint,
			"error", err,
		)
		w.metrics.IncrementAuditEvent("store", "error")
	} else {
		w.metrics.IncrementAuditEvent("store", "ok")
	}

	if w.publisher == nil {
		return
	}
	if err := w.publisher.Publish(ctx, event); err != nil {
		w.logger.Error("publish audit event",
			"request_id", event.RequestID,
			"error", err,
		)
		w.metrics.IncrementAuditEvent("kafka", "error")
		return
	}
	w.metrics.IncrementAuditEvent("kafka", "ok")
}
