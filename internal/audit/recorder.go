package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"anonid/internal/identity"
	"anonid/pkg/platform/middleware/metadata"
	"anonid/pkg/requestcontext"
)

// Entry is what callers know at the point of access: the recorder fills in
// identifiers and request metadata from the context.
type Entry struct {
	NIN             string
	Endpoint        string
	RequestedFields []string
	Granted         bool
	RiskLevel       string
	RiskScore       int
}

// Recorder turns access entries into audit events and hands them to the
// worker without blocking the request path.
type Recorder struct {
	inbox  chan<- Event
	logger *slog.Logger
}

func NewRecorder(inbox chan<- Event, logger *slog.Logger) *Recorder {
	return &Recorder{inbox: inbox, logger: logger}
}

// Record builds the event and enqueues it. If the worker's inbox is full the
// event is dropped with a warning rather than stalling the caller.
func (r *Recorder) Record(ctx context.Context, entry Entry) {
	event := Event{
		ID:              uuid.NewString(),
		MaskedNIN:       identity.MaskNIN(entry.NIN),
		Endpoint:        entry.Endpoint,
		RequestedFields: entry.RequestedFields,
		Granted:         entry.Granted,
		RiskLevel:       entry.RiskLevel,
		RiskScore:       entry.RiskScore,
		Organization:    requestcontext.OrgName(ctx),
		ClientIP:        requestcontext.ClientIP(ctx),
		ClientPlatform:  metadata.ClientPlatform(requestcontext.UserAgent(ctx)),
		RequestID:       requestcontext.RequestID(ctx),
		Timestamp:       requestcontext.Now(ctx).UTC(),
	}
	select {
	case r.inbox <- event:
	default:
		r.logger.Warn("audit inbox full, dropping event",
			"endpoint", event.Endpoint,
			"request_id", event.RequestID,
		)
	}
}
