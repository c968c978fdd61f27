// Package disclosure decides whether a data access request may see sensitive
// fields, combining the risk verdict on the request's stated purpose with
// on-demand decryption of the record.
package disclosure

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"anonid/internal/identity"
	"anonid/internal/platform/metrics"
	"anonid/internal/risk"
)

// Decryptor recovers the sensitive field map of a record. The registrar
// implements it.
type Decryptor interface {
	DecryptSensitive(ctx context.Context, record identity.Record) (map[string]string, error)
}

// Decision is the outcome of one disclosure evaluation. When access is
// denied, Fields is empty and the verdict explains why.
type Decision struct {
	Granted bool              `json:"granted"`
	Verdict risk.Verdict      `json:"verdict"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Gate evaluates disclosure requests. High risk denies without touching
// ciphertext; anything below decrypts and releases only the requested
// fields.
type Gate struct {
	decryptor Decryptor
	scorer    *risk.Scorer
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewGate(decryptor Decryptor, scorer *risk.Scorer, logger *slog.Logger, m *metrics.Metrics) *Gate {
	return &Gate{
		decryptor: decryptor,
		scorer:    scorer,
		logger:    logger,
		metrics:   m,
	}
}

var tracer = otel.Tracer("anonid/disclosure")

// Evaluate scores purpose and grants or denies the requested fields of the
// record. A High verdict is a denial, not an error. Requested fields that
// the record does not carry are silently absent from the result.
func (g *Gate) Evaluate(ctx context.Context, record identity.Record, purpose string, requestedFields []string) (Decision, error) {
	ctx, span := tracer.Start(ctx, "gate.Evaluate")
	defer span.End()
	start := time.Now()

	verdict := g.scorer.Score(purpose)
	span.SetAttributes(
		attribute.Int("risk.score", verdict.Score),
		attribute.String("risk.level", string(verdict.Level)),
	)
	if verdict.Level == risk.LevelHigh {
		g.logger.InfoContext(ctx, "disclosure denied",
			"anon_id", record.AnonID,
			"risk_score", verdict.Score,
			"flags", len(verdict.Flags),
		)
		g.metrics.ObserveDisclosure("denied", time.Since(start))
		return Decision{Granted: false, Verdict: verdict}, nil
	}

	sensitive, err := g.decryptor.DecryptSensitive(ctx, record)
	if err != nil {
		g.metrics.ObserveDisclosure("failed", time.Since(start))
		return Decision{}, fmt.Errorf("disclose %s: %w", record.AnonID, err)
	}

	fields := make(map[string]string, len(requestedFields))
	for _, name := range requestedFields {
		if value, ok := sensitive[name]; ok {
			fields[name] = value
			continue
		}
		if value, ok := record.PublicProfile[name]; ok {
			fields[name] = value
		}
	}

	g.logger.InfoContext(ctx, "disclosure granted",
		"anon_id", record.AnonID,
		"risk_score", verdict.Score,
		"fields_requested", len(requestedFields),
		"fields_released", len(fields),
	)
	g.metrics.ObserveDisclosure("granted", time.Since(start))
	return Decision{Granted: true, Verdict: verdict, Fields: fields}, nil
}
