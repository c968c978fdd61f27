// Package registry provides the national identity registry data source. The
// production integration would call the registry's API; this package ships an
// in-process mock with seeded records so registration flows are testable end
// to end.
package registry

import (
	"context"

	"anonid/internal/identity"
	"anonid/pkg/platform/sentinel"
)

// Source supplies the raw identity record for a NIN. Implementations must
// return sentinel.ErrNotFound when the NIN has no record; the registrar
// translates that into a caller-visible error distinct from validation
// failures.
type Source interface {
	FetchRecord(ctx context.Context, nin string) (identity.RawRecord, error)
}

// MockSource is a fixed in-memory registry. Read-only after construction and
// safe for concurrent use.
type MockSource struct {
	records map[string]identity.RawRecord
}

// NewMockSource seeds the mock registry with demo citizens.
func NewMockSource() *MockSource {
	return &MockSource{
		records: map[string]identity.RawRecord{
			"12345678901": {
				"full name":                      "Fatima Adeleke",
				"date of birth":                  "2000-04-12",
				"country":                        "Nigeria",
				"gender":                         "Female",
				"national identification number": "12345678901",
			},
			"98765432109": {
				"full name":                      "Chidi Okafor",
				"date of birth":                  "1995-09-23",
				"country":                        "Nigeria",
				"gender":                         "Male",
				"national identification number": "98765432109",
			},
			"11122233344": {
				"full name":                      "Zainab Musa",
				"date of birth":                  "2003-01-10",
				"country":                        "Nigeria",
				"gender":                         "Female",
				"national identification number": "11122233344",
			},
		},
	}
}

// FetchRecord returns a copy of the seeded record so callers can never mutate
// the registry's view.
func (s *MockSource) FetchRecord(_ context.Context, nin string) (identity.RawRecord, error) {
	record, ok := s.records[nin]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := make(identity.RawRecord, len(record))
	for k, v := range record {
		out[k] = v
	}
	return out, nil
}
