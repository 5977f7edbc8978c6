// Package counter provides domain contracts for strict document sequences.
// Implementations live in infrastructure layer.
package counter

import (
	"context"
	"time"

	"faktura/internal/core/id"
)

// Issuer issues formatted numbers from named sequences.
// This is the domain contract - implementations live in infrastructure layer.
//
// Guarantees required from implementations:
//   - values are unique and strictly increasing per sequence, in commit order
//   - the increment participates in the transaction carried by ctx, so a
//     rolled back caller never burns a number
//   - contextDate affects formatting (year prefix) only, never ordering
type Issuer interface {
	// IssueNext returns the next formatted number of the sequence.
	// Pattern: PREFIX-YEAR-NNNNN (e.g. "FV-2026-00042").
	IssueNext(ctx context.Context, sequenceID id.ID, contextDate time.Time) (string, error)

	// SetNext sets the next raw value (for migrations and year rollover).
	SetNext(ctx context.Context, sequenceID id.ID, value int64) error
}
