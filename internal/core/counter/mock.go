// Package counter provides domain contracts for strict document sequences.
package counter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"faktura/internal/core/id"
)

// MockIssuer is a test implementation of Issuer.
// It keeps an in-memory value per sequence and formats numbers as
// "SEQ<n>-NNNNN". Use in unit tests to avoid database dependencies.
type MockIssuer struct {
	IssueNextFunc func(ctx context.Context, sequenceID id.ID, contextDate time.Time) (string, error)

	mu     sync.Mutex
	values map[id.ID]int64
}

// IssueNext implements Issuer.
func (m *MockIssuer) IssueNext(ctx context.Context, sequenceID id.ID, contextDate time.Time) (string, error) {
	if m.IssueNextFunc != nil {
		return m.IssueNextFunc(ctx, sequenceID, contextDate)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[id.ID]int64)
	}
	m.values[sequenceID]++
	return fmt.Sprintf("SEQ-%s-%05d", sequenceID.String()[:8], m.values[sequenceID]), nil
}

// SetNext implements Issuer.
func (m *MockIssuer) SetNext(ctx context.Context, sequenceID id.ID, value int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[id.ID]int64)
	}
	m.values[sequenceID] = value - 1
	return nil
}

// Current returns the last issued raw value for a sequence (test helper).
func (m *MockIssuer) Current(sequenceID id.ID) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[sequenceID]
}

// Ensure compile-time interface compliance.
var _ Issuer = (*MockIssuer)(nil)
