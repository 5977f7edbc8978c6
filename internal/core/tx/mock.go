package tx

import (
	"context"
)

// MockManager is a test implementation of Manager.
// By default it runs fn directly without any transaction semantics.
type MockManager struct {
	RunFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	// Calls counts RunInTransaction invocations.
	Calls int
}

// RunInTransaction implements Manager.
func (m *MockManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if m.RunFunc != nil {
		return m.RunFunc(ctx, fn)
	}
	return fn(ctx)
}

// Ensure compile-time interface compliance.
var _ Manager = (*MockManager)(nil)
