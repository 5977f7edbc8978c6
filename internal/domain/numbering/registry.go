package numbering

import (
	"context"

	"faktura/internal/core/id"
	"faktura/internal/domain"
)

// Registry stores sequence assignments.
//
// List methods return assignments in insertion order (created_at, id).
// Resolution relies on that order as priority, so implementations must
// preserve it.
type Registry interface {
	// Create stores a new assignment. Fails with VALIDATION_ERROR when an
	// assignment for the same (journal, period) pair already exists, or
	// when its period window overlaps another assignment of the journal.
	Create(ctx context.Context, a *Assignment) error

	// GetByID retrieves an assignment.
	GetByID(ctx context.Context, assignmentID id.ID) (*Assignment, error)

	// ListByDevice returns the assignments bound to a device.
	ListByDevice(ctx context.Context, deviceID id.ID) ([]*Assignment, error)

	// ListByJournal returns all assignments under a journal (fallback path).
	ListByJournal(ctx context.Context, journalID id.ID) ([]*Assignment, error)

	// List supports the administrative HTTP surface.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Assignment], error)

	// Delete removes an assignment (soft delete).
	Delete(ctx context.Context, assignmentID id.ID) error
}
