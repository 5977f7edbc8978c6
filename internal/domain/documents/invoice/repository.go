package invoice

import (
	"context"
	"time"

	"faktura/internal/core/id"
	"faktura/internal/domain"
	"faktura/internal/domain/numbering"
)

// Repository defines operations for invoice documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *Invoice) error
	GetByID(ctx context.Context, docID id.ID) (*Invoice, error)
	GetByNumber(ctx context.Context, number string) (*Invoice, error)
	Update(ctx context.Context, doc *Invoice) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error)
}

// ListFilter for filtering invoices.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	Kind      numbering.Kind
	CompanyID *id.ID
	JournalID *id.ID
	PartyID   *id.ID
	Posted    *bool
	DateFrom  *time.Time
	DateTo    *time.Time
}
