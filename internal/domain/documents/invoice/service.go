package invoice

import (
	"context"
	"fmt"

	"faktura/internal/core/id"
	"faktura/internal/core/tx"
	"faktura/internal/domain"
	"faktura/internal/domain/numbering"
	"faktura/pkg/logger"
)

// Service provides business operations for invoice documents.
type Service struct {
	repo      Repository
	engine    *numbering.Engine
	txManager tx.Manager
}

// NewService creates a new invoice service.
func NewService(repo Repository, engine *numbering.Engine, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		engine:    engine,
		txManager: txManager,
	}
}

// Create creates a new draft invoice. The number stays empty until posting.
func (s *Service) Create(ctx context.Context, doc *Invoice) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "invoice created",
		"id", doc.ID,
		"kind", string(doc.Kind))

	return nil
}

// GetByID retrieves an invoice with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Invoice, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// Update updates a draft invoice. Posted invoices are frozen.
func (s *Service) Update(ctx context.Context, doc *Invoice) error {
	if err := doc.CanModify(); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		return nil
	})
}

// Delete soft-deletes a draft invoice.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if err := doc.CanModify(); err != nil {
		return err
	}

	return s.repo.Delete(ctx, docID)
}

// Post numbers the invoice and freezes it.
//
// The numbering engine persists the number, the posted flag and the
// counter increment in one transaction. When no sequence assignment
// matches, the invoice is posted without a managed number.
func (s *Service) Post(ctx context.Context, docID id.ID, scope numbering.Scope) (*Invoice, error) {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	if err := doc.CanModify(); err != nil {
		return nil, err
	}

	save := func(ctx context.Context) error {
		doc.MarkPosted()
		return s.repo.Update(ctx, doc)
	}

	numbered, err := s.engine.Assign(ctx, doc, scope, save)
	if err != nil {
		doc.MarkUnposted()
		return nil, err
	}

	if !numbered {
		// Passthrough: no assignment covers this invoice. Post anyway,
		// outside any managed sequence.
		err = s.txManager.RunInTransaction(ctx, save)
		if err != nil {
			doc.MarkUnposted()
			return nil, err
		}
	}

	logger.Info(ctx, "invoice posted",
		"id", doc.ID,
		"number", doc.Number,
		"numbered", numbered)

	return doc, nil
}

// List retrieves invoices with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error) {
	return s.repo.List(ctx, filter)
}
