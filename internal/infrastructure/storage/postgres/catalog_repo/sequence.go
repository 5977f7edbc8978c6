package catalog_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"faktura/internal/core/apperror"
	"faktura/internal/core/counter"
	"faktura/internal/core/id"
	"faktura/internal/domain/catalogs/sequence"
	"faktura/internal/infrastructure/storage/postgres"
)

const sequenceTable = "cat_sequences"

// SequenceRepo implements sequence.Repository: catalog CRUD plus the
// counter.Issuer contract.
type SequenceRepo struct {
	*BaseCatalogRepo[*sequence.Sequence]
	txm *postgres.TxManager
}

// NewSequenceRepo creates a new sequence repository.
func NewSequenceRepo(txm *postgres.TxManager) *SequenceRepo {
	return &SequenceRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			sequenceTable,
			postgres.ExtractDBColumns[sequence.Sequence](),
			func() *sequence.Sequence { return &sequence.Sequence{} },
		),
		txm: txm,
	}
}

// IssueNext atomically increments the counter and returns the formatted
// number. The UPDATE takes a row lock, so concurrent issuers serialize and
// the series stays strict and gapless. Runs through the context querier:
// inside a transaction the increment rolls back with it.
func (r *SequenceRepo) IssueNext(ctx context.Context, sequenceID id.ID, contextDate time.Time) (string, error) {
	const query = `
		UPDATE cat_sequences
		SET current_value = current_value + 1
		WHERE id = $1 AND deletion_mark = false
		RETURNING current_value, prefix, pad_width, include_year`

	var (
		value       int64
		prefix      string
		padWidth    int
		includeYear bool
	)

	err := r.txm.GetQuerier(ctx).
		QueryRow(ctx, query, sequenceID).
		Scan(&value, &prefix, &padWidth, &includeYear)
	if err == pgx.ErrNoRows {
		return "", apperror.NewNotFound(sequenceTable, sequenceID.String())
	}
	if err != nil {
		return "", fmt.Errorf("issue next number: %w", err)
	}

	return sequence.Format(prefix, padWidth, includeYear, contextDate, value), nil
}

// SetNext sets the counter so the next issued raw value equals value.
func (r *SequenceRepo) SetNext(ctx context.Context, sequenceID id.ID, value int64) error {
	if value < 1 {
		return apperror.NewValidation("next value must be positive").
			WithDetail("field", "value")
	}

	const query = `
		UPDATE cat_sequences
		SET current_value = $2
		WHERE id = $1 AND deletion_mark = false`

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, query, sequenceID, value-1)
	if err != nil {
		return fmt.Errorf("set next number: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(sequenceTable, sequenceID.String())
	}

	return nil
}

var (
	_ sequence.Repository = (*SequenceRepo)(nil)
	_ counter.Issuer      = (*SequenceRepo)(nil)
)
