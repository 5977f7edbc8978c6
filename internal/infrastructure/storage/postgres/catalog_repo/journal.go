package catalog_repo

import (
	"faktura/internal/domain/catalogs/journal"
	"faktura/internal/infrastructure/storage/postgres"
)

const journalTable = "cat_journals"

// JournalRepo implements journal.Repository.
type JournalRepo struct {
	*BaseCatalogRepo[*journal.Journal]
}

// NewJournalRepo creates a new journal repository.
func NewJournalRepo(txm *postgres.TxManager) *JournalRepo {
	return &JournalRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			journalTable,
			postgres.ExtractDBColumns[journal.Journal](),
			func() *journal.Journal { return &journal.Journal{} },
		),
	}
}

var _ journal.Repository = (*JournalRepo)(nil)
