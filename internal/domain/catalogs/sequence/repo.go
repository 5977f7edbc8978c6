package sequence

import (
	"faktura/internal/core/counter"
	"faktura/internal/domain"
)

// Repository defines the interface for Sequence persistence.
// The same postgres repository also implements counter.Issuer, so the
// counter increment always runs through the transaction-aware querier.
type Repository interface {
	domain.CatalogRepository[*Sequence]
	counter.Issuer
}
