package journal

import (
	"faktura/internal/domain"
)

// Repository defines the interface for Journal persistence.
type Repository interface {
	domain.CatalogRepository[*Journal]
}
