package device

import (
	"faktura/internal/domain"
)

// Repository defines the interface for Device persistence.
type Repository interface {
	domain.CatalogRepository[*Device]
}
