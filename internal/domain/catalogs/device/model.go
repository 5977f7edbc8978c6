// Package device provides the Device catalog (point of sale terminals).
// The device is the primary dispatch key for invoice sequence resolution.
package device

import (
	"context"

	"faktura/internal/core/apperror"
	"faktura/internal/core/entity"
	"faktura/internal/core/id"
)

// Device represents a point-of-sale terminal or emission point.
type Device struct {
	entity.Catalog

	// CompanyID is the owning company
	CompanyID id.ID `db:"company_id" json:"companyId"`
}

// NewDevice creates a new Device.
func NewDevice(code, name string, companyID id.ID) *Device {
	return &Device{
		Catalog:   entity.NewCatalog(code, name),
		CompanyID: companyID,
	}
}

// Validate implements entity.Validatable.
func (d *Device) Validate(ctx context.Context) error {
	if err := d.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(d.CompanyID) {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}

	return nil
}
