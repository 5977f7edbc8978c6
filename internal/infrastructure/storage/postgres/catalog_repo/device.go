package catalog_repo

import (
	"faktura/internal/domain/catalogs/device"
	"faktura/internal/infrastructure/storage/postgres"
)

const deviceTable = "cat_devices"

// DeviceRepo implements device.Repository.
type DeviceRepo struct {
	*BaseCatalogRepo[*device.Device]
}

// NewDeviceRepo creates a new device repository.
func NewDeviceRepo(txm *postgres.TxManager) *DeviceRepo {
	return &DeviceRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			deviceTable,
			postgres.ExtractDBColumns[device.Device](),
			func() *device.Device { return &device.Device{} },
		),
	}
}

var _ device.Repository = (*DeviceRepo)(nil)
