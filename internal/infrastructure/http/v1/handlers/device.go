package handlers

import (
	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/domain"
	"faktura/internal/domain/catalogs/device"
	"faktura/internal/infrastructure/http/v1/dto"
)

// DeviceHTTPHandler is a type alias to shorten signatures.
type DeviceHTTPHandler = CatalogHandler[
	*device.Device,
	dto.CreateDeviceRequest,
	dto.UpdateDeviceRequest,
]

// NewDeviceHandler creates a configured generic handler for devices.
func NewDeviceHandler(
	base *BaseHandler,
	service *domain.CatalogService[*device.Device],
) *DeviceHTTPHandler {

	config := CatalogHandlerConfig[
		*device.Device,
		dto.CreateDeviceRequest,
		dto.UpdateDeviceRequest,
	]{
		Service:    service,
		EntityName: "device",

		MapCreateDTO: func(req dto.CreateDeviceRequest) (*device.Device, error) {
			companyID, err := id.Parse(req.CompanyID)
			if err != nil {
				return nil, apperror.NewValidation("invalid company id format").
					WithDetail("field", "companyId")
			}
			return device.NewDevice(req.Code, req.Name, companyID), nil
		},

		MapUpdateDTO: func(req dto.UpdateDeviceRequest, existing *device.Device) *device.Device {
			if req.Code != nil {
				existing.Code = *req.Code
			}
			if req.Name != nil {
				existing.Name = *req.Name
			}
			existing.Version = req.Version
			return existing
		},

		MapToDTO: func(entity *device.Device) any {
			return dto.FromDevice(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
