package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/domain/calendar"
	"faktura/internal/infrastructure/http/v1/dto"
)

// CalendarHandler serves fiscal year and period administration.
type CalendarHandler struct {
	*BaseHandler
	service *calendar.Service
}

// NewCalendarHandler creates a new calendar handler.
func NewCalendarHandler(base *BaseHandler, service *calendar.Service) *CalendarHandler {
	return &CalendarHandler{BaseHandler: base, service: service}
}

// CreateFiscalYear handles POST /fiscal-years.
func (h *CalendarHandler) CreateFiscalYear(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateFiscalYearRequest
	if !h.BindJSON(c, &req) {
		return
	}

	companyID, err := id.Parse(req.CompanyID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid company id format").
			WithDetail("field", "companyId"))
		return
	}

	fy := calendar.NewFiscalYear(req.Code, req.Name, companyID, req.StartDate, req.EndDate)

	if err := h.service.CreateFiscalYear(ctx, fy); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromFiscalYear(fy))
}

// GetFiscalYear handles GET /fiscal-years/:id.
func (h *CalendarHandler) GetFiscalYear(c *gin.Context) {
	ctx := c.Request.Context()

	fyID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	fy, err := h.service.GetFiscalYear(ctx, fyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromFiscalYear(fy))
}

// CreatePeriod handles POST /fiscal-years/:id/periods.
func (h *CalendarHandler) CreatePeriod(c *gin.Context) {
	ctx := c.Request.Context()

	fyID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.CreatePeriodRequest
	if !h.BindJSON(c, &req) {
		return
	}

	fy, err := h.service.GetFiscalYear(ctx, fyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	p := calendar.NewPeriod(req.Code, req.Name, fy.ID, fy.CompanyID, req.StartDate, req.EndDate)

	if err := h.service.CreatePeriod(ctx, p); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromPeriod(p))
}

// ListPeriods handles GET /fiscal-years/:id/periods.
func (h *CalendarHandler) ListPeriods(c *gin.Context) {
	ctx := c.Request.Context()

	fyID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	periods, err := h.service.ListPeriods(ctx, fyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(periods))
	for i, p := range periods {
		items[i] = dto.FromPeriod(p)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ClosePeriod handles POST /periods/:id/close.
// Closed periods reject new customer documents; supplier documents may
// still be dated into them.
func (h *CalendarHandler) ClosePeriod(c *gin.Context) {
	ctx := c.Request.Context()

	periodID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.ClosePeriod(ctx, periodID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "period closed")
}

// ReopenPeriod handles POST /periods/:id/reopen.
func (h *CalendarHandler) ReopenPeriod(c *gin.Context) {
	ctx := c.Request.Context()

	periodID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.ReopenPeriod(ctx, periodID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "period reopened")
}
