package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"faktura/internal/core/apperror"
	appctx "faktura/internal/core/context"
	"faktura/internal/core/id"
	"faktura/internal/domain"
	"faktura/internal/domain/documents/invoice"
	"faktura/internal/domain/numbering"
	"faktura/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler serves invoice documents.
type InvoiceHandler struct {
	*BaseHandler
	service *invoice.Service
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(base *BaseHandler, service *invoice.Service) *InvoiceHandler {
	return &InvoiceHandler{BaseHandler: base, service: service}
}

// Create handles POST /invoices - create a draft invoice.
func (h *InvoiceHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.buildInvoice(c, req)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromInvoice(doc))
}

// Get handles GET /invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromInvoice(doc))
}

// List handles GET /invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := invoice.ListFilter{
		ListFilter: domain.ListFilter{
			Search:         c.Query("search"),
			Limit:          h.ParseIntQuery(c, "limit", 50),
			Offset:         h.ParseIntQuery(c, "offset", 0),
			OrderBy:        c.DefaultQuery("orderBy", "-created_at"),
			IncludeDeleted: c.Query("includeDeleted") == "true",
		},
	}

	if kind := c.Query("kind"); kind != "" {
		filter.Kind = numbering.Kind(kind)
	}
	if journalID := c.Query("journalId"); journalID != "" {
		parsed, err := id.Parse(journalID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid journal id format"))
			return
		}
		filter.JournalID = &parsed
	}
	if companyID := c.Query("companyId"); companyID != "" {
		parsed, err := id.Parse(companyID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid company id format"))
			return
		}
		filter.CompanyID = &parsed
	}
	if posted := c.Query("posted"); posted != "" {
		val := posted == "true"
		filter.Posted = &val
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.FromInvoice(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Delete handles DELETE /invoices/:id - soft delete a draft.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, docID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Post handles POST /invoices/:id/post - number and freeze the invoice.
// The numbering scope is assembled from the session: the token's device
// becomes the ambient point of sale, the optional body date overrides
// "today" for documents without an invoice date.
func (h *InvoiceHandler) Post(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.PostInvoiceRequest
	if c.Request.ContentLength > 0 {
		if !h.BindJSON(c, &req) {
			return
		}
	}

	scope := numbering.Scope{Date: req.Date}
	if user := appctx.GetUser(ctx); user != nil && user.DeviceID != "" {
		deviceID, err := id.Parse(user.DeviceID)
		if err == nil {
			scope.DeviceID = deviceID
		}
	}

	doc, err := h.service.Post(ctx, docID, scope)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromInvoice(doc))
}

// buildInvoice maps the create request onto a draft invoice.
func (h *InvoiceHandler) buildInvoice(c *gin.Context, req dto.CreateInvoiceRequest) (*invoice.Invoice, error) {
	kind := numbering.Kind(req.Kind)
	if !kind.Valid() {
		return nil, apperror.NewValidation("unknown invoice kind").
			WithDetail("field", "kind").
			WithDetail("value", req.Kind)
	}

	companyID, err := id.Parse(req.CompanyID)
	if err != nil {
		return nil, apperror.NewValidation("invalid company id format").WithDetail("field", "companyId")
	}
	journalID, err := id.Parse(req.JournalID)
	if err != nil {
		return nil, apperror.NewValidation("invalid journal id format").WithDetail("field", "journalId")
	}
	partyID, err := id.Parse(req.PartyID)
	if err != nil {
		return nil, apperror.NewValidation("invalid party id format").WithDetail("field", "partyId")
	}

	doc := invoice.New(kind, companyID, journalID, partyID, req.Currency)
	doc.PartyName = req.PartyName
	doc.Comment = req.Comment
	doc.CreatedBy = h.GetUserID(c)

	if req.InvoiceDate != nil {
		d := req.InvoiceDate.UTC()
		doc.InvoiceDate = &d
	}
	if req.AccountingDate != nil {
		d := req.AccountingDate.UTC()
		doc.AccountingDate = &d
	}

	for _, line := range req.Lines {
		doc.AddLine(line.Description, line.Quantity, line.UnitPrice, line.TaxRate)
	}

	return doc, nil
}
