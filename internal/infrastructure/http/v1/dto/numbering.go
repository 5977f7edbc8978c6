package dto

import (
	"time"

	"faktura/internal/domain/numbering"
)

// CreateAssignmentRequest for creating sequence assignments.
type CreateAssignmentRequest struct {
	JournalID    string  `json:"journalId" binding:"required"`
	FiscalYearID string  `json:"fiscalYearId" binding:"required"`
	PeriodID     *string `json:"periodId"`
	CompanyID    string  `json:"companyId" binding:"required"`
	DeviceID     string  `json:"deviceId" binding:"required"`

	Direction            string `json:"direction" binding:"required"`
	InvoiceSequenceID    string `json:"invoiceSequenceId" binding:"required"`
	CreditNoteSequenceID string `json:"creditNoteSequenceId" binding:"required"`
}

// AssignmentResponse contains assignment fields.
type AssignmentResponse struct {
	BaseResponse

	JournalID    string  `json:"journalId"`
	FiscalYearID string  `json:"fiscalYearId"`
	PeriodID     *string `json:"periodId,omitempty"`
	CompanyID    string  `json:"companyId"`
	DeviceID     string  `json:"deviceId"`

	Direction            string `json:"direction"`
	InvoiceSequenceID    string `json:"invoiceSequenceId,omitempty"`
	CreditNoteSequenceID string `json:"creditNoteSequenceId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// FromAssignment creates AssignmentResponse from numbering.Assignment.
func FromAssignment(a *numbering.Assignment) AssignmentResponse {
	resp := AssignmentResponse{
		BaseResponse: BaseResponse{
			ID:           a.ID.String(),
			DeletionMark: a.DeletionMark,
			Version:      a.Version,
		},
		JournalID:    a.JournalID.String(),
		FiscalYearID: a.FiscalYearID.String(),
		CompanyID:    a.CompanyID.String(),
		DeviceID:     a.DeviceID.String(),
		Direction:    string(a.Pair.Direction),
		CreatedAt:    a.CreatedAt,
	}

	if a.PeriodID != nil {
		pid := a.PeriodID.String()
		resp.PeriodID = &pid
	}
	if a.Pair.InvoiceSequenceID != nil {
		resp.InvoiceSequenceID = a.Pair.InvoiceSequenceID.String()
	}
	if a.Pair.CreditNoteSequenceID != nil {
		resp.CreditNoteSequenceID = a.Pair.CreditNoteSequenceID.String()
	}

	return resp
}
