package numbering

import (
	"context"
	"time"

	"faktura/internal/core/apperror"
	"faktura/internal/core/counter"
	"faktura/internal/core/id"
	"faktura/internal/core/tx"
	"faktura/internal/domain/calendar"
	"faktura/pkg/logger"
)

// Numberable is the minimal invoice surface the engine needs.
// Document types implement it; the engine never depends on a concrete
// invoice model.
type Numberable interface {
	GetID() id.ID
	GetKind() Kind
	GetCompanyID() id.ID
	GetJournalID() id.ID

	GetNumber() string
	SetNumber(number string)

	GetInvoiceDate() *time.Time
	SetInvoiceDate(date time.Time)
	GetAccountingDate() *time.Time

	// GetCreatedBy returns the ID of the user who created the document,
	// used to look up the issuing device.
	GetCreatedBy() string
}

// DeviceDirectory resolves the point of sale assigned to a user record.
type DeviceDirectory interface {
	// DeviceForUser returns nil (not an error) when the user carries no
	// device assignment.
	DeviceForUser(ctx context.Context, userID string) (*id.ID, error)
}

// Scope carries the request-scoped session values of one numbering call:
// the ambient device of the active session and an optional context date
// overriding "today". Threaded explicitly instead of hiding in ambient
// mutable state.
type Scope struct {
	// DeviceID is the session's point of sale. Used only when the user
	// record carries no device of its own. Nil ID means no ambient device.
	DeviceID id.ID

	// Date overrides the issuance date when the invoice has none.
	Date *time.Time
}

// Engine numbers invoices: resolve the sequence, issue the next number,
// stamp the document and persist it, all in one failure-atomic transaction.
type Engine struct {
	registry  Registry
	issuer    counter.Issuer
	directory DeviceDirectory
	calendar  calendar.PeriodFinder
	txm       tx.Manager
}

// NewEngine creates a numbering engine.
func NewEngine(
	registry Registry,
	issuer counter.Issuer,
	directory DeviceDirectory,
	periodFinder calendar.PeriodFinder,
	txManager tx.Manager,
) *Engine {
	return &Engine{
		registry:  registry,
		issuer:    issuer,
		directory: directory,
		calendar:  periodFinder,
		txm:       txManager,
	}
}

// Assign resolves the sequence for doc and issues its number.
//
// save persists the stamped document; it runs inside the same transaction
// as the counter increment, so a failed save never burns a number.
//
// Returns (false, nil) when no sequence resolves: the document is left
// untouched and the caller's default numbering behavior takes over.
func (e *Engine) Assign(ctx context.Context, doc Numberable, scope Scope, save func(ctx context.Context) error) (bool, error) {
	if doc.GetNumber() != "" {
		return false, apperror.NewAlreadyNumbered(doc.GetID().String(), doc.GetNumber())
	}

	kind := doc.GetKind()
	if !kind.Valid() {
		return false, apperror.NewValidation("unknown invoice kind").
			WithDetail("kind", string(kind))
	}

	seqID, found, err := e.resolve(ctx, doc, scope, kind)
	if err != nil {
		return false, err
	}
	if !found {
		logger.Debug(ctx, "no sequence resolved, invoice left unnumbered",
			"invoice_id", doc.GetID(),
			"kind", string(kind))
		return false, nil
	}

	issueDate := e.issueDate(doc, scope)

	err = e.txm.RunInTransaction(ctx, func(txCtx context.Context) error {
		number, err := e.issuer.IssueNext(txCtx, seqID, issueDate)
		if err != nil {
			return err
		}

		doc.SetNumber(number)
		if doc.GetInvoiceDate() == nil && kind.IsCustomer() {
			doc.SetInvoiceDate(issueDate)
		}

		return save(txCtx)
	})
	if err != nil {
		// The transaction rolled back; keep the in-memory document in sync.
		doc.SetNumber("")
		return false, err
	}

	logger.Info(ctx, "invoice numbered",
		"invoice_id", doc.GetID(),
		"number", doc.GetNumber(),
		"sequence_id", seqID,
		"kind", string(kind))

	return true, nil
}

// resolve finds the sequence for the document: device-bound assignments
// first, then the journal-scoped period/fiscal-year fallback.
func (e *Engine) resolve(ctx context.Context, doc Numberable, scope Scope, kind Kind) (id.ID, bool, error) {
	deviceID, err := e.issuingDevice(ctx, doc, scope)
	if err != nil {
		return id.Nil(), false, err
	}

	if deviceID != nil {
		assignments, err := e.registry.ListByDevice(ctx, *deviceID)
		if err != nil {
			return id.Nil(), false, err
		}
		if len(assignments) > 0 {
			seqID, err := resolveForDevice(assignments, kind)
			if err != nil {
				return id.Nil(), false, err
			}
			return seqID, true, nil
		}
	}

	// No device-bound assignment: locate the accounting period (suppliers
	// may post into closed periods, customers may not), then walk the
	// journal's assignments by date.
	lookupDate := e.lookupDate(doc, scope)
	period, err := e.calendar.FindPeriod(ctx, doc.GetCompanyID(), lookupDate, kind.IsSupplier())
	if err != nil {
		return id.Nil(), false, err
	}

	assignments, err := e.registry.ListByJournal(ctx, doc.GetJournalID())
	if err != nil {
		return id.Nil(), false, err
	}

	seqID, found, err := resolveForJournal(assignments, kind, lookupDate)
	if err != nil {
		return id.Nil(), false, err
	}
	if found {
		logger.Debug(ctx, "sequence resolved via journal fallback",
			"invoice_id", doc.GetID(),
			"period", period.Code,
			"sequence_id", seqID)
	}
	return seqID, found, nil
}

// issuingDevice determines the point of sale numbering this document:
// the device assigned to the creating user, else the session device.
func (e *Engine) issuingDevice(ctx context.Context, doc Numberable, scope Scope) (*id.ID, error) {
	if createdBy := doc.GetCreatedBy(); createdBy != "" {
		deviceID, err := e.directory.DeviceForUser(ctx, createdBy)
		if err != nil {
			return nil, err
		}
		if deviceID != nil && !id.IsNil(*deviceID) {
			return deviceID, nil
		}
	}

	if !id.IsNil(scope.DeviceID) {
		deviceID := scope.DeviceID
		return &deviceID, nil
	}
	return nil, nil
}

// lookupDate is the date used to locate the accounting period.
func (e *Engine) lookupDate(doc Numberable, scope Scope) time.Time {
	if d := doc.GetAccountingDate(); d != nil {
		return *d
	}
	if d := doc.GetInvoiceDate(); d != nil {
		return *d
	}
	return e.issueDate(doc, scope)
}

// issueDate is the context date of the issuance: the invoice date when
// set, else the session date, else today.
func (e *Engine) issueDate(doc Numberable, scope Scope) time.Time {
	if d := doc.GetInvoiceDate(); d != nil {
		return *d
	}
	if scope.Date != nil {
		return *scope.Date
	}
	return time.Now().UTC()
}
