package numbering

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura/internal/core/apperror"
	"faktura/internal/core/counter"
	"faktura/internal/core/id"
	"faktura/internal/core/tx"
	"faktura/internal/domain"
	"faktura/internal/domain/calendar"
)

// testDoc is a minimal Numberable for engine tests.
type testDoc struct {
	id             id.ID
	kind           Kind
	companyID      id.ID
	journalID      id.ID
	number         string
	invoiceDate    *time.Time
	accountingDate *time.Time
	createdBy      string
}

func (d *testDoc) GetID() id.ID                   { return d.id }
func (d *testDoc) GetKind() Kind                  { return d.kind }
func (d *testDoc) GetCompanyID() id.ID            { return d.companyID }
func (d *testDoc) GetJournalID() id.ID            { return d.journalID }
func (d *testDoc) GetNumber() string              { return d.number }
func (d *testDoc) SetNumber(number string)        { d.number = number }
func (d *testDoc) GetInvoiceDate() *time.Time     { return d.invoiceDate }
func (d *testDoc) SetInvoiceDate(date time.Time)  { d.invoiceDate = &date }
func (d *testDoc) GetAccountingDate() *time.Time  { return d.accountingDate }
func (d *testDoc) GetCreatedBy() string           { return d.createdBy }

type fakeRegistry struct {
	byDevice  map[id.ID][]*Assignment
	byJournal map[id.ID][]*Assignment
}

func (r *fakeRegistry) Create(ctx context.Context, a *Assignment) error { return nil }

func (r *fakeRegistry) GetByID(ctx context.Context, assignmentID id.ID) (*Assignment, error) {
	return nil, apperror.NewNotFound("sequence assignment", assignmentID.String())
}

func (r *fakeRegistry) ListByDevice(ctx context.Context, deviceID id.ID) ([]*Assignment, error) {
	return r.byDevice[deviceID], nil
}

func (r *fakeRegistry) ListByJournal(ctx context.Context, journalID id.ID) ([]*Assignment, error) {
	return r.byJournal[journalID], nil
}

func (r *fakeRegistry) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Assignment], error) {
	return domain.ListResult[*Assignment]{}, nil
}

func (r *fakeRegistry) Delete(ctx context.Context, assignmentID id.ID) error { return nil }

type fakeDirectory struct {
	devices map[string]*id.ID
}

func (d *fakeDirectory) DeviceForUser(ctx context.Context, userID string) (*id.ID, error) {
	return d.devices[userID], nil
}

type fakePeriodFinder struct {
	period *calendar.Period
	err    error

	// lastAllowClosed records the flag of the most recent call.
	lastAllowClosed bool
	calls           int
}

func (f *fakePeriodFinder) FindPeriod(ctx context.Context, companyID id.ID, d time.Time, allowClosed bool) (*calendar.Period, error) {
	f.calls++
	f.lastAllowClosed = allowClosed
	if f.err != nil {
		return nil, f.err
	}
	return f.period, nil
}

type engineFixture struct {
	engine   *Engine
	registry *fakeRegistry
	issuer   *counter.MockIssuer
	dir      *fakeDirectory
	finder   *fakePeriodFinder
	txm      *tx.MockManager

	companyID id.ID
	journalID id.ID
	deviceID  id.ID
	userID    string
}

func newEngineFixture() *engineFixture {
	f := &engineFixture{
		registry:  &fakeRegistry{byDevice: map[id.ID][]*Assignment{}, byJournal: map[id.ID][]*Assignment{}},
		issuer:    &counter.MockIssuer{},
		dir:       &fakeDirectory{devices: map[string]*id.ID{}},
		txm:       &tx.MockManager{},
		companyID: id.New(),
		journalID: id.New(),
		deviceID:  id.New(),
		userID:    id.New().String(),
	}
	f.finder = &fakePeriodFinder{
		period: calendar.NewPeriod("2026-03", "March 2026", id.New(), f.companyID,
			date(2026, time.March, 1), date(2026, time.March, 31)),
	}
	f.engine = NewEngine(f.registry, f.issuer, f.dir, f.finder, f.txm)
	return f
}

func (f *engineFixture) doc(kind Kind) *testDoc {
	return &testDoc{
		id:        id.New(),
		kind:      kind,
		companyID: f.companyID,
		journalID: f.journalID,
		createdBy: f.userID,
	}
}

func noopSave(ctx context.Context) error { return nil }

func TestEngine_Assign_DevicePath(t *testing.T) {
	ctx := context.Background()
	contextDate := date(2026, time.March, 15)

	t.Run("device assignment wins without touching the calendar", func(t *testing.T) {
		f := newEngineFixture()
		f.dir.devices[f.userID] = &f.deviceID
		f.registry.byDevice[f.deviceID] = []*Assignment{
			yearAssignment(date(2026, time.January, 1), date(2026, time.December, 31), id.New(), id.New()),
		}

		doc := f.doc(KindCustomerInvoice)
		doc.invoiceDate = &contextDate

		numbered, err := f.engine.Assign(ctx, doc, Scope{}, noopSave)
		require.NoError(t, err)
		assert.True(t, numbered)
		assert.NotEmpty(t, doc.GetNumber())
		assert.Zero(t, f.finder.calls)
	})

	t.Run("session device used when the user has none", func(t *testing.T) {
		f := newEngineFixture()
		sessionDevice := id.New()
		f.registry.byDevice[sessionDevice] = []*Assignment{
			yearAssignment(date(2026, time.January, 1), date(2026, time.December, 31), id.New(), id.New()),
		}

		doc := f.doc(KindCustomerInvoice)
		doc.invoiceDate = &contextDate

		numbered, err := f.engine.Assign(ctx, doc, Scope{DeviceID: sessionDevice}, noopSave)
		require.NoError(t, err)
		assert.True(t, numbered)
	})

	t.Run("user device takes precedence over the session device", func(t *testing.T) {
		f := newEngineFixture()
		f.dir.devices[f.userID] = &f.deviceID
		userSeq := id.New()
		f.registry.byDevice[f.deviceID] = []*Assignment{
			yearAssignment(date(2026, time.January, 1), date(2026, time.December, 31), userSeq, id.New()),
		}
		sessionDevice := id.New()
		f.registry.byDevice[sessionDevice] = []*Assignment{
			yearAssignment(date(2026, time.January, 1), date(2026, time.December, 31), id.New(), id.New()),
		}

		doc := f.doc(KindCustomerInvoice)
		doc.invoiceDate = &contextDate

		numbered, err := f.engine.Assign(ctx, doc, Scope{DeviceID: sessionDevice}, noopSave)
		require.NoError(t, err)
		assert.True(t, numbered)
		assert.Contains(t, doc.GetNumber(), userSeq.String()[:8])
	})

	t.Run("device with no assignments falls through to the journal", func(t *testing.T) {
		f := newEngineFixture()
		f.dir.devices[f.userID] = &f.deviceID
		f.registry.byJournal[f.journalID] = []*Assignment{
			yearAssignment(date(2026, time.January, 1), date(2026, time.December, 31), id.New(), id.New()),
		}

		doc := f.doc(KindCustomerInvoice)
		doc.invoiceDate = &contextDate

		numbered, err := f.engine.Assign(ctx, doc, Scope{}, noopSave)
		require.NoError(t, err)
		assert.True(t, numbered)
		assert.Equal(t, 1, f.finder.calls)
	})
}

func TestEngine_Assign_JournalFallback(t *testing.T) {
	ctx := context.Background()
	contextDate := date(2026, time.March, 15)

	t.Run("customer invoice requires an open period", func(t *testing.T) {
		f := newEngineFixture()
		f.registry.byJournal[f.journalID] = []*Assignment{
			yearAssignment(date(2026, time.January, 1), date(2026, time.December, 31), id.New(), id.New()),
		}

		doc := f.doc(KindCustomerInvoice)
		doc.invoiceDate = &contextDate

		_, err := f.engine.Assign(ctx, doc, Scope{}, noopSave)
		require.NoError(t, err)
		assert.False(t, f.finder.lastAllowClosed)
	})

	t.Run("supplier invoice may hit a closed period", func(t *testing.T) {
		f := newEngineFixture()
		expenseSeq := id.New()
		a := yearAssignment(date(2026, time.January, 1), date(2026, time.December, 31), expenseSeq, id.New())
		a.Pair.Direction = KindSupplierInvoice.Direction()
		f.registry.byJournal[f.journalID] = []*Assignment{a}

		doc := f.doc(KindSupplierInvoice)
		doc.invoiceDate = &contextDate

		_, err := f.engine.Assign(ctx, doc, Scope{}, noopSave)
		require.NoError(t, err)
		assert.True(t, f.finder.lastAllowClosed)
	})

	t.Run("no period is a hard stop", func(t *testing.T) {
		f := newEngineFixture()
		f.finder.err = apperror.NewNoPeriod(f.companyID.String(), contextDate.Format("2006-01-02"))
		f.registry.byJournal[f.journalID] = []*Assignment{
			yearAssignment(date(2026, time.January, 1), date(2026, time.December, 31), id.New(), id.New()),
		}

		doc := f.doc(KindCustomerInvoice)
		doc.invoiceDate = &contextDate

		numbered, err := f.engine.Assign(ctx, doc, Scope{}, noopSave)
		require.Error(t, err)
		assert.False(t, numbered)
		assert.True(t, apperror.IsCode(err, apperror.CodeNoPeriod))
		assert.Empty(t, doc.GetNumber())
	})

	t.Run("accounting date drives the period lookup", func(t *testing.T) {
		f := newEngineFixture()
		febSeq := id.New()
		f.registry.byJournal[f.journalID] = []*Assignment{
			periodAssignment(
				date(2026, time.January, 1), date(2026, time.December, 31),
				date(2026, time.February, 1), date(2026, time.February, 28),
				febSeq, id.New()),
		}

		doc := f.doc(KindCustomerInvoice)
		doc.invoiceDate = &contextDate
		accDate := date(2026, time.February, 10)
		doc.accountingDate = &accDate

		numbered, err := f.engine.Assign(ctx, doc, Scope{}, noopSave)
		require.NoError(t, err)
		assert.True(t, numbered)
		assert.Contains(t, doc.GetNumber(), febSeq.String()[:8])
	})

	t.Run("no matching assignment leaves the document untouched", func(t *testing.T) {
		f := newEngineFixture()

		doc := f.doc(KindCustomerInvoice)
		doc.invoiceDate = &contextDate

		numbered, err := f.engine.Assign(ctx, doc, Scope{}, noopSave)
		require.NoError(t, err)
		assert.False(t, numbered)
		assert.Empty(t, doc.GetNumber())
		assert.Zero(t, f.txm.Calls)
	})
}

func TestEngine_Assign_Numbering(t *testing.T) {
	ctx := context.Background()
	contextDate := date(2026, time.March, 15)

	withJournalAssignment := func(f *engineFixture) {
		f.registry.byJournal[f.journalID] = []*Assignment{
			yearAssignment(date(2026, time.January, 1), date(2026, time.December, 31), id.New(), id.New()),
		}
	}

	t.Run("customer invoice without a date gets one stamped", func(t *testing.T) {
		f := newEngineFixture()
		withJournalAssignment(f)

		doc := f.doc(KindCustomerInvoice)

		numbered, err := f.engine.Assign(ctx, doc, Scope{Date: &contextDate}, noopSave)
		require.NoError(t, err)
		assert.True(t, numbered)
		require.NotNil(t, doc.GetInvoiceDate())
		assert.Equal(t, contextDate, *doc.GetInvoiceDate())
	})

	t.Run("existing invoice date is never overwritten", func(t *testing.T) {
		f := newEngineFixture()
		withJournalAssignment(f)

		doc := f.doc(KindCustomerInvoice)
		existing := date(2026, time.March, 2)
		doc.invoiceDate = &existing

		_, err := f.engine.Assign(ctx, doc, Scope{Date: &contextDate}, noopSave)
		require.NoError(t, err)
		assert.Equal(t, existing, *doc.GetInvoiceDate())
	})

	t.Run("supplier invoice is never auto-dated", func(t *testing.T) {
		f := newEngineFixture()
		a := yearAssignment(date(2026, time.January, 1), date(2026, time.December, 31), id.New(), id.New())
		a.Pair.Direction = KindSupplierInvoice.Direction()
		f.registry.byJournal[f.journalID] = []*Assignment{a}

		doc := f.doc(KindSupplierInvoice)

		numbered, err := f.engine.Assign(ctx, doc, Scope{Date: &contextDate}, noopSave)
		require.NoError(t, err)
		assert.True(t, numbered)
		assert.Nil(t, doc.GetInvoiceDate())
	})

	t.Run("already numbered document is rejected", func(t *testing.T) {
		f := newEngineFixture()
		withJournalAssignment(f)

		doc := f.doc(KindCustomerInvoice)
		doc.number = "FV-2026-00001"

		numbered, err := f.engine.Assign(ctx, doc, Scope{Date: &contextDate}, noopSave)
		require.Error(t, err)
		assert.False(t, numbered)
		assert.True(t, apperror.IsCode(err, apperror.CodeAlreadyNumbered))
		assert.Equal(t, "FV-2026-00001", doc.GetNumber())
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		f := newEngineFixture()

		doc := f.doc(Kind("in"))

		_, err := f.engine.Assign(ctx, doc, Scope{Date: &contextDate}, noopSave)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	})

	t.Run("failed save rolls the number back", func(t *testing.T) {
		f := newEngineFixture()
		withJournalAssignment(f)
		saveErr := errors.New("connection reset")

		doc := f.doc(KindCustomerInvoice)
		doc.invoiceDate = &contextDate

		numbered, err := f.engine.Assign(ctx, doc, Scope{}, func(ctx context.Context) error {
			return saveErr
		})
		require.ErrorIs(t, err, saveErr)
		assert.False(t, numbered)
		assert.Empty(t, doc.GetNumber())
		assert.Equal(t, 1, f.txm.Calls)
	})

	t.Run("consecutive assignments issue a gapless series", func(t *testing.T) {
		f := newEngineFixture()
		seq := id.New()
		f.registry.byJournal[f.journalID] = []*Assignment{
			yearAssignment(date(2026, time.January, 1), date(2026, time.December, 31), seq, id.New()),
		}

		var numbers []string
		for i := 0; i < 3; i++ {
			doc := f.doc(KindCustomerInvoice)
			doc.invoiceDate = &contextDate

			numbered, err := f.engine.Assign(ctx, doc, Scope{}, noopSave)
			require.NoError(t, err)
			require.True(t, numbered)
			numbers = append(numbers, doc.GetNumber())
		}

		assert.Len(t, numbers, 3)
		assert.NotEqual(t, numbers[0], numbers[1])
		assert.NotEqual(t, numbers[1], numbers[2])
		assert.Equal(t, int64(3), f.issuer.Current(seq))
	})
}
