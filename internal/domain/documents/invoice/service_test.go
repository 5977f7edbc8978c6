package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura/internal/core/apperror"
	"faktura/internal/core/counter"
	"faktura/internal/core/id"
	"faktura/internal/core/tx"
	"faktura/internal/domain"
	"faktura/internal/domain/calendar"
	"faktura/internal/domain/catalogs/journal"
	"faktura/internal/domain/numbering"
)

// memRepo is an in-memory Repository for service tests.
type memRepo struct {
	docs  map[id.ID]*Invoice
	lines map[id.ID][]Line

	updateErr error
}

func newMemRepo() *memRepo {
	return &memRepo{docs: map[id.ID]*Invoice{}, lines: map[id.ID][]Line{}}
}

func (r *memRepo) Create(ctx context.Context, doc *Invoice) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, docID id.ID) (*Invoice, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", docID.String())
	}
	copied := *doc
	return &copied, nil
}

func (r *memRepo) GetByNumber(ctx context.Context, number string) (*Invoice, error) {
	for _, doc := range r.docs {
		if doc.Number == number {
			return doc, nil
		}
	}
	return nil, apperror.NewNotFound("invoice", number)
}

func (r *memRepo) Update(ctx context.Context, doc *Invoice) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.docs[doc.ID] = doc
	return nil
}

func (r *memRepo) Delete(ctx context.Context, docID id.ID) error {
	delete(r.docs, docID)
	return nil
}

func (r *memRepo) GetLines(ctx context.Context, docID id.ID) ([]Line, error) {
	return r.lines[docID], nil
}

func (r *memRepo) SaveLines(ctx context.Context, docID id.ID, lines []Line) error {
	r.lines[docID] = lines
	return nil
}

func (r *memRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error) {
	out := domain.ListResult[*Invoice]{}
	for _, doc := range r.docs {
		out.Items = append(out.Items, doc)
		out.TotalCount++
	}
	return out, nil
}

// memRegistry serves one journal-wide assignment list.
type memRegistry struct {
	assignments []*numbering.Assignment
}

func (r *memRegistry) Create(ctx context.Context, a *numbering.Assignment) error { return nil }

func (r *memRegistry) GetByID(ctx context.Context, assignmentID id.ID) (*numbering.Assignment, error) {
	return nil, apperror.NewNotFound("sequence assignment", assignmentID.String())
}

func (r *memRegistry) ListByDevice(ctx context.Context, deviceID id.ID) ([]*numbering.Assignment, error) {
	return nil, nil
}

func (r *memRegistry) ListByJournal(ctx context.Context, journalID id.ID) ([]*numbering.Assignment, error) {
	return r.assignments, nil
}

func (r *memRegistry) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*numbering.Assignment], error) {
	return domain.ListResult[*numbering.Assignment]{}, nil
}

func (r *memRegistry) Delete(ctx context.Context, assignmentID id.ID) error { return nil }

type noDeviceDirectory struct{}

func (noDeviceDirectory) DeviceForUser(ctx context.Context, userID string) (*id.ID, error) {
	return nil, nil
}

type openPeriodFinder struct{}

func (openPeriodFinder) FindPeriod(ctx context.Context, companyID id.ID, d time.Time, allowClosed bool) (*calendar.Period, error) {
	return calendar.NewPeriod("P", "Period", id.New(), companyID,
		d.AddDate(0, 0, -15), d.AddDate(0, 0, 15)), nil
}

type serviceFixture struct {
	svc      *Service
	repo     *memRepo
	registry *memRegistry
}

func newServiceFixture() *serviceFixture {
	repo := newMemRepo()
	registry := &memRegistry{}
	txm := &tx.MockManager{}
	engine := numbering.NewEngine(registry, &counter.MockIssuer{}, noDeviceDirectory{}, openPeriodFinder{}, txm)
	return &serviceFixture{
		svc:      NewService(repo, engine, txm),
		repo:     repo,
		registry: registry,
	}
}

func (f *serviceFixture) journalAssignment(journalID id.ID, direction journal.Type) {
	invSeq := id.New()
	cnSeq := id.New()
	a := numbering.NewAssignment(journalID, id.New(), id.New(), id.New(), numbering.SequencePair{
		Direction:            direction,
		InvoiceSequenceID:    &invSeq,
		CreditNoteSequenceID: &cnSeq,
	})
	a.FYStart = time.Now().UTC().AddDate(-1, 0, 0)
	a.FYEnd = time.Now().UTC().AddDate(1, 0, 0)
	f.registry.assignments = append(f.registry.assignments, a)
}

func (f *serviceFixture) createDraft(t *testing.T) *Invoice {
	t.Helper()
	inv := draftInvoice()
	inv.AddLine("consulting", decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.Zero)
	require.NoError(t, f.svc.Create(context.Background(), inv))
	return inv
}

func TestService_Post(t *testing.T) {
	ctx := context.Background()

	t.Run("posting numbers and freezes the invoice", func(t *testing.T) {
		f := newServiceFixture()
		inv := f.createDraft(t)
		f.journalAssignment(inv.JournalID, journal.TypeRevenue)

		posted, err := f.svc.Post(ctx, inv.ID, numbering.Scope{})
		require.NoError(t, err)
		assert.True(t, posted.Posted)
		assert.NotEmpty(t, posted.Number)
		assert.NotNil(t, posted.InvoiceDate)

		stored, err := f.svc.GetByID(ctx, inv.ID)
		require.NoError(t, err)
		assert.True(t, stored.Posted)
		assert.Equal(t, posted.Number, stored.Number)
	})

	t.Run("no assignment posts without a managed number", func(t *testing.T) {
		f := newServiceFixture()
		inv := f.createDraft(t)

		posted, err := f.svc.Post(ctx, inv.ID, numbering.Scope{})
		require.NoError(t, err)
		assert.True(t, posted.Posted)
		assert.Empty(t, posted.Number)
	})

	t.Run("posting twice is rejected", func(t *testing.T) {
		f := newServiceFixture()
		inv := f.createDraft(t)
		f.journalAssignment(inv.JournalID, journal.TypeRevenue)

		_, err := f.svc.Post(ctx, inv.ID, numbering.Scope{})
		require.NoError(t, err)

		_, err = f.svc.Post(ctx, inv.ID, numbering.Scope{})
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeDocumentPosted))
	})

	t.Run("failed persistence leaves the draft unnumbered", func(t *testing.T) {
		f := newServiceFixture()
		inv := f.createDraft(t)
		f.journalAssignment(inv.JournalID, journal.TypeRevenue)
		f.repo.updateErr = apperror.NewInternal(context.DeadlineExceeded)

		_, err := f.svc.Post(ctx, inv.ID, numbering.Scope{})
		require.Error(t, err)

		f.repo.updateErr = nil
		stored, err := f.svc.GetByID(ctx, inv.ID)
		require.NoError(t, err)
		assert.False(t, stored.Posted)
		assert.Empty(t, stored.Number)
	})
}

func TestService_UpdateFrozen(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	inv := f.createDraft(t)
	f.journalAssignment(inv.JournalID, journal.TypeRevenue)

	_, err := f.svc.Post(ctx, inv.ID, numbering.Scope{})
	require.NoError(t, err)

	posted, err := f.svc.GetByID(ctx, inv.ID)
	require.NoError(t, err)

	err = f.svc.Update(ctx, posted)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeDocumentPosted))

	err = f.svc.Delete(ctx, inv.ID)
	require.Error(t, err)
}
