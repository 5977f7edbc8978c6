// Package numbering_repo provides the PostgreSQL sequence assignment
// registry.
package numbering_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"faktura/internal/core/apperror"
	"faktura/internal/core/entity"
	"faktura/internal/core/id"
	"faktura/internal/domain"
	"faktura/internal/domain/catalogs/journal"
	"faktura/internal/domain/numbering"
	"faktura/internal/infrastructure/storage/postgres"
)

const assignmentTable = "numbering_assignments"

// assignmentRow is the flat scan target. The pair columns live inline in
// the table; the period and fiscal year windows are joined in so the
// resolver needs no further lookups.
type assignmentRow struct {
	ID           id.ID     `db:"id"`
	DeletionMark bool      `db:"deletion_mark"`
	Version      int       `db:"version"`
	JournalID    id.ID     `db:"journal_id"`
	FiscalYearID id.ID     `db:"fiscal_year_id"`
	PeriodID     *id.ID    `db:"period_id"`
	CompanyID    id.ID     `db:"company_id"`
	DeviceID     id.ID     `db:"device_id"`
	CreatedAt    time.Time `db:"created_at"`

	Direction            journal.Type `db:"direction"`
	InvoiceSequenceID    *id.ID       `db:"invoice_sequence_id"`
	CreditNoteSequenceID *id.ID       `db:"credit_note_sequence_id"`

	PeriodStart *time.Time `db:"period_start"`
	PeriodEnd   *time.Time `db:"period_end"`
	FYStart     time.Time  `db:"fy_start"`
	FYEnd       time.Time  `db:"fy_end"`
}

func (row *assignmentRow) toDomain() *numbering.Assignment {
	return &numbering.Assignment{
		BaseEntity: entity.BaseEntity{
			ID:           row.ID,
			DeletionMark: row.DeletionMark,
			Version:      row.Version,
		},
		JournalID:    row.JournalID,
		FiscalYearID: row.FiscalYearID,
		PeriodID:     row.PeriodID,
		CompanyID:    row.CompanyID,
		DeviceID:     row.DeviceID,
		Pair: numbering.SequencePair{
			Direction:            row.Direction,
			InvoiceSequenceID:    row.InvoiceSequenceID,
			CreditNoteSequenceID: row.CreditNoteSequenceID,
		},
		CreatedAt:   row.CreatedAt,
		PeriodStart: row.PeriodStart,
		PeriodEnd:   row.PeriodEnd,
		FYStart:     row.FYStart,
		FYEnd:       row.FYEnd,
	}
}

// AssignmentRepo implements numbering.Registry.
type AssignmentRepo struct {
	txm *postgres.TxManager
}

// NewAssignmentRepo creates a new assignment registry.
func NewAssignmentRepo(txm *postgres.TxManager) *AssignmentRepo {
	return &AssignmentRepo{txm: txm}
}

func (r *AssignmentRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// baseSelect joins in the fiscal year and period windows.
func (r *AssignmentRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(
			"a.id", "a.deletion_mark", "a.version",
			"a.journal_id", "a.fiscal_year_id", "a.period_id",
			"a.company_id", "a.device_id", "a.created_at",
			"a.direction", "a.invoice_sequence_id", "a.credit_note_sequence_id",
			"p.start_date AS period_start", "p.end_date AS period_end",
			"fy.start_date AS fy_start", "fy.end_date AS fy_end",
		).
		From(assignmentTable + " a").
		Join("cal_fiscal_years fy ON fy.id = a.fiscal_year_id").
		LeftJoin("cal_periods p ON p.id = a.period_id")
}

// Create stores a new assignment.
//
// Two registry invariants are enforced here: at most one assignment per
// (journal, period) pair, and no two period-scoped assignments of one
// journal with overlapping date windows. The first is backed by a partial
// unique index, the second by an overlap probe inside the same
// transaction.
func (r *AssignmentRepo) Create(ctx context.Context, a *numbering.Assignment) error {
	return r.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if a.HasPeriod() {
			if err := r.checkOverlap(ctx, a); err != nil {
				return err
			}
		}

		q := r.builder().
			Insert(assignmentTable).
			SetMap(map[string]any{
				"id":                      a.ID,
				"deletion_mark":           a.DeletionMark,
				"version":                 a.Version,
				"journal_id":              a.JournalID,
				"fiscal_year_id":          a.FiscalYearID,
				"period_id":               a.PeriodID,
				"company_id":              a.CompanyID,
				"device_id":               a.DeviceID,
				"created_at":              a.CreatedAt,
				"direction":               a.Pair.Direction,
				"invoice_sequence_id":     a.Pair.InvoiceSequenceID,
				"credit_note_sequence_id": a.Pair.CreditNoteSequenceID,
			})

		sql, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}

		_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
		if err != nil {
			if postgres.IsUniqueViolation(err) {
				return apperror.NewValidation("an assignment for this journal and period already exists").
					WithDetail("journalId", a.JournalID.String()).
					WithCause(err)
			}
			return fmt.Errorf("insert assignment: %w", err)
		}

		return nil
	})
}

// checkOverlap rejects a period-scoped assignment whose period window
// overlaps another period-scoped assignment of the same journal.
func (r *AssignmentRepo) checkOverlap(ctx context.Context, a *numbering.Assignment) error {
	const query = `
		SELECT EXISTS (
			SELECT 1
			FROM numbering_assignments x
			JOIN cal_periods xp ON xp.id = x.period_id
			JOIN cal_periods np ON np.id = $2
			WHERE x.journal_id = $1
			  AND x.deletion_mark = false
			  AND x.period_id IS NOT NULL
			  AND xp.start_date <= np.end_date
			  AND xp.end_date >= np.start_date
		)`

	var overlaps bool
	err := r.txm.GetQuerier(ctx).
		QueryRow(ctx, query, a.JournalID, a.PeriodID).
		Scan(&overlaps)
	if err != nil {
		return fmt.Errorf("check overlap: %w", err)
	}

	if overlaps {
		return apperror.NewValidation("assignment period overlaps an existing assignment of this journal").
			WithDetail("journalId", a.JournalID.String()).
			WithDetail("periodId", a.PeriodID.String())
	}

	return nil
}

// GetByID retrieves an assignment.
func (r *AssignmentRepo) GetByID(ctx context.Context, assignmentID id.ID) (*numbering.Assignment, error) {
	q := r.baseSelect().Where(squirrel.Eq{"a.id": assignmentID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row assignmentRow
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(assignmentTable, assignmentID.String())
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}

	return row.toDomain(), nil
}

// ListByDevice returns the assignments bound to a device, in insertion order.
func (r *AssignmentRepo) ListByDevice(ctx context.Context, deviceID id.ID) ([]*numbering.Assignment, error) {
	return r.selectMany(ctx, r.activeSelect().Where(squirrel.Eq{"a.device_id": deviceID}))
}

// ListByJournal returns all assignments under a journal, in insertion order.
func (r *AssignmentRepo) ListByJournal(ctx context.Context, journalID id.ID) ([]*numbering.Assignment, error) {
	return r.selectMany(ctx, r.activeSelect().Where(squirrel.Eq{"a.journal_id": journalID}))
}

// activeSelect filters out soft-deleted rows and fixes insertion order.
// Resolution treats this order as priority.
func (r *AssignmentRepo) activeSelect() squirrel.SelectBuilder {
	return r.baseSelect().
		Where(squirrel.Eq{"a.deletion_mark": false}).
		OrderBy("a.created_at", "a.id")
}

func (r *AssignmentRepo) selectMany(ctx context.Context, q squirrel.SelectBuilder) ([]*numbering.Assignment, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []*assignmentRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	assignments := make([]*numbering.Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, row.toDomain())
	}

	return assignments, nil
}

// List supports the administrative HTTP surface.
func (r *AssignmentRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*numbering.Assignment], error) {
	result := domain.ListResult[*numbering.Assignment]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()
	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"a.deletion_mark": false})
	}
	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"a.id": filter.IDs})
	}

	countQ := r.builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("a.created_at", "a.id")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	var rows []*assignmentRow
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return result, fmt.Errorf("list assignments: %w", err)
	}

	result.Items = make([]*numbering.Assignment, 0, len(rows))
	for _, row := range rows {
		result.Items = append(result.Items, row.toDomain())
	}

	return result, nil
}

// Delete soft-deletes an assignment.
func (r *AssignmentRepo) Delete(ctx context.Context, assignmentID id.ID) error {
	q := r.builder().
		Update(assignmentTable).
		Set("deletion_mark", true).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": assignmentID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(assignmentTable, assignmentID.String())
	}

	return nil
}

var _ numbering.Registry = (*AssignmentRepo)(nil)
