// Package calendar_repo provides PostgreSQL persistence for fiscal years
// and accounting periods.
package calendar_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/domain"
	"faktura/internal/domain/calendar"
	"faktura/internal/infrastructure/storage/postgres"
)

const (
	fiscalYearTable = "cal_fiscal_years"
	periodTable     = "cal_periods"
)

// CalendarRepo implements calendar.Repository.
type CalendarRepo struct {
	txm     *postgres.TxManager
	fyCols  []string
	perCols []string
}

// NewCalendarRepo creates a new calendar repository.
func NewCalendarRepo(txm *postgres.TxManager) *CalendarRepo {
	return &CalendarRepo{
		txm:     txm,
		fyCols:  postgres.ExtractDBColumns[calendar.FiscalYear](),
		perCols: postgres.ExtractDBColumns[calendar.Period](),
	}
}

func (r *CalendarRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// FindPeriod returns the period of the company covering date.
// Supplier documents pass allowClosed=true and may land in closed periods.
func (r *CalendarRepo) FindPeriod(ctx context.Context, companyID id.ID, date time.Time, allowClosed bool) (*calendar.Period, error) {
	day := date.Truncate(24 * time.Hour)

	q := r.builder().
		Select(r.perCols...).
		From(periodTable).
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.LtOrEq{"start_date": day}).
		Where(squirrel.GtOrEq{"end_date": day}).
		OrderBy("start_date").
		Limit(1)

	if !allowClosed {
		q = q.Where(squirrel.Eq{"state": calendar.PeriodOpen})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p calendar.Period
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNoPeriod(companyID.String(), day.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("find period: %w", err)
	}

	return &p, nil
}

// CreateFiscalYear inserts a fiscal year.
func (r *CalendarRepo) CreateFiscalYear(ctx context.Context, fy *calendar.FiscalYear) error {
	return r.insert(ctx, fiscalYearTable, r.fyCols, fy)
}

// GetFiscalYear retrieves a fiscal year.
func (r *CalendarRepo) GetFiscalYear(ctx context.Context, fyID id.ID) (*calendar.FiscalYear, error) {
	q := r.builder().
		Select(r.fyCols...).
		From(fiscalYearTable).
		Where(squirrel.Eq{"id": fyID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var fy calendar.FiscalYear
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &fy, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(fiscalYearTable, fyID.String())
		}
		return nil, fmt.Errorf("get fiscal year: %w", err)
	}

	return &fy, nil
}

// ListFiscalYears returns the company's fiscal years ordered by start date.
func (r *CalendarRepo) ListFiscalYears(ctx context.Context, companyID id.ID) ([]*calendar.FiscalYear, error) {
	q := r.builder().
		Select(r.fyCols...).
		From(fiscalYearTable).
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("start_date")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var years []*calendar.FiscalYear
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &years, sql, args...); err != nil {
		return nil, fmt.Errorf("list fiscal years: %w", err)
	}

	return years, nil
}

// CreatePeriod inserts a period.
func (r *CalendarRepo) CreatePeriod(ctx context.Context, p *calendar.Period) error {
	return r.insert(ctx, periodTable, r.perCols, p)
}

// GetPeriod retrieves a period.
func (r *CalendarRepo) GetPeriod(ctx context.Context, periodID id.ID) (*calendar.Period, error) {
	q := r.builder().
		Select(r.perCols...).
		From(periodTable).
		Where(squirrel.Eq{"id": periodID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p calendar.Period
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(periodTable, periodID.String())
		}
		return nil, fmt.Errorf("get period: %w", err)
	}

	return &p, nil
}

// ListPeriods returns the fiscal year's periods ordered by start date.
func (r *CalendarRepo) ListPeriods(ctx context.Context, fiscalYearID id.ID) ([]*calendar.Period, error) {
	q := r.builder().
		Select(r.perCols...).
		From(periodTable).
		Where(squirrel.Eq{"fiscal_year_id": fiscalYearID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("start_date")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var periods []*calendar.Period
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &periods, sql, args...); err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}

	return periods, nil
}

// SetPeriodState opens or closes a period.
func (r *CalendarRepo) SetPeriodState(ctx context.Context, periodID id.ID, state calendar.PeriodState) error {
	q := r.builder().
		Update(periodTable).
		Set("state", state).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": periodID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set period state: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(periodTable, periodID.String())
	}

	return nil
}

// List supports the administrative HTTP surface.
func (r *CalendarRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*calendar.FiscalYear], error) {
	result := domain.ListResult[*calendar.FiscalYear]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder().
		Select(r.fyCols...).
		From(fiscalYearTable)

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"code": pattern},
		})
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

	q = q.OrderBy("start_date")
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

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list fiscal years: %w", err)
	}

	return result, nil
}

func (r *CalendarRepo) insert(ctx context.Context, table string, cols []string, entity any) error {
	data := postgres.StructToMap(entity)

	filteredData := make(map[string]any, len(cols))
	for _, col := range cols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder().
		Insert(table).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate(table, "code", fmt.Sprint(data["code"])).WithCause(err)
		}
		return fmt.Errorf("insert %s: %w", table, err)
	}

	return nil
}

var _ calendar.Repository = (*CalendarRepo)(nil)
