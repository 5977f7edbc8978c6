// Package document_repo provides PostgreSQL implementations for document
// repositories.
package document_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/domain"
	"faktura/internal/domain/documents/invoice"
	"faktura/internal/infrastructure/storage/postgres"
)

const (
	invoiceTable     = "doc_invoices"
	invoiceLineTable = "doc_invoice_lines"
)

// InvoiceRepo implements invoice.Repository.
type InvoiceRepo struct {
	txm        *postgres.TxManager
	selectCols []string
}

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txm *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		txm:        txm,
		selectCols: postgres.ExtractDBColumns[invoice.Invoice](),
	}
}

func (r *InvoiceRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *InvoiceRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(r.selectCols...).
		From(invoiceTable)
}

// Create inserts a new invoice.
func (r *InvoiceRepo) Create(ctx context.Context, doc *invoice.Invoice) error {
	data := postgres.StructToMap(doc)

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder().
		Insert(invoiceTable).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate(invoiceTable, "number", doc.Number).WithCause(err)
		}
		return fmt.Errorf("insert %s: %w", invoiceTable, err)
	}

	return nil
}

// Update updates an invoice with optimistic locking.
// The unique index on number guards the series against duplicates even
// under concurrent posting.
func (r *InvoiceRepo) Update(ctx context.Context, doc *invoice.Invoice) error {
	data := postgres.StructToMap(doc)

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "created_at" || col == "created_by" {
			continue
		}
		if col == "version" || col == "updated_at" {
			// managed by repo
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder().
		Update(invoiceTable).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": doc.ID}).
		Where(squirrel.Eq{"version": doc.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate(invoiceTable, "number", doc.Number).WithCause(err)
		}
		return fmt.Errorf("update %s: %w", invoiceTable, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(invoiceTable, doc.ID.String())
	}

	doc.SetVersion(doc.Version + 1)
	return nil
}

// GetByID retrieves an invoice by ID (without lines).
func (r *InvoiceRepo) GetByID(ctx context.Context, docID id.ID) (*invoice.Invoice, error) {
	return r.findOne(ctx, r.baseSelect().Where(squirrel.Eq{"id": docID}), docID.String())
}

// GetByNumber retrieves an invoice by its assigned number.
func (r *InvoiceRepo) GetByNumber(ctx context.Context, number string) (*invoice.Invoice, error) {
	return r.findOne(ctx, r.baseSelect().Where(squirrel.Eq{"number": number}), number)
}

func (r *InvoiceRepo) findOne(ctx context.Context, q squirrel.SelectBuilder, key string) (*invoice.Invoice, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var doc invoice.Invoice
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &doc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(invoiceTable, key)
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	return &doc, nil
}

// Delete soft-deletes an invoice.
func (r *InvoiceRepo) Delete(ctx context.Context, docID id.ID) error {
	q := r.builder().
		Update(invoiceTable).
		Set("deletion_mark", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": docID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", invoiceTable, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(invoiceTable, docID.String())
	}

	return nil
}

// GetLines retrieves the invoice's lines ordered by line number.
func (r *InvoiceRepo) GetLines(ctx context.Context, docID id.ID) ([]invoice.Line, error) {
	q := r.builder().
		Select(postgres.ExtractDBColumns[invoice.Line]()...).
		From(invoiceLineTable).
		Where(squirrel.Eq{"invoice_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []invoice.Line
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines replaces the invoice's lines.
func (r *InvoiceRepo) SaveLines(ctx context.Context, docID id.ID, lines []invoice.Line) error {
	querier := r.txm.GetQuerier(ctx)

	delQ := r.builder().
		Delete(invoiceLineTable).
		Where(squirrel.Eq{"invoice_id": docID})

	sql, args, err := delQ.ToSql()
	if err != nil {
		return fmt.Errorf("build delete lines: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	insQ := r.builder().
		Insert(invoiceLineTable).
		Columns("invoice_id", "line_id", "line_no", "description",
			"quantity", "unit_price", "tax_rate", "tax_amount", "amount")
	for _, line := range lines {
		insQ = insQ.Values(docID, line.LineID, line.LineNo, line.Description,
			line.Quantity, line.UnitPrice, line.TaxRate, line.TaxAmount, line.Amount)
	}

	sql, args, err = insQ.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// List retrieves invoices with filtering and pagination.
func (r *InvoiceRepo) List(ctx context.Context, filter invoice.ListFilter) (domain.ListResult[*invoice.Invoice], error) {
	result := domain.ListResult[*invoice.Invoice]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": pattern},
			squirrel.ILike{"party_name": pattern},
		})
	}

	if filter.Kind != "" {
		q = q.Where(squirrel.Eq{"kind": filter.Kind})
	}
	if filter.CompanyID != nil {
		q = q.Where(squirrel.Eq{"company_id": *filter.CompanyID})
	}
	if filter.JournalID != nil {
		q = q.Where(squirrel.Eq{"journal_id": *filter.JournalID})
	}
	if filter.PartyID != nil {
		q = q.Where(squirrel.Eq{"party_id": *filter.PartyID})
	}
	if filter.Posted != nil {
		q = q.Where(squirrel.Eq{"posted": *filter.Posted})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"invoice_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"invoice_date": *filter.DateTo})
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

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

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
		return result, fmt.Errorf("list: %w", err)
	}

	return result, nil
}

func (r *InvoiceRepo) parseOrderBy(orderBy string) (string, error) {
	allowed := make(map[string]struct{}, len(r.selectCols))
	for _, col := range r.selectCols {
		allowed[col] = struct{}{}
	}

	if strings.TrimSpace(orderBy) == "" {
		return "created_at DESC", nil
	}

	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	field = strings.TrimSpace(field)
	if _, ok := allowed[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").
			WithDetail("orderBy", orderBy).
			WithDetail("field", field)
	}

	return field + " " + direction, nil
}

var _ invoice.Repository = (*InvoiceRepo)(nil)
