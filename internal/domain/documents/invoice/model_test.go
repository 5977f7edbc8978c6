package invoice

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/domain/numbering"
)

func draftInvoice() *Invoice {
	return New(numbering.KindCustomerInvoice, id.New(), id.New(), id.New(), "USD")
}

func TestInvoice_AddLine(t *testing.T) {
	inv := draftInvoice()

	inv.AddLine("consulting", decimal.NewFromInt(2), decimal.NewFromInt(100), decimal.NewFromInt(12))
	inv.AddLine("hosting", decimal.NewFromInt(1), decimal.NewFromInt(50), decimal.Zero)

	require.Len(t, inv.Lines, 2)
	assert.Equal(t, 1, inv.Lines[0].LineNo)
	assert.Equal(t, 2, inv.Lines[1].LineNo)

	// 2*100 + 1*50
	assert.True(t, inv.UntaxedAmount.Equal(decimal.NewFromInt(250)), "untaxed: %s", inv.UntaxedAmount)
	// 12% of 200
	assert.True(t, inv.TaxAmount.Equal(decimal.NewFromInt(24)), "tax: %s", inv.TaxAmount)
	assert.True(t, inv.TotalAmount.Equal(decimal.NewFromInt(274)), "total: %s", inv.TotalAmount)
}

func TestInvoice_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		inv := draftInvoice()
		inv.AddLine("consulting", decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.Zero)

		assert.NoError(t, inv.Validate(ctx))
	})

	t.Run("unknown kind", func(t *testing.T) {
		inv := draftInvoice()
		inv.Kind = numbering.Kind("in")
		inv.AddLine("consulting", decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.Zero)

		err := inv.Validate(ctx)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	})

	t.Run("no lines", func(t *testing.T) {
		inv := draftInvoice()

		assert.Error(t, inv.Validate(ctx))
	})

	t.Run("zero quantity", func(t *testing.T) {
		inv := draftInvoice()
		inv.AddLine("consulting", decimal.Zero, decimal.NewFromInt(100), decimal.Zero)

		assert.Error(t, inv.Validate(ctx))
	})

	t.Run("negative price", func(t *testing.T) {
		inv := draftInvoice()
		inv.AddLine("rebate", decimal.NewFromInt(1), decimal.NewFromInt(-10), decimal.Zero)

		assert.Error(t, inv.Validate(ctx))
	})

	t.Run("missing journal", func(t *testing.T) {
		inv := draftInvoice()
		inv.JournalID = id.Nil()
		inv.AddLine("consulting", decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.Zero)

		assert.Error(t, inv.Validate(ctx))
	})
}

func TestInvoice_PostedIsFrozen(t *testing.T) {
	inv := draftInvoice()
	inv.AddLine("consulting", decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.Zero)

	require.NoError(t, inv.CanModify())

	inv.MarkPosted()

	err := inv.CanModify()
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeDocumentPosted))
}
