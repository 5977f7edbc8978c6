package numbering

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/domain/catalogs/journal"
)

func revenuePair(invoiceSeq, creditSeq id.ID) SequencePair {
	return SequencePair{
		Direction:            journal.TypeRevenue,
		InvoiceSequenceID:    &invoiceSeq,
		CreditNoteSequenceID: &creditSeq,
	}
}

func TestSequencePair_SequenceFor(t *testing.T) {
	invSeq := id.New()
	cnSeq := id.New()
	pair := revenuePair(invSeq, cnSeq)

	t.Run("invoice kind gets invoice sequence", func(t *testing.T) {
		got, err := pair.SequenceFor(KindCustomerInvoice)
		require.NoError(t, err)
		assert.Equal(t, invSeq, got)
	})

	t.Run("credit note kind gets credit note sequence", func(t *testing.T) {
		got, err := pair.SequenceFor(KindCustomerCreditNote)
		require.NoError(t, err)
		assert.Equal(t, cnSeq, got)
	})

	t.Run("direction mismatch is a configuration error", func(t *testing.T) {
		_, err := pair.SequenceFor(KindSupplierInvoice)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeConfiguration))
	})

	t.Run("unset reference is a configuration error", func(t *testing.T) {
		broken := pair
		broken.CreditNoteSequenceID = nil

		_, err := broken.SequenceFor(KindCustomerCreditNote)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeConfiguration))
	})
}

func TestSequencePair_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		pair := revenuePair(id.New(), id.New())
		assert.NoError(t, pair.Validate(ctx))
	})

	t.Run("bad direction", func(t *testing.T) {
		pair := revenuePair(id.New(), id.New())
		pair.Direction = journal.TypeOther

		err := pair.Validate(ctx)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	})

	t.Run("missing invoice sequence", func(t *testing.T) {
		pair := revenuePair(id.New(), id.New())
		pair.InvoiceSequenceID = nil

		assert.Error(t, pair.Validate(ctx))
	})

	t.Run("missing credit note sequence", func(t *testing.T) {
		pair := revenuePair(id.New(), id.New())
		nilID := id.Nil()
		pair.CreditNoteSequenceID = &nilID

		assert.Error(t, pair.Validate(ctx))
	})
}

func TestKind_Direction(t *testing.T) {
	assert.Equal(t, journal.TypeRevenue, KindCustomerInvoice.Direction())
	assert.Equal(t, journal.TypeRevenue, KindCustomerCreditNote.Direction())
	assert.Equal(t, journal.TypeExpense, KindSupplierInvoice.Direction())
	assert.Equal(t, journal.TypeExpense, KindSupplierCreditNote.Direction())
}

func TestKind_Valid(t *testing.T) {
	assert.True(t, KindCustomerInvoice.Valid())
	assert.True(t, KindSupplierCreditNote.Valid())
	assert.False(t, Kind("in").Valid())
	assert.False(t, Kind("").Valid())
}
