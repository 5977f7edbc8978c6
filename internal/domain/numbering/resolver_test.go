package numbering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/domain/catalogs/journal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// yearAssignment builds a fiscal-year-only assignment with a revenue pair.
func yearAssignment(fyStart, fyEnd time.Time, invSeq, cnSeq id.ID) *Assignment {
	a := NewAssignment(id.New(), id.New(), id.New(), id.New(), revenuePair(invSeq, cnSeq))
	a.FYStart = fyStart
	a.FYEnd = fyEnd
	return a
}

// periodAssignment narrows a year assignment to a period window.
func periodAssignment(fyStart, fyEnd, pStart, pEnd time.Time, invSeq, cnSeq id.ID) *Assignment {
	a := yearAssignment(fyStart, fyEnd, invSeq, cnSeq)
	periodID := id.New()
	a.PeriodID = &periodID
	a.PeriodStart = &pStart
	a.PeriodEnd = &pEnd
	return a
}

func TestResolveForDevice(t *testing.T) {
	fyStart := date(2026, time.January, 1)
	fyEnd := date(2026, time.December, 31)

	t.Run("single assignment wins", func(t *testing.T) {
		seq := id.New()
		assignments := []*Assignment{yearAssignment(fyStart, fyEnd, seq, id.New())}

		got, err := resolveForDevice(assignments, KindCustomerInvoice)
		require.NoError(t, err)
		assert.Equal(t, seq, got)
	})

	t.Run("last assignment overrides earlier ones", func(t *testing.T) {
		older := id.New()
		newer := id.New()
		assignments := []*Assignment{
			yearAssignment(fyStart, fyEnd, older, id.New()),
			yearAssignment(fyStart, fyEnd, newer, id.New()),
		}

		got, err := resolveForDevice(assignments, KindCustomerInvoice)
		require.NoError(t, err)
		assert.Equal(t, newer, got)
	})

	t.Run("no date filtering on the device path", func(t *testing.T) {
		// The winning assignment's windows do not cover today; it wins anyway.
		seq := id.New()
		assignments := []*Assignment{
			yearAssignment(date(1999, time.January, 1), date(1999, time.December, 31), seq, id.New()),
		}

		got, err := resolveForDevice(assignments, KindCustomerCreditNote)
		require.NoError(t, err)
		assert.NotEqual(t, id.Nil(), got)
	})

	t.Run("direction mismatch surfaces configuration error", func(t *testing.T) {
		assignments := []*Assignment{yearAssignment(fyStart, fyEnd, id.New(), id.New())}

		_, err := resolveForDevice(assignments, KindSupplierInvoice)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeConfiguration))
	})
}

func TestResolveForJournal(t *testing.T) {
	fyStart := date(2026, time.January, 1)
	fyEnd := date(2026, time.December, 31)
	pStart := date(2026, time.March, 1)
	pEnd := date(2026, time.March, 31)

	t.Run("period match beats fiscal year match", func(t *testing.T) {
		periodSeq := id.New()
		yearSeq := id.New()
		assignments := []*Assignment{
			yearAssignment(fyStart, fyEnd, yearSeq, id.New()),
			periodAssignment(fyStart, fyEnd, pStart, pEnd, periodSeq, id.New()),
		}

		got, found, err := resolveForJournal(assignments, KindCustomerInvoice, date(2026, time.March, 15))
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, periodSeq, got)
	})

	t.Run("first period match wins", func(t *testing.T) {
		first := id.New()
		second := id.New()
		assignments := []*Assignment{
			periodAssignment(fyStart, fyEnd, pStart, pEnd, first, id.New()),
			periodAssignment(fyStart, fyEnd, pStart, pEnd, second, id.New()),
		}

		got, found, err := resolveForJournal(assignments, KindCustomerInvoice, date(2026, time.March, 15))
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, first, got)
	})

	t.Run("falls back to fiscal year outside the period", func(t *testing.T) {
		periodSeq := id.New()
		yearSeq := id.New()
		assignments := []*Assignment{
			periodAssignment(fyStart, fyEnd, pStart, pEnd, periodSeq, id.New()),
			yearAssignment(fyStart, fyEnd, yearSeq, id.New()),
		}

		got, found, err := resolveForJournal(assignments, KindCustomerInvoice, date(2026, time.July, 10))
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, yearSeq, got)
	})

	t.Run("period-narrowed assignment never serves the year pass", func(t *testing.T) {
		// Only a period assignment exists; a date outside its window must
		// not match even though the fiscal year covers it.
		assignments := []*Assignment{
			periodAssignment(fyStart, fyEnd, pStart, pEnd, id.New(), id.New()),
		}

		_, found, err := resolveForJournal(assignments, KindCustomerInvoice, date(2026, time.July, 10))
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("window bounds are inclusive", func(t *testing.T) {
		seq := id.New()
		assignments := []*Assignment{
			periodAssignment(fyStart, fyEnd, pStart, pEnd, seq, id.New()),
		}

		for _, d := range []time.Time{pStart, pEnd} {
			got, found, err := resolveForJournal(assignments, KindCustomerInvoice, d)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, seq, got)
		}
	})

	t.Run("no match returns found=false without error", func(t *testing.T) {
		assignments := []*Assignment{
			yearAssignment(fyStart, fyEnd, id.New(), id.New()),
		}

		got, found, err := resolveForJournal(assignments, KindCustomerInvoice, date(2027, time.June, 1))
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, id.Nil(), got)
	})

	t.Run("empty assignments", func(t *testing.T) {
		_, found, err := resolveForJournal(nil, KindCustomerInvoice, date(2026, time.March, 15))
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("matched assignment with wrong direction errors", func(t *testing.T) {
		a := yearAssignment(fyStart, fyEnd, id.New(), id.New())
		a.Pair.Direction = journal.TypeExpense

		_, _, err := resolveForJournal([]*Assignment{a}, KindCustomerInvoice, date(2026, time.March, 15))
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeConfiguration))
	})
}

func TestPick(t *testing.T) {
	a := &Assignment{}
	b := &Assignment{}

	assert.Nil(t, pick(nil, pickFirst))
	assert.Same(t, a, pick([]*Assignment{a, b}, pickFirst))
	assert.Same(t, b, pick([]*Assignment{a, b}, pickLast))
}
