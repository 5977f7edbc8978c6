package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"faktura/internal/core/id"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodCovers(t *testing.T) {
	p := NewPeriod("2026-01", "January 2026", id.New(), id.New(),
		date(2026, 1, 1), date(2026, 1, 31))

	assert.True(t, p.Covers(date(2026, 1, 1)), "first day inclusive")
	assert.True(t, p.Covers(date(2026, 1, 31)), "last day inclusive")
	assert.True(t, p.Covers(time.Date(2026, 1, 31, 23, 59, 0, 0, time.UTC)), "time of day ignored")
	assert.False(t, p.Covers(date(2025, 12, 31)))
	assert.False(t, p.Covers(date(2026, 2, 1)))
}

func TestFiscalYearValidate(t *testing.T) {
	fy := NewFiscalYear("FY2026", "Fiscal year 2026", id.New(),
		date(2026, 1, 1), date(2026, 12, 31))
	assert.NoError(t, fy.Validate(context.Background()))

	inverted := NewFiscalYear("FY", "Inverted", id.New(),
		date(2026, 12, 31), date(2026, 1, 1))
	assert.Error(t, inverted.Validate(context.Background()))

	noCompany := NewFiscalYear("FY", "No company", id.Nil(),
		date(2026, 1, 1), date(2026, 12, 31))
	assert.Error(t, noCompany.Validate(context.Background()))
}

func TestPeriodStates(t *testing.T) {
	p := NewPeriod("2026-02", "February 2026", id.New(), id.New(),
		date(2026, 2, 1), date(2026, 2, 28))

	assert.True(t, p.IsOpen())
	p.State = PeriodClosed
	assert.False(t, p.IsOpen())
}
