package sequence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"faktura/internal/core/id"
)

func TestFormat(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		prefix      string
		padWidth    int
		includeYear bool
		value       int64
		want        string
	}{
		{"with year", "FV", 5, true, 42, "FV-2026-00042"},
		{"without year", "NC", 5, false, 7, "NC-00007"},
		{"wide padding", "FV", 8, true, 1, "FV-2026-00000001"},
		{"value exceeds padding", "FV", 3, false, 12345, "FV-12345"},
		{"zero pad width defaults to five", "FV", 0, false, 9, "FV-00009"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.prefix, tt.padWidth, tt.includeYear, date, tt.value)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSequenceFormat_UsesContextDateYear(t *testing.T) {
	seq := NewSequence("FV-POS1", "Customer invoices POS 1", "FV", id.New())

	jan := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	dec := time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "FV-2025-00001", seq.Format(jan, 1))
	assert.Equal(t, "FV-2026-00002", seq.Format(dec, 2))
}
