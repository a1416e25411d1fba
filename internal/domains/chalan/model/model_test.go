package model_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"slate/internal/domains/chalan/model"
)

func TestNumberPrefix(t *testing.T) {
	assert.Equal(t, "CH2512-", model.NumberPrefix(time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "CH2601-", model.NumberPrefix(time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "CH0907-", model.NumberPrefix(time.Date(2009, 7, 1, 0, 0, 0, 0, time.UTC)))
}

func TestNextNumber(t *testing.T) {
	december := time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{name: "first of the month", existing: nil, want: "CH2512-01"},
		{name: "increments the maximum", existing: []string{"CH2512-01", "CH2512-07", "CH2512-03"}, want: "CH2512-08"},
		{name: "other months do not count", existing: []string{"CH2511-42", "CH2512-02"}, want: "CH2512-03"},
		{name: "malformed suffixes are skipped", existing: []string{"CH2512-xx", "CH2512-04"}, want: "CH2512-05"},
		{name: "overflows past two digits", existing: []string{"CH2512-99"}, want: "CH2512-100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.NextNumber(december, tt.existing))
		})
	}
}

func TestNextNumber_SequenceIsStrictlyIncreasing(t *testing.T) {
	date := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	existing := []string{}

	for i := 1; i <= 12; i++ {
		number := model.NextNumber(date, existing)

		assert.Equal(t, fmt.Sprintf("CH2512-%02d", i), number)

		existing = append(existing, number)
	}
}

func TestTotalAmountOf(t *testing.T) {
	items := []model.ChalanItem{
		{Amount: 1500},
		{Amount: 250.5},
		{Amount: 0},
	}

	assert.InDelta(t, 1750.5, model.TotalAmountOf(items), 0.001)
	assert.Zero(t, model.TotalAmountOf(nil))
}
