package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"slate/internal/domains/editor/model"
)

func date(value string) time.Time {
	d, _ := time.Parse("2006-01-02", value)

	return d
}

func TestLeaveCovers(t *testing.T) {
	leave := model.EditorLeave{
		FromDate: date("2025-12-10"),
		ToDate:   date("2025-12-14"),
	}

	tests := []struct {
		name string
		day  string
		want bool
	}{
		{name: "day before", day: "2025-12-09", want: false},
		{name: "first day inclusive", day: "2025-12-10", want: true},
		{name: "middle day", day: "2025-12-12", want: true},
		{name: "last day inclusive", day: "2025-12-14", want: true},
		{name: "day after", day: "2025-12-15", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, leave.Covers(date(tt.day)))
		})
	}
}

func TestOnLeaveAt(t *testing.T) {
	leaves := []model.EditorLeave{
		{ID: "l-1", FromDate: date("2025-12-01"), ToDate: date("2025-12-03"), Reason: "sick leave"},
		{ID: "l-2", FromDate: date("2025-12-10"), ToDate: date("2025-12-14"), Reason: "annual leave"},
	}

	t.Run("returns the covering leave", func(t *testing.T) {
		leave, onLeave := model.OnLeaveAt(leaves, date("2025-12-12"))

		assert.True(t, onLeave)
		assert.Equal(t, "l-2", leave.ID)
		assert.Equal(t, "annual leave", leave.Reason)
	})

	t.Run("no leave covers the date", func(t *testing.T) {
		_, onLeave := model.OnLeaveAt(leaves, date("2025-12-05"))

		assert.False(t, onLeave)
	})

	t.Run("single day leave", func(t *testing.T) {
		single := []model.EditorLeave{
			{ID: "l-3", FromDate: date("2025-12-20"), ToDate: date("2025-12-20")},
		}

		leave, onLeave := model.OnLeaveAt(single, date("2025-12-20"))

		assert.True(t, onLeave)
		assert.Equal(t, "l-3", leave.ID)
	})

	t.Run("empty leave list", func(t *testing.T) {
		_, onLeave := model.OnLeaveAt(nil, date("2025-12-12"))

		assert.False(t, onLeave)
	})
}
