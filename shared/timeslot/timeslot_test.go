package timeslot_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"slate/shared/failure"
	"slate/shared/timeslot"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "09:00", want: 540},
		{name: "with minutes", input: "14:45", want: 885},
		{name: "last minute of day", input: "23:59", want: 1439},
		{name: "missing colon", input: "0900", wantErr: true},
		{name: "too many parts", input: "09:00:00", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "09:60", wantErr: true},
		{name: "not numeric", input: "ab:cd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timeslot.ParseClock(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, failure.HasKind(err, failure.KindValidation))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestElapsedMinutes(t *testing.T) {
	tests := []struct {
		name  string
		start int
		end   int
		want  int
	}{
		{name: "same day", start: 540, end: 1080, want: 540},
		{name: "zero length", start: 540, end: 540, want: 0},
		{name: "overnight wraps once", start: 1320, end: 120, want: 240},
		{name: "one minute before midnight to one after", start: 1439, end: 1, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timeslot.ElapsedMinutes(tt.start, tt.end))
		})
	}
}

func TestRoundToHalfHour(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    float64
	}{
		{name: "exact hours", minutes: 480, want: 8.0},
		{name: "exact half hour", minutes: 90, want: 1.5},
		{name: "rounds up from 16 past", minutes: 106, want: 2.0},
		{name: "rounds down from 14 past", minutes: 104, want: 1.5},
		{name: "tie rounds up", minutes: 105, want: 2.0},
		{name: "zero", minutes: 0, want: 0},
		{name: "negative floors at zero", minutes: -50, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, timeslot.RoundToHalfHour(tt.minutes), 0.001)
		})
	}
}

func TestBillableHours(t *testing.T) {
	tests := []struct {
		name          string
		scheduledFrom string
		scheduledTo   string
		actualFrom    string
		actualTo      string
		breakHours    int
		want          float64
		wantErr       bool
	}{
		{
			name:          "scheduled times with break",
			scheduledFrom: "09:00",
			scheduledTo:   "18:00",
			breakHours:    1,
			want:          8.0,
		},
		{
			name:          "overnight wraparound",
			scheduledFrom: "22:00",
			scheduledTo:   "02:00",
			want:          4.0,
		},
		{
			name:          "actual times win over scheduled",
			scheduledFrom: "09:00",
			scheduledTo:   "18:00",
			actualFrom:    "10:00",
			actualTo:      "16:00",
			want:          6.0,
		},
		{
			name:          "actual start only defaults end to scheduled",
			scheduledFrom: "09:00",
			scheduledTo:   "18:00",
			actualFrom:    "10:00",
			want:          8.0,
		},
		{
			name:          "actual end only defaults start to scheduled",
			scheduledFrom: "09:00",
			scheduledTo:   "18:00",
			actualTo:      "17:00",
			want:          8.0,
		},
		{
			name:          "break exceeding session floors at zero",
			scheduledFrom: "09:00",
			scheduledTo:   "10:00",
			breakHours:    2,
			want:          0,
		},
		{
			name:          "zero length session",
			scheduledFrom: "09:00",
			scheduledTo:   "09:00",
			want:          0,
		},
		{
			name:          "uneven session rounds to half hour",
			scheduledFrom: "09:00",
			scheduledTo:   "13:40",
			want:          4.5,
		},
		{
			name:          "malformed scheduled time",
			scheduledFrom: "9am",
			scheduledTo:   "18:00",
			wantErr:       true,
		},
		{
			name:          "malformed actual time",
			scheduledFrom: "09:00",
			scheduledTo:   "18:00",
			actualTo:      "25:00",
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timeslot.BillableHours(tt.scheduledFrom, tt.scheduledTo, tt.actualFrom, tt.actualTo, tt.breakHours)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestBillableHours_AlwaysHalfHourMultiple(t *testing.T) {
	froms := []string{"08:00", "09:10", "13:25", "22:45"}
	tos := []string{"08:05", "12:00", "17:55", "01:30"}

	for _, from := range froms {
		for _, to := range tos {
			for brk := range 3 {
				hours, err := timeslot.BillableHours(from, to, "", "", brk)

				assert.NoError(t, err)
				assert.GreaterOrEqual(t, hours, 0.0)
				assert.Zero(t, math.Mod(hours*2, 1), "hours %v not a half-hour multiple", hours)
			}
		}
	}
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name string
		a    [2]string
		b    [2]string
		want bool
	}{
		{name: "partial overlap", a: [2]string{"09:00", "12:00"}, b: [2]string{"11:00", "14:00"}, want: true},
		{name: "touching endpoints do not overlap", a: [2]string{"09:00", "12:00"}, b: [2]string{"12:00", "15:00"}, want: false},
		{name: "contained", a: [2]string{"09:00", "18:00"}, b: [2]string{"10:00", "11:00"}, want: true},
		{name: "identical", a: [2]string{"09:00", "12:00"}, b: [2]string{"09:00", "12:00"}, want: true},
		{name: "disjoint", a: [2]string{"09:00", "10:00"}, b: [2]string{"14:00", "15:00"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fromA, _ := timeslot.ParseClock(tt.a[0])
			toA, _ := timeslot.ParseClock(tt.a[1])
			fromB, _ := timeslot.ParseClock(tt.b[0])
			toB, _ := timeslot.ParseClock(tt.b[1])

			assert.Equal(t, tt.want, timeslot.Overlap(fromA, toA, fromB, toB))
			assert.Equal(t, tt.want, timeslot.Overlap(fromB, toB, fromA, toA))
		})
	}
}
