package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slate/internal/domains/booking/model/dto"
	"slate/shared/constant"
)

func TestCreateBookingRequestToModel(t *testing.T) {
	t.Run("fills defaults and pointers", func(t *testing.T) {
		req := dto.CreateBookingRequest{
			RoomID:      "room-1",
			CustomerID:  "cust-1",
			ProjectID:   "proj-1",
			BookingDate: "2025-12-08",
			FromTime:    "09:00",
			ToTime:      "17:00",
		}

		booking, err := req.ToModel("user-1")
		require.NoError(t, err)

		assert.NotEmpty(t, booking.ID)
		assert.Equal(t, constant.BookingStatusPlanning, booking.Status)
		assert.Nil(t, booking.ContactID)
		assert.Nil(t, booking.EditorID)
		assert.Equal(t, "2025-12-08", booking.BookingDate.Format(constant.DateOnlyFormat))
		assert.Equal(t, "user-1", booking.CreatedBy)
		assert.Equal(t, "user-1", booking.ModifiedBy)
	})

	t.Run("keeps submitted status and optional ids", func(t *testing.T) {
		req := dto.CreateBookingRequest{
			RoomID:      "room-1",
			CustomerID:  "cust-1",
			ProjectID:   "proj-1",
			ContactID:   "contact-1",
			EditorID:    "editor-1",
			BookingDate: "2025-12-08",
			FromTime:    "09:00",
			ToTime:      "17:00",
			Status:      constant.BookingStatusConfirmed,
		}

		booking, err := req.ToModel("user-1")
		require.NoError(t, err)

		assert.Equal(t, constant.BookingStatusConfirmed, booking.Status)
		require.NotNil(t, booking.ContactID)
		assert.Equal(t, "contact-1", *booking.ContactID)
		require.NotNil(t, booking.EditorID)
		assert.Equal(t, "editor-1", *booking.EditorID)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		req := dto.CreateBookingRequest{
			RoomID:      "room-1",
			CustomerID:  "cust-1",
			ProjectID:   "proj-1",
			BookingDate: "08-12-2025",
			FromTime:    "09:00",
			ToTime:      "17:00",
		}

		_, err := req.ToModel("user-1")

		assert.Error(t, err)
	})
}

func TestUpdateBookingRequestTouchesBilling(t *testing.T) {
	breakHours := 1

	tests := []struct {
		name string
		req  dto.UpdateBookingRequest
		want bool
	}{
		{name: "empty patch", req: dto.UpdateBookingRequest{}, want: false},
		{name: "status only", req: dto.UpdateBookingRequest{Status: constant.BookingStatusConfirmed}, want: false},
		{name: "notes only", req: dto.UpdateBookingRequest{Notes: "moved gear"}, want: false},
		{name: "scheduled time", req: dto.UpdateBookingRequest{FromTime: "10:00"}, want: true},
		{name: "actual time", req: dto.UpdateBookingRequest{ActualToTime: "18:30"}, want: true},
		{name: "break hours zero", req: dto.UpdateBookingRequest{BreakHours: new(int)}, want: true},
		{name: "break hours set", req: dto.UpdateBookingRequest{BreakHours: &breakHours}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.TouchesBilling())
		})
	}
}
