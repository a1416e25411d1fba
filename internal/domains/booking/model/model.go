package model

import (
	"time"

	"slate/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldRoomID         = "room_id"
	FieldCustomerID     = "customer_id"
	FieldProjectID      = "project_id"
	FieldContactID      = "contact_id"
	FieldEditorID       = "editor_id"
	FieldBookingDate    = "booking_date"
	FieldFromTime       = "from_time"
	FieldToTime         = "to_time"
	FieldActualFromTime = "actual_from_time"
	FieldActualToTime   = "actual_to_time"
	FieldBreakHours     = "break_hours"
	FieldTotalHours     = "total_hours"
	FieldStatus         = "status"
	FieldNotes          = "notes"
	FieldCancelReason   = "cancel_reason"
	FieldConflictExempt = "conflict_exempt"
	FieldCancelledAt    = "cancelled_at"
)

const (
	LogTableName  = "booking_logs"
	LogEntityName = "booking_log"

	LogFieldID        = "id"
	LogFieldBookingID = "booking_id"
)

// Booking is a room/editor reservation for a project on a single calendar
// day. TotalHours is a stored snapshot derived from the scheduled or actual
// times at write time, never recomputed on read. ConflictExempt is the room's
// ignore-conflict flag denormalized onto the row at write time, so the
// database-level overlap backstop can skip exempt rooms. A cancelled booking
// is immutable except for the cancellation write itself.
type Booking struct {
	ID             string     `db:"id"`
	RoomID         string     `db:"room_id"`
	CustomerID     string     `db:"customer_id"`
	ProjectID      string     `db:"project_id"`
	ContactID      *string    `db:"contact_id"`
	EditorID       *string    `db:"editor_id"`
	BookingDate    time.Time  `db:"booking_date"`
	FromTime       string     `db:"from_time"`
	ToTime         string     `db:"to_time"`
	ActualFromTime string     `db:"actual_from_time"`
	ActualToTime   string     `db:"actual_to_time"`
	BreakHours     int        `db:"break_hours"`
	TotalHours     float64    `db:"total_hours"`
	Status         string     `db:"status"`
	Notes          string     `db:"notes"`
	CancelReason   string     `db:"cancel_reason"`
	ConflictExempt bool       `db:"conflict_exempt"`
	CancelledAt    *time.Time `db:"cancelled_at"`
	model.Metadata
}

// Editor returns the assigned editor id, or an empty string when none is set.
func (b *Booking) Editor() string {
	if b.EditorID == nil {
		return ""
	}

	return *b.EditorID
}

// BookingLog is an append-only audit entry, one row per lifecycle transition.
type BookingLog struct {
	ID        string    `db:"id"`
	BookingID string    `db:"booking_id"`
	UserID    *string   `db:"user_id"`
	Action    string    `db:"action"`
	Summary   string    `db:"summary"`
	CreatedAt time.Time `db:"created_at"`
}
