package model

import (
	"time"

	"slate/shared/model"
)

const (
	TableName  = "editors"
	EntityName = "editor"

	FieldID             = "id"
	FieldName           = "name"
	FieldType           = "type"
	FieldIgnoreConflict = "ignore_conflict"
	FieldActive         = "active"
	FieldJoinedOn       = "joined_on"
	FieldLeftOn         = "left_on"
)

const (
	LeaveTableName  = "editor_leaves"
	LeaveEntityName = "editor_leave"

	LeaveFieldID       = "id"
	LeaveFieldEditorID = "editor_id"
	LeaveFieldFromDate = "from_date"
	LeaveFieldToDate   = "to_date"
	LeaveFieldReason   = "reason"
)

// Editor is a staff editor assignable to bookings. IgnoreConflict exempts
// the editor from overlap conflict reporting.
type Editor struct {
	ID             string     `db:"id"`
	Name           string     `db:"name"`
	Type           string     `db:"type"`
	IgnoreConflict bool       `db:"ignore_conflict"`
	Active         bool       `db:"active"`
	JoinedOn       *time.Time `db:"joined_on"`
	LeftOn         *time.Time `db:"left_on"`
	model.Metadata
}

// EditorLeave is an inclusive [FromDate, ToDate] absence. Leaves are not
// validated against existing bookings; bookings are checked against leaves.
type EditorLeave struct {
	ID       string    `db:"id"`
	EditorID string    `db:"editor_id"`
	FromDate time.Time `db:"from_date"`
	ToDate   time.Time `db:"to_date"`
	Reason   string    `db:"reason"`
	model.Metadata
}

// Covers reports whether the leave range contains the given date, both
// endpoints inclusive.
func (l *EditorLeave) Covers(date time.Time) bool {
	return !date.Before(l.FromDate) && !date.After(l.ToDate)
}

// OnLeaveAt returns the leave covering the given date, if any.
func OnLeaveAt(leaves []EditorLeave, date time.Time) (EditorLeave, bool) {
	for _, leave := range leaves {
		if leave.Covers(date) {
			return leave, true
		}
	}

	return EditorLeave{}, false
}
