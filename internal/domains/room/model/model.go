package model

import "slate/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID             = "id"
	FieldName           = "name"
	FieldType           = "type"
	FieldIgnoreConflict = "ignore_conflict"
	FieldActive         = "active"
)

// Room is an edit suite. IgnoreConflict exempts the room from overlap
// conflict reporting; it lives on the resource, never on a booking.
type Room struct {
	ID             string `db:"id"`
	Name           string `db:"name"`
	Type           string `db:"type"`
	IgnoreConflict bool   `db:"ignore_conflict"`
	Active         bool   `db:"active"`
	model.Metadata
}
