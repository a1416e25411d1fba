package model

import "slate/shared/model"

const (
	TableName  = "projects"
	EntityName = "project"

	FieldID               = "id"
	FieldCustomerID       = "customer_id"
	FieldName             = "name"
	FieldStatus           = "status"
	FieldHasChalanCreated = "has_chalan_created"
)

// Project groups bookings for a customer. HasChalanCreated is a one-way
// marker set on first chalan creation and never cleared.
type Project struct {
	ID               string `db:"id"`
	CustomerID       string `db:"customer_id"`
	Name             string `db:"name"`
	Status           string `db:"status"`
	HasChalanCreated bool   `db:"has_chalan_created"`
	model.Metadata
}
