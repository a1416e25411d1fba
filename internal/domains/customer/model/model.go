package model

import "slate/shared/model"

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID     = "id"
	FieldName   = "name"
	FieldEmail  = "email"
	FieldPhone  = "phone"
	FieldActive = "active"
)

type Customer struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Email  string `db:"email"`
	Phone  string `db:"phone"`
	Active bool   `db:"active"`
	model.Metadata
}
