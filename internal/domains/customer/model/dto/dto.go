package dto

import (
	"slate/internal/domains/customer/model"
	"slate/shared"
	gDto "slate/shared/dto"
	gModel "slate/shared/model"
	"slate/shared/timezone"

	"github.com/google/uuid"
)

type CreateCustomerRequest struct {
	Name   string `json:"name"   validate:"required,max=100"`
	Email  string `json:"email"  validate:"omitempty,email,max=100"`
	Phone  string `json:"phone"  validate:"omitempty,max=20"`
	Active *bool  `json:"active" validate:"omitempty"`
}

func (c *CreateCustomerRequest) ToModel(user string) model.Customer {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Customer{
		ID:     uuid.NewString(),
		Name:   c.Name,
		Email:  c.Email,
		Phone:  c.Phone,
		Active: active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCustomerRequest struct {
	Name   string `db:"name"   json:"name"   validate:"omitempty,max=100"`
	Email  string `db:"email"  json:"email"  validate:"omitempty,email,max=100"`
	Phone  string `db:"phone"  json:"phone"  validate:"omitempty,max=20"`
	Active *bool  `db:"active" json:"active" validate:"omitempty"`
}

type CustomerResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Active bool   `json:"active"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}
