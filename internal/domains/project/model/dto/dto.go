package dto

import (
	"slate/internal/domains/project/model"
	"slate/shared"
	gDto "slate/shared/dto"
	gModel "slate/shared/model"
	"slate/shared/timezone"

	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	Name       string `json:"name"        validate:"required,max=150"`
	Status     string `json:"status"      validate:"omitempty,max=50"`
}

func (c *CreateProjectRequest) ToModel(user string) model.Project {
	return model.Project{
		ID:         uuid.NewString(),
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Status:     c.Status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateProjectRequest struct {
	Name   string `db:"name"   json:"name"   validate:"omitempty,max=150"`
	Status string `db:"status" json:"status" validate:"omitempty,max=50"`
}

type ProjectResponse struct {
	ID               string `json:"id"`
	CustomerID       string `json:"customer_id"`
	Name             string `json:"name"`
	Status           string `json:"status"`
	HasChalanCreated bool   `json:"has_chalan_created"`
	gDto.Metadata
}

func (r *ProjectResponse) FromModel(model model.Project) {
	r.ID = model.ID
	r.CustomerID = model.CustomerID
	r.Name = model.Name
	r.Status = model.Status
	r.HasChalanCreated = model.HasChalanCreated
	r.Metadata.FromModel(model.Metadata)
}

type GetProjectsResponse struct {
	Projects  []ProjectResponse `json:"projects"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetProjectsResponse) FromModels(models []model.Project, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Projects = make([]ProjectResponse, len(models))
	for i, mod := range models {
		r.Projects[i].FromModel(mod)
	}
}
