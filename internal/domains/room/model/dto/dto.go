package dto

import (
	"slate/internal/domains/room/model"
	"slate/shared"
	gDto "slate/shared/dto"
	gModel "slate/shared/model"
	"slate/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name           string `json:"name"            validate:"required,max=100"`
	Type           string `json:"type"            validate:"omitempty,max=50"`
	IgnoreConflict *bool  `json:"ignore_conflict" validate:"omitempty"`
	Active         *bool  `json:"active"          validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	ignoreConflict := false
	if c.IgnoreConflict != nil {
		ignoreConflict = *c.IgnoreConflict
	}

	return model.Room{
		ID:             uuid.NewString(),
		Name:           c.Name,
		Type:           c.Type,
		IgnoreConflict: ignoreConflict,
		Active:         active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Name           string `db:"name"            json:"name"            validate:"omitempty,max=100"`
	Type           string `db:"type"            json:"type"            validate:"omitempty,max=50"`
	IgnoreConflict *bool  `db:"ignore_conflict" json:"ignore_conflict" validate:"omitempty"`
	Active         *bool  `db:"active"          json:"active"          validate:"omitempty"`
}

type RoomResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	IgnoreConflict bool   `json:"ignore_conflict"`
	Active         bool   `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Type = model.Type
	r.IgnoreConflict = model.IgnoreConflict
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
