package dto

import (
	"time"

	"slate/internal/domains/editor/model"
	"slate/shared"
	"slate/shared/constant"
	gDto "slate/shared/dto"
	gModel "slate/shared/model"
	"slate/shared/timezone"

	"github.com/google/uuid"
)

type CreateEditorRequest struct {
	Name           string `json:"name"            validate:"required,max=100"`
	Type           string `json:"type"            validate:"omitempty,max=50"`
	IgnoreConflict *bool  `json:"ignore_conflict" validate:"omitempty"`
	Active         *bool  `json:"active"          validate:"omitempty"`
	JoinedOn       string `json:"joined_on"       validate:"omitempty,dateonly"`
	LeftOn         string `json:"left_on"         validate:"omitempty,dateonly"`
}

func (c *CreateEditorRequest) ToModel(user string) model.Editor {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	ignoreConflict := false
	if c.IgnoreConflict != nil {
		ignoreConflict = *c.IgnoreConflict
	}

	return model.Editor{
		ID:             uuid.NewString(),
		Name:           c.Name,
		Type:           c.Type,
		IgnoreConflict: ignoreConflict,
		Active:         active,
		JoinedOn:       parseDate(c.JoinedOn),
		LeftOn:         parseDate(c.LeftOn),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateEditorRequest struct {
	Name           string `db:"name"            json:"name"            validate:"omitempty,max=100"`
	Type           string `db:"type"            json:"type"            validate:"omitempty,max=50"`
	IgnoreConflict *bool  `db:"ignore_conflict" json:"ignore_conflict" validate:"omitempty"`
	Active         *bool  `db:"active"          json:"active"          validate:"omitempty"`
	JoinedOn       string `db:"joined_on"       json:"joined_on"       validate:"omitempty,dateonly"`
	LeftOn         string `db:"left_on"         json:"left_on"         validate:"omitempty,dateonly"`
}

type CreateLeaveRequest struct {
	FromDate string `json:"from_date" validate:"required,dateonly"`
	ToDate   string `json:"to_date"   validate:"required,dateonly"`
	Reason   string `json:"reason"    validate:"required,max=255"`
}

func (c *CreateLeaveRequest) ToModel(editorID, user string) model.EditorLeave {
	fromDate, _ := time.Parse(constant.DateOnlyFormat, c.FromDate)
	toDate, _ := time.Parse(constant.DateOnlyFormat, c.ToDate)

	return model.EditorLeave{
		ID:       uuid.NewString(),
		EditorID: editorID,
		FromDate: fromDate,
		ToDate:   toDate,
		Reason:   c.Reason,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type EditorResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	IgnoreConflict bool   `json:"ignore_conflict"`
	Active         bool   `json:"active"`
	JoinedOn       string `json:"joined_on,omitempty"`
	LeftOn         string `json:"left_on,omitempty"`
	gDto.Metadata
}

func (r *EditorResponse) FromModel(model model.Editor) {
	r.ID = model.ID
	r.Name = model.Name
	r.Type = model.Type
	r.IgnoreConflict = model.IgnoreConflict
	r.Active = model.Active
	r.JoinedOn = formatDate(model.JoinedOn)
	r.LeftOn = formatDate(model.LeftOn)
	r.Metadata.FromModel(model.Metadata)
}

type LeaveResponse struct {
	ID       string `json:"id"`
	EditorID string `json:"editor_id"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	Reason   string `json:"reason"`
	gDto.Metadata
}

func (r *LeaveResponse) FromModel(model model.EditorLeave) {
	r.ID = model.ID
	r.EditorID = model.EditorID
	r.FromDate = model.FromDate.Format(constant.DateOnlyFormat)
	r.ToDate = model.ToDate.Format(constant.DateOnlyFormat)
	r.Reason = model.Reason
	r.Metadata.FromModel(model.Metadata)
}

type GetEditorsResponse struct {
	Editors   []EditorResponse `json:"editors"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetEditorsResponse) FromModels(models []model.Editor, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Editors = make([]EditorResponse, len(models))
	for i, mod := range models {
		r.Editors[i].FromModel(mod)
	}
}

type GetLeavesResponse struct {
	Leaves []LeaveResponse `json:"leaves"`
}

func (r *GetLeavesResponse) FromModels(models []model.EditorLeave) {
	r.Leaves = make([]LeaveResponse, len(models))
	for i, mod := range models {
		r.Leaves[i].FromModel(mod)
	}
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}

	date, err := time.Parse(constant.DateOnlyFormat, value)
	if err != nil {
		return nil
	}

	return &date
}

func formatDate(value *time.Time) string {
	if value == nil {
		return ""
	}

	return value.Format(constant.DateOnlyFormat)
}
