package dto

import (
	"github.com/google/uuid"

	"slate/internal/domains/chalan/model"
	"slate/shared"
	"slate/shared/constant"
	gDto "slate/shared/dto"
	gModel "slate/shared/model"
	"slate/shared/timezone"
)

type ChalanItemRequest struct {
	Description string  `json:"description" validate:"required,max=500"`
	Quantity    float64 `json:"quantity"    validate:"required,gt=0"`
	Rate        float64 `json:"rate"        validate:"gte=0"`
	Amount      float64 `json:"amount"      validate:"gte=0"`
}

func (c *ChalanItemRequest) ToModel(chalanID, user string) model.ChalanItem {
	return model.ChalanItem{
		ID:          uuid.NewString(),
		ChalanID:    chalanID,
		Description: c.Description,
		Quantity:    c.Quantity,
		Rate:        c.Rate,
		Amount:      c.Amount,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type CreateChalanRequest struct {
	CustomerID string              `json:"customer_id" validate:"required,uuid"`
	ProjectID  string              `json:"project_id"  validate:"required,uuid"`
	BookingID  string              `json:"booking_id"  validate:"omitempty,uuid"`
	ChalanDate string              `json:"chalan_date" validate:"required,dateonly"`
	Notes      string              `json:"notes"       validate:"omitempty,max=1000"`
	Items      []ChalanItemRequest `json:"items"       validate:"required,min=1,dive"`
}

func (c *CreateChalanRequest) ToModel(user string) (model.Chalan, []model.ChalanItem, error) {
	chalanDate, err := timezone.Parse(constant.DateOnlyFormat, c.ChalanDate)
	if err != nil {
		return model.Chalan{}, nil, err
	}

	var bookingID *string
	if c.BookingID != constant.Empty {
		bookingID = &c.BookingID
	}

	chalan := model.Chalan{
		ID:         uuid.NewString(),
		CustomerID: c.CustomerID,
		ProjectID:  c.ProjectID,
		BookingID:  bookingID,
		ChalanDate: chalanDate,
		Notes:      c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	items := make([]model.ChalanItem, len(c.Items))
	for i, item := range c.Items {
		items[i] = item.ToModel(chalan.ID, user)
	}

	chalan.TotalAmount = model.TotalAmountOf(items)

	return chalan, items, nil
}

type UpdateChalanRequest struct {
	BookingID string `db:"booking_id" json:"booking_id" validate:"omitempty,uuid"`
	Notes     string `db:"notes"      json:"notes"      validate:"omitempty,max=1000"`
	// Items, when present, replace the existing line set wholesale.
	Items []ChalanItemRequest `json:"items" validate:"omitempty,min=1,dive"`
	// ChangeNote overrides the auto-generated revision text.
	ChangeNote string `json:"change_note" validate:"omitempty,max=1000"`
}

// Empty reports whether the request patches nothing. A request carrying only
// a change note still counts: it records a manual revision entry.
func (u *UpdateChalanRequest) Empty() bool {
	return u.BookingID == constant.Empty && u.Notes == constant.Empty &&
		u.Items == nil && u.ChangeNote == constant.Empty
}

type CancelChalanRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type CreateRevisionRequest struct {
	ChangeText string `json:"change_text" validate:"required,max=1000"`
}

type ChalanResponse struct {
	ID           string  `json:"id"`
	ChalanNumber string  `json:"chalan_number"`
	CustomerID   string  `json:"customer_id"`
	ProjectID    string  `json:"project_id"`
	BookingID    string  `json:"booking_id,omitempty"`
	ChalanDate   string  `json:"chalan_date"`
	TotalAmount  float64 `json:"total_amount"`
	IsCancelled  bool    `json:"is_cancelled"`
	CancelReason string  `json:"cancel_reason,omitempty"`
	Notes        string  `json:"notes,omitempty"`
	gDto.Metadata
}

func (c *ChalanResponse) FromModel(mod model.Chalan) {
	c.ID = mod.ID
	c.ChalanNumber = mod.ChalanNumber
	c.CustomerID = mod.CustomerID
	c.ProjectID = mod.ProjectID
	c.BookingID = mod.Booking()
	c.ChalanDate = timezone.Format(mod.ChalanDate, constant.DateOnlyFormat)
	c.TotalAmount = mod.TotalAmount
	c.IsCancelled = mod.IsCancelled
	c.CancelReason = mod.CancelReason
	c.Notes = mod.Notes
	c.Metadata.FromModel(mod.Metadata)
}

type GetChalansResponse struct {
	Chalans   []ChalanResponse `json:"chalans"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (g *GetChalansResponse) FromModels(models []model.Chalan, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Chalans = make([]ChalanResponse, len(models))
	for i, mod := range models {
		g.Chalans[i].FromModel(mod)
	}
}

type ChalanItemResponse struct {
	ID          string  `json:"id"`
	ChalanID    string  `json:"chalan_id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

func (c *ChalanItemResponse) FromModel(mod model.ChalanItem) {
	c.ID = mod.ID
	c.ChalanID = mod.ChalanID
	c.Description = mod.Description
	c.Quantity = mod.Quantity
	c.Rate = mod.Rate
	c.Amount = mod.Amount
}

type GetChalanItemsResponse struct {
	Items []ChalanItemResponse `json:"items"`
}

func (g *GetChalanItemsResponse) FromModels(models []model.ChalanItem) {
	g.Items = make([]ChalanItemResponse, len(models))
	for i, mod := range models {
		g.Items[i].FromModel(mod)
	}
}

type ChalanRevisionResponse struct {
	ID             string `json:"id"`
	ChalanID       string `json:"chalan_id"`
	RevisionNumber int    `json:"revision_number"`
	ChangeText     string `json:"change_text"`
	UserID         string `json:"user_id,omitempty"`
	CreatedAt      string `json:"created_at"`
}

func (c *ChalanRevisionResponse) FromModel(mod model.ChalanRevision) {
	c.ID = mod.ID
	c.ChalanID = mod.ChalanID
	c.RevisionNumber = mod.RevisionNumber
	c.ChangeText = mod.ChangeText
	c.CreatedAt = timezone.Format(mod.CreatedAt, constant.DateFormat)

	if mod.UserID != nil {
		c.UserID = *mod.UserID
	}
}

type GetChalanRevisionsResponse struct {
	Revisions []ChalanRevisionResponse `json:"revisions"`
}

func (g *GetChalanRevisionsResponse) FromModels(models []model.ChalanRevision) {
	g.Revisions = make([]ChalanRevisionResponse, len(models))
	for i, mod := range models {
		g.Revisions[i].FromModel(mod)
	}
}
