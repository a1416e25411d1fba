package dto

import (
	"github.com/google/uuid"

	"slate/internal/domains/booking/model"
	"slate/shared"
	"slate/shared/constant"
	gDto "slate/shared/dto"
	gModel "slate/shared/model"
	"slate/shared/timezone"
)

type CreateBookingRequest struct {
	RoomID         string `json:"room_id"          validate:"required,uuid"`
	CustomerID     string `json:"customer_id"      validate:"required,uuid"`
	ProjectID      string `json:"project_id"       validate:"required,uuid"`
	ContactID      string `json:"contact_id"       validate:"omitempty,uuid"`
	EditorID       string `json:"editor_id"        validate:"omitempty,uuid"`
	BookingDate    string `json:"booking_date"     validate:"required,dateonly"`
	FromTime       string `json:"from_time"        validate:"required,clocktime"`
	ToTime         string `json:"to_time"          validate:"required,clocktime"`
	ActualFromTime string `json:"actual_from_time" validate:"omitempty,clocktime"`
	ActualToTime   string `json:"actual_to_time"   validate:"omitempty,clocktime"`
	BreakHours     int    `json:"break_hours"      validate:"omitempty,gte=0,lte=24"`
	Status         string `json:"status"           validate:"omitempty,oneof=planning tentative confirmed"`
	Notes          string `json:"notes"            validate:"omitempty,max=1000"`
	// RepeatDays expands the request into that many additional consecutive
	// daily bookings, each created and conflict-checked independently.
	RepeatDays int `json:"repeat_days" validate:"omitempty,gte=0,lte=30"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	bookingDate, err := timezone.Parse(constant.DateOnlyFormat, c.BookingDate)
	if err != nil {
		return model.Booking{}, err
	}

	status := c.Status
	if status == constant.Empty {
		status = constant.BookingStatusPlanning
	}

	var contactID, editorID *string
	if c.ContactID != constant.Empty {
		contactID = &c.ContactID
	}

	if c.EditorID != constant.Empty {
		editorID = &c.EditorID
	}

	return model.Booking{
		ID:             uuid.NewString(),
		RoomID:         c.RoomID,
		CustomerID:     c.CustomerID,
		ProjectID:      c.ProjectID,
		ContactID:      contactID,
		EditorID:       editorID,
		BookingDate:    bookingDate,
		FromTime:       c.FromTime,
		ToTime:         c.ToTime,
		ActualFromTime: c.ActualFromTime,
		ActualToTime:   c.ActualToTime,
		BreakHours:     c.BreakHours,
		Status:         status,
		Notes:          c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateBookingRequest struct {
	RoomID         string `db:"room_id"          json:"room_id"          validate:"omitempty,uuid"`
	ContactID      string `db:"contact_id"       json:"contact_id"       validate:"omitempty,uuid"`
	EditorID       string `db:"editor_id"        json:"editor_id"        validate:"omitempty,uuid"`
	BookingDate    string `db:"booking_date"     json:"booking_date"     validate:"omitempty,dateonly"`
	FromTime       string `db:"from_time"        json:"from_time"        validate:"omitempty,clocktime"`
	ToTime         string `db:"to_time"          json:"to_time"          validate:"omitempty,clocktime"`
	ActualFromTime string `db:"actual_from_time" json:"actual_from_time" validate:"omitempty,clocktime"`
	ActualToTime   string `db:"actual_to_time"   json:"actual_to_time"   validate:"omitempty,clocktime"`
	BreakHours     *int   `db:"break_hours"      json:"break_hours"      validate:"omitempty,gte=0,lte=24"`
	Status         string `db:"status"           json:"status"           validate:"omitempty,oneof=planning tentative confirmed"`
	Notes          string `db:"notes"            json:"notes"            validate:"omitempty,max=1000"`
}

// TouchesBilling reports whether the request changes any field that feeds
// the billable-hours snapshot.
func (u *UpdateBookingRequest) TouchesBilling() bool {
	return u.FromTime != constant.Empty ||
		u.ToTime != constant.Empty ||
		u.ActualFromTime != constant.Empty ||
		u.ActualToTime != constant.Empty ||
		u.BreakHours != nil
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type ConflictCheckRequest struct {
	RoomID           string `json:"room_id"            validate:"required,uuid"`
	EditorID         string `json:"editor_id"          validate:"omitempty,uuid"`
	BookingDate      string `json:"booking_date"       validate:"required,dateonly"`
	FromTime         string `json:"from_time"          validate:"required,clocktime"`
	ToTime           string `json:"to_time"            validate:"required,clocktime"`
	ExcludeBookingID string `json:"exclude_booking_id" validate:"omitempty,uuid"`
}

const (
	ConflictTypeRoom   = "room"
	ConflictTypeEditor = "editor"
)

type Conflict struct {
	Type      string `json:"type"`
	BookingID string `json:"booking_id"`
	Message   string `json:"message"`
}

type LeaveInfo struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	Reason   string `json:"reason"`
}

type ConflictCheckResponse struct {
	HasConflict   bool       `json:"has_conflict"`
	Conflicts     []Conflict `json:"conflicts"`
	EditorOnLeave bool       `json:"editor_on_leave"`
	LeaveInfo     *LeaveInfo `json:"leave_info,omitempty"`
}

type ResolveConflictRequest struct {
	KeepBookingID   string `json:"keep_booking_id"   validate:"required,uuid"`
	CancelBookingID string `json:"cancel_booking_id" validate:"required,uuid,nefield=KeepBookingID"`
}

type BookingResponse struct {
	ID             string  `json:"id"`
	RoomID         string  `json:"room_id"`
	CustomerID     string  `json:"customer_id"`
	ProjectID      string  `json:"project_id"`
	ContactID      string  `json:"contact_id,omitempty"`
	EditorID       string  `json:"editor_id,omitempty"`
	BookingDate    string  `json:"booking_date"`
	FromTime       string  `json:"from_time"`
	ToTime         string  `json:"to_time"`
	ActualFromTime string  `json:"actual_from_time,omitempty"`
	ActualToTime   string  `json:"actual_to_time,omitempty"`
	BreakHours     int     `json:"break_hours"`
	TotalHours     float64 `json:"total_hours"`
	Status         string  `json:"status"`
	Notes          string  `json:"notes,omitempty"`
	CancelReason   string  `json:"cancel_reason,omitempty"`
	CancelledAt    string  `json:"cancelled_at,omitempty"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(mod model.Booking) {
	b.ID = mod.ID
	b.RoomID = mod.RoomID
	b.CustomerID = mod.CustomerID
	b.ProjectID = mod.ProjectID
	b.BookingDate = timezone.Format(mod.BookingDate, constant.DateOnlyFormat)
	b.FromTime = mod.FromTime
	b.ToTime = mod.ToTime
	b.ActualFromTime = mod.ActualFromTime
	b.ActualToTime = mod.ActualToTime
	b.BreakHours = mod.BreakHours
	b.TotalHours = mod.TotalHours
	b.Status = mod.Status
	b.Notes = mod.Notes
	b.CancelReason = mod.CancelReason

	if mod.ContactID != nil {
		b.ContactID = *mod.ContactID
	}

	if mod.EditorID != nil {
		b.EditorID = *mod.EditorID
	}

	if mod.CancelledAt != nil {
		b.CancelledAt = timezone.Format(*mod.CancelledAt, constant.DateFormat)
	}

	b.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		g.Bookings[i].FromModel(mod)
	}
}

type BookingLogResponse struct {
	ID        string `json:"id"`
	BookingID string `json:"booking_id"`
	UserID    string `json:"user_id,omitempty"`
	Action    string `json:"action"`
	Summary   string `json:"summary"`
	CreatedAt string `json:"created_at"`
}

func (b *BookingLogResponse) FromModel(mod model.BookingLog) {
	b.ID = mod.ID
	b.BookingID = mod.BookingID
	b.Action = mod.Action
	b.Summary = mod.Summary
	b.CreatedAt = timezone.Format(mod.CreatedAt, constant.DateFormat)

	if mod.UserID != nil {
		b.UserID = *mod.UserID
	}
}

type GetBookingLogsResponse struct {
	Logs []BookingLogResponse `json:"logs"`
}

func (g *GetBookingLogsResponse) FromModels(models []model.BookingLog) {
	g.Logs = make([]BookingLogResponse, len(models))
	for i, mod := range models {
		g.Logs[i].FromModel(mod)
	}
}
