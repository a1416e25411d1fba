package booking

import (
	"net/http"
	"slate/infras/otel"
	"slate/internal/domains/booking/model"
	"slate/internal/domains/booking/model/dto"
	"slate/internal/domains/booking/service"
	"slate/shared/constant"
	gDto "slate/shared/dto"
	"slate/shared/timezone"
	"slate/shared/validator"
	"slate/transport/http/middleware"
	"slate/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Booking
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Booking, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Post("/conflicts/check", handler.CheckConflicts)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Get("/{id}/logs", handler.GetBookingLogs)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(handler.middleware.APIKey)
			protected.Use(handler.middleware.Auth)
			protected.Use(handler.middleware.RBAC(constant.RoleAdmin, constant.RoleScheduler))

			protected.Post("/", handler.CreateBooking)
			protected.Post("/conflicts/resolve", handler.ResolveConflict)
			protected.Patch("/{id}", handler.UpdateBooking)
			protected.Post("/{id}/cancel", handler.CancelBooking)
		})
	})
}

// CreateBooking handles the creation of a new booking. A repeat_days value of
// N creates N additional bookings on the following consecutive dates, each one
// conflict-checked on its own day.
// @Summary Create a new booking
// @Description Create a new booking, optionally repeated over consecutive days.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {array} dto.BookingResponse "Created bookings"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	firstDate, err := timezone.Parse(constant.DateOnlyFormat, req.BookingDate)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse booking date")

		response.WithError(writer, err)

		return
	}

	created := make([]dto.BookingResponse, 0, req.RepeatDays+1)

	for day := 0; day <= req.RepeatDays; day++ {
		dayReq := req
		dayReq.BookingDate = firstDate.AddDate(0, 0, day).Format(constant.DateOnlyFormat)

		booking, err := handler.service.Create(ctx, dayReq)
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("bookingDate", dayReq.BookingDate).Msg("failed to create booking")

			response.WithError(writer, err)

			return
		}

		created = append(created, booking)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, created)
}

// GetBookings retrieves all bookings based on query parameters.
// @Summary Get all bookings
// @Description Retrieve all bookings with optional filtering and pagination.
// @Tags Booking
// @Accept json
// @Produce json
// @Param room_id query string false "Filter by room"
// @Param editor_id query string false "Filter by editor"
// @Param customer_id query string false "Filter by customer"
// @Param project_id query string false "Filter by project"
// @Param booking_date query string false "Filter by booking date"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.GetBookingsResponse "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	equalityFields := []string{
		model.FieldRoomID,
		model.FieldEditorID,
		model.FieldCustomerID,
		model.FieldProjectID,
		model.FieldBookingDate,
		model.FieldStatus,
	}

	for _, field := range equalityFields {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Retrieve a booking by its unique identifier.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse "Booking details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBooking updates an existing booking by its ID.
// @Summary Update a booking by ID
// @Description Update the details of an existing booking.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Update Booking Request"
// @Success 200 {object} response.Message "Booking updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking updated successfully")
}

// CancelBooking cancels a booking by its ID.
// @Summary Cancel a booking by ID
// @Description Cancel a booking with a mandatory reason. Past bookings cannot be cancelled.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CancelBookingRequest true "Cancel Booking Request"
// @Success 200 {object} response.Message "Booking cancelled successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.CancelBookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Cancel(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking cancelled successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking cancelled successfully")
}

// GetBookingLogs retrieves the change history of a booking.
// @Summary Get the change history of a booking
// @Description Retrieve the append-only change log of a booking in chronological order.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.GetBookingLogsResponse "Booking change history"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/logs [get]
func (handler *Handler) GetBookingLogs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingLogs")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	logs, err := handler.service.GetLogs(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking logs")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking logs retrieved successfully")

	response.WithJSON(w, http.StatusOK, logs)
}

// CheckConflicts reports room and editor overlaps for a prospective time slot.
// @Summary Check a time slot for conflicts
// @Description Report room and editor conflicts for a prospective booking slot without persisting anything.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.ConflictCheckRequest true "Conflict Check Request"
// @Success 200 {object} dto.ConflictCheckResponse "Conflict report"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/conflicts/check [post]
func (handler *Handler) CheckConflicts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckConflicts")
	defer scope.End()

	req := dto.ConflictCheckRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	report, err := handler.service.DetectConflicts(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check conflicts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Conflicts checked successfully")

	response.WithJSON(w, http.StatusOK, report)
}

// ResolveConflict resolves a conflict between two bookings by cancelling the loser.
// @Summary Resolve a conflict between two bookings
// @Description Keep one booking and cancel the other with a standard resolution reason.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.ResolveConflictRequest true "Resolve Conflict Request"
// @Success 200 {object} response.Message "Conflict resolved successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/conflicts/resolve [post]
// @Security BearerAuth
func (handler *Handler) ResolveConflict(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResolveConflict")
	defer scope.End()

	req := dto.ResolveConflictRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ResolveConflict(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resolve conflict")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Conflict resolved successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Conflict resolved successfully")
}
