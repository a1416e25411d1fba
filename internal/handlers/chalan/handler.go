package chalan

import (
	"net/http"
	"slate/infras/otel"
	"slate/internal/domains/chalan/model"
	"slate/internal/domains/chalan/model/dto"
	"slate/internal/domains/chalan/service"
	"slate/shared"
	"slate/shared/constant"
	gDto "slate/shared/dto"
	"slate/shared/validator"
	"slate/transport/http/middleware"
	"slate/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Chalan
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Chalan, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/chalans", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetChalans)
		routerGroup.Get("/{id}", handler.GetChalanByID)
		routerGroup.Get("/{id}/items", handler.GetChalanItems)
		routerGroup.Get("/{id}/revisions", handler.GetChalanRevisions)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(handler.middleware.APIKey)
			protected.Use(handler.middleware.Auth)
			protected.Use(handler.middleware.RBAC(constant.RoleAdmin, constant.RoleBilling))

			protected.Post("/", handler.CreateChalan)
			protected.Patch("/{id}", handler.UpdateChalan)
			protected.Post("/{id}/cancel", handler.CancelChalan)
			protected.Post("/{id}/revisions", handler.AddChalanRevision)
		})
	})
}

// CreateChalan handles the creation of a new chalan.
// @Summary Create a new chalan
// @Description Create a new chalan with its line items. The chalan number is assigned server-side.
// @Tags Chalan
// @Accept json
// @Produce json
// @Param request body dto.CreateChalanRequest true "Create Chalan Request"
// @Success 201 {object} dto.ChalanResponse "Created chalan"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/chalans [post]
// @Security BearerAuth
func (handler *Handler) CreateChalan(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateChalan")
	defer scope.End()

	req := dto.CreateChalanRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	chalan, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create chalan")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Chalan created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, chalan)
}

// GetChalans retrieves all chalans based on query parameters.
// @Summary Get all chalans
// @Description Retrieve all chalans with optional filtering and pagination.
// @Tags Chalan
// @Accept json
// @Produce json
// @Param chalan_number query string false "Filter by chalan number"
// @Param customer_id query string false "Filter by customer"
// @Param project_id query string false "Filter by project"
// @Param booking_id query string false "Filter by booking"
// @Param is_cancelled query boolean false "Filter by cancellation status"
// @Success 200 {object} dto.GetChalansResponse "List of chalans"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/chalans [get]
func (handler *Handler) GetChalans(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetChalans")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	chalanNumber := r.URL.Query().Get(model.FieldChalanNumber)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldChalanNumber,
				Operator: gDto.FilterOperatorLike,
				Value:    chalanNumber,
				Table:    model.TableName,
			},
		},
	}

	equalityFields := []string{
		model.FieldCustomerID,
		model.FieldProjectID,
		model.FieldBookingID,
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

	if cancelled := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldIsCancelled)); cancelled != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsCancelled,
			Operator: gDto.FilterOperatorEq,
			Value:    *cancelled,
			Table:    model.TableName,
		})
	}

	chalans, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get chalans")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Chalans retrieved successfully")

	response.WithJSON(w, http.StatusOK, chalans)
}

// GetChalanByID retrieves a chalan by its ID.
// @Summary Get a chalan by ID
// @Description Retrieve a chalan by its unique identifier.
// @Tags Chalan
// @Accept json
// @Produce json
// @Param id path string true "Chalan ID"
// @Success 200 {object} dto.ChalanResponse "Chalan details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/chalans/{id} [get]
func (handler *Handler) GetChalanByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetChalanByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	chalan, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get chalan by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Chalan retrieved successfully")

	response.WithJSON(w, http.StatusOK, chalan)
}

// UpdateChalan updates an existing chalan by its ID.
// @Summary Update a chalan by ID
// @Description Update a chalan. Supplying items replaces the full item list and a revision entry is recorded.
// @Tags Chalan
// @Accept json
// @Produce json
// @Param id path string true "Chalan ID"
// @Param request body dto.UpdateChalanRequest true "Update Chalan Request"
// @Success 200 {object} response.Message "Chalan updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/chalans/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateChalan(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateChalan")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateChalanRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update chalan")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Chalan updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Chalan updated successfully")
}

// CancelChalan cancels a chalan by its ID.
// @Summary Cancel a chalan by ID
// @Description Cancel a chalan with a mandatory reason. Cancelled chalans keep their number and history.
// @Tags Chalan
// @Accept json
// @Produce json
// @Param id path string true "Chalan ID"
// @Param request body dto.CancelChalanRequest true "Cancel Chalan Request"
// @Success 200 {object} response.Message "Chalan cancelled successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/chalans/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelChalan(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelChalan")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.CancelChalanRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Cancel(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel chalan")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Chalan cancelled successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Chalan cancelled successfully")
}

// GetChalanItems retrieves the line items of a chalan.
// @Summary Get the line items of a chalan
// @Description Retrieve all line items belonging to the given chalan.
// @Tags Chalan
// @Accept json
// @Produce json
// @Param id path string true "Chalan ID"
// @Success 200 {object} dto.GetChalanItemsResponse "Chalan line items"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/chalans/{id}/items [get]
func (handler *Handler) GetChalanItems(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetChalanItems")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	items, err := handler.service.GetItems(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get chalan items")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Chalan items retrieved successfully")

	response.WithJSON(w, http.StatusOK, items)
}

// GetChalanRevisions retrieves the revision history of a chalan.
// @Summary Get the revision history of a chalan
// @Description Retrieve the append-only revision ledger of a chalan in order.
// @Tags Chalan
// @Accept json
// @Produce json
// @Param id path string true "Chalan ID"
// @Success 200 {object} dto.GetChalanRevisionsResponse "Chalan revision history"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/chalans/{id}/revisions [get]
func (handler *Handler) GetChalanRevisions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetChalanRevisions")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	revisions, err := handler.service.GetRevisions(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get chalan revisions")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Chalan revisions retrieved successfully")

	response.WithJSON(w, http.StatusOK, revisions)
}

// AddChalanRevision appends a manual note to the revision ledger of a chalan.
// @Summary Add a revision note to a chalan
// @Description Append a manual revision note to the chalan revision ledger.
// @Tags Chalan
// @Accept json
// @Produce json
// @Param id path string true "Chalan ID"
// @Param request body dto.CreateRevisionRequest true "Create Revision Request"
// @Success 201 {object} dto.ChalanRevisionResponse "Created revision"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/chalans/{id}/revisions [post]
// @Security BearerAuth
func (handler *Handler) AddChalanRevision(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddChalanRevision")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.CreateRevisionRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	revision, err := handler.service.AddRevision(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add chalan revision")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Chalan revision added successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, revision)
}
