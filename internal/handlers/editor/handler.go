package editor

import (
	"net/http"
	"slate/infras/otel"
	"slate/internal/domains/editor/model"
	"slate/internal/domains/editor/model/dto"
	"slate/internal/domains/editor/service"
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
	service    service.Editor
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Editor, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/editors", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetEditors)
		routerGroup.Get("/{id}", handler.GetEditorByID)
		routerGroup.Get("/{id}/leaves", handler.GetLeaves)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(handler.middleware.APIKey)
			protected.Use(handler.middleware.Auth)
			protected.Use(handler.middleware.RBAC(constant.RoleAdmin, constant.RoleScheduler))

			protected.Post("/", handler.CreateEditor)
			protected.Patch("/{id}", handler.UpdateEditor)
			protected.Delete("/{id}", handler.DeleteEditor)
			protected.Post("/{id}/leaves", handler.AddLeave)
			protected.Delete("/{id}/leaves/{leaveId}", handler.RemoveLeave)
		})
	})
}

// CreateEditor handles the creation of a new editor.
// @Summary Create a new editor
// @Description Create a new editor with the provided details.
// @Tags Editor
// @Accept json
// @Produce json
// @Param request body dto.CreateEditorRequest true "Create Editor Request"
// @Success 201 {object} response.Message "Editor created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/editors [post]
// @Security BearerAuth
func (handler *Handler) CreateEditor(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateEditor")
	defer scope.End()

	req := dto.CreateEditorRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create editor")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Editor created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Editor created successfully")
}

// GetEditors retrieves all editors based on query parameters.
// @Summary Get all editors
// @Description Retrieve all editors with optional filtering and pagination.
// @Tags Editor
// @Accept json
// @Produce json
// @Param name query string false "Filter by name"
// @Param type query string false "Filter by type"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} dto.GetEditorsResponse "List of editors"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/editors [get]
func (handler *Handler) GetEditors(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEditors")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	name := r.URL.Query().Get(model.FieldName)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorLike,
				Value:    name,
				Table:    model.TableName,
			},
		},
	}

	if editorType := r.URL.Query().Get(model.FieldType); editorType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldType,
			Operator: gDto.FilterOperatorEq,
			Value:    editorType,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	editors, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get editors")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Editors retrieved successfully")

	response.WithJSON(w, http.StatusOK, editors)
}

// GetEditorByID retrieves an editor by its ID.
// @Summary Get an editor by ID
// @Description Retrieve an editor by its unique identifier.
// @Tags Editor
// @Accept json
// @Produce json
// @Param id path string true "Editor ID"
// @Success 200 {object} dto.EditorResponse "Editor details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/editors/{id} [get]
func (handler *Handler) GetEditorByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEditorByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	editor, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get editor by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Editor retrieved successfully")

	response.WithJSON(w, http.StatusOK, editor)
}

// UpdateEditor updates an existing editor by its ID.
// @Summary Update an editor by ID
// @Description Update the details of an existing editor.
// @Tags Editor
// @Accept json
// @Produce json
// @Param id path string true "Editor ID"
// @Param request body dto.UpdateEditorRequest true "Update Editor Request"
// @Success 200 {object} response.Message "Editor updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/editors/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateEditor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateEditor")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateEditorRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update editor")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Editor updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Editor updated successfully")
}

// DeleteEditor deletes an editor by its ID.
// @Summary Delete an editor by ID
// @Description Delete an editor using its unique identifier.
// @Tags Editor
// @Accept json
// @Produce json
// @Param id path string true "Editor ID"
// @Success 200 {object} response.Message "Editor deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/editors/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteEditor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteEditor")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete editor")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Editor deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Editor deleted successfully")
}

// AddLeave registers a leave period for an editor.
// @Summary Add a leave period for an editor
// @Description Register a leave period for the given editor.
// @Tags Editor
// @Accept json
// @Produce json
// @Param id path string true "Editor ID"
// @Param request body dto.CreateLeaveRequest true "Create Leave Request"
// @Success 201 {object} response.Message "Leave added successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/editors/{id}/leaves [post]
// @Security BearerAuth
func (handler *Handler) AddLeave(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddLeave")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.CreateLeaveRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AddLeave(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add editor leave")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Editor leave added successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Leave added successfully")
}

// GetLeaves retrieves all leave periods of an editor.
// @Summary Get leave periods of an editor
// @Description Retrieve all leave periods registered for the given editor.
// @Tags Editor
// @Accept json
// @Produce json
// @Param id path string true "Editor ID"
// @Success 200 {object} dto.GetLeavesResponse "List of leave periods"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/editors/{id}/leaves [get]
func (handler *Handler) GetLeaves(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLeaves")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	leaves, err := handler.service.GetLeaves(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get editor leaves")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Editor leaves retrieved successfully")

	response.WithJSON(w, http.StatusOK, leaves)
}

// RemoveLeave removes a leave period from an editor.
// @Summary Remove a leave period from an editor
// @Description Remove the given leave period from the editor.
// @Tags Editor
// @Accept json
// @Produce json
// @Param id path string true "Editor ID"
// @Param leaveId path string true "Leave ID"
// @Success 200 {object} response.Message "Leave removed successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/editors/{id}/leaves/{leaveId} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveLeave(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveLeave")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	leaveID := chi.URLParam(r, constant.RequestParamLeaveID)

	if err := handler.service.RemoveLeave(ctx, id, leaveID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove editor leave")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Editor leave removed successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Leave removed successfully")
}
