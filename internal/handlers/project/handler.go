package project

import (
	"net/http"
	"slate/infras/otel"
	"slate/internal/domains/project/model"
	"slate/internal/domains/project/model/dto"
	"slate/internal/domains/project/service"
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
	service    service.Project
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Project, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/projects", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetProjects)
		routerGroup.Get("/{id}", handler.GetProjectByID)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(handler.middleware.APIKey)
			protected.Use(handler.middleware.Auth)
			protected.Use(handler.middleware.RBAC(constant.RoleAdmin, constant.RoleScheduler, constant.RoleBilling))

			protected.Post("/", handler.CreateProject)
			protected.Patch("/{id}", handler.UpdateProject)
		})
	})
}

// CreateProject handles the creation of a new project.
// @Summary Create a new project
// @Description Create a new project with the provided details.
// @Tags Project
// @Accept json
// @Produce json
// @Param request body dto.CreateProjectRequest true "Create Project Request"
// @Success 201 {object} response.Message "Project created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/projects [post]
// @Security BearerAuth
func (handler *Handler) CreateProject(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateProject")
	defer scope.End()

	req := dto.CreateProjectRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create project")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Project created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Project created successfully")
}

// GetProjects retrieves all projects based on query parameters.
// @Summary Get all projects
// @Description Retrieve all projects with optional filtering and pagination.
// @Tags Project
// @Accept json
// @Produce json
// @Param name query string false "Filter by name"
// @Param status query string false "Filter by status"
// @Param customer_id query string false "Filter by customer"
// @Param has_chalan_created query boolean false "Filter by chalan creation flag"
// @Success 200 {object} dto.GetProjectsResponse "List of projects"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/projects [get]
func (handler *Handler) GetProjects(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProjects")
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

	if status := r.URL.Query().Get(model.FieldStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if customerID := r.URL.Query().Get(model.FieldCustomerID); customerID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCustomerID,
			Operator: gDto.FilterOperatorEq,
			Value:    customerID,
			Table:    model.TableName,
		})
	}

	if hasChalan := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldHasChalanCreated)); hasChalan != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldHasChalanCreated,
			Operator: gDto.FilterOperatorEq,
			Value:    *hasChalan,
			Table:    model.TableName,
		})
	}

	projects, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get projects")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Projects retrieved successfully")

	response.WithJSON(w, http.StatusOK, projects)
}

// GetProjectByID retrieves a project by its ID.
// @Summary Get a project by ID
// @Description Retrieve a project by its unique identifier.
// @Tags Project
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse "Project details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/projects/{id} [get]
func (handler *Handler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProjectByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	project, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get project by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Project retrieved successfully")

	response.WithJSON(w, http.StatusOK, project)
}

// UpdateProject updates an existing project by its ID.
// @Summary Update a project by ID
// @Description Update the details of an existing project.
// @Tags Project
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body dto.UpdateProjectRequest true "Update Project Request"
// @Success 200 {object} response.Message "Project updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/projects/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProject")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateProjectRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update project")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Project updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Project updated successfully")
}
