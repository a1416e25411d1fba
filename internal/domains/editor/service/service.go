package service

import (
	"context"
	"fmt"

	"slate/config"
	"slate/infras/otel"
	"slate/internal/domains/editor/model"
	"slate/internal/domains/editor/model/dto"
	"slate/internal/domains/editor/repository"
	"slate/shared"
	"slate/shared/cache"
	"slate/shared/constant"
	gDto "slate/shared/dto"
	"slate/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetEditor    = "editor:get"
	cacheGetAllEditor = "editor:gets"
	cacheCountEditor  = "editor:count"
	cacheLeavesEditor = "editor:leaves"
)

type Editor interface {
	Create(ctx context.Context, req dto.CreateEditorRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetEditorsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.EditorResponse, error)
	Update(ctx context.Context, req dto.UpdateEditorRequest, id string) error
	Delete(ctx context.Context, id string) error
	AddLeave(ctx context.Context, req dto.CreateLeaveRequest, editorID string) error
	GetLeaves(ctx context.Context, editorID string) (dto.GetLeavesResponse, error)
	RemoveLeave(ctx context.Context, editorID, leaveID string) error
}

type serviceImpl struct {
	repo  repository.Editor
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Editor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Editor {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateEditorRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create editor")

		return fmt.Errorf("failed to create editor: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllEditor)
		shared.InvalidateCaches(c, s.cache, cacheCountEditor)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetEditorsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllEditor, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count editors: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get editors")

		return res, fmt.Errorf("failed to get editors: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save editors to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountEditor, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count editors")

		return res, fmt.Errorf("failed to count editors: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save editor count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.EditorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetEditor, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	editor, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get editor")

		return res, fmt.Errorf("failed to get editor: %w", err)
	}

	if editor.ID == constant.Empty {
		return res, failure.NotFound("editor not found") //nolint:wrapcheck
	}

	res.FromModel(editor)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save editor to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateEditorRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()

	if req == (dto.UpdateEditorRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if editor exists: %w", err)
	}

	if !exist {
		return failure.NotFound("editor not found") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update editor")

		return fmt.Errorf("failed to update editor: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetEditor, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete editor from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllEditor)
		shared.InvalidateCaches(c, s.cache, cacheCountEditor)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if editor exists: %w", err)
	}

	if !exist {
		return failure.NotFound("editor not found") //nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete editor")

		return fmt.Errorf("failed to delete editor: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetEditor, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete editor from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllEditor)
		shared.InvalidateCaches(c, s.cache, cacheCountEditor)
	}()

	return nil
}

func (s *serviceImpl) AddLeave(ctx context.Context, req dto.CreateLeaveRequest, editorID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddLeave")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(editorID, model.FieldID, model.TableName))
	if err != nil {
		return fmt.Errorf("failed to check if editor exists: %w", err)
	}

	if !exist {
		return failure.NotFound("editor not found") //nolint:wrapcheck
	}

	leave := req.ToModel(editorID, user)
	if leave.ToDate.Before(leave.FromDate) {
		return failure.BadRequestFromString("to_date must not be before from_date") //nolint:wrapcheck
	}

	if err = s.repo.InsertLeave(ctx, leave); err != nil {
		log.Error().Err(err).Msg("failed to create editor leave")

		return fmt.Errorf("failed to create editor leave: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheLeavesEditor)
	}()

	return nil
}

func (s *serviceImpl) GetLeaves(ctx context.Context, editorID string) (res dto.GetLeavesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetLeaves")
	defer scope.End()
	defer scope.TraceIfError(err)

	leaves, err := s.repo.ListLeaves(ctx, editorID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get editor leaves")

		return res, fmt.Errorf("failed to get editor leaves: %w", err)
	}

	res.FromModels(leaves)

	return res, nil
}

func (s *serviceImpl) RemoveLeave(ctx context.Context, editorID, leaveID string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveLeave")
	defer scope.End()

	if err := s.repo.DeleteLeave(ctx, editorID, leaveID); err != nil {
		log.Error().Err(err).Msg("failed to delete editor leave")

		return fmt.Errorf("failed to delete editor leave: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheLeavesEditor)
	}()

	return nil
}

