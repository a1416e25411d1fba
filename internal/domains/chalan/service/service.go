package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"slate/config"
	"slate/infras/otel"
	bookingModel "slate/internal/domains/booking/model"
	bookingRepo "slate/internal/domains/booking/repository"
	"slate/internal/domains/chalan/model"
	"slate/internal/domains/chalan/model/dto"
	"slate/internal/domains/chalan/repository"
	projectModel "slate/internal/domains/project/model"
	projectRepo "slate/internal/domains/project/repository"
	"slate/internal/events"
	"slate/shared"
	"slate/shared/cache"
	"slate/shared/clock"
	"slate/shared/constant"
	gDto "slate/shared/dto"
	"slate/shared/failure"
)

const (
	cacheGetChalan       = "chalan:get"
	cacheGetAllChalan    = "chalan:gets"
	cacheCountChalan     = "chalan:count"
	cacheItemsChalan     = "chalan:items"
	cacheRevisionsChalan = "chalan:revisions"
)

type Chalan interface {
	Create(ctx context.Context, req dto.CreateChalanRequest) (dto.ChalanResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetChalansResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ChalanResponse, error)
	Update(ctx context.Context, req dto.UpdateChalanRequest, id string) error
	Cancel(ctx context.Context, req dto.CancelChalanRequest, id string) error
	GetItems(ctx context.Context, id string) (dto.GetChalanItemsResponse, error)
	AddRevision(ctx context.Context, req dto.CreateRevisionRequest, id string) (dto.ChalanRevisionResponse, error)
	GetRevisions(ctx context.Context, id string) (dto.GetChalanRevisionsResponse, error)
}

type serviceImpl struct {
	repo        repository.Chalan
	projectRepo projectRepo.Project
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	clock       clock.Clock
	publisher   events.Publisher
	otel        otel.Otel
}

func New(
	repo repository.Chalan,
	projectRepo projectRepo.Project,
	bookingRepo bookingRepo.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	clock clock.Clock,
	publisher events.Publisher,
	otel otel.Otel,
) Chalan {
	return &serviceImpl{
		repo:        repo,
		projectRepo: projectRepo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		clock:       clock,
		publisher:   publisher,
		otel:        otel,
	}
}

// Create mints the document number and persists the chalan, its lines, and
// the project flag in one transaction. The number is recomputed from what
// currently exists under the month prefix; losing the allocation race to a
// concurrent create recomputes and retries a bounded number of times. A
// booking may back at most one live chalan.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateChalanRequest) (res dto.ChalanResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	chalan, items, err := req.ToModel(user)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid chalan date: %q, expected YYYY-MM-DD", req.ChalanDate)) //nolint:wrapcheck
	}

	projectExists, err := s.projectRepo.Exist(ctx, shared.FilterByID(req.ProjectID, projectModel.FieldID, projectModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to check if project exists: %w", err)
	}

	if !projectExists {
		return res, failure.BadRequestFromString("project does not exist") //nolint:wrapcheck
	}

	if req.BookingID != constant.Empty {
		if err = s.checkBookingFree(ctx, req.BookingID); err != nil {
			return res, err
		}
	}

	attempts := s.cfg.App.ChalanNumberRetry
	if attempts <= 0 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		numbers, numErr := s.repo.NumbersWithPrefix(ctx, model.NumberPrefix(chalan.ChalanDate))
		if numErr != nil {
			return res, fmt.Errorf("failed to load chalan numbers: %w", numErr)
		}

		chalan.ChalanNumber = model.NextNumber(chalan.ChalanDate, numbers)

		err = s.repo.CreateWithItems(ctx, chalan, items)
		if err == nil {
			break
		}

		if failure.HasKind(err, failure.KindNumberingRace) {
			log.Warn().Str("chalan_number", chalan.ChalanNumber).Int("attempt", attempt+1).Msg("chalan number collision, recomputing")

			continue
		}

		if failure.HasKind(err, failure.KindDuplicateChalan) && req.BookingID != constant.Empty {
			return res, s.duplicateWithRef(ctx, req.BookingID)
		}

		log.Error().Err(err).Msg("failed to create chalan")

		return res, err
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create chalan after retries")

		return res, maskNumberingRace(err)
	}

	res.FromModel(chalan)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllChalan)
		shared.InvalidateCaches(c, s.cache, cacheCountChalan)

		s.publisher.PublishChalan(c, events.ChalanEvent{
			Type:         events.TypeChalanCreated,
			ChalanID:     chalan.ID,
			ChalanNumber: chalan.ChalanNumber,
			ProjectID:    chalan.ProjectID,
			BookingID:    chalan.Booking(),
			OccurredAt:   s.clock.Now(),
		})
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetChalansResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllChalan, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count chalans: %w", err)
	}

	chalans, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get chalans")

		return res, fmt.Errorf("failed to get chalans: %w", err)
	}

	res.FromModels(chalans, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save chalans to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountChalan, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count chalans")

		return res, fmt.Errorf("failed to count chalans: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save chalan count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ChalanResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetChalan, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	chalan, err := s.getChalan(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(chalan)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save chalan to cache")
		}
	}()

	return res, nil
}

// Update patches a live chalan and appends a revision entry in the same
// transaction, so the ledger never misses an edit. A cancelled chalan is
// read-only. Supplied items replace the existing line set wholesale, and the
// stored total is recomputed from the new lines. Re-pointing the booking
// reference re-checks the one-chalan-per-booking rule.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateChalanRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Empty() {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	chalan, err := s.getChalan(ctx, id)
	if err != nil {
		return err
	}

	if chalan.IsCancelled {
		return failure.ImmutableRecord(model.EntityName) //nolint:wrapcheck
	}

	if req.BookingID != constant.Empty && req.BookingID != chalan.Booking() {
		if err = s.checkBookingFree(ctx, req.BookingID); err != nil {
			return err
		}
	}

	fields := shared.TransformFields(req, user)

	var items []model.ChalanItem

	replaceItems := req.Items != nil
	if replaceItems {
		items = make([]model.ChalanItem, len(req.Items))
		for i, item := range req.Items {
			items[i] = item.ToModel(id, user)
		}

		fields[model.FieldTotalAmount] = model.TotalAmountOf(items)
	}

	changeText := req.ChangeNote
	if changeText == constant.Empty {
		changeText = changeSummary(fields)
	}

	if err = s.repo.UpdateWithItems(ctx, fields, id, items, replaceItems, s.newRevision(id, user, changeText)); err != nil {
		if failure.HasKind(err, failure.KindDuplicateChalan) && req.BookingID != constant.Empty {
			return s.duplicateWithRef(ctx, req.BookingID)
		}

		log.Error().Err(err).Msg("failed to update chalan")

		return maskNumberingRace(err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateChalan(c, id)

		s.publisher.PublishChalan(c, events.ChalanEvent{
			Type:         events.TypeChalanUpdated,
			ChalanID:     chalan.ID,
			ChalanNumber: chalan.ChalanNumber,
			ProjectID:    chalan.ProjectID,
			BookingID:    chalan.Booking(),
			OccurredAt:   s.clock.Now(),
		})
	}()

	return nil
}

// Cancel freezes the chalan. The flip is recorded in the revision ledger,
// and every later edit, cancel, or revision attempt is rejected.
func (s *serviceImpl) Cancel(ctx context.Context, req dto.CancelChalanRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	if strings.TrimSpace(req.Reason) == constant.Empty {
		return failure.BadRequestFromString("cancellation reason is required") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	chalan, err := s.getChalan(ctx, id)
	if err != nil {
		return err
	}

	if chalan.IsCancelled {
		return failure.AlreadyCancelled(model.EntityName) //nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldIsCancelled:   true,
		model.FieldCancelReason:  req.Reason,
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: user,
	}

	revision := s.newRevision(id, user, "cancelled: "+req.Reason)

	if err = s.repo.UpdateWithItems(ctx, fields, id, nil, false, revision); err != nil {
		log.Error().Err(err).Msg("failed to cancel chalan")

		return maskNumberingRace(err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateChalan(c, id)

		s.publisher.PublishChalan(c, events.ChalanEvent{
			Type:         events.TypeChalanCancelled,
			ChalanID:     chalan.ID,
			ChalanNumber: chalan.ChalanNumber,
			ProjectID:    chalan.ProjectID,
			BookingID:    chalan.Booking(),
			Reason:       req.Reason,
			OccurredAt:   s.clock.Now(),
		})
	}()

	return nil
}

func (s *serviceImpl) GetItems(ctx context.Context, id string) (res dto.GetChalanItemsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetItems")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheItemsChalan, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	if _, err = s.getChalan(ctx, id); err != nil {
		return res, err
	}

	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get chalan items")

		return res, fmt.Errorf("failed to get chalan items: %w", err)
	}

	res.FromModels(items)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save chalan items to cache")
		}
	}()

	return res, nil
}

// AddRevision appends a standalone ledger entry, used when a change worth
// recording happens outside a field edit. A cancelled chalan rejects further
// revisions.
func (s *serviceImpl) AddRevision(ctx context.Context, req dto.CreateRevisionRequest, id string) (res dto.ChalanRevisionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddRevision")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	chalan, err := s.getChalan(ctx, id)
	if err != nil {
		return res, err
	}

	if chalan.IsCancelled {
		return res, failure.ImmutableRecord(model.EntityName) //nolint:wrapcheck
	}

	revision := s.newRevision(id, user, req.ChangeText)

	revision.RevisionNumber, err = s.repo.AppendRevision(ctx, revision)
	if err != nil {
		log.Error().Err(err).Msg("failed to append chalan revision")

		return res, maskNumberingRace(err)
	}

	res.FromModel(revision)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheRevisionsChalan, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete chalan revisions from cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetRevisions(ctx context.Context, id string) (res dto.GetChalanRevisionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRevisions")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheRevisionsChalan, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	if _, err = s.getChalan(ctx, id); err != nil {
		return res, err
	}

	revisions, err := s.repo.ListRevisions(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get chalan revisions")

		return res, fmt.Errorf("failed to get chalan revisions: %w", err)
	}

	res.FromModels(revisions)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save chalan revisions to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) getChalan(ctx context.Context, id string) (model.Chalan, error) {
	chalan, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get chalan")

		return chalan, fmt.Errorf("failed to get chalan: %w", err)
	}

	if chalan.ID == constant.Empty {
		return chalan, failure.NotFound("chalan not found") //nolint:wrapcheck
	}

	return chalan, nil
}

// checkBookingFree enforces the one-chalan-per-booking rule: the booking
// must exist and no live chalan may already reference it.
func (s *serviceImpl) checkBookingFree(ctx context.Context, bookingID string) error {
	bookingExists, err := s.bookingRepo.Exist(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !bookingExists {
		return failure.BadRequestFromString("booking does not exist") //nolint:wrapcheck
	}

	existing, err := s.repo.FindByBooking(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to check for existing chalan: %w", err)
	}

	if existing.ID != constant.Empty {
		return failure.DuplicateChalanForBooking(existing.ID) //nolint:wrapcheck
	}

	return nil
}

// maskNumberingRace converts a numbering collision that survived every retry
// into a retryable rejection. The collision is an internal allocation detail
// and never reaches the caller as such.
func maskNumberingRace(err error) error {
	if failure.HasKind(err, failure.KindNumberingRace) {
		return failure.Unavailable("temporarily unable to record the chalan change, please retry") //nolint:wrapcheck
	}

	return err
}

// duplicateWithRef reloads the winning chalan after a lost booking-reference
// race so the rejection carries its id.
func (s *serviceImpl) duplicateWithRef(ctx context.Context, bookingID string) error {
	existing, err := s.repo.FindByBooking(ctx, bookingID)
	if err == nil && existing.ID != constant.Empty {
		return failure.DuplicateChalanForBooking(existing.ID) //nolint:wrapcheck
	}

	return failure.DuplicateChalanForBooking("") //nolint:wrapcheck
}

func (s *serviceImpl) newRevision(chalanID, user, changeText string) model.ChalanRevision {
	var userID *string
	if user != constant.Empty {
		userID = &user
	}

	return model.ChalanRevision{
		ID:         uuid.NewString(),
		ChalanID:   chalanID,
		ChangeText: changeText,
		UserID:     userID,
		CreatedAt:  s.clock.Now(),
	}
}

func (s *serviceImpl) invalidateChalan(ctx context.Context, id string) {
	for _, key := range []string{cacheGetChalan, cacheItemsChalan, cacheRevisionsChalan} {
		if err := s.cache.Delete(ctx, shared.BuildCacheKey(key, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete chalan from cache")
		}
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllChalan)
	shared.InvalidateCaches(ctx, s.cache, cacheCountChalan)
}

func changeSummary(fields map[string]any) string {
	keys := make([]string, 0, len(fields))

	for key := range fields {
		if key == constant.FieldModifiedAt || key == constant.FieldModifiedBy {
			continue
		}

		keys = append(keys, key)
	}

	sort.Strings(keys)

	return "updated: " + strings.Join(keys, ", ")
}
