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
	"slate/internal/domains/booking/model"
	"slate/internal/domains/booking/model/dto"
	"slate/internal/domains/booking/repository"
	editorModel "slate/internal/domains/editor/model"
	editorRepo "slate/internal/domains/editor/repository"
	roomModel "slate/internal/domains/room/model"
	roomRepo "slate/internal/domains/room/repository"
	"slate/internal/events"
	"slate/shared"
	"slate/shared/cache"
	"slate/shared/clock"
	"slate/shared/constant"
	gDto "slate/shared/dto"
	"slate/shared/failure"
	"slate/shared/timeslot"
	"slate/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
	cacheLogsBooking   = "booking:logs"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Cancel(ctx context.Context, req dto.CancelBookingRequest, id string) error
	GetLogs(ctx context.Context, id string) (dto.GetBookingLogsResponse, error)
	DetectConflicts(ctx context.Context, req dto.ConflictCheckRequest) (dto.ConflictCheckResponse, error)
	ResolveConflict(ctx context.Context, req dto.ResolveConflictRequest) error
}

type serviceImpl struct {
	repo       repository.Booking
	roomRepo   roomRepo.Room
	editorRepo editorRepo.Editor
	cfg        *config.Config
	cache      cache.RedisCache
	clock      clock.Clock
	publisher  events.Publisher
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	editorRepo editorRepo.Editor,
	cfg *config.Config,
	cache cache.RedisCache,
	clock clock.Clock,
	publisher events.Publisher,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		roomRepo:   roomRepo,
		editorRepo: editorRepo,
		cfg:        cfg,
		cache:      cache,
		clock:      clock,
		publisher:  publisher,
		otel:       otel,
	}
}

// Create persists a booking together with its "Created" audit entry. The
// billable-hours snapshot is computed here, once, from the submitted times.
// Conflict checking is deliberately not part of Create: callers run
// DetectConflicts first and decide whether to block or proceed, so the same
// primitive serves both hard-blocking and advisory flows.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := req.ToModel(user)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid booking date: %q, expected YYYY-MM-DD", req.BookingDate)) //nolint:wrapcheck
	}

	// The room's ignore-conflict flag is stamped onto the row so the overlap
	// backstop constraint skips exempt rooms, matching the advisory check.
	booking.ConflictExempt, err = s.roomExemption(ctx, req.RoomID)
	if err != nil {
		return res, err
	}

	booking.TotalHours, err = timeslot.BillableHours(booking.FromTime, booking.ToTime, booking.ActualFromTime, booking.ActualToTime, booking.BreakHours)
	if err != nil {
		return res, err
	}

	summary := fmt.Sprintf("booking for %s %s-%s", req.BookingDate, booking.FromTime, booking.ToTime)

	if err = s.repo.CreateWithLog(ctx, booking, s.newLog(booking.ID, user, constant.LogActionCreated, summary)); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)

		s.publisher.PublishBooking(c, events.BookingEvent{
			Type:        events.TypeBookingCreated,
			BookingID:   booking.ID,
			RoomID:      booking.RoomID,
			EditorID:    booking.Editor(),
			ProjectID:   booking.ProjectID,
			BookingDate: req.BookingDate,
			Status:      booking.Status,
			OccurredAt:  s.clock.Now(),
		})
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Update patches a live booking and appends an "Updated" audit entry. A
// cancelled booking is immutable. When any time or break field changes, the
// billable-hours snapshot is recomputed from the merged state of the existing
// row and the incoming patch.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status == constant.BookingStatusCancelled {
		return failure.ImmutableRecord(model.EntityName) //nolint:wrapcheck
	}

	fields := shared.TransformFields(req, user)

	if req.RoomID != constant.Empty && req.RoomID != booking.RoomID {
		exempt, rErr := s.roomExemption(ctx, req.RoomID)
		if rErr != nil {
			return rErr
		}

		fields[model.FieldConflictExempt] = exempt
	}

	if req.TouchesBilling() {
		merged := mergeTimes(booking, req)

		total, err := timeslot.BillableHours(merged.FromTime, merged.ToTime, merged.ActualFromTime, merged.ActualToTime, merged.BreakHours)
		if err != nil {
			return err
		}

		fields[model.FieldTotalHours] = total
	}

	if err = s.repo.UpdateWithLog(ctx, fields, id, s.newLog(id, user, constant.LogActionUpdated, changeSummary(fields))); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateBooking(c, id)

		s.publisher.PublishBooking(c, events.BookingEvent{
			Type:        events.TypeBookingUpdated,
			BookingID:   booking.ID,
			RoomID:      booking.RoomID,
			EditorID:    booking.Editor(),
			ProjectID:   booking.ProjectID,
			BookingDate: timezone.Format(booking.BookingDate, constant.DateOnlyFormat),
			Status:      booking.Status,
			OccurredAt:  s.clock.Now(),
		})
	}()

	return nil
}

// Cancel moves a booking to its terminal state. Bookings on past dates are
// protected: they back completed billing and must stay exactly as billed.
func (s *serviceImpl) Cancel(ctx context.Context, req dto.CancelBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	if strings.TrimSpace(req.Reason) == constant.Empty {
		return failure.BadRequestFromString("cancellation reason is required") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status == constant.BookingStatusCancelled {
		return failure.AlreadyCancelled(model.EntityName) //nolint:wrapcheck
	}

	if booking.BookingDate.Before(s.clock.Today()) {
		return failure.PastBookingImmutable() //nolint:wrapcheck
	}

	now := s.clock.Now()
	fields := map[string]any{
		model.FieldStatus:        constant.BookingStatusCancelled,
		model.FieldCancelReason:  req.Reason,
		model.FieldCancelledAt:   now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	summary := "cancelled: " + req.Reason

	if err = s.repo.UpdateWithLog(ctx, fields, id, s.newLog(id, user, constant.LogActionCancelled, summary)); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateBooking(c, id)

		s.publisher.PublishBooking(c, events.BookingEvent{
			Type:        events.TypeBookingCancelled,
			BookingID:   booking.ID,
			RoomID:      booking.RoomID,
			EditorID:    booking.Editor(),
			ProjectID:   booking.ProjectID,
			BookingDate: timezone.Format(booking.BookingDate, constant.DateOnlyFormat),
			Status:      constant.BookingStatusCancelled,
			Reason:      req.Reason,
			OccurredAt:  now,
		})
	}()

	return nil
}

func (s *serviceImpl) GetLogs(ctx context.Context, id string) (res dto.GetBookingLogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetLogs")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheLogsBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	if _, err = s.getBooking(ctx, id); err != nil {
		return res, err
	}

	logs, err := s.repo.ListLogs(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking logs")

		return res, fmt.Errorf("failed to get booking logs: %w", err)
	}

	res.FromModels(logs)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking logs to cache")
		}
	}()

	return res, nil
}

// DetectConflicts scans same-day active bookings for overlaps with the
// proposal. The check is advisory: it reports what would collide, and the
// caller decides whether to block. An ignore-conflict flag on either side's
// resource silences the pair. An editor on leave is reported separately and
// never blocks.
func (s *serviceImpl) DetectConflicts(ctx context.Context, req dto.ConflictCheckRequest) (res dto.ConflictCheckResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DetectConflicts")
	defer scope.End()
	defer scope.TraceIfError(err)

	res.Conflicts = []dto.Conflict{}

	date, err := timezone.Parse(constant.DateOnlyFormat, req.BookingDate)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid booking date: %q, expected YYYY-MM-DD", req.BookingDate)) //nolint:wrapcheck
	}

	proposalFrom, err := timeslot.ParseClock(req.FromTime)
	if err != nil {
		return res, err
	}

	proposalTo, err := timeslot.ParseClock(req.ToTime)
	if err != nil {
		return res, err
	}

	rooms, err := s.roomRepo.GetByIDs(ctx, []string{req.RoomID})
	if err != nil {
		return res, fmt.Errorf("failed to get room: %w", err)
	}

	room, ok := rooms[req.RoomID]
	if !ok {
		return res, failure.BadRequestFromString("room does not exist") //nolint:wrapcheck
	}

	var proposalEditor editorModel.Editor

	if req.EditorID != constant.Empty {
		editors, err := s.editorRepo.GetByIDs(ctx, []string{req.EditorID})
		if err != nil {
			return res, fmt.Errorf("failed to get editor: %w", err)
		}

		proposalEditor, ok = editors[req.EditorID]
		if !ok {
			return res, failure.BadRequestFromString("editor does not exist") //nolint:wrapcheck
		}

		leaves, err := s.editorRepo.ListLeaves(ctx, req.EditorID)
		if err != nil {
			return res, fmt.Errorf("failed to get editor leaves: %w", err)
		}

		if leave, onLeave := editorModel.OnLeaveAt(leaves, date); onLeave {
			res.EditorOnLeave = true
			res.LeaveInfo = &dto.LeaveInfo{
				FromDate: timezone.Format(leave.FromDate, constant.DateOnlyFormat),
				ToDate:   timezone.Format(leave.ToDate, constant.DateOnlyFormat),
				Reason:   leave.Reason,
			}
		}
	}

	candidates, err := s.repo.ListActiveOnDate(ctx, date, req.ExcludeBookingID)
	if err != nil {
		return res, fmt.Errorf("failed to get bookings for date: %w", err)
	}

	candidateRooms, candidateEditors, err := s.loadCandidateResources(ctx, candidates)
	if err != nil {
		return res, err
	}

	for _, candidate := range candidates {
		candidateFrom, err := timeslot.ParseClock(candidate.FromTime)
		if err != nil {
			log.Warn().Str("booking_id", candidate.ID).Msg("skipping booking with malformed stored time")

			continue
		}

		candidateTo, err := timeslot.ParseClock(candidate.ToTime)
		if err != nil {
			log.Warn().Str("booking_id", candidate.ID).Msg("skipping booking with malformed stored time")

			continue
		}

		if !timeslot.Overlap(proposalFrom, proposalTo, candidateFrom, candidateTo) {
			continue
		}

		if candidate.RoomID == req.RoomID && !room.IgnoreConflict && !candidateRooms[candidate.RoomID].IgnoreConflict {
			res.Conflicts = append(res.Conflicts, dto.Conflict{
				Type:      dto.ConflictTypeRoom,
				BookingID: candidate.ID,
				Message:   fmt.Sprintf("room %s is already booked from %s to %s", room.Name, candidate.FromTime, candidate.ToTime),
			})
		}

		if req.EditorID != constant.Empty && candidate.Editor() == req.EditorID &&
			!proposalEditor.IgnoreConflict && !candidateEditors[candidate.Editor()].IgnoreConflict {
			res.Conflicts = append(res.Conflicts, dto.Conflict{
				Type:      dto.ConflictTypeEditor,
				BookingID: candidate.ID,
				Message:   fmt.Sprintf("editor %s is already assigned from %s to %s", proposalEditor.Name, candidate.FromTime, candidate.ToTime),
			})
		}
	}

	res.HasConflict = len(res.Conflicts) > 0

	return res, nil
}

// ResolveConflict settles a conflicting pair by cancelling the loser with a
// fixed reason. The kept booking is left untouched, not auto-confirmed; the
// workflow's only guaranteed effect is removing the loser from the active
// set. Cancelling an already-cancelled loser surfaces the rejection rather
// than silently succeeding.
func (s *serviceImpl) ResolveConflict(ctx context.Context, req dto.ResolveConflictRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResolveConflict")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.getBooking(ctx, req.KeepBookingID); err != nil {
		return err
	}

	return s.Cancel(ctx, dto.CancelBookingRequest{Reason: constant.ConflictResolutionReason}, req.CancelBookingID)
}

// roomExemption resolves the room's ignore-conflict flag for denormalizing
// onto booking rows.
func (s *serviceImpl) roomExemption(ctx context.Context, roomID string) (bool, error) {
	rooms, err := s.roomRepo.GetByIDs(ctx, []string{roomID})
	if err != nil {
		return false, fmt.Errorf("failed to get room: %w", err)
	}

	room, ok := rooms[roomID]
	if !ok {
		return false, failure.BadRequestFromString("room does not exist") //nolint:wrapcheck
	}

	return room.IgnoreConflict, nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) loadCandidateResources(ctx context.Context, candidates []model.Booking) (map[string]roomModel.Room, map[string]editorModel.Editor, error) {
	roomIDs := make([]string, 0, len(candidates))
	editorIDs := make([]string, 0, len(candidates))

	for _, candidate := range candidates {
		roomIDs = append(roomIDs, candidate.RoomID)

		if candidate.EditorID != nil {
			editorIDs = append(editorIDs, *candidate.EditorID)
		}
	}

	rooms, err := s.roomRepo.GetByIDs(ctx, roomIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get rooms for bookings: %w", err)
	}

	editors, err := s.editorRepo.GetByIDs(ctx, editorIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get editors for bookings: %w", err)
	}

	return rooms, editors, nil
}

func (s *serviceImpl) newLog(bookingID, user, action, summary string) model.BookingLog {
	var userID *string
	if user != constant.Empty {
		userID = &user
	}

	return model.BookingLog{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		UserID:    userID,
		Action:    action,
		Summary:   summary,
		CreatedAt: s.clock.Now(),
	}
}

func (s *serviceImpl) invalidateBooking(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking from cache")
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheLogsBooking, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking logs from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(ctx, s.cache, cacheCountBooking)
}

func mergeTimes(booking model.Booking, req dto.UpdateBookingRequest) model.Booking {
	if req.FromTime != constant.Empty {
		booking.FromTime = req.FromTime
	}

	if req.ToTime != constant.Empty {
		booking.ToTime = req.ToTime
	}

	if req.ActualFromTime != constant.Empty {
		booking.ActualFromTime = req.ActualFromTime
	}

	if req.ActualToTime != constant.Empty {
		booking.ActualToTime = req.ActualToTime
	}

	if req.BreakHours != nil {
		booking.BreakHours = *req.BreakHours
	}

	return booking
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
