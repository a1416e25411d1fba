package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"slate/config"
	"slate/infras/otel/mocks"
	bookingMocks "slate/internal/domains/booking/mocks"
	"slate/internal/domains/booking/model"
	"slate/internal/domains/booking/model/dto"
	"slate/internal/domains/booking/service"
	editorMocks "slate/internal/domains/editor/mocks"
	editorModel "slate/internal/domains/editor/model"
	roomMocks "slate/internal/domains/room/mocks"
	roomModel "slate/internal/domains/room/model"
	eventMocks "slate/internal/events/mocks"
	cacheMocks "slate/shared/cache/mocks"
	"slate/shared/clock"
	"slate/shared/constant"
	"slate/shared/failure"
)

const (
	testUserID   = "9f4f3f62-1f2f-4a3e-9a59-111111111111"
	testRoomID   = "2f3a1f9e-5b91-4d7a-8c2a-222222222222"
	testEditorID = "7c1d2e3f-4a5b-6c7d-8e9f-333333333333"
)

type bookingServiceFixture struct {
	repo       *bookingMocks.MockBooking
	roomRepo   *roomMocks.MockRoom
	editorRepo *editorMocks.MockEditor
	cache      *cacheMocks.MockRedisCache
	publisher  *eventMocks.MockPublisher
	svc        service.Booking
}

func newBookingServiceFixture(t *testing.T, now time.Time) bookingServiceFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := bookingServiceFixture{
		repo:       bookingMocks.NewMockBooking(ctrl),
		roomRepo:   roomMocks.NewMockRoom(ctrl),
		editorRepo: editorMocks.NewMockEditor(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
		publisher:  eventMocks.NewMockPublisher(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Cache writes and event publishing are fired asynchronously on the
	// happy path; tests only assert the synchronous contract.
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.publisher.EXPECT().PublishBooking(gomock.Any(), gomock.Any()).AnyTimes()

	f.svc = service.New(f.repo, f.roomRepo, f.editorRepo, cfg, f.cache, clock.NewFixed(now), f.publisher, mocks.NewOtel())

	return f
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, testUserID)
}

func testRoom(ignore bool) map[string]roomModel.Room {
	return map[string]roomModel.Room{
		testRoomID: {ID: testRoomID, Name: "Edit 1", IgnoreConflict: ignore},
	}
}

func TestBookingService_Create(t *testing.T) {
	now := time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)

	t.Run("computes billable hours snapshot and logs creation", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		var created model.Booking
		var logged model.BookingLog

		f.roomRepo.EXPECT().GetByIDs(gomock.Any(), []string{testRoomID}).Return(testRoom(false), nil)
		f.repo.EXPECT().
			CreateWithLog(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking, logEntry model.BookingLog) error {
				created = booking
				logged = logEntry

				return nil
			})

		res, err := f.svc.Create(testContext(), dto.CreateBookingRequest{
			RoomID:      testRoomID,
			CustomerID:  testUserID,
			ProjectID:   testUserID,
			BookingDate: "2025-12-16",
			FromTime:    "09:00",
			ToTime:      "18:00",
			BreakHours:  1,
		})

		assert.NoError(t, err)
		assert.InDelta(t, 8.0, created.TotalHours, 0.001)
		assert.Equal(t, constant.BookingStatusPlanning, created.Status)
		assert.Equal(t, constant.LogActionCreated, logged.Action)
		assert.Equal(t, created.ID, logged.BookingID)
		assert.Equal(t, testUserID, *logged.UserID)
		assert.InDelta(t, 8.0, res.TotalHours, 0.001)
	})

	t.Run("overnight session wraps midnight once", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		var created model.Booking

		f.roomRepo.EXPECT().GetByIDs(gomock.Any(), []string{testRoomID}).Return(testRoom(false), nil)
		f.repo.EXPECT().
			CreateWithLog(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking, _ model.BookingLog) error {
				created = booking

				return nil
			})

		_, err := f.svc.Create(testContext(), dto.CreateBookingRequest{
			RoomID:      testRoomID,
			CustomerID:  testUserID,
			ProjectID:   testUserID,
			BookingDate: "2025-12-16",
			FromTime:    "22:00",
			ToTime:      "02:00",
			Status:      constant.BookingStatusConfirmed,
		})

		assert.NoError(t, err)
		assert.InDelta(t, 4.0, created.TotalHours, 0.001)
		assert.Equal(t, constant.BookingStatusConfirmed, created.Status)
	})

	t.Run("stamps the room's overlap exemption onto the row", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		var created model.Booking

		f.roomRepo.EXPECT().GetByIDs(gomock.Any(), []string{testRoomID}).Return(testRoom(true), nil)
		f.repo.EXPECT().
			CreateWithLog(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking, _ model.BookingLog) error {
				created = booking

				return nil
			})

		_, err := f.svc.Create(testContext(), dto.CreateBookingRequest{
			RoomID:      testRoomID,
			CustomerID:  testUserID,
			ProjectID:   testUserID,
			BookingDate: "2025-12-16",
			FromTime:    "09:00",
			ToTime:      "18:00",
		})

		assert.NoError(t, err)
		assert.True(t, created.ConflictExempt)
	})

	t.Run("rejects an unknown room", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		f.roomRepo.EXPECT().GetByIDs(gomock.Any(), []string{testRoomID}).
			Return(map[string]roomModel.Room{}, nil)

		_, err := f.svc.Create(testContext(), dto.CreateBookingRequest{
			RoomID:      testRoomID,
			CustomerID:  testUserID,
			ProjectID:   testUserID,
			BookingDate: "2025-12-16",
			FromTime:    "09:00",
			ToTime:      "18:00",
		})

		assert.Error(t, err)
		assert.True(t, failure.HasKind(err, failure.KindValidation))
	})

	t.Run("rejects malformed booking date", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		_, err := f.svc.Create(testContext(), dto.CreateBookingRequest{
			RoomID:      testRoomID,
			CustomerID:  testUserID,
			ProjectID:   testUserID,
			BookingDate: "16-12-2025",
			FromTime:    "09:00",
			ToTime:      "18:00",
		})

		assert.Error(t, err)
		assert.True(t, failure.HasKind(err, failure.KindValidation))
	})

	t.Run("propagates repository error", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		f.roomRepo.EXPECT().GetByIDs(gomock.Any(), []string{testRoomID}).Return(testRoom(false), nil)
		f.repo.EXPECT().
			CreateWithLog(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		_, err := f.svc.Create(testContext(), dto.CreateBookingRequest{
			RoomID:      testRoomID,
			CustomerID:  testUserID,
			ProjectID:   testUserID,
			BookingDate: "2025-12-16",
			FromTime:    "09:00",
			ToTime:      "18:00",
		})

		assert.Error(t, err)
	})
}

func activeBooking(id string, date time.Time) model.Booking {
	return model.Booking{
		ID:          id,
		RoomID:      testRoomID,
		CustomerID:  testUserID,
		ProjectID:   testUserID,
		BookingDate: date,
		FromTime:    "09:00",
		ToTime:      "14:00",
		Status:      constant.BookingStatusConfirmed,
	}
}

func TestBookingService_Update(t *testing.T) {
	now := time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC)

	t.Run("rejects empty patch", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		err := f.svc.Update(testContext(), dto.UpdateBookingRequest{}, "some-id")

		assert.Error(t, err)
		assert.True(t, failure.HasKind(err, failure.KindValidation))
	})

	t.Run("cancelled booking is immutable", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		cancelled := activeBooking("b-1", date)
		cancelled.Status = constant.BookingStatusCancelled

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)

		err := f.svc.Update(testContext(), dto.UpdateBookingRequest{Notes: "tweak"}, "b-1")

		assert.Error(t, err)
		assert.True(t, failure.HasKind(err, failure.KindImmutableRecord))
	})

	t.Run("recomputes hours from merged times", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		existing := activeBooking("b-1", date)
		existing.FromTime = "09:00"
		existing.ToTime = "18:00"
		existing.BreakHours = 1

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)

		var fields map[string]any
		var logged model.BookingLog

		f.repo.EXPECT().
			UpdateWithLog(gomock.Any(), gomock.Any(), "b-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, updated map[string]any, _ string, logEntry model.BookingLog) error {
				fields = updated
				logged = logEntry

				return nil
			})

		err := f.svc.Update(testContext(), dto.UpdateBookingRequest{
			ActualFromTime: "10:00",
			ActualToTime:   "17:00",
		}, "b-1")

		assert.NoError(t, err)
		// 10:00-17:00 minus the existing one hour break.
		assert.InDelta(t, 6.0, fields[model.FieldTotalHours], 0.001)
		assert.Equal(t, constant.LogActionUpdated, logged.Action)
	})

	t.Run("status-only patch keeps the stored snapshot", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeBooking("b-1", date), nil)

		var fields map[string]any

		f.repo.EXPECT().
			UpdateWithLog(gomock.Any(), gomock.Any(), "b-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, updated map[string]any, _ string, _ model.BookingLog) error {
				fields = updated

				return nil
			})

		err := f.svc.Update(testContext(), dto.UpdateBookingRequest{Status: constant.BookingStatusTentative}, "b-1")

		assert.NoError(t, err)
		assert.NotContains(t, fields, model.FieldTotalHours)
	})

	t.Run("moving to another room refreshes the overlap exemption", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		exemptRoom := "6a7b8c9d-0e1f-2a3b-4c5d-555555555555"

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeBooking("b-1", date), nil)
		f.roomRepo.EXPECT().GetByIDs(gomock.Any(), []string{exemptRoom}).
			Return(map[string]roomModel.Room{
				exemptRoom: {ID: exemptRoom, Name: "Lounge", IgnoreConflict: true},
			}, nil)

		var fields map[string]any

		f.repo.EXPECT().
			UpdateWithLog(gomock.Any(), gomock.Any(), "b-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, updated map[string]any, _ string, _ model.BookingLog) error {
				fields = updated

				return nil
			})

		err := f.svc.Update(testContext(), dto.UpdateBookingRequest{RoomID: exemptRoom}, "b-1")

		assert.NoError(t, err)
		assert.Equal(t, true, fields[model.FieldConflictExempt])
	})
}

func TestBookingService_Cancel(t *testing.T) {
	now := time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)

	t.Run("requires a reason", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		err := f.svc.Cancel(testContext(), dto.CancelBookingRequest{Reason: "  "}, "b-1")

		assert.Error(t, err)
		assert.True(t, failure.HasKind(err, failure.KindValidation))
	})

	t.Run("already cancelled surfaces as such", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		cancelled := activeBooking("b-1", time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC))
		cancelled.Status = constant.BookingStatusCancelled

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)

		err := f.svc.Cancel(testContext(), dto.CancelBookingRequest{Reason: "no longer needed"}, "b-1")

		assert.Error(t, err)
		assert.True(t, failure.HasKind(err, failure.KindAlreadyCancelled))
	})

	t.Run("past booking cannot be cancelled", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		past := activeBooking("b-1", time.Date(2025, 12, 14, 0, 0, 0, 0, time.UTC))

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(past, nil)

		err := f.svc.Cancel(testContext(), dto.CancelBookingRequest{Reason: "schedule change"}, "b-1")

		assert.Error(t, err)
		assert.True(t, failure.HasKind(err, failure.KindPastBookingImmutable))
	})

	t.Run("same-day booking can still be cancelled", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		today := activeBooking("b-1", time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC))

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(today, nil)

		var fields map[string]any
		var logged model.BookingLog

		f.repo.EXPECT().
			UpdateWithLog(gomock.Any(), gomock.Any(), "b-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, updated map[string]any, _ string, logEntry model.BookingLog) error {
				fields = updated
				logged = logEntry

				return nil
			})

		err := f.svc.Cancel(testContext(), dto.CancelBookingRequest{Reason: "client pushed the session"}, "b-1")

		assert.NoError(t, err)
		assert.Equal(t, constant.BookingStatusCancelled, fields[model.FieldStatus])
		assert.Equal(t, "client pushed the session", fields[model.FieldCancelReason])
		assert.Equal(t, now, fields[model.FieldCancelledAt])
		assert.Equal(t, constant.LogActionCancelled, logged.Action)
		assert.Contains(t, logged.Summary, "client pushed the session")
	})
}

func TestBookingService_DetectConflicts(t *testing.T) {
	now := time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC)

	otherEditor := "5e6f7a8b-9c0d-1e2f-3a4b-444444444444"

	room := func(ignore bool) map[string]roomModel.Room {
		return map[string]roomModel.Room{
			testRoomID: {ID: testRoomID, Name: "Edit 1", IgnoreConflict: ignore},
		}
	}

	candidate := func(id, editorID, from, to string) model.Booking {
		booking := activeBooking(id, date)
		booking.FromTime = from
		booking.ToTime = to

		if editorID != "" {
			booking.EditorID = &editorID
		}

		return booking
	}

	t.Run("overlapping same room raises a room conflict only", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		f.roomRepo.EXPECT().GetByIDs(gomock.Any(), []string{testRoomID}).Return(room(false), nil)
		f.editorRepo.EXPECT().GetByIDs(gomock.Any(), []string{testEditorID}).
			Return(map[string]editorModel.Editor{testEditorID: {ID: testEditorID, Name: "Asha"}}, nil)
		f.editorRepo.EXPECT().ListLeaves(gomock.Any(), testEditorID).Return(nil, nil)
		f.repo.EXPECT().ListActiveOnDate(gomock.Any(), date, "").
			Return([]model.Booking{candidate("b-2", otherEditor, "13:00", "18:00")}, nil)
		f.roomRepo.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Return(room(false), nil)
		f.editorRepo.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).
			Return(map[string]editorModel.Editor{otherEditor: {ID: otherEditor}}, nil)

		res, err := f.svc.DetectConflicts(testContext(), dto.ConflictCheckRequest{
			RoomID:      testRoomID,
			EditorID:    testEditorID,
			BookingDate: "2025-12-16",
			FromTime:    "09:00",
			ToTime:      "14:00",
		})

		assert.NoError(t, err)
		assert.True(t, res.HasConflict)
		assert.Len(t, res.Conflicts, 1)
		assert.Equal(t, dto.ConflictTypeRoom, res.Conflicts[0].Type)
		assert.Equal(t, "b-2", res.Conflicts[0].BookingID)
		assert.False(t, res.EditorOnLeave)
	})

	t.Run("touching endpoints do not conflict", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		f.roomRepo.EXPECT().GetByIDs(gomock.Any(), []string{testRoomID}).Return(room(false), nil)
		f.repo.EXPECT().ListActiveOnDate(gomock.Any(), date, "").
			Return([]model.Booking{candidate("b-2", "", "12:00", "15:00")}, nil)
		f.roomRepo.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Return(room(false), nil)
		f.editorRepo.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Return(map[string]editorModel.Editor{}, nil)

		res, err := f.svc.DetectConflicts(testContext(), dto.ConflictCheckRequest{
			RoomID:      testRoomID,
			BookingDate: "2025-12-16",
			FromTime:    "09:00",
			ToTime:      "12:00",
		})

		assert.NoError(t, err)
		assert.False(t, res.HasConflict)
		assert.Empty(t, res.Conflicts)
	})

	t.Run("room override silences the pair", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		f.roomRepo.EXPECT().GetByIDs(gomock.Any(), []string{testRoomID}).Return(room(true), nil)
		f.repo.EXPECT().ListActiveOnDate(gomock.Any(), date, "").
			Return([]model.Booking{candidate("b-2", "", "09:00", "18:00")}, nil)
		f.roomRepo.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Return(room(true), nil)
		f.editorRepo.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Return(map[string]editorModel.Editor{}, nil)

		res, err := f.svc.DetectConflicts(testContext(), dto.ConflictCheckRequest{
			RoomID:      testRoomID,
			BookingDate: "2025-12-16",
			FromTime:    "10:00",
			ToTime:      "12:00",
		})

		assert.NoError(t, err)
		assert.False(t, res.HasConflict)
	})

	t.Run("same editor overlapping raises an editor conflict", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		editors := map[string]editorModel.Editor{testEditorID: {ID: testEditorID, Name: "Asha"}}

		f.roomRepo.EXPECT().GetByIDs(gomock.Any(), []string{testRoomID}).Return(room(false), nil)
		f.editorRepo.EXPECT().GetByIDs(gomock.Any(), []string{testEditorID}).Return(editors, nil)
		f.editorRepo.EXPECT().ListLeaves(gomock.Any(), testEditorID).Return(nil, nil)

		other := candidate("b-2", testEditorID, "10:00", "12:00")
		other.RoomID = "a different room"

		f.repo.EXPECT().ListActiveOnDate(gomock.Any(), date, "").Return([]model.Booking{other}, nil)
		f.roomRepo.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).
			Return(map[string]roomModel.Room{other.RoomID: {ID: other.RoomID}}, nil)
		f.editorRepo.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Return(editors, nil)

		res, err := f.svc.DetectConflicts(testContext(), dto.ConflictCheckRequest{
			RoomID:      testRoomID,
			EditorID:    testEditorID,
			BookingDate: "2025-12-16",
			FromTime:    "09:00",
			ToTime:      "14:00",
		})

		assert.NoError(t, err)
		assert.Len(t, res.Conflicts, 1)
		assert.Equal(t, dto.ConflictTypeEditor, res.Conflicts[0].Type)
	})

	t.Run("editor on leave is informational", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		leaves := []editorModel.EditorLeave{{
			EditorID: testEditorID,
			FromDate: time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC),
			ToDate:   time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC),
			Reason:   "annual leave",
		}}

		f.roomRepo.EXPECT().GetByIDs(gomock.Any(), []string{testRoomID}).Return(room(false), nil)
		f.editorRepo.EXPECT().GetByIDs(gomock.Any(), []string{testEditorID}).
			Return(map[string]editorModel.Editor{testEditorID: {ID: testEditorID}}, nil)
		f.editorRepo.EXPECT().ListLeaves(gomock.Any(), testEditorID).Return(leaves, nil)
		f.repo.EXPECT().ListActiveOnDate(gomock.Any(), date, "").Return(nil, nil)
		f.roomRepo.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Return(map[string]roomModel.Room{}, nil)
		f.editorRepo.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Return(map[string]editorModel.Editor{}, nil)

		res, err := f.svc.DetectConflicts(testContext(), dto.ConflictCheckRequest{
			RoomID:      testRoomID,
			EditorID:    testEditorID,
			BookingDate: "2025-12-16",
			FromTime:    "09:00",
			ToTime:      "14:00",
		})

		assert.NoError(t, err)
		assert.False(t, res.HasConflict)
		assert.True(t, res.EditorOnLeave)
		assert.NotNil(t, res.LeaveInfo)
		assert.Equal(t, "annual leave", res.LeaveInfo.Reason)
		assert.Equal(t, "2025-12-10", res.LeaveInfo.FromDate)
	})
}

func TestBookingService_ResolveConflict(t *testing.T) {
	now := time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC)

	t.Run("cancels the loser with the fixed reason", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		keep := activeBooking("b-1", date)
		lose := activeBooking("b-2", date)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(keep, nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(lose, nil)

		var fields map[string]any

		f.repo.EXPECT().
			UpdateWithLog(gomock.Any(), gomock.Any(), "b-2", gomock.Any()).
			DoAndReturn(func(_ context.Context, updated map[string]any, _ string, _ model.BookingLog) error {
				fields = updated

				return nil
			})

		err := f.svc.ResolveConflict(testContext(), dto.ResolveConflictRequest{
			KeepBookingID:   "b-1",
			CancelBookingID: "b-2",
		})

		assert.NoError(t, err)
		assert.Equal(t, constant.ConflictResolutionReason, fields[model.FieldCancelReason])
		assert.Equal(t, constant.BookingStatusCancelled, fields[model.FieldStatus])
	})

	t.Run("resolving an already-cancelled loser surfaces the rejection", func(t *testing.T) {
		f := newBookingServiceFixture(t, now)

		keep := activeBooking("b-1", date)
		lose := activeBooking("b-2", date)
		lose.Status = constant.BookingStatusCancelled

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(keep, nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(lose, nil)

		err := f.svc.ResolveConflict(testContext(), dto.ResolveConflictRequest{
			KeepBookingID:   "b-1",
			CancelBookingID: "b-2",
		})

		assert.Error(t, err)
		assert.True(t, failure.HasKind(err, failure.KindAlreadyCancelled))
	})
}
