package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"slate/config"
	"slate/infras/otel/mocks"
	bookingMocks "slate/internal/domains/booking/mocks"
	chalanMocks "slate/internal/domains/chalan/mocks"
	"slate/internal/domains/chalan/model"
	"slate/internal/domains/chalan/model/dto"
	"slate/internal/domains/chalan/service"
	projectMocks "slate/internal/domains/project/mocks"
	eventMocks "slate/internal/events/mocks"
	cacheMocks "slate/shared/cache/mocks"
	"slate/shared/clock"
	"slate/shared/constant"
	"slate/shared/failure"
)

const (
	testUserID    = "9f4f3f62-1f2f-4a3e-9a59-111111111111"
	testProjectID = "2f3a1f9e-5b91-4d7a-8c2a-222222222222"
	testBookingID = "7c1d2e3f-4a5b-6c7d-8e9f-333333333333"
)

type chalanServiceFixture struct {
	repo        *chalanMocks.MockChalan
	projectRepo *projectMocks.MockProject
	bookingRepo *bookingMocks.MockBooking
	cache       *cacheMocks.MockRedisCache
	publisher   *eventMocks.MockPublisher
	svc         service.Chalan
}

func newChalanServiceFixture(t *testing.T) chalanServiceFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := chalanServiceFixture{
		repo:        chalanMocks.NewMockChalan(ctrl),
		projectRepo: projectMocks.NewMockProject(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
		publisher:   eventMocks.NewMockPublisher(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.App.ChalanNumberRetry = 3

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.publisher.EXPECT().PublishChalan(gomock.Any(), gomock.Any()).AnyTimes()

	now := time.Date(2025, 12, 16, 9, 0, 0, 0, time.UTC)
	f.svc = service.New(f.repo, f.projectRepo, f.bookingRepo, cfg, f.cache, clock.NewFixed(now), f.publisher, mocks.NewOtel())

	return f
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, testUserID)
}

func createRequest() dto.CreateChalanRequest {
	return dto.CreateChalanRequest{
		CustomerID: testUserID,
		ProjectID:  testProjectID,
		ChalanDate: "2025-12-16",
		Items: []dto.ChalanItemRequest{
			{Description: "online edit", Quantity: 8, Rate: 1500, Amount: 12000},
			{Description: "color pass", Quantity: 2, Rate: 2000, Amount: 4000},
		},
	}
}

func TestChalanService_Create(t *testing.T) {
	t.Run("mints the first number of the month", func(t *testing.T) {
		f := newChalanServiceFixture(t)

		f.projectRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().NumbersWithPrefix(gomock.Any(), "CH2512-").Return(nil, nil)

		var created model.Chalan
		var createdItems []model.ChalanItem

		f.repo.EXPECT().
			CreateWithItems(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, chalan model.Chalan, items []model.ChalanItem) error {
				created = chalan
				createdItems = items

				return nil
			})

		res, err := f.svc.Create(testContext(), createRequest())

		assert.NoError(t, err)
		assert.Equal(t, "CH2512-01", created.ChalanNumber)
		assert.InDelta(t, 16000, created.TotalAmount, 0.001)
		assert.Len(t, createdItems, 2)
		assert.Equal(t, created.ID, createdItems[0].ChalanID)
		assert.Equal(t, "CH2512-01", res.ChalanNumber)
	})

	t.Run("continues the month sequence", func(t *testing.T) {
		f := newChalanServiceFixture(t)

		f.projectRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().NumbersWithPrefix(gomock.Any(), "CH2512-").
			Return([]string{"CH2512-01", "CH2512-07", "CH2512-03"}, nil)

		var created model.Chalan

		f.repo.EXPECT().
			CreateWithItems(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, chalan model.Chalan, _ []model.ChalanItem) error {
				created = chalan

				return nil
			})

		_, err := f.svc.Create(testContext(), createRequest())

		assert.NoError(t, err)
		assert.Equal(t, "CH2512-08", created.ChalanNumber)
	})

	t.Run("recomputes the number after losing the allocation race", func(t *testing.T) {
		f := newChalanServiceFixture(t)

		f.projectRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		f.repo.EXPECT().NumbersWithPrefix(gomock.Any(), "CH2512-").Return([]string{"CH2512-01"}, nil)
		f.repo.EXPECT().CreateWithItems(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(failure.NumberingRace(model.EntityName))

		f.repo.EXPECT().NumbersWithPrefix(gomock.Any(), "CH2512-").
			Return([]string{"CH2512-01", "CH2512-02"}, nil)

		var created model.Chalan

		f.repo.EXPECT().
			CreateWithItems(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, chalan model.Chalan, _ []model.ChalanItem) error {
				created = chalan

				return nil
			})

		_, err := f.svc.Create(testContext(), createRequest())

		assert.NoError(t, err)
		assert.Equal(t, "CH2512-03", created.ChalanNumber)
	})

	t.Run("exhausted number retries surface as a retryable rejection", func(t *testing.T) {
		f := newChalanServiceFixture(t)

		f.projectRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().NumbersWithPrefix(gomock.Any(), "CH2512-").Return(nil, nil).Times(3)
		f.repo.EXPECT().CreateWithItems(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(failure.NumberingRace(model.EntityName)).Times(3)

		_, err := f.svc.Create(testContext(), createRequest())

		assert.Error(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
		assert.False(t, failure.HasKind(err, failure.KindNumberingRace))
	})

	t.Run("rejects a second chalan for the same booking", func(t *testing.T) {
		f := newChalanServiceFixture(t)

		f.projectRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().FindByBooking(gomock.Any(), testBookingID).
			Return(model.Chalan{ID: "existing-chalan", ChalanNumber: "CH2512-01"}, nil)

		req := createRequest()
		req.BookingID = testBookingID

		_, err := f.svc.Create(testContext(), req)

		assert.Error(t, err)
		assert.True(t, failure.HasKind(err, failure.KindDuplicateChalan))
		assert.Equal(t, "existing-chalan", failure.GetRef(err))
	})

	t.Run("rejects an unknown project", func(t *testing.T) {
		f := newChalanServiceFixture(t)

		f.projectRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Create(testContext(), createRequest())

		assert.Error(t, err)
		assert.True(t, failure.HasKind(err, failure.KindValidation))
	})

	t.Run("rejects a malformed chalan date", func(t *testing.T) {
		f := newChalanServiceFixture(t)

		req := createRequest()
		req.ChalanDate = "16/12/2025"

		_, err := f.svc.Create(testContext(), req)

		assert.Error(t, err)
		assert.True(t, failure.HasKind(err, failure.KindValidation))
	})
}

func liveChalan(id string) model.Chalan {
	return model.Chalan{
		ID:           id,
		ChalanNumber: "CH2512-01",
		CustomerID:   testUserID,
		ProjectID:    testProjectID,
		ChalanDate:   time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC),
		TotalAmount:  16000,
	}
}

func TestChalanService_Update(t *testing.T) {
	t.Run("cancelled chalan is read-only", func(t *testing.T) {
		f := newChalanServiceFixture(t)

		cancelled := liveChalan("c-1")
		cancelled.IsCancelled = true

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)

		err := f.svc.Update(testContext(), dto.UpdateChalanRequest{Notes: "tweak"}, "c-1")

		assert.Error(t, err)
		assert.True(t, failure.HasKind(err, failure.KindImmutableRecord))
	})

	t.Run("rejects an empty patch", func(t *testing.T) {
		f := newChalanServiceFixture(t)

		err := f.svc.Update(testContext(), dto.UpdateChalanRequest{}, "c-1")

		assert.Error(t, err)
		assert.True(t, failure.HasKind(err, failure.KindValidation))
	})

	t.Run("replaces items wholesale and recomputes the total", func(t *testing.T) {
		f := newChalanServiceFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(liveChalan("c-1"), nil)

		var fields map[string]any
		var items []model.ChalanItem
		var replaced bool
		var revision model.ChalanRevision

		f.repo.EXPECT().
			UpdateWithItems(gomock.Any(), gomock.Any(), "c-1", gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, updated map[string]any, _ string, newItems []model.ChalanItem, replaceItems bool, rev model.ChalanRevision) error {
				fields = updated
				items = newItems
				replaced = replaceItems
				revision = rev

				return nil
			})

		err := f.svc.Update(testContext(), dto.UpdateChalanRequest{
			Items: []dto.ChalanItemRequest{
				{Description: "conform", Quantity: 4, Rate: 1000, Amount: 4000},
			},
			ChangeNote: "dropped the color pass",
		}, "c-1")

		assert.NoError(t, err)
		assert.True(t, replaced)
		assert.Len(t, items, 1)
		assert.InDelta(t, 4000, fields[model.FieldTotalAmount], 0.001)
		assert.Equal(t, "dropped the color pass", revision.ChangeText)
		assert.Equal(t, testUserID, *revision.UserID)
	})

	t.Run("scalar patch leaves items alone", func(t *testing.T) {
		f := newChalanServiceFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(liveChalan("c-1"), nil)

		var replaced bool
		var revision model.ChalanRevision

		f.repo.EXPECT().
			UpdateWithItems(gomock.Any(), gomock.Any(), "c-1", gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ map[string]any, _ string, _ []model.ChalanItem, replaceItems bool, rev model.ChalanRevision) error {
				replaced = replaceItems
				revision = rev

				return nil
			})

		err := f.svc.Update(testContext(), dto.UpdateChalanRequest{Notes: "delivery note"}, "c-1")

		assert.NoError(t, err)
		assert.False(t, replaced)
		assert.Contains(t, revision.ChangeText, "notes")
	})

	t.Run("change-note-only patch records a manual revision", func(t *testing.T) {
		f := newChalanServiceFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(liveChalan("c-1"), nil)

		var replaced bool
		var revision model.ChalanRevision

		f.repo.EXPECT().
			UpdateWithItems(gomock.Any(), gomock.Any(), "c-1", gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ map[string]any, _ string, _ []model.ChalanItem, replaceItems bool, rev model.ChalanRevision) error {
				replaced = replaceItems
				revision = rev

				return nil
			})

		err := f.svc.Update(testContext(), dto.UpdateChalanRequest{ChangeNote: "client approved the cut"}, "c-1")

		assert.NoError(t, err)
		assert.False(t, replaced)
		assert.Equal(t, "client approved the cut", revision.ChangeText)
	})

	t.Run("re-pointing to a taken booking is rejected with the winner's id", func(t *testing.T) {
		f := newChalanServiceFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(liveChalan("c-1"), nil)
		f.bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().FindByBooking(gomock.Any(), testBookingID).
			Return(model.Chalan{ID: "c-2"}, nil)

		err := f.svc.Update(testContext(), dto.UpdateChalanRequest{BookingID: testBookingID}, "c-1")

		assert.Error(t, err)
		assert.True(t, failure.HasKind(err, failure.KindDuplicateChalan))
		assert.Equal(t, "c-2", failure.GetRef(err))
	})
}

func TestChalanService_Cancel(t *testing.T) {
	t.Run("requires a reason", func(t *testing.T) {
		f := newChalanServiceFixture(t)

		err := f.svc.Cancel(testContext(), dto.CancelChalanRequest{Reason: " "}, "c-1")

		assert.Error(t, err)
		assert.True(t, failure.HasKind(err, failure.KindValidation))
	})

	t.Run("cancelling twice surfaces the rejection", func(t *testing.T) {
		f := newChalanServiceFixture(t)

		cancelled := liveChalan("c-1")
		cancelled.IsCancelled = true

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)

		err := f.svc.Cancel(testContext(), dto.CancelChalanRequest{Reason: "billing error"}, "c-1")

		assert.Error(t, err)
		assert.True(t, failure.HasKind(err, failure.KindAlreadyCancelled))
	})

	t.Run("freezes the chalan and records the flip in the ledger", func(t *testing.T) {
		f := newChalanServiceFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(liveChalan("c-1"), nil)

		var fields map[string]any
		var revision model.ChalanRevision

		f.repo.EXPECT().
			UpdateWithItems(gomock.Any(), gomock.Any(), "c-1", gomock.Nil(), false, gomock.Any()).
			DoAndReturn(func(_ context.Context, updated map[string]any, _ string, _ []model.ChalanItem, _ bool, rev model.ChalanRevision) error {
				fields = updated
				revision = rev

				return nil
			})

		err := f.svc.Cancel(testContext(), dto.CancelChalanRequest{Reason: "billing error"}, "c-1")

		assert.NoError(t, err)
		assert.Equal(t, true, fields[model.FieldIsCancelled])
		assert.Equal(t, "billing error", fields[model.FieldCancelReason])
		assert.Contains(t, revision.ChangeText, "billing error")
	})
}

func TestChalanService_AddRevision(t *testing.T) {
	t.Run("cancelled chalan rejects further revisions", func(t *testing.T) {
		f := newChalanServiceFixture(t)

		cancelled := liveChalan("c-1")
		cancelled.IsCancelled = true

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)

		_, err := f.svc.AddRevision(testContext(), dto.CreateRevisionRequest{ChangeText: "status toggled"}, "c-1")

		assert.Error(t, err)
		assert.True(t, failure.HasKind(err, failure.KindImmutableRecord))
	})

	t.Run("returns the appended revision number", func(t *testing.T) {
		f := newChalanServiceFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(liveChalan("c-1"), nil)
		f.repo.EXPECT().
			AppendRevision(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, revision model.ChalanRevision) (int, error) {
				assert.Equal(t, "c-1", revision.ChalanID)
				assert.Equal(t, "status toggled", revision.ChangeText)

				return 4, nil
			})

		res, err := f.svc.AddRevision(testContext(), dto.CreateRevisionRequest{ChangeText: "status toggled"}, "c-1")

		assert.NoError(t, err)
		assert.Equal(t, 4, res.RevisionNumber)
	})

	t.Run("propagates a repository error", func(t *testing.T) {
		f := newChalanServiceFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(liveChalan("c-1"), nil)
		f.repo.EXPECT().AppendRevision(gomock.Any(), gomock.Any()).
			Return(0, errors.New("revision allocation failed"))

		_, err := f.svc.AddRevision(testContext(), dto.CreateRevisionRequest{ChangeText: "late change"}, "c-1")

		assert.Error(t, err)
	})

	t.Run("exhausted numbering retries surface as a retryable rejection", func(t *testing.T) {
		f := newChalanServiceFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(liveChalan("c-1"), nil)
		f.repo.EXPECT().AppendRevision(gomock.Any(), gomock.Any()).
			Return(0, failure.NumberingRace(model.RevisionEntityName))

		_, err := f.svc.AddRevision(testContext(), dto.CreateRevisionRequest{ChangeText: "late change"}, "c-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
		assert.False(t, failure.HasKind(err, failure.KindNumberingRace))
	})
}
