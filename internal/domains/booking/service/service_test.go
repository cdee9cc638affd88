package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"voyage/config"
	mailerMocks "voyage/infras/mailer/mocks"
	"voyage/infras/metrics"
	"voyage/infras/otel/mocks"
	bookingMocks "voyage/internal/domains/booking/mocks"
	"voyage/internal/domains/booking/model"
	"voyage/internal/domains/booking/model/dto"
	"voyage/internal/domains/booking/service"
	placeMocks "voyage/internal/domains/place/mocks"
	placeModel "voyage/internal/domains/place/model"
	cacheMocks "voyage/shared/cache/mocks"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	"voyage/shared/failure"
)

type fixture struct {
	repo    *bookingMocks.MockBooking
	places  *placeMocks.MockPlace
	mailer  *mailerMocks.MockMailer
	service service.Booking
	ctx     context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := &fixture{
		repo:   bookingMocks.NewMockBooking(ctrl),
		places: placeMocks.NewMockPlace(ctrl),
		mailer: mailerMocks.NewMockMailer(ctrl),
		ctx:    context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1"),
	}

	f.service = service.New(f.repo, f.places, f.mailer, metrics.New(), cfg, mockCache, mocks.NewOtel())

	t.Cleanup(func() {
		// cache writes happen in goroutines
		time.Sleep(10 * time.Millisecond)
	})

	return f
}

const (
	placeID      = "5b3f6c1e-8d2a-4f7b-9c1d-2e4a6b8c0d11"
	otherPlaceID = "9a1c2d3e-4f5a-4b6c-8d7e-0f1a2b3c4d22"
	bookingID    = "c7e9a1b3-5d6f-4a8b-9c0d-1e2f3a4b5c33"
	missingID    = "1f0e4c52-7b1a-4d0e-9a53-6c2b8f3e7d10"
)

var bali = placeModel.Place{ID: placeID, Title: "Bali", Subtitle: "Five days in Ubud", Price: 1200}

func TestBookingService_Create(t *testing.T) {
	t.Run("unknown place lists valid ids", func(t *testing.T) {
		f := newFixture(t)

		f.places.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(placeModel.Place{}, nil)
		f.places.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]placeModel.Place{{ID: placeID}, {ID: otherPlaceID}}, nil)

		_, err := f.service.Create(f.ctx, dto.CreateBookingRequest{PlaceID: missingID, ArrivalDate: "2026-12-01"})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

		details := failure.GetDetails(err)
		assert.Equal(t, []string{placeID, otherPlaceID}, details["valid_place_ids"])
		assert.Contains(t, details, "place_id")
	})

	t.Run("integer place id lists valid ids without querying it", func(t *testing.T) {
		f := newFixture(t)

		f.places.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]placeModel.Place{{ID: placeID}}, nil)

		_, err := f.service.Create(f.ctx, dto.CreateBookingRequest{PlaceID: "42", ArrivalDate: "2026-12-01"})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, []string{placeID}, failure.GetDetails(err)["valid_place_ids"])
	})

	t.Run("string encoded child ages and place snapshot", func(t *testing.T) {
		f := newFixture(t)

		req := dto.CreateBookingRequest{}
		payload := `{"place_id":"5b3f6c1e-8d2a-4f7b-9c1d-2e4a6b8c0d11","full_name":"Ana","email":"ana@example.com","phone":"123",
			"arrival_date":"2026-12-01","adults":2,"children":2,"children_ages":"[5,7]"}`
		require.NoError(t, json.Unmarshal([]byte(payload), &req))

		f.places.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(bali, nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				assert.Equal(t, pq.Int64Array{5, 7}, booking.ChildrenAges)
				assert.InDelta(t, 1200, booking.Price, 0.001)
				assert.Equal(t, "Five days in Ubud", booking.PackageTitle)
				assert.Equal(t, model.StatusPending, booking.Status)
				require.NotNil(t, booking.UserID)
				assert.Equal(t, "user-1", *booking.UserID)
				assert.Equal(t, "2026-12-01", booking.ArrivalDate.Format(model.DateFormat))

				return nil
			})

		id, err := f.service.Create(f.ctx, req)

		require.NoError(t, err)
		assert.NotEmpty(t, id)
	})

	t.Run("explicit price wins and guests stay anonymous", func(t *testing.T) {
		f := newFixture(t)
		price := 999.0

		f.places.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(bali, nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				assert.InDelta(t, 999, booking.Price, 0.001)
				assert.Nil(t, booking.UserID)
				assert.Equal(t, pq.Int64Array{}, booking.ChildrenAges)

				return nil
			})

		_, err := f.service.Create(context.Background(), dto.CreateBookingRequest{
			PlaceID: placeID, ArrivalDate: "2026-12-01", Price: &price, Adults: 1,
		})

		require.NoError(t, err)
	})

	t.Run("insert failure", func(t *testing.T) {
		f := newFixture(t)

		f.places.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(bali, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := f.service.Create(f.ctx, dto.CreateBookingRequest{PlaceID: placeID, ArrivalDate: "2026-12-01"})

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestBookingService_UpdateApproval(t *testing.T) {
	approved := model.StatusApproved
	pending := model.Booking{
		ID:           bookingID,
		PlaceID:      placeID,
		FullName:     "Ana",
		Email:        "ana@example.com",
		ArrivalDate:  time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		Price:        1200,
		PackageTitle: "Five days in Ubud",
		Adults:       2,
		Children:     1,
		ChildrenAges: pq.Int64Array{6},
		Status:       model.StatusPending,
	}
	saved := pending
	saved.Status = model.StatusApproved

	t.Run("notification failure keeps the approval", func(t *testing.T) {
		f := newFixture(t)

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(pending, nil),
			f.repo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, model.StatusApproved, fields[model.FieldStatus])

					return nil
				}),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(saved, nil),
		)
		f.places.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(bali, nil)
		f.mailer.EXPECT().
			Send(gomock.Any(), "ana@example.com", gomock.Any(), gomock.Any()).
			Return(errors.New("smtp unreachable"))

		outcome, err := f.service.Update(f.ctx, dto.UpdateBookingRequest{Status: &approved}, bookingID)

		require.NoError(t, err)
		assert.Contains(t, outcome.NotificationError, "smtp unreachable")
		assert.Contains(t, outcome.Warnings()[0], "notification was not sent")
	})

	t.Run("approval email carries the booking", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(pending, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(saved, nil)
		f.places.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(bali, nil)
		f.mailer.EXPECT().
			Send(gomock.Any(), "ana@example.com", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, body string) error {
				for _, want := range []string{"Bali", "Five days in Ubud", "2026-12-01", "Adults: 2", "ages 6", "1200.00"} {
					assert.True(t, strings.Contains(body, want), "body misses %q", want)
				}

				return nil
			})

		outcome, err := f.service.Update(f.ctx, dto.UpdateBookingRequest{Status: &approved}, bookingID)

		require.NoError(t, err)
		assert.True(t, outcome.Empty())
	})

	t.Run("already approved does not resend", func(t *testing.T) {
		f := newFixture(t)
		notes := "late check-in"

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(saved, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		outcome, err := f.service.Update(f.ctx, dto.UpdateBookingRequest{Status: &approved, Notes: &notes}, bookingID)

		require.NoError(t, err)
		assert.True(t, outcome.Empty())
	})

	t.Run("child ages are normalized on update", func(t *testing.T) {
		f := newFixture(t)
		ages := dto.ChildAges{4, 9}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(pending, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, pq.Int64Array{4, 9}, fields[model.FieldChildrenAges])
				assert.NotContains(t, fields, model.FieldStatus)

				return nil
			})

		_, err := f.service.Update(f.ctx, dto.UpdateBookingRequest{ChildrenAges: &ages}, bookingID)

		require.NoError(t, err)
	})

	t.Run("empty update", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Update(f.ctx, dto.UpdateBookingRequest{}, bookingID)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.service.Update(f.ctx, dto.UpdateBookingRequest{Status: &approved}, missingID)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_GetAndDelete(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

	_, err := f.service.Get(f.ctx, missingID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{ID: bookingID, ChildrenAges: nil}, nil)

	res, err := f.service.Get(f.ctx, bookingID)
	require.NoError(t, err)
	assert.Equal(t, []int64{}, res.ChildrenAges)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	err = f.service.Delete(f.ctx, missingID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, f.service.Delete(f.ctx, bookingID))
}

func TestBookingService_GetAll(t *testing.T) {
	f := newFixture(t)

	params := gDto.QueryParams{Page: 1, Limit: 10, SortBy: model.FieldArrivalDate, SortDir: gDto.SortDirAsc}

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), params, gomock.Any(), gomock.Any()).
		Return([]model.Booking{{ID: bookingID}}, nil)

	res, err := f.service.GetAll(f.ctx, params, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 11, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Bookings, 1)
}

func TestBookingService_MalformedID(t *testing.T) {
	f := newFixture(t)
	approved := model.StatusApproved

	_, err := f.service.Get(f.ctx, "42")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	_, err = f.service.Update(f.ctx, dto.UpdateBookingRequest{Status: &approved}, "42")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	err = f.service.Delete(f.ctx, "not-a-uuid")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
