package booking_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"voyage/infras/otel/mocks"
	"voyage/internal/domains/booking/model/dto"
	bookingMocks "voyage/internal/domains/booking/service/mocks"
	placeDto "voyage/internal/domains/place/model/dto"
	placeMocks "voyage/internal/domains/place/service/mocks"
	"voyage/internal/handlers/booking"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	"voyage/shared/failure"
)

func newRouter(t *testing.T) (http.Handler, *bookingMocks.MockBooking, *placeMocks.MockPlace) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := bookingMocks.NewMockBooking(ctrl)
	places := placeMocks.NewMockPlace(ctrl)

	handler := booking.New(svc, places, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return router, svc, places
}

func jsonRequest(method, target, body string) *http.Request {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")

	return request
}

const validBooking = `{"place_id":"place-1","full_name":"Ana","email":"ana@example.com","phone":"123",
	"arrival_date":"2026-12-01","adults":2,"children":2,"children_ages":"[5,7]"}`

func TestHandler_CreateBooking(t *testing.T) {
	router, svc, _ := newRouter(t)

	svc.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req dto.CreateBookingRequest) (string, error) {
			assert.Equal(t, dto.ChildAges{5, 7}, req.ChildrenAges)

			return "booking-1", nil
		})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, jsonRequest(http.MethodPost, "/bookings", validBooking))

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "booking-1")

	svc.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return("", failure.Validation("place does not exist", map[string]any{
			"place_id":        "place does not exist",
			"valid_place_ids": []string{"place-2"},
		}))

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, jsonRequest(http.MethodPost, "/bookings", validBooking))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "valid_place_ids")

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, jsonRequest(http.MethodPost, "/bookings", `{"place_id":"place-1","children_ages":"five"}`))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_UpdateBookingNotificationWarning(t *testing.T) {
	router, svc, _ := newRouter(t)

	svc.EXPECT().
		Update(gomock.Any(), gomock.Any(), "booking-1").
		Return(gDto.Outcome{NotificationError: "smtp unreachable"}, nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, jsonRequest(http.MethodPatch, "/bookings/booking-1", `{"status":"approved"}`))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "notification was not sent: smtp unreachable")

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, jsonRequest(http.MethodPatch, "/bookings/booking-1", `{"status":"confirmed"}`))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_BookingPlacesAndMine(t *testing.T) {
	router, svc, places := newRouter(t)

	places.EXPECT().
		ListForBooking(gomock.Any()).
		Return([]placeDto.BookingPlaceResponse{{ID: "place-1", Title: "Bali"}}, nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/bookings/places", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Bali")

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/bookings/mybookings", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	svc.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
			assert.Equal(t, "arrival_date", params.SortBy)
			assert.Equal(t, "ASC", params.SortDir)
			assert.Len(t, filter.Filters, 2)

			return dto.GetBookingsResponse{}, nil
		})

	request := httptest.NewRequest(http.MethodGet, "/bookings/mybookings?status=pending", nil)
	request = request.WithContext(context.WithValue(request.Context(), constant.ContextKeyUserID, "user-1"))

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_GetBookingsFilters(t *testing.T) {
	router, svc, _ := newRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/bookings?arrival_date=12/01/2026", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "arrival_date")

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/bookings?place_id=42", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "place_id")

	svc.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
			assert.Equal(t, []any{
				gDto.Filter{Field: "place_id", Operator: gDto.FilterOperatorEq, Value: "5b3f6c1e-8d2a-4f7b-9c1d-2e4a6b8c0d11", Table: "bookings"},
				gDto.Filter{Field: "arrival_date", Operator: gDto.FilterOperatorEq, Value: "2026-12-01", Table: "bookings"},
			}, filter.Filters)

			return dto.GetBookingsResponse{}, nil
		})

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/bookings?place_id=5b3f6c1e-8d2a-4f7b-9c1d-2e4a6b8c0d11&arrival_date=2026-12-01&user_id=someone", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}
