package item_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"voyage/infras/otel/mocks"
	"voyage/internal/domains/item/model/dto"
	serviceMocks "voyage/internal/domains/item/service/mocks"
	"voyage/internal/handlers/form/formtest"
	"voyage/internal/handlers/item"
	gDto "voyage/shared/dto"
	"voyage/shared/failure"
)

func newRouter(t *testing.T) (http.Handler, *serviceMocks.MockItem) {
	t.Helper()

	svc := serviceMocks.NewMockItem(gomock.NewController(t))
	handler := item.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func TestHandler_CreateItem(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req dto.CreateItemRequest) (string, error) {
			assert.Equal(t, "Backpack", req.Title)
			require.NotNil(t, req.Image)
			assert.Equal(t, "image/png", req.Image.ContentType)

			return "item-1", nil
		})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, formtest.Multipart(t, http.MethodPost, "/items",
		map[string]string{"title": " Backpack ", "description": "40L"},
		formtest.Part{Field: "image", Content: "png"}))

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "item-1")

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, formtest.Multipart(t, http.MethodPost, "/items", map[string]string{"description": "40L"}))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, formtest.Multipart(t, http.MethodPost, "/items",
		map[string]string{"title": "Backpack", "description": "40L"},
		formtest.Part{Field: "image", Content: "%PDF", ContentType: "application/pdf"}))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_UpdateItem(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		Update(gomock.Any(), gomock.Any(), "item-1").
		DoAndReturn(func(_ context.Context, req dto.UpdateItemRequest, _ string) (gDto.Outcome, error) {
			assert.True(t, req.Partial)
			assert.True(t, req.ClearImage)
			assert.Nil(t, req.Title)

			return gDto.Outcome{OrphanedMedia: []string{"items/old.png"}}, nil
		})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, formtest.Multipart(t, http.MethodPatch, "/items/item-1", map[string]string{"clear_image": "true"}))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "media could not be removed from storage: items/old.png")

	svc.EXPECT().
		Update(gomock.Any(), gomock.Any(), "item-1").
		DoAndReturn(func(_ context.Context, req dto.UpdateItemRequest, _ string) (gDto.Outcome, error) {
			assert.False(t, req.Partial)

			return gDto.Outcome{}, failure.Validation("description is required", map[string]any{"description": "description is required"})
		})

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, formtest.Multipart(t, http.MethodPut, "/items/item-1", map[string]string{"title": "Bag"}))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_GetAndDeleteItem(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup) (dto.GetItemsResponse, error) {
			assert.Equal(t, "title", params.SortBy)

			return dto.GetItemsResponse{Items: []dto.ItemResponse{{ID: "item-1", Title: "Tent"}}, TotalData: 1}, nil
		})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/items?sort_by=title&sort_dir=asc", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Tent")

	svc.EXPECT().Get(gomock.Any(), "missing").Return(dto.ItemResponse{}, failure.NotFound("item not found"))

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/items/missing", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	svc.EXPECT().Delete(gomock.Any(), "item-1").Return(gDto.Outcome{}, nil)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/items/item-1", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Item deleted successfully")
}
