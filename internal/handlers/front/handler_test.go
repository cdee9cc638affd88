package front_test

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
	"voyage/internal/domains/front/model/dto"
	serviceMocks "voyage/internal/domains/front/service/mocks"
	"voyage/internal/handlers/form/formtest"
	"voyage/internal/handlers/front"
	gDto "voyage/shared/dto"
)

func TestHandler_Front(t *testing.T) {
	svc := serviceMocks.NewMockFront(gomock.NewController(t))
	handler := front.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	t.Run("create requires a logo", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, formtest.Multipart(t, http.MethodPost, "/front", nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("create", func(t *testing.T) {
		svc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.CreateFrontRequest) (string, error) {
				require.NotNil(t, req.CompanyLogo)
				assert.Equal(t, "company_logo.png", req.CompanyLogo.Name)

				return "front-1", nil
			})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, formtest.Multipart(t, http.MethodPost, "/front", nil,
			formtest.Part{Field: "company_logo", Content: "png"}))

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "front-1")
	})

	t.Run("replace reports an orphaned logo", func(t *testing.T) {
		svc.EXPECT().
			Update(gomock.Any(), gomock.Any(), "front-1").
			DoAndReturn(func(_ context.Context, req dto.UpdateFrontRequest, _ string) (gDto.Outcome, error) {
				assert.False(t, req.Partial)
				require.NotNil(t, req.CompanyLogo)

				return gDto.Outcome{OrphanedMedia: []string{"front/old.png"}}, nil
			})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, formtest.Multipart(t, http.MethodPut, "/front/front-1", nil,
			formtest.Part{Field: "company_logo", Content: "png"}))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "front/old.png")
	})

	t.Run("clear", func(t *testing.T) {
		svc.EXPECT().
			Update(gomock.Any(), gomock.Any(), "front-1").
			DoAndReturn(func(_ context.Context, req dto.UpdateFrontRequest, _ string) (gDto.Outcome, error) {
				assert.True(t, req.ClearCompanyLogo)

				return gDto.Outcome{}, nil
			})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, formtest.Multipart(t, http.MethodPatch, "/front/front-1", map[string]string{"clear_company_logo": "true"}))

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
