package contact_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"voyage/infras/otel/mocks"
	"voyage/internal/domains/contact/model/dto"
	serviceMocks "voyage/internal/domains/contact/service/mocks"
	"voyage/internal/handlers/contact"
	"voyage/shared/failure"
)

func TestHandler_Contact(t *testing.T) {
	svc := serviceMocks.NewMockContact(gomock.NewController(t))
	handler := contact.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	tests := []struct {
		name       string
		request    *http.Request
		setupMock  func()
		wantStatus int
		wantBody   string
	}{
		{
			name:    "upsert",
			request: httptest.NewRequest(http.MethodPut, "/contact", strings.NewReader(`{"phone":"0771234567","whatsapp_link":"https://wa.me/94771234567"}`)),
			setupMock: func() {
				svc.EXPECT().
					Upsert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req dto.UpsertContactRequest) (dto.ContactResponse, error) {
						require.NotNil(t, req.Phone)
						assert.Nil(t, req.InstagramLink)

						return dto.ContactResponse{ID: "canonical", Phone: *req.Phone}, nil
					})
			},
			wantStatus: http.StatusOK,
			wantBody:   "0771234567",
		},
		{
			name:       "invalid link",
			request:    httptest.NewRequest(http.MethodPut, "/contact", strings.NewReader(`{"instagram_link":"not a url"}`)),
			setupMock:  func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:    "no contact yet",
			request: httptest.NewRequest(http.MethodGet, "/contact", nil),
			setupMock: func() {
				svc.EXPECT().Get(gomock.Any()).Return(dto.ContactResponse{}, failure.NotFound("contact not found"))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:    "social links on an empty table",
			request: httptest.NewRequest(http.MethodGet, "/social-links", nil),
			setupMock: func() {
				svc.EXPECT().SocialLinks(gomock.Any()).Return(dto.SocialLinksResponse{}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"instagram_link":""`,
		},
		{
			name:    "delete",
			request: httptest.NewRequest(http.MethodDelete, "/contact", nil),
			setupMock: func() {
				svc.EXPECT().Delete(gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "Contact deleted successfully",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, tt.request)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantBody != "" {
				assert.Contains(t, recorder.Body.String(), tt.wantBody)
			}
		})
	}
}
