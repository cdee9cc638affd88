package user_test

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
	"voyage/internal/domains/user/model/dto"
	serviceMocks "voyage/internal/domains/user/service/mocks"
	"voyage/internal/handlers/form/formtest"
	"voyage/internal/handlers/user"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	"voyage/shared/failure"
)

func newRouter(t *testing.T) (http.Handler, *serviceMocks.MockUser) {
	t.Helper()

	svc := serviceMocks.NewMockUser(gomock.NewController(t))
	handler := user.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func signedIn(request *http.Request, id string) *http.Request {
	return request.WithContext(context.WithValue(request.Context(), constant.ContextKeyUserID, id))
}

func TestHandler_CreateUser(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req dto.CreateUserRequest) (string, error) {
			assert.Equal(t, constant.RoleAdmin, req.Role)

			return "user-1", nil
		})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/users",
		strings.NewReader(`{"email":"desk@example.com","password":"long-enough","role":"admin","full_name":"Front Desk"}`)))

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "user-1")

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/users",
		strings.NewReader(`{"email":"desk@example.com","password":"long-enough","role":"owner","full_name":"Front Desk"}`)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_Profile(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Get(gomock.Any(), "user-1").Return(dto.UserResponse{ID: "user-1", FullName: "Guest"}, nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, signedIn(httptest.NewRequest(http.MethodGet, "/users/me", nil), "user-1"))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Guest")

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/users/me", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	svc.EXPECT().
		UpdateProfile(gomock.Any(), gomock.Any(), "user-1").
		DoAndReturn(func(_ context.Context, req dto.UpdateProfileRequest, _ string) (gDto.Outcome, error) {
			require.NotNil(t, req.Avatar)
			require.NotNil(t, req.FullName)
			assert.Equal(t, "New Name", *req.FullName)
			assert.Nil(t, req.Phone)

			return gDto.Outcome{OrphanedMedia: []string{"avatars/old.png"}}, nil
		})

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, signedIn(formtest.Multipart(t, http.MethodPatch, "/users/me",
		map[string]string{"full_name": "New Name"},
		formtest.Part{Field: "avatar", Content: "png"}), "user-1"))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "avatars/old.png")

	svc.EXPECT().
		UpdateProfile(gomock.Any(), gomock.Any(), "user-1").
		DoAndReturn(func(_ context.Context, req dto.UpdateProfileRequest, _ string) (gDto.Outcome, error) {
			assert.True(t, req.ClearAvatar)
			assert.Nil(t, req.Avatar)

			return gDto.Outcome{}, nil
		})

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, signedIn(formtest.Multipart(t, http.MethodPatch, "/users/me",
		map[string]string{"clear_avatar": "true"}), "user-1"))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Profile updated successfully")
}

func TestHandler_ManageUsers(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Update(gomock.Any(), gomock.Any(), "user-1").Return(failure.BadRequestFromString("update request cannot be empty"))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPatch, "/users/user-1", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(dto.GetUsersResponse{Users: []dto.UserResponse{{ID: "user-1"}}, TotalData: 1}, nil)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/users", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)

	svc.EXPECT().Delete(gomock.Any(), "user-1").Return(gDto.Outcome{}, nil)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/users/user-1", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "User deleted successfully")
}
