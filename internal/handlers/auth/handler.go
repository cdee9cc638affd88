package auth

import (
	"context"
	"net/http"

	"voyage/infras/otel"
	"voyage/internal/domains/auth/model/dto"
	"voyage/internal/domains/auth/service"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	"voyage/shared/failure"
	"voyage/shared/validator"
	"voyage/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Put("/password", handler.ChangePassword)
	})
}

// run decodes a JSON body into Req and hands it to action. On failure the
// error response is already written and ok is false.
func run[Req, Res any](handler *Handler, w http.ResponseWriter, r *http.Request, op string,
	action func(ctx context.Context, req Req) (Res, error),
) (res Res, ok bool) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+op)
	defer scope.End()

	var req Req
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("op", op).Msg("invalid auth request")

		response.WithError(w, err)

		return res, false
	}

	res, err := action(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("op", op).Msg("auth request failed")

		response.WithError(w, err)

		return res, false
	}

	scope.AddEvent(op + " succeeded")

	return res, true
}

// Register creates a guest account.
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Data[gDto.Created]
// @Failure 409 {object} response.Error
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if id, ok := run(handler, w, r, "Register", handler.service.Register); ok {
		response.WithJSON(w, http.StatusCreated, gDto.Created{ID: id})
	}
}

// Login exchanges credentials for an access and refresh token pair.
// @Summary Login a user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.LoginResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if res, ok := run(handler, w, r, "Login", handler.service.Login); ok {
		response.WithJSON(w, http.StatusOK, res)
	}
}

// @Summary Refresh user token
// @Description Rotates both tokens; the refresh token sent is no longer needed.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Data[dto.LoginResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	if res, ok := run(handler, w, r, "RefreshToken", handler.service.RefreshToken); ok {
		response.WithJSON(w, http.StatusOK, res)
	}
}

// ChangePassword replaces the signed-in user's password.
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/password [put]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		response.WithError(w, failure.Unauthorized("missing user in context"))

		return
	}

	changePassword := func(ctx context.Context, req dto.ChangePasswordRequest) (struct{}, error) {
		return struct{}{}, handler.service.ChangePassword(ctx, req, userID)
	}

	if _, ok := run(handler, w, r, "ChangePassword", changePassword); ok {
		response.WithMessage(w, http.StatusOK, "Password changed successfully")
	}
}
