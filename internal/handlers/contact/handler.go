package contact

import (
	"net/http"

	"voyage/infras/otel"
	"voyage/internal/domains/contact/model/dto"
	"voyage/internal/domains/contact/service"
	"voyage/shared/constant"
	"voyage/shared/validator"
	"voyage/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Contact
	otel    otel.Otel
}

func New(service service.Contact, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/contact", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetContact)
		routerGroup.Put("/", handler.UpsertContact)
		routerGroup.Delete("/", handler.DeleteContact)
	})

	router.Get("/social-links", handler.GetSocialLinks)
}

// UpsertContact creates the contact record or overwrites the fields sent.
// @Summary Save contact details
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body dto.UpsertContactRequest true "Contact details"
// @Success 200 {object} response.Data[dto.ContactResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contact [put]
// @Security BearerAuth
func (handler *Handler) UpsertContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertContact")
	defer scope.End()

	req := dto.UpsertContactRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	contact, err := handler.service.Upsert(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save contact")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Contact saved by user " + user)

	response.WithJSON(w, http.StatusOK, contact)
}

// GetContact retrieves the contact record.
// @Summary Get contact details
// @Tags Contact
// @Produce json
// @Success 200 {object} response.Data[dto.ContactResponse]
// @Failure 404 {object} response.Error
// @Router /v1/contact [get]
func (handler *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContact")
	defer scope.End()

	contact, err := handler.service.Get(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, contact)
}

// @Summary Delete contact details
// @Tags Contact
// @Produce json
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/contact [delete]
// @Security BearerAuth
func (handler *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteContact")
	defer scope.End()

	if err := handler.service.Delete(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete contact")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Contact deleted successfully")
}

// GetSocialLinks returns the three social links, empty when nothing is saved yet.
// @Summary Get social links
// @Tags Contact
// @Produce json
// @Success 200 {object} response.Data[dto.SocialLinksResponse]
// @Failure 500 {object} response.Error
// @Router /v1/social-links [get]
func (handler *Handler) GetSocialLinks(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSocialLinks")
	defer scope.End()

	links, err := handler.service.SocialLinks(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get social links")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, links)
}
