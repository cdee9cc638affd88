package front

import (
	"net/http"

	"voyage/infras/otel"
	"voyage/internal/domains/front/model"
	"voyage/internal/domains/front/model/dto"
	"voyage/internal/domains/front/service"
	"voyage/internal/handlers/form"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	"voyage/shared/validator"
	"voyage/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const fieldClearCompanyLogo = "clear_company_logo"

type Handler struct {
	service service.Front
	otel    otel.Otel
}

func New(service service.Front, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/front", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateFront)
		routerGroup.Get("/", handler.GetFronts)
		routerGroup.Get("/{id}", handler.GetFrontByID)
		routerGroup.Put("/{id}", handler.ReplaceFront)
		routerGroup.Patch("/{id}", handler.UpdateFront)
		routerGroup.Delete("/{id}", handler.DeleteFront)
	})
}

// CreateFront stores a new branding record.
// @Summary Upload a company logo
// @Tags Front
// @Accept multipart/form-data
// @Produce json
// @Param company_logo formData file true "Company logo"
// @Success 201 {object} response.Data[gDto.Created]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/front [post]
// @Security BearerAuth
func (handler *Handler) CreateFront(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFront")
	defer scope.End()

	body, err := form.Parse(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse form")
		response.WithError(w, err)

		return
	}
	defer body.Close()

	req := dto.CreateFrontRequest{
		CompanyLogo: body.File(model.FieldCompanyLogo),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create front")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, gDto.Created{ID: id})
}

// GetFronts lists branding records.
// @Summary Get all branding records
// @Tags Front
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetFrontsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/front [get]
func (handler *Handler) GetFronts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFronts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.OrderBy(constant.FieldCreatedAt, gDto.SortDirDesc, constant.FieldCreatedAt)

	fronts, err := handler.service.GetAll(ctx, queryParams, gDto.FilterGroup{})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get fronts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, fronts)
}

// @Summary Get a branding record by ID
// @Tags Front
// @Produce json
// @Param id path string true "Front ID"
// @Success 200 {object} response.Data[dto.FrontResponse]
// @Failure 404 {object} response.Error
// @Router /v1/front/{id} [get]
func (handler *Handler) GetFrontByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFrontByID")
	defer scope.End()

	front, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get front by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, front)
}

// @Summary Replace the company logo
// @Tags Front
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Front ID"
// @Param company_logo formData file false "New logo"
// @Param clear_company_logo formData boolean false "Remove the logo"
// @Success 200 {object} response.MessageWithWarnings
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/front/{id} [put]
// @Security BearerAuth
func (handler *Handler) ReplaceFront(w http.ResponseWriter, r *http.Request) {
	handler.update(w, r, false)
}

// @Summary Update the company logo
// @Tags Front
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Front ID"
// @Param company_logo formData file false "New logo"
// @Param clear_company_logo formData boolean false "Remove the logo"
// @Success 200 {object} response.MessageWithWarnings
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/front/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateFront(w http.ResponseWriter, r *http.Request) {
	handler.update(w, r, true)
}

func (handler *Handler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateFront")
	defer scope.End()

	body, err := form.Parse(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse form")
		response.WithError(w, err)

		return
	}
	defer body.Close()

	req := dto.UpdateFrontRequest{
		CompanyLogo:      body.File(model.FieldCompanyLogo),
		ClearCompanyLogo: body.Bool(fieldClearCompanyLogo),
		Partial:          partial,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	outcome, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update front")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Company logo updated by user " + user)

	response.WithOutcome(w, http.StatusOK, "Front updated successfully", outcome)
}

// @Summary Delete a branding record
// @Tags Front
// @Produce json
// @Param id path string true "Front ID"
// @Success 200 {object} response.MessageWithWarnings
// @Failure 404 {object} response.Error
// @Router /v1/front/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteFront(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteFront")
	defer scope.End()

	outcome, err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete front")

		response.WithError(w, err)

		return
	}

	response.WithOutcome(w, http.StatusOK, "Front deleted successfully", outcome)
}
