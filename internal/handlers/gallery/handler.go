package gallery

import (
	"net/http"

	"voyage/infras/otel"
	"voyage/internal/domains/gallery/model"
	"voyage/internal/domains/gallery/model/dto"
	"voyage/internal/domains/gallery/service"
	"voyage/internal/handlers/form"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	"voyage/shared/validator"
	"voyage/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Gallery
	otel    otel.Otel
}

func New(service service.Gallery, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/gallery/photos", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateGalleryPhoto)
		routerGroup.Get("/", handler.GetGalleryPhotos)
		routerGroup.Get("/{id}", handler.GetGalleryPhotoByID)
		routerGroup.Delete("/{id}", handler.DeleteGalleryPhoto)
	})
}

// CreateGalleryPhoto uploads a photo to the gallery.
// @Summary Add a gallery photo
// @Tags Gallery
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Photo"
// @Param caption formData string false "Caption"
// @Success 201 {object} response.Data[gDto.Created]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery/photos [post]
// @Security BearerAuth
func (handler *Handler) CreateGalleryPhoto(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGalleryPhoto")
	defer scope.End()

	body, err := form.Parse(request)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse form")
		response.WithError(writer, err)

		return
	}
	defer body.Close()

	req := dto.CreateGalleryPhotoRequest{
		Caption: body.Value(model.FieldCaption),
		Image:   body.File(constant.FormFieldImage),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create gallery photo")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Gallery photo created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, gDto.Created{ID: id})
}

// GetGalleryPhotos lists gallery photos, newest first.
// @Summary Get all gallery photos
// @Tags Gallery
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetGalleryPhotosResponse]
// @Failure 500 {object} response.Error
// @Router /v1/gallery/photos [get]
func (handler *Handler) GetGalleryPhotos(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGalleryPhotos")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.OrderBy(constant.FieldCreatedAt, gDto.SortDirDesc, constant.FieldCreatedAt)

	photos, err := handler.service.GetAll(ctx, queryParams, gDto.FilterGroup{})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gallery photos")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Gallery photos retrieved successfully")

	response.WithJSON(w, http.StatusOK, photos)
}

// GetGalleryPhotoByID retrieves one gallery photo.
// @Summary Get a gallery photo by ID
// @Tags Gallery
// @Produce json
// @Param id path string true "Photo ID"
// @Success 200 {object} response.Data[dto.GalleryPhotoResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery/photos/{id} [get]
func (handler *Handler) GetGalleryPhotoByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGalleryPhotoByID")
	defer scope.End()

	photo, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gallery photo by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Gallery photo retrieved successfully")

	response.WithJSON(w, http.StatusOK, photo)
}

// DeleteGalleryPhoto removes a photo and its stored image.
// @Summary Delete a gallery photo
// @Tags Gallery
// @Produce json
// @Param id path string true "Photo ID"
// @Success 200 {object} response.MessageWithWarnings
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery/photos/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteGalleryPhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteGalleryPhoto")
	defer scope.End()

	outcome, err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete gallery photo")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Gallery photo deleted successfully by user " + user)

	response.WithOutcome(w, http.StatusOK, "Gallery photo deleted successfully", outcome)
}
