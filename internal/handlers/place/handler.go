package place

import (
	"net/http"

	"voyage/infras/otel"
	"voyage/internal/domains/place/model"
	"voyage/internal/domains/place/service"
	"voyage/internal/handlers/form"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	"voyage/shared/validator"
	"voyage/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Place
	otel    otel.Otel
}

func New(service service.Place, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/places", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePlace)
		routerGroup.Get("/", handler.GetPlaces)
		routerGroup.Get("/{id}", handler.GetPlaceByID)
		routerGroup.Put("/{id}", handler.ReplacePlace)
		routerGroup.Patch("/{id}", handler.UpdatePlace)
		routerGroup.Delete("/{id}", handler.DeletePlace)
		routerGroup.Post("/{id}/images", handler.AddPlaceImages)
		routerGroup.Delete("/{id}/images/{imageID}", handler.DeletePlaceImage)
		routerGroup.Delete("/itinerary-photos/{photoID}", handler.DeleteItineraryPhoto)
	})
}

// CreatePlace handles the creation of a new place.
// @Summary Create a new place
// @Description Create a place with optional main image, sub-images and itinerary. The itinerary field is a JSON list of {day, title, description, photos}; photos lists multipart part names, parts named day<N>_* are bound to day N otherwise.
// @Tags Place
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param subtitle formData string true "Subtitle"
// @Param price formData number true "Price"
// @Param about_place formData string true "About the place"
// @Param tour_highlights formData string true "Tour highlights"
// @Param tour_itinerary formData string true "Tour itinerary summary"
// @Param include formData string true "Included in the package"
// @Param exclude formData string true "Excluded from the package"
// @Param place_type formData string false "trending, adventure, honeymoon, beach or historical"
// @Param main_image formData file false "Main image"
// @Param sub_images formData file false "Sub-images"
// @Param itinerary formData string false "Itinerary JSON"
// @Success 201 {object} response.Data[gDto.Created]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/places [post]
// @Security BearerAuth
func (handler *Handler) CreatePlace(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePlace")
	defer scope.End()

	body, err := form.Parse(request)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse form")
		response.WithError(writer, err)

		return
	}
	defer body.Close()

	req, err := createRequest(body)
	if err == nil {
		err = validator.ValidateStruct(&req)
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	id, outcome, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create place")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Place created successfully by user " + user)

	response.WithJSONOutcome(writer, http.StatusCreated, gDto.Created{ID: id}, outcome)
}

// GetPlaces retrieves places.
// @Summary Get all places
// @Description Retrieve places with their sub-images, with optional filtering and pagination.
// @Tags Place
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param title query string false "Filter by title"
// @Param place_type query string false "Filter by place type"
// @Success 200 {object} response.Data[dto.GetPlacesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/places [get]
func (handler *Handler) GetPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPlaces")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.OrderBy(constant.FieldCreatedAt, gDto.SortDirDesc, model.FieldTitle, model.FieldPrice, constant.FieldCreatedAt)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTitle,
				Operator: gDto.FilterOperatorLike,
				Value:    r.URL.Query().Get(model.FieldTitle),
				Table:    model.TableName,
			},
		},
	}

	if placeType := r.URL.Query().Get(model.FieldPlaceType); placeType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPlaceType,
			Operator: gDto.FilterOperatorEq,
			Value:    placeType,
			Table:    model.TableName,
		})
	}

	places, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get places")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Places retrieved successfully")

	response.WithJSON(w, http.StatusOK, places)
}

// GetPlaceByID retrieves a place with its images and itinerary.
// @Summary Get a place by ID
// @Tags Place
// @Accept json
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} response.Data[dto.PlaceResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/places/{id} [get]
func (handler *Handler) GetPlaceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPlaceByID")
	defer scope.End()

	place, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get place by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Place retrieved successfully")

	response.WithJSON(w, http.StatusOK, place)
}

// ReplacePlace updates every field of a place.
// @Summary Replace a place
// @Description Full update: every required field must be sent. Images and itinerary follow the same rules as PATCH.
// @Tags Place
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Place ID"
// @Param title formData string true "Title"
// @Param subtitle formData string true "Subtitle"
// @Param price formData number true "Price"
// @Param about_place formData string true "About the place"
// @Param tour_highlights formData string true "Tour highlights"
// @Param tour_itinerary formData string true "Tour itinerary summary"
// @Param include formData string true "Included in the package"
// @Param exclude formData string true "Excluded from the package"
// @Param place_type formData string false "Place type"
// @Param main_image formData file false "New main image"
// @Param clear_main_image formData boolean false "Remove the main image"
// @Param sub_images formData file false "Replaces every sub-image"
// @Param clear_sub_images formData boolean false "Remove every sub-image"
// @Param itinerary formData string false "Replaces the itinerary"
// @Success 200 {object} response.MessageWithWarnings
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/places/{id} [put]
// @Security BearerAuth
func (handler *Handler) ReplacePlace(w http.ResponseWriter, r *http.Request) {
	handler.update(w, r, false)
}

// UpdatePlace updates the provided fields of a place.
// @Summary Update a place
// @Description Partial update. A new main_image replaces the current one, clear_main_image removes it; sub_images or clear_sub_images rewrite the sub-image list; an itinerary field replaces every day.
// @Tags Place
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Place ID"
// @Param title formData string false "Title"
// @Param subtitle formData string false "Subtitle"
// @Param price formData number false "Price"
// @Param main_image formData file false "New main image"
// @Param clear_main_image formData boolean false "Remove the main image"
// @Param sub_images formData file false "Replaces every sub-image"
// @Param clear_sub_images formData boolean false "Remove every sub-image"
// @Param itinerary formData string false "Replaces the itinerary"
// @Success 200 {object} response.MessageWithWarnings
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/places/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	handler.update(w, r, true)
}

func (handler *Handler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePlace")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	body, err := form.Parse(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse form")
		response.WithError(w, err)

		return
	}
	defer body.Close()

	req, err := updateRequest(body, partial)
	if err == nil {
		err = validator.ValidateStruct(&req)
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	outcome, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update place")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Place updated successfully by user " + user)

	response.WithOutcome(w, http.StatusOK, "Place updated successfully", outcome)
}

// DeletePlace deletes a place together with its images, itinerary days and photos.
// @Summary Delete a place by ID
// @Tags Place
// @Accept json
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} response.MessageWithWarnings
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/places/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePlace")
	defer scope.End()

	outcome, err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete place")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Place deleted successfully by user " + user)

	response.WithOutcome(w, http.StatusOK, "Place deleted successfully", outcome)
}

// AddPlaceImages appends sub-images to a place.
// @Summary Add sub-images to a place
// @Tags Place
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Place ID"
// @Param images formData file true "Images to append"
// @Success 201 {object} response.MessageWithWarnings
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/places/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) AddPlaceImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddPlaceImages")
	defer scope.End()

	body, err := form.Parse(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse form")
		response.WithError(w, err)

		return
	}
	defer body.Close()

	req := addImagesRequest(body)

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	outcome, err := handler.service.AddImages(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add place images")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Place images added successfully")

	response.WithOutcome(w, http.StatusCreated, "Place images added successfully", outcome)
}

// DeletePlaceImage removes one sub-image.
// @Summary Delete a sub-image of a place
// @Tags Place
// @Produce json
// @Param id path string true "Place ID"
// @Param imageID path string true "Image ID"
// @Success 200 {object} response.MessageWithWarnings
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/places/{id}/images/{imageID} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePlaceImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePlaceImage")
	defer scope.End()

	outcome, err := handler.service.DeleteImage(ctx, chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, constant.RequestParamImageID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete place image")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Place image deleted successfully")

	response.WithOutcome(w, http.StatusOK, "Place image deleted successfully", outcome)
}

// DeleteItineraryPhoto removes one itinerary photo.
// @Summary Delete an itinerary photo
// @Tags Place
// @Produce json
// @Param photoID path string true "Photo ID"
// @Success 200 {object} response.MessageWithWarnings
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/places/itinerary-photos/{photoID} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteItineraryPhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteItineraryPhoto")
	defer scope.End()

	outcome, err := handler.service.DeleteItineraryPhoto(ctx, chi.URLParam(r, constant.RequestParamPhotoID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete itinerary photo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Itinerary photo deleted successfully")

	response.WithOutcome(w, http.StatusOK, "Itinerary photo deleted successfully", outcome)
}
