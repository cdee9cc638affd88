package item

import (
	"net/http"

	"voyage/infras/otel"
	"voyage/internal/domains/item/model"
	"voyage/internal/domains/item/model/dto"
	"voyage/internal/domains/item/service"
	"voyage/internal/handlers/form"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	"voyage/shared/validator"
	"voyage/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Item
	otel    otel.Otel
}

func New(service service.Item, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/items", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateItem)
		routerGroup.Get("/", handler.GetItems)
		routerGroup.Get("/{id}", handler.GetItemByID)
		routerGroup.Put("/{id}", handler.ReplaceItem)
		routerGroup.Patch("/{id}", handler.UpdateItem)
		routerGroup.Delete("/{id}", handler.DeleteItem)
	})
}

// CreateItem handles the creation of a new item.
// @Summary Create a new item
// @Tags Item
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param image formData file false "Image"
// @Success 201 {object} response.Data[gDto.Created]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/items [post]
// @Security BearerAuth
func (handler *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateItem")
	defer scope.End()

	body, err := form.Parse(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse form")
		response.WithError(w, err)

		return
	}
	defer body.Close()

	req := dto.CreateItemRequest{
		Title:       body.Value(model.FieldTitle),
		Description: body.Value(model.FieldDescription),
		Image:       body.File(constant.FormFieldImage),
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
		log.Error().Err(err).Msg("failed to create item")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Item created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, gDto.Created{ID: id})
}

// GetItems retrieves items.
// @Summary Get all items
// @Tags Item
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param title query string false "Filter by title"
// @Success 200 {object} response.Data[dto.GetItemsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/items [get]
func (handler *Handler) GetItems(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItems")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.OrderBy(constant.FieldCreatedAt, gDto.SortDirDesc, model.FieldTitle, constant.FieldCreatedAt)

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

	items, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get items")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Items retrieved successfully")

	response.WithJSON(w, http.StatusOK, items)
}

// GetItemByID retrieves an item.
// @Summary Get an item by ID
// @Tags Item
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.Data[dto.ItemResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/items/{id} [get]
func (handler *Handler) GetItemByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItemByID")
	defer scope.End()

	item, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get item by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, item)
}

// ReplaceItem updates every field of an item.
// @Summary Replace an item
// @Tags Item
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Item ID"
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param image formData file false "New image"
// @Param clear_image formData boolean false "Remove the image"
// @Success 200 {object} response.MessageWithWarnings
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/items/{id} [put]
// @Security BearerAuth
func (handler *Handler) ReplaceItem(w http.ResponseWriter, r *http.Request) {
	handler.update(w, r, false)
}

// UpdateItem updates the provided fields of an item.
// @Summary Update an item
// @Tags Item
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Item ID"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param image formData file false "New image"
// @Param clear_image formData boolean false "Remove the image"
// @Success 200 {object} response.MessageWithWarnings
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/items/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	handler.update(w, r, true)
}

func (handler *Handler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateItem")
	defer scope.End()

	body, err := form.Parse(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse form")
		response.WithError(w, err)

		return
	}
	defer body.Close()

	req := dto.UpdateItemRequest{
		Title:       body.String(model.FieldTitle),
		Description: body.String(model.FieldDescription),
		Image:       body.File(constant.FormFieldImage),
		ClearImage:  body.Bool(constant.FormFieldClearImage),
		Partial:     partial,
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
		log.Error().Err(err).Msg("failed to update item")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Item updated successfully by user " + user)

	response.WithOutcome(w, http.StatusOK, "Item updated successfully", outcome)
}

// DeleteItem deletes an item and its image.
// @Summary Delete an item by ID
// @Tags Item
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.MessageWithWarnings
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/items/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteItem")
	defer scope.End()

	outcome, err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete item")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Item deleted successfully by user " + user)

	response.WithOutcome(w, http.StatusOK, "Item deleted successfully", outcome)
}
