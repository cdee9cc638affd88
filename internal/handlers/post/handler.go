package post

import (
	"net/http"

	"voyage/infras/otel"
	"voyage/internal/domains/post/model"
	"voyage/internal/domains/post/model/dto"
	"voyage/internal/domains/post/service"
	"voyage/internal/handlers/form"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	"voyage/shared/validator"
	"voyage/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const fieldClearImage = "clear_post_image"

type Handler struct {
	service service.Post
	otel    otel.Otel
}

func New(service service.Post, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/posts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePost)
		routerGroup.Get("/", handler.GetPosts)
		routerGroup.Get("/{id}", handler.GetPostByID)
		routerGroup.Put("/{id}", handler.ReplacePost)
		routerGroup.Patch("/{id}", handler.UpdatePost)
		routerGroup.Delete("/{id}", handler.DeletePost)
	})
}

// CreatePost handles the creation of a new post.
// @Summary Create a new post
// @Tags Post
// @Accept multipart/form-data
// @Produce json
// @Param post_title formData string true "Title"
// @Param post_content formData string true "Content"
// @Param post_image formData file false "Cover image"
// @Success 201 {object} response.Data[gDto.Created]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/posts [post]
// @Security BearerAuth
func (handler *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePost")
	defer scope.End()

	body, err := form.Parse(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse form")
		response.WithError(w, err)

		return
	}
	defer body.Close()

	req := dto.CreatePostRequest{
		Title:   body.Value(model.FieldTitle),
		Content: body.Value(model.FieldContent),
		Image:   body.File(model.FieldImage),
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
		log.Error().Err(err).Msg("failed to create post")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Post created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, gDto.Created{ID: id})
}

// GetPosts retrieves posts, newest first.
// @Summary Get all posts
// @Tags Post
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param post_title query string false "Filter by title"
// @Success 200 {object} response.Data[dto.GetPostsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/posts [get]
func (handler *Handler) GetPosts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPosts")
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

	posts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get posts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Posts retrieved successfully")

	response.WithJSON(w, http.StatusOK, posts)
}

// GetPostByID retrieves a post.
// @Summary Get a post by ID
// @Tags Post
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} response.Data[dto.PostResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/posts/{id} [get]
func (handler *Handler) GetPostByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPostByID")
	defer scope.End()

	post, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get post by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, post)
}

// ReplacePost updates every field of a post.
// @Summary Replace a post
// @Tags Post
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Post ID"
// @Param post_title formData string true "Title"
// @Param post_content formData string true "Content"
// @Param post_image formData file false "New cover image"
// @Param clear_post_image formData boolean false "Remove the cover image"
// @Success 200 {object} response.MessageWithWarnings
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/posts/{id} [put]
// @Security BearerAuth
func (handler *Handler) ReplacePost(w http.ResponseWriter, r *http.Request) {
	handler.update(w, r, false)
}

// UpdatePost updates the provided fields of a post.
// @Summary Update a post
// @Tags Post
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Post ID"
// @Param post_title formData string false "Title"
// @Param post_content formData string false "Content"
// @Param post_image formData file false "New cover image"
// @Param clear_post_image formData boolean false "Remove the cover image"
// @Success 200 {object} response.MessageWithWarnings
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/posts/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	handler.update(w, r, true)
}

func (handler *Handler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePost")
	defer scope.End()

	body, err := form.Parse(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse form")
		response.WithError(w, err)

		return
	}
	defer body.Close()

	req := dto.UpdatePostRequest{
		Title:      body.String(model.FieldTitle),
		Content:    body.String(model.FieldContent),
		Image:      body.File(model.FieldImage),
		ClearImage: body.Bool(fieldClearImage),
		Partial:    partial,
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
		log.Error().Err(err).Msg("failed to update post")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Post updated successfully by user " + user)

	response.WithOutcome(w, http.StatusOK, "Post updated successfully", outcome)
}

// DeletePost deletes a post and its image.
// @Summary Delete a post by ID
// @Tags Post
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} response.MessageWithWarnings
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/posts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePost")
	defer scope.End()

	outcome, err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete post")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Post deleted successfully by user " + user)

	response.WithOutcome(w, http.StatusOK, "Post deleted successfully", outcome)
}
