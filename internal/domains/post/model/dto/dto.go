package dto

import (
	"voyage/internal/attachment"
	"voyage/internal/domains/post/model"
	"voyage/shared"
	gDto "voyage/shared/dto"
	gModel "voyage/shared/model"
	"voyage/shared/timezone"

	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Title   string             `json:"post_title"   validate:"required,max=200"`
	Content string             `json:"post_content" validate:"required"`
	Image   *attachment.Upload `json:"post_image"   swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

func (c *CreatePostRequest) ToModel(user, image string) model.Post {
	return model.Post{
		ID:      uuid.NewString(),
		Title:   c.Title,
		Content: c.Content,
		Image:   image,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdatePostRequest struct {
	Title      *string            `db:"post_title"   json:"post_title"   validate:"omitempty,max=200"`
	Content    *string            `db:"post_content" json:"post_content"`
	Image      *attachment.Upload `json:"post_image" swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	ClearImage bool               `json:"clear_post_image"`
	Partial    bool               `json:"-"`
}

func (u *UpdatePostRequest) RequiredFields() map[string]any {
	return map[string]any{
		model.FieldTitle:   u.Title,
		model.FieldContent: u.Content,
	}
}

type PostResponse struct {
	ID       string `json:"id"`
	Title    string `json:"post_title"`
	Content  string `json:"post_content"`
	Image    string `json:"post_image"`
	ImageURL string `json:"post_image_url"`
	gDto.Metadata
}

func (r *PostResponse) FromModel(mod model.Post, urlFor func(string) string) {
	r.ID = mod.ID
	r.Title = mod.Title
	r.Content = mod.Content
	r.Image = mod.Image
	r.ImageURL = urlFor(mod.Image)
	r.Metadata.FromModel(mod.Metadata)
}

type GetPostsResponse struct {
	Posts     []PostResponse `json:"posts"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetPostsResponse) FromModels(models []model.Post, totalData, limit int, urlFor func(string) string) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Posts = make([]PostResponse, len(models))
	for i, mod := range models {
		r.Posts[i].FromModel(mod, urlFor)
	}
}
