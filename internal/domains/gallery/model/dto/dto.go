package dto

import (
	"voyage/internal/attachment"
	"voyage/internal/domains/gallery/model"
	"voyage/shared"
	gDto "voyage/shared/dto"
	gModel "voyage/shared/model"
	"voyage/shared/timezone"

	"github.com/google/uuid"
)

type CreateGalleryPhotoRequest struct {
	Caption string             `json:"caption" validate:"max=255"`
	Image   *attachment.Upload `json:"image"   swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

func (c *CreateGalleryPhotoRequest) ToModel(user, image string) model.GalleryPhoto {
	return model.GalleryPhoto{
		ID:      uuid.NewString(),
		Caption: c.Caption,
		Image:   image,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type GalleryPhotoResponse struct {
	ID       string `json:"id"`
	Caption  string `json:"caption"`
	Image    string `json:"image"`
	ImageURL string `json:"image_url"`
	gDto.Metadata
}

func (r *GalleryPhotoResponse) FromModel(mod model.GalleryPhoto, urlFor func(string) string) {
	r.ID = mod.ID
	r.Caption = mod.Caption
	r.Image = mod.Image
	r.ImageURL = urlFor(mod.Image)
	r.Metadata.FromModel(mod.Metadata)
}

type GetGalleryPhotosResponse struct {
	Photos    []GalleryPhotoResponse `json:"photos"`
	TotalPage int                    `json:"total_page"`
	TotalData int                    `json:"total_data"`
}

func (r *GetGalleryPhotosResponse) FromModels(models []model.GalleryPhoto, totalData, limit int, urlFor func(string) string) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Photos = make([]GalleryPhotoResponse, len(models))
	for i, m := range models {
		r.Photos[i].FromModel(m, urlFor)
	}
}
