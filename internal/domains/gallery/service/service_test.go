package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"voyage/config"
	mediaMocks "voyage/infras/media/mocks"
	"voyage/infras/metrics"
	"voyage/infras/otel/mocks"
	"voyage/internal/attachment"
	galleryMocks "voyage/internal/domains/gallery/mocks"
	"voyage/internal/domains/gallery/model"
	"voyage/internal/domains/gallery/model/dto"
	"voyage/internal/domains/gallery/service"
	cacheMocks "voyage/shared/cache/mocks"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	"voyage/shared/failure"
	gModel "voyage/shared/model"
	"voyage/shared/timezone"
)

type mocksSet struct {
	repo  *galleryMocks.MockGallery
	store *mediaMocks.MockStore
	cache *cacheMocks.MockRedisCache
}


const (
	photoID   = "3d5e7f90-1a2b-4c3d-8e4f-5a6b7c8d9e01"
	missingID = "1f0e4c52-7b1a-4d0e-9a53-6c2b8f3e7d10"
)

func newService(t *testing.T) (service.Gallery, mocksSet) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := mocksSet{
		repo:  galleryMocks.NewMockGallery(ctrl),
		store: mediaMocks.NewMockStore(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	m.store.EXPECT().URLFor(gomock.Any()).DoAndReturn(func(ref string) string {
		return "https://cdn.example.com/" + ref
	}).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	otl := mocks.NewOtel()
	manager := attachment.New(m.store, attachment.NewLogSink(), metrics.New(), otl)

	return service.New(m.repo, manager, m.store, cfg, m.cache, otl), m
}

func photoUpload() *attachment.Upload {
	return &attachment.Upload{Name: "sunset.jpg", ContentType: "image/jpeg", Size: 3, Body: strings.NewReader("jpg")}
}

func TestGalleryService_Create(t *testing.T) {
	svc, m := newService(t)

	tests := []struct {
		name      string
		req       dto.CreateGalleryPhotoRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req:  dto.CreateGalleryPhotoRequest{Caption: "Sunset", Image: photoUpload()},
			setupMock: func() {
				m.store.EXPECT().
					Put(gomock.Any(), gomock.Any(), "gallery/sunset.jpg", "image/jpeg", int64(3)).
					Return("gallery/1.jpg", nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, photo model.GalleryPhoto) error {
						assert.Equal(t, "gallery/1.jpg", photo.Image)
						assert.Equal(t, "Sunset", photo.Caption)
						assert.Equal(t, "test-user-id", photo.CreatedBy)

						return nil
					})

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "insert failure releases the stored image",
			req:  dto.CreateGalleryPhotoRequest{Image: photoUpload()},
			setupMock: func() {
				m.store.EXPECT().
					Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("gallery/2.jpg", nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))

				m.store.EXPECT().
					Delete(gomock.Any(), "gallery/2.jpg").
					Return(true)
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "store failure never inserts",
			req:  dto.CreateGalleryPhotoRequest{Image: photoUpload()},
			setupMock: func() {
				m.store.EXPECT().
					Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("bucket unavailable"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
		{
			name:      "missing image",
			req:       dto.CreateGalleryPhotoRequest{Caption: "Sunset"},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			id, err := svc.Create(ctx, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Empty(t, id)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, id)
			}
		})
	}
}

func TestGalleryService_GetAll(t *testing.T) {
	svc, m := newService(t)

	now := timezone.Now()
	params := gDto.QueryParams{Limit: 10, Page: 1, SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}

	tests := []struct {
		name       string
		setupMock  func()
		wantErr    bool
		wantResult dto.GetGalleryPhotosResponse
	}{
		{
			name: "successful get all",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				m.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				m.repo.EXPECT().
					GetAll(gomock.Any(), params, gomock.Any(), gomock.Any()).
					Return([]model.GalleryPhoto{{
						ID:       photoID,
						Caption:  "Sunset",
						Image:    "gallery/1.jpg",
						Metadata: gModel.Metadata{CreatedAt: now, ModifiedAt: now},
					}}, nil)

				m.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantResult: dto.GetGalleryPhotosResponse{
				Photos: []dto.GalleryPhotoResponse{{
					ID:       photoID,
					Caption:  "Sunset",
					Image:    "gallery/1.jpg",
					ImageURL: "https://cdn.example.com/gallery/1.jpg",
					Metadata: metadata(now),
				}},
				TotalPage: 1,
				TotalData: 1,
			},
		},
		{
			name: "repository error",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				m.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{})

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantResult, result)
			}
		})
	}
}

func metadata(at time.Time) gDto.Metadata {
	var m gDto.Metadata
	m.FromModel(gModel.Metadata{CreatedAt: at, ModifiedAt: at})

	return m
}

func TestGalleryService_Get(t *testing.T) {
	svc, m := newService(t)

	m.cache.EXPECT().
		Get(gomock.Any(), "gallery:get:"+missingID, gomock.Any()).
		Return(errors.New("cache miss"))

	m.repo.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(model.GalleryPhoto{}, nil)

	_, err := svc.Get(context.Background(), missingID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestGalleryService_Delete(t *testing.T) {
	svc, m := newService(t)

	tests := []struct {
		name         string
		setupMock    func()
		wantErr      bool
		wantCode     int
		wantOrphaned []string
	}{
		{
			name: "record and image removed",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.GalleryPhoto{ID: photoID, Image: "gallery/1.jpg"}, nil)

				m.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				m.store.EXPECT().Delete(gomock.Any(), "gallery/1.jpg").Return(true)

				m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "image left behind is reported",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.GalleryPhoto{ID: photoID, Image: "gallery/1.jpg"}, nil)

				m.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				m.store.EXPECT().Delete(gomock.Any(), "gallery/1.jpg").Return(false)
			},
			wantOrphaned: []string{"gallery/1.jpg"},
		},
		{
			name: "record failure keeps the image",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.GalleryPhoto{ID: photoID, Image: "gallery/1.jpg"}, nil)

				m.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "not found",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.GalleryPhoto{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			outcome, err := svc.Delete(context.Background(), photoID)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantOrphaned, outcome.OrphanedMedia)
		})
	}
}

func TestGalleryService_MalformedID(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Get(context.Background(), "42")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	_, err = svc.Delete(context.Background(), "42")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
