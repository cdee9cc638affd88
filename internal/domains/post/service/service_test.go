package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"voyage/config"
	"voyage/infras/media"
	"voyage/infras/metrics"
	"voyage/infras/otel/mocks"
	"voyage/internal/attachment"
	"voyage/internal/domains/post/model"
	"voyage/internal/domains/post/model/dto"
	"voyage/internal/domains/post/service"
	cacheMocks "voyage/shared/cache/mocks"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	"voyage/shared/failure"
	gModel "voyage/shared/model"
	"voyage/shared/repository/memory"
)

func newService(t *testing.T, fs afero.Fs, posts *memory.Table[model.Post]) service.Post {
	t.Helper()

	return newServiceWithStore(t, media.NewLocalStore(fs, "", mocks.NewOtel()), posts)
}

func newServiceWithStore(t *testing.T, store media.Store, posts *memory.Table[model.Post]) service.Post {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	otl := mocks.NewOtel()
	manager := attachment.New(store, attachment.NewLogSink(), metrics.New(), otl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	t.Cleanup(func() {
		time.Sleep(10 * time.Millisecond)
	})

	return service.New(posts, manager, store, cfg, mockCache, otl)
}

// pinnedStore refuses to delete one reference, as a bucket with a retention
// lock would.
type pinnedStore struct {
	media.Store
	pinned string
}

func (s pinnedStore) Delete(ctx context.Context, ref string) bool {
	if ref == s.pinned {
		return false
	}

	return s.Store.Delete(ctx, ref)
}

func cover(name string) *attachment.Upload {
	return &attachment.Upload{Name: name, ContentType: "image/webp", Size: 4, Body: strings.NewReader("webp")}
}

func TestPostService_CreateAndGet(t *testing.T) {
	fs := afero.NewMemMapFs()
	posts := memory.New[model.Post]()
	svc := newService(t, fs, posts)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "editor")

	id, err := svc.Create(ctx, dto.CreatePostRequest{Title: "Ten days in Kandy", Content: "…", Image: cover("kandy.webp")})
	require.NoError(t, err)

	res, err := svc.Get(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, "Ten days in Kandy", res.Title)
	assert.Equal(t, "editor", res.CreatedBy)
	assert.True(t, strings.HasSuffix(res.Image, ".webp"))
	assert.Equal(t, "/media/"+res.Image, res.ImageURL)

	ok, err := afero.Exists(fs, res.Image)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPostService_ReplaceCoverWithUnremovableOldImage(t *testing.T) {
	fs := afero.NewMemMapFs()
	posts := memory.New[model.Post]()

	id, err := newService(t, fs, posts).Create(context.Background(), dto.CreatePostRequest{Title: "Ella", Content: "Train ride", Image: cover("old.webp")})
	require.NoError(t, err)

	old := posts.Rows()[0].Image

	store := pinnedStore{Store: media.NewLocalStore(fs, "", mocks.NewOtel()), pinned: old}

	outcome, err := newServiceWithStore(t, store, posts).Update(context.Background(), dto.UpdatePostRequest{Partial: true, Image: cover("new.webp")}, id)
	require.NoError(t, err)

	assert.Equal(t, []string{old}, outcome.OrphanedMedia)
	assert.NotEqual(t, old, posts.Rows()[0].Image)
	assert.Equal(t, "Ella", posts.Rows()[0].Title)

	for _, ref := range []string{old, posts.Rows()[0].Image} {
		ok, err := afero.Exists(fs, ref)
		require.NoError(t, err)
		assert.True(t, ok, "%s should still be stored", ref)
	}
}

func TestPostService_UpdateValidation(t *testing.T) {
	posts := memory.New(model.Post{ID: "post-1", Title: "Ella", Content: "Train ride"})
	svc := newService(t, afero.NewMemMapFs(), posts)

	title := "Ella by train"

	tests := []struct {
		name     string
		req      dto.UpdatePostRequest
		id       string
		wantCode int
	}{
		{name: "full update without content", req: dto.UpdatePostRequest{Title: &title}, id: "post-1", wantCode: http.StatusBadRequest},
		{name: "unknown post", req: dto.UpdatePostRequest{Partial: true, Title: &title}, id: "post-2", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), tt.req, tt.id)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}

	assert.Equal(t, "Ella", posts.Rows()[0].Title)
}

func TestPostService_GetAllNewestFirst(t *testing.T) {
	now := time.Now()
	posts := memory.New(
		model.Post{ID: "old", Title: "Old", Metadata: gModel.Metadata{CreatedAt: now.Add(-time.Hour)}},
		model.Post{ID: "new", Title: "New", Metadata: gModel.Metadata{CreatedAt: now}},
	)
	svc := newService(t, afero.NewMemMapFs(), posts)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}, gDto.FilterGroup{})
	require.NoError(t, err)

	require.Len(t, res.Posts, 2)
	assert.Equal(t, "new", res.Posts[0].ID)
	assert.Empty(t, res.Posts[0].ImageURL)
}

func TestPostService_Delete(t *testing.T) {
	fs := afero.NewMemMapFs()
	posts := memory.New[model.Post]()
	svc := newService(t, fs, posts)

	id, err := svc.Create(context.Background(), dto.CreatePostRequest{Title: "Ella", Content: "Train ride", Image: cover("ella.webp")})
	require.NoError(t, err)

	ref := posts.Rows()[0].Image

	posts.FailOn("Delete", errors.New("db down"))

	_, err = svc.Delete(context.Background(), id)
	require.Error(t, err)

	ok, _ := afero.Exists(fs, ref)
	assert.True(t, ok, "media must survive a failed record delete")

	posts.FailOn("Delete", nil)

	outcome, err := svc.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, outcome.Empty())

	ok, _ = afero.Exists(fs, ref)
	assert.False(t, ok)
}
