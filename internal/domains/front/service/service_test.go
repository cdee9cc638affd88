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
	"voyage/internal/domains/front/model"
	"voyage/internal/domains/front/model/dto"
	"voyage/internal/domains/front/service"
	cacheMocks "voyage/shared/cache/mocks"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	"voyage/shared/failure"
	"voyage/shared/repository/memory"
)

func newService(t *testing.T, fs afero.Fs, fronts *memory.Table[model.Front]) service.Front {
	t.Helper()

	return newServiceWithStore(t, media.NewLocalStore(fs, "", mocks.NewOtel()), fronts)
}

func newServiceWithStore(t *testing.T, store media.Store, fronts *memory.Table[model.Front]) service.Front {
	t.Helper()

	mockCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	otl := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	t.Cleanup(func() {
		time.Sleep(10 * time.Millisecond)
	})

	return service.New(fronts, attachment.New(store, attachment.NewLogSink(), metrics.New(), otl), store, cfg, mockCache, otl)
}

// pinnedStore refuses to delete one reference.
type pinnedStore struct {
	media.Store
	pinned string
}

func (s pinnedStore) Delete(ctx context.Context, ref string) bool {
	return ref != s.pinned && s.Store.Delete(ctx, ref)
}

func logo(name string) *attachment.Upload {
	return &attachment.Upload{Name: name, ContentType: "image/png", Size: 4, Body: strings.NewReader("logo")}
}

func exists(t *testing.T, fs afero.Fs, ref string) bool {
	t.Helper()

	ok, err := afero.Exists(fs, ref)
	require.NoError(t, err)

	return ok
}

func TestFrontService_Lifecycle(t *testing.T) {
	fs := afero.NewMemMapFs()
	fronts := memory.New[model.Front]()
	svc := newService(t, fs, fronts)
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin")

	_, err := svc.Create(ctx, dto.CreateFrontRequest{})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	id, err := svc.Create(ctx, dto.CreateFrontRequest{CompanyLogo: logo("brand.png")})
	require.NoError(t, err)

	res, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.CompanyLogo, model.DirectoryLogo+"/"))
	assert.Equal(t, "/media/"+res.CompanyLogo, res.CompanyLogoURL)

	first := res.CompanyLogo

	list, err := svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
	require.NoError(t, err)
	require.Len(t, list.Fronts, 1)
	assert.Equal(t, id, list.Fronts[0].ID)

	t.Run("put without a logo", func(t *testing.T) {
		_, err := svc.Update(ctx, dto.UpdateFrontRequest{}, id)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("patch without changes", func(t *testing.T) {
		outcome, err := svc.Update(ctx, dto.UpdateFrontRequest{Partial: true}, id)
		require.NoError(t, err)
		assert.True(t, outcome.Empty())
		assert.Equal(t, first, fronts.Rows()[0].CompanyLogo)
	})

	t.Run("replace", func(t *testing.T) {
		_, err := svc.Update(ctx, dto.UpdateFrontRequest{CompanyLogo: logo("brand-2024.png")}, id)
		require.NoError(t, err)

		current := fronts.Rows()[0].CompanyLogo
		assert.NotEqual(t, first, current)
		assert.False(t, exists(t, fs, first))
		assert.True(t, exists(t, fs, current))
	})

	t.Run("clear", func(t *testing.T) {
		current := fronts.Rows()[0].CompanyLogo

		_, err := svc.Update(ctx, dto.UpdateFrontRequest{ClearCompanyLogo: true}, id)
		require.NoError(t, err)
		assert.Empty(t, fronts.Rows()[0].CompanyLogo)
		assert.False(t, exists(t, fs, current))
	})

	t.Run("delete", func(t *testing.T) {
		outcome, err := svc.Delete(ctx, id)
		require.NoError(t, err)
		assert.True(t, outcome.Empty())
		assert.Empty(t, fronts.Rows())

		_, err = svc.Get(ctx, id)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestFrontService_DeleteKeepsLogoOnRecordFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	fronts := memory.New[model.Front]()
	svc := newService(t, fs, fronts)
	ctx := context.Background()

	id, err := svc.Create(ctx, dto.CreateFrontRequest{CompanyLogo: logo("brand.png")})
	require.NoError(t, err)

	ref := fronts.Rows()[0].CompanyLogo

	fronts.FailOn("Delete", errors.New("db down"))

	_, err = svc.Delete(ctx, id)
	require.Error(t, err)
	assert.True(t, exists(t, fs, ref))
	assert.Len(t, fronts.Rows(), 1)
}

func TestFrontService_ReplaceReportsOrphanedLogo(t *testing.T) {
	base := afero.NewMemMapFs()
	fronts := memory.New[model.Front]()
	ctx := context.Background()

	id, err := newService(t, base, fronts).Create(ctx, dto.CreateFrontRequest{CompanyLogo: logo("brand.png")})
	require.NoError(t, err)

	old := fronts.Rows()[0].CompanyLogo

	store := pinnedStore{Store: media.NewLocalStore(base, "", mocks.NewOtel()), pinned: old}

	outcome, err := newServiceWithStore(t, store, fronts).Update(ctx, dto.UpdateFrontRequest{Partial: true, CompanyLogo: logo("new.png")}, id)
	require.NoError(t, err)
	assert.Equal(t, []string{old}, outcome.OrphanedMedia)
	assert.NotEqual(t, old, fronts.Rows()[0].CompanyLogo)
	assert.True(t, exists(t, base, old))
	assert.True(t, exists(t, base, fronts.Rows()[0].CompanyLogo))
}
