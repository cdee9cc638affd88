package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"voyage/config"
	"voyage/infras/media"
	"voyage/infras/metrics"
	"voyage/infras/otel/mocks"
	"voyage/internal/attachment"
	"voyage/internal/domains/place/model"
	"voyage/internal/domains/place/model/dto"
	"voyage/internal/domains/place/service"
	cacheMocks "voyage/shared/cache/mocks"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	"voyage/shared/failure"
	"voyage/shared/repository/memory"
)

type fixture struct {
	fs      afero.Fs
	places  *memory.Table[model.Place]
	images  *memory.Table[model.PlaceImage]
	days    *memory.Table[model.ItineraryDay]
	photos  *memory.Table[model.ItineraryPhoto]
	evicted *keyLog
	service service.Place
	ctx     context.Context
}

// keyLog records the cache keys a service evicts from its goroutines.
type keyLog struct {
	mu   sync.Mutex
	keys []string
}

func (k *keyLog) add(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.keys = append(k.keys, key)
}

func (k *keyLog) has(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	for _, got := range k.keys {
		if got == key {
			return true
		}
	}

	return false
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	evicted := &keyLog{}
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string) error {
			evicted.add(key)

			return nil
		}).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	otl := mocks.NewOtel()
	fs := afero.NewMemMapFs()
	store := media.NewLocalStore(fs, "http://cdn.test", otl)
	manager := attachment.New(store, attachment.NewLogSink(), metrics.New(), otl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := &fixture{
		fs:      fs,
		places:  memory.New[model.Place](),
		images:  memory.New[model.PlaceImage](),
		days:    memory.New[model.ItineraryDay](),
		photos:  memory.New[model.ItineraryPhoto](),
		evicted: evicted,
		ctx:     context.WithValue(context.Background(), constant.ContextKeyUserID, "admin"),
	}

	f.service = service.New(f.places, f.images, f.days, f.photos, manager, store, cfg, mockCache, otl)

	t.Cleanup(func() {
		// cache writes happen in goroutines
		time.Sleep(10 * time.Millisecond)
	})

	return f
}

func (f *fixture) exists(t *testing.T, ref string) bool {
	t.Helper()

	ok, err := afero.Exists(f.fs, ref)
	require.NoError(t, err)

	return ok
}

func upload(name string) *attachment.Upload {
	return &attachment.Upload{
		Name:        name,
		ContentType: "image/jpeg",
		Size:        int64(len(name)),
		Body:        strings.NewReader(name),
	}
}

func placeRequest() dto.CreatePlaceRequest {
	return dto.CreatePlaceRequest{
		Title:          "Sigiriya",
		Subtitle:       "Lion rock fortress",
		Price:          120.5,
		AboutPlace:     "Ancient rock fortress",
		TourHighlights: "Frescoes",
		TourItinerary:  "Two days",
		Include:        "Guide",
		Exclude:        "Flights",
	}
}

func TestPlaceService_SubImageScenario(t *testing.T) {
	f := newFixture(t)

	id, outcome, err := f.service.Create(f.ctx, placeRequest())
	require.NoError(t, err)
	assert.True(t, outcome.Empty())

	_, err = f.service.AddImages(f.ctx, dto.AddImagesRequest{Images: []*attachment.Upload{upload("a.jpg"), upload("b.jpg")}}, id)
	require.NoError(t, err)

	originals := f.images.Rows()
	require.Len(t, originals, 2)

	partial := dto.UpdatePlaceRequest{Partial: true, SubImages: []*attachment.Upload{upload("c.jpg")}}
	outcome, err = f.service.Update(f.ctx, partial, id)
	require.NoError(t, err)
	assert.True(t, outcome.Empty())

	remaining := f.images.Rows()
	require.Len(t, remaining, 1)
	assert.Equal(t, id, remaining[0].PlaceID)
	assert.Equal(t, 0, remaining[0].Position)
	assert.True(t, f.exists(t, remaining[0].Image))

	for _, img := range originals {
		assert.False(t, f.exists(t, img.Image), "original %s still stored", img.Image)
	}
}

func TestPlaceService_Create(t *testing.T) {
	f := newFixture(t)

	req := placeRequest()
	req.MainImage = upload("main.jpg")
	req.SubImages = []*attachment.Upload{upload("s1.jpg"), upload("s2.jpg")}
	req.Itinerary = []dto.ItineraryDayInput{
		{Day: 2, Title: "Climb", Photos: []*attachment.Upload{upload("d2.jpg")}},
		{Day: 1, Title: "Arrive"},
	}

	id, _, err := f.service.Create(f.ctx, req)
	require.NoError(t, err)

	res, err := f.service.Get(f.ctx, id)
	require.NoError(t, err)

	assert.Equal(t, model.PlaceTypeTrending, res.PlaceType)
	assert.NotEmpty(t, res.MainImage)
	assert.Equal(t, "http://cdn.test/"+res.MainImage, res.MainImageURL)
	assert.True(t, strings.HasPrefix(res.MainImage, model.DirectoryMainImage+"/"))
	require.Len(t, res.SubImages, 2)
	assert.Equal(t, []int{0, 1}, []int{res.SubImages[0].Position, res.SubImages[1].Position})

	require.Len(t, res.Itinerary, 2)
	assert.Equal(t, 1, res.Itinerary[0].Day)
	assert.Equal(t, 2, res.Itinerary[1].Day)
	require.Len(t, res.Itinerary[1].Photos, 1)
	assert.True(t, f.exists(t, res.Itinerary[1].Photos[0].Image))
}

func TestPlaceService_CreateRejectsDuplicateDays(t *testing.T) {
	f := newFixture(t)

	req := placeRequest()
	req.Itinerary = []dto.ItineraryDayInput{{Day: 1}, {Day: 1}}

	_, _, err := f.service.Create(f.ctx, req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Empty(t, f.places.Rows())
}

func TestPlaceService_CreateRollsBackOnChildFailure(t *testing.T) {
	f := newFixture(t)
	f.days.FailOn("Insert", errors.New("db down"))

	req := placeRequest()
	req.MainImage = upload("main.jpg")
	req.SubImages = []*attachment.Upload{upload("s1.jpg")}
	req.Itinerary = []dto.ItineraryDayInput{{Day: 1}}

	_, _, err := f.service.Create(f.ctx, req)
	require.Error(t, err)

	assert.Empty(t, f.places.Rows())
	assert.Empty(t, f.images.Rows())

	files, err := afero.ReadDir(f.fs, model.DirectoryImages)
	if err == nil {
		assert.Empty(t, files)
	}
}

func TestPlaceService_ItineraryFullReplacement(t *testing.T) {
	f := newFixture(t)

	req := placeRequest()
	req.Itinerary = []dto.ItineraryDayInput{
		{Day: 1, Photos: []*attachment.Upload{upload("one.jpg")}},
		{Day: 2, Photos: []*attachment.Upload{upload("two.jpg")}},
		{Day: 3},
	}

	id, _, err := f.service.Create(f.ctx, req)
	require.NoError(t, err)

	oldPhotos := f.photos.Rows()
	require.Len(t, oldPhotos, 2)

	_, err = f.service.Update(f.ctx, dto.UpdatePlaceRequest{
		Partial:   true,
		Itinerary: []dto.ItineraryDayInput{{Day: 1, Title: "Only day"}},
	}, id)
	require.NoError(t, err)

	days := f.days.Rows()
	require.Len(t, days, 1)
	assert.Equal(t, 1, days[0].DayNumber)
	assert.Equal(t, "Only day", days[0].Title)
	assert.Empty(t, f.photos.Rows())

	for _, photo := range oldPhotos {
		assert.False(t, f.exists(t, photo.Image))
	}
}

func TestPlaceService_UpdateMainImage(t *testing.T) {
	f := newFixture(t)

	req := placeRequest()
	req.MainImage = upload("old.jpg")

	id, _, err := f.service.Create(f.ctx, req)
	require.NoError(t, err)

	old := f.places.Rows()[0].MainImage

	_, err = f.service.Update(f.ctx, dto.UpdatePlaceRequest{Partial: true, MainImage: upload("new.jpg")}, id)
	require.NoError(t, err)

	current := f.places.Rows()[0].MainImage
	assert.NotEqual(t, old, current)
	assert.False(t, f.exists(t, old))
	assert.True(t, f.exists(t, current))

	_, err = f.service.Update(f.ctx, dto.UpdatePlaceRequest{Partial: true, ClearMainImage: true}, id)
	require.NoError(t, err)
	assert.Empty(t, f.places.Rows()[0].MainImage)
	assert.False(t, f.exists(t, current))

	_, err = f.service.Update(f.ctx, dto.UpdatePlaceRequest{Partial: true, ClearMainImage: true}, id)
	require.NoError(t, err)
	assert.Empty(t, f.places.Rows()[0].MainImage)
}

func TestPlaceService_UpdateMergesProvidedFields(t *testing.T) {
	f := newFixture(t)

	id, _, err := f.service.Create(f.ctx, placeRequest())
	require.NoError(t, err)

	price := 99.0
	_, err = f.service.Update(f.ctx, dto.UpdatePlaceRequest{Partial: true, Price: &price}, id)
	require.NoError(t, err)

	place := f.places.Rows()[0]
	assert.InDelta(t, 99.0, place.Price, 0.001)
	assert.Equal(t, "Sigiriya", place.Title)
}

func TestPlaceService_FullUpdateRequiresFields(t *testing.T) {
	f := newFixture(t)

	id, _, err := f.service.Create(f.ctx, placeRequest())
	require.NoError(t, err)

	title := "Ella"
	_, err = f.service.Update(f.ctx, dto.UpdatePlaceRequest{Title: &title}, id)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Contains(t, failure.GetDetails(err), "subtitle")
	assert.Equal(t, "Sigiriya", f.places.Rows()[0].Title)
}

func TestPlaceService_NotFound(t *testing.T) {
	f := newFixture(t)

	missing := uuid.NewString()

	_, err := f.service.Get(f.ctx, missing)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	_, err = f.service.Update(f.ctx, dto.UpdatePlaceRequest{Partial: true}, missing)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	_, err = f.service.Delete(f.ctx, missing)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	_, err = f.service.DeleteImage(f.ctx, missing, missing)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	_, err = f.service.DeleteItineraryPhoto(f.ctx, missing)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestPlaceService_MalformedIDs(t *testing.T) {
	f := newFixture(t)

	// what postgres answers when a non-uuid literal meets a uuid column
	rejected := errors.New(`pq: invalid input syntax for type uuid: "42"`)
	f.places.FailOn("Get", rejected)
	f.images.FailOn("Get", rejected)
	f.photos.FailOn("Get", rejected)

	tests := []struct {
		name string
		call func() error
	}{
		{name: "get", call: func() error {
			_, err := f.service.Get(f.ctx, "42")

			return err
		}},
		{name: "update", call: func() error {
			_, err := f.service.Update(f.ctx, dto.UpdatePlaceRequest{Partial: true}, "42")

			return err
		}},
		{name: "delete", call: func() error {
			_, err := f.service.Delete(f.ctx, "abc")

			return err
		}},
		{name: "add images", call: func() error {
			_, err := f.service.AddImages(f.ctx, dto.AddImagesRequest{Images: []*attachment.Upload{upload("a.jpg")}}, "42")

			return err
		}},
		{name: "delete image", call: func() error {
			_, err := f.service.DeleteImage(f.ctx, uuid.NewString(), "7")

			return err
		}},
		{name: "delete itinerary photo", call: func() error {
			_, err := f.service.DeleteItineraryPhoto(f.ctx, "7")

			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()

			require.Error(t, err)
			assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		})
	}
}

func TestPlaceService_DeleteItineraryPhotoEvictsOwningPlace(t *testing.T) {
	f := newFixture(t)

	req := placeRequest()
	req.Itinerary = []dto.ItineraryDayInput{{Day: 1, Photos: []*attachment.Upload{upload("p1.jpg"), upload("p2.jpg")}}}

	id, _, err := f.service.Create(f.ctx, req)
	require.NoError(t, err)

	key := "place:get:" + id

	_, err = f.service.DeleteItineraryPhoto(f.ctx, f.photos.Rows()[0].ID)
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return f.evicted.has(key) }, time.Second, 5*time.Millisecond)
	assert.Len(t, f.photos.Rows(), 1)
}

func TestPlaceService_CascadeDelete(t *testing.T) {
	f := newFixture(t)

	req := placeRequest()
	req.MainImage = upload("main.jpg")
	req.SubImages = []*attachment.Upload{upload("s1.jpg"), upload("s2.jpg")}
	req.Itinerary = []dto.ItineraryDayInput{
		{Day: 1, Photos: []*attachment.Upload{upload("p1.jpg"), upload("p2.jpg")}},
		{Day: 2, Photos: []*attachment.Upload{upload("p3.jpg")}},
	}

	id, _, err := f.service.Create(f.ctx, req)
	require.NoError(t, err)

	refs := []string{f.places.Rows()[0].MainImage}
	for _, img := range f.images.Rows() {
		refs = append(refs, img.Image)
	}

	for _, photo := range f.photos.Rows() {
		refs = append(refs, photo.Image)
	}

	require.Len(t, refs, 6)

	outcome, err := f.service.Delete(f.ctx, id)
	require.NoError(t, err)
	assert.True(t, outcome.Empty())

	assert.Empty(t, f.places.Rows())
	assert.Empty(t, f.images.Rows())
	assert.Empty(t, f.days.Rows())
	assert.Empty(t, f.photos.Rows())

	for _, ref := range refs {
		assert.False(t, f.exists(t, ref), "%s still stored", ref)
	}
}

func TestPlaceService_DeleteSingleImages(t *testing.T) {
	f := newFixture(t)

	req := placeRequest()
	req.SubImages = []*attachment.Upload{upload("s1.jpg"), upload("s2.jpg")}
	req.Itinerary = []dto.ItineraryDayInput{{Day: 1, Photos: []*attachment.Upload{upload("p1.jpg")}}}

	id, _, err := f.service.Create(f.ctx, req)
	require.NoError(t, err)

	image := f.images.Rows()[0]
	_, err = f.service.DeleteImage(f.ctx, id, image.ID)
	require.NoError(t, err)
	assert.Len(t, f.images.Rows(), 1)
	assert.False(t, f.exists(t, image.Image))

	_, err = f.service.DeleteImage(f.ctx, uuid.NewString(), f.images.Rows()[0].ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	photo := f.photos.Rows()[0]
	_, err = f.service.DeleteItineraryPhoto(f.ctx, photo.ID)
	require.NoError(t, err)
	assert.Empty(t, f.photos.Rows())
	assert.False(t, f.exists(t, photo.Image))
	assert.Len(t, f.days.Rows(), 1)
}

func TestPlaceService_GetAllAndBookingList(t *testing.T) {
	f := newFixture(t)

	first := placeRequest()
	first.SubImages = []*attachment.Upload{upload("s1.jpg")}
	_, _, err := f.service.Create(f.ctx, first)
	require.NoError(t, err)

	second := placeRequest()
	second.Title = "Ella"
	second.Price = 80
	_, _, err = f.service.Create(f.ctx, second)
	require.NoError(t, err)

	params := gDto.QueryParams{Page: 1, Limit: 10, SortBy: model.FieldTitle, SortDir: gDto.SortDirAsc}

	res, err := f.service.GetAll(f.ctx, params, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	require.Len(t, res.Places, 2)
	assert.Equal(t, "Ella", res.Places[0].Title)
	assert.Empty(t, res.Places[0].SubImages)
	assert.Len(t, res.Places[1].SubImages, 1)

	booking, err := f.service.ListForBooking(f.ctx)
	require.NoError(t, err)
	require.Len(t, booking, 2)
	assert.Equal(t, "Ella", booking[0].Title)
	assert.InDelta(t, 80.0, booking[0].Price, 0.001)
}
