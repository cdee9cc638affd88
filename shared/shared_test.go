package shared_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"voyage/shared"
	cacheMocks "voyage/shared/cache/mocks"
	"voyage/shared/constant"
	"voyage/shared/dto"
	"voyage/shared/failure"
)

func TestConvertStringToBool(t *testing.T) {
	for raw, want := range map[string]bool{"true": true, "1": true, "TRUE": true, "false": false, "0": false} {
		got := shared.ConvertStringToBool(raw)
		require.NotNil(t, got, raw)
		assert.Equal(t, want, *got, raw)
	}

	assert.Nil(t, shared.ConvertStringToBool(""))
	assert.Nil(t, shared.ConvertStringToBool("yes please"))
}

func TestConvertStringToInt(t *testing.T) {
	got, err := shared.ConvertStringToInt(" 4 ")
	require.NoError(t, err)
	assert.Equal(t, 4, got)

	_, err = shared.ConvertStringToInt("four")
	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct{ total, limit, want int }{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{5, 0, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestTransformFields(t *testing.T) {
	type updatePlace struct {
		Title     *string  `db:"title"`
		Price     *float64 `db:"price"`
		Subtitle  string   `db:"subtitle"`
		About     string   `db:"about_place"`
		MainImage string   `db:"-"`
		Note      string
		secret    string `db:"secret"`
	}

	title := "Ella Rock"
	free := 0.0

	fields := shared.TransformFields(updatePlace{
		Title:     &title,
		Price:     &free,
		Subtitle:  "Hike at dawn",
		MainImage: "places/ella.jpg",
		Note:      "ignored",
		secret:    "ignored",
	}, "admin-1")

	assert.Equal(t, "Ella Rock", fields["title"])
	assert.Equal(t, 0.0, fields["price"], "pointer to zero still updates")
	assert.Equal(t, "Hike at dawn", fields["subtitle"])
	assert.NotContains(t, fields, "about_place")
	assert.NotContains(t, fields, "-")
	assert.NotContains(t, fields, "secret")
	assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, fields[constant.FieldModifiedAt])
	assert.Len(t, fields, 5)

	fromPointer := shared.TransformFields(&updatePlace{Subtitle: "x"}, "admin-2")
	assert.Equal(t, "x", fromPointer["subtitle"])
}

func TestFilterByID(t *testing.T) {
	byID := shared.FilterByID("p-1", "id", "places")
	where, args := byID.GetWhereClause()

	assert.Equal(t, "(places.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "p-1"}, args)

	byIDs := shared.FilterByIDs([]string{"d-1", "d-2"}, "day_id", "itinerary_photos")
	where, args = byIDs.GetWhereClause()

	assert.Equal(t, "(itinerary_photos.day_id IN (:day_id_0, :day_id_1))", where)
	assert.Equal(t, map[string]any{"day_id_0": "d-1", "day_id_1": "d-2"}, args)
}

func TestRequireUUID(t *testing.T) {
	require.NoError(t, shared.RequireUUID("5b3f6c1e-8d2a-4f7b-9c1d-2e4a6b8c0d11", "place"))

	for _, id := range []string{"42", "", "place-1", "5b3f6c1e-8d2a-4f7b-9c1d", "5b3f6c1e-8d2a-4f7b-9c1d-2e4a6b8c0d1z"} {
		err := shared.RequireUUID(id, "place")

		require.Error(t, err, id)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Equal(t, "place not found", err.Error())
	}
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "place:get:42", shared.BuildCacheKey("place:get", "42"))
	assert.Equal(t, "contact:get", shared.BuildCacheKey("contact:get"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := shared.FilterByID("p1", "place_id", "bookings")

	first := shared.BuildCacheKeyWithQuery("booking:gets", params, filter)

	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("booking:gets", params, filter))
	assert.True(t, strings.HasPrefix(first, "booking:gets:"))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("booking:gets", dto.QueryParams{Page: 2, Limit: 10}, filter))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("booking:gets", params, shared.FilterByID("p2", "place_id", "bookings")))
}

func TestInvalidateCaches(t *testing.T) {
	redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
	redisCache.EXPECT().Clear(gomock.Any(), "place:gets*").Return(nil)
	redisCache.EXPECT().Clear(gomock.Any(), "place:count*").Return(assert.AnError)

	shared.InvalidateCaches(t.Context(), redisCache, "place:gets")
	shared.InvalidateCaches(t.Context(), redisCache, "place:count")
}
