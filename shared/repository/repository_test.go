package repository

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"voyage/shared/dto"
	"voyage/shared/model"
)

type bookingRow struct {
	ID         string `db:"id"`
	PlaceID    string `db:"place_id"`
	PlaceTitle string `db:"place_title" table:"places" column:"title"`
	Skipped    string `db:"-"`
	Untagged   string
	model.Metadata
}

func TestGetColumns(t *testing.T) {
	columns, writes := getColumns("bookings", reflect.TypeOf(bookingRow{}))

	assert.Equal(t, []string{"id", "place_id", "created_at", "modified_at", "created_by", "modified_by"}, writes)
	assert.Contains(t, columns, column{name: "title", table: "places", alias: "place_title"})
	assert.Contains(t, columns, column{name: "created_at", table: "bookings"})
	assert.Len(t, columns, 7)
}

func TestSelectList(t *testing.T) {
	columns, _ := getColumns("bookings", reflect.TypeOf(bookingRow{}))
	repo := Repository[bookingRow]{table: "bookings", columns: columns}

	assert.Equal(t, "bookings.id, places.title AS place_title", repo.selectList([]string{"id", "title"}))
	assert.Contains(t, repo.selectList(nil), "bookings.modified_by")
}

func TestWhereOrderingPaging(t *testing.T) {
	where, args := whereClause(dto.FilterGroup{})
	assert.Empty(t, where)
	assert.NotNil(t, args)

	where, _ = whereClause(dto.FilterGroup{Filters: []any{dto.Filter{Field: "id", Value: "b-1", Operator: dto.FilterOperatorEq}}})
	assert.Equal(t, " WHERE (id = :id) ", where)

	assert.Empty(t, ordering(dto.QueryParams{SortBy: "title"}))
	assert.Equal(t, "ORDER BY title ASC", ordering(dto.QueryParams{SortBy: "title", SortDir: dto.SortDirAsc}))

	args = map[string]any{}
	assert.Empty(t, paging(dto.QueryParams{Page: 2}, args))
	assert.Equal(t, "LIMIT :limit", paging(dto.QueryParams{Limit: 5}, args))
	assert.Equal(t, "LIMIT :limit OFFSET :offset", paging(dto.QueryParams{Page: 3, Limit: 5}, args))
	assert.Equal(t, map[string]any{"limit": 5, "offset": 10}, args)
}

func TestConstraintViolations(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})
	fk := &pq.Error{Code: "23503"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsUniqueViolation(errors.New("23505")))
	assert.False(t, IsUniqueViolation(nil))
}
