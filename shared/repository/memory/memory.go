// Package memory holds an in-memory stand-in for the generic repository. It
// understands the same filter groups and paging parameters and is meant for tests.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"voyage/shared/dto"
)

type Table[T any] struct {
	mu   sync.Mutex
	rows []T
	fail map[string]error
}

func New[T any](rows ...T) *Table[T] {
	return &Table[T]{rows: rows, fail: map[string]error{}}
}

// FailOn makes every later call of method return err.
func (t *Table[T]) FailOn(method string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.fail[method] = err
}

func (t *Table[T]) Rows() []T {
	t.mu.Lock()
	defer t.mu.Unlock()

	return slices.Clone(t.rows)
}

func (t *Table[T]) Insert(_ context.Context, model T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.fail["Insert"]; err != nil {
		return err
	}

	t.rows = append(t.rows, model)

	return nil
}

func (t *Table[T]) Get(_ context.Context, filter dto.FilterGroup, _ ...string) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T

	if err := t.fail["Get"]; err != nil {
		return zero, err
	}

	for _, row := range t.rows {
		if matchGroup(row, filter) {
			return row, nil
		}
	}

	return zero, nil
}

func (t *Table[T]) GetAll(_ context.Context, params dto.QueryParams, filter dto.FilterGroup, _ ...string) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.fail["GetAll"]; err != nil {
		return nil, err
	}

	res := []T{}

	for _, row := range t.rows {
		if matchGroup(row, filter) {
			res = append(res, row)
		}
	}

	if params.SortBy != "" {
		_, column, found := strings.Cut(params.SortBy, ".")
		if !found {
			column = params.SortBy
		}

		desc := strings.EqualFold(params.SortDir, dto.SortDirDesc)

		slices.SortStableFunc(res, func(a, b T) int {
			order := compare(field(a, column), field(b, column))
			if desc {
				return -order
			}

			return order
		})
	}

	if params.Limit > 0 {
		offset := 0
		if params.Page > 0 {
			offset = (params.Page - 1) * params.Limit
		}

		offset = min(offset, len(res))
		res = res[offset:min(offset+params.Limit, len(res))]
	}

	return res, nil
}

func (t *Table[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	count, err := t.Count(ctx, filter)

	return count > 0, err
}

func (t *Table[T]) Count(_ context.Context, filter dto.FilterGroup) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.fail["Count"]; err != nil {
		return 0, err
	}

	count := 0

	for _, row := range t.rows {
		if matchGroup(row, filter) {
			count++
		}
	}

	return count, nil
}

func (t *Table[T]) Update(_ context.Context, mod map[string]any, filter dto.FilterGroup) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.fail["Update"]; err != nil {
		return err
	}

	for idx := range t.rows {
		if !matchGroup(t.rows[idx], filter) {
			continue
		}

		row := reflect.ValueOf(&t.rows[idx]).Elem()

		for column, value := range mod {
			target := lookup(row, column)
			if !target.IsValid() {
				return fmt.Errorf("unknown column %s", column)
			}

			incoming := reflect.ValueOf(value)
			if !incoming.IsValid() {
				target.Set(reflect.Zero(target.Type()))

				continue
			}

			if !incoming.Type().ConvertibleTo(target.Type()) {
				return fmt.Errorf("column %s: cannot assign %T", column, value)
			}

			target.Set(incoming.Convert(target.Type()))
		}
	}

	return nil
}

func (t *Table[T]) Delete(_ context.Context, filter dto.FilterGroup) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.fail["Delete"]; err != nil {
		return err
	}

	t.rows = slices.DeleteFunc(t.rows, func(row T) bool {
		return matchGroup(row, filter)
	})

	return nil
}

func matchGroup(row any, group dto.FilterGroup) bool {
	if len(group.Filters) == 0 {
		return true
	}

	or := strings.EqualFold(group.Operator, dto.FilterGroupOperatorOr)

	for _, item := range group.Filters {
		var ok bool

		switch filter := item.(type) {
		case dto.Filter:
			ok = match(row, filter)
		case dto.FilterGroup:
			ok = matchGroup(row, filter)
		default:
			continue
		}

		if or && ok {
			return true
		}

		if !or && !ok {
			return false
		}
	}

	return !or
}

func match(row any, filter dto.Filter) bool {
	value := field(row, filter.Field)
	if !value.IsValid() {
		return false
	}

	actual := fmt.Sprint(value.Interface())

	switch filter.Operator {
	case dto.FilterOperatorEq:
		return actual == fmt.Sprint(filter.Value)
	case dto.FilterOperatorNotEq:
		return actual != fmt.Sprint(filter.Value)
	case dto.FilterOperatorLike:
		return strings.Contains(strings.ToLower(actual), strings.ToLower(fmt.Sprint(filter.Value)))
	case dto.FilterOperatorIn:
		candidates := reflect.ValueOf(filter.Value)
		if candidates.Kind() != reflect.Slice && candidates.Kind() != reflect.Array {
			return false
		}

		for idx := range candidates.Len() {
			if fmt.Sprint(candidates.Index(idx).Interface()) == actual {
				return true
			}
		}

		return false
	default:
		return true
	}
}

func field(row any, column string) reflect.Value {
	return lookup(reflect.ValueOf(row), column)
}

// lookup finds the field tagged db:"column", descending into embedded structs.
func lookup(value reflect.Value, column string) reflect.Value {
	typ := value.Type()

	for idx := range typ.NumField() {
		structField := typ.Field(idx)

		if structField.Tag.Get("db") == column {
			return value.Field(idx)
		}

		if structField.Anonymous && structField.Type.Kind() == reflect.Struct {
			if found := lookup(value.Field(idx), column); found.IsValid() {
				return found
			}
		}
	}

	return reflect.Value{}
}

func compare(a, b reflect.Value) int {
	if !a.IsValid() || !b.IsValid() {
		return 0
	}

	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		return strings.Compare(a.String(), b.String())
	default:
		if at, ok := a.Interface().(time.Time); ok {
			bt, _ := b.Interface().(time.Time)

			return at.Compare(bt)
		}

		return 0
	}
}
