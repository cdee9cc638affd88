package attachment_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"voyage/infras/media"
	"voyage/internal/attachment"
	gDto "voyage/shared/dto"
)

var errDatabase = errors.New("database unavailable")

// refusingStore wraps a real store and can be told to refuse deletions.
type refusingStore struct {
	media.Store
	refuse bool
}

func (s *refusingStore) Delete(ctx context.Context, ref string) bool {
	if s.refuse {
		return false
	}

	return s.Store.Delete(ctx, ref)
}

// memRecords is a single-column table keyed by the id in an eq filter.
type memRecords struct {
	mu    sync.Mutex
	rows  map[string]map[string]any
	fail  bool
	calls int
}

func newMemRecords() *memRecords {
	return &memRecords{rows: map[string]map[string]any{}}
}

func (r *memRecords) Update(_ context.Context, mod map[string]any, filter gDto.FilterGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls++

	if r.fail {
		return errDatabase
	}

	id, _ := filter.Filters[0].(gDto.Filter).Value.(string)
	if r.rows[id] == nil {
		r.rows[id] = map[string]any{}
	}

	for key, value := range mod {
		r.rows[id][key] = value
	}

	return nil
}

func (r *memRecords) get(id, column string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, _ := r.rows[id][column].(string)

	return value
}

type memCollection struct {
	dir        string
	seq        int
	members    map[string][]memMember
	failRemove bool
	failAdd    bool
}

type memMember struct {
	id       string
	ref      string
	position int
}

func newMemCollection(dir string) *memCollection {
	return &memCollection{dir: dir, members: map[string][]memMember{}}
}

func (c *memCollection) Directory() string {
	return c.dir
}

func (c *memCollection) Members(_ context.Context, parentID string) ([]attachment.Member, error) {
	res := []attachment.Member{}
	for _, member := range c.members[parentID] {
		res = append(res, attachment.Member{ID: member.id, Ref: member.ref, Position: member.position})
	}

	return res, nil
}

func (c *memCollection) Add(_ context.Context, parentID string, position int, ref string) error {
	if c.failAdd {
		return errDatabase
	}

	c.seq++
	c.members[parentID] = append(c.members[parentID], memMember{
		id:       fmt.Sprintf("%s-%d", parentID, c.seq),
		ref:      ref,
		position: position,
	})

	return nil
}

func (c *memCollection) Remove(_ context.Context, memberID string) error {
	if c.failRemove {
		return errDatabase
	}

	for parentID, members := range c.members {
		c.members[parentID] = slices.DeleteFunc(members, func(m memMember) bool { return m.id == memberID })
	}

	return nil
}

func (c *memCollection) refs(parentID string) []string {
	res := []string{}
	for _, member := range c.members[parentID] {
		res = append(res, member.ref)
	}

	return res
}
