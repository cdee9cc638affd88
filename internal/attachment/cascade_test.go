package attachment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/internal/attachment"
)

// tree mirrors place -> (sub-images, days -> photos) with removal order tracking.
type tree struct {
	records map[string]bool
	removed []string
	failOn  string
}

func (tr *tree) leaf(name, ref string) attachment.Node {
	tr.records[name] = true

	return attachment.Leaf(name, ref, func(context.Context) error {
		return tr.remove(name)
	})
}

func (tr *tree) branch(name string, refs []string, children ...attachment.Node) attachment.Node {
	tr.records[name] = true

	return attachment.NewNode(name, refs, func(context.Context) error {
		return tr.remove(name)
	}, func(context.Context) ([]attachment.Node, error) {
		return children, nil
	})
}

func (tr *tree) remove(name string) error {
	if name == tr.failOn {
		return errDatabase
	}

	delete(tr.records, name)
	tr.removed = append(tr.removed, name)

	return nil
}

func put(t *testing.T, f *fixture, dir string) string {
	t.Helper()

	ref, err := f.manager.Put(context.Background(), dir, upload("x.jpg", "x"))
	require.NoError(t, err)

	return ref
}

func TestManager_CascadeDelete(t *testing.T) {
	ctx := context.Background()

	build := func(t *testing.T, f *fixture, tr *tree) (attachment.Node, []string) {
		t.Helper()

		main := put(t, f, "places")
		sub1 := put(t, f, "place_images")
		sub2 := put(t, f, "place_images")
		photo1 := put(t, f, "itinerary_photos")
		photo2 := put(t, f, "itinerary_photos")

		place := tr.branch("place", []string{main},
			tr.leaf("image-1", sub1),
			tr.leaf("image-2", sub2),
			tr.branch("day-1", nil, tr.leaf("photo-1", photo1)),
			tr.branch("day-2", nil, tr.leaf("photo-2", photo2)),
		)

		return place, []string{main, sub1, sub2, photo1, photo2}
	}

	t.Run("removes every record and object", func(t *testing.T) {
		f := newFixture(t, nil)
		tr := &tree{records: map[string]bool{}}

		place, refs := build(t, f, tr)

		report, err := f.manager.CascadeDelete(ctx, place)

		require.NoError(t, err)
		assert.True(t, report.Empty())
		assert.Empty(t, tr.records)

		for _, ref := range refs {
			assert.False(t, f.exists(t, ref), ref)
		}

		assert.Equal(t, "place", tr.removed[len(tr.removed)-1])
		assert.Less(t, indexOf(tr.removed, "photo-1"), indexOf(tr.removed, "day-1"))
	})

	t.Run("record failure stops the walk and keeps ancestors reachable", func(t *testing.T) {
		f := newFixture(t, nil)
		tr := &tree{records: map[string]bool{}, failOn: "day-2"}

		place, refs := build(t, f, tr)

		_, err := f.manager.CascadeDelete(ctx, place)

		require.ErrorIs(t, err, errDatabase)
		assert.True(t, tr.records["place"])
		assert.True(t, tr.records["day-2"])
		assert.False(t, tr.records["photo-2"])

		// place main image still owned by the surviving place record
		assert.True(t, f.exists(t, refs[0]))
		assert.False(t, f.exists(t, refs[4]))
	})

	t.Run("media failures do not abort", func(t *testing.T) {
		f := newFixture(t, nil)
		tr := &tree{records: map[string]bool{}}

		place, refs := build(t, f, tr)
		f.store.refuse = true

		report, err := f.manager.CascadeDelete(ctx, place)

		require.NoError(t, err)
		assert.Empty(t, tr.records)
		assert.ElementsMatch(t, refs, report.Orphaned)
	})
}

func indexOf(items []string, item string) int {
	for idx, candidate := range items {
		if candidate == item {
			return idx
		}
	}

	return -1
}
