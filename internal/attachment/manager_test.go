package attachment_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"voyage/infras/kafka"
	kafkaMocks "voyage/infras/kafka/mocks"
	"voyage/infras/media"
	"voyage/infras/metrics"
	"voyage/infras/otel/mocks"
	"voyage/internal/attachment"
	"voyage/shared"
)

type fixture struct {
	fs      afero.Fs
	store   *refusingStore
	manager attachment.Manager
}

func newFixture(t *testing.T, sink attachment.OrphanSink) *fixture {
	t.Helper()

	fs := afero.NewMemMapFs()
	store := &refusingStore{Store: media.NewLocalStore(fs, "", mocks.NewOtel())}

	if sink == nil {
		sink = attachment.NewLogSink()
	}

	return &fixture{
		fs:      fs,
		store:   store,
		manager: attachment.New(store, sink, metrics.New(), mocks.NewOtel()),
	}
}

func (f *fixture) exists(t *testing.T, ref string) bool {
	t.Helper()

	ok, err := afero.Exists(f.fs, ref)
	require.NoError(t, err)

	return ok
}

func upload(name, content string) *attachment.Upload {
	return &attachment.Upload{
		Name:        name,
		ContentType: "image/jpeg",
		Size:        int64(len(content)),
		Body:        strings.NewReader(content),
	}
}

func slot(records *memRecords, id, current string) attachment.Slot {
	return attachment.Slot{
		Records:   records,
		Filter:    shared.FilterByID(id, "id", "items"),
		Column:    "image",
		Directory: "items",
		Current:   current,
	}
}

func TestManager_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores media before insert", func(t *testing.T) {
		f := newFixture(t, nil)

		var inserted string
		ref, err := f.manager.Create(ctx, "items", upload("a.jpg", "x"), func(ref string) error {
			inserted = ref

			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, ref, inserted)
		assert.True(t, f.exists(t, ref))
	})

	t.Run("no upload inserts an empty reference", func(t *testing.T) {
		f := newFixture(t, nil)

		ref, err := f.manager.Create(ctx, "items", nil, func(ref string) error {
			assert.Empty(t, ref)

			return nil
		})

		require.NoError(t, err)
		assert.Empty(t, ref)
	})

	t.Run("failed insert releases stored media", func(t *testing.T) {
		f := newFixture(t, nil)

		var stored string
		_, err := f.manager.Create(ctx, "items", upload("a.jpg", "x"), func(ref string) error {
			stored = ref

			return errDatabase
		})

		require.ErrorIs(t, err, errDatabase)
		assert.False(t, f.exists(t, stored))
	})

	t.Run("storage failure never inserts", func(t *testing.T) {
		f := newFixture(t, nil)

		broken := &attachment.Upload{Name: "a.jpg", Body: iotest.ErrReader(errors.New("broken pipe"))}

		_, err := f.manager.Create(ctx, "items", broken, func(string) error {
			t.Fatal("insert must not run")

			return nil
		})

		assert.Error(t, err)
	})
}

func TestManager_Attach(t *testing.T) {
	ctx := context.Background()

	t.Run("writes reference", func(t *testing.T) {
		f := newFixture(t, nil)
		records := newMemRecords()

		ref, err := f.manager.Attach(ctx, slot(records, "item-1", ""), upload("a.jpg", "x"))

		require.NoError(t, err)
		assert.Equal(t, ref, records.get("item-1", "image"))
		assert.True(t, f.exists(t, ref))
	})

	t.Run("extra columns written with the reference", func(t *testing.T) {
		f := newFixture(t, nil)
		records := newMemRecords()

		s := slot(records, "item-1", "")
		s.With = map[string]any{"modified_by": "admin"}

		_, err := f.manager.Attach(ctx, s, upload("a.jpg", "x"))

		require.NoError(t, err)
		assert.Equal(t, "admin", records.get("item-1", "modified_by"))
		assert.Equal(t, 1, records.calls)
	})

	t.Run("record failure releases the new object", func(t *testing.T) {
		f := newFixture(t, nil)
		records := newMemRecords()
		records.fail = true

		ref, err := f.manager.Attach(ctx, slot(records, "item-1", ""), upload("a.jpg", "x"))

		require.Error(t, err)
		assert.Empty(t, ref)

		files, _ := afero.ReadDir(f.fs, "items")
		assert.Empty(t, files)
	})

	t.Run("empty upload", func(t *testing.T) {
		f := newFixture(t, nil)

		_, err := f.manager.Attach(ctx, slot(newMemRecords(), "item-1", ""), nil)

		assert.ErrorIs(t, err, attachment.ErrEmptyUpload)
	})
}

func TestManager_Replace(t *testing.T) {
	ctx := context.Background()

	t.Run("old object deleted and never read back", func(t *testing.T) {
		f := newFixture(t, nil)
		records := newMemRecords()

		old, err := f.manager.Attach(ctx, slot(records, "item-1", ""), upload("old.jpg", "old"))
		require.NoError(t, err)

		ref, report, err := f.manager.Replace(ctx, slot(records, "item-1", old), upload("new.jpg", "new"))

		require.NoError(t, err)
		assert.True(t, report.Empty())
		assert.NotEqual(t, old, ref)
		assert.Equal(t, ref, records.get("item-1", "image"))
		assert.False(t, f.exists(t, old))
		assert.True(t, f.exists(t, ref))
	})

	t.Run("delete failure reports the old object", func(t *testing.T) {
		f := newFixture(t, nil)
		records := newMemRecords()

		old, err := f.manager.Attach(ctx, slot(records, "item-1", ""), upload("old.jpg", "old"))
		require.NoError(t, err)

		f.store.refuse = true

		ref, report, err := f.manager.Replace(ctx, slot(records, "item-1", old), upload("new.jpg", "new"))

		require.NoError(t, err)
		assert.Equal(t, []string{old}, report.Orphaned)
		assert.Equal(t, ref, records.get("item-1", "image"))
	})

	t.Run("record failure keeps the old reference and object", func(t *testing.T) {
		f := newFixture(t, nil)
		records := newMemRecords()

		old, err := f.manager.Attach(ctx, slot(records, "item-1", ""), upload("old.jpg", "old"))
		require.NoError(t, err)

		records.fail = true

		_, _, err = f.manager.Replace(ctx, slot(records, "item-1", old), upload("new.jpg", "new"))

		require.Error(t, err)
		assert.Equal(t, old, records.get("item-1", "image"))
		assert.True(t, f.exists(t, old))
	})
}

func TestManager_Clear(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	records := newMemRecords()

	ref, err := f.manager.Attach(ctx, slot(records, "item-1", ""), upload("a.jpg", "x"))
	require.NoError(t, err)

	report, err := f.manager.Clear(ctx, slot(records, "item-1", ref))
	require.NoError(t, err)
	assert.True(t, report.Empty())
	assert.Empty(t, records.get("item-1", "image"))
	assert.False(t, f.exists(t, ref))

	calls := records.calls

	report, err = f.manager.Clear(ctx, slot(records, "item-1", records.get("item-1", "image")))
	require.NoError(t, err)
	assert.True(t, report.Empty())
	assert.Empty(t, records.get("item-1", "image"))
	assert.Equal(t, calls, records.calls)
}

func TestManager_ReplaceCollection(t *testing.T) {
	ctx := context.Background()

	t.Run("two sub-images replaced by one", func(t *testing.T) {
		f := newFixture(t, nil)
		coll := newMemCollection("place_images")

		_, err := f.manager.Append(ctx, coll, "place-1", []*attachment.Upload{upload("a.jpg", "a"), upload("b.jpg", "b")})
		require.NoError(t, err)

		originals := coll.refs("place-1")
		require.Len(t, originals, 2)

		report, err := f.manager.ReplaceCollection(ctx, coll, "place-1", []*attachment.Upload{upload("c.jpg", "c")})

		require.NoError(t, err)
		assert.True(t, report.Empty())
		require.Len(t, coll.members["place-1"], 1)
		assert.Equal(t, 0, coll.members["place-1"][0].position)

		for _, ref := range originals {
			assert.False(t, f.exists(t, ref))
		}

		assert.True(t, f.exists(t, coll.refs("place-1")[0]))
	})

	t.Run("input order preserved", func(t *testing.T) {
		f := newFixture(t, nil)
		coll := newMemCollection("place_images")

		_, err := f.manager.ReplaceCollection(ctx, coll, "place-1", []*attachment.Upload{upload("a.jpg", "a"), upload("b.jpg", "b"), upload("c.jpg", "c")})
		require.NoError(t, err)

		for idx, member := range coll.members["place-1"] {
			assert.Equal(t, idx, member.position)

			content, err := afero.ReadFile(f.fs, member.ref)
			require.NoError(t, err)
			assert.Equal(t, string(rune('a'+idx)), string(content))
		}
	})

	t.Run("storage failure leaves current members", func(t *testing.T) {
		f := newFixture(t, nil)
		coll := newMemCollection("place_images")

		_, err := f.manager.Append(ctx, coll, "place-1", []*attachment.Upload{upload("a.jpg", "a")})
		require.NoError(t, err)

		original := coll.refs("place-1")

		broken := &attachment.Upload{Name: "b.jpg", Body: iotest.ErrReader(errors.New("broken pipe"))}
		_, err = f.manager.ReplaceCollection(ctx, coll, "place-1", []*attachment.Upload{upload("ok.jpg", "ok"), broken})

		require.Error(t, err)
		assert.Equal(t, original, coll.refs("place-1"))
		assert.True(t, f.exists(t, original[0]))

		files, _ := afero.ReadDir(f.fs, "place_images")
		assert.Len(t, files, 1)
	})

	t.Run("remove failure aborts and releases new uploads", func(t *testing.T) {
		f := newFixture(t, nil)
		coll := newMemCollection("place_images")

		_, err := f.manager.Append(ctx, coll, "place-1", []*attachment.Upload{upload("a.jpg", "a")})
		require.NoError(t, err)

		coll.failRemove = true

		_, err = f.manager.ReplaceCollection(ctx, coll, "place-1", []*attachment.Upload{upload("b.jpg", "b")})

		require.ErrorIs(t, err, errDatabase)
		assert.Len(t, coll.members["place-1"], 1)

		files, _ := afero.ReadDir(f.fs, "place_images")
		assert.Len(t, files, 1)
	})

	t.Run("orphans reported when old media cannot be deleted", func(t *testing.T) {
		f := newFixture(t, nil)
		coll := newMemCollection("place_images")

		_, err := f.manager.Append(ctx, coll, "place-1", []*attachment.Upload{upload("a.jpg", "a")})
		require.NoError(t, err)

		original := coll.refs("place-1")
		f.store.refuse = true

		report, err := f.manager.ReplaceCollection(ctx, coll, "place-1", []*attachment.Upload{upload("b.jpg", "b")})

		require.NoError(t, err)
		assert.Equal(t, original, report.Orphaned)
		assert.NotEqual(t, original, coll.refs("place-1"))
	})
}

func TestManager_Append(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	coll := newMemCollection("place_images")

	_, err := f.manager.Append(ctx, coll, "place-1", []*attachment.Upload{upload("a.jpg", "a")})
	require.NoError(t, err)

	_, err = f.manager.Append(ctx, coll, "place-1", []*attachment.Upload{upload("b.jpg", "b"), upload("c.jpg", "c")})
	require.NoError(t, err)

	positions := []int{}
	for _, member := range coll.members["place-1"] {
		positions = append(positions, member.position)
	}

	assert.Equal(t, []int{0, 1, 2}, positions)

	coll.failAdd = true

	_, err = f.manager.Append(ctx, coll, "place-1", []*attachment.Upload{upload("d.jpg", "d")})
	require.ErrorIs(t, err, errDatabase)

	files, _ := afero.ReadDir(f.fs, "place_images")
	assert.Len(t, files, 3)
}

func TestOrphansPublished(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)
	f := newFixture(t, attachment.NewKafkaSink(client, "media.orphaned"))

	ctx := context.Background()
	records := newMemRecords()

	old, err := f.manager.Attach(ctx, slot(records, "item-1", ""), upload("old.jpg", "old"))
	require.NoError(t, err)

	client.EXPECT().
		SendMessages(gomock.Any(), "media.orphaned", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			require.Len(t, messages, 1)
			assert.Equal(t, old, messages[0].Key)

			return errors.New("broker down")
		})

	f.store.refuse = true

	report, err := f.manager.Clear(ctx, slot(records, "item-1", old))

	require.NoError(t, err)
	assert.True(t, report.Contains(old))
	assert.Empty(t, records.get("item-1", "image"))
}
