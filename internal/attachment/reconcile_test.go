package attachment_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/internal/attachment"
)

func TestReconcileHandler(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	ref := put(t, f, "posts")

	value, err := json.Marshal(attachment.OrphanEvent{Ref: ref, ReportedAt: time.Now()})
	require.NoError(t, err)

	handler := attachment.NewReconcileHandler(f.store)

	f.store.refuse = true
	assert.Error(t, handler(ctx, kafkaGo.Message{Value: value}))
	assert.True(t, f.exists(t, ref))

	f.store.refuse = false
	assert.NoError(t, handler(ctx, kafkaGo.Message{Value: value}))
	assert.False(t, f.exists(t, ref))

	assert.NoError(t, handler(ctx, kafkaGo.Message{Value: []byte("not json")}))
}
