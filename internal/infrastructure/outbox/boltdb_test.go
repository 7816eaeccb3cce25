package outbox

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "outbox.db"), "mail")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEnqueueAndGetBatchPreservesOrder(t *testing.T) {
	store := openTestStore(t)

	base := time.Now()
	require.NoError(t, store.Enqueue(Message{ID: "m-1", To: "a@example.com", Timestamp: base}))
	require.NoError(t, store.Enqueue(Message{ID: "m-2", To: "b@example.com", Timestamp: base.Add(time.Second)}))
	require.NoError(t, store.Enqueue(Message{ID: "m-3", To: "c@example.com", Timestamp: base.Add(2 * time.Second)}))

	msgs, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "m-1", msgs[0].ID)
	assert.Equal(t, "m-3", msgs[2].ID)
}

func TestGetBatchHonorsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Enqueue(Message{To: "x@example.com"}))
	}

	msgs, err := store.GetBatch(2)
	require.NoError(t, err)
	assert.Len(t, msgs, 2)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 5, size, "GetBatch does not consume messages")
}

func TestRemove(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(Message{ID: "m-1", To: "a@example.com"}))
	msgs, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	require.NoError(t, store.Remove(msgs[0]))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestRequeueBumpsTimestampToBack(t *testing.T) {
	store := openTestStore(t)

	old := time.Now().Add(-time.Hour)
	require.NoError(t, store.Enqueue(Message{ID: "m-1", To: "a@example.com", Timestamp: old}))
	require.NoError(t, store.Enqueue(Message{ID: "m-2", To: "b@example.com", Timestamp: old.Add(time.Minute)}))

	msgs, err := store.GetBatch(1)
	require.NoError(t, err)
	require.NoError(t, store.Remove(msgs[0]))

	retry := msgs[0]
	retry.Retries++
	require.NoError(t, store.Requeue(retry))

	msgs, err = store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m-2", msgs[0].ID)
	assert.Equal(t, "m-1", msgs[1].ID, "requeued message goes to the back of the queue")
	assert.Equal(t, 1, msgs[1].Retries)
}

func TestCleanupDropsOldMessages(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(Message{ID: "old", Timestamp: time.Now().Add(-48 * time.Hour)}))
	require.NoError(t, store.Enqueue(Message{ID: "fresh", Timestamp: time.Now()}))

	require.NoError(t, store.Cleanup(time.Now().Add(-24*time.Hour)))

	msgs, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "fresh", msgs[0].ID)
}
