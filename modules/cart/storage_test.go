package cart

import (
	"context"
	"testing"
	"time"

	"github.com/go-monolith/mono"
	kvjetstream "github.com/go-monolith/mono/plugin/kv-jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/example/furniture-configurator/domain/cart"
)

// newKVStore starts an embedded mono application with an in-memory carts
// bucket.
func newKVStore(t *testing.T) *KVStore {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping JetStream KV test in short mode")
	}

	app, err := mono.NewMonoApplication(
		mono.WithLogLevel(mono.LogLevelError), // Suppress logs in tests
	)
	require.NoError(t, err)

	plugin, err := kvjetstream.New(kvjetstream.Config{
		Buckets: []kvjetstream.BucketConfig{
			{
				Name:        BucketName,
				Description: "Test carts",
				TTL:         time.Hour,
				Storage:     kvjetstream.MemoryStorage,
			},
		},
	})
	require.NoError(t, err)
	require.NoError(t, app.RegisterPlugin(plugin, "kv"))

	require.NoError(t, app.Start(context.Background()))
	t.Cleanup(func() {
		_ = app.Stop(context.Background())
	})

	bucket := plugin.Bucket(BucketName)
	require.NotNil(t, bucket)
	return NewKVStore(bucket, 0)
}

func testStoreContract(t *testing.T, store Store) {
	ctx := context.Background()

	_, found, err := store.Load(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	c := domain.New("cart-1")
	c.Items = append(c.Items, domain.Item{ID: "item-1", ProductID: "sofa-modern-1", Quantity: 2, UnitPrice: 1479})
	require.NoError(t, store.Save(ctx, c))

	// Stored carts are detached from the caller's copy
	c.Items[0].Quantity = 9

	loaded, found, err := store.Load(ctx, "cart-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 2, loaded.Items[0].Quantity)
	assert.Equal(t, int64(2958), loaded.Total())

	require.NoError(t, store.Delete(ctx, "cart-1"))
	_, found, err = store.Load(ctx, "cart-1")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting twice is not an error
	assert.NoError(t, store.Delete(ctx, "cart-1"))
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, NewMemoryStore())
}

func TestKVStore(t *testing.T) {
	testStoreContract(t, newKVStore(t))
}
