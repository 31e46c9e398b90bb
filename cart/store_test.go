package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodhub/foodhub-go/core"
	"github.com/foodhub/foodhub-go/storage"
)

func testMeal(id string, priceCents int64) core.Meal {
	return core.Meal{
		ID:          id,
		Title:       "Meal " + id,
		PriceCents:  priceCents,
		CategoryID:  "cat-1",
		ProviderID:  "prov-1",
		IsAvailable: true,
	}
}

func TestAddItem_NewLine(t *testing.T) {
	ctx := context.Background()
	store := New(storage.NewMemoryStore())

	store.AddItem(ctx, testMeal("m1", 500))

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "m1", lines[0].ID)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestAddItem_SameMealIncrementsQuantity(t *testing.T) {
	ctx := context.Background()
	store := New(storage.NewMemoryStore())

	// Repeated adds of the same meal must never produce duplicate lines.
	for i := 0; i < 5; i++ {
		store.AddItem(ctx, testMeal("m1", 500))
	}

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 5, store.TotalItems())
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	store := New(storage.NewMemoryStore())

	store.AddItem(ctx, testMeal("m1", 500))
	store.AddItem(ctx, testMeal("m2", 700))

	store.RemoveItem(ctx, "m1")

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "m2", lines[0].ID)
}

func TestRemoveItem_AbsentIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := New(storage.NewMemoryStore())

	store.AddItem(ctx, testMeal("m1", 500))
	store.RemoveItem(ctx, "no-such-meal")

	assert.Len(t, store.Lines(), 1)
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		quantity  int
		wantLines int
		wantQty   int
		wantItems int
	}{
		{name: "absolute set", quantity: 7, wantLines: 1, wantQty: 7, wantItems: 7},
		{name: "set to one", quantity: 1, wantLines: 1, wantQty: 1, wantItems: 1},
		{name: "zero removes the line", quantity: 0, wantLines: 0, wantItems: 0},
		{name: "negative removes the line", quantity: -3, wantLines: 0, wantItems: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := New(storage.NewMemoryStore())
			store.AddItem(ctx, testMeal("m1", 500))
			store.AddItem(ctx, testMeal("m1", 500))

			store.UpdateQuantity(ctx, "m1", tt.quantity)

			lines := store.Lines()
			require.Len(t, lines, tt.wantLines)
			if tt.wantLines > 0 {
				assert.Equal(t, tt.wantQty, lines[0].Quantity)
			}
			assert.Equal(t, tt.wantItems, store.TotalItems())
		})
	}
}

func TestTotals_RecomputedAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	store := New(storage.NewMemoryStore())

	store.AddItem(ctx, testMeal("m1", 500))
	store.AddItem(ctx, testMeal("m1", 500))
	store.AddItem(ctx, testMeal("m2", 250))

	assert.Equal(t, 3, store.TotalItems())
	assert.Equal(t, int64(1250), store.TotalPrice())

	store.UpdateQuantity(ctx, "m2", 4)
	assert.Equal(t, 6, store.TotalItems())
	assert.Equal(t, int64(2000), store.TotalPrice())

	store.RemoveItem(ctx, "m1")
	assert.Equal(t, 4, store.TotalItems())
	assert.Equal(t, int64(1000), store.TotalPrice())
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()

	store := New(backing)
	store.AddItem(ctx, testMeal("m1", 500))
	store.AddItem(ctx, testMeal("m2", 750))
	store.UpdateQuantity(ctx, "m2", 3)

	// A second store over the same backing must reproduce identical lines.
	restored := New(backing)
	require.NoError(t, restored.Hydrate(ctx))

	lines := restored.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "m1", lines[0].ID)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, int64(500), lines[0].PriceCents)
	assert.Equal(t, "m2", lines[1].ID)
	assert.Equal(t, 3, lines[1].Quantity)
	assert.Equal(t, int64(750), lines[1].PriceCents)
	assert.Equal(t, store.TotalPrice(), restored.TotalPrice())
}

func TestClear_DeletesPersistedEntry(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()

	store := New(backing)
	store.AddItem(ctx, testMeal("m1", 500))

	store.Clear(ctx)

	assert.Empty(t, store.Lines())
	assert.Equal(t, int64(0), store.TotalPrice())

	// The storage key itself is gone, not replaced with an empty array.
	exists, err := backing.Exists(ctx, core.StorageKeyCart)
	require.NoError(t, err)
	assert.False(t, exists)

	// A reload cannot resurrect old lines.
	reloaded := New(backing)
	require.NoError(t, reloaded.Hydrate(ctx))
	assert.Empty(t, reloaded.Lines())
}

func TestHydrate_AbsentKeyMeansEmptyCart(t *testing.T) {
	ctx := context.Background()
	store := New(storage.NewMemoryStore())

	require.NoError(t, store.Hydrate(ctx))
	assert.Empty(t, store.Lines())
	assert.Equal(t, 0, store.TotalItems())
}

func TestHydrate_CorruptValueStartsEmpty(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()
	require.NoError(t, backing.Set(ctx, core.StorageKeyCart, "{not json", 0))

	store := New(backing)
	require.NoError(t, store.Hydrate(ctx))
	assert.Empty(t, store.Lines())
}

func TestAddTwiceThenZeroQuantity_EmptiesCart(t *testing.T) {
	ctx := context.Background()
	store := New(storage.NewMemoryStore())

	store.AddItem(ctx, testMeal("m1", 500))
	store.AddItem(ctx, testMeal("m1", 500))
	store.UpdateQuantity(ctx, "m1", 0)

	assert.Empty(t, store.Lines())
	assert.Equal(t, int64(0), store.TotalPrice())
}

// notifyRecorder captures store feedback for assertions.
type notifyRecorder struct {
	successes []string
	errors    []string
}

func (n *notifyRecorder) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *notifyRecorder) Error(msg string)   { n.errors = append(n.errors, msg) }

func TestNotifications(t *testing.T) {
	ctx := context.Background()
	recorder := &notifyRecorder{}
	store := New(storage.NewMemoryStore(), WithNotifier(recorder))

	store.AddItem(ctx, testMeal("m1", 500))
	store.AddItem(ctx, testMeal("m1", 500))
	store.RemoveItem(ctx, "m1")

	require.Len(t, recorder.successes, 2)
	assert.Contains(t, recorder.successes[0], "Added")
	assert.Contains(t, recorder.successes[1], "Increased")
	require.Len(t, recorder.errors, 1)
	assert.Equal(t, "Removed from cart", recorder.errors[0])
}
