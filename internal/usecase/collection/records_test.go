package collection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veluna/internal/domain/entity"
	"veluna/internal/domain/seed"
	"veluna/internal/infra/storage/memory"
)

func TestRecords_UpsertFindDelete(t *testing.T) {
	ctx := context.Background()
	couriers := NewRecords(memory.NewStorage().Tab("a"), "veluna_couriers", seed.Couriers, discardLogger())

	items, err := couriers.Upsert(ctx, entity.Courier{ID: 99, Name: "Yangi kuryer", Phone: "+998"})
	require.NoError(t, err)
	assert.Len(t, items, len(seed.Couriers())+1)

	found, ok, err := couriers.Find(ctx, 99)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Yangi kuryer", found.Name)

	items, err = couriers.Upsert(ctx, entity.Courier{ID: 99, Name: "Tahrirlangan"})
	require.NoError(t, err)
	assert.Len(t, items, len(seed.Couriers())+1)

	found, ok, err = couriers.Find(ctx, 99)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Tahrirlangan", found.Name)

	items, removed, err := couriers.Delete(ctx, 99)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Len(t, items, len(seed.Couriers()))

	_, removed, err = couriers.Delete(ctx, 99)
	require.NoError(t, err)
	assert.False(t, removed)

	_, ok, err = couriers.Find(ctx, 99)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpsert_DoesNotMutateInput(t *testing.T) {
	items := []entity.Banner{{ID: 1, Title: "A"}}

	next := Upsert(items, entity.Banner{ID: 1, Title: "B"})

	assert.Equal(t, "A", items[0].Title)
	assert.Equal(t, "B", next[0].Title)
}

func TestNewID_StrictlyIncreasing(t *testing.T) {
	prev := NewID()
	for range 1000 {
		next := NewID()
		require.Greater(t, next, prev)
		prev = next
	}
}
