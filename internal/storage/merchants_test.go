package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keesa/smsparse/internal/common"
	"github.com/keesa/smsparse/internal/model"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestSaveAndGetMerchant(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	err := store.SaveMerchant(ctx, &model.Merchant{
		Name:        "Amazon",
		DisplayName: "Amazon",
		Source:      model.SourceImport,
	})
	require.NoError(t, err)

	got, err := store.GetMerchant(ctx, "amazon")
	require.NoError(t, err)
	assert.Equal(t, "amazon", got.Name, "stored name is normalized")
	assert.Equal(t, "Amazon", got.DisplayName)
	assert.Equal(t, model.SourceImport, got.Source)

	// Lookup normalizes too.
	got, err = store.GetMerchant(ctx, "  AMAZON ")
	require.NoError(t, err)
	assert.Equal(t, "amazon", got.Name)
}

func TestGetMerchantNotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetMerchant(context.Background(), "nobody")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveMerchantUpsert(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveMerchant(ctx, &model.Merchant{
		Name: "swiggy", DisplayName: "swiggy", Source: model.SourceImport,
	}))
	require.NoError(t, store.SaveMerchant(ctx, &model.Merchant{
		Name: "Swiggy", DisplayName: "Swiggy Ltd", Source: model.SourceManual,
	}))

	count, err := store.CountMerchants(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := store.GetMerchant(ctx, "swiggy")
	require.NoError(t, err)
	assert.Equal(t, "Swiggy Ltd", got.DisplayName)
	assert.Equal(t, model.SourceManual, got.Source)
}

func TestSaveMerchantValidation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	assert.Error(t, store.SaveMerchant(ctx, nil))
	assert.Error(t, store.SaveMerchant(ctx, &model.Merchant{Name: " ", DisplayName: "x"}))
	assert.Error(t, store.SaveMerchant(ctx, &model.Merchant{Name: "x", DisplayName: ""}))
}

func TestListMerchantsOrdered(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	for _, name := range []string{"zomato", "amazon", "swiggy"} {
		require.NoError(t, store.SaveMerchant(ctx, &model.Merchant{
			Name: name, DisplayName: name, Source: model.SourceImport,
		}))
	}

	merchants, err := store.ListMerchants(ctx)
	require.NoError(t, err)
	require.Len(t, merchants, 3)

	var names []string
	for _, m := range merchants {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"amazon", "swiggy", "zomato"}, names)
}

func TestRecordIndexBuild(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.RecordIndexBuild(ctx, "build-abc", 42, 128))
	assert.Error(t, store.RecordIndexBuild(ctx, "build-abc", 42, 128), "duplicate build id must fail")
	assert.Error(t, store.RecordIndexBuild(ctx, " ", 1, 1))
}

func TestMigrateIdempotent(t *testing.T) {
	store := createTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))
}
