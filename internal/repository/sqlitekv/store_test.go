package sqlitekv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workly-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "attendance.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := NewStore(db)
	require.NoError(t, err)
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	key := attendance.Key("u-1", "2025-03-10")

	_, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	record := attendance.StoredRecord{
		CheckInTime:   "09:00:00 AM",
		CheckInTime24: "09:00:00",
		CheckInEpoch:  1741597200,
		CheckedIn:     true,
		WorkHours:     "0:00",
		Location:      "Office",
		Date:          "2025-03-10",
	}
	require.NoError(t, store.Set(ctx, key, record))

	got, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, record, got)
}

func TestStoreUpsert(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	key := attendance.Key("u-1", "2025-03-10")

	require.NoError(t, store.Set(ctx, key, attendance.StoredRecord{
		CheckedIn: true, WorkHours: "0:00", Date: "2025-03-10",
	}))
	require.NoError(t, store.Set(ctx, key, attendance.StoredRecord{
		CheckedIn: false, WorkHours: "8:45", Date: "2025-03-10",
	}))

	got, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, found)
	assert.False(t, got.CheckedIn)
	assert.Equal(t, "8:45", got.WorkHours)
}

func TestStoreKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Set(ctx, attendance.Key("u-1", "2025-03-10"),
		attendance.StoredRecord{Date: "2025-03-10", WorkHours: "8:00"}))
	require.NoError(t, store.Set(ctx, attendance.Key("u-2", "2025-03-10"),
		attendance.StoredRecord{Date: "2025-03-10", WorkHours: "4:00"}))

	got, found, err := store.Get(ctx, attendance.Key("u-2", "2025-03-10"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "4:00", got.WorkHours)
}
