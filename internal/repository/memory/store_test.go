package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workly-hq/hrms-backend-go/internal/domain/attendance"
)

func TestStoreGetSet(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	key := attendance.Key("u-1", "2025-03-10")

	_, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	record := attendance.StoredRecord{
		CheckedIn: true,
		WorkHours: "0:00",
		Date:      "2025-03-10",
	}
	require.NoError(t, store.Set(ctx, key, record))

	got, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, record, got)

	// Set overwrites.
	record.CheckedIn = false
	record.WorkHours = "8:00"
	require.NoError(t, store.Set(ctx, key, record))

	got, _, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "8:00", got.WorkHours)
	assert.False(t, got.CheckedIn)
}
