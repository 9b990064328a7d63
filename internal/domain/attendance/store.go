package attendance

import "context"

// Store is the persisted key-value layer behind the tracker: one entry per
// user-date pair, keyed by Key(userID, date). No transactions and no
// multi-key atomicity are required.
type Store interface {
	// Get returns the stored record for key, reporting absence via the
	// second return. Absence is not an error.
	Get(ctx context.Context, key string) (StoredRecord, bool, error)

	// Set writes the record for key, overwriting any previous value.
	Set(ctx context.Context, key string, value StoredRecord) error
}
