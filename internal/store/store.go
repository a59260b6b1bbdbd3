// Package store is the persistence substrate for entity collections: a
// small key-value surface the core depends on but does not implement. The
// contract is "collections emit their full serialized contents on every
// committed mutation", not "collections write to a specific medium".
package store

// Store loads and saves opaque payloads under logical keys. Load returns
// nil bytes (and no error) for a key that was never saved.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
}

// Logical keys for the three entity collections.
const (
	KeyPaychecks   = "paychecks"
	KeyExpenses    = "expenses"
	KeyAllocations = "allocations"
)
