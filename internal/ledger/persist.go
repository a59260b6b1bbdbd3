package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/jask/moneyflow/internal/collection"
	"github.com/jask/moneyflow/internal/store"
)

// Bind restores a collection from the store and subscribes a writer that
// persists the full serialized contents on every committed mutation. It
// returns the writer's unsubscribe function.
//
// Restore happens before the writer is attached, so loading never triggers
// a redundant save.
func Bind[T any](c *collection.Collection[T], s store.Store, key string) (func(), error) {
	data, err := s.Load(key)
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", key, err)
	}
	if len(data) > 0 {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		c.Replace(items)
	}

	unsubscribe := c.Subscribe(func() {
		payload, err := json.Marshal(c.Items())
		if err != nil {
			return
		}
		_ = s.Save(key, payload)
	})
	return unsubscribe, nil
}
