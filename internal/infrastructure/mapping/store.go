// Package mapping provides the in-memory SKU mapping store. Mappings are
// manually curated and loaded at startup; persistence is out of scope for
// this subsystem, so the store is a snapshot that can be replaced wholesale.
package mapping

import (
	"sync"

	"github.com/sellerbridge/backend/internal/domain/channel"
)

// InMemoryStore implements channel.SkuMappingLookup over a snapshot of
// curated mappings. Replace swaps the whole snapshot atomically; lookups
// during a swap see either the old or the new set, never a mix.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[channel.PlatformCode]map[string]string
}

// NewInMemoryStore creates a store preloaded with the given mappings.
func NewInMemoryStore(mappings []channel.SkuMapping) *InMemoryStore {
	s := &InMemoryStore{}
	s.Replace(mappings)
	return s
}

// Lookup returns the internal SKU for a platform product/option pair.
func (s *InMemoryStore) Lookup(platform channel.PlatformCode, productCode, optionCode string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byKey, ok := s.entries[platform]
	if !ok {
		return "", false
	}
	sku, ok := byKey[channel.MappingKey(productCode, optionCode)]
	return sku, ok
}

// Replace swaps the current mapping snapshot for a new one.
func (s *InMemoryStore) Replace(mappings []channel.SkuMapping) {
	entries := make(map[channel.PlatformCode]map[string]string)
	for _, m := range mappings {
		byKey, ok := entries[m.PlatformCode]
		if !ok {
			byKey = make(map[string]string)
			entries[m.PlatformCode] = byKey
		}
		byKey[channel.MappingKey(m.ProductCode, m.OptionCode)] = m.ErpSku
	}
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
}

// Len returns the number of mappings currently loaded.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, byKey := range s.entries {
		n += len(byKey)
	}
	return n
}

// Ensure InMemoryStore implements the lookup port
var _ channel.SkuMappingLookup = (*InMemoryStore)(nil)
