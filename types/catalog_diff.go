package types

import (
	"fmt"

	"github.com/mitchellh/hashstructure"
)

// fingerprint covers what discovery owns; selection metadata is edited by
// users and is left out so toggling a stream is not reported as a change.
type fingerprint struct {
	Schema         *Schema
	KeyProperties  []string
	ReplicationKey string
}

func (c *CatalogEntry) Hash() (uint64, error) {
	return hashstructure.Hash(fingerprint{
		Schema:         c.Schema,
		KeyProperties:  c.KeyProperties,
		ReplicationKey: c.ReplicationKey,
	}, nil)
}

// Difference returns the entries of c that are new or changed compared to old
func (c *Catalog) Difference(old *Catalog) (*Catalog, error) {
	oldHashes := make(map[string]uint64)
	if old != nil {
		for _, entry := range old.Streams {
			if entry == nil {
				continue
			}
			hash, err := entry.Hash()
			if err != nil {
				return nil, fmt.Errorf("failed to hash stream %s: %s", entry.ID(), err)
			}
			oldHashes[entry.ID()] = hash
		}
	}

	difference := NewCatalog()
	for _, entry := range c.Streams {
		if entry == nil {
			continue
		}
		hash, err := entry.Hash()
		if err != nil {
			return nil, fmt.Errorf("failed to hash stream %s: %s", entry.ID(), err)
		}
		if oldHash, found := oldHashes[entry.ID()]; found && oldHash == hash {
			continue
		}
		difference.Streams = append(difference.Streams, entry)
	}

	return difference, nil
}
