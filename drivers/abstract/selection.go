package abstract

import (
	"github.com/datazip-inc/tap-clockify/types"
)

// IsSelected decides whether a catalog entry should be replicated from its
// stream level metadata
func IsSelected(entry *types.CatalogEntry) bool {
	if entry == nil {
		return false
	}

	return IsSelectedMetadata(entry.StreamMetadata())
}

// IsSelectedMetadata applies the selection precedence:
//  1. inclusion "unsupported" is never selected
//  2. an explicit "selected", else "selected-by-default", is used when present
//  3. otherwise only inclusion "automatic" is selected
func IsSelectedMetadata(metadata map[string]any) bool {
	inclusion := types.LookupInclusion(metadata)
	if inclusion == types.Unsupported {
		return false
	}

	selected, defined := types.LookupBool(metadata, types.MetadataSelected)
	if !defined {
		selected, defined = types.LookupBool(metadata, types.MetadataSelectedByDefault)
	}
	if defined {
		return selected
	}

	return inclusion == types.Automatic
}
