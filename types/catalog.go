package types

// Catalog is a dto for singer catalog serialization
type Catalog struct {
	Streams []*CatalogEntry `json:"streams"`
}

// CatalogEntry describes one replicable stream along with its schema and selection metadata
type CatalogEntry struct {
	Stream            string   `json:"stream"`
	TapStreamID       string   `json:"tap_stream_id"`
	KeyProperties     []string `json:"key_properties"`
	Schema            *Schema  `json:"schema"`
	Metadata          Metadata `json:"metadata"`
	ReplicationKey    string   `json:"replication_key,omitempty"`
	ReplicationMethod string   `json:"replication_method,omitempty"`
}

func NewCatalog(entries ...*CatalogEntry) *Catalog {
	catalog := &Catalog{
		Streams: []*CatalogEntry{},
	}
	catalog.Streams = append(catalog.Streams, entries...)

	return catalog
}

// ID returns the tap stream id falling back to the stream name
func (c *CatalogEntry) ID() string {
	if c.TapStreamID != "" {
		return c.TapStreamID
	}

	return c.Stream
}

// StreamMetadata returns the stream level (empty breadcrumb) annotations
func (c *CatalogEntry) StreamMetadata() map[string]any {
	return c.Metadata.ToMap().Stream()
}

// StreamNames returns the names of all entries in catalog order, skipping null entries
func (c *Catalog) StreamNames() []string {
	if c == nil {
		return nil
	}

	names := make([]string, 0, len(c.Streams))
	for _, entry := range c.Streams {
		if entry != nil {
			names = append(names, entry.Stream)
		}
	}

	return names
}
