package types

import (
	"sort"
	"strings"
)

// Inclusion describes whether a stream or field can be replicated
type Inclusion string

const (
	Automatic   Inclusion = "automatic"
	Available   Inclusion = "available"
	Unsupported Inclusion = "unsupported"
)

const (
	MetadataInclusion               = "inclusion"
	MetadataSelected                = "selected"
	MetadataSelectedByDefault       = "selected-by-default"
	MetadataTableKeyProperties      = "table-key-properties"
	MetadataForcedReplicationMethod = "forced-replication-method"
	MetadataValidReplicationKeys    = "valid-replication-keys"
)

// Breadcrumb identifies which part of a stream an annotation applies to;
// empty means the stream itself, ["properties", "<field>"] a field.
type Breadcrumb []string

func (b Breadcrumb) key() string {
	return strings.Join(b, "\x00")
}

// FieldBreadcrumb returns the breadcrumb of a top level schema property
func FieldBreadcrumb(field string) Breadcrumb {
	return Breadcrumb{"properties", field}
}

type MetadataEntry struct {
	Breadcrumb Breadcrumb     `json:"breadcrumb"`
	Metadata   map[string]any `json:"metadata"`
}

// Metadata is the list form of catalog metadata as found in catalog files
type Metadata []*MetadataEntry

// MetadataMap indexes annotations by breadcrumb
type MetadataMap map[string]map[string]any

// ToMap converts the list form into a map keyed by breadcrumb; a later entry
// for the same breadcrumb replaces the earlier one.
func (m Metadata) ToMap() MetadataMap {
	result := MetadataMap{}
	for _, entry := range m {
		if entry == nil {
			continue
		}
		values := make(map[string]any, len(entry.Metadata))
		for key, value := range entry.Metadata {
			values[key] = value
		}
		result[entry.Breadcrumb.key()] = values
	}

	return result
}

func (mm MetadataMap) Get(breadcrumb Breadcrumb) map[string]any {
	values, found := mm[breadcrumb.key()]
	if !found {
		return map[string]any{}
	}

	return values
}

// Stream returns the stream level annotations
func (mm MetadataMap) Stream() map[string]any {
	return mm.Get(Breadcrumb{})
}

func (mm MetadataMap) Write(breadcrumb Breadcrumb, values map[string]any) {
	key := breadcrumb.key()
	current, found := mm[key]
	if !found {
		current = map[string]any{}
		mm[key] = current
	}
	for k, v := range values {
		current[k] = v
	}
}

// ToList converts the map back to list form; the stream level entry comes
// first followed by the rest ordered by breadcrumb.
func (mm MetadataMap) ToList() Metadata {
	keys := make([]string, 0, len(mm))
	for key := range mm {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	list := Metadata{}
	for _, key := range keys {
		breadcrumb := Breadcrumb{}
		if key != "" {
			breadcrumb = strings.Split(key, "\x00")
		}
		list = append(list, &MetadataEntry{
			Breadcrumb: breadcrumb,
			Metadata:   mm[key],
		})
	}

	return list
}

// LookupBool returns a boolean annotation; non boolean values are treated as absent
func LookupBool(values map[string]any, key string) (bool, bool) {
	raw, found := values[key]
	if !found || raw == nil {
		return false, false
	}
	b, ok := raw.(bool)
	return b, ok
}

// LookupInclusion returns the inclusion annotation or empty when missing
func LookupInclusion(values map[string]any) Inclusion {
	raw, _ := values[MetadataInclusion].(string)
	return Inclusion(raw)
}
