package types

import (
	"fmt"

	"github.com/goccy/go-json"
)

// SchemaType holds either a single json schema type or a list of them
type SchemaType []string

func (t SchemaType) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}

	return json.Marshal([]string(t))
}

func (t *SchemaType) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = SchemaType{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("schema type must be a string or a list of strings: %s", err)
	}
	*t = list

	return nil
}

// Has reports whether typ is one of the declared types
func (t SchemaType) Has(typ string) bool {
	for _, elem := range t {
		if elem == typ {
			return true
		}
	}

	return false
}

// Schema is a dto for the json schema of a stream; keywords without a
// dedicated field are kept in Extra and written back unchanged.
type Schema struct {
	Type                 SchemaType         `json:"type,omitempty"`
	Format               string             `json:"format,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty"`
	Extra                map[string]any     `json:"-"`
}

type schemaFields Schema

var schemaKeywords = map[string]bool{
	"type":                 true,
	"format":               true,
	"properties":           true,
	"items":                true,
	"additionalProperties": true,
}

func (s *Schema) UnmarshalJSON(data []byte) error {
	fields := schemaFields{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for keyword := range schemaKeywords {
		delete(raw, keyword)
	}
	if len(raw) > 0 {
		fields.Extra = raw
	}

	*s = Schema(fields)
	return nil
}

func (s Schema) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(schemaFields(s))
	if err != nil || len(s.Extra) == 0 {
		return data, err
	}

	merged := map[string]any{}
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for keyword, value := range s.Extra {
		if !schemaKeywords[keyword] {
			merged[keyword] = value
		}
	}

	return json.Marshal(merged)
}

// PropertyNames returns the top level property names of an object schema
func (s *Schema) PropertyNames() []string {
	if s == nil {
		return nil
	}

	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}

	return names
}
