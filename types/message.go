package types

import "time"

// Record is a single row emitted for a stream
type Record map[string]any

// Message is a dto for singer output line representation
type Message struct {
	Type               MessageType `json:"type"`
	Stream             string      `json:"stream,omitempty"`
	Schema             *Schema     `json:"schema,omitempty"`
	KeyProperties      []string    `json:"key_properties,omitempty"`
	BookmarkProperties []string    `json:"bookmark_properties,omitempty"`
	Record             Record      `json:"record,omitempty"`
	TimeExtracted      *time.Time  `json:"time_extracted,omitempty"`
	Value              State       `json:"value,omitempty"`
	ConnectionStatus   *StatusRow  `json:"connectionStatus,omitempty"`
}

// StatusRow is a dto for connection check result serialization
type StatusRow struct {
	Status  ConnectionStatus `json:"status,omitempty"`
	Message string           `json:"message,omitempty"`
}
