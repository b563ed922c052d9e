// Package singer encodes singer protocol messages, one json document per line.
package singer

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/datazip-inc/tap-clockify/types"
	"github.com/goccy/go-json"
)

// Writer emits messages to the pipeline consuming the tap output
type Writer struct {
	out     io.Writer
	encoder *json.Encoder
	now     func() time.Time
	records int64
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{
		out:     out,
		encoder: json.NewEncoder(out),
		now:     time.Now,
	}
}

// Stdout returns a writer on the process standard output
func Stdout() *Writer {
	return NewWriter(os.Stdout)
}

func (w *Writer) write(message *types.Message) error {
	if err := w.encoder.Encode(message); err != nil {
		return fmt.Errorf("failed to write %s message: %w", message.Type, err)
	}

	return nil
}

func (w *Writer) WriteSchema(stream string, schema *types.Schema, keyProperties []string, bookmarkProperties ...string) error {
	return w.write(&types.Message{
		Type:               types.SchemaMessage,
		Stream:             stream,
		Schema:             schema,
		KeyProperties:      keyProperties,
		BookmarkProperties: bookmarkProperties,
	})
}

func (w *Writer) WriteRecord(stream string, record types.Record) error {
	extracted := w.now().UTC()
	if err := w.write(&types.Message{
		Type:          types.RecordMessage,
		Stream:        stream,
		Record:        record,
		TimeExtracted: &extracted,
	}); err != nil {
		return err
	}
	w.records++

	return nil
}

func (w *Writer) WriteState(state types.State) error {
	return w.write(&types.Message{
		Type:  types.StateMessage,
		Value: state,
	})
}

func (w *Writer) WriteConnectionStatus(status *types.StatusRow) error {
	return w.write(&types.Message{
		Type:             types.ConnectionStatusMessage,
		ConnectionStatus: status,
	})
}

// TotalRecords returns the number of records written so far
func (w *Writer) TotalRecords() int64 {
	return w.records
}
