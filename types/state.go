package types

import (
	"github.com/datazip-inc/tap-clockify/constants"
)

// State maps keys to opaque replication progress; streams keep their
// bookmarks under state["bookmarks"][<stream>].
type State map[string]any

func NewState() State {
	return State{}
}

func (s State) IsZero() bool {
	return len(s) == 0
}

func (s State) bookmarks(create bool) map[string]any {
	bookmarks, ok := s[constants.BookmarksKey].(map[string]any)
	if !ok && create {
		bookmarks = map[string]any{}
		s[constants.BookmarksKey] = bookmarks
	}

	return bookmarks
}

// GetBookmark returns the value stored for key in the bookmark of stream
func (s State) GetBookmark(stream, key string) any {
	if s == nil {
		return nil
	}
	streamBookmark, ok := s.bookmarks(false)[stream].(map[string]any)
	if !ok {
		return nil
	}

	return streamBookmark[key]
}

// SetBookmark stores value under key in the bookmark of stream
func (s State) SetBookmark(stream, key string, value any) {
	bookmarks := s.bookmarks(true)
	streamBookmark, ok := bookmarks[stream].(map[string]any)
	if !ok {
		streamBookmark = map[string]any{}
		bookmarks[stream] = streamBookmark
	}
	streamBookmark[key] = value
}

// ClearBookmark drops the whole bookmark of stream
func (s State) ClearBookmark(stream string) {
	delete(s.bookmarks(false), stream)
}
