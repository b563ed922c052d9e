/*
 * Copyright 2025 Olake By Datazip
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package typeutils

import (
	"fmt"
	"strings"
	"time"
)

// layouts accepted for config dates, bookmarks and api timestamps
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// APILayout is the timestamp format expected by clockify query parameters
const APILayout = "2006-01-02T15:04:05.000Z"

// ParseTimestamp parses s with the first matching layout; values without a
// zone are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("failed to parse timestamp [%s]", s)
}

// FormatAPI renders t the way clockify expects in query parameters
func FormatAPI(t time.Time) string {
	return t.UTC().Format(APILayout)
}

// MaxTimestamp returns the later of two timestamp strings; unparsable values lose
func MaxTimestamp(a, b string) string {
	ta, errA := ParseTimestamp(a)
	tb, errB := ParseTimestamp(b)
	switch {
	case errA != nil:
		return b
	case errB != nil:
		return a
	case tb.After(ta):
		return b
	default:
		return a
	}
}
