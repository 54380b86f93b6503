package marker

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Pattern matches a single conflict marker as syncthing embeds it in a
// filename: .sync-conflict-YYYYMMDD-HHMMSS- followed by a 7-character
// uppercase-alphanumeric replica id.
var Pattern = regexp.MustCompile(`\.sync-conflict-(\d{4})(\d{2})(\d{2})-(\d{2})(\d{2})(\d{2})-([0-9A-Z]{7})`)

// Marker is one conflict event recorded in a filename.
type Marker struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	ReplicaID            string
}

// Parse extracts every conflict marker from name, in order of appearance.
// A name without markers yields an empty result; such names are not
// conflict files and the caller skips them.
func Parse(name string) []Marker {
	var markers []Marker
	for _, m := range Pattern.FindAllStringSubmatch(name, -1) {
		markers = append(markers, Marker{
			Year:      atoi(m[1]),
			Month:     atoi(m[2]),
			Day:       atoi(m[3]),
			Hour:      atoi(m[4]),
			Minute:    atoi(m[5]),
			Second:    atoi(m[6]),
			ReplicaID: m[7],
		})
	}
	return markers
}

// String renders the marker in syncthing's textual form.
func (m Marker) String() string {
	return fmt.Sprintf(".sync-conflict-%04d%02d%02d-%02d%02d%02d-%s",
		m.Year, m.Month, m.Day, m.Hour, m.Minute, m.Second, m.ReplicaID)
}

// Format concatenates the textual form of a marker sequence.
func Format(markers []Marker) string {
	var b strings.Builder
	for _, m := range markers {
		b.WriteString(m.String())
	}
	return b.String()
}

// OrderKey returns the marker's chronological sort key: the fourteen
// date/time digits YYYYMMDDHHMMSS read as a single integer.
func (m Marker) OrderKey() int64 {
	return int64(m.Year)*1e10 +
		int64(m.Month)*1e8 +
		int64(m.Day)*1e6 +
		int64(m.Hour)*1e4 +
		int64(m.Minute)*1e2 +
		int64(m.Second)
}

// Timestamp returns the marker's date and time as a time.Time in UTC.
func (m Marker) Timestamp() time.Time {
	return time.Date(m.Year, time.Month(m.Month), m.Day, m.Hour, m.Minute, m.Second, 0, time.UTC)
}

// atoi converts a digits-only string already validated by Pattern.
func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
