package framework

import "time"

// ISOLayout renders timestamps as ISO-8601 with microsecond precision and a
// zone offset.
const ISOLayout = "2006-01-02T15:04:05.000000Z07:00"

// FormatTime renders t with ISOLayout.
func FormatTime(t time.Time) string {
	return t.Format(ISOLayout)
}
