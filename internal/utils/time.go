package utils

import "time"

// FormatMillis renders a Unix millisecond timestamp in local time.
func FormatMillis(ms int64) string {
	return time.UnixMilli(ms).Local().Format("Mon 02 Jan 2006 15:04")
}

// FormatDay renders a Unix millisecond timestamp as a local date.
func FormatDay(ms int64) string {
	return time.UnixMilli(ms).Local().Format("02/01/06")
}
