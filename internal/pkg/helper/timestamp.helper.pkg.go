package helper

import (
	"time"
)

// ISOMillisLayout matches JavaScript's Date.toISOString.
const ISOMillisLayout = "2006-01-02T15:04:05.000Z"

func TimeRightNow() time.Time {
	return time.Now().UTC()
}

// ISOTimestamp formats t in UTC with millisecond precision.
func ISOTimestamp(t time.Time) string {
	return t.UTC().Format(ISOMillisLayout)
}
