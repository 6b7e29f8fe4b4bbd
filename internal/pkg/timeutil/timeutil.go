package timeutil

import "time"

// MinuteLayout is the fixed-width stamp recorded on every revision; seconds
// are truncated, not rounded.
const MinuteLayout = "2006-01-02 15:04"

func NowUnix() int64 {
	return time.Now().Unix()
}

func FormatMinute(t time.Time) string {
	return t.Format(MinuteLayout)
}
