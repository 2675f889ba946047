package utils

import "time"

const dateLayout = "2006-01-02"

// Trip dates are stored as unix seconds of UTC midnight so that day
// arithmetic is a plain division by 86400.

func ParseDate(s string) (int64, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return 0, err
	}
	return t.UTC().Unix(), nil
}

func FormatDate(unixSec int64) string {
	if unixSec <= 0 {
		return ""
	}
	return time.Unix(unixSec, 0).UTC().Format(dateLayout)
}

// DayCount returns the inclusive number of days between two stored dates.
func DayCount(fromUnix, tillUnix int64) int {
	return int((tillUnix-fromUnix)/86400) + 1
}

func NowUnixSeconds() int64 { return time.Now().Unix() }

func FormatRFC3339(unixSec int64) string {
	if unixSec <= 0 {
		return ""
	}
	return time.Unix(unixSec, 0).UTC().Format(time.RFC3339)
}
