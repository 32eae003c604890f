package utils

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatFileSize renders a byte count with a 1024 base and at most one decimal,
// dropping a trailing ".0": 1024 -> "1 KB", 1536 -> "1.5 KB".
// Values past the largest unit stay in TB.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}

	unit := 0
	threshold := int64(1024)
	for unit < len(sizeUnits)-1 && bytes >= threshold {
		unit++
		if threshold > math.MaxInt64/1024 {
			break
		}
		threshold *= 1024
	}

	value := float64(bytes) / math.Pow(1024, float64(unit))
	value = math.Round(value*10) / 10

	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[unit]
}

// FormatDate renders a timestamp relative to now using whole elapsed days:
// the clock time for today, "Yesterday", "N days ago" within a week,
// otherwise the calendar date. Future timestamps get the calendar date.
func FormatDate(t, now time.Time) string {
	elapsed := now.Sub(t)
	if elapsed < 0 {
		return t.Format("1/2/2006")
	}

	days := int(math.Floor(elapsed.Hours() / 24))
	switch {
	case days == 0:
		return t.Format("03:04 PM")
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("1/2/2006")
	}
}
