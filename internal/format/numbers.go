package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Count formats counts the way GitHub does: 999, 1.2k, 15k, 1.3m.
func Count(n int) string {
	switch {
	case n < 0:
		return "-" + Count(-n)
	case n < 1000:
		return strconv.Itoa(n)
	case n < 10_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1000)) + "k"
	case n < 1_000_000:
		return strconv.Itoa(n/1000) + "k"
	default:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000_000)) + "m"
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// Plural returns "1 repository" or "3 repositories" style phrases.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + plural
}

// Date formats t as "Jan 2, 2006". The zero time renders as "-".
func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Jan 2, 2006")
}

// Age formats how long before now t was, in a compact form: "today",
// "5d", "3w", "4mo", "2y".
func Age(t, now time.Time) string {
	d := now.Sub(t)
	days := int(d.Hours() / 24)
	switch {
	case days < 1:
		return "today"
	case days < 7:
		return fmt.Sprintf("%dd", days)
	case days < 30:
		return fmt.Sprintf("%dw", days/7)
	case days < 365:
		return fmt.Sprintf("%dmo", days/30)
	default:
		return fmt.Sprintf("%dy", days/365)
	}
}

// Bytes formats a byte size with binary units: 512 B, 1.5 KiB, 3.2 MiB.
func Bytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
