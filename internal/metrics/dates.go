package metrics

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate extracts the calendar date from a feed date string. Feeds emit
// either plain dates or full timestamps; only the date part matters here.
func ParseDate(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < len(dateLayout) {
		return time.Time{}, false
	}
	parsed, err := time.Parse(dateLayout, trimmed[:len(dateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// parseDate keeps call sites inside the kernel short.
func parseDate(value string) (time.Time, bool) {
	return ParseDate(value)
}

// sameDay reports whether the feed date falls on the same UTC calendar day
// as now.
func sameDay(value string, now time.Time) bool {
	parsed, ok := parseDate(value)
	if !ok {
		return false
	}
	return parsed.Format(dateLayout) == now.UTC().Format(dateLayout)
}

// utcDate truncates now to its UTC calendar date. Feed dates parse to
// midnight, so window cutoffs must be midnight-to-midnight comparisons or a
// nonzero wall clock silently shrinks every window by one day.
func utcDate(now time.Time) time.Time {
	year, month, day := now.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// WithinDays reports whether the feed date is between (now - days) and now,
// both days inclusive.
func WithinDays(value string, now time.Time, days int) bool {
	parsed, ok := parseDate(value)
	if !ok {
		return false
	}
	today := utcDate(now)
	cutoff := today.AddDate(0, 0, -days)
	return !parsed.Before(cutoff) && !parsed.After(today)
}

func withinDays(value string, now time.Time, days int) bool {
	return WithinDays(value, now, days)
}

// betweenDaysAgo reports whether the feed date is older than "from" days
// but no older than "to" days (the 30-60 day comparison window).
func betweenDaysAgo(value string, now time.Time, from, to int) bool {
	parsed, ok := parseDate(value)
	if !ok {
		return false
	}
	newest := utcDate(now).AddDate(0, 0, -from)
	oldest := utcDate(now).AddDate(0, 0, -to)
	return parsed.Before(newest) && !parsed.Before(oldest)
}

// DeliveryDelta returns arrival minus expected arrival in days. The second
// return is false when either date is missing or unparseable. Positive
// means late.
func DeliveryDelta(expectedDate, arrivalDate string) (float64, bool) {
	expected, okExpected := parseDate(expectedDate)
	arrival, okArrival := parseDate(arrivalDate)
	if !okExpected || !okArrival {
		return 0, false
	}
	return arrival.Sub(expected).Hours() / 24, true
}

func deliveryDelta(expectedDate, arrivalDate string) (float64, bool) {
	return DeliveryDelta(expectedDate, arrivalDate)
}
