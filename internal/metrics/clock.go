package metrics

import "time"

// Clock supplies "now" to the kernel. Every function in this package that
// needs wall-clock time takes an explicit time.Time so results are
// reproducible; Clock exists for callers that wire the kernel together.
type Clock func() time.Time

// UTCNow is the production clock.
func UTCNow() time.Time {
	return time.Now().UTC()
}
