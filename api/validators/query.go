package validators

import "net/http"

// Mode selects how much of the page pipeline a request runs.
type Mode string

const (
	// ModeFull runs the whole pipeline: feeds, metrics, and insights.
	ModeFull Mode = ""
	// ModeFast skips insight generation for an immediate first paint.
	ModeFast Mode = "fast"
	// ModeInsights runs only insight generation on freshly fetched data.
	ModeInsights Mode = "insights"
)

// ParseMode reads the optional mode query param. Unrecognized values fall
// back to the full pipeline rather than failing the request.
func ParseMode(r *http.Request) Mode {
	switch r.URL.Query().Get("mode") {
	case "fast":
		return ModeFast
	case "insights":
		return ModeInsights
	}
	return ModeFull
}
