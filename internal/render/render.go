// Package render holds the four transcript renderers. All of them are
// pure functions over the same normalized transcript data and the shared
// option set; none of them mutates its input.
package render

import (
	"errors"
	"time"

	"github.com/JonaxDevelopment/discord-transcript-next/internal/theme"
)

// Format tags for the supported output formats.
const (
	FormatHTML     = "html"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatPDF      = "pdf"
)

// Formats lists the known format tags in canonical order.
var Formats = []string{FormatHTML, FormatJSON, FormatMarkdown, FormatPDF}

// ErrUnsupportedFormat reports a format tag with no renderer. Unreachable
// through the public option resolution, which collapses unknown tags to
// the default format.
var ErrUnsupportedFormat = errors.New("unsupported transcript format")

// IsKnownFormat reports whether tag names one of the four renderers.
func IsKnownFormat(tag string) bool {
	for _, f := range Formats {
		if f == tag {
			return true
		}
	}
	return false
}

// DefaultPageSize is the client-side pagination threshold used when
// pagination is enabled without an explicit size.
const DefaultPageSize = 25

// Component presentation modes for the HTML renderer.
const (
	ComponentsNative = "native"
	ComponentsSkyra  = "skyra"
)

// Options is the per-format inclusion and presentation option set shared
// by all renderers. Every renderer honors the same toggles; none
// reinterprets them.
type Options struct {
	Theme            theme.Definition
	IncludeEmbeds    bool
	IncludeReactions bool
	// Pagination is the client-side page size; zero disables pagination.
	Pagination int
	SearchUI   bool
	Timezone   string
	Locale     string
	CustomCSS  string
	// ComponentRenderer selects the HTML component presentation.
	// ComponentsSkyra additionally emits rich-widget markup when the
	// transcript contains components; any other value, including empty,
	// emits only the built-in descriptive rendering.
	ComponentRenderer string
}

// formatTimestamp renders an instant for display in the requested
// timezone, falling back to ISO-8601 when the zone name is unknown.
// Stored timestamps are unaffected; this is presentation only.
func formatTimestamp(ts time.Time, timezone string) string {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err == nil {
			return ts.In(loc).Format("Jan 2, 2006 3:04 PM")
		}
		return ts.UTC().Format(time.RFC3339)
	}
	return ts.UTC().Format("Jan 2, 2006 3:04 PM")
}
