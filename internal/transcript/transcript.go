// Package transcript is the top-level pipeline: resolve a source into raw
// messages, normalize them, order and trim, optionally anonymize, and fan
// out to the selected renderers.
package transcript

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/JonaxDevelopment/discord-transcript-next/internal/adapter"
	"github.com/JonaxDevelopment/discord-transcript-next/internal/anonymize"
	"github.com/JonaxDevelopment/discord-transcript-next/internal/normalize"
	"github.com/JonaxDevelopment/discord-transcript-next/internal/render"
	"github.com/JonaxDevelopment/discord-transcript-next/internal/source"
	"github.com/JonaxDevelopment/discord-transcript-next/internal/theme"
)

// Sort orders for the generated transcript.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// DefaultLimit caps the number of messages in a transcript when no
// explicit limit is given.
const DefaultLimit = 1000

// Options configures one transcript generation run.
type Options struct {
	// Source is the message input: a []normalize.RawMessage slice, a
	// producer function, a sequence, or a client-library channel object
	// handled by adapter detection.
	Source any

	// Formats selects the outputs. Empty selects the default format;
	// the single entry "all" selects every format. Unknown tags are
	// dropped; an all-unknown selection falls back to the default.
	Formats []string

	// Theme names a built-in theme, or labels ThemeCSS when that is set.
	Theme    string
	ThemeCSS string

	Sort  string // SortAsc (default) or SortDesc
	Limit int    // 0 means DefaultLimit

	Anonymize anonymize.Options

	// The content toggles use exclusion naming so the zero value of
	// Options keeps embeds, reactions and the search UI on, which are
	// the documented defaults.
	ExcludeEmbeds    bool
	ExcludeReactions bool
	HideSearch       bool

	Pagination int
	Timezone   string
	Locale     string
	CustomCSS  string

	// ComponentRenderer selects the HTML component presentation; empty
	// means render.ComponentsNative.
	ComponentRenderer string

	Fetch adapter.FetchOptions

	// Registry overrides the built-in adapter registry; nil uses it.
	Registry *adapter.Registry

	// Logger receives progress events. The zero value discards them.
	Logger zerolog.Logger
}

// Metadata summarizes a generation run.
type Metadata struct {
	GeneratedAt  time.Time `json:"generatedAt"`
	MessageCount int       `json:"messageCount"`
	Adapter      string    `json:"adapter,omitempty"`
}

// Result holds the rendered outputs. Only the fields for the selected
// formats are populated.
type Result struct {
	HTML     string
	JSON     *normalize.TranscriptData
	Markdown string
	PDF      []byte

	Formats  []string
	Theme    theme.Definition
	Metadata Metadata
}

// Generate runs the full pipeline. Rendering is fail-fast: the first
// renderer error aborts the run and no partial result is returned.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	formats := resolveFormats(opts.Formats)
	resolved := theme.Resolve(opts.Theme, opts.ThemeCSS)

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	fetchOpts := opts.Fetch
	if fetchOpts.Limit <= 0 {
		fetchOpts.Limit = limit
	}

	reg := opts.Registry
	if reg == nil {
		reg = adapter.NewRegistry()
	}

	raw, adapterName, err := source.Resolve(ctx, opts.Source, reg, fetchOpts)
	if err != nil {
		return nil, fmt.Errorf("resolve source: %w", err)
	}
	opts.Logger.Debug().Int("count", len(raw)).Str("adapter", adapterName).Msg("collected raw messages")

	messages, err := normalize.NormalizeAll(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	slices.SortStableFunc(messages, func(a, b normalize.Message) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	if opts.Sort == SortDesc {
		slices.Reverse(messages)
	}
	if len(messages) > limit {
		messages = messages[:limit]
	}

	messages, _ = anonymize.Apply(messages, opts.Anonymize)

	data := &normalize.TranscriptData{
		Messages:    messages,
		GeneratedAt: time.Now().UTC(),
		Adapter:     adapterName,
	}

	componentRenderer := opts.ComponentRenderer
	if componentRenderer == "" {
		componentRenderer = render.ComponentsNative
	}
	renderOpts := render.Options{
		Theme:             resolved,
		IncludeEmbeds:     !opts.ExcludeEmbeds,
		IncludeReactions:  !opts.ExcludeReactions,
		Pagination:        opts.Pagination,
		SearchUI:          !opts.HideSearch,
		Timezone:          opts.Timezone,
		Locale:            opts.Locale,
		CustomCSS:         opts.CustomCSS,
		ComponentRenderer: componentRenderer,
	}

	result := &Result{
		Formats: formats,
		Theme:   resolved,
		Metadata: Metadata{
			GeneratedAt:  data.GeneratedAt,
			MessageCount: len(data.Messages),
			Adapter:      adapterName,
		},
	}

	for _, format := range formats {
		opts.Logger.Debug().Str("format", format).Msg("rendering")
		switch format {
		case render.FormatHTML:
			result.HTML = render.HTML(data, renderOpts)
		case render.FormatJSON:
			result.JSON = render.JSON(data, renderOpts)
		case render.FormatMarkdown:
			result.Markdown = render.Markdown(data, renderOpts)
		case render.FormatPDF:
			pdf, err := render.PDF(data, renderOpts)
			if err != nil {
				return nil, err
			}
			result.PDF = pdf
		default:
			return nil, fmt.Errorf("%w: %q", render.ErrUnsupportedFormat, format)
		}
	}
	return result, nil
}

// resolveFormats collapses a format selection to a deduplicated list in
// canonical order.
func resolveFormats(selection []string) []string {
	if len(selection) == 0 {
		return []string{render.FormatHTML}
	}
	if len(selection) == 1 && selection[0] == "all" {
		return slices.Clone(render.Formats)
	}
	selected := make(map[string]bool, len(selection))
	for _, tag := range selection {
		if render.IsKnownFormat(tag) {
			selected[tag] = true
		}
	}
	if len(selected) == 0 {
		return []string{render.FormatHTML}
	}
	out := make([]string, 0, len(selected))
	for _, tag := range render.Formats {
		if selected[tag] {
			out = append(out, tag)
		}
	}
	return out
}
