package render

import (
	"strings"
	"testing"
	"time"

	"github.com/JonaxDevelopment/discord-transcript-next/internal/normalize"
	"github.com/JonaxDevelopment/discord-transcript-next/internal/theme"
)

func testOptions() Options {
	return Options{
		Theme:             theme.Resolve("dark", ""),
		IncludeEmbeds:     true,
		IncludeReactions:  true,
		SearchUI:          true,
		ComponentRenderer: ComponentsNative,
	}
}

func testData(messages ...normalize.Message) *normalize.TranscriptData {
	return &normalize.TranscriptData{
		Messages:    messages,
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func msgAt(id string, ts time.Time) normalize.Message {
	return normalize.Message{
		ID:          id,
		Content:     "hello " + id,
		Author:      &normalize.Author{ID: "u1", Username: "alice"},
		Timestamp:   ts,
		Attachments: []normalize.Attachment{},
		Embeds:      []normalize.Embed{},
		Reactions:   []normalize.Reaction{},
		Components:  []normalize.Component{},
		DayBucket:   normalize.DayBucket(ts),
	}
}

func TestHTMLDocumentShell(t *testing.T) {
	out := HTML(testData(msgAt("1", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))), testOptions())

	for _, want := range []string{
		"<!doctype html>",
		`<html lang="en">`,
		"<title>Discord Transcript</title>",
		"color-scheme: dark",
		"Messages: 1",
		`data-message-id="1"`,
		"<p>hello 1</p>",
		`<span class="author-name">alice</span>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestHTMLDayDividers(t *testing.T) {
	out := HTML(testData(
		msgAt("1", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)),
		msgAt("2", time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)),
		msgAt("3", time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)),
	), testOptions())

	if got := strings.Count(out, `class="day-divider"`); got != 2 {
		t.Errorf("Expected 2 day dividers, got %d", got)
	}
	first := strings.Index(out, "2024-03-01")
	second := strings.Index(out, "2024-03-02")
	if first == -1 || second == -1 || second < first {
		t.Error("Expected dividers in chronological order")
	}
}

func TestHTMLBotBadge(t *testing.T) {
	msg := msgAt("1", time.Now().UTC())
	msg.Author.Bot = true
	out := HTML(testData(msg), testOptions())
	if !strings.Contains(out, `<span class="author-badge">BOT</span>`) {
		t.Error("Expected BOT badge for bot author")
	}
}

func TestHTMLEmbedAndReactionToggles(t *testing.T) {
	msg := msgAt("1", time.Now().UTC())
	msg.Embeds = []normalize.Embed{{Title: "EmbedTitle", Description: "desc"}}
	msg.Reactions = []normalize.Reaction{{Emoji: normalize.Emoji{Name: "👍"}, Count: 3}}

	opts := testOptions()
	out := HTML(testData(msg), opts)
	if !strings.Contains(out, "EmbedTitle") || !strings.Contains(out, "reaction-count") {
		t.Error("Expected embeds and reactions when included")
	}

	opts.IncludeEmbeds = false
	opts.IncludeReactions = false
	out = HTML(testData(msg), opts)
	if strings.Contains(out, "EmbedTitle") || strings.Contains(out, "reaction-count") {
		t.Error("Expected embeds and reactions to be excluded")
	}
}

func TestHTMLSearchAndPagination(t *testing.T) {
	opts := testOptions()
	opts.Pagination = 10
	out := HTML(testData(msgAt("1", time.Now().UTC())), opts)
	if !strings.Contains(out, "data-search") || !strings.Contains(out, "data-paginator") {
		t.Error("Expected search input and paginator controls")
	}
	if !strings.Contains(out, `data-pagination-size="10"`) {
		t.Error("Expected pagination size on body")
	}

	opts.SearchUI = false
	opts.Pagination = 0
	out = HTML(testData(msgAt("1", time.Now().UTC())), opts)
	if strings.Contains(out, `<input type="search"`) || strings.Contains(out, `class="pagination-controls"`) {
		t.Error("Expected controls to be absent")
	}
}

func TestHTMLNativeComponents(t *testing.T) {
	msg := msgAt("1", time.Now().UTC())
	msg.Components = []normalize.Component{
		normalize.ActionRow{Elements: []normalize.Component{
			normalize.Button{Style: normalize.ButtonPrimary, Label: "Go"},
			normalize.Button{Style: normalize.ButtonLink, Label: "Docs", URL: "https://example.com"},
		}},
		normalize.ActionRow{Elements: []normalize.Component{
			normalize.Select{Placeholder: "Pick one", Options: []normalize.SelectOption{
				{Label: "A", Value: "a", Default: true},
			}},
		}},
	}
	out := HTML(testData(msg), testOptions())

	for _, want := range []string{
		"component-builder__row",
		"component-button--primary",
		`href="https://example.com"`,
		"Select menu row",
		"component-select-option is-selected",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
	if strings.Contains(out, "<discord-message") {
		t.Error("Expected no rich-widget markup in native mode")
	}
	if strings.Contains(out, `<script type="module">`) {
		t.Error("Expected no widget loader in native mode")
	}
}

func TestHTMLSkyraComponents(t *testing.T) {
	msg := msgAt("1", time.Now().UTC())
	msg.Components = []normalize.Component{
		normalize.ActionRow{Elements: []normalize.Component{
			normalize.Button{Style: normalize.ButtonDanger, Label: "Stop"},
		}},
	}
	opts := testOptions()
	opts.ComponentRenderer = ComponentsSkyra
	out := HTML(testData(msg), opts)

	for _, want := range []string{
		"<discord-messages>",
		`<discord-button type="destructive">Stop</discord-button>`,
		`<div class="messages-fallback messages-fallback--hidden">`,
		`<script type="module">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

// Without the loader the custom elements never upgrade, so a transcript
// with no components gets neither the loader nor the widget stream and
// the fallback stays visible.
func TestHTMLSkyraSkippedWithoutComponents(t *testing.T) {
	opts := testOptions()
	opts.ComponentRenderer = ComponentsSkyra
	out := HTML(testData(msgAt("1", time.Now().UTC())), opts)
	if strings.Contains(out, `<script type="module">`) {
		t.Error("Expected no loader when no message has components")
	}
	if strings.Contains(out, "<discord-messages>") {
		t.Error("Expected no widget stream when no message has components")
	}
	if !strings.Contains(out, `<div class="messages-fallback">`) {
		t.Error("Expected fallback to stay visible without the loader")
	}
	if !strings.Contains(out, "<p>hello 1</p>") {
		t.Error("Expected fallback message content")
	}
}

// An unset renderer selection behaves like the native mode.
func TestHTMLComponentRendererDefaultsToNative(t *testing.T) {
	msg := msgAt("1", time.Now().UTC())
	msg.Components = []normalize.Component{
		normalize.ActionRow{Elements: []normalize.Component{
			normalize.Button{Style: normalize.ButtonPrimary, Label: "Go"},
		}},
	}
	opts := testOptions()
	opts.ComponentRenderer = ""
	out := HTML(testData(msg), opts)
	if strings.Contains(out, "<discord-message") {
		t.Error("Expected no rich-widget markup for the zero renderer selection")
	}
	if !strings.Contains(out, "component-button--primary") {
		t.Error("Expected native component rendering")
	}
}

func TestHTMLCustomCSSInjection(t *testing.T) {
	opts := testOptions()
	opts.CustomCSS = ".mine { color: red; }"
	out := HTML(testData(msgAt("1", time.Now().UTC())), opts)
	if !strings.Contains(out, "<style>.mine { color: red; }</style>") {
		t.Error("Expected custom CSS style block")
	}
}

func TestHTMLEscapesContent(t *testing.T) {
	msg := msgAt("1", time.Now().UTC())
	msg.Content = `<img src=x onerror=alert(1)>`
	msg.Author.Username = `<b>evil</b>`
	out := HTML(testData(msg), testOptions())
	if strings.Contains(out, "<img src=x") || strings.Contains(out, "<b>evil</b>") {
		t.Error("Expected user content to be escaped")
	}
}

func TestHTMLAttachmentRendering(t *testing.T) {
	msg := msgAt("1", time.Now().UTC())
	msg.Attachments = []normalize.Attachment{
		{URL: "https://cdn.example/pic.png", Name: "pic.png", ContentType: "image/png"},
		{URL: "https://cdn.example/doc.pdf", Name: "doc.pdf", ContentType: "application/pdf"},
	}
	out := HTML(testData(msg), testOptions())
	if !strings.Contains(out, "attachment-image") {
		t.Error("Expected inline image attachment")
	}
	if !strings.Contains(out, `class="attachment attachment-file"`) {
		t.Error("Expected file link attachment")
	}
}

func TestHTMLTimestampTimezone(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	opts := testOptions()
	opts.Timezone = "America/New_York"
	out := HTML(testData(msgAt("1", ts)), opts)
	if !strings.Contains(out, "7:00 AM") {
		t.Error("Expected timestamp shifted into the requested timezone")
	}

	opts.Timezone = "Not/AZone"
	out = HTML(testData(msgAt("1", ts)), opts)
	if !strings.Contains(out, "2024-03-01T12:00:00Z") {
		t.Error("Expected ISO fallback for unknown timezone")
	}
}
