package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/JonaxDevelopment/discord-transcript-next/internal/markup"
	"github.com/JonaxDevelopment/discord-transcript-next/internal/normalize"
)

// HTML renders the transcript as a single self-contained document: theme
// variables and base styles inlined, a header with search and pagination
// controls, day dividers between calendar days, and one article per
// message. No external assets are required unless the rich component
// widgets are enabled and the transcript actually contains components.
func HTML(data *normalize.TranscriptData, opts Options) string {
	useSkyra := opts.ComponentRenderer == ComponentsSkyra

	var fallback strings.Builder
	var skyra strings.Builder
	previousDay := ""
	hasComponents := false
	for _, msg := range data.Messages {
		if msg.DayBucket != previousDay {
			previousDay = msg.DayBucket
			fallback.WriteString(renderDayDivider(msg.DayBucket))
			if useSkyra {
				fmt.Fprintf(&skyra, "<discord-divider>%s</discord-divider>", markup.EscapeHTML(msg.DayBucket))
			}
		}
		fallback.WriteString(renderFallbackMessage(msg, opts))
		if useSkyra {
			skyra.WriteString(renderSkyraMessage(msg, opts))
		}
		if len(msg.Components) > 0 {
			hasComponents = true
		}
	}

	// The widget stream only goes into the document when the loader does.
	// Without the loader the custom elements never upgrade and their text
	// content would render inline next to the still-visible fallback.
	skyraMessages := ""
	fallbackClass := "messages-fallback"
	if useSkyra && hasComponents && skyra.Len() > 0 {
		skyraMessages = "<discord-messages>" + skyra.String() + "</discord-messages>"
		fallbackClass = "messages-fallback messages-fallback--hidden"
	}

	lang := opts.Locale
	if lang == "" {
		lang = "en"
	}

	var b strings.Builder
	b.WriteString("<!doctype html>")
	fmt.Fprintf(&b, `<html lang=%q>`, markup.EscapeHTML(lang))
	b.WriteString("<head>")
	b.WriteString(`<meta charset="utf-8" />`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1" />`)
	b.WriteString("<title>Discord Transcript</title>")
	fmt.Fprintf(&b, "<style>%s%s</style>", opts.Theme.CSS, baseStyles)
	if useSkyra && hasComponents {
		fmt.Fprintf(&b, `<script type="module">%s</script>`, skyraLoaderScript)
	}
	if opts.CustomCSS != "" {
		fmt.Fprintf(&b, "<style>%s</style>", opts.CustomCSS)
	}
	b.WriteString("</head>")
	fmt.Fprintf(&b, `<body data-pagination-size="%d">`, opts.Pagination)
	b.WriteString(`<main class="transcript">`)
	b.WriteString(`<section class="header">`)
	b.WriteString("<h1>Discord Transcript</h1>")
	fmt.Fprintf(&b, `<p class="meta">Messages: %d | Generated: %s</p>`,
		len(data.Messages),
		markup.EscapeHTML(formatTimestamp(data.GeneratedAt, opts.Timezone)))
	if opts.SearchUI {
		b.WriteString(`<div class="controls">`)
		b.WriteString(`<input type="search" placeholder="Search messages" data-search aria-label="Search messages" />`)
		if opts.Pagination > 0 {
			b.WriteString(`<div class="pagination-controls" data-paginator>` +
				`<button type="button" data-action="prev">Previous</button>` +
				`<span data-page-info></span>` +
				`<button type="button" data-action="next">Next</button>` +
				`</div>`)
		}
		b.WriteString(`<span class="results-meta">Results: <strong data-results-count>0</strong></span>`)
		b.WriteString("</div>")
	}
	b.WriteString("</section>")
	b.WriteString(`<section class="messages">`)
	b.WriteString(skyraMessages)
	fmt.Fprintf(&b, `<div class="%s">%s</div>`, fallbackClass, fallback.String())
	b.WriteString("</section>")
	b.WriteString("</main>")
	fmt.Fprintf(&b, "<script>%s</script>", transcriptScript)
	b.WriteString("</body>")
	b.WriteString("</html>")
	return b.String()
}

func renderDayDivider(day string) string {
	return fmt.Sprintf(`<div class="day-divider"><span>%s</span></div>`, markup.EscapeHTML(day))
}

// renderFallbackMessage emits the plain-HTML article for one message. It
// is always present, even when rich widgets are enabled, so the document
// degrades gracefully without network access.
func renderFallbackMessage(msg normalize.Message, opts Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<article class="message" data-message-id="%s">`, markup.EscapeHTML(msg.ID))

	avatar := fallbackAvatarURL(msg.Author)
	username := "Unknown User"
	isBot := false
	if msg.Author != nil {
		if msg.Author.Avatar != "" {
			avatar = msg.Author.Avatar
		}
		if msg.Author.Username != "" {
			username = msg.Author.Username
		}
		isBot = msg.Author.Bot
	}

	b.WriteString(`<div class="avatar">`)
	fmt.Fprintf(&b, `<img src="%s" alt="%s" loading="lazy" />`,
		markup.EscapeHTML(avatar), markup.EscapeHTML(username))
	b.WriteString("</div>")

	b.WriteString(`<div class="message-body">`)
	b.WriteString(`<header class="message-header">`)
	fmt.Fprintf(&b, `<span class="author-name">%s</span>`, markup.EscapeHTML(username))
	if isBot {
		b.WriteString(`<span class="author-badge">BOT</span>`)
	}
	fmt.Fprintf(&b, `<time class="timestamp" datetime="%s">%s</time>`,
		msg.Timestamp.UTC().Format(time.RFC3339),
		markup.EscapeHTML(formatTimestamp(msg.Timestamp, opts.Timezone)))
	b.WriteString("</header>")

	fmt.Fprintf(&b, `<div class="message-content">%s</div>`, markup.ToHTML(msg.Content))
	if opts.IncludeEmbeds {
		b.WriteString(renderEmbeds(msg.Embeds))
	}
	if opts.IncludeReactions {
		b.WriteString(renderReactions(msg.Reactions))
	}
	b.WriteString(renderComponentBuilder(msg.Components))
	b.WriteString(renderAttachments(msg.Attachments))
	b.WriteString("</div>")
	b.WriteString("</article>")
	return b.String()
}

// fallbackAvatarURL derives a stable default avatar from the author id so
// the same author always gets the same placeholder.
func fallbackAvatarURL(author *normalize.Author) string {
	index := 0
	if author != nil {
		for _, c := range author.ID {
			index += int(c)
		}
		index %= 5
	}
	return fmt.Sprintf("https://cdn.discordapp.com/embed/avatars/%d.png", index)
}

func renderReactions(reactions []normalize.Reaction) string {
	if len(reactions) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div class="message-reactions">`)
	for _, r := range reactions {
		name := r.Emoji.Name
		if name == "" {
			name = "emoji"
		}
		var emoji string
		if r.Emoji.ID != "" {
			emoji = fmt.Sprintf(`<img data-emoji-id="%s" alt="%s" />`,
				markup.EscapeHTML(r.Emoji.ID), markup.EscapeHTML(name))
		} else {
			emoji = markup.EscapeHTML(r.Emoji.Name)
		}
		fmt.Fprintf(&b, `<div class="reaction">%s<span class="reaction-count">%d</span></div>`, emoji, r.Count)
	}
	b.WriteString("</div>")
	return b.String()
}

func renderAttachments(attachments []normalize.Attachment) string {
	if len(attachments) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div class="attachments">`)
	for _, att := range attachments {
		if strings.HasPrefix(att.ContentType, "image/") {
			fmt.Fprintf(&b, `<figure class="attachment attachment-image"><img src="%s" alt="%s" loading="lazy" /></figure>`,
				markup.EscapeHTML(att.URL), markup.EscapeHTML(att.Name))
			continue
		}
		fmt.Fprintf(&b, `<a class="attachment attachment-file" href="%s" target="_blank" rel="noreferrer">%s</a>`,
			markup.EscapeHTML(att.URL), markup.EscapeHTML(att.Name))
	}
	b.WriteString("</div>")
	return b.String()
}

func renderEmbeds(embeds []normalize.Embed) string {
	if len(embeds) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div class="embeds">`)
	for _, embed := range embeds {
		colorStyle := ""
		if embed.Color != 0 {
			colorStyle = fmt.Sprintf(` style="border-color: #%06x"`, embed.Color)
		}
		fmt.Fprintf(&b, `<div class="embed"%s>`, colorStyle)
		if embed.Author != nil {
			fmt.Fprintf(&b, `<div class="embed-author">%s</div>`, markup.EscapeHTML(embed.Author.Name))
		}
		if embed.Title != "" {
			fmt.Fprintf(&b, `<div class="embed-title">%s</div>`, markup.EscapeHTML(embed.Title))
		}
		if embed.Description != "" {
			fmt.Fprintf(&b, `<div class="embed-description">%s</div>`, markup.ToHTML(embed.Description))
		}
		for _, field := range embed.Fields {
			inline := ""
			if field.Inline {
				inline = " inline"
			}
			fmt.Fprintf(&b, `<div class="embed-field%s"><div class="embed-field-name">%s</div><div class="embed-field-value">%s</div></div>`,
				inline, markup.EscapeHTML(field.Name), markup.ToHTML(field.Value))
		}
		b.WriteString("</div>")
	}
	b.WriteString("</div>")
	return b.String()
}

func renderComponentBuilder(components []normalize.Component) string {
	if len(components) == 0 {
		return ""
	}
	var b strings.Builder
	for _, comp := range components {
		b.WriteString(renderComponentNode(comp))
	}
	if b.Len() == 0 {
		return ""
	}
	return `<div class="component-builder">` + b.String() + `</div>`
}

func renderComponentNode(comp normalize.Component) string {
	row, ok := comp.(normalize.ActionRow)
	if !ok {
		return renderComponentElement(comp)
	}
	var children strings.Builder
	hasSelect := false
	for _, el := range row.Elements {
		if _, ok := el.(normalize.Select); ok {
			hasSelect = true
		}
		children.WriteString(renderComponentElement(el))
	}
	if children.Len() == 0 {
		return ""
	}
	rowClass := "component-builder__row"
	heading := "Action row"
	if hasSelect {
		rowClass += " component-builder__row--select"
		heading = "Select menu row"
	}
	return fmt.Sprintf(`<div class="%s"><div class="component-builder__row-header">`+
		`<span class="component-builder__grip" aria-hidden="true">::</span>`+
		`<span class="component-builder__row-title">%s</span>`+
		`<span class="component-builder__row-actions" aria-hidden="true">x</span>`+
		`</div><div class="component-builder__row-body">%s</div></div>`,
		rowClass, heading, children.String())
}

func buttonClass(style string) string {
	switch style {
	case normalize.ButtonPrimary, normalize.ButtonSecondary, normalize.ButtonSuccess,
		normalize.ButtonDanger, normalize.ButtonLink:
		return " component-button--" + style
	default:
		return ""
	}
}

func emojiLabel(emoji *normalize.Emoji) string {
	if emoji == nil {
		return ""
	}
	if emoji.Name != "" {
		return emoji.Name
	}
	if emoji.ID != "" {
		return ":" + emoji.ID + ":"
	}
	return ""
}

func renderComponentElement(comp normalize.Component) string {
	switch c := comp.(type) {
	case normalize.Button:
		classes := "component-button" + buttonClass(c.Style)
		label := c.Label
		if label == "" {
			if el := emojiLabel(c.Emoji); el != "" {
				label = el
			} else {
				label = "Button"
			}
		}
		emoji := ""
		if el := emojiLabel(c.Emoji); el != "" {
			emoji = fmt.Sprintf(`<span class="component-emoji">%s</span>`, markup.EscapeHTML(el))
		}
		if c.Style == normalize.ButtonLink && c.URL != "" {
			disabled := ""
			if c.Disabled {
				disabled = ` aria-disabled="true"`
			}
			return fmt.Sprintf(`<a class="%s" href="%s" target="_blank" rel="noreferrer"%s>%s%s</a>`,
				classes, markup.EscapeHTML(c.URL), disabled, emoji, markup.EscapeHTML(label))
		}
		disabled := ""
		if c.Disabled {
			disabled = ` disabled aria-disabled="true"`
		}
		return fmt.Sprintf(`<button type="button" class="%s"%s>%s%s</button>`,
			classes, disabled, emoji, markup.EscapeHTML(label))

	case normalize.Select:
		placeholder := strings.TrimSpace(c.Placeholder)
		if placeholder == "" {
			placeholder = "Select menu"
		}
		metaRange := ""
		if c.MinValues != nil || c.MaxValues != nil {
			lo, hi := 1, max(len(c.Options), 1)
			if c.MinValues != nil {
				lo = *c.MinValues
			}
			if c.MaxValues != nil {
				hi = *c.MaxValues
			}
			metaRange = fmt.Sprintf(`<span class="component-select-card__meta">%d-%d</span>`, lo, hi)
		}
		var options strings.Builder
		for _, opt := range c.Options {
			text := opt.Label
			if text == "" {
				text = opt.Value
			}
			if text == "" {
				text = "Option"
			}
			if el := emojiLabel(opt.Emoji); el != "" {
				text = el + " " + text
			}
			description := ""
			if opt.Description != "" {
				description = fmt.Sprintf(`<div class="component-select-option__description">%s</div>`,
					markup.EscapeHTML(opt.Description))
			}
			state := ""
			if opt.Default {
				state = " is-selected"
			}
			fmt.Fprintf(&options, `<div class="component-select-option%s"><div class="component-select-option__content">`+
				`<span class="component-select-option__label">%s</span>%s</div></div>`,
				state, markup.EscapeHTML(text), description)
		}
		return fmt.Sprintf(`<div class="component-select-card">`+
			`<div class="component-select-card__header"><span class="component-select-card__title">%s</span>%s</div>`+
			`<div class="component-select-card__options">%s</div></div>`,
			markup.EscapeHTML(placeholder), metaRange, options.String())

	case normalize.TextInput:
		label := c.Label
		if label == "" {
			label = "Input"
		}
		placeholder := c.Placeholder
		if placeholder == "" {
			placeholder = "Text input"
		}
		return fmt.Sprintf(`<label class="component-text-input"><span class="component-text-input__label">%s</span>`+
			`<input type="text" placeholder="%s" disabled /></label>`,
			markup.EscapeHTML(label), markup.EscapeHTML(placeholder))

	case normalize.TextDisplay:
		class := "component-builder__text"
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(c.Content)), "error") {
			class += " component-builder__text--error"
		}
		return fmt.Sprintf(`<div class="%s">%s</div>`, class, markup.ToHTML(c.Content))

	case normalize.FileComponent:
		url := "#"
		label := "Download file"
		if c.URL != "" {
			url = markup.EscapeHTML(c.URL)
			parts := strings.Split(c.URL, "/")
			label = markup.EscapeHTML(parts[len(parts)-1])
		}
		return fmt.Sprintf(`<div class="component-file-card">`+
			`<a href="%s" target="_blank" rel="noreferrer" class="component-file-card__link">%s</a></div>`,
			url, label)

	case normalize.MediaGallery:
		var gallery strings.Builder
		for _, item := range c.Items {
			if item.URL == "" {
				continue
			}
			fmt.Fprintf(&gallery, `<figure class="component-media"><img src="%s" alt="Media item" loading="lazy" /></figure>`,
				markup.EscapeHTML(item.URL))
		}
		if gallery.Len() == 0 {
			return ""
		}
		return fmt.Sprintf(`<div class="component-media-panel"><div class="component-media-gallery">%s</div></div>`,
			gallery.String())

	default:
		return fmt.Sprintf(`<div class="component-unknown">%s</div>`, markup.EscapeHTML(comp.ComponentType()))
	}
}

// renderSkyraMessage emits the rich-widget variant of a message using the
// discord-components custom elements. A loader script upgrades these in
// the browser; until it succeeds the plain rendering stays visible.
func renderSkyraMessage(msg normalize.Message, opts Options) string {
	var attrs strings.Builder
	username := "Unknown User"
	if msg.Author != nil && msg.Author.Username != "" {
		username = msg.Author.Username
	}
	fmt.Fprintf(&attrs, ` author="%s"`, markup.EscapeHTML(username))
	if msg.Author != nil && msg.Author.Avatar != "" {
		fmt.Fprintf(&attrs, ` avatar="%s"`, markup.EscapeHTML(msg.Author.Avatar))
	}
	if msg.Author != nil && msg.Author.Bot {
		attrs.WriteString(" bot")
	}
	fmt.Fprintf(&attrs, ` timestamp="%s"`, msg.Timestamp.UTC().Format(time.RFC3339))

	var segments strings.Builder
	if msg.Content != "" {
		fmt.Fprintf(&segments, "<discord-markdown>%s</discord-markdown>", markup.EscapeHTML(msg.Content))
	}
	if opts.IncludeEmbeds && len(msg.Embeds) > 0 {
		segments.WriteString(`<discord-embed slot="embeds">Embeds are available in fallback export.</discord-embed>`)
	}
	for _, comp := range msg.Components {
		segments.WriteString(renderSkyraRow(comp))
	}
	return fmt.Sprintf("<discord-message%s>%s</discord-message>", attrs.String(), segments.String())
}

func renderSkyraRow(comp normalize.Component) string {
	row, ok := comp.(normalize.ActionRow)
	if !ok {
		return ""
	}
	var children strings.Builder
	for _, el := range row.Elements {
		children.WriteString(renderSkyraElement(el))
	}
	if children.Len() == 0 {
		return ""
	}
	return "<discord-action-row>" + children.String() + "</discord-action-row>"
}

func skyraButtonType(style string) string {
	switch style {
	case normalize.ButtonDanger:
		return "destructive"
	case normalize.ButtonPrimary, normalize.ButtonSecondary, normalize.ButtonSuccess, normalize.ButtonLink:
		return style
	default:
		return ""
	}
}

func renderSkyraElement(comp normalize.Component) string {
	switch c := comp.(type) {
	case normalize.Button:
		var attrs strings.Builder
		if t := skyraButtonType(c.Style); t != "" {
			fmt.Fprintf(&attrs, ` type="%s"`, t)
		}
		if c.Disabled {
			attrs.WriteString(" disabled")
		}
		if c.Style == normalize.ButtonLink && c.URL != "" {
			fmt.Fprintf(&attrs, ` url="%s"`, markup.EscapeHTML(c.URL))
		}
		label := c.Label
		if label == "" {
			if el := emojiLabel(c.Emoji); el != "" {
				label = el
			} else {
				label = "Button"
			}
		}
		return fmt.Sprintf("<discord-button%s>%s</discord-button>", attrs.String(), markup.EscapeHTML(label))

	case normalize.Select:
		var attrs strings.Builder
		if c.Placeholder != "" {
			fmt.Fprintf(&attrs, ` placeholder="%s"`, markup.EscapeHTML(c.Placeholder))
		}
		if c.MinValues != nil {
			fmt.Fprintf(&attrs, ` min-values="%d"`, *c.MinValues)
		}
		if c.MaxValues != nil {
			fmt.Fprintf(&attrs, ` max-values="%d"`, *c.MaxValues)
		}
		if c.Disabled {
			attrs.WriteString(" disabled")
		}
		var options strings.Builder
		for _, opt := range c.Options {
			var optAttrs strings.Builder
			if opt.Label != "" {
				fmt.Fprintf(&optAttrs, ` label="%s"`, markup.EscapeHTML(opt.Label))
			}
			value := opt.Value
			if value == "" {
				value = opt.Label
			}
			if value == "" {
				value = "option"
			}
			fmt.Fprintf(&optAttrs, ` value="%s"`, markup.EscapeHTML(value))
			if opt.Description != "" {
				fmt.Fprintf(&optAttrs, ` description="%s"`, markup.EscapeHTML(opt.Description))
			}
			if el := emojiLabel(opt.Emoji); el != "" {
				fmt.Fprintf(&optAttrs, ` emoji="%s"`, markup.EscapeHTML(el))
			}
			if opt.Default {
				optAttrs.WriteString(" default")
			}
			fmt.Fprintf(&options, "<discord-select-menu-option%s></discord-select-menu-option>", optAttrs.String())
		}
		return fmt.Sprintf("<discord-select-menu%s>%s</discord-select-menu>", attrs.String(), options.String())

	default:
		return ""
	}
}
