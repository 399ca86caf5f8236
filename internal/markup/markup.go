// Package markup translates the platform's chat markup dialect into HTML
// or styled-delimiter-free plain text. Both translations are total over
// arbitrary input: there is no failure mode and empty input yields empty
// output.
package markup

import (
	"regexp"
	"strings"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes the characters that would otherwise be interpreted
// as document structure. Every rendering path escapes through here before
// any pattern matching, so later rules never reinterpret user content.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Inline rule order is significant: spoilers resolve before inline code
// and bold before italics so one rule's delimiter characters are never
// mis-split by a later rule (e.g. the italic rule seeing the "*" inside
// "||...||" markers already consumed by the spoiler rule).
var (
	spoilerRe    = regexp.MustCompile(`\|\|(.+?)\|\|`)
	inlineCodeRe = regexp.MustCompile("`([^`]+?)`")
	boldRe       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	underlineRe  = regexp.MustCompile(`__(.+?)__`)
	strikeRe     = regexp.MustCompile(`~~(.+?)~~`)
	// Italic requires a non-"*" boundary on each side so it cannot
	// swallow bold markers. The boundary is consumed and re-emitted.
	italicRe = regexp.MustCompile(`(^|[\s(])\*(.[^*]*?)\*([\s).]|$)`)

	// Mention patterns match the escaped form since escaping runs first.
	userMentionRe    = regexp.MustCompile(`&lt;@!?(\d+)&gt;`)
	channelMentionRe = regexp.MustCompile(`&lt;#(\d+)&gt;`)
	roleMentionRe    = regexp.MustCompile(`&lt;@&amp;(\d+)&gt;`)

	fenceLineRe = regexp.MustCompile("^```")
	quoteLineRe = regexp.MustCompile(`^>\s?`)

	fencedBlockRe = regexp.MustCompile("(?s)```.+?```")
)

func applyInline(raw string) string {
	s := EscapeHTML(raw)
	s = spoilerRe.ReplaceAllString(s, `<span class="spoiler">$1</span>`)
	s = inlineCodeRe.ReplaceAllString(s, "<code>$1</code>")
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = underlineRe.ReplaceAllString(s, "<u>$1</u>")
	s = strikeRe.ReplaceAllString(s, "<s>$1</s>")
	// The consumed boundary hides an italic run that immediately follows
	// another; run to fixpoint so adjacent runs all resolve.
	for {
		next := italicRe.ReplaceAllString(s, "$1<em>$2</em>$3")
		if next == s {
			break
		}
		s = next
	}
	return s
}

// replaceMentions substitutes platform mention syntax with inert
// placeholder markup carrying the raw id as data. No display name is
// available at render time, so none is resolved.
func replaceMentions(s string) string {
	s = userMentionRe.ReplaceAllString(s, `<span class="mention user" data-user-id="$1">@User</span>`)
	s = channelMentionRe.ReplaceAllString(s, `<span class="mention channel" data-channel-id="$1">#channel</span>`)
	s = roleMentionRe.ReplaceAllString(s, `<span class="mention role" data-role-id="$1">@role</span>`)
	s = strings.ReplaceAll(s, "@everyone", `<span class="mention everyone" data-mention="everyone">@everyone</span>`)
	s = strings.ReplaceAll(s, "@here", `<span class="mention here" data-mention="here">@here</span>`)
	return s
}

// ToHTML renders chat markup as HTML. Each input line becomes its own
// block: fenced-code lines a preformatted block exempt from inline rules,
// quote lines a blockquote, everything else a paragraph with inline rules
// and mention substitution applied.
func ToHTML(input string) string {
	if input == "" {
		return ""
	}
	var b strings.Builder
	for line := range strings.SplitSeq(strings.ReplaceAll(input, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if fenceLineRe.MatchString(trimmed) {
			b.WriteString("<pre><code>")
			b.WriteString(EscapeHTML(strings.ReplaceAll(trimmed, "```", "")))
			b.WriteString("</code></pre>")
			continue
		}
		if quoteLineRe.MatchString(trimmed) {
			b.WriteString("<blockquote>")
			b.WriteString(applyInline(strings.TrimSpace(trimmed[1:])))
			b.WriteString("</blockquote>")
			continue
		}
		b.WriteString("<p>")
		b.WriteString(replaceMentions(applyInline(line)))
		b.WriteString("</p>")
	}
	return b.String()
}

// ToText strips styling delimiters without escaping: fenced code blocks
// expand to their inner text and @everyone/@here collapse to bare words.
// Plain text has no injection surface of its own.
func ToText(input string) string {
	s := spoilerStrip(input)
	s = fencedBlockRe.ReplaceAllStringFunc(s, func(block string) string {
		return strings.ReplaceAll(block, "```", "")
	})
	s = boldRe.ReplaceAllString(s, "$1")
	s = underlineRe.ReplaceAllString(s, "$1")
	s = strikeRe.ReplaceAllString(s, "$1")
	s = inlineCodeRe.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "@everyone", "everyone")
	s = strings.ReplaceAll(s, "@here", "here")
	return s
}

func spoilerStrip(s string) string {
	return strings.ReplaceAll(s, "||", "")
}
