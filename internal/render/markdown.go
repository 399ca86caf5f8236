package render

import (
	"fmt"
	"strings"

	"github.com/JonaxDevelopment/discord-transcript-next/internal/markup"
	"github.com/JonaxDevelopment/discord-transcript-next/internal/normalize"
)

// Markdown renders the transcript as a plain Markdown document: a header
// block followed by one section per message separated by horizontal rules.
func Markdown(data *normalize.TranscriptData, opts Options) string {
	var b strings.Builder
	b.WriteString("# Discord Transcript\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", data.GeneratedAt.UTC().Format("Jan 2, 2006 3:04 PM"))
	fmt.Fprintf(&b, "Messages: %d\n\n", len(data.Messages))
	b.WriteString("---\n\n")

	for _, msg := range data.Messages {
		writeMarkdownMessage(&b, msg, opts)
		b.WriteString("---\n\n")
	}
	return b.String()
}

func writeMarkdownMessage(b *strings.Builder, msg normalize.Message, opts Options) {
	author := "Unknown"
	if msg.Author != nil && msg.Author.Username != "" {
		author = msg.Author.Username
	}
	fmt.Fprintf(b, "### %s - %s\n\n", author, formatTimestamp(msg.Timestamp, opts.Timezone))

	if content := strings.TrimSpace(msg.Content); content != "" {
		b.WriteString(content)
		b.WriteString("\n\n")
	} else {
		b.WriteString("_Empty message_\n\n")
	}

	if len(msg.Attachments) > 0 {
		b.WriteString("**Attachments:**\n\n")
		for _, att := range msg.Attachments {
			name := att.Name
			if name == "" {
				name = "attachment"
			}
			fmt.Fprintf(b, "- [%s](%s)\n", name, att.URL)
		}
		b.WriteString("\n")
	}

	if opts.IncludeEmbeds && len(msg.Embeds) > 0 {
		b.WriteString("**Embeds:**\n\n")
		for _, embed := range msg.Embeds {
			if embed.Title != "" {
				fmt.Fprintf(b, "- **%s**", embed.Title)
				if embed.Description != "" {
					fmt.Fprintf(b, ": %s", embed.Description)
				}
				b.WriteString("\n")
			} else if embed.Description != "" {
				fmt.Fprintf(b, "- %s\n", embed.Description)
			} else {
				b.WriteString("- (embed)\n")
			}
		}
		b.WriteString("\n")
	}

	if len(msg.Components) > 0 {
		b.WriteString("**Components:**\n\n")
		for _, comp := range msg.Components {
			writeMarkdownComponent(b, comp, 0)
		}
		b.WriteString("\n")
	}

	if opts.IncludeReactions && len(msg.Reactions) > 0 {
		b.WriteString("**Reactions:** ")
		parts := make([]string, 0, len(msg.Reactions))
		for _, r := range msg.Reactions {
			name := r.Emoji.Name
			if name == "" {
				name = "emoji"
			}
			parts = append(parts, fmt.Sprintf("%s (%d)", name, r.Count))
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("\n\n")
	}
}

func writeMarkdownComponent(b *strings.Builder, comp normalize.Component, depth int) {
	indent := strings.Repeat("  ", depth)
	switch c := comp.(type) {
	case normalize.ActionRow:
		fmt.Fprintf(b, "%s- Row:\n", indent)
		for _, el := range c.Elements {
			writeMarkdownComponent(b, el, depth+1)
		}
	case normalize.Button:
		label := c.Label
		if label == "" {
			label = "Button"
		}
		if c.URL != "" {
			fmt.Fprintf(b, "%s- [%s](%s)\n", indent, label, c.URL)
		} else {
			fmt.Fprintf(b, "%s- Button: %s\n", indent, label)
		}
	case normalize.Select:
		placeholder := c.Placeholder
		if placeholder == "" {
			placeholder = c.SelectType
		}
		fmt.Fprintf(b, "%s- Select: %s\n", indent, placeholder)
	case normalize.TextInput:
		fmt.Fprintf(b, "%s- Input: %s\n", indent, c.Label)
	case normalize.TextDisplay:
		fmt.Fprintf(b, "%s- %s\n", indent, markup.ToText(c.Content))
	case normalize.MediaGallery:
		fmt.Fprintf(b, "%s- Gallery (%d items)\n", indent, len(c.Items))
	case normalize.FileComponent:
		fmt.Fprintf(b, "%s- File: %s\n", indent, c.URL)
	default:
		fmt.Fprintf(b, "%s- %s\n", indent, comp.ComponentType())
	}
}
