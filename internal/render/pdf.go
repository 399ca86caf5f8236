package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/JonaxDevelopment/discord-transcript-next/internal/markup"
	"github.com/JonaxDevelopment/discord-transcript-next/internal/normalize"
)

// PDF renders the transcript as a paginated A4 document. Markup in
// message content is reduced to plain text first; layout mirrors the
// Markdown renderer rather than the HTML one.
func PDF(data *normalize.TranscriptData, opts Options) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Discord Transcript", true)
	doc.SetAutoPageBreak(true, 18)
	doc.SetMargins(18, 18, 18)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, tr("Discord Transcript"), "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(85, 85, 85)
	doc.CellFormat(0, 6, tr("Generated: "+data.GeneratedAt.UTC().Format(time.RFC3339)), "", 1, "L", false, 0, "")
	doc.Ln(4)

	for i, msg := range data.Messages {
		if i > 0 {
			doc.Ln(4)
		}
		writePDFMessage(doc, tr, msg, opts)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writePDFMessage(doc *fpdf.Fpdf, tr func(string) string, msg normalize.Message, opts Options) {
	author := "Unknown User"
	if msg.Author != nil && msg.Author.Username != "" {
		author = msg.Author.Username
	}
	doc.SetFont("Helvetica", "B", 12)
	doc.SetTextColor(34, 34, 34)
	doc.CellFormat(doc.GetStringWidth(tr(author))+2, 6, tr(author), "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(85, 85, 85)
	doc.CellFormat(0, 6, tr(msg.Timestamp.UTC().Format(time.RFC3339)), "", 1, "L", false, 0, "")

	content := markup.ToText(msg.Content)
	if strings.TrimSpace(content) == "" {
		content = "[Empty message]"
	}
	doc.SetFont("Helvetica", "", 11)
	doc.SetTextColor(17, 17, 17)
	doc.MultiCell(0, 5, tr(content), "", "L", false)

	if opts.IncludeEmbeds && len(msg.Embeds) > 0 {
		writePDFHeading(doc, tr, "Embeds:")
		for i, embed := range msg.Embeds {
			title := embed.Title
			if title == "" {
				title = fmt.Sprintf("Embed %d", i+1)
			}
			writePDFItem(doc, tr, title)
			if embed.Description != "" {
				doc.SetTextColor(102, 102, 102)
				doc.MultiCell(0, 5, tr("  "+markup.ToText(embed.Description)), "", "L", false)
			}
		}
	}

	if opts.IncludeReactions && len(msg.Reactions) > 0 {
		writePDFHeading(doc, tr, "Reactions:")
		for _, r := range msg.Reactions {
			name := r.Emoji.Name
			if name == "" {
				name = "emoji"
			}
			writePDFItem(doc, tr, fmt.Sprintf("%s x %d", name, r.Count))
		}
	}

	if len(msg.Components) > 0 {
		writePDFHeading(doc, tr, "Components:")
		for i, comp := range msg.Components {
			writePDFItem(doc, tr, fmt.Sprintf("Row %d: %s", i+1, pdfComponentLabels(comp)))
		}
	}

	if len(msg.Attachments) > 0 {
		writePDFHeading(doc, tr, "Attachments:")
		for _, att := range msg.Attachments {
			name := att.Name
			if name == "" {
				name = "attachment"
			}
			writePDFItem(doc, tr, fmt.Sprintf("%s (%s)", name, att.URL))
		}
	}
}

func writePDFHeading(doc *fpdf.Fpdf, tr func(string) string, text string) {
	doc.Ln(1)
	doc.SetFont("Helvetica", "B", 11)
	doc.SetTextColor(51, 51, 51)
	doc.CellFormat(0, 5, tr(text), "", 1, "L", false, 0, "")
}

func writePDFItem(doc *fpdf.Fpdf, tr func(string) string, text string) {
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(68, 68, 68)
	doc.MultiCell(0, 5, tr("- "+text), "", "L", false)
}

// pdfComponentLabels flattens one component row to a comma-separated
// label list.
func pdfComponentLabels(comp normalize.Component) string {
	elements := []normalize.Component{comp}
	if row, ok := comp.(normalize.ActionRow); ok && len(row.Elements) > 0 {
		elements = row.Elements
	}
	labels := make([]string, 0, len(elements))
	for _, el := range elements {
		labels = append(labels, pdfComponentLabel(el))
	}
	return strings.Join(labels, ", ")
}

func pdfComponentLabel(comp normalize.Component) string {
	switch c := comp.(type) {
	case normalize.Button:
		if c.Label != "" {
			return c.Label
		}
		return "Button"
	case normalize.Select:
		if c.Placeholder != "" {
			return c.Placeholder
		}
		return "Select"
	case normalize.TextInput:
		if c.Label != "" {
			return c.Label
		}
		return "Text Input"
	default:
		return comp.ComponentType()
	}
}
