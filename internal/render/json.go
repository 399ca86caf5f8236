package render

import (
	"github.com/JonaxDevelopment/discord-transcript-next/internal/normalize"
)

// JSON produces a deep copy of the transcript data with the option
// toggles applied. Callers may marshal or mutate the result freely
// without affecting the source data or sibling renderers.
func JSON(data *normalize.TranscriptData, opts Options) *normalize.TranscriptData {
	out := &normalize.TranscriptData{
		Messages:    make([]normalize.Message, len(data.Messages)),
		GeneratedAt: data.GeneratedAt,
		Adapter:     data.Adapter,
	}
	for i, msg := range data.Messages {
		out.Messages[i] = cloneMessage(msg, opts)
	}
	return out
}

func cloneMessage(msg normalize.Message, opts Options) normalize.Message {
	clone := msg
	if msg.Author != nil {
		author := *msg.Author
		clone.Author = &author
	}
	if msg.EditedTimestamp != nil {
		edited := *msg.EditedTimestamp
		clone.EditedTimestamp = &edited
	}
	if msg.Reference != nil {
		ref := *msg.Reference
		clone.Reference = &ref
	}

	clone.Attachments = append([]normalize.Attachment(nil), msg.Attachments...)
	if clone.Attachments == nil {
		clone.Attachments = []normalize.Attachment{}
	}

	if opts.IncludeEmbeds {
		clone.Embeds = cloneEmbeds(msg.Embeds)
	} else {
		clone.Embeds = []normalize.Embed{}
	}
	if opts.IncludeReactions {
		clone.Reactions = cloneReactions(msg.Reactions)
	} else {
		clone.Reactions = []normalize.Reaction{}
	}

	clone.Components = append([]normalize.Component(nil), msg.Components...)
	if clone.Components == nil {
		clone.Components = []normalize.Component{}
	}

	if msg.Mentions != nil {
		mentions := normalize.Mentions{
			Everyone: msg.Mentions.Everyone,
			Users:    append([]normalize.Author(nil), msg.Mentions.Users...),
			Roles:    append([]string(nil), msg.Mentions.Roles...),
		}
		clone.Mentions = &mentions
	}
	return clone
}

func cloneEmbeds(embeds []normalize.Embed) []normalize.Embed {
	out := make([]normalize.Embed, len(embeds))
	for i, e := range embeds {
		clone := e
		if e.Footer != nil {
			footer := *e.Footer
			clone.Footer = &footer
		}
		if e.Image != nil {
			image := *e.Image
			clone.Image = &image
		}
		if e.Thumbnail != nil {
			thumb := *e.Thumbnail
			clone.Thumbnail = &thumb
		}
		if e.Author != nil {
			author := *e.Author
			clone.Author = &author
		}
		clone.Fields = append([]normalize.EmbedField(nil), e.Fields...)
		out[i] = clone
	}
	return out
}

func cloneReactions(reactions []normalize.Reaction) []normalize.Reaction {
	out := make([]normalize.Reaction, len(reactions))
	for i, r := range reactions {
		clone := r
		clone.Users = append([]normalize.ReactionUser(nil), r.Users...)
		out[i] = clone
	}
	return out
}
