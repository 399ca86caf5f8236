package normalize

import "time"

// RawMessage is a message as supplied by a producing client library.
// Shapes vary by library: timestamps arrive as ISO strings, epoch numbers
// or native time values, optional collections may be absent, and the
// component tree uses legacy numeric type tags. Raw messages are read-only
// inputs; normalization never mutates them.
type RawMessage struct {
	ID              string            `json:"id"`
	Content         string            `json:"content"`
	Author          *Author           `json:"author"`
	Timestamp       any               `json:"timestamp"`
	EditedTimestamp any               `json:"editedTimestamp,omitempty"`
	Attachments     []Attachment      `json:"attachments,omitempty"`
	Embeds          []Embed           `json:"embeds,omitempty"`
	Reactions       []Reaction        `json:"reactions,omitempty"`
	Components      []any             `json:"components,omitempty"`
	Pinned          bool              `json:"pinned,omitempty"`
	Type            string            `json:"type,omitempty"`
	Reference       *MessageReference `json:"reference,omitempty"`
	Mentions        *Mentions         `json:"mentions,omitempty"`
}

// Message is the canonical normalized form shared by every renderer.
// Invariants: Timestamp is a valid UTC instant (construction fails
// otherwise), the collection fields are always non-nil, DayBucket is
// derived from Timestamp and never set independently, and the component
// tree is recursively normalized.
type Message struct {
	ID              string            `json:"id"`
	Content         string            `json:"content"`
	Author          *Author           `json:"author"`
	Timestamp       time.Time         `json:"timestamp"`
	EditedTimestamp *time.Time        `json:"editedTimestamp,omitempty"`
	Attachments     []Attachment      `json:"attachments"`
	Embeds          []Embed           `json:"embeds"`
	Reactions       []Reaction        `json:"reactions"`
	Components      []Component       `json:"components"`
	Pinned          bool              `json:"pinned,omitempty"`
	Type            string            `json:"type,omitempty"`
	Reference       *MessageReference `json:"reference,omitempty"`
	Mentions        *Mentions         `json:"mentions,omitempty"`
	DayBucket       string            `json:"dayBucket"`
}

// TranscriptData is the single shared input to all renderers. Renderers
// must treat it as read-only.
type TranscriptData struct {
	Messages    []Message `json:"messages"`
	GeneratedAt time.Time `json:"generatedAt"`
	Adapter     string    `json:"adapter,omitempty"`
}

// Author identifies who sent a message.
type Author struct {
	ID            string `json:"id,omitempty"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
	Bot           bool   `json:"bot,omitempty"`
}

// Attachment is a file attached to a message.
type Attachment struct {
	ID          string `json:"id,omitempty"`
	URL         string `json:"url"`
	ProxyURL    string `json:"proxyUrl,omitempty"`
	Name        string `json:"name"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

// Embed is a rich preview card attached to a message.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Color       int          `json:"color,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Image       *EmbedMedia  `json:"image,omitempty"`
	Thumbnail   *EmbedMedia  `json:"thumbnail,omitempty"`
	Author      *EmbedAuthor `json:"author,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

type EmbedFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

type EmbedMedia struct {
	URL      string `json:"url"`
	ProxyURL string `json:"proxy_url,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

type EmbedAuthor struct {
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Reaction is an emoji reaction with its count.
type Reaction struct {
	Emoji Emoji          `json:"emoji"`
	Count int            `json:"count"`
	Me    bool           `json:"me,omitempty"`
	Users []ReactionUser `json:"users,omitempty"`
}

type ReactionUser struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
}

// Emoji identifies a unicode or custom emoji.
type Emoji struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Animated bool   `json:"animated,omitempty"`
}

// MessageReference points at the message this one replies to.
type MessageReference struct {
	MessageID string `json:"messageId,omitempty"`
	ChannelID string `json:"channelId,omitempty"`
	GuildID   string `json:"guildId,omitempty"`
}

// Mentions lists the entities a message mentions.
type Mentions struct {
	Users    []Author `json:"users,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	Everyone bool     `json:"everyone,omitempty"`
}
