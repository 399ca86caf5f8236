package normalize

import (
	"encoding/json"
	"fmt"
)

// Component is one node of a message's interactive-component tree in its
// normalized form. It is a closed tagged union: ActionRow is the only kind
// that may contain children; every other kind is a leaf. Unrecognized
// records become Unknown rather than being dropped.
type Component interface {
	// ComponentType returns the semantic kind tag ("actionRow", "button",
	// "select", ...), or the string-coerced original tag for Unknown.
	ComponentType() string
}

// Component kind tags. Legacy numeric type codes from producing libraries
// map onto these; see normalizeComponentType.
const (
	KindActionRow    = "actionRow"
	KindButton       = "button"
	KindSelect       = "select"
	KindTextInput    = "textInput"
	KindText         = "text"
	KindParagraph    = "paragraph"
	KindMediaGallery = "mediaGallery"
	KindFile         = "file"
)

// ActionRow is a container holding an ordered sequence of leaf elements.
// Extra preserves unrecognized fields from the raw record verbatim.
type ActionRow struct {
	Elements []Component
	Extra    map[string]any
}

func (ActionRow) ComponentType() string { return KindActionRow }

func (r ActionRow) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+2)
	for k, v := range r.Extra {
		out[k] = v
	}
	out["type"] = KindActionRow
	elements := r.Elements
	if elements == nil {
		elements = []Component{}
	}
	out["components"] = elements
	return json.Marshal(out)
}

// Button styles after normalization of the legacy numeric style tag.
const (
	ButtonPrimary   = "primary"
	ButtonSecondary = "secondary"
	ButtonSuccess   = "success"
	ButtonDanger    = "danger"
	ButtonLink      = "link"
)

type Button struct {
	Style    string `json:"style,omitempty"`
	Label    string `json:"label,omitempty"`
	Emoji    *Emoji `json:"emoji,omitempty"`
	URL      string `json:"url,omitempty"`
	CustomID string `json:"customId,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

func (Button) ComponentType() string { return KindButton }

func (b Button) MarshalJSON() ([]byte, error) {
	type alias Button
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{KindButton, alias(b)})
}

type SelectOption struct {
	Label       string `json:"label,omitempty"`
	Value       string `json:"value,omitempty"`
	Description string `json:"description,omitempty"`
	Emoji       *Emoji `json:"emoji,omitempty"`
	Default     bool   `json:"default,omitempty"`
}

type Select struct {
	SelectType  string         `json:"selectType,omitempty"`
	Placeholder string         `json:"placeholder,omitempty"`
	Options     []SelectOption `json:"options,omitempty"`
	Disabled    bool           `json:"disabled,omitempty"`
	MinValues   *int           `json:"minValues,omitempty"`
	MaxValues   *int           `json:"maxValues,omitempty"`
}

func (Select) ComponentType() string { return KindSelect }

func (s Select) MarshalJSON() ([]byte, error) {
	type alias Select
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{KindSelect, alias(s)})
}

type TextInput struct {
	Style       string `json:"style,omitempty"`
	Label       string `json:"label,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Value       string `json:"value,omitempty"`
	Required    bool   `json:"required,omitempty"`
	MinLength   *int   `json:"minLength,omitempty"`
	MaxLength   *int   `json:"maxLength,omitempty"`
}

func (TextInput) ComponentType() string { return KindTextInput }

func (t TextInput) MarshalJSON() ([]byte, error) {
	type alias TextInput
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{KindTextInput, alias(t)})
}

// TextDisplay is a block of display text inside a component tree. Kind is
// either "text" or "paragraph" depending on the original tag.
type TextDisplay struct {
	Kind    string `json:"-"`
	Content string `json:"content,omitempty"`
}

func (t TextDisplay) ComponentType() string { return t.Kind }

func (t TextDisplay) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string `json:"type"`
		Content string `json:"content,omitempty"`
	}{t.Kind, t.Content})
}

type MediaItem struct {
	URL string `json:"url,omitempty"`
}

type MediaGallery struct {
	Items []MediaItem `json:"items"`
}

func (MediaGallery) ComponentType() string { return KindMediaGallery }

func (g MediaGallery) MarshalJSON() ([]byte, error) {
	type alias MediaGallery
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{KindMediaGallery, alias(g)})
}

type FileComponent struct {
	URL string `json:"url,omitempty"`
}

func (FileComponent) ComponentType() string { return KindFile }

func (f FileComponent) MarshalJSON() ([]byte, error) {
	type alias FileComponent
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{KindFile, alias(f)})
}

// Unknown carries an unrecognized component record: every original field
// preserved verbatim under the string-coerced type tag. Forward-compatible
// with component kinds this package does not know about.
type Unknown struct {
	Type   string
	Fields map[string]any
}

func (u Unknown) ComponentType() string { return u.Type }

func (u Unknown) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(u.Fields)+1)
	for k, v := range u.Fields {
		out[k] = v
	}
	out["type"] = u.Type
	return json.Marshal(out)
}

// normalizeComponentType maps a legacy numeric type tag to its semantic
// kind. String tags pass through; anything else is coerced to a string.
func normalizeComponentType(tag any) string {
	if s, ok := tag.(string); ok {
		return s
	}
	n, ok := asInt(tag)
	if !ok {
		if tag == nil {
			return "unknown"
		}
		return fmt.Sprint(tag)
	}
	switch n {
	case 1:
		return KindActionRow
	case 2:
		return KindButton
	case 3, 5, 6, 7, 8, 9:
		return KindSelect
	case 4:
		return KindTextInput
	case 10:
		return KindText
	case 11:
		return KindParagraph
	case 12:
		return KindMediaGallery
	case 13:
		return KindFile
	default:
		return fmt.Sprint(n)
	}
}

// mapSelectType maps a numeric select subtype to its named variant.
func mapSelectType(tag any) string {
	if s, ok := tag.(string); ok {
		return s
	}
	n, ok := asInt(tag)
	if !ok {
		return ""
	}
	switch n {
	case 3:
		return "stringSelect"
	case 5:
		return "userSelect"
	case 6:
		return "roleSelect"
	case 7:
		return "mentionableSelect"
	case 8:
		return "channelSelect"
	case 9:
		return "attachmentSelect"
	default:
		return ""
	}
}

func normalizeButtonStyle(tag any) string {
	if s, ok := tag.(string); ok {
		return s
	}
	n, ok := asInt(tag)
	if !ok {
		return ""
	}
	switch n {
	case 1:
		return ButtonPrimary
	case 2:
		return ButtonSecondary
	case 3:
		return ButtonSuccess
	case 4:
		return ButtonDanger
	case 5:
		return ButtonLink
	default:
		return ""
	}
}

// NormalizeComponents converts a raw component sequence to the normalized
// tree. Action rows have their children normalized one level deep; flat
// leaf elements are tolerated at the top level. Malformed records are
// never an error: they come through as Unknown.
func NormalizeComponents(raw []any) []Component {
	out := make([]Component, 0, len(raw))
	for _, rc := range raw {
		out = append(out, normalizeComponentNode(rc))
	}
	return out
}

func normalizeComponentNode(raw any) Component {
	rec, ok := raw.(map[string]any)
	if !ok {
		return Unknown{Type: "unknown"}
	}
	if normalizeComponentType(rec["type"]) != KindActionRow {
		return normalizeComponentElement(rec)
	}
	row := ActionRow{Elements: []Component{}}
	if children, ok := rec["components"].([]any); ok {
		for _, child := range children {
			childRec, ok := child.(map[string]any)
			if !ok {
				row.Elements = append(row.Elements, Unknown{Type: "unknown"})
				continue
			}
			row.Elements = append(row.Elements, normalizeComponentElement(childRec))
		}
	}
	for k, v := range rec {
		if k == "type" || k == "components" {
			continue
		}
		if row.Extra == nil {
			row.Extra = make(map[string]any)
		}
		row.Extra[k] = v
	}
	return row
}

func normalizeComponentElement(rec map[string]any) Component {
	kind := normalizeComponentType(rec["type"])
	switch kind {
	case KindButton:
		return Button{
			Style:    normalizeButtonStyle(rec["style"]),
			Label:    getString(rec, "label"),
			Emoji:    getEmoji(rec, "emoji", "partialEmoji"),
			URL:      getString(rec, "url"),
			CustomID: getString(rec, "custom_id", "customId"),
			Disabled: getBool(rec, "disabled"),
		}
	case KindSelect:
		sel := Select{
			SelectType:  mapSelectType(rec["type"]),
			Placeholder: getString(rec, "placeholder"),
			Disabled:    getBool(rec, "disabled"),
			MinValues:   getIntPtr(rec, "min_values", "minValues"),
			MaxValues:   getIntPtr(rec, "max_values", "maxValues"),
		}
		if sel.SelectType == "" {
			if ct := getString(rec, "componentType"); ct != "" {
				sel.SelectType = ct
			} else {
				sel.SelectType = kind
			}
		}
		if rawOpts, ok := rec["options"].([]any); ok {
			sel.Options = make([]SelectOption, 0, len(rawOpts))
			for _, ro := range rawOpts {
				opt, ok := ro.(map[string]any)
				if !ok {
					continue
				}
				sel.Options = append(sel.Options, SelectOption{
					Label:       getString(opt, "label"),
					Value:       getString(opt, "value"),
					Description: getString(opt, "description"),
					Emoji:       getEmoji(opt, "emoji"),
					Default:     getBool(opt, "default"),
				})
			}
		}
		return sel
	case KindTextInput:
		style := ""
		switch n, _ := asInt(rec["style"]); n {
		case 1:
			style = "short"
		case 2:
			style = "paragraph"
		default:
			style = getString(rec, "style")
		}
		return TextInput{
			Style:       style,
			Label:       getString(rec, "label"),
			Placeholder: getString(rec, "placeholder"),
			Value:       getString(rec, "value"),
			Required:    getBool(rec, "required"),
			MinLength:   getIntPtr(rec, "min_length", "minLength"),
			MaxLength:   getIntPtr(rec, "max_length", "maxLength"),
		}
	case KindText, KindParagraph:
		return TextDisplay{Kind: kind, Content: getString(rec, "content")}
	case KindMediaGallery:
		gallery := MediaGallery{Items: []MediaItem{}}
		if items, ok := rec["items"].([]any); ok {
			for _, ri := range items {
				item, ok := ri.(map[string]any)
				if !ok {
					continue
				}
				if media, ok := item["media"].(map[string]any); ok {
					if url := getString(media, "url"); url != "" {
						gallery.Items = append(gallery.Items, MediaItem{URL: url})
					}
				}
			}
		}
		return gallery
	case KindFile:
		fc := FileComponent{}
		if file, ok := rec["file"].(map[string]any); ok {
			fc.URL = getString(file, "url")
		}
		return fc
	default:
		fields := make(map[string]any, len(rec))
		for k, v := range rec {
			if k == "type" {
				continue
			}
			fields[k] = v
		}
		return Unknown{Type: kind, Fields: fields}
	}
}

func getString(rec map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := rec[k].(string); ok {
			return s
		}
	}
	return ""
}

func getBool(rec map[string]any, key string) bool {
	b, _ := rec[key].(bool)
	return b
}

func getIntPtr(rec map[string]any, keys ...string) *int {
	for _, k := range keys {
		if n, ok := asInt(rec[k]); ok {
			return &n
		}
	}
	return nil
}

func getEmoji(rec map[string]any, keys ...string) *Emoji {
	for _, k := range keys {
		raw, ok := rec[k].(map[string]any)
		if !ok {
			continue
		}
		return &Emoji{
			ID:       getString(raw, "id"),
			Name:     getString(raw, "name"),
			Animated: getBool(raw, "animated"),
		}
	}
	return nil
}

// asInt accepts the numeric representations JSON decoding and Go callers
// produce for type tags.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}
