package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimestamp is returned when a message's timestamp cannot be
// parsed into a point in time.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// String timestamp layouts accepted from producing libraries, tried in
// order. RFC3339 covers the ISO-8601 forms the platform emits.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Epoch values at or above this threshold are interpreted as milliseconds
// rather than seconds. 1e12 seconds is the year 33658.
const epochMillisThreshold = 1e12

// ParseTimestamp coerces the timestamp representations that appear across
// producing client libraries (ISO string, epoch seconds or milliseconds,
// native time value) into a UTC instant. A nil input is the zero epoch,
// matching the lenient behavior sources rely on; an unparseable value
// fails with ErrInvalidTimestamp.
func ParseTimestamp(v any) (time.Time, error) {
	switch ts := v.(type) {
	case nil:
		return time.Unix(0, 0).UTC(), nil
	case time.Time:
		return ts.UTC(), nil
	case string:
		if ts == "" {
			return time.Unix(0, 0).UTC(), nil
		}
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, ts); err == nil {
				return parsed.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, ts)
	case float64:
		return fromEpoch(ts), nil
	case int:
		return fromEpoch(float64(ts)), nil
	case int64:
		return fromEpoch(float64(ts)), nil
	case json.Number:
		f, err := ts.Float64()
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, ts.String())
		}
		return fromEpoch(f), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported representation %T", ErrInvalidTimestamp, v)
	}
}

func fromEpoch(v float64) time.Time {
	if v >= epochMillisThreshold || v <= -epochMillisThreshold {
		return time.UnixMilli(int64(v)).UTC()
	}
	sec := int64(v)
	nsec := int64((v - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC()
}

// DayBucket derives the date-only grouping key for a timestamp. It is the
// 10-character date prefix of the ISO form and is always recomputed from
// the timestamp, never carried independently.
func DayBucket(ts time.Time) string {
	return ts.UTC().Format("2006-01-02")
}

// Normalize converts one raw message into the canonical form: timestamps
// parsed, optional collections defaulted to empty, the component tree
// recursively normalized. Total except for unparseable timestamps.
func Normalize(raw RawMessage) (Message, error) {
	ts, err := ParseTimestamp(raw.Timestamp)
	if err != nil {
		return Message{}, fmt.Errorf("message %s: %w", raw.ID, err)
	}

	var edited *time.Time
	if raw.EditedTimestamp != nil {
		parsed, err := ParseTimestamp(raw.EditedTimestamp)
		if err != nil {
			return Message{}, fmt.Errorf("message %s edited timestamp: %w", raw.ID, err)
		}
		edited = &parsed
	}

	attachments := raw.Attachments
	if attachments == nil {
		attachments = []Attachment{}
	}
	embeds := raw.Embeds
	if embeds == nil {
		embeds = []Embed{}
	}
	reactions := raw.Reactions
	if reactions == nil {
		reactions = []Reaction{}
	}

	return Message{
		ID:              raw.ID,
		Content:         raw.Content,
		Author:          raw.Author,
		Timestamp:       ts,
		EditedTimestamp: edited,
		Attachments:     attachments,
		Embeds:          embeds,
		Reactions:       reactions,
		Components:      NormalizeComponents(raw.Components),
		Pinned:          raw.Pinned,
		Type:            raw.Type,
		Reference:       raw.Reference,
		Mentions:        raw.Mentions,
		DayBucket:       DayBucket(ts),
	}, nil
}

// NormalizeAll converts a raw message sequence in order, failing on the
// first message whose timestamp cannot be parsed.
func NormalizeAll(raw []RawMessage) ([]Message, error) {
	out := make([]Message, 0, len(raw))
	for _, rm := range raw {
		msg, err := Normalize(rm)
		if err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, nil
}
