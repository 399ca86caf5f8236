package render

import (
	"testing"
	"time"

	"github.com/JonaxDevelopment/discord-transcript-next/internal/normalize"
)

func TestJSONDeepCopy(t *testing.T) {
	msg := msgAt("1", time.Now().UTC())
	msg.Embeds = []normalize.Embed{{Title: "original"}}
	msg.Reactions = []normalize.Reaction{{Emoji: normalize.Emoji{Name: "x"}, Count: 1}}
	data := testData(msg)

	out := JSON(data, testOptions())
	out.Messages[0].Author.Username = "changed"
	out.Messages[0].Embeds[0].Title = "changed"

	if data.Messages[0].Author.Username != "alice" {
		t.Error("Expected source author to be unaffected")
	}
	if data.Messages[0].Embeds[0].Title != "original" {
		t.Error("Expected source embeds to be unaffected")
	}
}

func TestJSONToggles(t *testing.T) {
	msg := msgAt("1", time.Now().UTC())
	msg.Embeds = []normalize.Embed{{Title: "e"}}
	msg.Reactions = []normalize.Reaction{{Count: 1}}
	data := testData(msg)

	opts := testOptions()
	opts.IncludeEmbeds = false
	opts.IncludeReactions = false
	out := JSON(data, opts)

	if len(out.Messages[0].Embeds) != 0 {
		t.Error("Expected embeds to be dropped")
	}
	if len(out.Messages[0].Reactions) != 0 {
		t.Error("Expected reactions to be dropped")
	}
	if out.Messages[0].Embeds == nil || out.Messages[0].Reactions == nil {
		t.Error("Expected empty collections, not nil")
	}
}

func TestJSONPreservesMetadata(t *testing.T) {
	data := testData(msgAt("1", time.Now().UTC()))
	data.Adapter = "discord.js"
	out := JSON(data, testOptions())
	if out.Adapter != "discord.js" {
		t.Errorf("Expected adapter preserved, got %q", out.Adapter)
	}
	if !out.GeneratedAt.Equal(data.GeneratedAt) {
		t.Error("Expected generatedAt preserved")
	}
	if out.Messages[0].ID != "1" || out.Messages[0].DayBucket == "" {
		t.Error("Expected message fields carried through")
	}
}
