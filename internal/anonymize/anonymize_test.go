package anonymize

import (
	"testing"

	"github.com/JonaxDevelopment/discord-transcript-next/internal/normalize"
)

func messagesFor(authors ...*normalize.Author) []normalize.Message {
	out := make([]normalize.Message, len(authors))
	for i, a := range authors {
		out[i] = normalize.Message{ID: string(rune('a' + i)), Author: a}
	}
	return out
}

func TestApplyDisabled(t *testing.T) {
	input := messagesFor(&normalize.Author{ID: "1", Username: "alice"})
	got, mapping := Apply(input, Options{})
	if len(mapping) != 0 {
		t.Errorf("Expected empty mapping, got %d entries", len(mapping))
	}
	if got[0].Author.Username != "alice" {
		t.Error("Expected messages unchanged when anonymization is off")
	}
}

func TestApplyFirstSeenOrder(t *testing.T) {
	alice := &normalize.Author{ID: "1", Username: "alice"}
	bob := &normalize.Author{ID: "2", Username: "bob"}
	input := messagesFor(alice, bob, alice)

	got, mapping := Apply(input, Options{Usernames: true, Avatars: true})
	if len(mapping) != 2 {
		t.Fatalf("Expected 2 mapping entries, got %d", len(mapping))
	}
	if got[0].Author.Username != "User 1" {
		t.Errorf("Expected first author to be User 1, got %q", got[0].Author.Username)
	}
	if got[1].Author.Username != "User 2" {
		t.Errorf("Expected second author to be User 2, got %q", got[1].Author.Username)
	}
	if got[2].Author.Username != "User 1" {
		t.Errorf("Expected repeat author to keep its substitute, got %q", got[2].Author.Username)
	}
	if got[0].Author.Avatar != "https://cdn.discordapp.com/embed/avatars/0.png" {
		t.Errorf("Unexpected placeholder avatar: %q", got[0].Author.Avatar)
	}
	if got[1].Author.Avatar != "https://cdn.discordapp.com/embed/avatars/1.png" {
		t.Errorf("Unexpected placeholder avatar: %q", got[1].Author.Avatar)
	}
}

func TestApplyDeterministic(t *testing.T) {
	authors := []*normalize.Author{
		{ID: "10", Username: "x"},
		{ID: "20", Username: "y"},
	}
	first, _ := Apply(messagesFor(authors...), Options{Usernames: true})
	second, _ := Apply(messagesFor(authors...), Options{Usernames: true})
	for i := range first {
		if first[i].Author.Username != second[i].Author.Username {
			t.Errorf("Expected deterministic substitutes, got %q vs %q",
				first[i].Author.Username, second[i].Author.Username)
		}
	}
}

func TestApplyUsernameFallbackKey(t *testing.T) {
	// Same username without ids must collapse to one substitute.
	input := messagesFor(
		&normalize.Author{Username: "ghost"},
		&normalize.Author{Username: "ghost"},
	)
	got, mapping := Apply(input, Options{Usernames: true})
	if len(mapping) != 1 {
		t.Fatalf("Expected 1 mapping entry, got %d", len(mapping))
	}
	if got[0].Author.Username != got[1].Author.Username {
		t.Error("Expected identical substitutes for the same username key")
	}
}

func TestApplyNilAuthor(t *testing.T) {
	input := messagesFor(nil, &normalize.Author{ID: "1", Username: "a"})
	got, _ := Apply(input, Options{Usernames: true})
	if got[0].Author != nil {
		t.Error("Expected nil author to pass through")
	}
	if got[1].Author.Username != "User 1" {
		t.Errorf("Expected User 1, got %q", got[1].Author.Username)
	}
}

func TestApplyAvatarsOnly(t *testing.T) {
	input := messagesFor(&normalize.Author{ID: "1", Username: "alice", Avatar: "real.png"})
	got, _ := Apply(input, Options{Avatars: true})
	if got[0].Author.Username != "alice" {
		t.Error("Expected username untouched in avatars-only mode")
	}
	if got[0].Author.Avatar == "real.png" {
		t.Error("Expected avatar to be substituted")
	}
}

func TestApplyRotatesAvatars(t *testing.T) {
	authors := make([]*normalize.Author, 6)
	for i := range authors {
		authors[i] = &normalize.Author{ID: string(rune('A' + i))}
	}
	got, _ := Apply(messagesFor(authors...), Options{Avatars: true})
	if got[5].Author.Avatar != got[0].Author.Avatar {
		t.Errorf("Expected sixth author to reuse the first avatar, got %q vs %q",
			got[5].Author.Avatar, got[0].Author.Avatar)
	}
}
