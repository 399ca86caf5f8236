package adapter

import (
	"context"
	"errors"
	"iter"
	"reflect"
	"testing"

	"github.com/JonaxDevelopment/discord-transcript-next/internal/normalize"
)

var sampleMessages = []normalize.RawMessage{
	{ID: "1", Content: "one", Timestamp: "2024-03-01T12:00:00Z"},
	{ID: "2", Content: "two", Timestamp: "2024-03-01T12:01:00Z"},
}

// Fake fetch surfaces shared by the handle fixtures below.

type fakeFetcher struct{ msgs []normalize.RawMessage }

func (f fakeFetcher) Fetch(ctx context.Context, req FetchRequest) (any, error) {
	return f.msgs, nil
}

type fakeGetter struct{ msgs []normalize.RawMessage }

func (f fakeGetter) Get(ctx context.Context, req FetchRequest) (any, error) {
	return f.msgs, nil
}

func (f fakeGetter) GetMessages(ctx context.Context, req FetchRequest) (any, error) {
	return f.msgs, nil
}

func (f fakeGetter) GetChannelMessages(ctx context.Context, req FetchRequest) (any, error) {
	return f.msgs, nil
}

// Handle fixtures, one per client-library shape.

type messageManagerHandle struct{ msgs []normalize.RawMessage }

func (h messageManagerHandle) Messages() any { return fakeFetcher{h.msgs} }

type fetchMessagesHandle struct{ msgs []normalize.RawMessage }

func (h fetchMessagesHandle) FetchMessages(ctx context.Context, req FetchRequest) (any, error) {
	return h.msgs, nil
}

type dfxHandle struct{ msgs []normalize.RawMessage }

func (h dfxHandle) GetMessages(ctx context.Context, req FetchRequest) (any, error) {
	return h.msgs, nil
}
func (h dfxHandle) Rest() any { return struct{}{} }

type dysnomiaHandle struct{ msgs []normalize.RawMessage }

func (h dysnomiaHandle) GetMessages(ctx context.Context, req FetchRequest) (any, error) {
	return h.msgs, nil
}
func (h dysnomiaHandle) Client() any { return struct{}{} }

type erisHandle struct{ msgs []normalize.RawMessage }

func (h erisHandle) GetMessages(ctx context.Context, req FetchRequest) (any, error) {
	return h.msgs, nil
}
func (h erisHandle) UnderlyingClient() any { return struct{}{} }

type helpersClient struct{ msgs []normalize.RawMessage }

func (c helpersClient) Helpers() any { return fakeGetter{c.msgs} }

type discordenoHandle struct{ msgs []normalize.RawMessage }

func (h discordenoHandle) Client() any { return helpersClient{h.msgs} }

type droffHandle struct{ msgs []normalize.RawMessage }

func (h droffHandle) Rest() any { return fakeGetter{h.msgs} }

type channelsRest struct{ msgs []normalize.RawMessage }

func (r channelsRest) Channels() any { return fakeGetter{r.msgs} }

type oceanicClient struct{ msgs []normalize.RawMessage }

func (c oceanicClient) Rest() any { return channelsRest{c.msgs} }

type oceanicHandle struct{ msgs []normalize.RawMessage }

func (h oceanicHandle) Client() any { return oceanicClient{h.msgs} }

type snowClient struct{ msgs []normalize.RawMessage }

func (c snowClient) Channel() any { return fakeGetter{c.msgs} }

type snowTransferHandle struct{ msgs []normalize.RawMessage }

func (h snowTransferHandle) Client() any { return snowClient{h.msgs} }

type tiscordClient struct{ msgs []normalize.RawMessage }

func (c tiscordClient) Rest() any { return fakeGetter{c.msgs} }

type tiscordHandle struct{ msgs []normalize.RawMessage }

func (h tiscordHandle) Client() any { return tiscordClient{h.msgs} }

type discallClient struct{ msgs []normalize.RawMessage }

func (c discallClient) API() any { return fakeGetter{c.msgs} }

type discallHandle struct{ msgs []normalize.RawMessage }

func (h discallHandle) Client() any { return discallClient{h.msgs} }

type rawRestHandle struct{ endpoint string }

func (h rawRestHandle) Endpoint() string { return h.endpoint }

type panickyHandle struct{}

func (panickyHandle) Messages() any { panic("broken accessor") }

func TestRegistryOrder(t *testing.T) {
	want := []string{
		"discord.js", "Detritus", "dfx", "Discordeno", "droff",
		"Dysnomia", "Eris", "Harmony", "Oceanic", "Seyfert",
		"SnowTransfer", "Tiscord", "Discall", "disgroove", "Raw REST",
	}
	got := NewRegistry().Names()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Registry order changed:\n got %v\nwant %v", got, want)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		handle any
		want   string
	}{
		{"message manager", messageManagerHandle{sampleMessages}, "discord.js"},
		{"top-level fetchMessages", fetchMessagesHandle{sampleMessages}, "Detritus"},
		{"getMessages with rest", dfxHandle{sampleMessages}, "dfx"},
		{"helpers chain", discordenoHandle{sampleMessages}, "Discordeno"},
		{"rest get", droffHandle{sampleMessages}, "droff"},
		{"getMessages with client", dysnomiaHandle{sampleMessages}, "Dysnomia"},
		{"getMessages with underlying client", erisHandle{sampleMessages}, "Eris"},
		{"client rest channels", oceanicHandle{sampleMessages}, "Oceanic"},
		{"client channel api", snowTransferHandle{sampleMessages}, "SnowTransfer"},
		{"client rest getMessages", tiscordHandle{sampleMessages}, "Tiscord"},
		{"client api get", discallHandle{sampleMessages}, "Discall"},
		{"raw rest descriptor", rawRestHandle{"/channels/1/messages"}, "Raw REST"},
	}

	reg := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := reg.Detect(tt.handle)
			if !ok {
				t.Fatalf("Expected detection to match %q", tt.want)
			}
			if got != tt.want {
				t.Errorf("Expected adapter %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDetectNoMatch(t *testing.T) {
	reg := NewRegistry()
	if name, ok := reg.Detect(struct{}{}); ok {
		t.Errorf("Expected no match, got %q", name)
	}
	if name, ok := reg.Detect(rawRestHandle{""}); ok {
		t.Errorf("Expected empty endpoint not to match, got %q", name)
	}
}

func TestDetectSurvivesPanickyProbe(t *testing.T) {
	reg := NewRegistry()
	if name, ok := reg.Detect(panickyHandle{}); ok {
		t.Errorf("Expected panicking probe to be a non-match, got %q", name)
	}
}

func TestFetchViaDetection(t *testing.T) {
	reg := NewRegistry()
	handles := map[string]any{
		"discord.js":   messageManagerHandle{sampleMessages},
		"Detritus":     fetchMessagesHandle{sampleMessages},
		"dfx":          dfxHandle{sampleMessages},
		"Discordeno":   discordenoHandle{sampleMessages},
		"droff":        droffHandle{sampleMessages},
		"Dysnomia":     dysnomiaHandle{sampleMessages},
		"Eris":         erisHandle{sampleMessages},
		"Oceanic":      oceanicHandle{sampleMessages},
		"SnowTransfer": snowTransferHandle{sampleMessages},
		"Tiscord":      tiscordHandle{sampleMessages},
		"Discall":      discallHandle{sampleMessages},
	}
	for want, handle := range handles {
		msgs, name, err := reg.Fetch(context.Background(), handle, FetchOptions{})
		if err != nil {
			t.Errorf("%s: fetch failed: %v", want, err)
			continue
		}
		if name != want {
			t.Errorf("Expected adapter %q, got %q", want, name)
		}
		if len(msgs) != len(sampleMessages) {
			t.Errorf("%s: expected %d messages, got %d", want, len(sampleMessages), len(msgs))
		}
	}
}

func TestFetchExplicitAdapterBypassesDetection(t *testing.T) {
	reg := NewRegistry()
	// The handle matches Detritus first, but the explicit name wins.
	msgs, name, err := reg.Fetch(context.Background(), fetchMessagesHandle{sampleMessages},
		FetchOptions{Adapter: "Harmony"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if name != "Harmony" {
		t.Errorf("Expected Harmony, got %q", name)
	}
	if len(msgs) != 2 {
		t.Errorf("Expected 2 messages, got %d", len(msgs))
	}
}

func TestFetchUnknownAdapter(t *testing.T) {
	reg := NewRegistry()
	_, _, err := reg.Fetch(context.Background(), nil, FetchOptions{Adapter: "nope"})
	if !errors.Is(err, ErrUnknownAdapter) {
		t.Fatalf("Expected ErrUnknownAdapter, got %v", err)
	}
}

func TestFetchDetectionOnlyAdapter(t *testing.T) {
	reg := NewRegistry()
	_, _, err := reg.Fetch(context.Background(), rawRestHandle{"/channels/1/messages"}, FetchOptions{})
	if !errors.Is(err, ErrFetchUnsupported) {
		t.Fatalf("Expected ErrFetchUnsupported, got %v", err)
	}
}

func TestFetchDetectionFailed(t *testing.T) {
	reg := NewRegistry()
	_, _, err := reg.Fetch(context.Background(), struct{}{}, FetchOptions{})
	if !errors.Is(err, ErrDetectionFailed) {
		t.Fatalf("Expected ErrDetectionFailed, got %v", err)
	}
}

func TestRegisterAppends(t *testing.T) {
	reg := NewRegistry()
	reg.Register(ChannelAdapter{Name: "custom", Detect: func(any) bool { return false }})
	names := reg.Names()
	if names[len(names)-1] != "custom" {
		t.Errorf("Expected custom adapter last, got %v", names)
	}
}

func TestFlatten(t *testing.T) {
	t.Run("slice copies", func(t *testing.T) {
		got := Flatten(sampleMessages)
		if len(got) != 2 {
			t.Fatalf("Expected 2 messages, got %d", len(got))
		}
		got[0].ID = "mutated"
		if sampleMessages[0].ID != "1" {
			t.Error("Expected input slice to be unaffected")
		}
	})

	t.Run("map in ascending key order", func(t *testing.T) {
		got := Flatten(map[string]normalize.RawMessage{
			"b": {ID: "2"},
			"a": {ID: "1"},
			"c": {ID: "3"},
		})
		if got[0].ID != "1" || got[1].ID != "2" || got[2].ID != "3" {
			t.Errorf("Expected keys in ascending order, got %v", got)
		}
	})

	t.Run("iterator drained", func(t *testing.T) {
		seq := iter.Seq[normalize.RawMessage](func(yield func(normalize.RawMessage) bool) {
			for _, m := range sampleMessages {
				if !yield(m) {
					return
				}
			}
		})
		if got := Flatten(seq); len(got) != 2 {
			t.Errorf("Expected 2 messages, got %d", len(got))
		}
	})

	t.Run("channel drained", func(t *testing.T) {
		ch := make(chan normalize.RawMessage, 2)
		ch <- sampleMessages[0]
		ch <- sampleMessages[1]
		close(ch)
		if got := Flatten((<-chan normalize.RawMessage)(ch)); len(got) != 2 {
			t.Errorf("Expected 2 messages, got %d", len(got))
		}
	})

	t.Run("nil and unknown empty", func(t *testing.T) {
		if got := Flatten(nil); len(got) != 0 {
			t.Errorf("Expected empty, got %v", got)
		}
		if got := Flatten(42); len(got) != 0 {
			t.Errorf("Expected empty, got %v", got)
		}
	})
}

func TestBuildRequest(t *testing.T) {
	req := buildRequest(FetchOptions{})
	if req.Limit != defaultFetchLimit || req.Cursor {
		t.Errorf("Expected default bare request, got %+v", req)
	}

	req = buildRequest(FetchOptions{Limit: 50, Before: "9"})
	if req.Limit != 50 || !req.Cursor || req.Before != "9" {
		t.Errorf("Expected cursor request, got %+v", req)
	}
}
