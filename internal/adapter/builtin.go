package adapter

import (
	"context"
	"fmt"

	"github.com/JonaxDevelopment/discord-transcript-next/internal/normalize"
)

// Capability interfaces describing the method shapes of the supported
// client libraries. A handle "looks like" a library when it satisfies the
// library's interface chain; several libraries only differ in which
// accessor leads to the fetch method. Handles implement these directly;
// there is no reflection.

// MessageManagerProvider matches handles exposing a message manager
// (discord.js, Seyfert: messages.fetch).
type MessageManagerProvider interface {
	Messages() any
}

// Fetcher is a message manager's fetch method.
type Fetcher interface {
	Fetch(ctx context.Context, req FetchRequest) (any, error)
}

// MessageFetcher matches handles with a top-level fetchMessages method
// (Detritus, Harmony, disgroove).
type MessageFetcher interface {
	FetchMessages(ctx context.Context, req FetchRequest) (any, error)
}

// MessageGetter matches handles or API surfaces with a getMessages
// method (dfx, Dysnomia, Eris, Discordeno helpers, Oceanic channels,
// Tiscord rest).
type MessageGetter interface {
	GetMessages(ctx context.Context, req FetchRequest) (any, error)
}

// Getter is a generic REST get method (droff rest, Discall api).
type Getter interface {
	Get(ctx context.Context, req FetchRequest) (any, error)
}

// ChannelMessagesGetter matches SnowTransfer's channel API.
type ChannelMessagesGetter interface {
	GetChannelMessages(ctx context.Context, req FetchRequest) (any, error)
}

// ClientProvider exposes the owning client object.
type ClientProvider interface {
	Client() any
}

// UnderlyingClientProvider exposes a client kept on an internal field
// (the Eris shape).
type UnderlyingClientProvider interface {
	UnderlyingClient() any
}

// RestProvider exposes a REST surface.
type RestProvider interface {
	Rest() any
}

// HelpersProvider exposes a helpers surface (Discordeno).
type HelpersProvider interface {
	Helpers() any
}

// ChannelAPIProvider exposes a singular channel API surface
// (SnowTransfer).
type ChannelAPIProvider interface {
	Channel() any
}

// ChannelsProvider exposes a plural channels API surface (Oceanic).
type ChannelsProvider interface {
	Channels() any
}

// APIProvider exposes a raw API surface (Discall).
type APIProvider interface {
	API() any
}

// Endpointer marks a raw REST descriptor. Detectable, not fetchable.
type Endpointer interface {
	Endpoint() string
}

// URLer is the alternate raw REST descriptor shape.
type URLer interface {
	URL() string
}

// builtinAdapters returns the built-in adapter list. The order is a
// compatibility contract: adapters whose structural signatures overlap
// (e.g. the three libraries exposing only a top-level fetchMessages) are
// disambiguated purely by position, so entries must not be reordered.
func builtinAdapters() []ChannelAdapter {
	return []ChannelAdapter{
		{Name: "discord.js", Detect: detectMessageManager, Fetch: fetchViaMessageManager},
		{Name: "Detritus", Detect: detectFetchMessages, Fetch: fetchViaFetchMessages},
		{Name: "dfx", Detect: detectDfx, Fetch: fetchViaGetMessages},
		{Name: "Discordeno", Detect: detectDiscordeno, Fetch: fetchViaDiscordeno},
		{Name: "droff", Detect: detectDroff, Fetch: fetchViaDroff},
		{Name: "Dysnomia", Detect: detectDysnomia, Fetch: fetchViaGetMessages},
		{Name: "Eris", Detect: detectEris, Fetch: fetchViaGetMessages},
		{Name: "Harmony", Detect: detectFetchMessages, Fetch: fetchViaFetchMessages},
		{Name: "Oceanic", Detect: detectOceanic, Fetch: fetchViaOceanic},
		{Name: "Seyfert", Detect: detectMessageManager, Fetch: fetchViaMessageManager},
		{Name: "SnowTransfer", Detect: detectSnowTransfer, Fetch: fetchViaSnowTransfer},
		{Name: "Tiscord", Detect: detectTiscord, Fetch: fetchViaTiscord},
		{Name: "Discall", Detect: detectDiscall, Fetch: fetchViaDiscall},
		{Name: "disgroove", Detect: detectFetchMessages, Fetch: fetchViaFetchMessages},
		{Name: "Raw REST", Detect: detectRawRest, Fetch: nil},
	}
}

func detectMessageManager(handle any) bool {
	mp, ok := handle.(MessageManagerProvider)
	if !ok {
		return false
	}
	_, ok = mp.Messages().(Fetcher)
	return ok
}

func fetchViaMessageManager(ctx context.Context, handle any, opts FetchOptions) ([]normalize.RawMessage, error) {
	mp, ok := handle.(MessageManagerProvider)
	if !ok {
		return nil, ErrMethodMissing
	}
	f, ok := mp.Messages().(Fetcher)
	if !ok {
		return nil, ErrMethodMissing
	}
	result, err := f.Fetch(ctx, buildRequest(opts))
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	return Flatten(result), nil
}

func detectFetchMessages(handle any) bool {
	_, ok := handle.(MessageFetcher)
	return ok
}

func fetchViaFetchMessages(ctx context.Context, handle any, opts FetchOptions) ([]normalize.RawMessage, error) {
	f, ok := handle.(MessageFetcher)
	if !ok {
		return nil, ErrMethodMissing
	}
	result, err := f.FetchMessages(ctx, buildRequest(opts))
	if err != nil {
		return nil, fmt.Errorf("fetchMessages: %w", err)
	}
	return Flatten(result), nil
}

func fetchViaGetMessages(ctx context.Context, handle any, opts FetchOptions) ([]normalize.RawMessage, error) {
	g, ok := handle.(MessageGetter)
	if !ok {
		return nil, ErrMethodMissing
	}
	result, err := g.GetMessages(ctx, buildRequest(opts))
	if err != nil {
		return nil, fmt.Errorf("getMessages: %w", err)
	}
	return Flatten(result), nil
}

// dfx: getMessages plus a REST surface on the handle or its client.
func detectDfx(handle any) bool {
	if _, ok := handle.(MessageGetter); !ok {
		return false
	}
	if _, ok := handle.(RestProvider); ok {
		return true
	}
	if cp, ok := handle.(ClientProvider); ok {
		_, ok = cp.Client().(RestProvider)
		return ok
	}
	return false
}

// Dysnomia: getMessages plus a client accessor.
func detectDysnomia(handle any) bool {
	if _, ok := handle.(MessageGetter); !ok {
		return false
	}
	_, ok := handle.(ClientProvider)
	return ok
}

// Eris: getMessages plus the internal-field client shape.
func detectEris(handle any) bool {
	if _, ok := handle.(MessageGetter); !ok {
		return false
	}
	_, ok := handle.(UnderlyingClientProvider)
	return ok
}

func detectDiscordeno(handle any) bool {
	cp, ok := handle.(ClientProvider)
	if !ok {
		return false
	}
	hp, ok := cp.Client().(HelpersProvider)
	if !ok {
		return false
	}
	_, ok = hp.Helpers().(MessageGetter)
	return ok
}

func fetchViaDiscordeno(ctx context.Context, handle any, opts FetchOptions) ([]normalize.RawMessage, error) {
	cp, ok := handle.(ClientProvider)
	if !ok {
		return nil, ErrMethodMissing
	}
	hp, ok := cp.Client().(HelpersProvider)
	if !ok {
		return nil, ErrMethodMissing
	}
	g, ok := hp.Helpers().(MessageGetter)
	if !ok {
		return nil, ErrMethodMissing
	}
	result, err := g.GetMessages(ctx, buildRequest(opts))
	if err != nil {
		return nil, fmt.Errorf("helpers.getMessages: %w", err)
	}
	return Flatten(result), nil
}

func detectDroff(handle any) bool {
	rp, ok := handle.(RestProvider)
	if !ok {
		return false
	}
	_, ok = rp.Rest().(Getter)
	return ok
}

func fetchViaDroff(ctx context.Context, handle any, opts FetchOptions) ([]normalize.RawMessage, error) {
	rp, ok := handle.(RestProvider)
	if !ok {
		return nil, ErrMethodMissing
	}
	g, ok := rp.Rest().(Getter)
	if !ok {
		return nil, ErrMethodMissing
	}
	result, err := g.Get(ctx, buildRequest(opts))
	if err != nil {
		return nil, fmt.Errorf("rest.get: %w", err)
	}
	return Flatten(result), nil
}

func detectOceanic(handle any) bool {
	cp, ok := handle.(ClientProvider)
	if !ok {
		return false
	}
	rp, ok := cp.Client().(RestProvider)
	if !ok {
		return false
	}
	chp, ok := rp.Rest().(ChannelsProvider)
	if !ok {
		return false
	}
	_, ok = chp.Channels().(MessageGetter)
	return ok
}

func fetchViaOceanic(ctx context.Context, handle any, opts FetchOptions) ([]normalize.RawMessage, error) {
	cp, ok := handle.(ClientProvider)
	if !ok {
		return nil, ErrMethodMissing
	}
	rp, ok := cp.Client().(RestProvider)
	if !ok {
		return nil, ErrMethodMissing
	}
	chp, ok := rp.Rest().(ChannelsProvider)
	if !ok {
		return nil, ErrMethodMissing
	}
	g, ok := chp.Channels().(MessageGetter)
	if !ok {
		return nil, ErrMethodMissing
	}
	result, err := g.GetMessages(ctx, buildRequest(opts))
	if err != nil {
		return nil, fmt.Errorf("rest.channels.getMessages: %w", err)
	}
	return Flatten(result), nil
}

func detectSnowTransfer(handle any) bool {
	cp, ok := handle.(ClientProvider)
	if !ok {
		return false
	}
	chp, ok := cp.Client().(ChannelAPIProvider)
	if !ok {
		return false
	}
	_, ok = chp.Channel().(ChannelMessagesGetter)
	return ok
}

func fetchViaSnowTransfer(ctx context.Context, handle any, opts FetchOptions) ([]normalize.RawMessage, error) {
	cp, ok := handle.(ClientProvider)
	if !ok {
		return nil, ErrMethodMissing
	}
	chp, ok := cp.Client().(ChannelAPIProvider)
	if !ok {
		return nil, ErrMethodMissing
	}
	g, ok := chp.Channel().(ChannelMessagesGetter)
	if !ok {
		return nil, ErrMethodMissing
	}
	result, err := g.GetChannelMessages(ctx, buildRequest(opts))
	if err != nil {
		return nil, fmt.Errorf("channel.getChannelMessages: %w", err)
	}
	return Flatten(result), nil
}

func detectTiscord(handle any) bool {
	cp, ok := handle.(ClientProvider)
	if !ok {
		return false
	}
	rp, ok := cp.Client().(RestProvider)
	if !ok {
		return false
	}
	_, ok = rp.Rest().(MessageGetter)
	return ok
}

func fetchViaTiscord(ctx context.Context, handle any, opts FetchOptions) ([]normalize.RawMessage, error) {
	cp, ok := handle.(ClientProvider)
	if !ok {
		return nil, ErrMethodMissing
	}
	rp, ok := cp.Client().(RestProvider)
	if !ok {
		return nil, ErrMethodMissing
	}
	g, ok := rp.Rest().(MessageGetter)
	if !ok {
		return nil, ErrMethodMissing
	}
	result, err := g.GetMessages(ctx, buildRequest(opts))
	if err != nil {
		return nil, fmt.Errorf("client.rest.getMessages: %w", err)
	}
	return Flatten(result), nil
}

func detectDiscall(handle any) bool {
	cp, ok := handle.(ClientProvider)
	if !ok {
		return false
	}
	ap, ok := cp.Client().(APIProvider)
	if !ok {
		return false
	}
	_, ok = ap.API().(Getter)
	return ok
}

func fetchViaDiscall(ctx context.Context, handle any, opts FetchOptions) ([]normalize.RawMessage, error) {
	cp, ok := handle.(ClientProvider)
	if !ok {
		return nil, ErrMethodMissing
	}
	ap, ok := cp.Client().(APIProvider)
	if !ok {
		return nil, ErrMethodMissing
	}
	g, ok := ap.API().(Getter)
	if !ok {
		return nil, ErrMethodMissing
	}
	result, err := g.Get(ctx, buildRequest(opts))
	if err != nil {
		return nil, fmt.Errorf("client.api.get: %w", err)
	}
	return Flatten(result), nil
}

func detectRawRest(handle any) bool {
	if e, ok := handle.(Endpointer); ok && e.Endpoint() != "" {
		return true
	}
	if u, ok := handle.(URLer); ok && u.URL() != "" {
		return true
	}
	return false
}
