// Package adapter maps channel-like handles to the client library that
// produced them and fetches raw messages through them. Detection is
// structural: each adapter probes the handle for the capability
// interfaces matching its library's method shape, not for a concrete
// type. The registry is an ordered list and iteration order is the
// documented tie-break when several adapters match the same handle.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sort"

	"github.com/JonaxDevelopment/discord-transcript-next/internal/normalize"
)

var (
	// ErrDetectionFailed means a handle matched no registered adapter
	// and none was forced.
	ErrDetectionFailed = errors.New("unable to detect adapter: specify one explicitly or provide messages directly")
	// ErrUnknownAdapter means a forced adapter name is not registered.
	ErrUnknownAdapter = errors.New("unknown adapter")
	// ErrFetchUnsupported means the matched adapter can detect but not
	// fetch (e.g. the raw-REST placeholder).
	ErrFetchUnsupported = errors.New("adapter does not support fetching: supply messages directly")
	// ErrMethodMissing means the expected method path was absent on the
	// handle at call time.
	ErrMethodMissing = errors.New("channel handle is missing the adapter's fetch method")
)

// FetchOptions carries the caller-supplied fetch parameters.
type FetchOptions struct {
	Adapter   string
	ChannelID string
	GuildID   string
	Token     string
	Limit     int
	Before    string
	After     string
	BatchSize int
}

// FetchRequest is the payload handed to a handle's fetch method. Cursor
// reports whether the structured form (limit plus before/after bounds)
// was requested; otherwise the call carries a bare limit.
type FetchRequest struct {
	Limit  int
	Before string
	After  string
	Cursor bool
}

const defaultFetchLimit = 100

func buildRequest(opts FetchOptions) FetchRequest {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultFetchLimit
	}
	if opts.Before != "" || opts.After != "" || opts.BatchSize > 0 {
		return FetchRequest{Limit: limit, Before: opts.Before, After: opts.After, Cursor: true}
	}
	return FetchRequest{Limit: limit}
}

// ChannelAdapter detects and fetches messages for one client-library
// shape of channel handle. A nil Fetch marks a detection-only adapter.
type ChannelAdapter struct {
	Name   string
	Detect func(handle any) bool
	Fetch  func(ctx context.Context, handle any, opts FetchOptions) ([]normalize.RawMessage, error)
}

// Registry is an ordered adapter list. Registration order is preserved
// exactly: it is the tie-break when multiple adapters structurally match
// the same handle, and external integrators append without disturbing
// the order of existing entries.
type Registry struct {
	adapters []ChannelAdapter
}

// NewRegistry returns a registry pre-populated with the built-in
// adapters in their fixed priority order.
func NewRegistry() *Registry {
	r := &Registry{}
	r.adapters = append(r.adapters, builtinAdapters()...)
	return r
}

// Register appends an adapter after all existing entries.
func (r *Registry) Register(a ChannelAdapter) {
	r.adapters = append(r.adapters, a)
}

// Names returns the registered adapter names in priority order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.adapters))
	for i, a := range r.adapters {
		names[i] = a.Name
	}
	return names
}

// Detect returns the name of the first registered adapter whose probe
// matches the handle. A probe that panics is a non-match, not an error:
// probing arbitrary handles is inherently speculative.
func (r *Registry) Detect(handle any) (string, bool) {
	for _, a := range r.adapters {
		if safeDetect(a.Detect, handle) {
			return a.Name, true
		}
	}
	return "", false
}

func safeDetect(detect func(any) bool, handle any) (matched bool) {
	defer func() {
		if recover() != nil {
			matched = false
		}
	}()
	return detect(handle)
}

// Fetch resolves an adapter for the handle and invokes its fetch
// strategy. An explicit opts.Adapter bypasses detection entirely.
func (r *Registry) Fetch(ctx context.Context, handle any, opts FetchOptions) ([]normalize.RawMessage, string, error) {
	name := opts.Adapter
	if name == "" {
		detected, ok := r.Detect(handle)
		if !ok {
			return nil, "", ErrDetectionFailed
		}
		name = detected
	}

	var adapter *ChannelAdapter
	for i := range r.adapters {
		if r.adapters[i].Name == name {
			adapter = &r.adapters[i]
			break
		}
	}
	if adapter == nil {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownAdapter, name)
	}
	if adapter.Fetch == nil {
		return nil, "", fmt.Errorf("adapter %q: %w", adapter.Name, ErrFetchUnsupported)
	}

	messages, err := adapter.Fetch(ctx, handle, opts)
	if err != nil {
		return nil, "", fmt.Errorf("adapter %q: %w", adapter.Name, err)
	}
	return messages, adapter.Name, nil
}

// Flatten normalizes the closed set of result shapes a handle's fetch
// call may produce: a message slice passes through, a keyed collection
// contributes its values in ascending key order (Go maps carry no
// insertion order, so a fixed order keeps flattening deterministic), an
// iterator or channel is drained, anything else is empty.
func Flatten(result any) []normalize.RawMessage {
	switch v := result.(type) {
	case nil:
		return []normalize.RawMessage{}
	case []normalize.RawMessage:
		out := make([]normalize.RawMessage, len(v))
		copy(out, v)
		return out
	case map[string]normalize.RawMessage:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]normalize.RawMessage, 0, len(v))
		for _, k := range keys {
			out = append(out, v[k])
		}
		return out
	case iter.Seq[normalize.RawMessage]:
		out := []normalize.RawMessage{}
		for m := range v {
			out = append(out, m)
		}
		return out
	case <-chan normalize.RawMessage:
		out := []normalize.RawMessage{}
		for m := range v {
			out = append(out, m)
		}
		return out
	default:
		return []normalize.RawMessage{}
	}
}
