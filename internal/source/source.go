// Package source turns any supported transcript source into a flat
// ordered raw-message sequence.
package source

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/JonaxDevelopment/discord-transcript-next/internal/adapter"
	"github.com/JonaxDevelopment/discord-transcript-next/internal/normalize"
)

// ErrUnsupportedSource means the source is none of the recognized
// shapes: a message slice, a producer function, a message stream, or a
// channel-like handle.
var ErrUnsupportedSource = errors.New("unsupported transcript source")

// Producer is a zero-argument asynchronous message producer.
type Producer func(ctx context.Context) ([]normalize.RawMessage, error)

// StreamProducer is a producer yielding a lazy message sequence instead
// of a materialized slice.
type StreamProducer func(ctx context.Context) (iter.Seq[normalize.RawMessage], error)

// Resolve produces the flat message sequence for a source, plus the name
// of whichever adapter served it (empty when none was involved).
//
// Sources are recognized in priority order: a literal slice is copied; a
// producer is invoked once and a lazy sequence it yields is drained fully
// into memory (there is no streaming or backpressure path, so an unbounded
// source can exhaust memory); anything else is
// treated as a channel-like handle and delegated to the adapter registry.
func Resolve(ctx context.Context, src any, reg *adapter.Registry, opts adapter.FetchOptions) ([]normalize.RawMessage, string, error) {
	switch s := src.(type) {
	case []normalize.RawMessage:
		out := make([]normalize.RawMessage, len(s))
		copy(out, s)
		return out, opts.Adapter, nil
	case Producer:
		return invokeProducer(ctx, s, opts)
	case func(ctx context.Context) ([]normalize.RawMessage, error):
		return invokeProducer(ctx, s, opts)
	case StreamProducer:
		return invokeStream(ctx, s, opts)
	case func(ctx context.Context) (iter.Seq[normalize.RawMessage], error):
		return invokeStream(ctx, s, opts)
	case iter.Seq[normalize.RawMessage]:
		return drain(s), opts.Adapter, nil
	case nil:
		return nil, "", ErrUnsupportedSource
	default:
		messages, name, err := reg.Fetch(ctx, src, opts)
		if err != nil {
			return nil, "", err
		}
		return messages, name, nil
	}
}

func invokeProducer(ctx context.Context, produce Producer, opts adapter.FetchOptions) ([]normalize.RawMessage, string, error) {
	messages, err := produce(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("message producer: %w", err)
	}
	if messages == nil {
		messages = []normalize.RawMessage{}
	}
	return messages, opts.Adapter, nil
}

func invokeStream(ctx context.Context, produce StreamProducer, opts adapter.FetchOptions) ([]normalize.RawMessage, string, error) {
	seq, err := produce(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("message stream: %w", err)
	}
	if seq == nil {
		return []normalize.RawMessage{}, opts.Adapter, nil
	}
	return drain(seq), opts.Adapter, nil
}

func drain(seq iter.Seq[normalize.RawMessage]) []normalize.RawMessage {
	out := []normalize.RawMessage{}
	for m := range seq {
		out = append(out, m)
	}
	return out
}
