// Package anonymize replaces author identity with stable pseudonymous
// substitutes. The mapping lives for exactly one transcript generation:
// it is created here, returned to the caller, and never shared between
// runs.
package anonymize

import (
	"fmt"

	"github.com/JonaxDevelopment/discord-transcript-next/internal/normalize"
)

// Options selects which identity fields are substituted.
type Options struct {
	Usernames bool
	Avatars   bool
}

// Enabled reports whether any substitution is requested.
func (o Options) Enabled() bool { return o.Usernames || o.Avatars }

// Mapping is the run-scoped table from original author key to
// substitute identity, in first-seen order.
type Mapping map[string]*normalize.Author

// Placeholder avatars rotate through the platform's five default
// embed avatars.
const avatarRotation = 5

func placeholderUsername(index int) string {
	return fmt.Sprintf("User %d", index+1)
}

func placeholderAvatar(index int) string {
	return fmt.Sprintf("https://cdn.discordapp.com/embed/avatars/%d.png", index%avatarRotation)
}

// Apply substitutes author identity across the message sequence. The
// author key is the id, falling back to the username, falling back to a
// positional placeholder; the first distinct author seen becomes
// "User 1", the second "User 2", and so on. Messages without an author
// pass through unchanged. When no substitution is requested the input
// slice is returned as-is with an empty mapping.
func Apply(messages []normalize.Message, opts Options) ([]normalize.Message, Mapping) {
	mapping := Mapping{}
	if !opts.Enabled() {
		return messages, mapping
	}

	out := make([]normalize.Message, len(messages))
	for i, msg := range messages {
		out[i] = msg
		if msg.Author == nil {
			continue
		}

		key := msg.Author.ID
		if key == "" {
			key = msg.Author.Username
		}
		if key == "" {
			key = fmt.Sprintf("anonymous-%d", i)
		}

		substitute, seen := mapping[key]
		if !seen {
			replacement := *msg.Author
			if opts.Usernames {
				replacement.Username = placeholderUsername(len(mapping))
			}
			if opts.Avatars {
				replacement.Avatar = placeholderAvatar(len(mapping))
			}
			substitute = &replacement
			mapping[key] = substitute
		}

		author := *substitute
		out[i].Author = &author
	}
	return out, mapping
}
