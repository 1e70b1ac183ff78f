package feed

import (
	"context"
	"encoding/json"

	tea "github.com/charmbracelet/bubbletea"
)

// Getter is the part of fetch.Client a feed needs.
type Getter interface {
	Get(ctx context.Context, endpoint string) (json.RawMessage, error)
}

// Decoder extracts records from a raw response body. Decoders default rather
// than fail; see package football.
type Decoder[T any] func(raw json.RawMessage) []T

// Fetch returns a command that performs t and reports a Resolved[T].
// Bubble Tea runs it off the UI loop and delivers the message when the request
// completes, so results from concurrent tickets arrive in completion order.
func Fetch[T any](ctx context.Context, g Getter, t Ticket, decode Decoder[T]) tea.Cmd {
	return func() tea.Msg {
		raw, err := g.Get(ctx, t.Endpoint)
		if err != nil {
			return Resolved[T]{Ticket: t, Err: err}
		}
		return Resolved[T]{Ticket: t, Items: decode(raw)}
	}
}
