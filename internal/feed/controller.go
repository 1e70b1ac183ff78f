// Package feed is the fetch/lifecycle engine shared by every view.
//
// A Controller owns one feed: the endpoint it last asked for, the lifecycle
// state, the decoded records and the show-more window over them. Controllers
// are driven from a Bubble Tea Update loop and are not safe for concurrent use;
// the network work itself happens in the tea.Cmd returned by Fetch.
package feed

import (
	"sync/atomic"
)

// Lifecycle is the state of a feed.
type Lifecycle int

const (
	Idle Lifecycle = iota
	Loading
	Success
	Error
)

func (l Lifecycle) String() string {
	switch l {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// nextOwner hands every controller a distinct identity so that a resolution
// meant for a controller that has since been replaced is never applied to its
// successor, even when both use the same feed name.
var nextOwner atomic.Uint64

// Ticket identifies one issued fetch.
type Ticket struct {
	Feed       string
	Endpoint   string
	Owner      uint64
	Generation uint64
}

// Resolved carries the outcome of a ticket back to the controller.
type Resolved[T any] struct {
	Ticket Ticket
	Items  []T
	Err    error
}

// Controller is the lifecycle state machine for one feed of T records.
//
// Every Start bumps the generation; Resolve only accepts the newest generation.
// A request that resolves after a newer one was issued is discarded, so the
// displayed state always belongs to the most recently requested endpoint.
type Controller[T any] struct {
	name     string
	owner    uint64
	gen      uint64
	endpoint string
	state    Lifecycle
	items    []T
	errMsg   string
	window   Window
	detached bool
}

// NewController returns an idle controller. name labels its tickets.
func NewController[T any](name string) Controller[T] {
	return Controller[T]{
		name:  name,
		owner: nextOwner.Add(1),
	}
}

// Name is the feed label given to NewController.
func (c *Controller[T]) Name() string { return c.name }

// Lifecycle returns the current state.
func (c *Controller[T]) Lifecycle() Lifecycle { return c.state }

// Endpoint is the endpoint of the latest Start.
func (c *Controller[T]) Endpoint() string { return c.endpoint }

// Generation is the number of fetches started so far.
func (c *Controller[T]) Generation() uint64 { return c.gen }

// Items returns the records of a successful load, nil otherwise.
func (c *Controller[T]) Items() []T {
	if c.state != Success {
		return nil
	}
	return c.items
}

// Err returns the failure reason while in Error, "" otherwise.
func (c *Controller[T]) Err() string {
	if c.state != Error {
		return ""
	}
	return c.errMsg
}

// Empty reports a successful load with no records.
func (c *Controller[T]) Empty() bool {
	return c.state == Success && len(c.items) == 0
}

// Start moves the controller to Loading for endpoint and returns the ticket
// the caller must fetch. It returns false once the controller is detached.
func (c *Controller[T]) Start(endpoint string) (Ticket, bool) {
	if c.detached {
		return Ticket{}, false
	}
	c.gen++
	c.endpoint = endpoint
	c.state = Loading
	c.items = nil
	c.errMsg = ""
	return c.ticket(), true
}

func (c *Controller[T]) ticket() Ticket {
	return Ticket{
		Feed:       c.name,
		Endpoint:   c.endpoint,
		Owner:      c.owner,
		Generation: c.gen,
	}
}

// Owns reports whether t was issued by this controller, stale or not.
func (c *Controller[T]) Owns(t Ticket) bool {
	return t.Owner == c.owner
}

// Current reports whether t is the latest ticket this controller issued.
func (c *Controller[T]) Current(t Ticket) bool {
	return !c.detached && c.Owns(t) && t.Generation == c.gen && c.state == Loading
}

// Resolve applies r if its ticket is current and reports whether it did.
// A successful result with nil items is stored as an empty list; a failure
// stores the error text verbatim and clears the records. Either way the
// window starts collapsed again.
func (c *Controller[T]) Resolve(r Resolved[T]) bool {
	if !c.Current(r.Ticket) {
		return false
	}
	c.window.Reset()
	if r.Err != nil {
		c.state = Error
		c.items = nil
		c.errMsg = r.Err.Error()
		return true
	}
	c.state = Success
	c.items = r.Items
	if c.items == nil {
		c.items = []T{}
	}
	c.errMsg = ""
	return true
}

// Detach marks the owning view as gone. Later Start calls issue nothing and
// late resolutions are dropped.
func (c *Controller[T]) Detach() { c.detached = true }

// Detached reports whether Detach was called.
func (c *Controller[T]) Detached() bool { return c.detached }

// Window returns the show-more window over the records.
func (c *Controller[T]) Window() Window { return c.window }

// SetWindowLimit changes how many records a collapsed window shows.
func (c *Controller[T]) SetWindowLimit(n int) { c.window.Limit = n }

// Visible returns the records the window currently shows.
func (c *Controller[T]) Visible() []T {
	return Visible(c.Items(), c.window)
}

// Hidden is the number of records the collapsed window is hiding.
func (c *Controller[T]) Hidden() int {
	return c.window.Hidden(len(c.Items()))
}

// Togglable reports whether show more/less applies to the current records.
func (c *Controller[T]) Togglable() bool {
	return c.window.Togglable(len(c.Items()))
}

// Expand shows every record.
func (c *Controller[T]) Expand() { c.window.Expand() }

// Collapse goes back to the first window.Limit records.
func (c *Controller[T]) Collapse() { c.window.Collapse() }

// ToggleWindow flips show more/less when it applies.
func (c *Controller[T]) ToggleWindow() bool {
	return c.window.Toggle(len(c.Items()))
}
