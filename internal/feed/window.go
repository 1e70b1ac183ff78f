package feed

// DefaultLimit is how many records a collapsed window shows.
const DefaultLimit = 3

// Window is a collapsed-or-expanded view over an ordered list. Collapsed it
// shows the first Limit records; expanded it shows all of them.
// The zero value is a collapsed window with DefaultLimit.
type Window struct {
	Limit    int
	expanded bool
}

// NewWindow returns a collapsed window showing limit records.
func NewWindow(limit int) Window {
	return Window{Limit: limit}
}

func (w Window) limit() int {
	if w.Limit <= 0 {
		return DefaultLimit
	}
	return w.Limit
}

// Expanded reports whether the whole list is shown.
func (w Window) Expanded() bool { return w.expanded }

// Expand shows every record.
func (w *Window) Expand() { w.expanded = true }

// Collapse reverts to the first Limit records.
func (w *Window) Collapse() { w.expanded = false }

// Reset is Collapse under the name used when the payload is replaced.
func (w *Window) Reset() { w.expanded = false }

// Toggle flips between expanded and collapsed when the list is long enough to
// need it. It returns the new expanded state.
func (w *Window) Toggle(n int) bool {
	if !w.Togglable(n) {
		return w.expanded
	}
	w.expanded = !w.expanded
	return w.expanded
}

// Togglable reports whether show more/less controls apply to a list of n.
func (w Window) Togglable(n int) bool {
	return n > w.limit()
}

// Count is the number of records visible out of n.
func (w Window) Count(n int) int {
	if n < 0 {
		return 0
	}
	if w.expanded || n <= w.limit() {
		return n
	}
	return w.limit()
}

// Hidden is the number of records out of n the window is not showing.
func (w Window) Hidden(n int) int {
	return max(n-w.Count(n), 0)
}

// Visible returns the prefix of items that w shows. The result aliases items.
func Visible[T any](items []T, w Window) []T {
	return items[:w.Count(len(items))]
}
