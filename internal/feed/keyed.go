package feed

// Keyed is a Controller whose endpoint is derived from an external key, such as
// the competition code in /standings/:code. It refetches whenever the observed
// key differs from the previous one and ignores repeats.
type Keyed[T any] struct {
	Controller[T]
	build    func(key string) string
	key      string
	observed bool
}

// NewKeyed returns a Keyed controller that builds endpoints with build.
func NewKeyed[T any](name string, build func(key string) string) Keyed[T] {
	return Keyed[T]{
		Controller: NewController[T](name),
		build:      build,
	}
}

// Key is the last observed key.
func (k *Keyed[T]) Key() string { return k.key }

// Observe records key. On the first observation, or when key differs from the
// previous one, it starts a fetch and returns its ticket.
func (k *Keyed[T]) Observe(key string) (Ticket, bool) {
	if k.Detached() {
		return Ticket{}, false
	}
	if k.observed && key == k.key {
		return Ticket{}, false
	}
	k.key = key
	k.observed = true
	return k.Start(k.build(key))
}

// Reload refetches the current key regardless of whether it changed.
func (k *Keyed[T]) Reload() (Ticket, bool) {
	if !k.observed {
		return Ticket{}, false
	}
	return k.Start(k.build(k.key))
}
