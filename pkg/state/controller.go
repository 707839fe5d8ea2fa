package state

// Listener observes committed state changes. It receives the set as it
// was before the change and as it is after; both are snapshots the
// listener may keep but must not rely on staying current.
type Listener func(previous, current Set)

type listenerEntry struct {
	id int
	fn Listener
}

// Controller owns the authoritative interaction set for one primitive
// (or for several primitives when explicitly shared). All methods must
// be called from the UI event-dispatch goroutine; the controller does
// no locking.
//
// Listeners are notified synchronously, exactly once per committed
// change, in registration order. The listener list is snapshotted
// before iteration, so a listener may add or remove listeners (or
// trigger further updates) without corrupting the dispatch in flight.
type Controller struct {
	current  Set
	previous Set
	entries  []listenerEntry
	nextID   int
	disposed bool
}

// NewController returns a controller holding the given initial flags.
func NewController(initial ...Interaction) *Controller {
	return &Controller{
		current:  NewSet(initial...),
		previous: NewSet(),
	}
}

// NewControllerFrom returns a controller seeded with a copy of the
// given snapshot. Used when swapping ownership so the replacement
// starts from the old controller's value.
func NewControllerFrom(snapshot Set) *Controller {
	return &Controller{
		current:  snapshot.Clone(),
		previous: NewSet(),
	}
}

// Value returns a snapshot of the current set.
func (c *Controller) Value() Set {
	return c.current.Clone()
}

// Previous returns a snapshot of the set as it was before the last
// committed change.
func (c *Controller) Previous() Set {
	return c.previous.Clone()
}

// Has reports whether the flag is currently set.
func (c *Controller) Has(f Interaction) bool {
	return c.current.Has(f)
}

// Update sets or clears membership of a single flag and reports
// whether anything changed. A call that changes nothing notifies no
// one; repeated identical calls are idempotent.
func (c *Controller) Update(f Interaction, present bool) bool {
	c.mustBeLive()
	if c.current.Has(f) == present {
		return false
	}
	before := c.current.Clone()
	if present {
		c.current.Add(f)
	} else {
		c.current.Remove(f)
	}
	c.commit(before)
	return true
}

// Mutate applies an arbitrary batch edit to a working copy of the set
// and commits it if the result differs, notifying listeners at most
// once.
func (c *Controller) Mutate(edit func(Set)) bool {
	c.mustBeLive()
	next := c.current.Clone()
	edit(next)
	if next.Equal(c.current) {
		return false
	}
	before := c.current
	c.current = next
	c.commit(before)
	return true
}

// Merge adds every flag in the given set, notifying listeners at most
// once.
func (c *Controller) Merge(flags Set) bool {
	return c.Mutate(func(s Set) {
		for f := range flags {
			s.Add(f)
		}
	})
}

// Replace swaps the whole set for a copy of the given one, notifying
// listeners at most once.
func (c *Controller) Replace(flags Set) bool {
	return c.Mutate(func(s Set) {
		for f := range s {
			s.Remove(f)
		}
		for f := range flags {
			s.Add(f)
		}
	})
}

// AddListener registers a listener and returns a removal function.
// Removal is idempotent and safe after Dispose.
func (c *Controller) AddListener(fn Listener) (remove func()) {
	c.mustBeLive()
	id := c.nextID
	c.nextID++
	c.entries = append(c.entries, listenerEntry{id: id, fn: fn})
	return func() { c.removeListener(id) }
}

func (c *Controller) removeListener(id int) {
	for i, e := range c.entries {
		if e.id == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// Dispose detaches all listeners and marks the controller dead. Any
// later mutation panics. Reads keep working so teardown code can still
// inspect the last value. Dispose is idempotent.
func (c *Controller) Dispose() {
	c.disposed = true
	c.entries = nil
}

// Disposed reports whether Dispose has been called.
func (c *Controller) Disposed() bool {
	return c.disposed
}

func (c *Controller) commit(before Set) {
	c.previous = before
	snapshot := make([]listenerEntry, len(c.entries))
	copy(snapshot, c.entries)
	current := c.current.Clone()
	for _, e := range snapshot {
		e.fn(before, current)
	}
}

func (c *Controller) mustBeLive() {
	if c.disposed {
		panic("chassis: state.Controller used after Dispose")
	}
}
