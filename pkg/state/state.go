// Package state implements the shared interaction-state model behind
// unstyled UI primitives: a named set of flags (hovered, pressed,
// focused, ...) owned by a Controller that notifies listeners on
// change, and a Synchronizer that maps raw pointer/focus signals onto
// controller updates with per-flag delta callbacks.
package state

import (
	"sort"
	"strings"
)

// Interaction is one named interaction flag. The set of values is
// closed; callers never invent their own.
type Interaction string

const (
	Hovered       Interaction = "hovered"
	Focused       Interaction = "focused"
	Pressed       Interaction = "pressed"
	Disabled      Interaction = "disabled"
	Selected      Interaction = "selected"
	Dragged       Interaction = "dragged"
	Errored       Interaction = "error"
	ScrolledUnder Interaction = "scrolled_under"
)

// Set is an unordered set of interaction flags.
type Set map[Interaction]struct{}

// NewSet builds a set containing the given flags.
func NewSet(flags ...Interaction) Set {
	s := make(Set, len(flags))
	for _, f := range flags {
		s[f] = struct{}{}
	}
	return s
}

// Has reports whether the flag is a member.
func (s Set) Has(f Interaction) bool {
	_, ok := s[f]
	return ok
}

// Add inserts the flag.
func (s Set) Add(f Interaction) {
	s[f] = struct{}{}
}

// Remove deletes the flag. Removing an absent flag is a no-op.
func (s Set) Remove(f Interaction) {
	delete(s, f)
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for f := range s {
		c[f] = struct{}{}
	}
	return c
}

// Equal reports set equality.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for f := range s {
		if !o.Has(f) {
			return false
		}
	}
	return true
}

// String renders the members sorted, for logs and test failures.
func (s Set) String() string {
	names := make([]string, 0, len(s))
	for f := range s {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return "{" + strings.Join(names, " ") + "}"
}
