// Package anchor computes where floating content (menus, select lists,
// popovers) goes relative to an anchor element: ordered fallback
// placements, pointer-anchored placement, and viewport clamping.
package anchor

import "github.com/marcus/chassis/pkg/geom"

// Pair names one candidate placement: the point on the anchor the
// follower attaches to, and the point on the follower that attaches
// there. Both are normalized alignment points within their own box.
type Pair struct {
	Target   geom.Align
	Follower geom.Align
}

// Common placements, named from the follower's perspective.
var (
	// Below hangs the follower under the anchor, left edges flush.
	Below = Pair{Target: geom.AlignBottomLeft, Follower: geom.AlignTopLeft}
	// Above sits the follower on top of the anchor, left edges flush.
	Above = Pair{Target: geom.AlignTopLeft, Follower: geom.AlignBottomLeft}
	// RightOf puts the follower beside the anchor's right edge, tops flush.
	RightOf = Pair{Target: geom.AlignTopRight, Follower: geom.AlignTopLeft}
	// LeftOf puts the follower beside the anchor's left edge, tops flush.
	LeftOf = Pair{Target: geom.AlignTopLeft, Follower: geom.AlignTopRight}
	// Centered overlays the follower centered on the anchor.
	Centered = Pair{Target: geom.AlignCenter, Follower: geom.AlignCenter}
)

// Request carries every input placement depends on. Resolve is a pure
// function of this value.
type Request struct {
	// Anchor is the reference element's rect in viewport coordinates.
	Anchor geom.Rect
	// Overlay is the follower's measured size.
	Overlay geom.Size
	// Preferred is tried first; in pointer mode its follower point is
	// the one aligned to the pointer.
	Preferred Pair
	// Fallbacks are tried in order after Preferred. May be empty, which
	// degrades to clamp-only placement.
	Fallbacks []Pair
	// Pointer, when non-nil, switches to pointer-anchored placement
	// (context-menu-at-click) and overrides alignment placement.
	Pointer *geom.Point
	// Viewport is the size of the area the follower must stay inside.
	Viewport geom.Size
}

// Resolve returns the follower's top-left offset for the request.
//
// Pointer mode aligns the preferred pair's follower point to the
// pointer and clamps componentwise. Alignment mode returns the offset
// of the first candidate whose rect lies fully inside the viewport
// (all edges inclusive); when none fits, the preferred candidate's
// offset is clamped componentwise so the result is never off-screen.
//
// A zero-size viewport is a programming error and panics.
func Resolve(req Request) geom.Point {
	if req.Viewport.IsEmpty() {
		panic("chassis: anchor.Resolve called with zero-size viewport")
	}

	if req.Pointer != nil {
		at := req.Preferred.Follower.Within(req.Overlay)
		return clampToViewport(req.Pointer.Sub(at), req.Overlay, req.Viewport)
	}

	preferred := offsetFor(req.Preferred, req.Anchor, req.Overlay)
	if fits(preferred, req.Overlay, req.Viewport) {
		return preferred
	}
	for _, candidate := range req.Fallbacks {
		offset := offsetFor(candidate, req.Anchor, req.Overlay)
		if fits(offset, req.Overlay, req.Viewport) {
			return offset
		}
	}
	return clampToViewport(preferred, req.Overlay, req.Viewport)
}

func offsetFor(p Pair, anchor geom.Rect, overlay geom.Size) geom.Point {
	return anchor.TopLeft().
		Add(p.Target.Within(anchor.Dim())).
		Sub(p.Follower.Within(overlay))
}

func fits(offset geom.Point, overlay geom.Size, viewport geom.Size) bool {
	return offset.X >= 0 && offset.Y >= 0 &&
		offset.X+overlay.Width <= viewport.Width &&
		offset.Y+overlay.Height <= viewport.Height
}

// clampToViewport limits the offset to [0, viewport-overlay] per axis.
// When the overlay is larger than the viewport on an axis the range
// collapses to [0, 0].
func clampToViewport(offset geom.Point, overlay geom.Size, viewport geom.Size) geom.Point {
	return geom.Point{
		X: geom.Clamp(offset.X, 0, max(0, viewport.Width-overlay.Width)),
		Y: geom.Clamp(offset.Y, 0, max(0, viewport.Height-overlay.Height)),
	}
}

// Resolver memoizes Resolve on the last-seen request so unrelated
// re-renders do not recompute placement. Not safe for concurrent use;
// it belongs to the UI goroutine like everything else here.
type Resolver struct {
	last   Request
	offset geom.Point
	cached bool

	// resolves counts cache misses, for tests.
	resolves int
}

// Offset returns the placement for the request, reusing the cached
// result when anchor rect, overlay size, candidates, pointer and
// viewport are all unchanged.
func (r *Resolver) Offset(req Request) geom.Point {
	if r.cached && sameRequest(r.last, req) {
		return r.offset
	}
	r.offset = Resolve(req)
	r.last = cloneRequest(req)
	r.cached = true
	r.resolves++
	return r.offset
}

// Invalidate drops the cached result.
func (r *Resolver) Invalidate() {
	r.cached = false
}

func sameRequest(a, b Request) bool {
	if a.Anchor != b.Anchor || a.Overlay != b.Overlay ||
		a.Preferred != b.Preferred || a.Viewport != b.Viewport {
		return false
	}
	if (a.Pointer == nil) != (b.Pointer == nil) {
		return false
	}
	if a.Pointer != nil && *a.Pointer != *b.Pointer {
		return false
	}
	if len(a.Fallbacks) != len(b.Fallbacks) {
		return false
	}
	for i := range a.Fallbacks {
		if a.Fallbacks[i] != b.Fallbacks[i] {
			return false
		}
	}
	return true
}

// cloneRequest copies the request deeply enough that later caller-side
// mutation of the fallback slice or pointer cannot corrupt the cache key.
func cloneRequest(req Request) Request {
	c := req
	if req.Pointer != nil {
		p := *req.Pointer
		c.Pointer = &p
	}
	if len(req.Fallbacks) > 0 {
		c.Fallbacks = append([]Pair(nil), req.Fallbacks...)
	}
	return c
}
