// Package hitmap maps screen cells to interactive primitives. Hosts
// rebuild the map each render pass (render-then-measure) and use it to
// decide which primitive a pointer event belongs to. Regions added
// later win over earlier ones, matching paint order.
package hitmap

// Rect is a cell-grid rectangle. Left/top edges inclusive, right and
// bottom exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is one registered interactive area.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// Map holds the interactive regions for one rendered frame.
type Map struct {
	regions []Region
}

// New returns an empty map.
func New() *Map {
	return &Map{}
}

// Add registers a region. Later additions take priority over earlier
// ones when regions overlap.
func (m *Map) Add(id string, x, y, w, h int, data any) {
	m.regions = append(m.regions, Region{
		ID:   id,
		Rect: Rect{X: x, Y: y, W: w, H: h},
		Data: data,
	})
}

// Clear drops all regions, ready for the next render pass.
func (m *Map) Clear() {
	m.regions = m.regions[:0]
}

// Regions returns the registered regions in insertion order.
func (m *Map) Regions() []Region {
	return m.regions
}

// Test returns the topmost region containing the cell, or nil.
func (m *Map) Test(x, y int) *Region {
	for i := len(m.regions) - 1; i >= 0; i-- {
		if m.regions[i].Rect.Contains(x, y) {
			return &m.regions[i]
		}
	}
	return nil
}

// Drag tracks one in-flight drag gesture: where it started, which
// region it grabbed, and the value being adjusted.
type Drag struct {
	active     bool
	startX     int
	startY     int
	region     string
	startValue int
}

// Start begins a drag from the given cell on the given region.
// startValue is whatever the host is adjusting (a split position, a
// scroll offset) captured at grab time.
func (d *Drag) Start(x, y int, region string, startValue int) {
	d.active = true
	d.startX = x
	d.startY = y
	d.region = region
	d.startValue = startValue
}

// Active reports whether a drag is in flight.
func (d *Drag) Active() bool {
	return d.active
}

// Region returns the region the drag grabbed.
func (d *Drag) Region() string {
	return d.region
}

// StartValue returns the value captured at grab time.
func (d *Drag) StartValue() int {
	return d.startValue
}

// Delta returns the displacement from the grab cell to (x, y).
func (d *Drag) Delta(x, y int) (dx, dy int) {
	return x - d.startX, y - d.startY
}

// End finishes the drag.
func (d *Drag) End() {
	d.active = false
	d.region = ""
}
