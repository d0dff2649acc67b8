package flipbook

// Vector object mode: an alternative representation where strokes stay
// selectable objects instead of burning into raster layers. It reuses the
// stroke segment math of the raster pipeline minus texture stamping, and
// is deliberately a simple CRUD interaction layer.

// ObjectID identifies a stroke object within one canvas.
type ObjectID uint64

// ObjectStyle is the visual style of a stroke object.
type ObjectStyle struct {
	Color RGBA
	Width float64
}

// StrokeObject is one selectable stroke: an ordered point path, a style,
// and a rotation about the path's bounds center. Path points are live
// geometry — move and resize mutate them directly; rotation stays separate
// so the resize handles remain axis-aligned.
type StrokeObject struct {
	ID       ObjectID
	Path     []Point
	Style    ObjectStyle
	Rotation float64 // radians
}

// bounds returns the axis-aligned box of the unrotated path, expanded by
// half the stroke width.
func (o *StrokeObject) bounds() Rect {
	if len(o.Path) == 0 {
		return Rect{}
	}
	r := RectFrom(o.Path[0], o.Path[0])
	for _, p := range o.Path[1:] {
		r = r.Union(RectFrom(p, p))
	}
	return r.Expand(o.Style.Width / 2)
}

// Bounds returns the axis-aligned box containing the object after
// rotation; this is the hit-test region.
func (o *StrokeObject) Bounds() Rect {
	if o.Rotation == 0 {
		return o.bounds()
	}
	pts := o.transformedPath()
	r := RectFrom(pts[0], pts[0])
	for _, p := range pts[1:] {
		r = r.Union(RectFrom(p, p))
	}
	return r.Expand(o.Style.Width / 2)
}

// transformedPath returns the path rotated about the bounds center.
func (o *StrokeObject) transformedPath() []Point {
	if o.Rotation == 0 {
		return o.Path
	}
	center := o.bounds().Center()
	out := make([]Point, len(o.Path))
	for i, p := range o.Path {
		out[i] = p.Sub(center).Rotate(o.Rotation).Add(center)
	}
	return out
}

// HandleCount is the number of resize handles per object: four corners
// and four edge midpoints.
const HandleCount = 8

// Handle positions, clockwise from the top-left corner.
const (
	HandleNW = iota
	HandleN
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
)

// Handles returns the object's 8 resize-handle positions on its
// unrotated bounds.
func (o *StrokeObject) Handles() [HandleCount]Point {
	b := o.bounds()
	cx, cy := b.Center().X, b.Center().Y
	return [HandleCount]Point{
		{b.Min.X, b.Min.Y}, {cx, b.Min.Y}, {b.Max.X, b.Min.Y}, {b.Max.X, cy},
		{b.Max.X, b.Max.Y}, {cx, b.Max.Y}, {b.Min.X, b.Max.Y}, {b.Min.X, cy},
	}
}

// ObjectCanvas holds stroke objects in paint order (index 0 is
// bottom-most) and provides the selection operations.
type ObjectCanvas struct {
	nextID  ObjectID
	objects map[ObjectID]*StrokeObject
	order   []ObjectID
}

// NewObjectCanvas creates an empty canvas.
func NewObjectCanvas() *ObjectCanvas {
	return &ObjectCanvas{objects: make(map[ObjectID]*StrokeObject)}
}

// Add creates a stroke object on top of the stack and returns it.
func (c *ObjectCanvas) Add(path []Point, style ObjectStyle) *StrokeObject {
	c.nextID++
	o := &StrokeObject{ID: c.nextID, Path: append([]Point(nil), path...), Style: style}
	c.objects[o.ID] = o
	c.order = append(c.order, o.ID)
	return o
}

// Get returns the object with the given id.
func (c *ObjectCanvas) Get(id ObjectID) (*StrokeObject, bool) {
	o, ok := c.objects[id]
	return o, ok
}

// Remove deletes an object. Reports whether it existed.
func (c *ObjectCanvas) Remove(id ObjectID) bool {
	if _, ok := c.objects[id]; !ok {
		return false
	}
	delete(c.objects, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of objects.
func (c *ObjectCanvas) Len() int { return len(c.objects) }

// HitTest returns the topmost object whose bounds contain p.
func (c *ObjectCanvas) HitTest(p Point) (*StrokeObject, bool) {
	for i := len(c.order) - 1; i >= 0; i-- {
		o := c.objects[c.order[i]]
		if o.Bounds().Contains(p) {
			return o, true
		}
	}
	return nil, false
}

// MoveBy translates an object by delta.
func (c *ObjectCanvas) MoveBy(id ObjectID, delta Point) {
	o, ok := c.objects[id]
	if !ok {
		return
	}
	for i := range o.Path {
		o.Path[i] = o.Path[i].Add(delta)
	}
}

// Resize drags one of the 8 handles to a new position, scaling the path
// about the opposite edge or corner. Corner handles scale both axes; edge
// handles scale one. Degenerate extents (zero-size axis) leave that axis
// unchanged.
func (c *ObjectCanvas) Resize(id ObjectID, handle int, to Point) {
	o, ok := c.objects[id]
	if !ok || handle < 0 || handle >= HandleCount {
		return
	}
	handles := o.Handles()
	anchor := handles[(handle+4)%HandleCount]
	from := handles[handle]

	sx, sy := 1.0, 1.0
	scalesX := handle != HandleN && handle != HandleS
	scalesY := handle != HandleE && handle != HandleW
	if scalesX && from.X != anchor.X {
		sx = (to.X - anchor.X) / (from.X - anchor.X)
	}
	if scalesY && from.Y != anchor.Y {
		sy = (to.Y - anchor.Y) / (from.Y - anchor.Y)
	}
	for i := range o.Path {
		o.Path[i] = Point{
			X: anchor.X + (o.Path[i].X-anchor.X)*sx,
			Y: anchor.Y + (o.Path[i].Y-anchor.Y)*sy,
		}
	}
}

// Rotate adds angle (radians) to the object's rotation.
func (c *ObjectCanvas) Rotate(id ObjectID, angle float64) {
	if o, ok := c.objects[id]; ok {
		o.Rotation += angle
	}
}

// Render rasterizes all objects bottom-to-top onto dst using the stroke
// segment pipeline: round-capped segments with a circle at each point.
func (c *ObjectCanvas) Render(dst *Pixmap) {
	for _, id := range c.order {
		o := c.objects[id]
		pts := o.transformedPath()
		if len(pts) == 0 {
			continue
		}
		fillCircle(dst, pts[0], o.Style.Width/2, o.Style.Color, 1)
		for i := 1; i < len(pts); i++ {
			strokeSegment(dst, pts[i-1], pts[i], o.Style.Width, o.Style.Color, 1)
			fillCircle(dst, pts[i], o.Style.Width/2, o.Style.Color, 1)
		}
	}
}
