package geom

// Quadtree indexes Bezier bounding boxes by integer index (typically the
// curve's position in a Shape's curve list) so pairwise-intersection tests
// during shape cleanup stay near-linear instead of quadratic (spec §4.B).
// A Quadtree is owned by a single Shape and is never shared (spec §5).
type Quadtree struct {
	bounds   Rect
	capacity int
	maxDepth int
	depth    int

	items    []qtItem
	divided  bool
	children [4]*Quadtree
}

type qtItem struct {
	bbox  Rect
	index int
}

// NewQuadtree builds an empty quadtree covering bounds. capacity is the
// number of items a node holds before it subdivides.
func NewQuadtree(bounds Rect, capacity int) *Quadtree {
	if capacity < 1 {
		capacity = 8
	}
	return &Quadtree{bounds: bounds, capacity: capacity, maxDepth: 12}
}

// Insert indexes a curve's bounding box under index.
func (q *Quadtree) Insert(bbox Rect, index int) {
	if !q.bounds.Intersects(bbox) {
		// Still accept it at the root: shapes mutate and grow past their
		// original bounds (e.g. after a translate); rather than drop the
		// curve, widen this node to cover it.
		GrowBoundingBox(&q.bounds, bbox)
	}

	if q.divided {
		placed := false
		for _, c := range q.children {
			if c.bounds.Intersects(bbox) {
				c.Insert(bbox, index)
				placed = true
			}
		}
		if placed {
			return
		}
	}

	q.items = append(q.items, qtItem{bbox: bbox, index: index})

	if !q.divided && len(q.items) > q.capacity && q.depth < q.maxDepth {
		q.subdivide()
	}
}

func (q *Quadtree) subdivide() {
	midX := (q.bounds.MinX + q.bounds.MaxX) / 2
	midY := (q.bounds.MinY + q.bounds.MaxY) / 2

	quadrants := [4]Rect{
		{q.bounds.MinX, q.bounds.MinY, midX, midY},
		{midX, q.bounds.MinY, q.bounds.MaxX, midY},
		{q.bounds.MinX, midY, midX, q.bounds.MaxY},
		{midX, midY, q.bounds.MaxX, q.bounds.MaxY},
	}
	for i, r := range quadrants {
		q.children[i] = &Quadtree{
			bounds: r, capacity: q.capacity, maxDepth: q.maxDepth, depth: q.depth + 1,
		}
	}
	q.divided = true

	remaining := q.items[:0]
	for _, it := range q.items {
		placed := false
		for _, c := range q.children {
			if c.bounds.Intersects(it.bbox) {
				c.Insert(it.bbox, it.index)
				placed = true
			}
		}
		if !placed {
			remaining = append(remaining, it)
		}
	}
	q.items = remaining
}

// Query returns every indexed index whose bounding box intersects bbox.
// Duplicate indices are removed (an item can live in more than one quadrant
// when it straddles a split).
func (q *Quadtree) Query(bbox Rect) []int {
	seen := make(map[int]bool)
	var out []int
	q.query(bbox, seen, &out)
	return out
}

func (q *Quadtree) query(bbox Rect, seen map[int]bool, out *[]int) {
	if !q.bounds.Intersects(bbox) {
		return
	}
	for _, it := range q.items {
		if it.bbox.Intersects(bbox) && !seen[it.index] {
			seen[it.index] = true
			*out = append(*out, it.index)
		}
	}
	if q.divided {
		for _, c := range q.children {
			c.query(bbox, seen, out)
		}
	}
}

// Clear empties the tree back to its initial, undivided state.
func (q *Quadtree) Clear() {
	q.items = nil
	q.divided = false
	for i := range q.children {
		q.children[i] = nil
	}
}
