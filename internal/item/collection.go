package item

import "gonum.org/v1/gonum/spatial/r2"

// Collection holds the board's items in z-order (last drawn on top).
// All mutation happens on the UI event goroutine.
type Collection struct {
	items []*Item
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add appends an item to the top of the z-order.
func (c *Collection) Add(it *Item) {
	c.items = append(c.items, it)
}

// Items returns the backing slice in z-order. Callers must not modify it.
func (c *Collection) Items() []*Item {
	return c.items
}

// Len returns the number of items.
func (c *Collection) Len() int {
	return len(c.items)
}

// ByID returns the item with the given ID, or nil.
func (c *Collection) ByID(id string) *Item {
	for _, it := range c.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// At returns the topmost item containing the world point, or nil. Items
// later in the slice are drawn on top, so the search walks back to front.
func (c *Collection) At(wx, wy float64) *Item {
	for i := len(c.items) - 1; i >= 0; i-- {
		if c.items[i].Contains(wx, wy) {
			return c.items[i]
		}
	}
	return nil
}

// MoveTo commits a new center position for the identified item. Returns
// false if the item does not exist.
func (c *Collection) MoveTo(id string, x, y float64) bool {
	it := c.ByID(id)
	if it == nil {
		return false
	}
	it.X = x
	it.Y = y
	return true
}

// Bounds returns the axis-aligned bounding box of all items in world
// coordinates, built from each item's center plus and minus its half
// extents. ok is false when the collection is empty.
func (c *Collection) Bounds() (min, max r2.Vec, ok bool) {
	if len(c.items) == 0 {
		return r2.Vec{}, r2.Vec{}, false
	}
	min = c.items[0].Min()
	max = c.items[0].Max()
	for _, it := range c.items[1:] {
		lo, hi := it.Min(), it.Max()
		if lo.X < min.X {
			min.X = lo.X
		}
		if lo.Y < min.Y {
			min.Y = lo.Y
		}
		if hi.X > max.X {
			max.X = hi.X
		}
		if hi.Y > max.Y {
			max.Y = hi.Y
		}
	}
	return min, max, true
}
