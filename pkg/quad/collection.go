package quad

// Collection is an in-memory quadruple set. Membership is keyed by
// content id, so adding an equal quadruple twice is a no-op; iteration
// order is insertion order.
type Collection struct {
	ids   map[ID]struct{}
	items []*Quadruple
}

func NewCollection() *Collection {
	return &Collection{ids: make(map[ID]struct{})}
}

// Add inserts q, reporting whether it was newly added. Nil input is
// ignored.
func (c *Collection) Add(q *Quadruple) bool {
	if q == nil {
		return false
	}
	if _, ok := c.ids[q.ID()]; ok {
		return false
	}
	c.ids[q.ID()] = struct{}{}
	c.items = append(c.items, q)
	return true
}

// Contains reports membership by content id. Nil input returns false.
func (c *Collection) Contains(q *Quadruple) bool {
	if q == nil {
		return false
	}
	_, ok := c.ids[q.ID()]
	return ok
}

func (c *Collection) Len() int {
	return len(c.items)
}

// Slice returns the quadruples in insertion order. The returned slice
// is shared; callers must not mutate it.
func (c *Collection) Slice() []*Quadruple {
	return c.items
}
