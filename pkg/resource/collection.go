package resource

// Collection is an id keyed set of entities that remembers arrival order.
// Replacing an existing id keeps its position. It is not safe for
// concurrent use; the owning controller serializes access.
type Collection[E any] struct {
	ids   []string
	items map[string]E
}

func NewCollection[E any]() *Collection[E] {
	return &Collection[E]{items: make(map[string]E)}
}

func (c *Collection[E]) Put(id string, e E) {
	if _, ok := c.items[id]; !ok {
		c.ids = append(c.ids, id)
	}
	c.items[id] = e
}

func (c *Collection[E]) Get(id string) (E, bool) {
	e, ok := c.items[id]
	return e, ok
}

func (c *Collection[E]) Has(id string) bool {
	_, ok := c.items[id]
	return ok
}

func (c *Collection[E]) Remove(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, v := range c.ids {
		if v == id {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			break
		}
	}
	return true
}

func (c *Collection[E]) Len() int {
	return len(c.ids)
}

// IDs returns the ids in arrival order.
func (c *Collection[E]) IDs() []string {
	return append([]string(nil), c.ids...)
}

// Items returns a copy of the entities in arrival order.
func (c *Collection[E]) Items() []E {
	out := make([]E, len(c.ids))
	for i, id := range c.ids {
		out[i] = c.items[id]
	}
	return out
}

func (c *Collection[E]) Reset() {
	c.ids = nil
	c.items = make(map[string]E)
}
