package drawing

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("drawing not found")

// Collection is the ordered set of committed drawings. Insertion order is
// the z-order: later drawings paint on top. Ids are allocated monotonically
// and never reused.
type Collection struct {
	order  []int64
	byID   map[int64]*Drawing
	lastID int64
}

func NewCollection() *Collection {
	return &Collection{byID: make(map[int64]*Drawing)}
}

func (c *Collection) Len() int {
	return len(c.order)
}

// Add validates the drawing and appends it on top. A zero id is replaced by
// the next free id.
func (c *Collection) Add(d Drawing) (Drawing, error) {
	if d.ID == 0 {
		d.ID = c.lastID + 1
	}

	if _, exists := c.byID[d.ID]; exists {
		return d, fmt.Errorf("drawing id %d is already taken", d.ID)
	}

	if err := d.Validate(); err != nil {
		return d, fmt.Errorf("invalid %s drawing: %w", d.Type, err)
	}

	if d.ID > c.lastID {
		c.lastID = d.ID
	}

	stored := d.Clone()
	c.byID[d.ID] = &stored
	c.order = append(c.order, d.ID)
	return stored.Clone(), nil
}

// Get returns a copy of the drawing.
func (c *Collection) Get(id int64) (Drawing, bool) {
	d, ok := c.byID[id]
	if !ok {
		return Drawing{}, false
	}
	return d.Clone(), true
}

// Replace swaps in a new version of an existing drawing. The replacement
// must keep the id and pass validation, otherwise the stored drawing is
// left untouched.
func (c *Collection) Replace(d Drawing) error {
	cur, ok := c.byID[d.ID]
	if !ok {
		return ErrNotFound
	}

	if d.Type != cur.Type {
		return fmt.Errorf("drawing %d: type can not change from %s to %s", d.ID, cur.Type, d.Type)
	}

	if err := d.Validate(); err != nil {
		return fmt.Errorf("invalid %s drawing: %w", d.Type, err)
	}

	*cur = d.Clone()
	return nil
}

// Update applies fn to a copy of the drawing and stores the result if it
// is still valid.
func (c *Collection) Update(id int64, fn func(d *Drawing)) error {
	d, ok := c.Get(id)
	if !ok {
		return ErrNotFound
	}

	fn(&d)
	d.ID = id
	return c.Replace(d)
}

// Remove deletes the drawing and reports whether it existed.
func (c *Collection) Remove(id int64) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}

	delete(c.byID, id)
	for i, o := range c.order {
		if o == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear removes every drawing. Ids keep counting from where they were.
func (c *Collection) Clear() {
	c.order = nil
	c.byID = make(map[int64]*Drawing)
}

// All returns copies of the drawings bottom to top.
func (c *Collection) All() []Drawing {
	out := make([]Drawing, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id].Clone())
	}
	return out
}
