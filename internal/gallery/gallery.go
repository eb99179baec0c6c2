package gallery

// Gallery is the live item collection shared by orbit placement, focus and reshuffle.
// Order is load order and carries no other meaning.
type Gallery struct {
	items []*Item
}

// New returns a gallery holding items.
func New(items ...*Item) *Gallery {
	return &Gallery{items: items}
}

// Add appends items to the collection.
func (g *Gallery) Add(items ...*Item) {
	g.items = append(g.items, items...)
}

// Items returns the backing slice. Callers may mutate items but not the slice.
func (g *Gallery) Items() []*Item {
	return g.items
}

// Len returns the number of items, hidden ones included.
func (g *Gallery) Len() int {
	return len(g.items)
}

// Visible returns the visible items in collection order.
func (g *Gallery) Visible() []*Item {
	out := make([]*Item, 0, len(g.items))
	for _, it := range g.items {
		if it.Visible {
			out = append(out, it)
		}
	}
	return out
}

// Find returns the item with the given record id.
func (g *Gallery) Find(id string) (*Item, bool) {
	for _, it := range g.items {
		if it.Record.ID == id {
			return it, true
		}
	}
	return nil, false
}
