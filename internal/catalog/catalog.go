package catalog

// Catalog is the immutable, read-only view of everything a session needs
// besides learner progress. Build one per process and inject it.
type Catalog struct {
	items      []Item
	itemByID   map[string]*Item
	phrases    []Phrase
	phraseByID map[string]*Phrase

	Index      *Index
	Priorities *PriorityTable
	Variants   *VariantIndex
}

// New builds a catalog with precomputed lookups. The bipartite index is
// derived from each phrase's word list. Priorities and variants may be nil.
func New(items []Item, phrases []Phrase, priorities *PriorityTable, variants *VariantIndex) (*Catalog, error) {
	if err := validate(items, phrases); err != nil {
		return nil, err
	}

	c := &Catalog{
		items:      items,
		itemByID:   make(map[string]*Item, len(items)),
		phrases:    phrases,
		phraseByID: make(map[string]*Phrase, len(phrases)),
		Priorities: priorities,
		Variants:   variants,
	}
	for i := range c.items {
		c.itemByID[c.items[i].ID] = &c.items[i]
	}

	if len(phrases) > 0 {
		p2w := make(map[string][]string, len(phrases))
		for i := range c.phrases {
			c.phraseByID[c.phrases[i].ID] = &c.phrases[i]
			p2w[c.phrases[i].ID] = c.phrases[i].Words
		}
		c.Index = NewIndex(p2w)
	}

	return c, nil
}

// Items returns all items in catalog order.
func (c *Catalog) Items() []Item {
	return c.items
}

// Phrases returns all phrases in catalog order.
func (c *Catalog) Phrases() []Phrase {
	return c.phrases
}

// Item returns an item by ID.
func (c *Catalog) Item(id string) (Item, bool) {
	it, ok := c.itemByID[id]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

// Phrase returns a phrase by ID.
func (c *Catalog) Phrase(id string) (Phrase, bool) {
	p, ok := c.phraseByID[id]
	if !ok {
		return Phrase{}, false
	}
	return *p, true
}

// Subset returns the items with the given IDs in catalog order.
// Unknown IDs are ignored.
func (c *Catalog) Subset(ids []string) []Item {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]Item, 0, len(ids))
	for _, it := range c.items {
		if want[it.ID] {
			out = append(out, it)
		}
	}
	return out
}
