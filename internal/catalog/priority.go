package catalog

import "math"

// NoPriority is the sentinel returned for items without a curated priority.
// It sorts after every real priority value.
var NoPriority = math.Inf(1)

// PriorityTable maps item IDs to their curated learning priority.
// Lower values should be learned earlier. The table is immutable once built.
type PriorityTable struct {
	values map[string]float64
}

// NewPriorityTable copies the given values into a new table.
func NewPriorityTable(values map[string]float64) *PriorityTable {
	t := &PriorityTable{values: make(map[string]float64, len(values))}
	for id, v := range values {
		if math.IsNaN(v) {
			continue
		}
		t.values[id] = v
	}
	return t
}

// Of returns the curated priority for an item, or NoPriority.
func (t *PriorityTable) Of(itemID string) float64 {
	if t == nil {
		return NoPriority
	}
	if v, ok := t.values[itemID]; ok {
		return v
	}
	return NoPriority
}

// Len returns the number of items with a curated priority.
func (t *PriorityTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.values)
}
