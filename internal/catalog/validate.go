package catalog

import (
	"fmt"
	"strings"
)

// validate performs structural checks on the item and phrase sets.
// Returns a combined error describing all problems found, or nil if valid.
func validate(items []Item, phrases []Phrase) error {
	var errs []string

	itemIDs := make(map[string]bool, len(items))
	for _, it := range items {
		if it.ID == "" {
			errs = append(errs, fmt.Sprintf("item with text %q has an empty ID", it.Text))
			continue
		}
		if itemIDs[it.ID] {
			errs = append(errs, fmt.Sprintf("duplicate item ID: %q", it.ID))
		}
		itemIDs[it.ID] = true
	}

	phraseIDs := make(map[string]bool, len(phrases))
	for _, p := range phrases {
		if p.ID == "" {
			errs = append(errs, fmt.Sprintf("phrase with text %q has an empty ID", p.Text))
			continue
		}
		if phraseIDs[p.ID] {
			errs = append(errs, fmt.Sprintf("duplicate phrase ID: %q", p.ID))
		}
		phraseIDs[p.ID] = true

		// Dangling word references.
		for _, w := range p.Words {
			if !itemIDs[w] {
				errs = append(errs, fmt.Sprintf("phrase %q references nonexistent item %q", p.ID, w))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
