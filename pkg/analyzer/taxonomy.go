package analyzer

import "github.com/ccollicutt/actlog/pkg/config"

// Taxonomy maps raw activity labels to categories. Lookups are case-sensitive.
type Taxonomy struct {
	index map[string]Category
}

// NewTaxonomy builds a taxonomy from category -> activity lists.
// Unknown category names are ignored; config.Validate rejects them earlier.
func NewTaxonomy(actions map[string][]string) *Taxonomy {
	t := &Taxonomy{index: make(map[string]Category)}
	for name, activities := range actions {
		category, ok := parseCategory(name)
		if !ok {
			continue
		}
		for _, activity := range activities {
			t.index[activity] = category
		}
	}
	return t
}

// DefaultTaxonomy returns the built-in mapping.
func DefaultTaxonomy() *Taxonomy {
	return NewTaxonomy(config.DefaultActions())
}

// Classify returns the category for an activity label.
func (t *Taxonomy) Classify(activity string) (Category, bool) {
	c, ok := t.index[activity]
	return c, ok
}

// Len returns the number of mapped activity labels.
func (t *Taxonomy) Len() int {
	return len(t.index)
}

func parseCategory(name string) (Category, bool) {
	switch Category(name) {
	case CategoryAdd, CategoryRemove, CategoryAccessed:
		return Category(name), true
	default:
		return "", false
	}
}
