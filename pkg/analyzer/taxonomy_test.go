package analyzer

import "testing"

func TestDefaultTaxonomy(t *testing.T) {
	tax := DefaultTaxonomy()
	if tax.Len() != 7 {
		t.Errorf("Len() = %d, want 7", tax.Len())
	}

	// Classifying the same label twice gives the same answer.
	first, ok1 := tax.Classify("changedText")
	second, ok2 := tax.Classify("changedText")
	if !ok1 || !ok2 || first != second || first != CategoryAdd {
		t.Errorf("Classify(changedText) = %v/%v, %v/%v", first, ok1, second, ok2)
	}

	if _, ok := tax.Classify("changedtext"); ok {
		t.Error("Classify() must be case-sensitive")
	}
}

func TestNewTaxonomy_IgnoresUnknownCategories(t *testing.T) {
	tax := NewTaxonomy(map[string][]string{
		"ADD":  {"createdDoc"},
		"MOVE": {"movedDoc"},
	})

	if _, ok := tax.Classify("movedDoc"); ok {
		t.Error("activity under unknown category should not be mapped")
	}
	if c, ok := tax.Classify("createdDoc"); !ok || c != CategoryAdd {
		t.Errorf("Classify(createdDoc) = %v, %v", c, ok)
	}
}
