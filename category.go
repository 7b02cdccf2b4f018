package spend

import (
	"fmt"
	"slices"
	"strings"
)

// Category classifies an expense.
type Category string

// Categories is an ordered set of categories.
//
// The order is the one used by reports.
type Categories []Category

// DefaultCategories is the category set used when none is configured.
var DefaultCategories = Categories{"Food", "Transport", "Entertainment", "Utilities", "Other"}

// ParseCategories parses a comma separated list of categories.
// An empty string returns DefaultCategories.
func ParseCategories(s string) (Categories, error) {
	if strings.TrimSpace(s) == "" {
		return slices.Clone(DefaultCategories), nil
	}
	var cs Categories
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			return nil, fmt.Errorf("empty category in %q", s)
		}
		if _, exists := cs.Lookup(name); exists {
			return nil, fmt.Errorf("duplicate category %q in %q", name, s)
		}
		cs = append(cs, Category(name))
	}
	return cs, nil
}

// Contains reports whether c is exactly one of the categories.
func (cs Categories) Contains(c Category) bool { return slices.Contains(cs, c) }

// Lookup finds the category matching s regardless of case and returns its
// canonical spelling.
func (cs Categories) Lookup(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range cs {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// String returns the categories as a comma separated list.
func (cs Categories) String() string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
