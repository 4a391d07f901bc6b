package rules

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned when a requested rule id is not in the catalog.
// A bad rule id is a configuration error and aborts the run.
var ErrNotFound = errors.New("rule not found")

// Catalog is the immutable registry of detection rules, constructed once
// at startup and passed explicitly to the engine.
type Catalog struct {
	rules []Rule
	index map[string]int
}

// NewCatalog returns the catalog of built-in rules.
func NewCatalog() *Catalog {
	var rs []Rule
	rs = append(rs, architectureRules()...)
	rs = append(rs, concurrencyRules()...)
	rs = append(rs, lifecycleRules()...)
	rs = append(rs, securityRules()...)
	rs = append(rs, uiFrameworkRules()...)
	rs = append(rs, kotlinIdiomRules()...)
	rs = append(rs, testingRules()...)
	return NewCatalogWith(rs)
}

// NewCatalogWith builds a catalog from an explicit rule set. This is the
// extension point: callers can append their own rules without touching
// the engine.
func NewCatalogWith(rs []Rule) *Catalog {
	c := &Catalog{
		rules: append([]Rule(nil), rs...),
		index: make(map[string]int, len(rs)),
	}
	sort.SliceStable(c.rules, func(i, j int) bool { return c.rules[i].ID < c.rules[j].ID })
	for i, r := range c.rules {
		c.index[r.ID] = i
	}
	return c
}

// List returns rules in stable ID order, filtered to one category when
// category is non-empty.
func (c *Catalog) List(category Category) []Rule {
	out := make([]Rule, 0, len(c.rules))
	for _, r := range c.rules {
		if category != "" && r.Category != category {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Get returns the rule with the given id.
func (c *Catalog) Get(id string) (Rule, error) {
	i, ok := c.index[id]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.rules[i], nil
}

// Without returns a copy of the catalog with the given rule ids removed.
// Unknown ids are reported as an error so a typo in configuration does
// not silently disable nothing.
func (c *Catalog) Without(ids []string) (*Catalog, error) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := c.index[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		drop[id] = true
	}
	var keep []Rule
	for _, r := range c.rules {
		if !drop[r.ID] {
			keep = append(keep, r)
		}
	}
	return NewCatalogWith(keep), nil
}

// Len returns the number of rules in the catalog.
func (c *Catalog) Len() int {
	return len(c.rules)
}
