package permission

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Counts tallies occurrences per key, remembering the order in which keys
// were first seen.
type Counts struct {
	m *orderedmap.OrderedMap[string, int]
}

// NewCounts creates an empty tally.
func NewCounts() *Counts {
	return &Counts{m: orderedmap.New[string, int]()}
}

// Add increments key by n.
func (c *Counts) Add(key string, n int) {
	cur, _ := c.m.Get(key)
	c.m.Set(key, cur+n)
}

// Get returns the count for key, zero if unseen.
func (c *Counts) Get(key string) int {
	n, _ := c.m.Get(key)
	return n
}

// Len returns the number of distinct keys.
func (c *Counts) Len() int {
	return c.m.Len()
}

// Each visits keys in first-seen order.
func (c *Counts) Each(fn func(key string, n int)) {
	for pair := c.m.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Keys returns keys in first-seen order.
func (c *Counts) Keys() []string {
	keys := make([]string, 0, c.m.Len())
	c.Each(func(key string, _ int) {
		keys = append(keys, key)
	})
	return keys
}
