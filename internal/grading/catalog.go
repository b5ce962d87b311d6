package grading

import "strings"

// Catalog is an ordered set of threshold tables addressable by name.
// The first table added under a name wins.
type Catalog struct {
	tables []Table
	byName map[string]int
}

func NewCatalog(tables ...Table) *Catalog {
	c := &Catalog{byName: map[string]int{}}
	for _, t := range tables {
		c.Add(t)
	}
	return c
}

// Add registers t and reports whether its name was new.
func (c *Catalog) Add(t Table) bool {
	key := strings.ToLower(strings.TrimSpace(t.Name))
	if _, dup := c.byName[key]; dup {
		return false
	}
	c.byName[key] = len(c.tables)
	c.tables = append(c.tables, t)
	return true
}

func (c *Catalog) Lookup(name string) (Table, bool) {
	if c == nil {
		return Table{}, false
	}
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Table{}, false
	}
	return c.tables[i], true
}

// Tables returns the tables in registration order.
func (c *Catalog) Tables() []Table {
	if c == nil {
		return nil
	}
	return append([]Table(nil), c.tables...)
}
