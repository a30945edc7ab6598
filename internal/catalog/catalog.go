// Package catalog holds the static node catalog, its default layout table
// and the category connections derived from it.
package catalog

import (
	"errors"
	"fmt"
	"math/rand"

	"xarxa/internal/geom"
)

type NodeID int

// NoNode is the zero NodeID; catalog ids are always positive.
const NoNode NodeID = 0

var (
	ErrUnknownNode     = errors.New("unknown node")
	ErrDuplicateID     = errors.New("duplicate node id")
	ErrUnknownCategory = errors.New("unknown category")
)

type Node struct {
	ID       NodeID `yaml:"id" validate:"required,gt=0"`
	Title    string `yaml:"title" validate:"required"`
	Category string `yaml:"category" validate:"required"`
	ImageRef string `yaml:"image" validate:"required"`
}

type Category struct {
	ID    string `yaml:"id" validate:"required"`
	Label string `yaml:"label" validate:"required"`
	Color string `yaml:"color" validate:"required,hexcolor"`
}

// Layout is a list of positions parallel to the catalog: the node at
// catalog index i sits at Layout[i].
type Layout []geom.Percent

func (l Layout) At(i int) (geom.Percent, bool) {
	if i < 0 || i >= len(l) {
		return geom.Percent{}, false
	}
	return l[i], true
}

func (l Layout) Clone() Layout {
	out := make(Layout, len(l))
	copy(out, l)
	return out
}

// Connection is an unordered pair of nodes sharing a category.
type Connection struct {
	A, B     NodeID
	Category string
}

func (c Connection) Touches(id NodeID) bool {
	return id != NoNode && (c.A == id || c.B == id)
}

// Catalog is built once and never mutated afterwards.
type Catalog struct {
	nodes       []Node
	categories  []Category
	index       map[NodeID]int
	categoryIdx map[string]int
	defaults    Layout
	connections []Connection
}

// Default returns the built-in 45 node catalog.
func Default() *Catalog {
	c, err := New(defaultNodes, defaultCategories, defaultLayout)
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in table is invalid: %v", err))
	}
	return c
}

// New builds a catalog. A layout shorter than the node list is accepted;
// nodes without a position are skipped by drawing and hit-testing.
func New(nodes []Node, categories []Category, layout Layout) (*Catalog, error) {
	c := &Catalog{
		nodes:       append([]Node(nil), nodes...),
		categories:  append([]Category(nil), categories...),
		index:       make(map[NodeID]int, len(nodes)),
		categoryIdx: make(map[string]int, len(categories)),
		defaults:    layout.Clone(),
	}
	for i, cat := range c.categories {
		c.categoryIdx[cat.ID] = i
	}
	for i, n := range c.nodes {
		if n.ID <= NoNode {
			return nil, fmt.Errorf("node at index %d: id must be positive", i)
		}
		if _, dup := c.index[n.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, n.ID)
		}
		if _, ok := c.categoryIdx[n.Category]; !ok {
			return nil, fmt.Errorf("node %d: %w %q", n.ID, ErrUnknownCategory, n.Category)
		}
		c.index[n.ID] = i
	}
	c.connections = buildConnections(c.nodes)
	return c, nil
}

// buildConnections links every pair inside each category, categories in
// order of first appearance.
func buildConnections(nodes []Node) []Connection {
	var order []string
	byCategory := make(map[string][]NodeID)
	for _, n := range nodes {
		if _, seen := byCategory[n.Category]; !seen {
			order = append(order, n.Category)
		}
		byCategory[n.Category] = append(byCategory[n.Category], n.ID)
	}

	var out []Connection
	for _, cat := range order {
		ids := byCategory[cat]
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				out = append(out, Connection{A: ids[i], B: ids[j], Category: cat})
			}
		}
	}
	return out
}

func (c *Catalog) Len() int { return len(c.nodes) }

// Nodes returns the nodes in catalog order. Callers must not modify the slice.
func (c *Catalog) Nodes() []Node { return c.nodes }

func (c *Catalog) Categories() []Category { return c.categories }

func (c *Catalog) Connections() []Connection { return c.connections }

func (c *Catalog) DefaultLayout() Layout { return c.defaults.Clone() }

// Index resolves an id to its catalog (and layout) index.
func (c *Catalog) Index(id NodeID) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

func (c *Catalog) Lookup(id NodeID) (Node, bool) {
	i, ok := c.index[id]
	if !ok {
		return Node{}, false
	}
	return c.nodes[i], true
}

func (c *Catalog) Category(id string) (Category, bool) {
	i, ok := c.categoryIdx[id]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// CategoryOf returns the category id of a node, or "" when the id is unknown.
func (c *Catalog) CategoryOf(id NodeID) string {
	n, ok := c.Lookup(id)
	if !ok {
		return ""
	}
	return n.Category
}

// Position resolves id → index → layout entry.
func (c *Catalog) Position(layout Layout, id NodeID) (geom.Percent, bool) {
	i, ok := c.index[id]
	if !ok {
		return geom.Percent{}, false
	}
	return layout.At(i)
}

// RandomLayout scatters n positions over the [4,96] band on both axes.
func RandomLayout(n int, rng *rand.Rand) Layout {
	out := make(Layout, n)
	for i := range out {
		out[i] = geom.Percent{
			X: 4 + rng.Float64()*92,
			Y: 4 + rng.Float64()*92,
		}
	}
	return out
}
