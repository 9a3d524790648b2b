package props

import (
	"strings"

	"github.com/ueforge/unmaterial/archive"
)

// Descriptor declares how one named property is decoded.
type Descriptor struct {
	// Name is the property name, matched case-insensitively.
	Name string

	wires  []Wire
	strct  string
	drop   bool
	decode func(ar *archive.Archive, tag *Tag, obj any) error
}

// Drop returns a descriptor for a property that is known but ignored.
func Drop(name string) Descriptor {
	return Descriptor{Name: name, drop: true}
}

// Dropped returns whether the property is ignored.
func (d *Descriptor) Dropped() bool {
	return d.drop
}

// Accepts returns whether a value recorded with tag can be decoded by d.
func (d *Descriptor) Accepts(tag *Tag) bool {
	if d.drop || d.decode == nil {
		return false
	}
	for _, w := range d.wires {
		if w != tag.Type {
			continue
		}
		if w == WireStruct && d.strct != "" && !strings.EqualFold(d.strct, tag.StructName) {
			return false
		}
		return true
	}
	return false
}

// Table is the set of properties declared by one kind. Lookups fall back to
// the parent table, so a kind sees the properties of all of its ancestors.
// Tables are built during initialization and are read-only afterwards.
type Table struct {
	Name   string
	Parent *Table

	fields map[string]*Descriptor
	order  []*Descriptor
}

// NewTable returns an empty table inheriting from parent, which may be nil.
func NewTable(name string, parent *Table) *Table {
	return &Table{
		Name:   name,
		Parent: parent,
		fields: map[string]*Descriptor{},
	}
}

// Add declares properties in the table. A property added twice replaces the
// earlier declaration.
func (t *Table) Add(descs ...Descriptor) *Table {
	for i := range descs {
		d := descs[i]
		key := strings.ToLower(d.Name)
		if old, ok := t.fields[key]; ok {
			*old = d
			continue
		}
		t.fields[key] = &d
		t.order = append(t.order, &d)
	}
	return t
}

// Drop declares properties that are known but ignored.
func (t *Table) Drop(names ...string) *Table {
	for _, name := range names {
		t.Add(Drop(name))
	}
	return t
}

// Lookup finds the descriptor of a property in the table or its ancestors,
// nearest first. It also returns the table that declared the property.
func (t *Table) Lookup(name string) (*Descriptor, *Table) {
	key := strings.ToLower(name)
	for ; t != nil; t = t.Parent {
		if d, ok := t.fields[key]; ok {
			return d, t
		}
	}
	return nil, nil
}

// Chain returns the table and its ancestors, nearest first.
func (t *Table) Chain() []*Table {
	var chain []*Table
	for ; t != nil; t = t.Parent {
		chain = append(chain, t)
	}
	return chain
}

// Descriptors returns the properties declared by the table itself, in
// declaration order.
func (t *Table) Descriptors() []*Descriptor {
	return t.order
}
