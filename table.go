package unmaterial

// Resolver maps references to decoded objects. A reference that names
// nothing, an import, or an export that was not decoded resolves to nil.
type Resolver interface {
	Resolve(ref Ref) *Object
}

// Table resolves references against the exports of one package. It must be
// built only after every export it holds has been decoded.
type Table struct {
	// Exports holds the decoded objects by export index. Entries for exports
	// that are not materials are nil.
	Exports []*Object
}

// NewTable returns a Table over exports.
func NewTable(exports []*Object) *Table {
	return &Table{Exports: exports}
}

// Resolve returns the export named by ref, or nil if there is none.
func (t *Table) Resolve(ref Ref) *Object {
	if t == nil {
		return nil
	}
	i, ok := ref.Export()
	if !ok || i >= len(t.Exports) {
		return nil
	}
	return t.Exports[i]
}

// Unresolved returns the references held by o that do not resolve. Imports
// are not counted, since they refer outside of the package.
func (t *Table) Unresolved(o *Object) []Ref {
	var missing []Ref
	for _, ref := range o.Refs() {
		if _, ok := ref.Export(); ok && t.Resolve(ref) == nil {
			missing = append(missing, ref)
		}
	}
	return missing
}
