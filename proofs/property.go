package proofs

// Property identifies a field during a walk. It is built up one level per
// recursion step and read back for error context and for matching proof
// paths.
type Property struct {
	Parent *Property
	Text   string
}

// Empty is the anonymous root property a walk starts from.
var Empty = Property{}

// NewProperty returns a root property with the given name.
func NewProperty(name string) Property {
	return Property{Text: name}
}

// FieldProp returns a child property for a field of this property.
func (n Property) FieldProp(name string) Property {
	parent := n
	return Property{Parent: &parent, Text: name}
}

// ReadableName returns the dot notation of the property.
func (n Property) ReadableName() string {
	if n.Parent == nil || n.Parent.ReadableName() == "" {
		return n.Text
	}
	return n.Parent.ReadableName() + "." + n.Text
}

// Path returns the property names from the root down to this property.
func (n Property) Path() []string {
	if n.Text == "" && n.Parent == nil {
		return nil
	}
	if n.Parent == nil {
		return []string{n.Text}
	}
	return append(n.Parent.Path(), n.Text)
}

func pathEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
