package proofs

import (
	"github.com/pkg/errors"

	"github.com/centrifuge/schema-proofs/schema"
)

// Salt, Root and Proof share one depth-first walk over the class
// declaration. They differ only in what they emit per node, so the walk is a
// single walker parameterised by a leaf action and a node action. The
// current value and path travel as arguments; there is no walker state
// beyond the class provider and the two actions. Verify does not use this
// walker: it follows only the properties named by the proof path
// (verify.go).

// leafFn is invoked for every primitive field, in declaration order.
type leafFn func(prop Property, field schema.Property, value interface{}, doc Document) (interface{}, error)

// nodeFn combines the emissions of a class's children, in declaration order.
type nodeFn func(prop Property, cls *schema.Class, children []interface{}) (interface{}, error)

type walker struct {
	classes ClassProvider
	leaf    leafFn
	node    nodeFn
}

func (w *walker) walkClass(cls *schema.Class, doc Document, prop Property) (interface{}, error) {
	children := make([]interface{}, len(cls.Properties))
	for i, field := range cls.Properties {
		res, err := w.walkField(prop.FieldProp(field.Name), field, doc)
		if err != nil {
			return nil, err
		}
		children[i] = res
	}
	return w.node(prop, cls, children)
}

func (w *walker) walkField(prop Property, field schema.Property, doc Document) (interface{}, error) {
	switch field.Kind {
	case schema.KindPrimitive:
		value, _ := doc.Get(field.Name)
		return w.leaf(prop, field, value, doc)
	case schema.KindNestedClass:
		value, ok := doc.Get(field.Name)
		if !ok || value == nil {
			return nil, errors.Wrapf(ErrTypeMismatch, "%s: no value for nested %s field", prop.ReadableName(), field.Class)
		}
		nested, ok := value.(Document)
		if !ok {
			return nil, errors.Wrapf(ErrTypeMismatch, "%s: %T is not a record", prop.ReadableName(), value)
		}
		cls, err := w.classes.Get(field.Class)
		if err != nil {
			return nil, errors.WithMessage(err, prop.ReadableName())
		}
		return w.walkClass(cls, nested, prop)
	case schema.KindArray, schema.KindEnum, schema.KindRelationship:
		return nil, errors.Wrapf(ErrNotImplemented, "%s: %s fields", prop.ReadableName(), field.Kind)
	}
	return nil, errors.Wrapf(ErrTypeMismatch, "%s: unknown kind %q", prop.ReadableName(), field.Kind)
}
