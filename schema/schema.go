// Package schema holds the compiled class declarations the proof engines walk.
//
// A Class is the declaration of a user-defined record type: a fully-qualified
// name and an ordered list of properties. The property order is the
// declaration order and is part of the hash contract; reordering two
// properties of a class changes every root computed over its records.
package schema

import (
	"github.com/pkg/errors"
)

// Kind classifies a property.
type Kind string

const (
	KindPrimitive    Kind = "primitive"
	KindNestedClass  Kind = "nested"
	KindArray        Kind = "array"
	KindEnum         Kind = "enum"
	KindRelationship Kind = "relationship"
)

// PrimitiveType tags the value type of a primitive property.
type PrimitiveType string

const (
	TypeString   PrimitiveType = "String"
	TypeBoolean  PrimitiveType = "Boolean"
	TypeInteger  PrimitiveType = "Integer"
	TypeLong     PrimitiveType = "Long"
	TypeDouble   PrimitiveType = "Double"
	TypeDateTime PrimitiveType = "DateTime"
)

var primitiveTypes = map[PrimitiveType]bool{
	TypeString:   true,
	TypeBoolean:  true,
	TypeInteger:  true,
	TypeLong:     true,
	TypeDouble:   true,
	TypeDateTime: true,
}

// Property is one named slot of a class declaration.
//
// Type is set for primitive properties only. Class holds the fully-qualified
// name of the referenced declaration for nested-class and relationship
// properties. Elem describes the element of an array property; arrays, enums
// and relationships are reserved and rejected by the engines.
type Property struct {
	Name  string
	Kind  Kind
	Type  PrimitiveType
	Class string
	Elem  *Property
}

// Class is a compiled class declaration.
//
// Identifier, when set, names the property that identifies instances of the
// class. Abstract classes cannot be instantiated by the factory. The
// Transaction and Event markers are carried for collaborators; the proof
// engines ignore them.
type Class struct {
	Namespace   string
	Name        string
	Identifier  string
	Abstract    bool
	Transaction bool
	Event       bool
	Properties  []Property
}

// FQN returns the fully-qualified name of the class.
func (c *Class) FQN() string {
	if c.Namespace == "" {
		return c.Name
	}
	return c.Namespace + "." + c.Name
}

// Identified reports whether instances of the class carry an identifier.
func (c *Class) Identified() bool {
	return c.Identifier != ""
}

// Property returns the declared property with the given name.
func (c *Class) Property(name string) (Property, bool) {
	for _, p := range c.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Registry maps fully-qualified class names to their declarations.
type Registry struct {
	classes map[string]*Class
	order   []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{classes: map[string]*Class{}}
}

// Register adds class declarations to the registry. Every class is checked
// structurally before it is added; references to other classes are only
// checked by Validate so declarations can be registered in any order.
func (r *Registry) Register(classes ...*Class) error {
	for _, c := range classes {
		if err := checkClass(c); err != nil {
			return err
		}
		fqn := c.FQN()
		if _, ok := r.classes[fqn]; ok {
			return errors.Errorf("class %q is already registered", fqn)
		}
		r.classes[fqn] = c
		r.order = append(r.order, fqn)
	}
	return nil
}

// Get returns the declaration registered under the fully-qualified name.
func (r *Registry) Get(fqn string) (*Class, error) {
	c, ok := r.classes[fqn]
	if !ok {
		return nil, errors.Errorf("unknown class %q", fqn)
	}
	return c, nil
}

// Classes returns all registered declarations in registration order.
func (r *Registry) Classes() []*Class {
	out := make([]*Class, len(r.order))
	for i, fqn := range r.order {
		out[i] = r.classes[fqn]
	}
	return out
}

// Validate checks that every class referenced by a nested-class or
// relationship property is registered.
func (r *Registry) Validate() error {
	for _, fqn := range r.order {
		for _, p := range r.classes[fqn].Properties {
			switch p.Kind {
			case KindNestedClass, KindRelationship:
				if _, ok := r.classes[p.Class]; !ok {
					return errors.Errorf("%s.%s references unknown class %q", fqn, p.Name, p.Class)
				}
			}
		}
	}
	return nil
}

func checkClass(c *Class) error {
	if c.Name == "" {
		return errors.New("class has no name")
	}
	seen := map[string]bool{}
	for _, p := range c.Properties {
		if p.Name == "" {
			return errors.Errorf("%s has a property without a name", c.FQN())
		}
		if seen[p.Name] {
			return errors.Errorf("%s declares property %q twice", c.FQN(), p.Name)
		}
		seen[p.Name] = true
		if err := checkProperty(c, p); err != nil {
			return err
		}
	}
	if c.Identifier != "" {
		p, ok := c.Property(c.Identifier)
		if !ok {
			return errors.Errorf("%s identifier %q is not a declared property", c.FQN(), c.Identifier)
		}
		if p.Kind != KindPrimitive || p.Type != TypeString {
			return errors.Errorf("%s identifier %q must be a String property", c.FQN(), c.Identifier)
		}
	}
	return nil
}

func checkProperty(c *Class, p Property) error {
	switch p.Kind {
	case KindPrimitive:
		if !primitiveTypes[p.Type] {
			return errors.Errorf("%s.%s has invalid primitive type %q", c.FQN(), p.Name, p.Type)
		}
		if p.Class != "" {
			return errors.Errorf("%s.%s is primitive but references class %q", c.FQN(), p.Name, p.Class)
		}
	case KindNestedClass, KindRelationship:
		if p.Class == "" {
			return errors.Errorf("%s.%s does not name a referenced class", c.FQN(), p.Name)
		}
		if p.Type != "" {
			return errors.Errorf("%s.%s references a class but carries primitive type %q", c.FQN(), p.Name, p.Type)
		}
	case KindArray, KindEnum:
		// reserved; accepted in declarations, rejected by the engines
		if p.Type != "" {
			return errors.Errorf("%s.%s is %s but carries primitive type %q", c.FQN(), p.Name, p.Kind, p.Type)
		}
	default:
		return errors.Errorf("%s.%s has unknown kind %q", c.FQN(), p.Name, p.Kind)
	}
	return nil
}
