package schema

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Descriptor files are the compiled, on-disk form of a set of class
// declarations. They carry the class and property declarations of the
// in-memory model except the element descriptor of array properties
// (Property.Elem), which is neither written nor read. They are not a schema
// language; compiling one is the concern of the schema compiler, not of this
// package.

type descriptorDoc struct {
	Namespace string     `yaml:"namespace"`
	Classes   []classDoc `yaml:"classes"`
}

type classDoc struct {
	Name        string        `yaml:"name"`
	Identifier  string        `yaml:"identifier,omitempty"`
	Abstract    bool          `yaml:"abstract,omitempty"`
	Transaction bool          `yaml:"transaction,omitempty"`
	Event       bool          `yaml:"event,omitempty"`
	Properties  []propertyDoc `yaml:"properties"`
}

type propertyDoc struct {
	Name  string        `yaml:"name"`
	Kind  Kind          `yaml:"kind,omitempty"`
	Type  PrimitiveType `yaml:"type,omitempty"`
	Class string        `yaml:"class,omitempty"`
}

// LoadDescriptor registers all classes of a YAML descriptor document.
// References across descriptor files are allowed; call Validate once all
// files are loaded.
func (r *Registry) LoadDescriptor(data []byte) error {
	var doc descriptorDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "failed to parse descriptor")
	}
	for _, cd := range doc.Classes {
		cls := &Class{
			Namespace:   doc.Namespace,
			Name:        cd.Name,
			Identifier:  cd.Identifier,
			Abstract:    cd.Abstract,
			Transaction: cd.Transaction,
			Event:       cd.Event,
		}
		for _, pd := range cd.Properties {
			prop, err := pd.property()
			if err != nil {
				return errors.WithMessagef(err, "class %s", cls.FQN())
			}
			cls.Properties = append(cls.Properties, prop)
		}
		if err := r.Register(cls); err != nil {
			return err
		}
	}
	return nil
}

// LoadDescriptorFile reads and registers a descriptor file.
func (r *Registry) LoadDescriptorFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read descriptor %s", path)
	}
	return errors.WithMessagef(r.LoadDescriptor(data), "descriptor %s", path)
}

// MarshalDescriptor encodes the registered classes of one namespace as a
// YAML descriptor document.
func (r *Registry) MarshalDescriptor(namespace string) ([]byte, error) {
	doc := descriptorDoc{Namespace: namespace}
	for _, cls := range r.Classes() {
		if cls.Namespace != namespace {
			continue
		}
		cd := classDoc{
			Name:        cls.Name,
			Identifier:  cls.Identifier,
			Abstract:    cls.Abstract,
			Transaction: cls.Transaction,
			Event:       cls.Event,
		}
		for _, p := range cls.Properties {
			pd := propertyDoc{Name: p.Name, Type: p.Type, Class: p.Class}
			if p.Kind != KindPrimitive && p.Kind != KindNestedClass {
				pd.Kind = p.Kind
			}
			cd.Properties = append(cd.Properties, pd)
		}
		doc.Classes = append(doc.Classes, cd)
	}
	if len(doc.Classes) == 0 {
		return nil, errors.Errorf("no classes registered in namespace %q", namespace)
	}
	return yaml.Marshal(doc)
}

// property resolves the declared kind of a descriptor property. A bare
// `type` means primitive, a bare `class` means nested; arrays, enums and
// relationships must name their kind explicitly.
func (pd propertyDoc) property() (Property, error) {
	kind := pd.Kind
	if kind == "" {
		switch {
		case pd.Type != "":
			kind = KindPrimitive
		case pd.Class != "":
			kind = KindNestedClass
		default:
			return Property{}, errors.Errorf("property %q declares neither type nor class", pd.Name)
		}
	}
	return Property{Name: pd.Name, Kind: kind, Type: pd.Type, Class: pd.Class}, nil
}
