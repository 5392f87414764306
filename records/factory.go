package records

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/centrifuge/schema-proofs/schema"
)

// Factory constructs records against a schema registry.
type Factory struct {
	registry *schema.Registry
}

// NewFactory returns a factory backed by the given registry.
func NewFactory(registry *schema.Registry) *Factory {
	return &Factory{registry: registry}
}

// NewRecord returns an empty record of the named class. Identified classes
// get a fresh UUID assigned to their identifier property.
func (f *Factory) NewRecord(fqn string) (*Record, error) {
	cls, err := f.registry.Get(fqn)
	if err != nil {
		return nil, err
	}
	if cls.Abstract {
		return nil, errors.Errorf("cannot instantiate abstract class %q", fqn)
	}
	rec := New(fqn)
	if cls.Identified() {
		rec.Set(cls.Identifier, uuid.NewString())
	}
	return rec, nil
}
