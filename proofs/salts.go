package proofs

import (
	"io"

	"github.com/pkg/errors"

	"github.com/centrifuge/schema-proofs/schema"
)

// Salt generates a fresh 32-byte random salt for every primitive leaf
// reachable from the record and stores it on the record owning the leaf.
// Nested records receive their salts in their own stores.
//
// Salt mutates the record. On error the record may be partially salted and
// must be discarded; callers must not commit to a record whose Salt call
// failed.
func (e *Engine) Salt(doc Document) error {
	cls, err := e.classes.Get(doc.Class())
	if err != nil {
		return err
	}
	w := &walker{
		classes: e.classes,
		leaf: func(prop Property, field schema.Property, _ interface{}, d Document) (interface{}, error) {
			salt, err := e.newSalt()
			if err != nil {
				return nil, errors.WithMessage(err, prop.ReadableName())
			}
			d.SetSalt(field.Name, salt)
			return nil, nil
		},
		node: func(Property, *schema.Class, []interface{}) (interface{}, error) {
			return nil, nil
		},
	}
	_, err = w.walkClass(cls, doc, Empty)
	return err
}

// newSalt draws a salt from the engine's randomness source.
func (e *Engine) newSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := io.ReadFull(e.rand, salt); err != nil {
		return nil, errors.Wrapf(ErrRandomnessUnavailable, "%s", err)
	}
	return salt, nil
}
