package proofs

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"

	"github.com/centrifuge/schema-proofs/schema"
)

// Proof discloses exactly one primitive leaf of a record: its value, its
// salt, and per enclosing level the digests of the siblings needed to
// recompute the root. The levels run leaf-first; the last entry describes
// the top-level siblings.
type Proof struct {
	Value  interface{}   `json:"value"`
	Salt   string        `json:"salt"`
	Hashes []LevelHashes `json:"hashes"`
}

// LevelHashes lists the sibling digests of one level, split at the
// disclosed subtree: Before holds the siblings declared ahead of it, After
// those declared behind it, both in declaration order and hex-encoded.
type LevelHashes struct {
	Before []string `json:"before"`
	After  []string `json:"after"`
}

// disclosure marks the matched leaf in the raw walk result in place of its
// digest.
type disclosure struct {
	value interface{}
	salt  []byte
}

// Proof creates a proof for the primitive leaf at the given property path.
// Salts must be populated and the path must lead through nested-class
// fields only; the record is not modified.
func (e *Engine) Proof(doc Document, path []string) (*Proof, error) {
	if len(path) == 0 {
		return nil, errors.Wrap(ErrPathInvalid, "empty path")
	}
	cls, err := e.classes.Get(doc.Class())
	if err != nil {
		return nil, err
	}
	h := e.newHash()
	w := &walker{
		classes: e.classes,
		leaf: func(prop Property, field schema.Property, value interface{}, d Document) (interface{}, error) {
			if !pathEqual(prop.Path(), path) {
				return e.hashLeaf(h, prop, field, value, d)
			}
			if _, err := CanonicalValue(field.Type, value); err != nil {
				return nil, errors.WithMessage(err, prop.ReadableName())
			}
			salt := d.Salt(field.Name)
			if len(salt) != SaltLength {
				return nil, errors.Wrapf(ErrSaltMissing, "%s", prop.ReadableName())
			}
			return disclosure{value: value, salt: salt}, nil
		},
		// A class node collapses to its digest unless the disclosed leaf is
		// inside it; then the child list is passed up raw so the levels can
		// be split at the disclosure.
		node: func(_ Property, _ *schema.Class, children []interface{}) (interface{}, error) {
			digests := make([][]byte, len(children))
			for i, c := range children {
				d, ok := c.([]byte)
				if !ok {
					return children, nil
				}
				digests[i] = d
			}
			return nodeHash(h, digests), nil
		},
	}
	raw, err := w.walkClass(cls, doc, Empty)
	if err != nil {
		return nil, err
	}
	return flattenProof(raw, path)
}

// flattenProof turns the raw walk result into the public proof format: it
// splits each level at its single non-digest entry, descends into it, and
// reverses the levels into leaf-first order once the disclosure is reached.
func flattenProof(raw interface{}, path []string) (*Proof, error) {
	var levels []LevelHashes
	cur := raw
	for {
		children, ok := cur.([]interface{})
		if !ok {
			break
		}
		level := LevelHashes{Before: []string{}, After: []string{}}
		cur = nil
		for _, entry := range children {
			if d, ok := entry.([]byte); ok {
				if cur == nil {
					level.Before = append(level.Before, hex.EncodeToString(d))
				} else {
					level.After = append(level.After, hex.EncodeToString(d))
				}
				continue
			}
			cur = entry
		}
		if cur == nil {
			return nil, errors.Wrapf(ErrPathInvalid, "%s", strings.Join(path, "."))
		}
		levels = append(levels, level)
	}
	d, ok := cur.(disclosure)
	if !ok {
		return nil, errors.Wrapf(ErrPathInvalid, "%s does not address a primitive leaf", strings.Join(path, "."))
	}
	for i, j := 0, len(levels)-1; i < j; i, j = i+1, j-1 {
		levels[i], levels[j] = levels[j], levels[i]
	}
	return &Proof{
		Value:  d.value,
		Salt:   hex.EncodeToString(d.salt),
		Hashes: levels,
	}, nil
}
