/*
Package proofs computes salted Merkle commitments over typed records and
creates selective-disclosure proofs for single fields addressed by their
property path.

The tree mirrors the class declaration: every primitive field is a leaf
hashed as SHA256(canonical(value) || salt), every class node is the hash of
its children's digests concatenated in declaration order, and the root of
the top-level record is the commitment. A proof discloses one leaf's value
and salt plus the sibling digests of every enclosing level, which is enough
to recompute the root without seeing any other field.

Supported primitive types:
  - String
  - Boolean
  - Integer
  - Long
  - Double
  - DateTime

Arrays, enums and relationships are reserved; every engine rejects them with
an explicit error.

Proof format

	{
	    "value": "Example",
	    "salt": "d555901541825e5d40612d220142c7428c385c48e0245fd3a40b8e3b64679be1",
	    "hashes": [
	        {"before": [], "after": ["91c5c01a10dd3e214cab5650313982a649fd52d5e1cd809e8120f48813a33a3f"]},
	        {"before": ["183813eca9ba34aea4e0dfc87780995c4acbde9e9c94d5fbb159e53727a0746d"], "after": []}
	    ]
	}

The hashes levels run from the leaf's immediate siblings up to the top-level
siblings. Within a level, before lists the digests of siblings declared
ahead of the disclosed subtree and after those declared behind it, both in
declaration order.
*/
package proofs

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"

	"github.com/pkg/errors"

	"github.com/centrifuge/schema-proofs/schema"
)

// SaltLength is the length of every field salt in bytes.
const SaltLength = 32

// DigestLength is the length of every digest in bytes.
const DigestLength = sha256.Size

// ClassProvider resolves fully-qualified class names to their declarations.
// schema.Registry implements it.
type ClassProvider interface {
	Get(fqn string) (*schema.Class, error)
}

// Document is the record surface the engines consume. records.Record
// implements it; nested values must implement it as well.
type Document interface {
	Class() string
	Get(name string) (interface{}, bool)
	Salt(name string) []byte
	SetSalt(name string, salt []byte)
}

// Engine computes salts, roots and proofs for records of a schema.
//
// Root, Proof and Verify are read-only and safe for concurrent use, also on
// the same record. Salt mutates the record's salt stores and must not run
// concurrently with any other call on the same record.
type Engine struct {
	classes ClassProvider
	newHash func() hash.Hash
	rand    io.Reader
}

// Option customises an Engine.
type Option func(*Engine)

// WithHash replaces the hash constructor. The constructor must produce
// 32-byte digests; the default is sha256.New and is the only constructor
// compatible with the wire contract.
func WithHash(newHash func() hash.Hash) Option {
	return func(e *Engine) {
		e.newHash = newHash
	}
}

// WithRand replaces the randomness source for salt generation. The default
// is crypto/rand.Reader.
func WithRand(r io.Reader) Option {
	return func(e *Engine) {
		e.rand = r
	}
}

// New returns an Engine for records of the given schema.
func New(classes ClassProvider, opts ...Option) (*Engine, error) {
	e := &Engine{
		classes: classes,
		newHash: sha256.New,
		rand:    rand.Reader,
	}
	for _, opt := range opts {
		opt(e)
	}
	if size := e.newHash().Size(); size != DigestLength {
		return nil, errors.Errorf("hash produces %d byte digests instead of %d", size, DigestLength)
	}
	return e, nil
}

// Root computes the Merkle root of the record and returns it hex-encoded.
// All salts must be populated; the record is not modified.
func (e *Engine) Root(doc Document) (string, error) {
	digest, err := e.rootDigest(doc)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(digest), nil
}

func (e *Engine) rootDigest(doc Document) ([]byte, error) {
	cls, err := e.classes.Get(doc.Class())
	if err != nil {
		return nil, err
	}
	h := e.newHash()
	w := &walker{
		classes: e.classes,
		leaf: func(prop Property, field schema.Property, value interface{}, d Document) (interface{}, error) {
			return e.hashLeaf(h, prop, field, value, d)
		},
		node: func(_ Property, _ *schema.Class, children []interface{}) (interface{}, error) {
			digests := make([][]byte, len(children))
			for i, c := range children {
				digests[i] = c.([]byte)
			}
			return nodeHash(h, digests), nil
		},
	}
	res, err := w.walkClass(cls, doc, Empty)
	if err != nil {
		return nil, err
	}
	return res.([]byte), nil
}

// hashLeaf computes the leaf digest of a primitive field from the record's
// value and stored salt.
func (e *Engine) hashLeaf(h hash.Hash, prop Property, field schema.Property, value interface{}, doc Document) ([]byte, error) {
	canonical, err := CanonicalValue(field.Type, value)
	if err != nil {
		return nil, errors.WithMessage(err, prop.ReadableName())
	}
	salt := doc.Salt(field.Name)
	if salt == nil {
		return nil, errors.Wrapf(ErrSaltMissing, "%s", prop.ReadableName())
	}
	if len(salt) != SaltLength {
		return nil, errors.Wrapf(ErrSaltMissing, "%s: salt has incorrect length: %d instead of %d", prop.ReadableName(), len(salt), SaltLength)
	}
	return leafHash(h, canonical, salt), nil
}
