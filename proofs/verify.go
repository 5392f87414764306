package proofs

import (
	"bytes"
	"encoding/hex"
	"hash"

	"github.com/pkg/errors"

	"github.com/centrifuge/schema-proofs/schema"
)

// errVerifyFailed aborts a verify walk for conditions that are verification
// failures rather than structural errors. It never escapes Verify.
var errVerifyFailed = errors.New("verification failed")

// Verify recomputes a root from a proof and compares it against the
// expected root. The walk only needs the class declaration, the path and
// the proof; it never sees the record.
//
// Cryptographic mismatches return (false, nil). Structurally invalid input
// returns ErrMalformedProof.
func (e *Engine) Verify(className string, path []string, root string, pf *Proof) (bool, error) {
	if pf == nil {
		return false, errors.Wrap(ErrMalformedProof, "no proof")
	}
	if len(path) == 0 {
		return false, nil
	}
	expected, err := hex.DecodeString(root)
	if err != nil {
		return false, errors.Wrapf(ErrMalformedProof, "root %q is not hex", root)
	}
	if len(expected) != DigestLength {
		return false, nil
	}
	salt, err := hex.DecodeString(pf.Salt)
	if err != nil {
		return false, errors.Wrap(ErrMalformedProof, "salt is not hex")
	}
	if len(salt) != SaltLength {
		return false, errors.Wrapf(ErrMalformedProof, "salt has incorrect length: %d instead of %d", len(salt), SaltLength)
	}
	cls, err := e.classes.Get(className)
	if err != nil {
		return false, err
	}
	levels, err := decodeLevels(pf.Hashes)
	if err != nil {
		if errors.Cause(err) == errVerifyFailed {
			return false, nil
		}
		return false, err
	}
	v := &verifier{
		engine: e,
		h:      e.newHash(),
		path:   path,
		value:  pf.Value,
		salt:   salt,
		levels: levels,
	}
	digest, err := v.verifyClass(cls, 0)
	if err != nil {
		if errors.Cause(err) == errVerifyFailed {
			return false, nil
		}
		return false, err
	}
	if v.next != len(v.levels) {
		return false, nil
	}
	return bytes.Equal(digest, expected), nil
}

type levelDigests struct {
	before [][]byte
	after  [][]byte
}

// decodeLevels decodes the hex sibling digests of every level. Non-hex
// input is malformed; a digest of the wrong length is a verification
// failure.
func decodeLevels(hashes []LevelHashes) ([]levelDigests, error) {
	levels := make([]levelDigests, len(hashes))
	decode := func(entries []string) ([][]byte, error) {
		out := make([][]byte, len(entries))
		for i, entry := range entries {
			d, err := hex.DecodeString(entry)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformedProof, "sibling digest %q is not hex", entry)
			}
			if len(d) != DigestLength {
				return nil, errVerifyFailed
			}
			out[i] = d
		}
		return out, nil
	}
	for i, level := range hashes {
		before, err := decode(level.Before)
		if err != nil {
			return nil, err
		}
		after, err := decode(level.After)
		if err != nil {
			return nil, err
		}
		levels[i] = levelDigests{before: before, after: after}
	}
	return levels, nil
}

// verifier recomputes the root along the proof path. Levels are consumed
// leaf-first: the deepest class node on the path takes the first entry.
type verifier struct {
	engine *Engine
	h      hash.Hash
	path   []string
	value  interface{}
	salt   []byte
	levels []levelDigests
	next   int
}

func (v *verifier) verifyClass(cls *schema.Class, depth int) ([]byte, error) {
	idx := -1
	var field schema.Property
	for i, p := range cls.Properties {
		if p.Name == v.path[depth] {
			idx, field = i, p
			break
		}
	}
	if idx < 0 {
		return nil, errVerifyFailed
	}
	var matched []byte
	switch field.Kind {
	case schema.KindPrimitive:
		if depth != len(v.path)-1 {
			return nil, errVerifyFailed
		}
		canonical, err := CanonicalValue(field.Type, v.value)
		if err != nil {
			return nil, errVerifyFailed
		}
		matched = leafHash(v.h, canonical, v.salt)
	case schema.KindNestedClass:
		if depth == len(v.path)-1 {
			return nil, errVerifyFailed
		}
		nested, err := v.engine.classes.Get(field.Class)
		if err != nil {
			return nil, err
		}
		matched, err = v.verifyClass(nested, depth+1)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errVerifyFailed
	}
	if v.next >= len(v.levels) {
		return nil, errVerifyFailed
	}
	level := v.levels[v.next]
	v.next++
	// The leaf hash does not bind the property name; the declared position
	// of the matched child pins the path instead. The sibling counts must
	// match that position exactly.
	if len(level.before) != idx || len(level.after) != len(cls.Properties)-1-idx {
		return nil, errVerifyFailed
	}
	defer v.h.Reset()
	for _, d := range level.before {
		v.h.Write(d)
	}
	v.h.Write(matched)
	for _, d := range level.after {
		v.h.Write(d)
	}
	return v.h.Sum(nil), nil
}
