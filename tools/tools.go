// Package tools converts proofs and roots between their JSON interchange
// form and the in-memory types.
package tools

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/centrifuge/schema-proofs/proofs"
)

// DecodeProof parses a JSON proof document.
func DecodeProof(data []byte) (*proofs.Proof, error) {
	pf := &proofs.Proof{}
	if err := json.Unmarshal(data, pf); err != nil {
		return nil, errors.Wrap(err, "failed to parse proof")
	}
	return pf, nil
}

// EncodeProof encodes a proof as indented JSON.
func EncodeProof(pf *proofs.Proof) ([]byte, error) {
	return json.MarshalIndent(pf, "", "  ")
}

// DecodeRoot normalises a hex root: an optional 0x prefix is stripped, the
// digest length is checked, and the result is returned in lowercase.
func DecodeRoot(s string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "0x")
	digest, err := hex.DecodeString(trimmed)
	if err != nil {
		return "", errors.Wrapf(err, "root %q is not hex", s)
	}
	if len(digest) != proofs.DigestLength {
		return "", errors.Errorf("root has incorrect length: %d instead of %d", len(digest), proofs.DigestLength)
	}
	return hex.EncodeToString(digest), nil
}
