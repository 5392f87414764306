package proofs

import "github.com/pkg/errors"

// Error kinds returned by the engines. Engines wrap them with the readable
// path of the property at which the walk failed; callers match the kind with
// errors.Cause.
var (
	// ErrNotImplemented is returned when a walk reaches an array, enum or
	// relationship property. These are reserved; skipping them silently
	// would produce a partial commitment.
	ErrNotImplemented = errors.New("not implemented")

	// ErrSaltMissing is returned when a primitive leaf has to be hashed but
	// no salt was generated for it.
	ErrSaltMissing = errors.New("salt missing")

	// ErrTypeMismatch is returned when a record value cannot be
	// canonicalised for its declared type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrPathInvalid is returned when a proof path does not resolve to a
	// primitive leaf.
	ErrPathInvalid = errors.New("path invalid")

	// ErrRandomnessUnavailable is returned when the salt engine cannot draw
	// from its randomness source.
	ErrRandomnessUnavailable = errors.New("randomness unavailable")

	// ErrMalformedProof is returned by Verify for structurally invalid
	// proofs. Cryptographic mismatches are not errors; Verify reports them
	// by returning false.
	ErrMalformedProof = errors.New("malformed proof")
)
