package proofs

import (
	"hash"
	"math"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/centrifuge/schema-proofs/schema"
)

// The canonical encoding below is the one and only byte form of a primitive
// value used for hashing. Together with the hash algorithm, the child
// concatenation order and the hex case it is the interoperability surface of
// the library; changing any of it breaks every root in existence.

// DateTimeFormat is the canonical form of a DateTime value: ISO-8601 in UTC
// with millisecond precision. Values are normalised to UTC before
// formatting, so the layout's trailing Z is literal.
const DateTimeFormat = "2006-01-02T15:04:05.000Z"

// CanonicalValue returns the canonical byte encoding of a primitive value
// for its declared type: a JSON string with standard escaping for String,
// `true`/`false` for Boolean, the shortest round-tripping decimal form for
// the numeric types, and the quoted DateTimeFormat for DateTime.
func CanonicalValue(t schema.PrimitiveType, value interface{}) ([]byte, error) {
	if value == nil {
		return nil, errors.Wrapf(ErrTypeMismatch, "no value for %s field", t)
	}
	switch t {
	case schema.TypeString:
		s, ok := value.(string)
		if !ok {
			return nil, typeMismatch(t, value)
		}
		return appendJSONString(make([]byte, 0, len(s)+2), s), nil
	case schema.TypeBoolean:
		b, ok := value.(bool)
		if !ok {
			return nil, typeMismatch(t, value)
		}
		if b {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case schema.TypeInteger:
		n, err := toInt64(value)
		if err != nil || n > math.MaxInt32 || n < math.MinInt32 {
			return nil, typeMismatch(t, value)
		}
		return strconv.AppendInt(nil, n, 10), nil
	case schema.TypeLong:
		n, err := toInt64(value)
		if err != nil {
			return nil, typeMismatch(t, value)
		}
		return strconv.AppendInt(nil, n, 10), nil
	case schema.TypeDouble:
		f, ok := value.(float64)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, typeMismatch(t, value)
		}
		return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
	case schema.TypeDateTime:
		switch v := value.(type) {
		case time.Time:
			return appendJSONString(nil, v.UTC().Format(DateTimeFormat)), nil
		case string:
			parsed, err := time.Parse(time.RFC3339Nano, v)
			if err != nil {
				return nil, typeMismatch(t, value)
			}
			return appendJSONString(nil, parsed.UTC().Format(DateTimeFormat)), nil
		}
		return nil, typeMismatch(t, value)
	}
	return nil, errors.Wrapf(ErrTypeMismatch, "unknown primitive type %q", t)
}

func typeMismatch(t schema.PrimitiveType, value interface{}) error {
	return errors.Wrapf(ErrTypeMismatch, "%v (%T) is not a valid %s", value, value, t)
}

// toInt64 accepts the integer shapes a record can carry: native ints and,
// for values that went through JSON, integral float64s within the exact
// range of the double mantissa.
func toInt64(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != math.Trunc(v) || v > 1<<53 || v < -(1<<53) {
			return 0, errors.Errorf("%v is not an integral number", v)
		}
		return int64(v), nil
	}
	return 0, errors.Errorf("%T is not an integer", value)
}

const hexDigits = "0123456789abcdef"

// appendJSONString appends the JSON encoding of s: double quotes, standard
// escapes for the quote, backslash and control characters, everything else
// verbatim UTF-8. encoding/json additionally escapes <, > and &, which
// would change the wire contract, so the escaper is written out here.
func appendJSONString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			dst = append(dst, '\\', '"')
		case c == '\\':
			dst = append(dst, '\\', '\\')
		case c >= 0x20:
			dst = append(dst, c)
		case c == '\b':
			dst = append(dst, '\\', 'b')
		case c == '\f':
			dst = append(dst, '\\', 'f')
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		case c == '\t':
			dst = append(dst, '\\', 't')
		default:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		}
	}
	return append(dst, '"')
}

// leafHash computes SHA256(canonical(value) || salt). hash.Hash writes never
// fail, so the error returns are elided.
func leafHash(h hash.Hash, canonical, salt []byte) []byte {
	defer h.Reset()
	h.Write(canonical)
	h.Write(salt)
	return h.Sum(nil)
}

// nodeHash computes the digest of a class node: the hash of its child
// digests concatenated in declaration order, with no separator and no
// length prefix.
func nodeHash(h hash.Hash, children [][]byte) []byte {
	defer h.Reset()
	for _, child := range children {
		h.Write(child)
	}
	return h.Sum(nil)
}
