package proofs

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/centrifuge/schema-proofs/schema"
)

func TestCanonicalValue_String(t *testing.T) {
	v, err := CanonicalValue(schema.TypeString, "alice")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`"alice"`), v)

	v, err = CanonicalValue(schema.TypeString, "a\"b\n")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`"a\"b\n"`), v)

	v, err = CanonicalValue(schema.TypeString, "back\\slash")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`"back\\slash"`), v)

	v, err = CanonicalValue(schema.TypeString, "ctrl\x01")
	assert.NoError(t, err)
	assert.Equal(t, []byte("\"ctrl\\u0001\""), v)

	// html-significant characters stay verbatim
	v, err = CanonicalValue(schema.TypeString, "<a&b>")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`"<a&b>"`), v)

	// multi-byte runes stay verbatim
	v, err = CanonicalValue(schema.TypeString, "héllo")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`"héllo"`), v)

	_, err = CanonicalValue(schema.TypeString, 42)
	assert.Equal(t, ErrTypeMismatch, errors.Cause(err))
}

func TestCanonicalValue_Boolean(t *testing.T) {
	v, err := CanonicalValue(schema.TypeBoolean, true)
	assert.NoError(t, err)
	assert.Equal(t, []byte("true"), v)

	v, err = CanonicalValue(schema.TypeBoolean, false)
	assert.NoError(t, err)
	assert.Equal(t, []byte("false"), v)

	_, err = CanonicalValue(schema.TypeBoolean, "true")
	assert.Equal(t, ErrTypeMismatch, errors.Cause(err))
}

func TestCanonicalValue_Numbers(t *testing.T) {
	v, err := CanonicalValue(schema.TypeInteger, int32(42))
	assert.NoError(t, err)
	assert.Equal(t, []byte("42"), v)

	// JSON-decoded values arrive as float64
	v, err = CanonicalValue(schema.TypeInteger, float64(-7))
	assert.NoError(t, err)
	assert.Equal(t, []byte("-7"), v)

	_, err = CanonicalValue(schema.TypeInteger, int64(1)<<40)
	assert.Equal(t, ErrTypeMismatch, errors.Cause(err))
	_, err = CanonicalValue(schema.TypeInteger, 1.5)
	assert.Equal(t, ErrTypeMismatch, errors.Cause(err))

	v, err = CanonicalValue(schema.TypeLong, int64(-7))
	assert.NoError(t, err)
	assert.Equal(t, []byte("-7"), v)

	v, err = CanonicalValue(schema.TypeLong, int64(1)<<40)
	assert.NoError(t, err)
	assert.Equal(t, []byte("1099511627776"), v)

	v, err = CanonicalValue(schema.TypeDouble, 1.5)
	assert.NoError(t, err)
	assert.Equal(t, []byte("1.5"), v)

	v, err = CanonicalValue(schema.TypeDouble, float64(42))
	assert.NoError(t, err)
	assert.Equal(t, []byte("42"), v)

	_, err = CanonicalValue(schema.TypeDouble, math.NaN())
	assert.Equal(t, ErrTypeMismatch, errors.Cause(err))
	_, err = CanonicalValue(schema.TypeDouble, math.Inf(1))
	assert.Equal(t, ErrTypeMismatch, errors.Cause(err))
}

func TestCanonicalValue_DateTime(t *testing.T) {
	ts := time.Date(2018, 6, 24, 9, 48, 54, 123000000, time.UTC)
	v, err := CanonicalValue(schema.TypeDateTime, ts)
	assert.NoError(t, err)
	assert.Equal(t, []byte(`"2018-06-24T09:48:54.123Z"`), v)

	// non-UTC values normalise to UTC
	cest := time.FixedZone("CEST", 2*60*60)
	v, err = CanonicalValue(schema.TypeDateTime, ts.In(cest))
	assert.NoError(t, err)
	assert.Equal(t, []byte(`"2018-06-24T09:48:54.123Z"`), v)

	// string form, as decoded from a proof document
	v, err = CanonicalValue(schema.TypeDateTime, "2018-06-24T11:48:54.123+02:00")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`"2018-06-24T09:48:54.123Z"`), v)

	_, err = CanonicalValue(schema.TypeDateTime, "not a date")
	assert.Equal(t, ErrTypeMismatch, errors.Cause(err))
	_, err = CanonicalValue(schema.TypeDateTime, 42)
	assert.Equal(t, ErrTypeMismatch, errors.Cause(err))
}

func TestCanonicalValue_Nil(t *testing.T) {
	for _, pt := range []schema.PrimitiveType{
		schema.TypeString, schema.TypeBoolean, schema.TypeInteger,
		schema.TypeLong, schema.TypeDouble, schema.TypeDateTime,
	} {
		_, err := CanonicalValue(pt, nil)
		assert.Equal(t, ErrTypeMismatch, errors.Cause(err), "nil %s", pt)
	}
}

func TestLeafHash(t *testing.T) {
	h := sha256.New()

	canonical, err := CanonicalValue(schema.TypeString, "alice")
	assert.NoError(t, err)
	digest := leafHash(h, canonical, make([]byte, SaltLength))
	assert.Equal(t, "cbf3ac527d760aa3581d357f4a228d1f75a0da8688c6f6134667506aa6517447", hex.EncodeToString(digest))

	canonical, err = CanonicalValue(schema.TypeDateTime, time.Date(2018, 6, 24, 9, 48, 54, 123000000, time.UTC))
	assert.NoError(t, err)
	digest = leafHash(h, canonical, fixedSalt(0x04))
	assert.Equal(t, "334f1e7940ac2af4946776e2afe89df127ecb0610958d26f1037239200a5772c", hex.EncodeToString(digest))

	canonical, err = CanonicalValue(schema.TypeDouble, 1.5)
	assert.NoError(t, err)
	digest = leafHash(h, canonical, fixedSalt(0x05))
	assert.Equal(t, "f8fed005689697f271ae30122634210bded5e9694bb44ae710d2d03eb3fe72c4", hex.EncodeToString(digest))

	canonical, err = CanonicalValue(schema.TypeLong, int64(-7))
	assert.NoError(t, err)
	digest = leafHash(h, canonical, fixedSalt(0x06))
	assert.Equal(t, "bb7ffcbe7bfa05f9edb9894cb9c62b749271caf0d6210a85b1c395363727d051", hex.EncodeToString(digest))

	canonical, err = CanonicalValue(schema.TypeBoolean, false)
	assert.NoError(t, err)
	digest = leafHash(h, canonical, fixedSalt(0x07))
	assert.Equal(t, "8692016a63c77318df06b019db4395f171d383bec689fb78d6981a7fc9654a7c", hex.EncodeToString(digest))

	canonical, err = CanonicalValue(schema.TypeString, "a\"b\n")
	assert.NoError(t, err)
	digest = leafHash(h, canonical, fixedSalt(0x08))
	assert.Equal(t, "69b4e06924620525b72ee1951a0844e35d503e00826866735308075770f44e69", hex.EncodeToString(digest))
}

func TestNodeHash(t *testing.T) {
	h := sha256.New()
	a := leafHash(h, []byte(`"x"`), fixedSalt(0x01))
	b := leafHash(h, []byte("true"), fixedSalt(0x02))
	digest := nodeHash(h, [][]byte{a, b})
	assert.Equal(t, "5263002e96b87fc6f47f7ff43614691df5bfed349debaf50ec81b91fc9bf8b0c", hex.EncodeToString(digest))

	// no separator, no length prefix: concatenation order is the contract
	swapped := nodeHash(h, [][]byte{b, a})
	assert.Equal(t, "98212cc5f46837c37865d8c8954ababdca09094d7101b2d66dc4204fcc789263", hex.EncodeToString(swapped))
}
