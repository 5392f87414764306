package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Values(t *testing.T) {
	rec := New("org.test.Thing")
	assert.Equal(t, "org.test.Thing", rec.Class())

	_, ok := rec.Get("name")
	assert.False(t, ok)

	rec.Set("name", "alice")
	v, ok := rec.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "alice", v)
}

func TestRecord_Salts(t *testing.T) {
	rec := New("org.test.Thing")
	assert.Nil(t, rec.Salt("name"))

	salt := make([]byte, 32)
	salt[0] = 0x2a
	rec.SetSalt("name", salt)
	assert.Equal(t, salt, rec.Salt("name"))
}
