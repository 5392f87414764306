package proofs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProperty_ReadableName(t *testing.T) {
	assert.Equal(t, "", Empty.ReadableName())

	root := NewProperty("invoice")
	assert.Equal(t, "invoice", root.ReadableName())

	nested := root.FieldProp("customer").FieldProp("name")
	assert.Equal(t, "invoice.customer.name", nested.ReadableName())

	// fields of the anonymous root don't get a leading dot
	field := Empty.FieldProp("amount")
	assert.Equal(t, "amount", field.ReadableName())
}

func TestProperty_Path(t *testing.T) {
	assert.Nil(t, Empty.Path())
	assert.Equal(t, []string{"a"}, Empty.FieldProp("a").Path())
	assert.Equal(t, []string{"a", "b", "c"}, Empty.FieldProp("a").FieldProp("b").FieldProp("c").Path())
}

func TestPathEqual(t *testing.T) {
	assert.True(t, pathEqual(nil, nil))
	assert.True(t, pathEqual([]string{"a", "b"}, []string{"a", "b"}))
	assert.False(t, pathEqual([]string{"a"}, []string{"a", "b"}))
	assert.False(t, pathEqual([]string{"a", "b"}, []string{"a", "c"}))
}
