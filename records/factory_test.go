package records

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/centrifuge/schema-proofs/schema"
)

func factoryRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg := schema.NewRegistry()
	err := reg.Register(
		&schema.Class{
			Namespace:  "org.test",
			Name:       "Customer",
			Identifier: "id",
			Properties: []schema.Property{
				{Name: "id", Kind: schema.KindPrimitive, Type: schema.TypeString},
				{Name: "name", Kind: schema.KindPrimitive, Type: schema.TypeString},
			},
		},
		&schema.Class{
			Namespace: "org.test",
			Name:      "Note",
			Properties: []schema.Property{
				{Name: "text", Kind: schema.KindPrimitive, Type: schema.TypeString},
			},
		},
		&schema.Class{
			Namespace: "org.test",
			Name:      "Base",
			Abstract:  true,
		},
	)
	assert.NoError(t, err)
	return reg
}

func TestFactory_NewRecord(t *testing.T) {
	f := NewFactory(factoryRegistry(t))

	rec, err := f.NewRecord("org.test.Note")
	assert.NoError(t, err)
	assert.Equal(t, "org.test.Note", rec.Class())
	_, ok := rec.Get("text")
	assert.False(t, ok)
}

func TestFactory_AssignsIdentifier(t *testing.T) {
	f := NewFactory(factoryRegistry(t))

	rec, err := f.NewRecord("org.test.Customer")
	assert.NoError(t, err)
	id, ok := rec.Get("id")
	assert.True(t, ok)
	parsed, err := uuid.Parse(id.(string))
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, parsed)

	other, err := f.NewRecord("org.test.Customer")
	assert.NoError(t, err)
	otherID, _ := other.Get("id")
	assert.NotEqual(t, id, otherID)
}

func TestFactory_Errors(t *testing.T) {
	f := NewFactory(factoryRegistry(t))

	_, err := f.NewRecord("org.test.Missing")
	assert.Error(t, err)

	_, err = f.NewRecord("org.test.Base")
	assert.Error(t, err, "abstract class")
}
