package records

import (
	"encoding/hex"
	"encoding/json"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/centrifuge/schema-proofs/schema"
)

// dateTimeFormat mirrors the canonical DateTime form of the proofs package
// so serialised records hash identically after a round trip.
const dateTimeFormat = "2006-01-02T15:04:05.000Z"

// saltLength is the required salt length in bytes.
const saltLength = 32

// JSON codec for records. The document carries a `$class` discriminator and
// a `$salts` object with the hex salts of the record's own primitive fields,
// so a salted record round-trips between processes and its root stays
// stable. DateTime values are written in the canonical ISO-8601 form.

// Marshal encodes a record as JSON.
func Marshal(registry *schema.Registry, rec *Record) ([]byte, error) {
	doc, err := encode(registry, rec)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// Unmarshal decodes a JSON document into a record. The document's `$class`
// must be registered.
func Unmarshal(registry *schema.Registry, data []byte) (*Record, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to parse record")
	}
	class, _ := raw["$class"].(string)
	if class == "" {
		return nil, errors.New("record has no $class")
	}
	return decode(registry, class, raw)
}

func encode(registry *schema.Registry, rec *Record) (map[string]interface{}, error) {
	cls, err := registry.Get(rec.class)
	if err != nil {
		return nil, err
	}
	doc := map[string]interface{}{"$class": rec.class}
	for _, field := range cls.Properties {
		value, ok := rec.Get(field.Name)
		if !ok || value == nil {
			continue
		}
		switch field.Kind {
		case schema.KindPrimitive:
			if field.Type == schema.TypeDateTime {
				t, ok := value.(time.Time)
				if !ok {
					return nil, errors.Errorf("%s: %T is not a DateTime", field.Name, value)
				}
				doc[field.Name] = t.UTC().Format(dateTimeFormat)
				continue
			}
			doc[field.Name] = value
		case schema.KindNestedClass:
			nested, ok := value.(*Record)
			if !ok {
				return nil, errors.Errorf("%s: %T is not a record", field.Name, value)
			}
			nestedDoc, err := encode(registry, nested)
			if err != nil {
				return nil, errors.WithMessage(err, field.Name)
			}
			doc[field.Name] = nestedDoc
		default:
			return nil, errors.Errorf("%s: cannot encode %s fields", field.Name, field.Kind)
		}
	}
	if len(rec.salts) > 0 {
		salts := map[string]string{}
		for name, salt := range rec.salts {
			salts[name] = hex.EncodeToString(salt)
		}
		doc["$salts"] = salts
	}
	return doc, nil
}

func decode(registry *schema.Registry, class string, raw map[string]interface{}) (*Record, error) {
	cls, err := registry.Get(class)
	if err != nil {
		return nil, err
	}
	rec := New(class)
	for _, field := range cls.Properties {
		rv, ok := raw[field.Name]
		if !ok || rv == nil {
			continue
		}
		switch field.Kind {
		case schema.KindPrimitive:
			value, err := decodePrimitive(field, rv)
			if err != nil {
				return nil, err
			}
			rec.Set(field.Name, value)
		case schema.KindNestedClass:
			nestedRaw, ok := rv.(map[string]interface{})
			if !ok {
				return nil, errors.Errorf("%s: expected an object, got %T", field.Name, rv)
			}
			if c, ok := nestedRaw["$class"].(string); ok && c != field.Class {
				return nil, errors.Errorf("%s: $class %q does not match declared class %q", field.Name, c, field.Class)
			}
			nested, err := decode(registry, field.Class, nestedRaw)
			if err != nil {
				return nil, errors.WithMessage(err, field.Name)
			}
			rec.Set(field.Name, nested)
		default:
			return nil, errors.Errorf("%s: cannot decode %s fields", field.Name, field.Kind)
		}
	}
	if rawSalts, ok := raw["$salts"].(map[string]interface{}); ok {
		for name, rs := range rawSalts {
			s, ok := rs.(string)
			if !ok {
				return nil, errors.Errorf("salt for %q is not a string", name)
			}
			salt, err := hex.DecodeString(s)
			if err != nil {
				return nil, errors.Wrapf(err, "salt for %q is not hex", name)
			}
			if len(salt) != saltLength {
				return nil, errors.Errorf("salt for %q has incorrect length: %d instead of %d", name, len(salt), saltLength)
			}
			rec.SetSalt(name, salt)
		}
	}
	return rec, nil
}

func decodePrimitive(field schema.Property, rv interface{}) (interface{}, error) {
	switch field.Type {
	case schema.TypeString:
		s, ok := rv.(string)
		if !ok {
			return nil, errors.Errorf("%s: expected a string, got %T", field.Name, rv)
		}
		return s, nil
	case schema.TypeBoolean:
		b, ok := rv.(bool)
		if !ok {
			return nil, errors.Errorf("%s: expected a boolean, got %T", field.Name, rv)
		}
		return b, nil
	case schema.TypeInteger:
		n, err := toIntegral(rv)
		if err != nil || n > math.MaxInt32 || n < math.MinInt32 {
			return nil, errors.Errorf("%s: %v is not a 32-bit integer", field.Name, rv)
		}
		return int32(n), nil
	case schema.TypeLong:
		n, err := toIntegral(rv)
		if err != nil {
			return nil, errors.Errorf("%s: %v is not an integer", field.Name, rv)
		}
		return n, nil
	case schema.TypeDouble:
		f, ok := rv.(float64)
		if !ok {
			return nil, errors.Errorf("%s: expected a number, got %T", field.Name, rv)
		}
		return f, nil
	case schema.TypeDateTime:
		s, ok := rv.(string)
		if !ok {
			return nil, errors.Errorf("%s: expected a datetime string, got %T", field.Name, rv)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: invalid datetime", field.Name)
		}
		return t.UTC(), nil
	}
	return nil, errors.Errorf("%s: unknown primitive type %q", field.Name, field.Type)
}

func toIntegral(rv interface{}) (int64, error) {
	f, ok := rv.(float64)
	if !ok || f != math.Trunc(f) || f > 1<<53 || f < -(1<<53) {
		return 0, errors.Errorf("%v is not an integral number", rv)
	}
	return int64(f), nil
}
