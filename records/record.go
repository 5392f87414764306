// Package records holds the runtime representation of typed records: the
// values of one class instance together with the salts bound to its
// primitive fields. Records are built by the Factory or decoded from JSON
// and handed to the proof engines as-is.
package records

// Record is an instance of a user-defined class. It carries the
// fully-qualified class name, a value per declared property, and the salt
// store for its own primitive fields. Nested records own their own salts.
type Record struct {
	class  string
	values map[string]interface{}
	salts  map[string][]byte
}

// New returns an empty record of the given class.
func New(class string) *Record {
	return &Record{
		class:  class,
		values: map[string]interface{}{},
		salts:  map[string][]byte{},
	}
}

// Class returns the fully-qualified class name of the record.
func (r *Record) Class() string {
	return r.class
}

// Get returns the value stored under the property name.
func (r *Record) Get(name string) (interface{}, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Set stores a value under the property name. Values are one of string,
// bool, int32, int64, float64, time.Time or *Record; the engines reject
// anything else against the declared type.
func (r *Record) Set(name string, value interface{}) {
	r.values[name] = value
}

// Salt returns the salt stored for the property, or nil if none was
// generated yet.
func (r *Record) Salt(name string) []byte {
	return r.salts[name]
}

// SetSalt binds a salt to the property.
func (r *Record) SetSalt(name string, salt []byte) {
	r.salts[name] = salt
}
