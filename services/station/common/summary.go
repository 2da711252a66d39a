package common

// Summary is an immutable, ordered set of named numeric fields describing a metric window
type Summary struct {
	fields []Field
}

// NewSummary creates a summary holding a copy of the provided fields
func NewSummary(fields ...Field) Summary {
	if len(fields) == 0 {
		return Summary{}
	}

	cp := make([]Field, len(fields))
	copy(cp, fields)

	return Summary{fields: cp}
}

// Fields returns a copy of the summary fields, in order
func (s Summary) Fields() []Field {
	cp := make([]Field, len(s.fields))
	copy(cp, s.fields)

	return cp
}

// Get returns the value of the named field, if present
func (s Summary) Get(name string) (float64, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f.Value, true
		}
	}

	return 0, false
}

// Len returns the number of fields
func (s Summary) Len() int {
	return len(s.fields)
}

// ToMap returns the fields as a map
func (s Summary) ToMap() map[string]float64 {
	m := make(map[string]float64, len(s.fields))
	for _, f := range s.fields {
		m[f.Name] = f.Value
	}

	return m
}
