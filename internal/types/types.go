// =============================================================================
// JSON to CSV Converter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - jsonparser
//   - converter
//   - csvwriter
//   - xlsxwriter
//
// =============================================================================

package types

// =============================================================================
// VALUE TYPES
// =============================================================================

// Kind identifies the JSON type a Value was decoded from.
type Kind int

const (
	// KindNull is a JSON null. It renders as an empty cell.
	KindNull Kind = iota

	// KindString is a JSON string.
	KindString

	// KindNumber is a JSON number. The original JSON text is kept.
	KindNumber

	// KindBool is a JSON true or false.
	KindBool

	// KindRaw is a nested object or array, kept as compact JSON text.
	KindRaw
)

// String returns the JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindRaw:
		return "json"
	default:
		return "unknown"
	}
}

// Value is a single decoded field value.
type Value struct {
	// Kind is the JSON type of the value.
	Kind Kind

	// Text is the textual rendering of the value.
	// For strings this is the decoded string, for numbers the JSON number
	// text, for booleans "true" or "false", for nulls "".
	Text string
}

// StringValue builds a string Value.
func StringValue(s string) Value {
	return Value{Kind: KindString, Text: s}
}

// NullValue builds a null Value.
func NullValue() Value {
	return Value{Kind: KindNull}
}

// IsString reports whether the value was decoded from a JSON string.
func (v Value) IsString() bool {
	return v.Kind == KindString
}

// String returns the cell text for the value.
func (v Value) String() string {
	if v.Kind == KindNull {
		return ""
	}
	return v.Text
}

// =============================================================================
// RECORD
// =============================================================================

// Record is one decoded JSON object, treated as a flat row.
// Field order follows the order keys were first seen in the input.
type Record struct {
	keys   []string
	values map[string]Value
}

// NewRecord creates an empty Record.
func NewRecord() *Record {
	return &Record{
		values: make(map[string]Value),
	}
}

// Set stores a value. A key that already exists keeps its original position
// and takes the new value.
func (r *Record) Set(key string, value Value) {
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value for a key and whether it is present.
func (r *Record) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.keys)
}

// =============================================================================
// DOCUMENT
// =============================================================================

// Document is the ordered collection of Records parsed from one input file.
type Document struct {
	// Records holds the rows in input order.
	Records []*Record
}

// Len returns the number of records.
func (d *Document) Len() int {
	return len(d.Records)
}

// IsEmpty reports whether the document has no records.
func (d *Document) IsEmpty() bool {
	return len(d.Records) == 0
}

// Headers returns the field names of the first record, in order.
// It returns nil for an empty document.
func (d *Document) Headers() []string {
	if d.IsEmpty() {
		return nil
	}
	return d.Records[0].Keys()
}
