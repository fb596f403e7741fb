// =============================================================================
// JSON to CSV Converter - JSON Parser Module
// =============================================================================
//
// This module is responsible for loading the input JSON document and turning
// its elements into ordered Records.
//
// FEATURES:
//   - Key order of every object is preserved (needed for the CSV header)
//   - Repeated keys keep their first position and take the last value
//   - Numbers keep their decimal text ("1.50" stays "1.50"); exponent
//     literals are expanded ("1e3" becomes "1000")
//
// The decoder is gjson, which walks the raw bytes in document order instead
// of decoding into a Go map.
//
// =============================================================================

package jsonparser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/types"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// =============================================================================
// LOADING
// =============================================================================

// ReadFile reads the input file.
//
// RETURNS:
//   - The file contents.
//   - A ConversionError of kind KindFileNotFound if the path does not exist,
//     or KindUnexpected for any other read failure (permissions, invalid
//     UTF-8, a directory instead of a file).
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.NewError(types.KindFileNotFound, path, err)
		}
		return nil, types.NewError(types.KindUnexpected, path, fmt.Errorf("failed to read file: %w", err))
	}

	if !utf8.Valid(data) {
		return nil, types.NewError(types.KindUnexpected, path, fmt.Errorf("file is not valid UTF-8"))
	}

	return data, nil
}

// Parse checks that data is a single valid JSON value and returns its root.
// A byte order mark is not accepted.
func Parse(path string, data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, types.NewError(types.KindJSONDecode, path, nil)
	}
	return gjson.ParseBytes(data), nil
}

// Load reads and parses a file in one step.
func Load(path string) (gjson.Result, error) {
	data, err := ReadFile(path)
	if err != nil {
		return gjson.Result{}, err
	}
	return Parse(path, data)
}

// =============================================================================
// RECORD EXTRACTION
// =============================================================================

// Records collects the object elements of a top-level array as Records.
//
// Elements that are not objects are skipped; a root that is not an array
// yields an empty Document. Shape validation is responsible for rejecting
// such input.
func Records(root gjson.Result) *types.Document {
	doc := &types.Document{}
	if !root.IsArray() {
		return doc
	}

	root.ForEach(func(_, element gjson.Result) bool {
		if element.IsObject() {
			doc.Records = append(doc.Records, RecordOf(element))
		}
		return true
	})

	return doc
}

// RecordOf converts one JSON object into a Record.
func RecordOf(object gjson.Result) *types.Record {
	record := types.NewRecord()
	object.ForEach(func(key, value gjson.Result) bool {
		record.Set(key.Str, ValueOf(value))
		return true
	})
	return record
}

// ValueOf converts a gjson value to a Value.
//
// RENDERING:
//   - string  : the decoded string
//   - number  : decimal text, see numberText
//   - boolean : "true" / "false"
//   - null    : empty
//   - object or array : compact JSON text
func ValueOf(value gjson.Result) types.Value {
	switch value.Type {
	case gjson.String:
		return types.StringValue(value.Str)
	case gjson.Number:
		return types.Value{Kind: types.KindNumber, Text: numberText(value)}
	case gjson.True:
		return types.Value{Kind: types.KindBool, Text: "true"}
	case gjson.False:
		return types.Value{Kind: types.KindBool, Text: "false"}
	case gjson.JSON:
		return types.Value{Kind: types.KindRaw, Text: string(pretty.Ugly([]byte(value.Raw)))}
	default:
		return types.NullValue()
	}
}

// numberText renders a JSON number in decimal notation. Plain literals are
// kept as written; exponent literals are expanded and "-0" becomes "0".
func numberText(value gjson.Result) string {
	switch {
	case strings.ContainsAny(value.Raw, "eE"):
		return strconv.FormatFloat(value.Float(), 'f', -1, 64)
	case value.Raw == "-0":
		return "0"
	default:
		return value.Raw
	}
}

// TypeName returns the JSON type name of a value, for diagnostics.
func TypeName(value gjson.Result) string {
	switch value.Type {
	case gjson.String:
		return "string"
	case gjson.Number:
		return "number"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.JSON:
		if value.IsArray() {
			return "array"
		}
		return "object"
	default:
		return "null"
	}
}
