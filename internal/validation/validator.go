// =============================================================================
// JSON to CSV Converter - Shape Validation
// =============================================================================
//
// The converter only accepts a JSON array whose elements are all objects.
// This is a shallow check: field types and nesting inside the objects are
// not validated.
//
// =============================================================================

package validation

import (
	"fmt"

	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/jsonparser"
	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/types"
	"github.com/tidwall/gjson"
)

// ShapeError describes why a document is not a list of objects.
type ShapeError struct {
	// Index is the position of the first offending element, or -1 when the
	// top-level value itself is the problem.
	Index int

	// Found is the JSON type that was found instead.
	Found string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("top-level value is %s, expected array", e.Found)
	}
	return fmt.Sprintf("element %d is %s, expected object", e.Index, e.Found)
}

// ValidateShape checks that root is an array and that every element is an
// object. The returned error is a ConversionError of kind KindShape wrapping
// a *ShapeError.
func ValidateShape(path string, root gjson.Result) error {
	if !root.IsArray() {
		return types.NewError(types.KindShape, path, &ShapeError{
			Index: -1,
			Found: jsonparser.TypeName(root),
		})
	}

	var shapeErr *ShapeError
	index := 0
	root.ForEach(func(_, element gjson.Result) bool {
		if !element.IsObject() {
			shapeErr = &ShapeError{Index: index, Found: jsonparser.TypeName(element)}
			return false
		}
		index++
		return true
	})

	if shapeErr != nil {
		return types.NewError(types.KindShape, path, shapeErr)
	}
	return nil
}
