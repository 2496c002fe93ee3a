package profile

import (
	"encoding/json"
	"fmt"
)

// Parse decodes a captured profile document. Type-invalid input (a string
// where a number is expected, malformed JSON) is rejected here; the
// analysis stages downstream assume a type-valid document and degrade
// structurally incomplete ones to defaults instead of failing.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("invalid profile JSON: %w", err)
	}
	return doc, nil
}
