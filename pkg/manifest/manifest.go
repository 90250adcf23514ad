// Package manifest checks block manifests before they are embedded in a
// build argument or sent for remote validation.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrNotJSON is returned for content that is not syntactically valid JSON.
var ErrNotJSON = errors.New("not valid JSON")

// Lint checks that content is well-formed JSON. It deliberately says
// nothing about the schema; that is the validator's job.
func Lint(content []byte) error {
	if !json.Valid(content) {
		return ErrNotJSON
	}
	return nil
}

// ValidateSchema checks content against the JSON schema at schemaPath
// and reports every violation, one per line.
func ValidateSchema(schemaPath string, content []byte) error {
	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return fmt.Errorf("resolving schema path %s: %w", schemaPath, err)
	}
	schemaLoader := gojsonschema.NewReferenceLoader("file://" + absPath)
	documentLoader := gojsonschema.NewBytesLoader(content)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("loading schema %s: %w", schemaPath, err)
	}
	if result.Valid() {
		return nil
	}

	var lines []string
	for _, resultError := range result.Errors() {
		lines = append(lines, "- "+resultError.String())
	}
	return fmt.Errorf("manifest does not conform to %s:\n%s", schemaPath, strings.Join(lines, "\n"))
}
