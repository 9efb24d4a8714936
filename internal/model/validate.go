package model

import (
	_ "embed"
	"fmt"

	"cv-builder/internal/domain"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed cv.schema.json
var cvSchema string

// ValidateMap validates a CV form payload against the embedded schema.
// Violations wrap domain.ErrValidation so the boundary can re-display the
// form instead of failing the request.
func ValidateMap(m map[string]interface{}) error {
	schemaLoader := gojsonschema.NewStringLoader(cvSchema)
	docLoader := gojsonschema.NewGoLoader(m)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := ""
	for _, e := range res.Errors() {
		msgs += fmt.Sprintf("%s; ", e.String())
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, msgs)
}

// ValidateForm is the typed entry point used by the CV service.
func ValidateForm(f CVForm) error {
	return ValidateMap(f.ToMap())
}
