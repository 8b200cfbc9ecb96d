// Package validator provides lab schema validation.
package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"netlabgen.io/netlabgen/pkg/lab"
)

// ValidationError represents a single validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// Summary renders the result as a single line for error messages.
func (r *ValidationResult) Summary() string {
	if r.Valid {
		return "valid"
	}
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.Message)
	}
	return strings.Join(parts, "; ")
}

// Validator validates generated labs against the required schema.
type Validator struct {
	validate *validator.Validate
}

// New creates a new validator.
func New() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// ValidateLab checks that every required lab field is present. The model
// is untrusted with respect to format, so an empty field counts as
// missing: no partial lab is ever accepted.
func (v *Validator) ValidateLab(l *lab.Lab) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := v.validate.Struct(l); err != nil {
		result.Valid = false
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, e := range validationErrors {
				result.Errors = append(result.Errors, ValidationError{
					Field:   jsonField(e.Field()),
					Rule:    e.Tag(),
					Message: formatValidationError(e),
				})
			}
		}
	}

	return result
}

// jsonField maps Go field names to the JSON keys of the lab schema.
func jsonField(field string) string {
	switch field {
	case "Title":
		return "title"
	case "Scenario":
		return "scenario"
	case "Connections":
		return "connections"
	case "DeviceConfigs":
		return "device_configs"
	case "Tasks":
		return "tasks"
	case "SolutionCommands":
		return "solution_commands"
	case "VerificationCommands":
		return "verification_commands"
	default:
		return field
	}
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", jsonField(e.Field()))
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", jsonField(e.Field()), e.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", jsonField(e.Field()), e.Tag())
	}
}
