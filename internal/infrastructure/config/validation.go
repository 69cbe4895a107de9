package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
)

// resourceKindPattern is the accepted spelling of a resource kind: lowercase, starting with a letter
var resourceKindPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// resourceAbilities are the ability types that must name a resource kind
var resourceAbilities = []string{
	string(ability.KindResourceStorage),
	string(ability.KindResourceGeneration),
	string(ability.KindResourceConsumption),
}

// Validator is a wrapper around go-playground/validator with the shipforge rules registered:
//
//   - layer: a ship layer name (CORE, INNER, OUTER, ARMOR, any case)
//   - resource_kind: a lowercase resource kind such as "energy" or "fuel-cells"; empty is only
//     accepted when the sibling Type field is not a resource ability
//   - catalog_file: a path ending in .yaml, .yml or .toml
//
// It is used for the configuration and for every catalog entry.
type Validator struct {
	validate *validator.Validate
}

// ValidationFailure lists every failed field, one readable problem each
type ValidationFailure struct {
	Problems []string
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

// Summary joins the problems on one line
func (e *ValidationFailure) Summary() string {
	return strings.Join(e.Problems, "; ")
}

// NewValidator creates a new validator instance with the custom rules registered
func NewValidator() *Validator {
	v := validator.New()

	// Registration only fails for an empty tag or a nil function
	_ = v.RegisterValidation("layer", validateLayer)
	_ = v.RegisterValidation("resource_kind", validateResourceKind)
	_ = v.RegisterValidation("catalog_file", validateCatalogFile)

	return &Validator{
		validate: v,
	}
}

// Validate validates a struct using validation tags. Failures come back as *ValidationFailure.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func (v *Validator) formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	failure := &ValidationFailure{}
	for _, e := range validationErrs {
		failure.Problems = append(failure.Problems, fmt.Sprintf(
			"field '%s' failed validation: %s (value: '%v')",
			fieldPath(e.Namespace()),
			describeTag(e),
			e.Value(),
		))
	}
	return failure
}

// fieldPath drops the root struct name from a namespace: componentDTO.Abilities[0].Type -> Abilities[0].Type
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func describeTag(e validator.FieldError) string {
	if e.Param() == "" {
		return e.Tag()
	}
	return e.Tag() + "=" + e.Param()
}

func validateLayer(fl validator.FieldLevel) bool {
	_, err := component.ParseLayer(fl.Field().String())
	return err == nil
}

func validateResourceKind(fl validator.FieldLevel) bool {
	kind := fl.Field().String()
	if kind == "" {
		return !needsResource(fl.Parent())
	}
	return resourceKindPattern.MatchString(kind)
}

// needsResource reads the Type field next to the validated one. Without a Type field a
// resource kind is always required.
func needsResource(parent reflect.Value) bool {
	if parent.Kind() == reflect.Ptr {
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return true
	}
	typ := parent.FieldByName("Type")
	if !typ.IsValid() || typ.Kind() != reflect.String {
		return true
	}
	return isResourceAbility(typ.String())
}

func validateCatalogFile(fl validator.FieldLevel) bool {
	switch strings.ToLower(filepath.Ext(fl.Field().String())) {
	case ".yaml", ".yml", ".toml":
		return true
	}
	return false
}

func isResourceAbility(kind string) bool {
	for _, k := range resourceAbilities {
		if k == kind {
			return true
		}
	}
	return false
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	v := NewValidator()
	return v.Validate(cfg)
}
