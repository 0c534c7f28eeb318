package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/safescan/backend/internal/domain"
)

// FieldError describes one failed validation rule
type FieldError struct {
	Path string `json:"path"`
	Info string `json:"info"`
}

// ValidationError carries per-field details of a rejected record. It wraps
// the matching domain sentinel so callers can use errors.Is.
type ValidationError struct {
	kind   error
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	infos := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		infos = append(infos, f.Info)
	}
	return fmt.Sprintf("%v: %s", e.kind, strings.Join(infos, "; "))
}

func (e *ValidationError) Unwrap() error {
	return e.kind
}

// Validator checks records at the service boundary before the core runs
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator using the domain struct tags
func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// ValidateProduct rejects malformed products with ErrInvalidProduct
func (v *Validator) ValidateProduct(product *domain.Product) error {
	if product == nil {
		return fmt.Errorf("%w: product is required", domain.ErrInvalidProduct)
	}

	var fields []FieldError
	if err := v.validate.Struct(product); err != nil {
		fields = append(fields, fieldErrors(err)...)
	}
	if product.PFASLevel != nil && !product.PFASDetected {
		fields = append(fields, FieldError{
			Path: "PFASLevel",
			Info: "PFASLevel must be empty when PFAS is not detected",
		})
	}

	if len(fields) > 0 {
		return &ValidationError{kind: domain.ErrInvalidProduct, Fields: fields}
	}
	return nil
}

// ValidateProfile rejects malformed profiles with ErrInvalidProfile. A nil
// profile is valid and means defaults.
func (v *Validator) ValidateProfile(profile *domain.UserProfile) error {
	if profile == nil {
		return nil
	}
	if err := v.validate.Struct(profile); err != nil {
		return &ValidationError{kind: domain.ErrInvalidProfile, Fields: fieldErrors(err)}
	}
	return nil
}

// ValidateContaminants checks a bare contaminant list
func (v *Validator) ValidateContaminants(contaminants []domain.Contaminant) error {
	var fields []FieldError
	for i := range contaminants {
		if err := v.validate.Struct(&contaminants[i]); err != nil {
			for _, f := range fieldErrors(err) {
				f.Path = fmt.Sprintf("contaminants[%d].%s", i, f.Path)
				fields = append(fields, f)
			}
		}
	}
	if len(fields) > 0 {
		return &ValidationError{kind: domain.ErrInvalidRequest, Fields: fields}
	}
	return nil
}

// ValidateCatalog checks every member of a caller-supplied catalog. Failures
// are reported as ErrInvalidRequest with "catalog[i]." paths.
func (v *Validator) ValidateCatalog(catalog []domain.Product) error {
	var fields []FieldError
	for i := range catalog {
		var verr *ValidationError
		if err := v.ValidateProduct(&catalog[i]); errors.As(err, &verr) {
			for _, f := range verr.Fields {
				f.Path = fmt.Sprintf("catalog[%d].%s", i, f.Path)
				fields = append(fields, f)
			}
		}
	}
	if len(fields) > 0 {
		return &ValidationError{kind: domain.ErrInvalidRequest, Fields: fields}
	}
	return nil
}

func fieldErrors(err error) []FieldError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []FieldError{{Path: "", Info: err.Error()}}
	}
	fields := make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, FieldError{
			Path: strings.TrimPrefix(fe.Namespace(), rootNamespace(fe)),
			Info: validationMessage(fe),
		})
	}
	return fields
}

// rootNamespace is the struct name prefix of a namespace, e.g. "Product."
func rootNamespace(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[:idx+1]
	}
	return ""
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "min", "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "max", "lte":
		return fe.Field() + " must be at most " + fe.Param()
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
