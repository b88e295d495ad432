package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"

	"github.com/osse101/EcoHunt_Go/internal/domain"
)

var (
	structValidator *validator.Validate
	structOnce      sync.Once
)

// Validator returns the shared struct validator with the custom tags registered
func Validator() *validator.Validate {
	structOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation(TagActivityType, validateActivityType)
		_ = v.RegisterValidation(TagEthAddress, validateEthAddress)
		structValidator = v
	})
	return structValidator
}

// Struct validates s by its tags. Failures wrap domain.ErrValidation and name
// every offending field.
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	fields := FieldErrors(err)
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+fields[name])
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(parts, "; "))
}

// FieldErrors maps lower-cased field paths to user-facing messages. Errors
// that are not tag failures collapse to a single "error" entry.
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"error": ErrMsgInvalidRequestShape}
	}

	out := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			out[field] = "This field is required"
		case TagActivityType:
			out[field] = "Unknown activity type"
		case TagEthAddress:
			out[field] = "Invalid wallet address"
		case "max":
			out[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			out[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gte", "lte", "gt", "lt":
			out[field] = fmt.Sprintf("Out of range (%s %s)", e.Tag(), e.Param())
		default:
			out[field] = "Invalid value"
		}
	}
	return out
}

func validateActivityType(fl validator.FieldLevel) bool {
	return domain.ActivityType(fl.Field().String()).IsKnown()
}

// validateEthAddress accepts empty values; pair with required when needed
func validateEthAddress(fl validator.FieldLevel) bool {
	addr := fl.Field().String()
	return addr == "" || common.IsHexAddress(addr)
}
