// Package validation enforces the rules that must fail before any
// persistence attempt: declarative field constraints on request payloads,
// the configurable cooking time ceiling, and the self-follow guard.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidColor       = errors.New("color must be a hex code like #333 or #AAF123")
	ErrCookingTimeTooLow  = errors.New("cooking time must be at least 1 minute")
	ErrCookingTimeTooHigh = errors.New("cooking time exceeds the maximum")
	ErrAmountOutOfRange   = errors.New("ingredient amount must be between 1 and 100")
	ErrSelfFollow         = errors.New("subscribing to yourself is not allowed")
	ErrInvalidPayload     = errors.New("invalid payload")
)

const (
	MinCookingTime = 1
	MinAmount      = 1
	MaxAmount      = 100
)

// #RGB or #RRGGBB, case-insensitive. validator's builtin hexcolor tag also
// accepts both forms but reports a generic message; the explicit check keeps
// the field-level error text.
var colorPattern = regexp.MustCompile(`^#(?:[A-Fa-f0-9]{3}){1,2}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// never errors for a func validator
	_ = v.RegisterValidation("hexcolor3or6", func(fl validator.FieldLevel) bool {
		return colorPattern.MatchString(fl.Field().String())
	})

	return v
}

// Struct runs the declarative tag rules on a request payload and flattens
// the result into one field-naming error.
func Struct(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	fields := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		fields = append(fields, fmt.Sprintf("%s (%s)", fieldError.Field(), fieldError.Tag()))
	}

	return fmt.Errorf("%w: %s", ErrInvalidPayload, strings.Join(fields, ", "))
}

func HexColor(color string) error {
	if !colorPattern.MatchString(color) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}

	return nil
}

// CookingTime checks 1 <= minutes <= ceiling. The ceiling comes from
// configuration, never from a constant at the call site.
func CookingTime(minutes int, ceiling int) error {
	if minutes < MinCookingTime {
		return fmt.Errorf("%w: got %d", ErrCookingTimeTooLow, minutes)
	}

	if minutes > ceiling {
		return fmt.Errorf("%w of %d minutes: got %d", ErrCookingTimeTooHigh, ceiling, minutes)
	}

	return nil
}

func Amount(value int) error {
	if value < MinAmount || value > MaxAmount {
		return fmt.Errorf("%w: got %d", ErrAmountOutOfRange, value)
	}

	return nil
}

func SelfFollow(userID uint, authorID uint) error {
	if userID == authorID {
		return ErrSelfFollow
	}

	return nil
}
