package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	playground "github.com/go-playground/validator/v10"
)

var (
	EmailRX = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+\\/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")
)

// structValidator checks request bodies against their `validate` struct tags.
// Field names are reported using the json tag so that messages line up with
// what the client sent.
var structValidator = newStructValidator()

func newStructValidator() *playground.Validate {
	v := playground.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("password_strength", func(fl playground.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})
	return v
}

// Validator contains a map of validation errors.
type Validator struct {
	Errors map[string]string
}

// New is a helper which creates a new Validator instance with an empty errors map.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid returns true if the errors map doesn't contain any entries.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error message to the map (so long as no entry already exists for
// the given key).
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check adds an error message to the map only if a validation check is not 'ok'.
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// Struct runs the tag based checks of dst and records every failing field.
func (v *Validator) Struct(dst any) {
	err := structValidator.Struct(dst)
	if err == nil {
		return
	}
	var fieldErrors playground.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		v.AddError("body", err.Error())
		return
	}
	for _, fe := range fieldErrors {
		v.AddError(fe.Field(), fieldMessage(fe))
	}
}

func fieldMessage(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must be provided"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters long"
	case "max":
		return "must not be more than " + fe.Param() + " characters long"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "password_strength":
		return "must contain an uppercase letter, a lowercase letter, a digit and a non-alphanumeric character"
	default:
		return "is invalid"
	}
}

// In returns true if a specific value is in a list of strings.
func In(value string, list ...string) bool {
	for i := range list {
		if value == list[i] {
			return true
		}
	}
	return false
}

// Matches returns true if a string value matches a specific regexp pattern.
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

// Blank reports whether s is empty or only whitespace.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// RuneCountBetween reports whether s has between min and max characters, inclusive.
func RuneCountBetween(s string, min, max int) bool {
	n := len([]rune(s))
	return n >= min && n <= max
}

// StrongPassword mirrors the default identity password policy: upper and lower
// case letters, a digit and a non-alphanumeric character.
func StrongPassword(password string) bool {
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && !unicode.IsSpace(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// Mime returns true if a file's mime type matches a list of supported mime types.
func Mime(mtype *mimetype.MIME, mimes ...string) bool {
	return mimetype.EqualsAny(mtype.String(), mimes...)
}
