package users

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldViolation identifies one violated field in a create request
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// email_addr: local part, "@", and a domain containing at least one dot
var emailAddrPattern = regexp.MustCompile(`^[^@\s]+@[^@\s.]+(\.[^@\s.]+)+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// report field names as they appear on the wire
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("email_addr", func(fl validator.FieldLevel) bool {
		return emailAddrPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// Validate checks a create request against the declared schema. It is a pure
// function of its input and reports every violated field, never just the
// first. A nil request yields the single "body required" violation. Unknown
// fields are ignored upstream by JSON decoding.
func Validate(req *CreateUserRequest) []FieldViolation {
	if req == nil {
		return []FieldViolation{{Field: "body", Message: "body required"}}
	}

	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldViolation{{Field: "body", Message: "body required"}}
	}

	violations := make([]FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, FieldViolation{
			Field:   fe.Field(),
			Message: violationMessage(fe),
		})
	}
	return violations
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required and must be a non-empty string"
	case "email_addr":
		return fe.Field() + " must be a valid email address"
	default:
		return fe.Field() + " is invalid"
	}
}
