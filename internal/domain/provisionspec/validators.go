package provisionspec

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// mustRegister wires a regexp-backed custom validator tag into v. Panics on
// a bad pattern since these are compile-time constants, never user input.
func mustRegister(v *validator.Validate, tag, pattern string) {
	re := regexp.MustCompile(pattern)

	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic("provisionspec: failed to register validator " + tag + ": " + err.Error())
	}
}
