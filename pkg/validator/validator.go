// Package validator wires the registration-field formats into
// go-playground/validator as custom rules.
package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	nameRe     = regexp.MustCompile(`^[А-Яа-яA-Za-z]+$`)
	policyRe   = regexp.MustCompile(`^[0-9]{10,}$`)
	passportRe = regexp.MustCompile(`^[0-9]{4}\s?[0-9]{6}$`)
)

// Validator validates registration input.
type Validator struct {
	v *validator.Validate
}

func New() (*Validator, error) {
	v := validator.New()

	rules := map[string]*regexp.Regexp{
		"patient_name":   nameRe,
		"medical_policy": policyRe,
		"passport":       passportRe,
	}
	for tag, re := range rules {
		re := re
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		}); err != nil {
			return nil, fmt.Errorf("failed to register %s rule: %w", tag, err)
		}
	}

	return &Validator{v: v}, nil
}

// Struct validates a struct by its `validate` tags.
func (v *Validator) Struct(s interface{}) error {
	return v.v.Struct(s)
}

// Name checks a first name, last name or patronymic: letters only.
func (v *Validator) Name(s string) bool {
	return nameRe.MatchString(s)
}

// MedicalPolicy checks a policy number: at least ten digits.
func (v *Validator) MedicalPolicy(s string) bool {
	return policyRe.MatchString(s)
}

// Passport checks a passport number: four digits, optional space, six digits.
func (v *Validator) Passport(s string) bool {
	return passportRe.MatchString(s)
}
