// Package validation checks a registration request against the business
// rules. It is pure: the same request and catalog always give the same result.
package validation

import (
	"slices"
	"strings"

	"onboarding/internal/registration/models"
	"onboarding/pkg/platform/validation"
)

// Option configures a single Validate call.
type Option func(*options)

type options struct {
	strictPhone bool
}

// WithStrictPhone limits phone digits to 0-9. Without it the legacy range is
// used, which also admits ':'; existing customer data depends on that.
func WithStrictPhone() Option {
	return func(o *options) {
		o.strictPhone = true
	}
}

// Validate returns the first rule req breaks, or nil. knownLicenses is the
// current license catalog. Rules run in a fixed order so callers always see
// the same message for the same input.
func Validate(req *models.RegistrationRequest, knownLicenses []string, opts ...Option) *models.ValidationError {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if req == nil {
		return models.NewMissingFieldError("")
	}
	for _, f := range req.RequiredFields() {
		if f.Value == "" {
			return models.NewMissingFieldError(f.Name)
		}
	}

	if !strings.Contains(req.Email, "@") {
		return models.NewInvalidEmailError()
	}

	if !validPhone(req.Phone, o.strictPhone) {
		return models.NewInvalidPhoneError()
	}

	if !slices.Contains(knownLicenses, req.License) {
		return models.NewUnknownLicenseError(req.License)
	}

	if err := checkCountry(req.Country); err != nil {
		return err
	}

	return checkLengths(req)
}

func validPhone(phone string, strict bool) bool {
	maxDigit := byte(':')
	if strict {
		maxDigit = '9'
	}
	for i := 0; i < len(phone); i++ {
		c := phone[i]
		if c >= '0' && c <= maxDigit {
			continue
		}
		switch c {
		case ' ', '#', '+', ',':
			continue
		}
		return false
	}
	return true
}

func checkCountry(country string) *models.ValidationError {
	for _, r := range country {
		if r < 'A' || r > 'Z' {
			return models.NewCountryFormatError()
		}
	}
	if len(country) != validation.CountryCodeLength {
		return models.NewCountryLengthError()
	}
	return nil
}

func checkLengths(req *models.RegistrationRequest) *models.ValidationError {
	limits := []struct {
		field string
		value string
		max   int
	}{
		{"email", req.Email, validation.MaxEmailLength},
		{"business", req.Business, validation.MaxBusinessLength},
		{"phone", req.Phone, validation.MaxPhoneLength},
		{"address", req.Address, validation.MaxAddressLength},
		{"business_type", req.BusinessType, validation.MaxBusinessTypeLength},
		{"business_sect", req.BusinessSect, validation.MaxBusinessSectLength},
		{"postcode", req.Postcode, validation.MaxPostcodeLength},
	}
	for _, l := range limits {
		if !validation.WithinLength(l.value, l.max) {
			return models.NewFieldTooLongError(l.field)
		}
	}
	return nil
}
