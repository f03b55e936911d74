package models

import "fmt"

// Reason classifies why a registration request was rejected.
type Reason string

const (
	ReasonMissingField   Reason = "missing_field"
	ReasonInvalidEmail   Reason = "invalid_email"
	ReasonInvalidPhone   Reason = "invalid_phone"
	ReasonUnknownLicense Reason = "unknown_license"
	ReasonCountryFormat  Reason = "country_format"
	ReasonCountryLength  Reason = "country_length"
	ReasonFieldTooLong   Reason = "field_too_long"
)

// ValidationError is the first rule a request broke. Message is the text
// returned to the caller verbatim.
type ValidationError struct {
	Field   string
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewMissingFieldError(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: ReasonMissingField, Message: "Missing one or more required parameters"}
}

func NewInvalidEmailError() *ValidationError {
	return &ValidationError{Field: "email", Reason: ReasonInvalidEmail, Message: "Invalid email address"}
}

func NewInvalidPhoneError() *ValidationError {
	return &ValidationError{Field: "phone", Reason: ReasonInvalidPhone, Message: "Invalid phone number"}
}

func NewUnknownLicenseError(license string) *ValidationError {
	return &ValidationError{
		Field:   "license",
		Reason:  ReasonUnknownLicense,
		Message: fmt.Sprintf("License type (%s) not recognised", license),
	}
}

func NewCountryFormatError() *ValidationError {
	return &ValidationError{Field: "country", Reason: ReasonCountryFormat, Message: "Incorrect country code format"}
}

func NewCountryLengthError() *ValidationError {
	return &ValidationError{Field: "country", Reason: ReasonCountryLength, Message: "Incorrect country code length"}
}

func NewFieldTooLongError(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Reason:  ReasonFieldTooLong,
		Message: fmt.Sprintf("A parameter (%s) exceeds the max data length defined in the database.", field),
	}
}
