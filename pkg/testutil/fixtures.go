package testutil

import (
	"onboarding/internal/registration/models"
)

// Licenses used across registration tests.
var (
	LicenseBasic = models.License{Name: "Basic", DurationDays: 365, CurrentVersion: 1.0, TrialCount: 0}
	LicensePro   = models.License{Name: "Pro", DurationDays: 30, CurrentVersion: 3.2, TrialCount: 5}
)

// RequestBuilder provides a fluent interface for building registration requests.
type RequestBuilder struct {
	req *models.RegistrationRequest
}

// NewRequestBuilder creates a RequestBuilder for email with every required
// field set to a valid value.
func NewRequestBuilder(email string) *RequestBuilder {
	return &RequestBuilder{
		req: &models.RegistrationRequest{
			Email:        email,
			GivenName:    "Test",
			Surname:      "User",
			Business:     "Test Business",
			Phone:        "+61 400 000 000",
			License:      LicensePro.Name,
			Country:      "AU",
			Address:      "1 Test Street",
			BusinessType: "Retail",
			BusinessSect: "Food",
			Postcode:     "2000",
			Principle:    models.PrincipleFromEmail(email),
		},
	}
}

func (b *RequestBuilder) WithLicense(name string) *RequestBuilder {
	b.req.License = name
	return b
}

func (b *RequestBuilder) WithCountry(country string) *RequestBuilder {
	b.req.Country = country
	return b
}

func (b *RequestBuilder) WithPhone(phone string) *RequestBuilder {
	b.req.Phone = phone
	return b
}

func (b *RequestBuilder) WithState(state string) *RequestBuilder {
	b.req.State = state
	return b
}

func (b *RequestBuilder) Build() *models.RegistrationRequest {
	return b.req
}
