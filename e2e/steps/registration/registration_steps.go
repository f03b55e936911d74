package registration

import (
	"context"
	"net/url"
	"strings"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Params() url.Values
	POSTQuery(path string, params url.Values) error
	POST(path string, body interface{}) error
}

// RegisterSteps registers registration step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &registrationSteps{tc: tc}

	ctx.Step(`^a valid registration for a new customer with license "([^"]*)"$`, steps.validRegistration)
	ctx.Step(`^the registration field "([^"]*)" is "([^"]*)"$`, steps.setField)
	ctx.Step(`^the registration field "([^"]*)" is removed$`, steps.removeField)
	ctx.Step(`^I submit the registration$`, steps.submit)
	ctx.Step(`^I validate the registration$`, steps.validate)
	ctx.Step(`^a storefront purchase of "([^"]*)" is received$`, steps.purchase)
}

type registrationSteps struct {
	tc    TestContext
	email string
}

func (s *registrationSteps) validRegistration(ctx context.Context, license string) error {
	s.email = "e2e-" + uuid.NewString() + "@example.com"
	p := s.tc.Params()
	p.Set("email", s.email)
	p.Set("givenName", "E2E")
	p.Set("surname", "Customer")
	p.Set("business", "E2E Trading")
	p.Set("phone", "+61 400 000 000")
	p.Set("license", license)
	p.Set("country", "AU")
	p.Set("address", "1 Test Street")
	p.Set("business_type", "Retail")
	p.Set("business_sect", "Food")
	p.Set("postcode", "2000")
	p.Set("principle", strings.ReplaceAll(s.email, "@", "_"))
	return nil
}

func (s *registrationSteps) setField(ctx context.Context, field, value string) error {
	s.tc.Params().Set(field, value)
	return nil
}

func (s *registrationSteps) removeField(ctx context.Context, field string) error {
	s.tc.Params().Del(field)
	return nil
}

func (s *registrationSteps) submit(ctx context.Context) error {
	return s.tc.POSTQuery("/api/createUser", s.tc.Params())
}

func (s *registrationSteps) validate(ctx context.Context) error {
	return s.tc.POSTQuery("/api/createUser/validate", s.tc.Params())
}

func (s *registrationSteps) purchase(ctx context.Context, license string) error {
	email := "e2e-" + uuid.NewString() + "@example.com"
	body := map[string]interface{}{
		"post_data": map[string]string{
			"edd_email":        email,
			"edd_first":        "Store",
			"edd_last":         "Buyer",
			"ceddcf-field-1-1": "Storefront Ltd",
			"ceddcf-field-2-1": "Retail\r\n",
			"ceddcf-field-3-1": "Food\r\n",
			"ceddcf-field-5-1": "+61 400 000 000",
			"card_address":     "1 Test Street",
			"card_address_2":   "Unit 2",
			"card_city":        "Sydney",
			"card_state":       "NSW",
			"card_zip":         "2000",
			"billing_country":  "AU",
		},
		"cart_details": []map[string]string{{"name": license}},
	}
	return s.tc.POST("/api/purchases", body)
}
