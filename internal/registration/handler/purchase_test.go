package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPurchasePayloadToRegistrationRequest(t *testing.T) {
	payload := &PurchasePayload{
		PostData: map[string]string{
			"edd_email":        "billing@example.com",
			"edd_first":        "Ann",
			"edd_last":         "Lee",
			"ceddcf-field-1-1": "Acme",
			"ceddcf-field-2-1": "Retail\r\n",
			"ceddcf-field-3-1": "Food\n",
			"ceddcf-field-5-1": "+61 400 000 000",
			"card_address":     "1 Main St",
			"card_address_2":   "Unit 4",
			"card_city":        "Sydney",
			"card_state":       "NSW",
			"card_zip":         "2000",
			"billing_country":  "AU",
		},
		CartDetails: []CartItem{{Name: "Pro"}, {Name: "Addon"}},
	}

	req := payload.ToRegistrationRequest()

	assert.Equal(t, "billing@example.com", req.Email, "falls back to billing email")
	assert.Equal(t, "billing_example.com", req.Principle)
	assert.Equal(t, "Ann", req.GivenName)
	assert.Equal(t, "Lee", req.Surname)
	assert.Equal(t, "Acme", req.Business)
	assert.Equal(t, "Retail", req.BusinessType)
	assert.Equal(t, "Food", req.BusinessSect)
	assert.Equal(t, "+61 400 000 000", req.Phone)
	assert.Equal(t, "1 Main St, Unit 4, Sydney", req.Address)
	assert.Equal(t, "NSW", req.State)
	assert.Equal(t, "2000", req.Postcode)
	assert.Equal(t, "AU", req.Country)
	assert.Equal(t, "Pro", req.License, "first cart item wins")
}

func TestPurchasePayloadEmptyCart(t *testing.T) {
	req := (&PurchasePayload{}).ToRegistrationRequest()
	assert.Empty(t, req.License)
	assert.Empty(t, req.Email)
}
