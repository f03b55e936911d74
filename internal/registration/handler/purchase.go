package handler

import (
	"strings"

	"onboarding/internal/registration/models"
)

// Storefront checkout field keys.
const (
	fieldMicrosoftEmail = "ceddcf-field-8-1"
	fieldBusiness       = "ceddcf-field-1-1"
	fieldBusinessType   = "ceddcf-field-2-1"
	fieldBusinessSect   = "ceddcf-field-3-1"
	fieldPhone          = "ceddcf-field-5-1"
)

// PurchasePayload is the completed-purchase notification sent by the storefront.
type PurchasePayload struct {
	PostData    map[string]string `json:"post_data"`
	CartDetails []CartItem        `json:"cart_details"`
}

// CartItem is one line of a storefront cart.
type CartItem struct {
	Name string `json:"name"`
}

// ToRegistrationRequest maps the checkout form onto a registration request.
// The Microsoft account email is preferred over the billing email when given.
func (p *PurchasePayload) ToRegistrationRequest() *models.RegistrationRequest {
	get := func(key string) string {
		return p.PostData[key]
	}

	email := get(fieldMicrosoftEmail)
	if email == "" {
		email = get("edd_email")
	}

	var license string
	if len(p.CartDetails) > 0 {
		license = p.CartDetails[0].Name
	}

	return &models.RegistrationRequest{
		Email:        email,
		GivenName:    get("edd_first"),
		Surname:      get("edd_last"),
		Business:     get(fieldBusiness),
		Phone:        get(fieldPhone),
		License:      license,
		Country:      get("billing_country"),
		Address:      get("card_address") + ", " + get("card_address_2") + ", " + get("card_city"),
		BusinessType: strings.TrimRight(get(fieldBusinessType), "\r\n"),
		BusinessSect: strings.TrimRight(get(fieldBusinessSect), "\r\n"),
		Postcode:     get("card_zip"),
		Principle:    models.PrincipleFromEmail(email),
		State:        get("card_state"),
	}
}
