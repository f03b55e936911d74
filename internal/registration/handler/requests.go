package handler

import (
	"mime"
	"net/http"
	"net/url"

	"onboarding/internal/registration/models"
)

func requestFromQuery(q url.Values) *models.RegistrationRequest {
	return &models.RegistrationRequest{
		Email:        q.Get("email"),
		GivenName:    q.Get("givenName"),
		Surname:      q.Get("surname"),
		Business:     q.Get("business"),
		Phone:        q.Get("phone"),
		License:      q.Get("license"),
		Country:      q.Get("country"),
		Address:      q.Get("address"),
		BusinessType: q.Get("business_type"),
		BusinessSect: q.Get("business_sect"),
		Postcode:     q.Get("postcode"),
		Principle:    q.Get("principle"),
		State:        q.Get("state"),
	}
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}
