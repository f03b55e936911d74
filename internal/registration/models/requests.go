package models

import "strings"

// RegistrationRequest is the set of fields a caller submits to register.
// Surname and State are optional; every other field is required.
type RegistrationRequest struct {
	Email        string `json:"email"`
	GivenName    string `json:"givenName"`
	Surname      string `json:"surname"`
	Business     string `json:"business"`
	Phone        string `json:"phone"`
	License      string `json:"license"`
	Country      string `json:"country"`
	Address      string `json:"address"`
	BusinessType string `json:"business_type"`
	BusinessSect string `json:"business_sect"`
	Postcode     string `json:"postcode"`
	Principle    string `json:"principle"`
	State        string `json:"state"`
}

// DisplayName is the given name, followed by the surname when one was given.
func (r *RegistrationRequest) DisplayName() string {
	if r.Surname == "" {
		return r.GivenName
	}
	return r.GivenName + " " + r.Surname
}

// RequiredFields lists the required wire names paired with their values, in
// submission order.
func (r *RegistrationRequest) RequiredFields() []Field {
	return []Field{
		{Name: "email", Value: r.Email},
		{Name: "givenName", Value: r.GivenName},
		{Name: "business", Value: r.Business},
		{Name: "phone", Value: r.Phone},
		{Name: "license", Value: r.License},
		{Name: "country", Value: r.Country},
		{Name: "address", Value: r.Address},
		{Name: "business_type", Value: r.BusinessType},
		{Name: "business_sect", Value: r.BusinessSect},
		{Name: "postcode", Value: r.Postcode},
		{Name: "principle", Value: r.Principle},
	}
}

// Field is a named request value.
type Field struct {
	Name  string
	Value string
}

// Merge fills every empty field of r from other. Values already set in r win.
func (r *RegistrationRequest) Merge(other *RegistrationRequest) {
	if other == nil {
		return
	}
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&r.Email, other.Email)
	fill(&r.GivenName, other.GivenName)
	fill(&r.Surname, other.Surname)
	fill(&r.Business, other.Business)
	fill(&r.Phone, other.Phone)
	fill(&r.License, other.License)
	fill(&r.Country, other.Country)
	fill(&r.Address, other.Address)
	fill(&r.BusinessType, other.BusinessType)
	fill(&r.BusinessSect, other.BusinessSect)
	fill(&r.Postcode, other.Postcode)
	fill(&r.Principle, other.Principle)
	fill(&r.State, other.State)
}

// PrincipleFromEmail derives the directory principal name used by storefront
// purchases: the email with its '@' replaced by '_'.
func PrincipleFromEmail(email string) string {
	return strings.ReplaceAll(email, "@", "_")
}
