package models

import "time"

// Fixed column values written on every registration.
const (
	StatusActive = "Active"
	UpdatedByAPI = "API"

	LanguageChinese = "CN"
	LanguageEnglish = "EN"
)

// Service rule defaults applied to every new customer.
const (
	ServiceRuleSequence     = 0
	ServiceRuleDescription  = "DEFAULT"
	ServiceRuleThresholdA   = 98.0
	ServiceRuleThresholdB   = 95.0
	ServiceRuleThresholdC   = 90.0
	ServiceRulePreference   = "Y"
	ServiceRulePriorityRank = 999999
)

// License is read-only reference data describing a purchasable plan.
type License struct {
	Name           string
	DurationDays   int
	CurrentVersion float64
	TrialCount     int
}

// Customer is one row of the users table.
type Customer struct {
	Email        string
	Name         string
	Business     string
	Phone        string
	CustomerID   int64
	Status       string
	Language     string
	CreatedAt    time.Time
	RenewalAt    time.Time
	UpdatedBy    string
	Address      string
	BusinessType string
	BusinessSect string
	Country      string
	Postcode     string
	State        string
}

// Subscription records one license purchase. Rows are only ever appended.
type Subscription struct {
	Email           string
	License         string
	StartAt         time.Time
	EndAt           time.Time
	TrialsRemaining int
	Status          string
	CurrentVersion  float64
}

// ServiceRule carries a customer's default service-level thresholds.
type ServiceRule struct {
	CustomerID   int64
	Sequence     int
	Description  string
	ThresholdA   float64
	ThresholdB   float64
	ThresholdC   float64
	Preference   string
	UpdatedBy    string
	UpdatedAt    time.Time
	PriorityRank int
}

// Path names the branch a registration took.
type Path string

const (
	PathNewCustomer Path = "new_customer"
	PathUpgrade     Path = "upgrade"
)

func (p Path) String() string {
	return string(p)
}

// Registration is the outcome of a successful registration.
type Registration struct {
	Path         Path
	CustomerID   int64
	Subscription Subscription
}

// NewCustomer builds the users row for req. The preferred language is Chinese
// for customers in China and English everywhere else.
func NewCustomer(req *RegistrationRequest, customerID int64, ts Timestamps) *Customer {
	language := LanguageEnglish
	if req.Country == "CN" {
		language = LanguageChinese
	}
	return &Customer{
		Email:        req.Email,
		Name:         req.DisplayName(),
		Business:     req.Business,
		Phone:        req.Phone,
		CustomerID:   customerID,
		Status:       StatusActive,
		Language:     language,
		CreatedAt:    ts.Now,
		RenewalAt:    ts.RenewalAt,
		UpdatedBy:    UpdatedByAPI,
		Address:      req.Address,
		BusinessType: req.BusinessType,
		BusinessSect: req.BusinessSect,
		Country:      req.Country,
		Postcode:     req.Postcode,
		State:        req.State,
	}
}

// NewSubscription builds the subscription row for req under license.
func NewSubscription(req *RegistrationRequest, license *License, ts Timestamps) *Subscription {
	return &Subscription{
		Email:           req.Email,
		License:         license.Name,
		StartAt:         ts.Now,
		EndAt:           ts.RenewalAt,
		TrialsRemaining: license.TrialCount,
		Status:          StatusActive,
		CurrentVersion:  license.CurrentVersion,
	}
}

// NewServiceRule builds the default service rule for a new customer.
func NewServiceRule(customerID int64, ts Timestamps) *ServiceRule {
	return &ServiceRule{
		CustomerID:   customerID,
		Sequence:     ServiceRuleSequence,
		Description:  ServiceRuleDescription,
		ThresholdA:   ServiceRuleThresholdA,
		ThresholdB:   ServiceRuleThresholdB,
		ThresholdC:   ServiceRuleThresholdC,
		Preference:   ServiceRulePreference,
		UpdatedBy:    UpdatedByAPI,
		UpdatedAt:    ts.Now,
		PriorityRank: ServiceRulePriorityRank,
	}
}
