package validation

import "unicode/utf8"

// HTTP body limits
const (
	// MaxBodySize is the maximum allowed request body size (64 KB).
	// Storefront purchase payloads are well under this.
	MaxBodySize = 64 * 1024
)

// Column width limits. These mirror the users table and are counted in
// characters, not bytes.
const (
	MaxEmailLength        = 200
	MaxBusinessLength     = 200
	MaxPhoneLength        = 20
	MaxAddressLength      = 200
	MaxBusinessTypeLength = 50
	MaxBusinessSectLength = 50
	MaxPostcodeLength     = 10
)

// Country codes are ISO 3166-1 alpha-2.
const CountryCodeLength = 2

// WithinLength reports whether value fits in max characters.
func WithinLength(value string, max int) bool {
	return utf8.RuneCountInString(value) <= max
}
