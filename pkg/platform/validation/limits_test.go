package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

// LimitsSuite guards the boundary: max must pass and max+1 must fail.
type LimitsSuite struct {
	suite.Suite
}

func TestLimitsSuite(t *testing.T) {
	suite.Run(t, new(LimitsSuite))
}

func (s *LimitsSuite) TestWithinLength() {
	s.Run("passes when length equals max", func() {
		s.True(WithinLength(strings.Repeat("a", MaxPostcodeLength), MaxPostcodeLength))
	})

	s.Run("passes for empty string", func() {
		s.True(WithinLength("", MaxPhoneLength))
	})

	s.Run("fails when length exceeds max", func() {
		s.False(WithinLength(strings.Repeat("a", MaxPostcodeLength+1), MaxPostcodeLength))
	})

	s.Run("counts characters not bytes", func() {
		name := strings.Repeat("深", MaxBusinessTypeLength)
		s.Greater(len(name), MaxBusinessTypeLength)
		s.True(WithinLength(name, MaxBusinessTypeLength))
		s.False(WithinLength(name+"圳", MaxBusinessTypeLength))
	})
}
