package domainerrors

import (
	"errors"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite covers the error primitives every layer relies on to
// classify failures into client and server outcomes.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorMessage() {
	s.Run("message wins over code", func() {
		err := &Error{Code: CodeValidation, Message: "Invalid email address"}
		s.Equal("Invalid email address", err.Error())
	})

	s.Run("falls back to code", func() {
		err := &Error{Code: CodeUnavailable}
		s.Equal("unavailable", err.Error())
	})
}

func (s *DomainErrorsSuite) TestIsMatchesByCode() {
	s.True(errors.Is(New(CodeValidation, "a"), &Error{Code: CodeValidation}))
	s.False(errors.Is(New(CodeValidation, "a"), &Error{Code: CodeInternal}))
	s.False((&Error{Code: CodeNotFound}).Is(errors.New("not_found")))

	inner := New(CodeNotFound, "license row missing")
	outer := &Error{Code: CodeInternal, Message: "outer", Err: inner}
	s.True(errors.Is(outer, &Error{Code: CodeNotFound}))
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("keeps inner domain code", func() {
		wrapped := Wrap(New(CodeValidation, "Invalid phone number"), CodeInternal, "Invalid phone number")
		s.Equal(CodeValidation, CodeOf(wrapped))
	})

	s.Run("applies code to plain errors", func() {
		root := errors.New("connection refused")
		wrapped := Wrap(root, CodeUnavailable, "could not connect")
		s.True(HasCode(wrapped, CodeUnavailable))
		s.ErrorIs(wrapped, root)
	})
}

func (s *DomainErrorsSuite) TestCodeOf() {
	s.Equal(CodeInternal, CodeOf(errors.New("plain")))
	s.Equal(CodeConflict, CodeOf(New(CodeConflict, "dup")))
	s.False(HasCode(nil, CodeInternal))
}

func (s *DomainErrorsSuite) TestTrace() {
	s.Run("nil renders empty", func() {
		s.Empty(Trace(nil))
	})

	s.Run("plain error renders its message only", func() {
		s.Equal("boom", Trace(errors.New("boom")))
	})

	s.Run("includes message chain and origin frames", func() {
		root := errors.New("connection reset by peer")
		stored := pkgerrors.Wrap(root, "find license")
		err := Wrap(stored, CodeInternal, "failed to read license")

		out := Trace(err)
		lines := strings.Split(out, "\n")
		s.Equal("failed to read license: find license: connection reset by peer", lines[0])
		s.Greater(len(lines), 1)
		s.Contains(out, "#0 ")
		s.Contains(out, "domain-errors_test.go")
	})
}
