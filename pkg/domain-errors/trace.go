package domainerrors

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// Trace renders err for operators: the full message chain followed by the call
// trail recorded closest to where the fault originated. Errors that never passed
// through github.com/pkg/errors render as their message alone.
func Trace(err error) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(chain(err))

	var origin pkgerrors.StackTrace
	for e := err; e != nil; e = errors.Unwrap(e) {
		if st, ok := e.(stackTracer); ok {
			origin = st.StackTrace()
		}
	}
	for i, frame := range origin {
		fmt.Fprintf(&b, "\n  #%d %n (%v)", i, frame, frame)
	}
	return b.String()
}

// chain joins distinct messages along the unwrap chain, outermost first.
// Layers that merely repeat their cause are collapsed.
func chain(err error) string {
	var parts []string
	prev := ""
	for e := err; e != nil; e = errors.Unwrap(e) {
		msg := e.Error()
		if msg == prev {
			continue
		}
		if prev != "" && strings.HasSuffix(prev, msg) {
			prev = msg
			continue
		}
		parts = append(parts, msg)
		prev = msg
	}
	return strings.Join(parts, ": ")
}
