package typegen

import (
	"strings"

	"github.com/teranos/shapeshare/errors"
)

// Policy decides what the Generator does when a backend reports a
// capability it does not implement.
type Policy int

const (
	// PolicyFail aborts the run with the error
	PolicyFail Policy = iota
	// PolicyWarn logs a warning and skips the definition
	PolicyWarn
	// PolicySkip skips the definition silently
	PolicySkip
)

func (p Policy) String() string {
	switch p {
	case PolicyWarn:
		return "warn"
	case PolicySkip:
		return "skip"
	default:
		return "fail"
	}
}

// ParsePolicy parses "fail", "warn" or "skip".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fail", "":
		return PolicyFail, nil
	case "warn":
		return PolicyWarn, nil
	case "skip":
		return PolicySkip, nil
	}
	return PolicyFail, errors.WithHint(
		errors.NewInvalidConfigError("unknown policy %q", s),
		"valid policies: fail, warn, skip",
	)
}
