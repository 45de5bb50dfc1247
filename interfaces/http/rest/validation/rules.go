// Package validation applies ordered per-field rule chains to query
// strings. Each rule is a pure predicate with a fixed message; evaluation
// stops at the first failure, which is reported as an invalid-argument
// error.
package validation

import (
	"net/url"
	"regexp"
	"strconv"
	"time"

	apperrors "ntlango-api/pkg/errors"
)

// Check is a single pure predicate over a raw query-string value
type Check struct {
	Valid   func(value string) bool
	Message string
}

// Rule is an ordered chain of checks for one query parameter. Absent
// parameters pass; checks run only when a value is supplied.
type Rule struct {
	Field  string
	Checks []Check
}

// Apply evaluates the rules in order against the raw query parameters and
// returns an invalid-argument error for the first failing check.
func Apply(values url.Values, rules []Rule) error {
	for _, rule := range rules {
		if !values.Has(rule.Field) {
			continue
		}
		value := values.Get(rule.Field)
		for _, check := range rule.Checks {
			if !check.Valid(value) {
				return apperrors.NewInvalidArgumentError(check.Message)
			}
		}
	}
	return nil
}

// NotEmpty fails on an empty value
func NotEmpty(message string) Check {
	return Check{
		Valid:   func(v string) bool { return v != "" },
		Message: message,
	}
}

var iso8601Layouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
}

// ISO8601 accepts plain dates and full timestamps
func ISO8601(message string) Check {
	return Check{
		Valid: func(v string) bool {
			for _, layout := range iso8601Layouts {
				if _, err := time.Parse(layout, v); err == nil {
					return true
				}
			}
			return false
		},
		Message: message,
	}
}

// OneOf constrains the value to a fixed enumeration
func OneOf(values []string, message string) Check {
	return Check{
		Valid: func(v string) bool {
			for _, value := range values {
				if v == value {
					return true
				}
			}
			return false
		},
		Message: message,
	}
}

// NonNegativeInt accepts integers greater than or equal to zero
func NonNegativeInt(message string) Check {
	return Check{
		Valid: func(v string) bool {
			n, err := strconv.Atoi(v)
			return err == nil && n >= 0
		},
		Message: message,
	}
}

// Matches constrains the value to a regular expression
func Matches(pattern *regexp.Regexp, message string) Check {
	return Check{
		Valid:   pattern.MatchString,
		Message: message,
	}
}
