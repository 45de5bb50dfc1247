// Package preprocess normalizes raw query strings into typed filter and
// projection structures consumed by the event repository.
package preprocess

import (
	"net/url"
	"strings"

	"ntlango-api/application/ports"
)

// set-valued event fields whose query values are comma-separated id lists
var setFields = map[string]struct{}{
	"organizers": {},
	"rSVPs":      {},
}

// ReadEvents splits the query string of a list-events request into a filter
// set and a projection list. `projections` is split on commas; `organizers`
// and `rSVPs` become set-membership filters; every other parameter passes
// through as an equality filter. Absent or empty parameters simply produce
// absent filters; preprocessing never fails.
func ReadEvents(query url.Values) (ports.EventFilters, []string) {
	filters := ports.NewEventFilters()
	var projections []string

	for field, values := range query {
		if len(values) == 0 || values[0] == "" {
			continue
		}
		value := values[0]

		switch {
		case field == "projections":
			projections = SplitList(value)
		case isSetField(field):
			filters.MemberOf[field] = SplitList(value)
		default:
			filters.Equals[field] = value
		}
	}

	return filters, projections
}

// Projections extracts only the projection list from a query string
func Projections(query url.Values) []string {
	return SplitList(query.Get("projections"))
}

// SplitList splits a comma-separated parameter into its tokens; an empty
// value yields nil.
func SplitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

func isSetField(field string) bool {
	_, ok := setFields[field]
	return ok
}
