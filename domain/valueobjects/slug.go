package valueobjects

import (
	"fmt"
	"strings"
	"unicode"
)

// Slug is the URL-safe identifier of an event, derived deterministically
// from its title at creation time. It is immutable once created.
type Slug string

// NewSlugFromTitle derives a slug from an event title: lowercase the title,
// collapse every run of non-alphanumeric characters into a single hyphen and
// trim leading/trailing hyphens.
func NewSlugFromTitle(title string) (Slug, error) {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}

	s := strings.TrimRight(b.String(), "-")
	if s == "" {
		return "", fmt.Errorf("cannot derive slug from title %q", title)
	}
	return Slug(s), nil
}

// ParseSlug validates an externally supplied slug (e.g. a path parameter).
func ParseSlug(value string) (Slug, error) {
	if value == "" {
		return "", fmt.Errorf("slug cannot be empty")
	}
	for _, r := range value {
		if !unicode.IsLower(r) && !unicode.IsDigit(r) && r != '-' {
			return "", fmt.Errorf("invalid slug %q", value)
		}
	}
	return Slug(value), nil
}

func (s Slug) String() string {
	return string(s)
}

// IsEmpty reports whether the slug carries no value
func (s Slug) IsEmpty() bool {
	return s == ""
}
