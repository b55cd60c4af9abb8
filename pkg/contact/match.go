package contact

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher reports whether a contact satisfies a search query.
type Matcher func(c Contact) bool

// MatchAll accepts every contact.
func MatchAll(Contact) bool { return true }

// MatchSubstring matches contacts whose first name, last name or phone
// contains query, ignoring case. An empty query matches everything.
func MatchSubstring(query string) Matcher {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return MatchAll
	}
	return func(c Contact) bool {
		return anySearchField(c, func(field string) bool {
			return strings.Contains(field, q)
		})
	}
}

// MatchGlob matches contacts whose first name, last name or phone matches
// pattern as a whole, ignoring case. "*" and "?" are wildcards. An empty
// pattern matches everything.
func MatchGlob(pattern string) (Matcher, error) {
	p := strings.ToLower(strings.TrimSpace(pattern))
	if p == "" {
		return MatchAll, nil
	}
	g, err := glob.Compile(p)
	if err != nil {
		return nil, fmt.Errorf("contact: invalid pattern %q: %w", pattern, err)
	}
	return func(c Contact) bool {
		return anySearchField(c, g.Match)
	}, nil
}

func anySearchField(c Contact, match func(string) bool) bool {
	for _, field := range [...]string{c.FirstName, c.LastName, c.Phone} {
		if match(strings.ToLower(field)) {
			return true
		}
	}
	return false
}
