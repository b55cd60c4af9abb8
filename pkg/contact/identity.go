package contact

import (
	"fmt"
	"io"
	"strings"
)

// ReadIdentity reads the name fields of a record.
//
// Only as many lines as needed are consumed: scanning stops as soon as both
// the first-name and last-name keys have been seen, so the full five-field
// decode is never performed. ok is false when the input ends before both
// keys appear.
func ReadIdentity(r io.Reader) (id Identity, ok bool, err error) {
	var haveFirst, haveLast bool

	err = forEachLine(r, func(line string) bool {
		key, value, found := splitLine(line)
		if !found {
			return true
		}

		switch {
		case strings.EqualFold(key, KeyFirstName):
			id.FirstName, haveFirst = value, true
		case strings.EqualFold(key, KeyLastName):
			id.LastName, haveLast = value, true
		}
		return !(haveFirst && haveLast)
	})
	if err != nil {
		return id, false, fmt.Errorf("contact: read identity: %w", err)
	}
	return id, haveFirst && haveLast, nil
}

// SameIdentity reports whether the stored identity id denotes contact c.
// Comparison is exact and case-sensitive on both names.
func SameIdentity(id Identity, c Contact) bool {
	return id.FirstName == c.FirstName && id.LastName == c.LastName
}
