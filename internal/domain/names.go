package domain

import (
	"regexp"
	"strings"
)

// NameProfile selects which person-name pattern a form validates against.
type NameProfile int

const (
	// NameProfileBasic accepts Latin letters (accented included) separated
	// by single interior spaces.
	NameProfileBasic NameProfile = iota
	// NameProfileExtended additionally accepts apostrophes and hyphens
	// inside a name token (O'Neil, Pérez-Soto).
	NameProfileExtended
)

var (
	nameBasicRegexp    = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ]+(?: [A-Za-zÀ-ÖØ-öø-ÿ]+)*$`)
	nameExtendedRegexp = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ]+(?:['-][A-Za-zÀ-ÖØ-öø-ÿ]+)*(?: [A-Za-zÀ-ÖØ-öø-ÿ]+(?:['-][A-Za-zÀ-ÖØ-öø-ÿ]+)*)*$`)
)

// ValidName reports whether raw matches the profile's pattern. The empty
// string never matches; required-ness is the caller's concern.
func (p NameProfile) ValidName(raw string) bool {
	if p == NameProfileExtended {
		return nameExtendedRegexp.MatchString(raw)
	}
	return nameBasicRegexp.MatchString(raw)
}

// FirstToken returns the substring of s before its first space, used for
// greeting display.
func FirstToken(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

// FormatAttendees builds the human-readable join of the non-empty parts'
// first tokens, in the fixed order mother, father, first child, second
// child. Parts are joined with ", " except the last separator, rendered
// as " y ". A single part is returned bare; no parts yields "".
func FormatAttendees(mother, father, firstChild, secondChild string) string {
	var tokens []string
	for _, part := range []string{mother, father, firstChild, secondChild} {
		if part != "" {
			tokens = append(tokens, FirstToken(part))
		}
	}
	switch len(tokens) {
	case 0:
		return ""
	case 1:
		return tokens[0]
	}
	return strings.Join(tokens[:len(tokens)-1], ", ") + " y " + tokens[len(tokens)-1]
}
