package canon

import (
	"fmt"
	"strconv"
	"strings"
)

// AccessLevel is the four-tier distribution classification applied to every
// document in the corpus.
type AccessLevel int

const (
	AccessPublic       AccessLevel = 1 // freely distributable
	AccessInternal     AccessLevel = 2 // employees and contractors
	AccessRestricted   AccessLevel = 3 // named teams only
	AccessConfidential AccessLevel = 4 // explicit grant required
)

// DefaultAccessLevel applies to documents without an explicit marker.
const DefaultAccessLevel = AccessInternal

func (l AccessLevel) String() string {
	switch l {
	case AccessPublic:
		return "Public"
	case AccessInternal:
		return "Internal"
	case AccessRestricted:
		return "Restricted"
	case AccessConfidential:
		return "Confidential"
	}
	return fmt.Sprintf("AccessLevel(%d)", int(l))
}

// Valid reports whether l is one of the four defined tiers.
func (l AccessLevel) Valid() bool {
	return l >= AccessPublic && l <= AccessConfidential
}

// ParseAccessLevel accepts either the tier number ("3") or the tier name in
// any case ("restricted").
func ParseAccessLevel(s string) (AccessLevel, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		l := AccessLevel(n)
		if !l.Valid() {
			return 0, fmt.Errorf("access level %d out of range 1-4", n)
		}
		return l, nil
	}

	switch strings.ToLower(s) {
	case "public":
		return AccessPublic, nil
	case "internal":
		return AccessInternal, nil
	case "restricted":
		return AccessRestricted, nil
	case "confidential":
		return AccessConfidential, nil
	}
	return 0, fmt.Errorf("unknown access level %q", s)
}
