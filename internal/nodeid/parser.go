// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

// typeRegex matches a resource type such as `file` or `tp::conf`.
var typeRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*(::[a-z][a-z0-9_]*)*$`)

// ValidType reports whether typ is a well-formed resource type.
func ValidType(typ string) bool {
	return typeRegex.MatchString(typ)
}

// Parse creates an Address by parsing its canonical string representation.
// The type is matched case-insensitively and normalized to lowercase.
func Parse(rawID string) (*Address, error) {
	if rawID == "" {
		return nil, fmt.Errorf("identifier cannot be empty")
	}

	open := strings.IndexRune(rawID, '[')
	if open < 0 || !strings.HasSuffix(rawID, "]") {
		return nil, fmt.Errorf("invalid resource address %q: expected type[name]", rawID)
	}

	typ := strings.ToLower(strings.TrimSpace(rawID[:open]))
	if !ValidType(typ) {
		return nil, fmt.Errorf("invalid resource type %q", rawID[:open])
	}

	name := unquote(strings.TrimSpace(rawID[open+1 : len(rawID)-1]))
	if name == "" {
		return nil, fmt.Errorf("resource address %q has an empty name", rawID)
	}

	return &Address{Type: typ, Name: name}, nil
}

// ParseAll parses every entry of rawIDs, stopping at the first error.
func ParseAll(rawIDs []string) ([]Address, error) {
	out := make([]Address, 0, len(rawIDs))
	for _, raw := range rawIDs {
		addr, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, *addr)
	}
	return out, nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '\'' || first == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
