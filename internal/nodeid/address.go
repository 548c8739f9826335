// internal/nodeid/address.go
package nodeid

import (
	"sort"
	"strings"
)

// String serializes the Address into its canonical `type[name]` form.
func (a Address) String() string {
	if a.IsZero() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(a.Type)
	sb.WriteRune('[')
	sb.WriteString(a.Name)
	sb.WriteRune(']')
	return sb.String()
}

// Less orders addresses by type, then by name.
func (a Address) Less(other Address) bool {
	if a.Type != other.Type {
		return a.Type < other.Type
	}
	return a.Name < other.Name
}

// Sort orders addrs in place.
func Sort(addrs []Address) {
	sort.Slice(addrs, func(i, j int) bool { return addrs[i].Less(addrs[j]) })
}
