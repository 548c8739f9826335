// internal/nodeid/types.go
package nodeid

// Address is the identity of one declared resource: its type and its name,
// unique within that type.
type Address struct {
	Type string
	Name string
}

// New returns the address of the resource name of type typ.
func New(typ, name string) Address {
	return Address{Type: typ, Name: name}
}

// IsZero reports whether the address is empty.
func (a Address) IsZero() bool {
	return a.Type == "" && a.Name == ""
}
