package sasl

import "fmt"

// Mechname is a validated SASL mechanism name: 1 to 20 bytes drawn from
// [A-Z0-9-_]. It is compared byte-exactly and never normalized.
type Mechname struct {
	b []byte
}

// NewMechname validates b and returns an immutable Mechname. Construction
// is the only validation point; code downstream of a valid Mechname may
// assume it satisfies the length and character-set invariants.
func NewMechname(b []byte) (*Mechname, error) {
	if len(b) == 0 {
		return nil, ErrMechnameTooShort
	}
	if len(b) > 20 {
		return nil, ErrMechnameTooLong
	}
	for _, c := range b {
		if !validMechnameByte(c) {
			return nil, &MechnameInvalidCharError{Byte: c}
		}
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return &Mechname{b: cp}, nil
}

// MustMechname is NewMechname for compile-time-literal mechanism names
// (table entries, static registrations). It panics if name is invalid; the
// caller bears the invariant, matching the Rust original's
// const_new_unchecked.
func MustMechname(name string) *Mechname {
	m, err := NewMechname([]byte(name))
	if err != nil {
		panic(fmt.Sprintf("sasl: invalid mechanism name %q: %v", name, err))
	}
	return m
}

func validMechnameByte(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	default:
		return false
	}
}

// String returns the mechanism name as text.
func (m *Mechname) String() string {
	if m == nil {
		return ""
	}
	return string(m.b)
}

// Bytes returns the raw wire representation of the mechanism name. Callers
// must not mutate the returned slice.
func (m *Mechname) Bytes() []byte {
	return m.b
}

// Equal reports byte-exact equality, per spec.
func (m *Mechname) Equal(other *Mechname) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.b) != len(other.b) {
		return false
	}
	for i := range m.b {
		if m.b[i] != other.b[i] {
			return false
		}
	}
	return true
}
