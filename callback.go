package sasl

// Validation is a distinct namespace of tags signalling that a mechanism
// has assembled enough material for a policy decision. It is passed to the
// Callback separately from properties, per spec §3.
type Validation int

const (
	ValidationSimple Validation = iota
	ValidationExternal
	ValidationAnonymous
	ValidationGssapi
	ValidationSecurID
	ValidationSAML20
	ValidationOpenID20
)

var validationNames = map[Validation]string{
	ValidationSimple:    "Simple",
	ValidationExternal:  "External",
	ValidationAnonymous: "Anonymous",
	ValidationGssapi:    "Gssapi",
	ValidationSecurID:   "SecurID",
	ValidationSAML20:    "SAML20",
	ValidationOpenID20:  "OpenID20",
}

func (v Validation) String() string {
	if name, ok := validationNames[v]; ok {
		return name
	}
	return "Validation(unknown)"
}

// Callback is the capability an application implements to supply
// properties and render policy decisions. Mechanisms never see a Callback
// directly; they call GetOrCallback/Session.Validate, which dispatch to it
// internally.
//
// A Callback is fallible and reentrant-safe: Provide may call SetProperty
// for any property on the given session before returning. It must not
// retain the session beyond its own return — property stores and
// mechanism state are invalidated once the originating Step call returns.
type Callback interface {
	// Provide is invoked on a property cache miss for identifier id. It
	// should call SetProperty (via the package-level generic helper) for
	// id, then return nil. Returning an error aborts the Step that
	// triggered the lookup.
	Provide(s *Session, id PropertyID) error

	// Validate renders a policy decision for validation tag v. Returning
	// nil accepts the exchange; returning ErrAuthenticationFailure (or an
	// error satisfying errors.Is against it) rejects it. Returning
	// NoValidateError indicates this Callback does not implement v.
	Validate(s *Session, v Validation) error
}
