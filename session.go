package sasl

import (
	"bytes"
	"io"

	"github.com/meszmate/gosasl/internal/b64sink"
)

// Session is one live authentication exchange: a reference to the owning
// SASL context (for its Callback and Config), the selected Mechname, the
// Role, the mechanism's private state (held opaquely behind MechanismImpl),
// and a PropertyStore. Created by SASL.ClientStart/ServerStart; mutated
// only by Step/Step64 and property writes.
type Session struct {
	ctx   *SASL
	mech  *Mechanism
	role  Role
	name  *Mechname
	impl  MechanismImpl
	props *Store

	started bool
	sealed  bool
}

// Name returns the mechanism this session negotiated.
func (s *Session) Name() *Mechname { return s.name }

// Role reports whether this session plays the client or server side.
func (s *Session) Role() Role { return s.role }

// Context returns the owning SASL context.
func (s *Session) Context() *SASL { return s.ctx }

// Step advances the exchange by one round trip. input is the most recent
// message received from the peer, or nil for the very first call of a
// mechanism whose side speaks first. Emitted bytes, if any, are written to
// out. more reports whether another round-trip is required.
//
// Once a session returns more == false with a nil error (Done) or any
// non-nil error (Failed), it is sealed: every subsequent Step call returns
// ErrCalledTooManyTimes without touching the mechanism.
func (s *Session) Step(input []byte, out io.Writer) (more bool, err error) {
	if s.sealed {
		return false, ErrCalledTooManyTimes
	}
	if input == nil && !(!s.started && s.speaksFirst()) {
		return false, ErrInputDataRequired
	}
	s.started = true

	more, err = s.impl.Step(s, input, out)
	if err != nil {
		s.sealed = true
		s.finish()
		if _, ok := err.(*MechanismError); !ok {
			err = &MechanismError{Kind: KindOutcome, Err: err}
		}
		return false, err
	}
	if !more {
		s.sealed = true
		s.finish()
	}
	return more, nil
}

// speaksFirst reports whether this session's side emits its opening message
// without having seen any peer input.
func (s *Session) speaksFirst() bool {
	if s.role == RoleClient {
		return s.mech.ClientFirst
	}
	return !s.mech.ClientFirst
}

// Step64 is Step with base64 framing: input is decoded with the standard
// padded alphabet before being handed to the mechanism, and the
// mechanism's output is base64-encoded before being written to out.
// Decode failures surface as *Base64Error.
func (s *Session) Step64(input []byte, out io.Writer) (more bool, err error) {
	decoded, derr := b64sink.Decode(input)
	if derr != nil {
		return false, &Base64Error{Err: derr}
	}

	var buf bytes.Buffer
	more, err = s.Step(decoded, &buf)
	if buf.Len() > 0 {
		if werr := b64sink.Encode(out, buf.Bytes()); werr != nil && err == nil {
			return more, werr
		}
	}
	return more, err
}

// Validate invokes the installed Callback's Validate method with tag v.
// Mechanisms call this once they have assembled enough material for a
// policy decision (spec §4.3).
func (s *Session) Validate(v Validation) error {
	if s.ctx.callback == nil {
		return &NoValidateError{Validation: v}
	}
	return s.ctx.callback.Validate(s, v)
}

func (s *Session) finish() {
	if f, ok := s.impl.(Finisher); ok {
		f.Finish()
	}
}

// Close releases the mechanism's resources without requiring the session
// to reach a terminal Step outcome first. Safe to call more than once.
func (s *Session) Close() error {
	if !s.sealed {
		s.sealed = true
		s.finish()
	}
	return nil
}

// GetProperty reads the value stored under p, if any.
func GetProperty[T any](s *Session, p Property[T]) (T, bool) {
	return StoreGet(s.props, p)
}

// SetProperty writes value under p.
func SetProperty[T any](s *Session, p Property[T], value T) {
	StoreSet(s.props, p, value)
}

// GetOrCallback implements spec §4.3's get_or_callback: return the stored
// value if present; otherwise invoke the Callback and re-read. Diverging
// slightly from a literal reading of §4.3 step 4 to match the error
// taxonomy of §7 (see DESIGN.md): an absent Callback fails fast with
// NoCallbackError, while a Callback that ran but left the value unset
// fails with NoPropertyError.
func GetOrCallback[T any](s *Session, p Property[T]) (T, error) {
	if v, ok := GetProperty(s, p); ok {
		return v, nil
	}
	var zero T
	if s.ctx.callback == nil {
		return zero, &NoCallbackError{Property: p.id}
	}
	if err := s.ctx.callback.Provide(s, p.id); err != nil {
		return zero, err
	}
	if v, ok := GetProperty(s, p); ok {
		return v, nil
	}
	return zero, &NoPropertyError{Property: p.id}
}
