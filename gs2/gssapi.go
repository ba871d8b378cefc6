package gs2

import (
	"errors"
	"io"
)

// ErrGSSAPIUnavailable is returned by GSSAPIMechanism.Step: a genuine
// GSSAPI/Kerberos security context negotiation needs a platform GSS-API
// binding this module does not provide.
var ErrGSSAPIUnavailable = errors.New("gs2: GSSAPI mechanism requires an external GSS-API implementation")

// GSSAPIMechanism is a placeholder for the GS2-KRB5/GSSAPI mechanism
// family. It satisfies the shape a real implementation would (constructed
// per session, stepped with peer input), but every Step call fails
// immediately; wiring a real one means supplying a SSPI/GSS-API backed
// implementation of this same shape.
type GSSAPIMechanism struct{}

// Step always fails with ErrGSSAPIUnavailable.
func (GSSAPIMechanism) Step(input []byte, out io.Writer) (more bool, err error) {
	return false, ErrGSSAPIUnavailable
}
