package sasl

import (
	"io"

	"github.com/meszmate/gosasl/gs2"
)

func init() {
	registerStatic(&Mechanism{
		Name:        MustMechname("SAML20"),
		Priority:    150,
		NewClient:   newSAML20Client,
		NewServer:   newSAML20Server,
		ClientFirst: true,
	})
}

// saml20Client implements SAML20: the client sends a GS2 header plus its
// IdP identifier, receives a redirect URL to complete a browser-based
// federation flow out of band, then acknowledges with a single "=" byte.
type saml20Client struct {
	step int
}

func newSAML20Client(sess *Session) (MechanismImpl, error) {
	return &saml20Client{}, nil
}

func (c *saml20Client) Step(sess *Session, input []byte, out io.Writer) (bool, error) {
	switch c.step {
	case 0:
		authzid, _ := GetProperty(sess, AuthzId)
		idp, err := GetOrCallback(sess, SAML20IDPIdentifier)
		if err != nil {
			return false, err
		}
		header := gs2.Header{Authzid: authzid}.Encode()
		if _, err := out.Write([]byte(header + idp)); err != nil {
			return false, err
		}
		c.step = 1
		return true, nil
	case 1:
		redirectURL := string(input)
		SetProperty(sess, SAML20RedirectUrl, redirectURL)
		if _, err := out.Write([]byte{'='}); err != nil {
			return false, err
		}
		c.step = 2
		return false, nil
	default:
		return false, MechanismProtocolError("SAML20: step called past completion")
	}
}

type saml20Server struct {
	step int
}

func newSAML20Server(sess *Session) (MechanismImpl, error) {
	return &saml20Server{}, nil
}

func (s *saml20Server) Step(sess *Session, input []byte, out io.Writer) (bool, error) {
	switch s.step {
	case 0:
		header, n, err := gs2.Parse(string(input))
		if err != nil {
			return false, MechanismParseError("%v", err)
		}
		if header.Authzid != "" {
			SetProperty(sess, AuthzId, header.Authzid)
		}
		SetProperty(sess, SAML20IDPIdentifier, string(input)[n:])

		redirectURL, err := GetOrCallback(sess, SAML20RedirectUrl)
		if err != nil {
			return false, err
		}
		if _, err := out.Write([]byte(redirectURL)); err != nil {
			return false, err
		}
		s.step = 1
		return true, nil
	case 1:
		if string(input) != "=" {
			return false, MechanismParseError("SAML20: expected a single '=' acknowledgement byte")
		}
		if err := sess.Validate(ValidationSAML20); err != nil {
			return false, err
		}
		return false, nil
	default:
		return false, MechanismProtocolError("SAML20: step called past completion")
	}
}
