package sasl

import (
	"io"

	"github.com/meszmate/gosasl/gs2"
)

func init() {
	registerStatic(&Mechanism{
		Name:        MustMechname("OPENID20"),
		Priority:    150,
		NewClient:   newOpenID20Client,
		NewServer:   newOpenID20Server,
		ClientFirst: true,
	})
}

// openID20Client implements OPENID20: same two-step shape as SAML20, a GS2
// header and authzid followed by a redirect-URL/acknowledgement round.
type openID20Client struct {
	step int
}

func newOpenID20Client(sess *Session) (MechanismImpl, error) {
	return &openID20Client{}, nil
}

func (c *openID20Client) Step(sess *Session, input []byte, out io.Writer) (bool, error) {
	switch c.step {
	case 0:
		authzid, _ := GetProperty(sess, AuthzId)
		header := gs2.Header{Authzid: authzid}.Encode()
		if _, err := out.Write([]byte(header)); err != nil {
			return false, err
		}
		c.step = 1
		return true, nil
	case 1:
		SetProperty(sess, OpenID20RedirectUrl, string(input))
		if _, err := out.Write([]byte{'='}); err != nil {
			return false, err
		}
		c.step = 2
		return false, nil
	default:
		return false, MechanismProtocolError("OPENID20: step called past completion")
	}
}

type openID20Server struct {
	step int
}

func newOpenID20Server(sess *Session) (MechanismImpl, error) {
	return &openID20Server{}, nil
}

func (s *openID20Server) Step(sess *Session, input []byte, out io.Writer) (bool, error) {
	switch s.step {
	case 0:
		header, _, err := gs2.Parse(string(input))
		if err != nil {
			return false, MechanismParseError("%v", err)
		}
		if header.Authzid != "" {
			SetProperty(sess, AuthzId, header.Authzid)
		}
		redirectURL, err := GetOrCallback(sess, OpenID20RedirectUrl)
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
			return false, MechanismParseError("OPENID20: expected a single '=' acknowledgement byte")
		}
		if err := sess.Validate(ValidationOpenID20); err != nil {
			return false, err
		}
		return false, nil
	default:
		return false, MechanismProtocolError("OPENID20: step called past completion")
	}
}
