package sasl

import (
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

func init() {
	registerStatic(&Mechanism{
		Name:        MustMechname("CRAM-MD5"),
		Priority:    250,
		NewClient:   newCramMD5Client,
		NewServer:   newCramMD5Server,
		ClientFirst: false,
	})
}

// cramMD5Client implements CRAM-MD5 (RFC 2195): the server issues a
// challenge string, the client replies with "authid hexdigest" where
// hexdigest is HMAC-MD5(password, challenge) in lowercase hex.
type cramMD5Client struct {
	done bool
}

func newCramMD5Client(sess *Session) (MechanismImpl, error) {
	return &cramMD5Client{}, nil
}

func (c *cramMD5Client) Step(sess *Session, input []byte, out io.Writer) (bool, error) {
	if c.done {
		return false, MechanismProtocolError("CRAM-MD5: step called past completion")
	}
	authid, err := GetOrCallback(sess, AuthId)
	if err != nil {
		return false, err
	}
	password, err := GetOrCallback(sess, Password)
	if err != nil {
		return false, err
	}

	mac := hmac.New(md5.New, []byte(password))
	mac.Write(input)
	digest := hex.EncodeToString(mac.Sum(nil))

	if _, err := fmt.Fprintf(out, "%s %s", authid, digest); err != nil {
		return false, err
	}
	c.done = true
	return false, nil
}

type cramMD5Server struct {
	step      int
	challenge []byte
}

func newCramMD5Server(sess *Session) (MechanismImpl, error) {
	return &cramMD5Server{}, nil
}

func (s *cramMD5Server) Step(sess *Session, input []byte, out io.Writer) (bool, error) {
	switch s.step {
	case 0:
		challenge, err := GetOrCallback(sess, CramMD5Challenge)
		if err != nil {
			return false, err
		}
		s.challenge = []byte(challenge)
		if _, err := out.Write(s.challenge); err != nil {
			return false, err
		}
		s.step = 1
		return true, nil
	case 1:
		idx := strings.LastIndexByte(string(input), ' ')
		if idx < 0 {
			return false, MechanismParseError("CRAM-MD5: expected \"authid digest\"")
		}
		authid, digest := string(input[:idx]), string(input[idx+1:])
		SetProperty(sess, AuthId, authid)
		SetProperty(sess, CramMD5Digest, digest)
		SetProperty(sess, CramMD5ChallengeUsed, string(s.challenge))
		if err := sess.Validate(ValidationSimple); err != nil {
			return false, err
		}
		return false, nil
	default:
		return false, MechanismProtocolError("CRAM-MD5: step called past completion")
	}
}
