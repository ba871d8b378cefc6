package sasl

import "io"

func init() {
	registerStatic(&Mechanism{
		Name:        MustMechname("SECURID"),
		Priority:    100,
		NewClient:   newSecurIDClient,
		NewServer:   newSecurIDServer,
		ClientFirst: true,
	})
}

// securidClient implements SECURID (RFC 2808): a single-step token-code
// exchange that the server may extend with one extra round trip to
// request a PIN or a fresh passcode.
type securidClient struct {
	step  int
	doPin bool
}

func newSecurIDClient(sess *Session) (MechanismImpl, error) {
	return &securidClient{}, nil
}

func (c *securidClient) Step(sess *Session, input []byte, out io.Writer) (bool, error) {
	switch c.step {
	case 0:
		return c.emit(sess, out)
	case 1:
		if string(input) == "passcode" {
			c.step = 0
			return c.emit(sess, out)
		}
		if len(input) >= len("pin") && string(input[:len("pin")]) == "pin" {
			c.doPin = true
			if len(input) > len("pin") {
				SetProperty(sess, SuggestedPin, string(input[len("pin"):]))
			}
			c.step = 0
			return c.emit(sess, out)
		}
		return false, nil
	default:
		return false, MechanismProtocolError("SECURID: step called past completion")
	}
}

func (c *securidClient) emit(sess *Session, out io.Writer) (bool, error) {
	authzid, _ := GetProperty(sess, AuthzId)
	authid, err := GetOrCallback(sess, AuthId)
	if err != nil {
		return false, err
	}
	passcode, err := GetOrCallback(sess, Passcode)
	if err != nil {
		return false, err
	}

	msg := authzid + "\x00" + authid + "\x00" + passcode
	if c.doPin {
		pin, err := GetOrCallback(sess, Pin)
		if err != nil {
			return false, err
		}
		msg += "\x00" + pin
	}
	if _, err := out.Write([]byte(msg)); err != nil {
		return false, err
	}
	c.step = 1
	return true, nil
}

type securidServer struct {
	step int
}

func newSecurIDServer(sess *Session) (MechanismImpl, error) {
	return &securidServer{}, nil
}

func (s *securidServer) Step(sess *Session, input []byte, out io.Writer) (bool, error) {
	switch s.step {
	case 0:
		parts := splitNUL(input, 3)
		if len(parts) < 3 {
			return false, MechanismParseError("SECURID: expected authzid\\0authid\\0passcode[\\0pin]")
		}
		SetProperty(sess, AuthzId, string(parts[0]))
		SetProperty(sess, AuthId, string(parts[1]))
		SetProperty(sess, Passcode, string(parts[2]))
		if len(parts) == 4 {
			SetProperty(sess, Pin, string(parts[3]))
		}
		if err := sess.Validate(ValidationSecurID); err != nil {
			return false, err
		}
		return false, nil
	default:
		return false, MechanismProtocolError("SECURID: step called past completion")
	}
}

func splitNUL(b []byte, max int) [][]byte {
	var out [][]byte
	start := 0
	for i := 0; i < len(b) && len(out) < max-1; i++ {
		if b[i] == 0 {
			out = append(out, b[start:i])
			start = i + 1
		}
	}
	out = append(out, b[start:])
	return out
}
