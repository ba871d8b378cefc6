package sasl

import "io"

func init() {
	registerStatic(&Mechanism{
		Name:        MustMechname("LOGIN"),
		Priority:    200,
		NewClient:   newLoginClient,
		NewServer:   newLoginServer,
		ClientFirst: false,
	})
}

// loginClient implements LOGIN, a server-first two-prompt exchange
// ("User Name" then "Password") with no formal RFC but wide deployment.
type loginClient struct {
	step int
}

func newLoginClient(sess *Session) (MechanismImpl, error) {
	return &loginClient{}, nil
}

func (c *loginClient) Step(sess *Session, input []byte, out io.Writer) (bool, error) {
	switch c.step {
	case 0:
		authid, err := GetOrCallback(sess, AuthId)
		if err != nil {
			return false, err
		}
		if _, err := out.Write([]byte(authid)); err != nil {
			return false, err
		}
		c.step = 1
		return true, nil
	case 1:
		password, err := GetOrCallback(sess, Password)
		if err != nil {
			return false, err
		}
		if _, err := out.Write([]byte(password)); err != nil {
			return false, err
		}
		c.step = 2
		return false, nil
	default:
		return false, MechanismProtocolError("LOGIN: step called past completion")
	}
}

type loginServer struct {
	step int
}

func newLoginServer(sess *Session) (MechanismImpl, error) {
	return &loginServer{}, nil
}

func (s *loginServer) Step(sess *Session, input []byte, out io.Writer) (bool, error) {
	switch s.step {
	case 0:
		if _, err := out.Write([]byte("User Name")); err != nil {
			return false, err
		}
		s.step = 1
		return true, nil
	case 1:
		SetProperty(sess, AuthId, string(input))
		if _, err := out.Write([]byte("Password")); err != nil {
			return false, err
		}
		s.step = 2
		return true, nil
	case 2:
		SetProperty(sess, Password, string(input))
		if err := sess.Validate(ValidationSimple); err != nil {
			return false, err
		}
		return false, nil
	default:
		return false, MechanismProtocolError("LOGIN: step called past completion")
	}
}
