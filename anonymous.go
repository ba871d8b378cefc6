package sasl

import "io"

func init() {
	registerStatic(&Mechanism{
		Name:        MustMechname("ANONYMOUS"),
		Priority:    0,
		NewClient:   newAnonymousClient,
		NewServer:   newAnonymousServer,
		ClientFirst: true,
	})
}

// anonymousClient implements ANONYMOUS (RFC 4505): a single message
// carrying an optional trace token, typically an email address or nothing.
type anonymousClient struct{}

func newAnonymousClient(sess *Session) (MechanismImpl, error) {
	return &anonymousClient{}, nil
}

func (c *anonymousClient) Step(sess *Session, input []byte, out io.Writer) (bool, error) {
	token, _ := GetProperty(sess, AnonymousToken)
	if _, err := out.Write([]byte(token)); err != nil {
		return false, err
	}
	return false, nil
}

type anonymousServer struct{}

func newAnonymousServer(sess *Session) (MechanismImpl, error) {
	return &anonymousServer{}, nil
}

func (s *anonymousServer) Step(sess *Session, input []byte, out io.Writer) (bool, error) {
	SetProperty(sess, AnonymousToken, string(input))
	if err := sess.Validate(ValidationAnonymous); err != nil {
		return false, err
	}
	return false, nil
}
