package sasl

import (
	"bytes"
	"io"
)

func init() {
	registerStatic(&Mechanism{
		Name:        MustMechname("PLAIN"),
		Priority:    300,
		NewClient:   newPlainClient,
		NewServer:   newPlainServer,
		ClientFirst: true,
	})
}

// plainClient implements the client side of PLAIN (RFC 4616): a single
// message of the form [authzid]\0authcid\0passwd, no further round trip.
type plainClient struct{}

func newPlainClient(sess *Session) (MechanismImpl, error) {
	return &plainClient{}, nil
}

func (c *plainClient) Step(sess *Session, input []byte, out io.Writer) (bool, error) {
	authzid, _ := GetProperty(sess, AuthzId)
	authid, err := GetOrCallback(sess, AuthId)
	if err != nil {
		return false, err
	}
	password, err := GetOrCallback(sess, Password)
	if err != nil {
		return false, err
	}

	_, err = out.Write([]byte(authzid + "\x00" + authid + "\x00" + password))
	if err != nil {
		return false, err
	}
	return false, nil
}

// plainServer implements the server side: parse the single message and
// ask the Callback to validate the credentials it extracted.
type plainServer struct{}

func newPlainServer(sess *Session) (MechanismImpl, error) {
	return &plainServer{}, nil
}

func (s *plainServer) Step(sess *Session, input []byte, out io.Writer) (bool, error) {
	parts := bytes.SplitN(input, []byte{0}, 3)
	if len(parts) != 3 {
		return false, MechanismParseError("PLAIN: expected authzid\\0authcid\\0passwd, got %d fields", len(parts))
	}

	SetProperty(sess, AuthzId, string(parts[0]))
	SetProperty(sess, AuthId, string(parts[1]))
	SetProperty(sess, Password, string(parts[2]))

	if err := sess.Validate(ValidationSimple); err != nil {
		return false, err
	}
	return false, nil
}
