package sasl

import "io"

func init() {
	registerStatic(&Mechanism{
		Name:        MustMechname("EXTERNAL"),
		Priority:    400,
		NewClient:   newExternalClient,
		NewServer:   newExternalServer,
		ClientFirst: true,
	})
}

// externalClient implements EXTERNAL: a single message carrying an optional
// authzid, with the actual identity already established out of band (a TLS
// client certificate, a Unix socket peer credential, and so on).
type externalClient struct{}

func newExternalClient(sess *Session) (MechanismImpl, error) {
	return &externalClient{}, nil
}

func (c *externalClient) Step(sess *Session, input []byte, out io.Writer) (bool, error) {
	authzid, _ := GetProperty(sess, AuthzId)
	if _, err := out.Write([]byte(authzid)); err != nil {
		return false, err
	}
	return false, nil
}

type externalServer struct{}

func newExternalServer(sess *Session) (MechanismImpl, error) {
	return &externalServer{}, nil
}

func (s *externalServer) Step(sess *Session, input []byte, out io.Writer) (bool, error) {
	SetProperty(sess, AuthzId, string(input))
	if err := sess.Validate(ValidationExternal); err != nil {
		return false, err
	}
	return false, nil
}
