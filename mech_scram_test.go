package sasl

import (
	"bytes"
	"testing"
)

func scramRoundTrip(t *testing.T, mechName string, clientCB, serverCB Callback) error {
	t.Helper()
	clientCtx := New(WithCallback(clientCB))
	serverCtx := New(WithCallback(serverCB))

	client, err := clientCtx.ClientStart(MustMechname(mechName))
	if err != nil {
		t.Fatalf("ClientStart: %v", err)
	}
	server, err := serverCtx.ServerStart(MustMechname(mechName))
	if err != nil {
		t.Fatalf("ServerStart: %v", err)
	}

	var clientOut, serverOut bytes.Buffer
	more, err := client.Step(nil, &clientOut)
	if err != nil {
		return err
	}
	if !more {
		t.Fatal("client should require more steps after client-first")
	}

	more, err = server.Step(clientOut.Bytes(), &serverOut)
	if err != nil {
		return err
	}
	if !more {
		t.Fatal("server should require more steps after server-first")
	}

	clientOut.Reset()
	more, err = client.Step(serverOut.Bytes(), &clientOut)
	if err != nil {
		return err
	}
	if !more {
		t.Fatal("client should require one more step after client-final")
	}

	serverOut.Reset()
	more, err = server.Step(clientOut.Bytes(), &serverOut)
	if err != nil {
		return err
	}
	if more {
		t.Fatal("server should complete after verifying client-final")
	}

	clientOut.Reset()
	_, err = client.Step(serverOut.Bytes(), &clientOut)
	return err
}

func TestSCRAMSHA256FullExchangeSucceeds(t *testing.T) {
	t.Parallel()
	clientCB := &staticCallback{values: map[PropertyID]string{
		PropAuthId:   "user",
		PropPassword: "pencil",
	}}
	serverCB := &scramServerCallback{
		username: "user",
		password: "pencil",
		salt:     []byte("fixedtestsalt123"),
		iter:     4096,
	}

	if err := scramRoundTrip(t, "SCRAM-SHA-256", clientCB, serverCB); err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
}

func TestSCRAMSHA1FullExchangeSucceeds(t *testing.T) {
	t.Parallel()
	clientCB := &staticCallback{values: map[PropertyID]string{
		PropAuthId:   "user",
		PropPassword: "pencil",
	}}
	serverCB := &scramServerCallback{
		username: "user",
		password: "pencil",
		salt:     []byte("anothertestsalt"),
		iter:     4096,
	}

	if err := scramRoundTrip(t, "SCRAM-SHA-1", clientCB, serverCB); err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
}

func TestSCRAMWrongPasswordFails(t *testing.T) {
	t.Parallel()
	clientCB := &staticCallback{values: map[PropertyID]string{
		PropAuthId:   "user",
		PropPassword: "wrong-password",
	}}
	serverCB := &scramServerCallback{
		username: "user",
		password: "pencil",
		salt:     []byte("fixedtestsalt123"),
		iter:     4096,
	}

	if err := scramRoundTrip(t, "SCRAM-SHA-256", clientCB, serverCB); err == nil {
		t.Fatal("expected authentication failure for mismatched password")
	}
}

func TestSCRAMPlusChannelBindingMismatchFails(t *testing.T) {
	t.Parallel()
	clientCtx := New(WithCallback(&staticCallback{values: map[PropertyID]string{
		PropAuthId:   "user",
		PropPassword: "pencil",
	}}))
	serverCtx := New(WithCallback(&scramServerCallback{
		username: "user",
		password: "pencil",
		salt:     []byte("fixedtestsalt123"),
		iter:     4096,
	}))

	client, err := clientCtx.ClientStart(MustMechname("SCRAM-SHA-256-PLUS"))
	if err != nil {
		t.Fatalf("ClientStart: %v", err)
	}
	server, err := serverCtx.ServerStart(MustMechname("SCRAM-SHA-256-PLUS"))
	if err != nil {
		t.Fatalf("ServerStart: %v", err)
	}
	SetProperty(client, CBTlsUnique, []byte("client-channel-binding"))
	SetProperty(server, CBTlsUnique, []byte("server-sees-a-different-binding"))

	var clientOut, serverOut bytes.Buffer
	if _, err := client.Step(nil, &clientOut); err != nil {
		t.Fatalf("client first step: %v", err)
	}
	if _, err := server.Step(clientOut.Bytes(), &serverOut); err != nil {
		t.Fatalf("server first step: %v", err)
	}
	clientOut.Reset()
	if _, err := client.Step(serverOut.Bytes(), &clientOut); err != nil {
		t.Fatalf("client final step: %v", err)
	}
	serverOut.Reset()
	_, err = server.Step(clientOut.Bytes(), &serverOut)
	if err == nil {
		t.Fatal("expected channel-binding mismatch to fail verification")
	}
}

// scramServerCallback supplies salt/iteration/password-derived credentials
// for the server side of a SCRAM exchange, as an application backed by a
// user table would.
type scramServerCallback struct {
	username string
	password string
	salt     []byte
	iter     uint
}

func (c *scramServerCallback) Provide(s *Session, id PropertyID) error {
	switch id {
	case PropScramSalt:
		SetProperty(s, ScramSalt, c.salt)
	case PropScramIter:
		SetProperty(s, ScramIter, c.iter)
	case PropPassword:
		SetProperty(s, Password, c.password)
	default:
		return &NoPropertyError{Property: id}
	}
	return nil
}

func (c *scramServerCallback) Validate(s *Session, v Validation) error {
	authid, _ := GetProperty(s, AuthId)
	if authid != c.username {
		return ErrAuthenticationFailure
	}
	return nil
}
