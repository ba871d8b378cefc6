package sasl

import (
	"bytes"
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"testing"
)

type cramMD5ServerCallback struct {
	challenge string
	password  string
	accepted  bool
}

func (c *cramMD5ServerCallback) Provide(s *Session, id PropertyID) error {
	if id == PropCramMD5Challenge {
		SetProperty(s, CramMD5Challenge, c.challenge)
		return nil
	}
	return &NoPropertyError{Property: id}
}

func (c *cramMD5ServerCallback) Validate(s *Session, v Validation) error {
	challenge, _ := GetProperty(s, CramMD5ChallengeUsed)
	digest, _ := GetProperty(s, CramMD5Digest)
	mac := hmac.New(md5.New, []byte(c.password))
	mac.Write([]byte(challenge))
	want := hex.EncodeToString(mac.Sum(nil))
	if digest != want {
		return ErrAuthenticationFailure
	}
	c.accepted = true
	return nil
}

func TestCramMD5FullExchange(t *testing.T) {
	t.Parallel()
	clientCtx := New(WithCallback(&staticCallback{values: map[PropertyID]string{
		PropAuthId:   "tim",
		PropPassword: "tanstaaftanstaaf",
	}}))
	serverCB := &cramMD5ServerCallback{
		challenge: "<1896.697170952@postoffice.reston.mci.net>",
		password:  "tanstaaftanstaaf",
	}
	serverCtx := New(WithCallback(serverCB))

	client, err := clientCtx.ClientStart(MustMechname("CRAM-MD5"))
	if err != nil {
		t.Fatalf("ClientStart: %v", err)
	}
	server, err := serverCtx.ServerStart(MustMechname("CRAM-MD5"))
	if err != nil {
		t.Fatalf("ServerStart: %v", err)
	}

	var serverOut, clientOut bytes.Buffer
	more, err := server.Step(nil, &serverOut)
	if err != nil || !more {
		t.Fatalf("server step 0: more=%v err=%v", more, err)
	}
	if serverOut.String() != serverCB.challenge {
		t.Fatalf("challenge = %q, want %q", serverOut.String(), serverCB.challenge)
	}

	more, err = client.Step(serverOut.Bytes(), &clientOut)
	if err != nil || more {
		t.Fatalf("client step: more=%v err=%v", more, err)
	}

	if _, err := server.Step(clientOut.Bytes(), &serverOut); err != nil {
		t.Fatalf("server step 1: %v", err)
	}
	if !serverCB.accepted {
		t.Error("server did not accept valid digest")
	}
}

func TestCramMD5RejectsWrongPassword(t *testing.T) {
	t.Parallel()
	clientCtx := New(WithCallback(&staticCallback{values: map[PropertyID]string{
		PropAuthId:   "tim",
		PropPassword: "wrong",
	}}))
	serverCB := &cramMD5ServerCallback{
		challenge: "<1896.697170952@postoffice.reston.mci.net>",
		password:  "tanstaaftanstaaf",
	}
	serverCtx := New(WithCallback(serverCB))

	client, err := clientCtx.ClientStart(MustMechname("CRAM-MD5"))
	if err != nil {
		t.Fatalf("ClientStart: %v", err)
	}
	server, err := serverCtx.ServerStart(MustMechname("CRAM-MD5"))
	if err != nil {
		t.Fatalf("ServerStart: %v", err)
	}

	var serverOut, clientOut bytes.Buffer
	if _, err := server.Step(nil, &serverOut); err != nil {
		t.Fatalf("server step 0: %v", err)
	}
	if _, err := client.Step(serverOut.Bytes(), &clientOut); err != nil {
		t.Fatalf("client step: %v", err)
	}
	if _, err := server.Step(clientOut.Bytes(), &serverOut); err == nil {
		t.Fatal("expected authentication failure for wrong password")
	}
}
