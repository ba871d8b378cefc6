package sasl

import (
	"bytes"
	"testing"
)

func TestLoginFullExchange(t *testing.T) {
	t.Parallel()
	clientCtx := New(WithCallback(&staticCallback{values: map[PropertyID]string{
		PropAuthId:   "tim",
		PropPassword: "tanstaaftanstaaf",
	}}))
	cb := &staticCallback{}
	serverCtx := New(WithCallback(cb))

	client, err := clientCtx.ClientStart(MustMechname("LOGIN"))
	if err != nil {
		t.Fatalf("ClientStart: %v", err)
	}
	server, err := serverCtx.ServerStart(MustMechname("LOGIN"))
	if err != nil {
		t.Fatalf("ServerStart: %v", err)
	}

	var serverOut, clientOut bytes.Buffer
	more, err := server.Step(nil, &serverOut)
	if err != nil || !more {
		t.Fatalf("server step 0: more=%v err=%v", more, err)
	}
	if serverOut.String() != "User Name" {
		t.Fatalf("server prompt = %q, want %q", serverOut.String(), "User Name")
	}

	more, err = client.Step(serverOut.Bytes(), &clientOut)
	if err != nil || !more {
		t.Fatalf("client step 0: more=%v err=%v", more, err)
	}
	if clientOut.String() != "tim" {
		t.Fatalf("client response = %q, want %q", clientOut.String(), "tim")
	}

	serverOut.Reset()
	more, err = server.Step(clientOut.Bytes(), &serverOut)
	if err != nil || !more {
		t.Fatalf("server step 1: more=%v err=%v", more, err)
	}
	if serverOut.String() != "Password" {
		t.Fatalf("server prompt = %q, want %q", serverOut.String(), "Password")
	}

	clientOut.Reset()
	more, err = client.Step(serverOut.Bytes(), &clientOut)
	if err != nil || more {
		t.Fatalf("client step 1: more=%v err=%v", more, err)
	}
	if clientOut.String() != "tanstaaftanstaaf" {
		t.Fatalf("client response = %q, want %q", clientOut.String(), "tanstaaftanstaaf")
	}

	serverOut.Reset()
	_, err = server.Step(clientOut.Bytes(), &serverOut)
	if err != nil {
		t.Fatalf("server step 2: %v", err)
	}
	if got, _ := GetProperty(server, AuthId); got != "tim" {
		t.Errorf("AuthId = %q, want %q", got, "tim")
	}
	if got, _ := GetProperty(server, Password); got != "tanstaaftanstaaf" {
		t.Errorf("Password = %q, want %q", got, "tanstaaftanstaaf")
	}
	if cb.lastValid != ValidationSimple {
		t.Errorf("Validate called with %s, want %s", cb.lastValid, ValidationSimple)
	}
}
