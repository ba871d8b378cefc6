// Command saslpipe drives a SASL mechanism end to end in a single process
// and prints each round-trip message, for exercising and demonstrating the
// library without a real network peer.
package main

import (
	"bytes"
	"encoding/base64"
	"flag"
	"fmt"
	"log"
	"os"

	sasl "github.com/meszmate/gosasl"
)

func main() {
	mechName := flag.String("mech", "SCRAM-SHA-256", "SASL mechanism name")
	authid := flag.String("authid", "tim", "authentication identity")
	authzid := flag.String("authzid", "", "authorization identity")
	password := flag.String("password", "tanstaaftanstaaf", "password")
	hostname := flag.String("hostname", "localhost", "hostname (DIGEST-MD5)")
	service := flag.String("service", "imap", "service name (DIGEST-MD5)")
	realm := flag.String("realm", "", "realm (DIGEST-MD5/LOGIN)")
	verbose := flag.Bool("v", false, "print each wire message base64-encoded")
	flag.Parse()

	mech, err := sasl.NewMechname([]byte(*mechName))
	if err != nil {
		log.Fatalf("saslpipe: invalid mechanism name %q: %v", *mechName, err)
	}

	clientCB := &pipeCallback{
		authid:   *authid,
		authzid:  *authzid,
		password: *password,
		hostname: *hostname,
		service:  *service,
		realm:    *realm,
	}
	serverCB := &pipeCallback{
		authid:   *authid,
		password: *password,
		realm:    *realm,
		isServer: true,
	}

	clientCtx := sasl.New(sasl.WithCallback(clientCB))
	serverCtx := sasl.New(sasl.WithCallback(serverCB))

	client, err := clientCtx.ClientStart(mech)
	if err != nil {
		log.Fatalf("saslpipe: client start: %v", err)
	}
	server, err := serverCtx.ServerStart(mech)
	if err != nil {
		log.Fatalf("saslpipe: server start: %v", err)
	}

	if err := pipe(client, server, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "saslpipe: authentication failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("saslpipe: authentication succeeded")
}

// pipe drives client and server against each other until one side
// completes or errors. Whichever side speaks first is discovered by
// attempting the client with no input: Session.Step reports
// ErrInputDataRequired without mutating any state when called on a side
// that expects to see the peer's message first, so the attempt is safe to
// retry against the server.
func pipe(client, server *sasl.Session, verbose bool) error {
	var out bytes.Buffer
	more, err := client.Step(nil, &out)
	clientTurn := true
	if err == sasl.ErrInputDataRequired {
		out.Reset()
		more, err = server.Step(nil, &out)
		clientTurn = false
	}
	if err != nil {
		return err
	}

	round := 1
	msg := out.Bytes()
	logRound(verbose, round, clientTurn, msg)
	var clientDone, serverDone bool
	if clientTurn {
		clientDone = !more
	} else {
		serverDone = !more
	}

	// Keep alternating even after one side declares itself done: its
	// final message (a verifier, an empty ack, ...) may still need to
	// reach the other side before that side can finish too.
	for !clientDone || !serverDone {
		round++
		clientTurn = !clientTurn
		if clientTurn && clientDone {
			break
		}
		if !clientTurn && serverDone {
			break
		}

		out.Reset()
		if clientTurn {
			more, err = client.Step(msg, &out)
			clientDone = !more
		} else {
			more, err = server.Step(msg, &out)
			serverDone = !more
		}
		if err != nil {
			return err
		}
		msg = out.Bytes()
		logRound(verbose, round, clientTurn, msg)
	}
	return nil
}

func logRound(verbose bool, round int, clientTurn bool, msg []byte) {
	if !verbose {
		return
	}
	side := "server"
	if clientTurn {
		side = "client"
	}
	fmt.Printf("round %d [%s]: %s\n", round, side, base64.StdEncoding.EncodeToString(msg))
}

type pipeCallback struct {
	authid, authzid, password, hostname, service, realm string
	isServer                                             bool
}

func (c *pipeCallback) Provide(s *sasl.Session, id sasl.PropertyID) error {
	switch id {
	case sasl.PropAuthId:
		sasl.SetProperty(s, sasl.AuthId, c.authid)
	case sasl.PropAuthzId:
		sasl.SetProperty(s, sasl.AuthzId, c.authzid)
	case sasl.PropPassword:
		sasl.SetProperty(s, sasl.Password, c.password)
	case sasl.PropHostname:
		sasl.SetProperty(s, sasl.Hostname, c.hostname)
	case sasl.PropService:
		sasl.SetProperty(s, sasl.Service, c.service)
	case sasl.PropRealm:
		sasl.SetProperty(s, sasl.Realm, c.realm)
	case sasl.PropAnonymousToken:
		sasl.SetProperty(s, sasl.AnonymousToken, c.authid)
	default:
		return &sasl.NoPropertyError{Property: id}
	}
	return nil
}

func (c *pipeCallback) Validate(s *sasl.Session, v sasl.Validation) error {
	if !c.isServer {
		return nil
	}
	if authid, ok := sasl.GetProperty(s, sasl.AuthId); ok && authid != c.authid {
		return sasl.ErrAuthenticationFailure
	}
	if password, ok := sasl.GetProperty(s, sasl.Password); ok && password != c.password {
		return sasl.ErrAuthenticationFailure
	}
	return nil
}
