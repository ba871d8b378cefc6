// Package scram implements the wire parsing, nonce handling, and
// proof/signature cryptography shared by the SCRAM-SHA-1 and SCRAM-SHA-256
// (and -512) mechanisms (RFC 5802, RFC 7677). It knows nothing about
// Session, properties, or callbacks; the mechanism state machines in the
// parent package drive it.
package scram

import (
	"fmt"
	"strconv"
	"strings"
)

// EscapeUsername applies the SCRAM username escaping rule: "=" becomes
// "=3D" and "," becomes "=2C". Applied after SASLprep.
func EscapeUsername(s string) string {
	s = strings.ReplaceAll(s, "=", "=3D")
	s = strings.ReplaceAll(s, ",", "=2C")
	return s
}

// UnescapeUsername reverses EscapeUsername.
func UnescapeUsername(s string) string {
	s = strings.ReplaceAll(s, "=2C", ",")
	s = strings.ReplaceAll(s, "=3D", "=")
	return s
}

// ClientFirstBare renders the attribute-only part of a client-first
// message ("n=<user>,r=<nonce>"), the portion that feeds AuthMessage
// regardless of what GS2 header precedes it on the wire.
func ClientFirstBare(username, nonce string) string {
	return fmt.Sprintf("n=%s,r=%s", EscapeUsername(username), nonce)
}

// ParseClientFirstBare parses "n=<user>,r=<nonce>" (the client-first
// message with its GS2 header already stripped), returning the unescaped
// username.
func ParseClientFirstBare(s string) (username, nonce string, err error) {
	attrs := parseAttrs(s)
	rawUser, ok := attrs["n"]
	if !ok {
		return "", "", fmt.Errorf("scram: client-first message missing n= username")
	}
	nonce, ok = attrs["r"]
	if !ok {
		return "", "", fmt.Errorf("scram: client-first message missing r= nonce")
	}
	return UnescapeUsername(rawUser), nonce, nil
}

// parseAttrs splits a comma-separated attribute list into a map keyed by
// the single-letter attribute name. SCRAM attribute values never contain
// unescaped commas except the final one, so this is sufficient for every
// message shape RFC 5802 defines.
func parseAttrs(s string) map[string]string {
	attrs := make(map[string]string, 4)
	for _, part := range strings.Split(s, ",") {
		if idx := strings.IndexByte(part, '='); idx > 0 {
			attrs[part[:idx]] = part[idx+1:]
		}
	}
	return attrs
}

// ServerFirst is a parsed server-first message: r=<nonce>,s=<salt>,i=<iter>.
type ServerFirst struct {
	Nonce string
	Salt  string // still base64 (or hex in interop mode): caller decodes
	Iter  int
}

// ParseServerFirst parses msg into its three mandatory attributes. Does not
// validate that Nonce extends a client nonce; callers check that.
func ParseServerFirst(msg string) (ServerFirst, error) {
	attrs := parseAttrs(msg)
	var sf ServerFirst
	var ok bool

	if sf.Nonce, ok = attrs["r"]; !ok {
		return sf, fmt.Errorf("scram: server-first message missing r= nonce")
	}
	if sf.Salt, ok = attrs["s"]; !ok {
		return sf, fmt.Errorf("scram: server-first message missing s= salt")
	}
	iterStr, ok := attrs["i"]
	if !ok {
		return sf, fmt.Errorf("scram: server-first message missing i= iteration count")
	}
	iter, err := strconv.Atoi(iterStr)
	if err != nil {
		return sf, fmt.Errorf("scram: invalid iteration count %q: %w", iterStr, err)
	}
	sf.Iter = iter
	return sf, nil
}

// ClientFinalWithoutProof renders "c=<cbind64>,r=<nonce>", the portion of
// client-final that precedes p=, reused both as wire text and as an
// AuthMessage component.
func ClientFinalWithoutProof(cbind64, nonce string) string {
	return fmt.Sprintf("c=%s,r=%s", cbind64, nonce)
}

// AuthMessage concatenates the three message fragments SCRAM signs:
// client-first-bare, server-first, and client-final-without-proof.
func AuthMessage(clientFirstBare, serverFirst, clientFinalWithoutProof string) string {
	return clientFirstBare + "," + serverFirst + "," + clientFinalWithoutProof
}

// ClientFinal is a parsed client-final message.
type ClientFinal struct {
	CBind string // base64
	Nonce string
	Proof string // base64
}

// ParseClientFinal parses a full client-final message: c=...,r=...,p=...
func ParseClientFinal(msg string) (ClientFinal, error) {
	attrs := parseAttrs(msg)
	var cf ClientFinal
	var ok bool
	if cf.CBind, ok = attrs["c"]; !ok {
		return cf, fmt.Errorf("scram: client-final message missing c= channel binding")
	}
	if cf.Nonce, ok = attrs["r"]; !ok {
		return cf, fmt.Errorf("scram: client-final message missing r= nonce")
	}
	if cf.Proof, ok = attrs["p"]; !ok {
		return cf, fmt.Errorf("scram: client-final message missing p= proof")
	}
	return cf, nil
}

// ClientFinalWithoutProofFromMsg strips the trailing ",p=..." field from a
// full client-final message, recovering the exact bytes that fed
// AuthMessage on the wire (needed because attribute order/escaping must
// round-trip byte-exactly for the server to recompute the same signature).
func ClientFinalWithoutProofFromMsg(msg string) (string, error) {
	idx := strings.LastIndex(msg, ",p=")
	if idx < 0 {
		return "", fmt.Errorf("scram: client-final message missing p= proof")
	}
	return msg[:idx], nil
}

// ServerFinal is a parsed server-final message: either a verifier or an
// error reason, never both.
type ServerFinal struct {
	Verifier string // base64, empty if Err is set
	Err      string
}

// ParseServerFinal parses "v=<verifier>" or "e=<reason>".
func ParseServerFinal(msg string) (ServerFinal, error) {
	attrs := parseAttrs(msg)
	var sf ServerFinal
	if reason, ok := attrs["e"]; ok {
		sf.Err = reason
		return sf, nil
	}
	verifier, ok := attrs["v"]
	if !ok {
		return sf, fmt.Errorf("scram: server-final message has neither v= nor e=")
	}
	sf.Verifier = verifier
	return sf, nil
}
