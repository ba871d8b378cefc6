// Package sasl implements a protocol-agnostic Simple Authentication and
// Security Layer (SASL) engine: a session driver, a mechanism registry, a
// typed property/callback system, and the SCRAM, PLAIN, LOGIN, ANONYMOUS,
// EXTERNAL, SECURID, SAML20, OPENID20, CRAM-MD5 and DIGEST-MD5 mechanisms.
//
// The package knows nothing about any particular transport. An application
// builds a [SASL] context, installs a [Callback] to supply credentials,
// starts a [Session] for a chosen mechanism and role, and repeatedly feeds
// peer input to [Session.Step] (or [Session.Step64] for base64-framed
// transports) until the exchange reports completion.
//
// Basic client usage:
//
//	ctx := sasl.New(sasl.WithCallback(myCallback))
//	sess, err := ctx.ClientStart(sasl.MechnameScramSHA256)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var buf bytes.Buffer
//	more, err := sess.Step(nil, &buf)
//
// Mechanism implementations and the SCRAM cryptographic core live in the
// scram and gs2 subpackages; the gsaslcompat subpackage offers a legacy
// C-shaped error-code translation surface for callers migrating off GNU
// SASL bindings.
package sasl
