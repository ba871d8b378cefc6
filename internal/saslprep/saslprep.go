// Package saslprep applies the SASLprep profile (RFC 4013) to user-supplied
// strings such as SCRAM passwords, ahead of any cryptographic use.
package saslprep

import "golang.org/x/text/secure/precis"

// Password normalizes s per RFC 4013. precis.OpaqueString implements the
// same stringprep-derived mapping and prohibition tables SASLprep uses for
// password-class strings.
func Password(s string) (string, error) {
	return precis.OpaqueString.String(s)
}
