package scram

import (
	"crypto/hmac"
	"crypto/subtle"
	"hash"

	"golang.org/x/crypto/pbkdf2"
)

// HashFunc constructs the hash.Hash a SCRAM variant is parameterized over
// (sha1.New, sha256.New, sha512.New).
type HashFunc func() hash.Hash

// SaltedPassword derives PBKDF2(password, salt, iter, H.Size()) per RFC
// 5802 §3. password should already be SASLprep-normalized.
func SaltedPassword(h HashFunc, password string, salt []byte, iter int) []byte {
	return pbkdf2.Key([]byte(password), salt, iter, h().Size(), h)
}

func hmacSum(h HashFunc, key, data []byte) []byte {
	mac := hmac.New(h, key)
	mac.Write(data)
	return mac.Sum(nil)
}

func hashSum(h HashFunc, data []byte) []byte {
	hasher := h()
	hasher.Write(data)
	return hasher.Sum(nil)
}

// ClientKey returns HMAC(saltedPassword, "Client Key").
func ClientKey(h HashFunc, saltedPassword []byte) []byte {
	return hmacSum(h, saltedPassword, []byte("Client Key"))
}

// StoredKey returns H(clientKey).
func StoredKey(h HashFunc, clientKey []byte) []byte {
	return hashSum(h, clientKey)
}

// ServerKey returns HMAC(saltedPassword, "Server Key").
func ServerKey(h HashFunc, saltedPassword []byte) []byte {
	return hmacSum(h, saltedPassword, []byte("Server Key"))
}

// ClientSignature returns HMAC(storedKey, authMessage).
func ClientSignature(h HashFunc, storedKey []byte, authMessage string) []byte {
	return hmacSum(h, storedKey, []byte(authMessage))
}

// ServerSignature returns HMAC(serverKey, authMessage).
func ServerSignature(h HashFunc, serverKey []byte, authMessage string) []byte {
	return hmacSum(h, serverKey, []byte(authMessage))
}

// XOR returns a XOR b, a and b must be the same length.
func XOR(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// HashCredentials precomputes SaltedPassword, StoredKey, and ServerKey for
// credential-at-rest storage (spec §4.6's "if ScramSaltedPassword or
// ScramStoredKey/ServerKey are pre-supplied, uses them directly"), so a
// server need not hold the plaintext password.
func HashCredentials(h HashFunc, password string, salt []byte, iter int) (saltedPassword, storedKey, serverKey []byte) {
	saltedPassword = SaltedPassword(h, password, salt, iter)
	clientKey := ClientKey(h, saltedPassword)
	storedKey = StoredKey(h, clientKey)
	serverKey = ServerKey(h, saltedPassword)
	return saltedPassword, storedKey, serverKey
}

// EqualConstantTime reports whether a and b hold identical bytes, taking
// time independent of where (or whether) they first differ. Used for proof
// and signature verification per spec §4.6.
func EqualConstantTime(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
