package scram

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"testing"
)

// RFC 5802 §5's worked example, reused in SHA-256 form by RFC 7677's test
// suite: user="user", password="pencil", client_nonce="fyko+d2lbbFgONRv9qkxdawL",
// server_nonce="3rfcNHYJY1ZVvWVs7j", salt=base64("QSXCR+Q6sek8bf92"), iter=4096.
func TestSCRAMSHA1Vector(t *testing.T) {
	t.Parallel()

	const (
		username     = "user"
		password     = "pencil"
		clientNonce  = "fyko+d2lbbFgONRv9qkxdawL"
		serverNonce  = "3rfcNHYJY1ZVvWVs7j"
		iter         = 4096
		wantProof    = "v0X8v3Bz2T0CJGbJQyF0X+HI4Ts="
		wantVerifier = "rmF9pqV8S7suAoZWja4dJRkFsKQ="
	)
	salt, err := base64.StdEncoding.DecodeString("QSXCR+Q6sek8bf92")
	if err != nil {
		t.Fatalf("decode salt: %v", err)
	}

	proof, verifier := computeVector(t, sha1.New, username, password, clientNonce, serverNonce, salt, iter)
	if proof != wantProof {
		t.Errorf("proof = %s, want %s", proof, wantProof)
	}
	if verifier != wantVerifier {
		t.Errorf("verifier = %s, want %s", verifier, wantVerifier)
	}
}

func TestSCRAMSHA256Vector(t *testing.T) {
	t.Parallel()

	const (
		username     = "user"
		password     = "pencil"
		clientNonce  = "fyko+d2lbbFgONRv9qkxdawL"
		serverNonce  = "3rfcNHYJY1ZVvWVs7j"
		iter         = 4096
		wantProof    = "dHzbZapWIk4jUhN+Ute9ytag9zjfMHgsqmmiz7AndVQ="
		wantVerifier = "6rriTRBi23WpRR/wtup+mMhUZUn/dB5nLTJRsjl95G4="
	)
	salt, err := base64.StdEncoding.DecodeString("QSXCR+Q6sek8bf92")
	if err != nil {
		t.Fatalf("decode salt: %v", err)
	}

	proof, verifier := computeVector(t, sha256.New, username, password, clientNonce, serverNonce, salt, iter)
	if proof != wantProof {
		t.Errorf("proof = %s, want %s", proof, wantProof)
	}
	if verifier != wantVerifier {
		t.Errorf("verifier = %s, want %s", verifier, wantVerifier)
	}
}

// computeVector runs the full client-side computation for a fixed set of
// inputs and returns the base64 ClientProof and ServerSignature, so both
// test vectors above can share the plumbing.
func computeVector(t *testing.T, h HashFunc, username, password, clientNonce, serverNonce string, salt []byte, iter int) (proofB64, verifierB64 string) {
	t.Helper()

	combinedNonce := clientNonce + serverNonce
	clientFirstBare := ClientFirstBare(username, clientNonce)
	serverFirst := ServerFirst{Nonce: combinedNonce, Salt: base64.StdEncoding.EncodeToString(salt), Iter: iter}
	serverFirstMsg := "r=" + serverFirst.Nonce + ",s=" + serverFirst.Salt + ",i=" + strconv.Itoa(iter)

	gs2Header := "n,,"
	cbind64 := base64.StdEncoding.EncodeToString([]byte(gs2Header))
	clientFinalWithoutProof := ClientFinalWithoutProof(cbind64, combinedNonce)

	authMessage := AuthMessage(clientFirstBare, serverFirstMsg, clientFinalWithoutProof)

	saltedPassword := SaltedPassword(h, password, salt, iter)
	clientKey := ClientKey(h, saltedPassword)
	storedKey := StoredKey(h, clientKey)
	serverKey := ServerKey(h, saltedPassword)

	clientSig := ClientSignature(h, storedKey, authMessage)
	proof := XOR(clientKey, clientSig)
	serverSig := ServerSignature(h, serverKey, authMessage)

	return base64.StdEncoding.EncodeToString(proof), base64.StdEncoding.EncodeToString(serverSig)
}

func TestEqualConstantTime(t *testing.T) {
	t.Parallel()
	a := []byte("abcdef")
	b := []byte("abcdef")
	c := []byte("abcdeg")
	if !EqualConstantTime(a, b) {
		t.Error("identical slices should compare equal")
	}
	if EqualConstantTime(a, c) {
		t.Error("differing slices should not compare equal")
	}
	if EqualConstantTime(a, []byte("short")) {
		t.Error("different-length slices should not compare equal")
	}
}
