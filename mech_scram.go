package sasl

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"io"
	"strconv"
	"strings"

	"github.com/meszmate/gosasl/gs2"
	"github.com/meszmate/gosasl/internal/saslprep"
	"github.com/meszmate/gosasl/scram"
)

const scramCBName = "tls-unique"

func init() {
	registerSCRAMVariant("SCRAM-SHA-1", 500, sha1.New, false)
	registerSCRAMVariant("SCRAM-SHA-1-PLUS", 600, sha1.New, true)
	registerSCRAMVariant("SCRAM-SHA-256", 700, sha256.New, false)
	registerSCRAMVariant("SCRAM-SHA-256-PLUS", 800, sha256.New, true)
	registerSCRAMVariant("SCRAM-SHA-512", 900, sha512.New, false)
	registerSCRAMVariant("SCRAM-SHA-512-PLUS", 1000, sha512.New, true)
}

func registerSCRAMVariant(name string, priority int, h scram.HashFunc, plus bool) {
	registerStatic(&Mechanism{
		Name:     MustMechname(name),
		Priority: priority,
		NewClient: func(sess *Session) (MechanismImpl, error) {
			return &scramClient{hash: h, plus: plus}, nil
		},
		NewServer: func(sess *Session) (MechanismImpl, error) {
			return &scramServer{hash: h, plus: plus}, nil
		},
		ClientFirst: true,
	})
}

func encodeSaltLike(cfg Config, b []byte) string {
	if cfg.ScramInterop {
		return hex.EncodeToString(b)
	}
	return base64.StdEncoding.EncodeToString(b)
}

func decodeSaltLike(cfg Config, s string) ([]byte, error) {
	if cfg.ScramInterop {
		return hex.DecodeString(s)
	}
	return base64.StdEncoding.DecodeString(s)
}

// scramClient drives the four-state client machine of spec §4.6: initial,
// sent-first, sent-final, done.
type scramClient struct {
	hash scram.HashFunc
	plus bool
	step int

	clientNonce     string
	clientFirstBare string
	gs2Header       string
	authMessage     string
	serverKey       []byte
}

func (c *scramClient) Step(sess *Session, input []byte, out io.Writer) (bool, error) {
	switch c.step {
	case 0:
		return c.stepInitial(sess, out)
	case 1:
		return c.stepServerFirst(sess, input, out)
	case 2:
		return c.stepServerFinal(sess, input)
	default:
		return false, MechanismProtocolError("SCRAM: step called past completion")
	}
}

func (c *scramClient) stepInitial(sess *Session, out io.Writer) (bool, error) {
	cfg := sess.Context().Config()
	nonce, err := scram.GenerateNonce(cfg.NonceLength)
	if err != nil {
		return false, err
	}
	c.clientNonce = nonce

	authzid, _ := GetProperty(sess, AuthzId)
	authid, err := GetOrCallback(sess, AuthId)
	if err != nil {
		return false, err
	}

	header := gs2.Header{Authzid: authzid}
	if c.plus {
		header.Mode = gs2.CBUsed
		header.CBName = scramCBName
	}
	c.gs2Header = header.Encode()
	c.clientFirstBare = scram.ClientFirstBare(authid, c.clientNonce)

	if _, err := out.Write([]byte(c.gs2Header + c.clientFirstBare)); err != nil {
		return false, err
	}
	c.step = 1
	return true, nil
}

func (c *scramClient) stepServerFirst(sess *Session, input []byte, out io.Writer) (bool, error) {
	cfg := sess.Context().Config()
	sf, err := scram.ParseServerFirst(string(input))
	if err != nil {
		return false, MechanismParseError("%v", err)
	}
	if !strings.HasPrefix(sf.Nonce, c.clientNonce) {
		return false, MechanismProtocolError("SCRAM: server nonce does not extend client nonce")
	}
	if sf.Iter < 1 {
		return false, MechanismProtocolError("SCRAM: non-positive iteration count %d", sf.Iter)
	}
	salt, err := decodeSaltLike(cfg, sf.Salt)
	if err != nil {
		return false, MechanismParseError("SCRAM: invalid salt encoding: %v", err)
	}

	cbindData := []byte(c.gs2Header)
	if c.plus {
		tlsUnique, ok := GetProperty(sess, CBTlsUnique)
		if !ok {
			return false, &NoPropertyError{Property: PropCBTlsUnique}
		}
		cbindData = append(cbindData, tlsUnique...)
	}
	cbind64 := base64.StdEncoding.EncodeToString(cbindData)
	clientFinalWithoutProof := scram.ClientFinalWithoutProof(cbind64, sf.Nonce)
	c.authMessage = scram.AuthMessage(c.clientFirstBare, string(input), clientFinalWithoutProof)

	saltedPassword, err := c.saltedPassword(sess, salt, sf.Iter)
	if err != nil {
		return false, err
	}
	clientKey := scram.ClientKey(c.hash, saltedPassword)
	storedKey := scram.StoredKey(c.hash, clientKey)
	c.serverKey = scram.ServerKey(c.hash, saltedPassword)

	clientSig := scram.ClientSignature(c.hash, storedKey, c.authMessage)
	proof := scram.XOR(clientKey, clientSig)

	msg := clientFinalWithoutProof + ",p=" + base64.StdEncoding.EncodeToString(proof)
	if _, err := out.Write([]byte(msg)); err != nil {
		return false, err
	}
	c.step = 2
	return true, nil
}

func (c *scramClient) saltedPassword(sess *Session, salt []byte, iter int) ([]byte, error) {
	if sp, ok := GetProperty(sess, ScramSaltedPassword); ok {
		return sp, nil
	}
	password, err := GetOrCallback(sess, Password)
	if err != nil {
		return nil, err
	}
	prepped, err := saslprep.Password(password)
	if err != nil {
		return nil, MechanismParseError("SCRAM: SASLprep failed: %v", err)
	}
	return scram.SaltedPassword(c.hash, prepped, salt, iter), nil
}

func (c *scramClient) stepServerFinal(sess *Session, input []byte) (bool, error) {
	sf, err := scram.ParseServerFinal(string(input))
	if err != nil {
		return false, MechanismParseError("%v", err)
	}
	if sf.Err != "" {
		return false, MechanismOutcomeError("SCRAM: server rejected authentication: %s", sf.Err)
	}

	verifier, err := base64.StdEncoding.DecodeString(sf.Verifier)
	if err != nil {
		return false, MechanismParseError("SCRAM: invalid verifier encoding: %v", err)
	}
	want := scram.ServerSignature(c.hash, c.serverKey, c.authMessage)
	if !scram.EqualConstantTime(verifier, want) {
		return false, MechanismOutcomeError("SCRAM: server signature verification failed")
	}
	c.step = 3
	return false, nil
}

// scramServer mirrors scramClient from the other side.
type scramServer struct {
	hash scram.HashFunc
	plus bool
	step int

	clientFirstBare string
	gs2Header       string
	serverFirstMsg  string
	authMessage     string
	storedKey       []byte
	serverKey       []byte
}

func (s *scramServer) Step(sess *Session, input []byte, out io.Writer) (bool, error) {
	switch s.step {
	case 0:
		return s.stepClientFirst(sess, input, out)
	case 1:
		return s.stepClientFinal(sess, input, out)
	default:
		return false, MechanismProtocolError("SCRAM: step called past completion")
	}
}

func (s *scramServer) stepClientFirst(sess *Session, input []byte, out io.Writer) (bool, error) {
	cfg := sess.Context().Config()
	header, n, err := gs2.Parse(string(input))
	if err != nil {
		return false, MechanismParseError("%v", err)
	}
	if s.plus && header.Mode != gs2.CBUsed {
		return false, MechanismProtocolError("SCRAM: PLUS variant requires a p= channel-binding header")
	}
	s.gs2Header = string(input)[:n]
	s.clientFirstBare = string(input)[n:]

	username, clientNonce, err := scram.ParseClientFirstBare(s.clientFirstBare)
	if err != nil {
		return false, MechanismParseError("%v", err)
	}
	SetProperty(sess, AuthId, username)
	if header.Authzid != "" {
		SetProperty(sess, AuthzId, header.Authzid)
	}

	serverNonce, err := scram.GenerateNonce(cfg.NonceLength)
	if err != nil {
		return false, err
	}
	combinedNonce := clientNonce + serverNonce

	salt, iter, err := s.lookupSaltIter(sess)
	if err != nil {
		return false, err
	}
	if err := s.lookupKeys(sess, salt, iter); err != nil {
		return false, err
	}

	s.serverFirstMsg = "r=" + combinedNonce + ",s=" + encodeSaltLike(cfg, salt) + ",i=" + strconv.Itoa(iter)
	if _, err := out.Write([]byte(s.serverFirstMsg)); err != nil {
		return false, err
	}
	s.step = 1
	return true, nil
}

func (s *scramServer) lookupSaltIter(sess *Session) ([]byte, int, error) {
	salt, err := GetOrCallback(sess, ScramSalt)
	if err != nil {
		return nil, 0, err
	}
	iter, err := GetOrCallback(sess, ScramIter)
	if err != nil {
		return nil, 0, err
	}
	return salt, int(iter), nil
}

func (s *scramServer) lookupKeys(sess *Session, salt []byte, iter int) error {
	if sk, ok1 := GetProperty(sess, ScramStoredKey); ok1 {
		if svk, ok2 := GetProperty(sess, ScramServerKey); ok2 {
			s.storedKey, s.serverKey = sk, svk
			return nil
		}
	}
	var saltedPassword []byte
	if sp, ok := GetProperty(sess, ScramSaltedPassword); ok {
		saltedPassword = sp
	} else {
		password, err := GetOrCallback(sess, Password)
		if err != nil {
			return err
		}
		prepped, err := saslprep.Password(password)
		if err != nil {
			return MechanismParseError("SCRAM: SASLprep failed: %v", err)
		}
		saltedPassword = scram.SaltedPassword(s.hash, prepped, salt, iter)
	}
	clientKey := scram.ClientKey(s.hash, saltedPassword)
	s.storedKey = scram.StoredKey(s.hash, clientKey)
	s.serverKey = scram.ServerKey(s.hash, saltedPassword)
	return nil
}

func (s *scramServer) stepClientFinal(sess *Session, input []byte, out io.Writer) (bool, error) {
	cf, err := scram.ParseClientFinal(string(input))
	if err != nil {
		return false, MechanismParseError("%v", err)
	}

	cbindData, err := base64.StdEncoding.DecodeString(cf.CBind)
	if err != nil {
		return false, MechanismParseError("SCRAM: invalid channel-binding encoding: %v", err)
	}
	wantCbind := []byte(s.gs2Header)
	if s.plus {
		tlsUnique, ok := GetProperty(sess, CBTlsUnique)
		if !ok {
			return false, &NoPropertyError{Property: PropCBTlsUnique}
		}
		wantCbind = append(wantCbind, tlsUnique...)
	}
	if !scram.EqualConstantTime(cbindData, wantCbind) {
		return false, MechanismProtocolError("SCRAM: client-final channel binding does not match client-first header")
	}

	clientFinalWithoutProof, err := scram.ClientFinalWithoutProofFromMsg(string(input))
	if err != nil {
		return false, MechanismParseError("%v", err)
	}
	s.authMessage = scram.AuthMessage(s.clientFirstBare, s.serverFirstMsg, clientFinalWithoutProof)

	proof, err := base64.StdEncoding.DecodeString(cf.Proof)
	if err != nil {
		return false, MechanismParseError("SCRAM: invalid proof encoding: %v", err)
	}

	clientSig := scram.ClientSignature(s.hash, s.storedKey, s.authMessage)
	clientKey := scram.XOR(proof, clientSig)
	recomputedStoredKey := scram.StoredKey(s.hash, clientKey)

	if !scram.EqualConstantTime(recomputedStoredKey, s.storedKey) {
		_, _ = out.Write([]byte("e=invalid-proof"))
		return false, MechanismOutcomeError("SCRAM: client proof verification failed")
	}

	serverSig := scram.ServerSignature(s.hash, s.serverKey, s.authMessage)
	if _, err := out.Write([]byte("v=" + base64.StdEncoding.EncodeToString(serverSig))); err != nil {
		return false, err
	}
	if err := sess.Validate(ValidationSimple); err != nil {
		return false, err
	}
	return false, nil
}
