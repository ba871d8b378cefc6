// Package b64sink is the small base64 convenience wrapper a SASL session's
// Step64 delegates to: decode a peer's framed message on the way in,
// encode a mechanism's output on the way out.
package b64sink

import (
	"encoding/base64"
	"io"
)

// Decode decodes a standard-alphabet, padded base64 message. An empty
// input decodes to nil rather than an error, matching the empty-response
// framing SASL mechanisms send for an empty continuation.
func Decode(input []byte) ([]byte, error) {
	if len(input) == 0 {
		return nil, nil
	}
	decoded := make([]byte, base64.StdEncoding.DecodedLen(len(input)))
	n, err := base64.StdEncoding.Decode(decoded, input)
	if err != nil {
		return nil, err
	}
	return decoded[:n], nil
}

// Encode writes data to out as standard-alphabet, padded base64.
func Encode(out io.Writer, data []byte) error {
	enc := base64.NewEncoder(base64.StdEncoding, out)
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
