// Package gs2 builds and parses the GS2 header (RFC 5801 §4) that prefixes
// SCRAM, SAML20, and OPENID20 client-first messages: the channel-binding
// mode, an optional authorization identity, and the two trailing commas
// that frame them.
package gs2

import (
	"fmt"
	"strings"
)

// CBMode selects how the client advertises channel-binding support.
type CBMode int

const (
	// CBNone means the client does not support channel binding.
	CBNone CBMode = iota
	// CBSupportedUnused means the client supports channel binding but
	// believes the server does not, so it is not used this exchange.
	CBSupportedUnused
	// CBUsed means the client is using channel binding, naming the
	// specific binding type in Header.CBName.
	CBUsed
)

// Header is a parsed GS2 header.
type Header struct {
	Mode   CBMode
	CBName string
	Authzid string
}

// Encode renders h in wire form: ("n" / "y" / "p=" cb-name) "," ["a=" authzid] ",".
func (h Header) Encode() string {
	var b strings.Builder
	switch h.Mode {
	case CBUsed:
		b.WriteString("p=")
		b.WriteString(h.CBName)
	case CBSupportedUnused:
		b.WriteByte('y')
	default:
		b.WriteByte('n')
	}
	b.WriteByte(',')
	if h.Authzid != "" {
		b.WriteString("a=")
		b.WriteString(h.Authzid)
	}
	b.WriteByte(',')
	return b.String()
}

// Parse decodes a GS2 header from the start of s, returning the header and
// the number of bytes it consumed.
func Parse(s string) (Header, int, error) {
	var h Header
	if s == "" {
		return h, 0, fmt.Errorf("gs2: empty header")
	}

	rest := s
	switch {
	case rest[0] == 'n':
		h.Mode = CBNone
		rest = rest[1:]
	case rest[0] == 'y':
		h.Mode = CBSupportedUnused
		rest = rest[1:]
	case strings.HasPrefix(rest, "p="):
		idx := strings.IndexByte(rest, ',')
		if idx < 0 {
			return h, 0, fmt.Errorf("gs2: unterminated cb-name in header")
		}
		h.Mode = CBUsed
		h.CBName = rest[2:idx]
		rest = rest[idx:]
	default:
		return h, 0, fmt.Errorf("gs2: invalid channel-binding flag %q", rest[:1])
	}

	if len(rest) == 0 || rest[0] != ',' {
		return h, 0, fmt.Errorf("gs2: expected ',' after channel-binding flag")
	}
	rest = rest[1:]

	if strings.HasPrefix(rest, "a=") {
		idx := strings.IndexByte(rest, ',')
		if idx < 0 {
			return h, 0, fmt.Errorf("gs2: unterminated authzid in header")
		}
		h.Authzid = rest[2:idx]
		rest = rest[idx:]
	}

	if len(rest) == 0 || rest[0] != ',' {
		return h, 0, fmt.Errorf("gs2: expected trailing ',' in header")
	}
	rest = rest[1:]

	return h, len(s) - len(rest), nil
}
