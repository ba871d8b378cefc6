package gsaslcompat

import (
	"testing"

	sasl "github.com/meszmate/gosasl"
)

func TestFromErrorNil(t *testing.T) {
	if got := FromError(nil); got != GSASL_OK {
		t.Fatalf("FromError(nil) = %v, want GSASL_OK", got)
	}
}

func TestFromErrorSentinels(t *testing.T) {
	cases := []struct {
		err  error
		want Code
	}{
		{sasl.ErrCalledTooManyTimes, GSASL_MECHANISM_CALLED_TOO_MANY_TIMES},
		{sasl.ErrAuthenticationFailure, GSASL_AUTHENTICATION_ERROR},
		{sasl.ErrInputDataRequired, GSASL_MECHANISM_PARSE_ERROR},
		{&sasl.UnknownMechanismError{Name: "BOGUS"}, GSASL_UNKNOWN_MECHANISM},
		{&sasl.NoPropertyError{Property: sasl.PropAuthId}, GSASL_NO_AUTHID},
		{&sasl.NoCallbackError{Property: sasl.PropPassword}, GSASL_NO_CALLBACK},
	}
	for _, c := range cases {
		if got := FromError(c.err); got != c.want {
			t.Errorf("FromError(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}

func TestCodeStringUnknown(t *testing.T) {
	if got := Code(9999).String(); got != "GSASL_UNKNOWN" {
		t.Errorf("Code(9999).String() = %q, want GSASL_UNKNOWN", got)
	}
}
