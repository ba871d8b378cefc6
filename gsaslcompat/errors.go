package gsaslcompat

import (
	"errors"

	sasl "github.com/meszmate/gosasl"
)

// FromError maps an error returned by this module's Session/SASL API to
// the historical GSASL_* code a C caller would have received from the
// equivalent libgsasl call. A nil error maps to GSASL_OK; an error this
// façade does not recognize maps to GSASL_AUTHENTICATION_ERROR, the
// library's catch-all negative outcome.
func FromError(err error) Code {
	if err == nil {
		return GSASL_OK
	}

	switch {
	case errors.Is(err, sasl.ErrCalledTooManyTimes):
		return GSASL_MECHANISM_CALLED_TOO_MANY_TIMES
	case errors.Is(err, sasl.ErrAuthenticationFailure):
		return GSASL_AUTHENTICATION_ERROR
	case errors.Is(err, sasl.ErrInputDataRequired):
		return GSASL_MECHANISM_PARSE_ERROR
	case errors.Is(err, sasl.ErrNoClientCode):
		return GSASL_NO_CLIENT_CODE
	case errors.Is(err, sasl.ErrNoServerCode):
		return GSASL_NO_SERVER_CODE
	}

	var unknownMech *sasl.UnknownMechanismError
	if errors.As(err, &unknownMech) {
		return GSASL_UNKNOWN_MECHANISM
	}

	var base64Err *sasl.Base64Error
	if errors.As(err, &base64Err) {
		return GSASL_BASE64_ERROR
	}

	var noCallback *sasl.NoCallbackError
	if errors.As(err, &noCallback) {
		return GSASL_NO_CALLBACK
	}

	var noProp *sasl.NoPropertyError
	if errors.As(err, &noProp) {
		if code, ok := propertyCode[noProp.Property]; ok {
			return code
		}
		return GSASL_NO_CALLBACK
	}

	var mechErr *sasl.MechanismError
	if errors.As(err, &mechErr) {
		switch mechErr.Kind {
		case sasl.KindParse:
			return GSASL_MECHANISM_PARSE_ERROR
		case sasl.KindOutcome:
			return GSASL_AUTHENTICATION_ERROR
		default:
			return GSASL_INTEGRITY_ERROR
		}
	}

	return GSASL_AUTHENTICATION_ERROR
}

// propertyCode maps a missing-property identifier to the specific
// GSASL_NO_* code the C library returns for it, where one exists.
var propertyCode = map[sasl.PropertyID]Code{
	sasl.PropAuthId:             GSASL_NO_AUTHID,
	sasl.PropAuthzId:            GSASL_NO_AUTHZID,
	sasl.PropPassword:           GSASL_NO_PASSWORD,
	sasl.PropAnonymousToken:     GSASL_NO_ANONYMOUS_TOKEN,
	sasl.PropService:            GSASL_NO_SERVICE,
	sasl.PropHostname:           GSASL_NO_HOSTNAME,
	sasl.PropPasscode:           GSASL_NO_PASSCODE,
	sasl.PropPin:                GSASL_NO_PIN,
	sasl.PropCBTlsUnique:        GSASL_NO_CB_TLS_UNIQUE,
	sasl.PropSAML20IDPIdentifier: GSASL_NO_SAML20_IDP_IDENTIFIER,
	sasl.PropSAML20RedirectUrl:  GSASL_NO_SAML20_REDIRECT_URL,
	sasl.PropOpenID20RedirectUrl: GSASL_NO_OPENID20_REDIRECT_URL,
}

// Error adapts a Code back into a Go error, for code translating in the
// opposite direction (a legacy integer result arriving from elsewhere that
// needs to be raised as a normal Go error).
type Error struct {
	Code Code
}

func (e *Error) Error() string {
	return e.Code.String()
}
