// Package gsaslcompat is a compatibility façade translating this module's
// error taxonomy into the historical GNU SASL library's GSASL_* integer
// return codes, for callers porting code written against that C API.
package gsaslcompat

// Code is a GNU SASL library return code (Gsasl_rc in the original C API).
type Code int

// The GSASL_* codes, numbered exactly as the C library defines them.
const (
	GSASL_OK                               Code = 0
	GSASL_NEEDS_MORE                       Code = 1
	GSASL_UNKNOWN_MECHANISM                Code = 2
	GSASL_MECHANISM_CALLED_TOO_MANY_TIMES  Code = 3
	GSASL_MALLOC_ERROR                     Code = 7
	GSASL_BASE64_ERROR                     Code = 8
	GSASL_CRYPTO_ERROR                     Code = 9
	GSASL_SASLPREP_ERROR                   Code = 29
	GSASL_MECHANISM_PARSE_ERROR            Code = 30
	GSASL_AUTHENTICATION_ERROR             Code = 31
	GSASL_INTEGRITY_ERROR                  Code = 33
	GSASL_NO_CLIENT_CODE                   Code = 35
	GSASL_NO_SERVER_CODE                   Code = 36
	GSASL_NO_CALLBACK                      Code = 51
	GSASL_NO_ANONYMOUS_TOKEN                Code = 52
	GSASL_NO_AUTHID                         Code = 53
	GSASL_NO_AUTHZID                        Code = 54
	GSASL_NO_PASSWORD                       Code = 55
	GSASL_NO_PASSCODE                       Code = 56
	GSASL_NO_PIN                            Code = 57
	GSASL_NO_SERVICE                        Code = 58
	GSASL_NO_HOSTNAME                       Code = 59
	GSASL_NO_CB_TLS_UNIQUE                  Code = 65
	GSASL_NO_SAML20_IDP_IDENTIFIER          Code = 66
	GSASL_NO_SAML20_REDIRECT_URL            Code = 67
	GSASL_NO_OPENID20_REDIRECT_URL          Code = 68
	GSASL_GSSAPI_RELEASE_BUFFER_ERROR       Code = 37
	GSASL_GSSAPI_IMPORT_NAME_ERROR          Code = 38
	GSASL_GSSAPI_INIT_SEC_CONTEXT_ERROR     Code = 39
	GSASL_GSSAPI_ACCEPT_SEC_CONTEXT_ERROR   Code = 40
	GSASL_GSSAPI_UNWRAP_ERROR               Code = 44
	GSASL_GSSAPI_WRAP_ERROR                 Code = 45
	GSASL_GSSAPI_ACQUIRE_CRED_ERROR         Code = 49
	GSASL_GSSAPI_DISPLAY_NAME_ERROR         Code = 50
	GSASL_GSSAPI_UNSUPPORTED_PROTECTION_ERROR Code = 46
	GSASL_GSSAPI_ENCAPSULATE_TOKEN_ERROR    Code = 69
	GSASL_GSSAPI_DECAPSULATE_TOKEN_ERROR    Code = 70
	GSASL_GSSAPI_INQUIRE_MECH_FOR_SASLNAME_ERROR Code = 71
	GSASL_GSSAPI_TEST_OID_SET_MEMBER_ERROR  Code = 72
	GSASL_GSSAPI_RELEASE_OID_SET_ERROR      Code = 73
	GSASL_SECURID_SERVER_NEED_ADDITIONAL_PASSCODE Code = 74
	GSASL_SECURID_SERVER_NEED_NEW_PIN       Code = 75
)

var codeNames = map[Code]string{
	GSASL_OK:                               "GSASL_OK",
	GSASL_NEEDS_MORE:                       "GSASL_NEEDS_MORE",
	GSASL_UNKNOWN_MECHANISM:                "GSASL_UNKNOWN_MECHANISM",
	GSASL_MECHANISM_CALLED_TOO_MANY_TIMES:  "GSASL_MECHANISM_CALLED_TOO_MANY_TIMES",
	GSASL_MALLOC_ERROR:                     "GSASL_MALLOC_ERROR",
	GSASL_BASE64_ERROR:                     "GSASL_BASE64_ERROR",
	GSASL_CRYPTO_ERROR:                     "GSASL_CRYPTO_ERROR",
	GSASL_SASLPREP_ERROR:                   "GSASL_SASLPREP_ERROR",
	GSASL_MECHANISM_PARSE_ERROR:            "GSASL_MECHANISM_PARSE_ERROR",
	GSASL_AUTHENTICATION_ERROR:             "GSASL_AUTHENTICATION_ERROR",
	GSASL_INTEGRITY_ERROR:                  "GSASL_INTEGRITY_ERROR",
	GSASL_NO_CLIENT_CODE:                   "GSASL_NO_CLIENT_CODE",
	GSASL_NO_SERVER_CODE:                   "GSASL_NO_SERVER_CODE",
	GSASL_NO_CALLBACK:                      "GSASL_NO_CALLBACK",
	GSASL_NO_ANONYMOUS_TOKEN:               "GSASL_NO_ANONYMOUS_TOKEN",
	GSASL_NO_AUTHID:                        "GSASL_NO_AUTHID",
	GSASL_NO_AUTHZID:                       "GSASL_NO_AUTHZID",
	GSASL_NO_PASSWORD:                      "GSASL_NO_PASSWORD",
	GSASL_NO_PASSCODE:                      "GSASL_NO_PASSCODE",
	GSASL_NO_PIN:                           "GSASL_NO_PIN",
	GSASL_NO_SERVICE:                       "GSASL_NO_SERVICE",
	GSASL_NO_HOSTNAME:                      "GSASL_NO_HOSTNAME",
	GSASL_NO_CB_TLS_UNIQUE:                 "GSASL_NO_CB_TLS_UNIQUE",
	GSASL_NO_SAML20_IDP_IDENTIFIER:         "GSASL_NO_SAML20_IDP_IDENTIFIER",
	GSASL_NO_SAML20_REDIRECT_URL:           "GSASL_NO_SAML20_REDIRECT_URL",
	GSASL_NO_OPENID20_REDIRECT_URL:         "GSASL_NO_OPENID20_REDIRECT_URL",
	GSASL_GSSAPI_RELEASE_BUFFER_ERROR:      "GSASL_GSSAPI_RELEASE_BUFFER_ERROR",
	GSASL_GSSAPI_IMPORT_NAME_ERROR:         "GSASL_GSSAPI_IMPORT_NAME_ERROR",
	GSASL_GSSAPI_INIT_SEC_CONTEXT_ERROR:    "GSASL_GSSAPI_INIT_SEC_CONTEXT_ERROR",
	GSASL_GSSAPI_ACCEPT_SEC_CONTEXT_ERROR:  "GSASL_GSSAPI_ACCEPT_SEC_CONTEXT_ERROR",
	GSASL_GSSAPI_UNWRAP_ERROR:              "GSASL_GSSAPI_UNWRAP_ERROR",
	GSASL_GSSAPI_WRAP_ERROR:                "GSASL_GSSAPI_WRAP_ERROR",
	GSASL_GSSAPI_ACQUIRE_CRED_ERROR:        "GSASL_GSSAPI_ACQUIRE_CRED_ERROR",
	GSASL_GSSAPI_DISPLAY_NAME_ERROR:        "GSASL_GSSAPI_DISPLAY_NAME_ERROR",
	GSASL_GSSAPI_UNSUPPORTED_PROTECTION_ERROR: "GSASL_GSSAPI_UNSUPPORTED_PROTECTION_ERROR",
	GSASL_GSSAPI_ENCAPSULATE_TOKEN_ERROR:   "GSASL_GSSAPI_ENCAPSULATE_TOKEN_ERROR",
	GSASL_GSSAPI_DECAPSULATE_TOKEN_ERROR:   "GSASL_GSSAPI_DECAPSULATE_TOKEN_ERROR",
	GSASL_GSSAPI_INQUIRE_MECH_FOR_SASLNAME_ERROR: "GSASL_GSSAPI_INQUIRE_MECH_FOR_SASLNAME_ERROR",
	GSASL_GSSAPI_TEST_OID_SET_MEMBER_ERROR: "GSASL_GSSAPI_TEST_OID_SET_MEMBER_ERROR",
	GSASL_GSSAPI_RELEASE_OID_SET_ERROR:     "GSASL_GSSAPI_RELEASE_OID_SET_ERROR",
	GSASL_SECURID_SERVER_NEED_ADDITIONAL_PASSCODE: "GSASL_SECURID_SERVER_NEED_ADDITIONAL_PASSCODE",
	GSASL_SECURID_SERVER_NEED_NEW_PIN:      "GSASL_SECURID_SERVER_NEED_NEW_PIN",
}

// String renders a code as its GSASL_* constant name, or "GSASL_UNKNOWN" if
// the code is not one of the constants above.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "GSASL_UNKNOWN"
}
