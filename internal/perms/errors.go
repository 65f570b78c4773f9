package perms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

// ErrorKind says why a remote operation did not succeed.
type ErrorKind int

const (
	// KindConnection covers network, endpoint and credential-loading
	// failures, and anything not otherwise recognised.
	KindConnection ErrorKind = iota
	// KindAuthorization covers access denied and rejected signatures/tokens.
	KindAuthorization
	// KindDecode covers malformed policy documents.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindAuthorization:
		return "authorization"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ErrDecode marks policy-document decoding failures.
var ErrDecode = errors.New("decode policy document")

// Error is a failed strategy step tagged with its cause.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s failure", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s failure: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// newError classifies err and wraps it with the failing operation name.
func newError(op string, err error) *Error {
	return &Error{Kind: Classify(err), Op: op, Err: err}
}

var authorizationCodes = map[string]bool{
	"AccessDenied":                true,
	"AccessDeniedException":       true,
	"UnauthorizedOperation":       true,
	"UnauthorizedAccess":          true,
	"InvalidClientTokenId":        true,
	"SignatureDoesNotMatch":       true,
	"AuthFailure":                 true,
	"AuthorizationError":          true,
	"ExpiredToken":                true,
	"ExpiredTokenException":       true,
	"InvalidAccessKeyId":          true,
	"UnrecognizedClientException": true,
}

// Classify maps an error returned by a capability to an ErrorKind.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindConnection
	}

	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	if errors.Is(err, ErrDecode) {
		return KindDecode
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		if authorizationCodes[code] || strings.Contains(code, "NotAuthorized") {
			return KindAuthorization
		}
	}
	return KindConnection
}
