package goplus

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport is matched by every TransportError
	ErrTransport = errors.New("transport failure")

	// ErrHTTPStatus is matched by every HTTPStatusError
	ErrHTTPStatus = errors.New("unexpected http status")

	// ErrDecode is matched by every DecodeError
	ErrDecode = errors.New("response decode failed")

	// ErrMissingField is returned when a required field is absent or null
	ErrMissingField = errors.New("required field missing")

	// ErrRemoteStatus is matched by every StatusError
	ErrRemoteStatus = errors.New("remote reported non-success status")

	// ErrUnknownOperation is returned by the router for an operation it does not know
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrUnknownApprovalKind is returned for an approval kind outside ERC20/ERC721/ERC1155
	ErrUnknownApprovalKind = errors.New("unknown approval kind")

	// ErrCredentialNotFound is returned by a Store when no credential is cached
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrStoreOperationFailed is returned when a store operation fails
	ErrStoreOperationFailed = errors.New("store operation failed")
)

// TransportError reports a failure before any HTTP response was obtained
// (DNS, TLS, timeout, cancelled context).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// HTTPStatusError reports a non-2xx HTTP response.
type HTTPStatusError struct {
	Op         string
	StatusCode int
	Body       []byte
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s: http status %d: %s", e.Op, e.StatusCode, truncate(e.Body, 256))
}

func (e *HTTPStatusError) Is(target error) bool { return target == ErrHTTPStatus }

// DecodeError reports a 2xx body that could not be parsed into the expected shape.
// Path is the JSON path of the offending field when known.
type DecodeError struct {
	Op   string
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: decode %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: decode: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// StatusError carries a remote envelope code that does not allow its result
// to be consumed. Operations never return it for data calls; it is produced
// by Envelope.Err and by RefreshCredential.
type StatusError struct {
	Code     uint32
	Message  string
	Category Category
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("goplus status %d (%s): %s", e.Code, e.Category, e.Message)
}

func (e *StatusError) Is(target error) bool { return target == ErrRemoteStatus }

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
