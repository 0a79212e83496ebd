// Package dlperrors defines the error vocabulary shared across the log
// decoding pipeline, mirroring the distinct failure kinds a caller needs to
// branch on (malformed container, missing keychain, HTTP collaborator
// failure) without collapsing them into opaque strings.
package dlperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors callers can match with errors.Is.
var (
	// ErrKeychainRequired is returned by Parser.Records/Frames when the log
	// version requires feature decryption (version >= 13) and the caller
	// did not supply resolved keychains.
	ErrKeychainRequired = errors.New("dji-log-parser: keychains required for version >= 13 logs")

	// ErrApiKey is returned when the keychain HTTP endpoint rejects the
	// configured API key (HTTP 403).
	ErrApiKey = errors.New("dji-log-parser: invalid keychain API key")

	// ErrNetworkConnection is returned when the keychain HTTP request could
	// not be sent at all (DNS, TLS, connection refused, etc).
	ErrNetworkConnection = errors.New("dji-log-parser: keychain network connection failed")
)

// ParseError reports a malformed-binary condition with positional context.
type ParseError struct {
	Offset  int64
	Context string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dji-log-parser: parse error at offset %d (%s): %v", e.Offset, e.Context, e.Err)
	}
	return fmt.Sprintf("dji-log-parser: parse error at offset %d: %s", e.Offset, e.Context)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError builds a ParseError. wrapped may be nil.
func NewParseError(offset int64, context string, wrapped error) *ParseError {
	return &ParseError{Offset: offset, Context: context, Err: wrapped}
}

// MissingAuxiliaryDataError reports that a required Auxiliary block (Info or
// Version) was not present where the container layout promised one.
type MissingAuxiliaryDataError struct {
	Kind string
}

func (e *MissingAuxiliaryDataError) Error() string {
	return fmt.Sprintf("dji-log-parser: missing auxiliary data block %q", e.Kind)
}

// ApiError reports an application-level failure reported by the keychain
// service itself (result.code != 0, or a missing data payload on success).
type ApiError struct {
	Msg string
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("dji-log-parser: keychain api error: %s", e.Msg)
}

// NetworkRequestStatusError reports a non-2xx, non-403 HTTP status from the
// keychain endpoint.
type NetworkRequestStatusError struct {
	StatusCode int
}

func (e *NetworkRequestStatusError) Error() string {
	return fmt.Sprintf("dji-log-parser: keychain endpoint returned status %d", e.StatusCode)
}
