package core

import (
	"errors"
	"fmt"
	"net/http"
)

// ApiError represents a non-200 response from the array that was not
// transparently recovered by the session (session re-establishment on 401,
// REST version renegotiation on 450).
//
// Body holds the raw response text. The error message in Body is not
// guaranteed to be consistent across REST versions, and thus should not be
// programmed against.
type ApiError struct {
	Target      string      // IP or DNS name of the array that received the request.
	RestVersion string      // REST API version in use when the request was made.
	Method      string      // HTTP verb of the failed request.
	URL         string      // Full URL of the failed request.
	StatusCode  int         // HTTP response status code.
	Headers     http.Header // Response header mapping.
	Body        string      // Raw response body text.
}

// Error implements the error interface.
func (e *ApiError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("response body: %s", e.Body)
	}
	return fmt.Sprintf(
		"%s request to %s returned status code %d (REST version %s at %s),"+
			" response body: %s", e.Method, e.URL, e.StatusCode, e.RestVersion, e.Target, e.Body,
	)
}

func IsApiError(err error) bool {
	var apiErr *ApiError
	return errors.As(err, &apiErr)
}

// IgnoreStatusCodes returns nil if err is an ApiError with one of the given
// status codes, otherwise it returns err unchanged.
func IgnoreStatusCodes(err error, codes ...int) error {
	if !IsApiError(err) {
		return err
	}
	apiErr := err.(*ApiError)
	for _, code := range codes {
		if apiErr.StatusCode == code {
			return nil
		}
	}
	return err
}

// ExpectStatusCodes reports whether err is an ApiError carrying one of the
// given status codes.
func ExpectStatusCodes(err error, codes ...int) bool {
	if !IsApiError(err) {
		return false
	}
	apiErr := err.(*ApiError)
	for _, code := range codes {
		if apiErr.StatusCode == code {
			return true
		}
	}
	return false
}

// IgnoreNotFound returns nil if err is an ApiError with status 400 or 404,
// the codes Purity answers with when a named resource does not exist.
func IgnoreNotFound(err error) error {
	return IgnoreStatusCodes(err, http.StatusBadRequest, http.StatusNotFound)
}
