// Package response provides the {data, error} envelope used by every gateway
// endpoint and maps fredclient errors onto HTTP status codes.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/arbaizam/fredclient/pkg/errors"
)

// Response represents the standardized API response structure.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error represents an API error with code, message, and optional details.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	// UpstreamStatus is the status FRED answered with, when there was one.
	UpstreamStatus int `json:"upstream_status,omitempty"`
}

// Error codes.
const (
	CodeBadRequest        = "BAD_REQUEST"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeNotFound          = "NOT_FOUND"
	CodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	CodeUpstreamStatus    = "UPSTREAM_STATUS"
	CodeUpstreamTransport = "UPSTREAM_UNREACHABLE"
	CodeMalformedResponse = "MALFORMED_RESPONSE"
	CodeInternal          = "INTERNAL_ERROR"
)

// Success creates a successful response with data.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail creates an error response.
func Fail(code, message, details string) Response {
	return Response{
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing useful can be done with an encode error.
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes a successful response with 200 status.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusBadRequest, Fail(CodeBadRequest, message, details))
}

// Unauthorized writes a 401 error response.
func Unauthorized(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusUnauthorized, Fail(CodeUnauthorized, message, details))
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusNotFound, Fail(CodeNotFound, message, details))
}

// MethodNotAllowed writes a 405 error response.
func MethodNotAllowed(w http.ResponseWriter, method string) {
	JSON(w, http.StatusMethodNotAllowed, Fail(
		CodeMethodNotAllowed,
		"Method not allowed",
		"Method "+method+" is not supported for this endpoint",
	))
}

// BadGateway writes a 502 error response.
func BadGateway(w http.ResponseWriter, code, message, details string, upstreamStatus int) {
	resp := Fail(code, message, details)
	resp.Error.UpstreamStatus = upstreamStatus
	JSON(w, http.StatusBadGateway, resp)
}

// InternalError writes a 500 error response without exposing err.
func InternalError(w http.ResponseWriter, _ error) {
	JSON(w, http.StatusInternalServerError, Fail(
		CodeInternal,
		"Internal server error",
		"An unexpected error occurred",
	))
}

// StatusFor returns the HTTP status ErrorFromType writes for err.
func StatusFor(err error) int {
	switch {
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.IsValidationError(err):
		return http.StatusBadRequest
	case errors.IsHTTPStatus(err), errors.IsTransport(err), errors.IsMalformedResponse(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorFromType maps typed errors to appropriate HTTP responses.
func ErrorFromType(w http.ResponseWriter, err error) {
	var (
		statusErr    *errors.HTTPStatusError
		transportErr *errors.TransportError
		malformedErr *errors.MalformedResponseError
	)

	switch {
	case errors.IsNotFound(err):
		NotFound(w, err.Error(), "")
	case errors.IsValidationError(err):
		BadRequest(w, err.Error(), "")
	case errors.As(err, &statusErr):
		BadGateway(w, CodeUpstreamStatus,
			fmt.Sprintf("FRED returned status %d", statusErr.StatusCode),
			statusErr.Body, statusErr.StatusCode)
	case errors.As(err, &transportErr):
		BadGateway(w, CodeUpstreamTransport, "FRED could not be reached", transportErr.Err.Error(), 0)
	case errors.As(err, &malformedErr):
		BadGateway(w, CodeMalformedResponse, "FRED returned a non-JSON body", malformedErr.Body, 0)
	default:
		InternalError(w, err)
	}
}
