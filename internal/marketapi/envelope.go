package marketapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Envelope is the uniform wrapper the marketplace API puts around every
// response payload. The transport layer may answer HTTP 200 while the
// business layer signals failure through these fields.
type Envelope struct {
	StatusCode string          `json:"status_code"`
	InError    bool            `json:"in_error"`
	Reason     string          `json:"reason"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

// OK reports logical success: the "000" and "001" code families with the
// error flag unset.
func (e *Envelope) OK() bool {
	if e.InError {
		return false
	}
	code := strings.TrimSpace(e.StatusCode)
	return strings.HasPrefix(code, "000") || strings.HasPrefix(code, "001")
}

// FailureMessage returns the user-facing text for a logical failure.
// Distinct status codes map straight through the server's reason text;
// the legacy practice of keyword-sniffing generic "999" reasons is gone.
func (e *Envelope) FailureMessage() string {
	if r := strings.TrimSpace(e.Reason); r != "" {
		return r
	}
	if m := strings.TrimSpace(e.Message); m != "" {
		return m
	}
	return "Something went wrong. Please try again."
}

// SuccessMessage returns the server's success text, if any.
func (e *Envelope) SuccessMessage() string {
	if m := strings.TrimSpace(e.Message); m != "" {
		return m
	}
	return strings.TrimSpace(e.Reason)
}

// httpStatusMessages maps known HTTP error statuses to user-facing text.
var httpStatusMessages = map[int]string{
	http.StatusBadRequest:          "The request was invalid. Please check your details and try again.",
	http.StatusUnauthorized:        "Incorrect credentials. Please try again.",
	http.StatusForbidden:           "You do not have permission to perform this action.",
	http.StatusNotFound:            "We could not find that account.",
	http.StatusConflict:            "An account with these details already exists.",
	http.StatusUnprocessableEntity: "Some of the submitted details were rejected. Please review and try again.",
	http.StatusTooManyRequests:     "Too many attempts. Please wait a moment and try again.",
}

// messageForHTTPStatus returns the user-facing message for an HTTP error
// status. 5xx statuses share one message.
func messageForHTTPStatus(status int) string {
	if msg, ok := httpStatusMessages[status]; ok {
		return msg
	}
	if status >= 500 {
		return "RentNest is having trouble right now. Please try again shortly."
	}
	return "The request could not be completed. Please try again."
}
