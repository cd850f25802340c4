package marketapi

import domainauth "github.com/rentnest/rentnest-web/internal/domain/auth"

// ErrCode tags for programmatic branching on adapter failures.
const (
	ErrCodeValidation = "validation_error" // input rejected before any network call
	ErrCodeAPI        = "api_error"        // HTTP 200 but the envelope signals failure
	ErrCodeHTTP       = "http_error"       // server responded with an error status
	ErrCodeNetwork    = "network_error"    // request sent, no response
	ErrCodeRequest    = "request_error"    // request never sent
)

// Result is the uniform envelope every credential adapter returns.
// Adapters never return Go errors for business failures; validation,
// logical API failure, and transport failure all land here.
type Result struct {
	Success bool
	// Message is the user-facing text: the server's success message or
	// the failure explanation.
	Message string
	// ErrCode tags the failure category; empty on success.
	ErrCode string
	// StatusCode is the envelope's business status code when a response
	// was received.
	StatusCode string
	// Reason is the envelope's reason string, verbatim. Registration
	// flows store it alongside the message for the verification screen.
	Reason string
	// Data is the decoded response body, preserved for the session store
	// to re-parse through its normalization boundary.
	Data map[string]any
	// User is the normalized user record; login adapters attach it.
	User *domainauth.User
	// Token is the bearer token echoed by login responses.
	Token string
}

func validationFailure(message string) Result {
	return Result{Success: false, Message: message, ErrCode: ErrCodeValidation}
}

func failure(errCode, message string) Result {
	return Result{Success: false, Message: message, ErrCode: errCode}
}
