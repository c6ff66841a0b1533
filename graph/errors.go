package graph

// Error codes surfaced to clients in the extensions of a GraphQL error.
const (
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidInput       = "BAD_USER_INPUT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
)

// Error is a typed resolver error. The GraphQL engine picks up Extensions
// and attaches the code to the serialized error.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

func errUnauthenticated() *Error {
	return &Error{Code: CodeUnauthenticated, Message: "You must be logged in"}
}

func errUnauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

func errInvalidInput(message string) *Error {
	return &Error{Code: CodeInvalidInput, Message: message}
}

// errInvalidCredentials deliberately does not say whether the email or the
// password was wrong.
func errInvalidCredentials() *Error {
	return &Error{Code: CodeInvalidCredentials, Message: "Invalid credentials"}
}
