package constant

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrStorage
	ErrTransport
	ErrUnauthorized
	ErrInvalidResponse
	ErrValidation
)

// User-facing messages. The transport and invalid-response strings are fixed
// and shown verbatim in the UI; never replace them with raw error text.
var ErrorTypeMessage = map[ErrorType]string{
	Successful:         "success",
	ErrInternal:        "An unexpected error occurred. Please try again.",
	ErrStorage:         "Secure storage is unavailable.",
	ErrTransport:       "Network error. Please check your connection.",
	ErrUnauthorized:    "Your session has expired. Please log in again.",
	ErrInvalidResponse: "Invalid response from server. Please try again.",
	ErrValidation:      "invalid input",
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:         "0000",
	ErrInternal:        "0001",
	ErrStorage:         "0002",
	ErrTransport:       "0003",
	ErrUnauthorized:    "0004",
	ErrInvalidResponse: "0005",
	ErrValidation:      "0006",
}
