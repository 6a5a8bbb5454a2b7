package errors

import "iusearch/constant"

// CustomError is the typed error used across the client. Message resolves
// through the constant maps so every failure path yields a single
// human-readable string; Cause keeps the underlying error for logs only and
// is never shown to the user.
type CustomError struct {
	errType constant.ErrorType
	message string
	cause   error
}

func (c CustomError) Error() string {
	if c.message != "" {
		return c.message
	}
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorType() constant.ErrorType {
	return c.errType
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) Unwrap() error {
	return c.cause
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{errType: errorType}
}

// WithMessage overrides the mapped message, used when the backend supplied
// a more specific one.
func SetCustomErrorMessage(errorType constant.ErrorType, message string) CustomError {
	return CustomError{errType: errorType, message: message}
}

func WrapCustomError(errorType constant.ErrorType, cause error) CustomError {
	return CustomError{errType: errorType, cause: cause}
}

// TypeOf reports the taxonomy type of err, or ErrInternal for foreign errors.
func TypeOf(err error) constant.ErrorType {
	if err == nil {
		return constant.Successful
	}
	if ce, ok := err.(CustomError); ok {
		return ce.ErrorType()
	}
	return constant.ErrInternal
}

// IsType reports whether err is a CustomError of the given type.
func IsType(err error, errorType constant.ErrorType) bool {
	ce, ok := err.(CustomError)
	return ok && ce.ErrorType() == errorType
}

// UserMessage picks the most specific user-facing message for err: the fixed
// taxonomy message for transport, authorization, storage and invalid-response
// failures, a backend-supplied message when one was decoded, and otherwise
// the caller's per-operation fallback.
func UserMessage(err error, fallback string) string {
	ce, ok := err.(CustomError)
	if !ok {
		return fallback
	}
	switch ce.errType {
	case constant.ErrTransport, constant.ErrUnauthorized, constant.ErrInvalidResponse, constant.ErrStorage:
		return ce.Error()
	default:
		if ce.message != "" {
			return ce.message
		}
		return fallback
	}
}
