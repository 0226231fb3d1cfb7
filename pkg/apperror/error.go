package apperror

import "net/http"

// AppError is pushed onto the gin context and rendered by middleware.ErrorHandler.
// Message is what the client sees; Err is only ever logged.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func TooLarge(message string) *AppError {
	return New(http.StatusRequestEntityTooLarge, message, nil)
}

func Internal(message string, err error) *AppError {
	return New(http.StatusInternalServerError, message, err)
}
