package errors

import "fmt"

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code, message string, cause ...error) *AppError {
	var c error
	if len(cause) > 0 {
		c = cause[0]
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   c,
	}
}

var (
	ErrConfigInvalid = &AppError{Code: "CONFIG_001", Message: "invalid configuration"}

	ErrUnsupportedType  = &AppError{Code: "EXTRACT_001", Message: "unsupported extraction type"}
	ErrNoExtractor      = &AppError{Code: "EXTRACT_002", Message: "no extractor available for type"}
	ErrExtractionFailed = &AppError{Code: "EXTRACT_003", Message: "extraction failed"}

	ErrOCRUnavailable = &AppError{Code: "OCR_001", Message: "OCR service unavailable"}
	ErrOCRNoText      = &AppError{Code: "OCR_002", Message: "OCR response contained no text"}

	ErrLLMNotConfigured = &AppError{Code: "LLM_001", Message: "no LLM provider configured"}
	ErrLLMUnavailable   = &AppError{Code: "LLM_002", Message: "LLM provider unavailable"}

	ErrInvalidUpload = &AppError{Code: "UPLOAD_001", Message: "uploaded file is not an image"}

	ErrBadRequest = &AppError{Code: "GEN_001", Message: "bad request"}
	ErrInternal   = &AppError{Code: "GEN_002", Message: "internal error"}
)

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}
