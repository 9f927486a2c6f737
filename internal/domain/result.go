package domain

// AppResult is the outcome of a business action or trigger-driven operation.
// Expected domain failures (wrong state, unavailable action, rejected remote
// update) travel here with IsError set; exceptions are reserved for
// infrastructure trouble.
type AppResult struct {
	IsError           bool   `json:"isError"`
	Message           string `json:"message,omitempty"`
	MessageKey        string `json:"-"`
	NeedsConfirmation bool   `json:"needsConfirmation,omitempty"`
}

// OK returns a success result with a message key
func OK(messageKey string) AppResult {
	return AppResult{MessageKey: messageKey}
}

// Errorf returns an error result with a message key
func Errorf(messageKey string) AppResult {
	return AppResult{IsError: true, MessageKey: messageKey}
}

// ValidationErrorType classifies expected per-field validation failures
type ValidationErrorType string

const (
	InvalidDictionaryValue ValidationErrorType = "InvalidDictionaryValue"
	DuplicatedRecord       ValidationErrorType = "DuplicatedRecord"
	ValueIsReadonly        ValidationErrorType = "ValueIsReadonly"
	ValueIsRequired        ValidationErrorType = "ValueIsRequired"
)

// ValidateResult is returned by validation triggers and external update
// calls. A validation trigger with IsError vetoes the whole save.
type ValidateResult struct {
	IsError   bool                `json:"isError"`
	Field     string              `json:"field,omitempty"`
	ErrorType ValidationErrorType `json:"errorType,omitempty"`
	Message   string              `json:"message,omitempty"`
}

// ValidationOK is the zero-failure ValidateResult
func ValidationOK() ValidateResult {
	return ValidateResult{}
}

// ValidationError builds a failed ValidateResult for one field
func ValidationError(field string, errorType ValidationErrorType, message string) ValidateResult {
	return ValidateResult{IsError: true, Field: field, ErrorType: errorType, Message: message}
}
