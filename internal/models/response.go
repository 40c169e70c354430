package models

// MessageResponse is the API's plain {"msg": ...} body, used for error and
// confirmation messages alike.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// NewMessageResponse creates a {"msg": ...} response
func NewMessageResponse(msg string) MessageResponse {
	return MessageResponse{Msg: msg}
}

// FieldError is a single validation failure tied to a request field.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// ValidationErrorResponse lists per-field validation failures.
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// NewValidationErrorResponse creates a validation error response
func NewValidationErrorResponse(fieldErrors map[string]string) ValidationErrorResponse {
	resp := ValidationErrorResponse{Errors: make([]FieldError, 0, len(fieldErrors))}
	for param, msg := range fieldErrors {
		resp.Errors = append(resp.Errors, FieldError{Msg: msg, Param: param})
	}
	return resp
}

// TokenResponse is returned after successful registration or login.
type TokenResponse struct {
	Token string `json:"token"`
}
