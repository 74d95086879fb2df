package dto

// ErrorResponse carries a client facing error message.
type ErrorResponse struct {
	Error string `json:"error"`
}
