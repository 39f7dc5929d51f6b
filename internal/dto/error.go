package dto

// ErrorResponse is the body of every failed call. Kind is stable; Error is for humans.
type ErrorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}
