package models

// ErrorResponse is the generic error body returned by all endpoints.
// @Description Error response
type ErrorResponse struct {
	Message string `json:"message" example:"Invalid init data"`
	Error   string `json:"error,omitempty" example:"hash_mismatch"`
}

// AuthResponse is returned on successful validation.
// @Description Successful authentication response
type AuthResponse struct {
	Message string `json:"message" example:"authentication successful"`
	User    *User  `json:"user"`
}
