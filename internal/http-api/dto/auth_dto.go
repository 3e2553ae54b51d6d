package dto

// Data Transfer Objects for the signup and token-exchange flow

// SignUpRequest: payload for account registration
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email,max=128"`
	Username string `json:"username" binding:"required,max=150"`
}

// SignUpResponse echoes the accepted fields; the confirmation code is
// only ever delivered by email.
type SignUpResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// TokenRequest: payload for exchanging a confirmation code
type TokenRequest struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// TokenResponse: issued access token
type TokenResponse struct {
	Token string `json:"token"`
}
