package model

import "time"

type SignupRequest struct {
	Username     string `json:"username" binding:"required,min=3,max=50"`
	Email        string `json:"useremail" binding:"required,email"`
	Password     string `json:"userpassword" binding:"required,min=6"`
	ProfileImage string `json:"userprofileImage"`
}

type SigninRequest struct {
	Email    string `json:"useremail" binding:"required,email"`
	Password string `json:"userpassword" binding:"required"`
}

type AuthResponse struct {
	Token        string  `json:"token"`
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"useremail"`
	ProfileImage *string `json:"userprofileImage"`
}

// AuthUser is the identity carried by a verified bearer token.
type AuthUser struct {
	ID        string
	Username  string
	Email     string
	ExpiresAt time.Time
	Token     string
}

type BlacklistedToken struct {
	ID            int64
	Token         string
	UserID        string
	ExpiresAt     time.Time
	BlacklistedAt time.Time
}
