package model

import "time"

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	ProfileImage *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UpdateProfileRequest - 빈 값은 기존 값을 유지
type UpdateProfileRequest struct {
	Username     string  `json:"username" binding:"omitempty,min=3,max=50"`
	Email        string  `json:"useremail" binding:"omitempty,email"`
	Password     string  `json:"userpassword" binding:"omitempty,min=6"`
	ProfileImage *string `json:"userprofileImage"`
}

type ProfileResponse struct {
	UserID       string  `json:"userid"`
	Username     string  `json:"username"`
	Email        string  `json:"useremail"`
	ProfileImage *string `json:"userprofileImage"`
}

func NewProfileResponse(user *User) ProfileResponse {
	return ProfileResponse{
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
		ProfileImage: user.ProfileImage,
	}
}
