package dto

import (
	"mime/multipart"
	"time"
)

// RegisterRequest is bound from a multipart form.
type RegisterRequest struct {
	Username     string                `form:"username" binding:"required,max=64"`
	Password     string                `form:"password" binding:"required"`
	Email        string                `form:"email" binding:"required,email"`
	ProfileImage *multipart.FileHeader `form:"profileImage" swaggerignore:"true"`
	ImageBytes   []byte                `form:"-" swaggerignore:"true"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	ProfileImage []byte    `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
