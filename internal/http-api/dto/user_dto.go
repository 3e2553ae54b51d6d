package dto

import "reviewhub/internal/http-api/models"

type UserResponse struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Bio       string      `json:"bio"`
	Role      models.Role `json:"role"`
}

func FromUser(u models.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      u.Role,
	}
}

// CreateUserRequest: admin-side account creation
type CreateUserRequest struct {
	Username  string      `json:"username" binding:"required,max=150"`
	Email     string      `json:"email" binding:"required,email,max=128"`
	FirstName string      `json:"first_name" binding:"max=150"`
	LastName  string      `json:"last_name" binding:"max=150"`
	Bio       string      `json:"bio"`
	Role      models.Role `json:"role"`
}

// UpdateUserRequest: partial update; nil fields are left unchanged. The
// profile endpoint accepts the same shape but the service ignores Role
// there, so a self-patch can never escalate privileges.
type UpdateUserRequest struct {
	Username  *string      `json:"username,omitempty" binding:"omitempty,max=150"`
	Email     *string      `json:"email,omitempty" binding:"omitempty,email,max=128"`
	FirstName *string      `json:"first_name,omitempty" binding:"omitempty,max=150"`
	LastName  *string      `json:"last_name,omitempty" binding:"omitempty,max=150"`
	Bio       *string      `json:"bio,omitempty"`
	Role      *models.Role `json:"role,omitempty"`
}
