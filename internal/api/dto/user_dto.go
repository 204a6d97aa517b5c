package dto

import "github.com/spec-kit/helpdesk/internal/domain"

// UserSummary is the read-only actor projection embedded in responses.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// NewUserSummary maps a domain user.
func NewUserSummary(user domain.User) UserSummary {
	return UserSummary{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}
