package response

import (
	"github.com/equicrm/equicrm/internal/domain"
)

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type RegistrationResponse struct {
	Waitlisted bool   `json:"waitlisted"`
	Message    string `json:"message"`
}
