package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateUserRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Phone            string `json:"phone"`
	Role             string `json:"role"`
	MembershipType   string `json:"membership_type"`
	EmergencyContact string `json:"emergency_contact"`
}

func (req *CreateUserRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Role, validation.Required, validation.In("admin", "trainer", "member", "guest")),
		validation.Field(&req.MembershipType, validation.In("none", "basic", "premium", "elite")),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.Password)
}

type UpdateUserRequest struct {
	Email            string `json:"email"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Phone            string `json:"phone"`
	Role             string `json:"role"`
	MembershipType   string `json:"membership_type"`
	EmergencyContact string `json:"emergency_contact"`
}

func (req *UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Role, validation.Required, validation.In("admin", "trainer", "member", "guest")),
		validation.Field(&req.MembershipType, validation.In("none", "basic", "premium", "elite")),
	)
}

type ChangePasswordRequest struct {
	Password string `json:"password"`
}

func (req *ChangePasswordRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.Password, validation.Required),
	); err != nil {
		return err
	}

	return validatePassword(req.Password)
}
