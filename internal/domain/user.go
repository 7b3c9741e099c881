package domain

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTrainer Role = "trainer"
	RoleMember  Role = "member"
	RoleGuest   Role = "guest"
)

func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleTrainer
}

type User struct {
	ID               uint      `json:"id"`
	Email            string    `json:"email"`
	Password         string    `json:"-"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Phone            string    `json:"phone,omitempty"`
	Role             Role      `json:"role"`
	MembershipType   string    `json:"membership_type"` // "none", "basic", "premium", or "elite"
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
