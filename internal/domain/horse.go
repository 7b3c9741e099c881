package domain

import "time"

type Horse struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Breed        string     `json:"breed,omitempty"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Gender       string     `json:"gender"` // "mare", "stallion", or "gelding"
	Color        string     `json:"color,omitempty"`
	HeightHands  float64    `json:"height_hands,omitempty"`
	WeightKg     float64    `json:"weight_kg,omitempty"`
	BoardingType string     `json:"boarding_type"` // "full", "partial", "self", or "none"
	MedicalNotes string     `json:"medical_notes,omitempty"`
	SpecialNeeds string     `json:"special_needs,omitempty"`
	OwnerID      *uint      `json:"owner_id,omitempty"`
	Owner        *User      `json:"owner,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
