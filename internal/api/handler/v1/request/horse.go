package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type HorseRequest struct {
	Name         string     `json:"name"`
	Breed        string     `json:"breed"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	Gender       string     `json:"gender"`
	Color        string     `json:"color"`
	HeightHands  float64    `json:"height_hands"`
	WeightKg     float64    `json:"weight_kg"`
	BoardingType string     `json:"boarding_type"`
	MedicalNotes string     `json:"medical_notes"`
	SpecialNeeds string     `json:"special_needs"`
	OwnerID      *uint      `json:"owner_id"`
}

func (req *HorseRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Gender, validation.Required, validation.In("mare", "stallion", "gelding")),
		validation.Field(&req.BoardingType, validation.Required, validation.In("full", "partial", "self", "none")),
		validation.Field(&req.HeightHands, validation.Min(0.0)),
		validation.Field(&req.WeightKg, validation.Min(0.0)),
	)
}
