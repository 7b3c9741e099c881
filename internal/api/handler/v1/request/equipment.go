package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type EquipmentRequest struct {
	Name              string     `json:"name"`
	Category          string     `json:"category"`
	Condition         string     `json:"condition"`
	Quantity          int        `json:"quantity"`
	PurchaseDate      *time.Time `json:"purchase_date"`
	PurchasePrice     float64    `json:"purchase_price"`
	HorseID           *uint      `json:"horse_id"`
	LastMaintenanceAt *time.Time `json:"last_maintenance_at"`
	NextMaintenanceAt *time.Time `json:"next_maintenance_at"`
	Notes             string     `json:"notes"`
}

func (req *EquipmentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Category, validation.Required, validation.In("saddle", "bridle", "grooming", "riding", "stable", "medical", "other")),
		validation.Field(&req.Condition, validation.Required, validation.In("excellent", "good", "fair", "poor", "unusable")),
		validation.Field(&req.Quantity, validation.Min(0)),
		validation.Field(&req.PurchasePrice, validation.Min(0.0)),
	)
}
