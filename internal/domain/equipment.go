package domain

import "time"

type Equipment struct {
	ID                uint       `json:"id"`
	Name              string     `json:"name"`
	Category          string     `json:"category"`  // "saddle", "bridle", "grooming", "riding", "stable", "medical", or "other"
	Condition         string     `json:"condition"` // "excellent", "good", "fair", "poor", or "unusable"
	Quantity          int        `json:"quantity"`
	PurchaseDate      *time.Time `json:"purchase_date,omitempty"`
	PurchasePrice     float64    `json:"purchase_price,omitempty"`
	HorseID           *uint      `json:"horse_id,omitempty"`
	Horse             *Horse     `json:"horse,omitempty"`
	LastMaintenanceAt *time.Time `json:"last_maintenance_at,omitempty"`
	NextMaintenanceAt *time.Time `json:"next_maintenance_at,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	IsActive          bool       `json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
