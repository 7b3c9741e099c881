package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrHorseNotFound = errors.New("horse not found")

type Horse struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"not null"`
	Breed       string
	DateOfBirth *time.Time
	Gender      string `gorm:"not null"` // "mare", "stallion", or "gelding"
	Color       string
	HeightHands float64
	WeightKg    float64

	BoardingType string `gorm:"not null;default:none;index"`
	MedicalNotes string
	SpecialNeeds string

	OwnerID *uint `gorm:"index"`
	Owner   *User `gorm:"foreignKey:OwnerID"`

	IsActive bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type HorseDAO struct {
	db *gorm.DB
}

func NewHorseDAO(db *gorm.DB) *HorseDAO {
	return &HorseDAO{
		db: db,
	}
}

func (d *HorseDAO) Insert(ctx context.Context, horse Horse) (Horse, error) {
	result := d.db.WithContext(ctx).Create(&horse)
	if result.Error != nil {
		return Horse{}, result.Error
	}

	return horse, nil
}

func (d *HorseDAO) FindByID(ctx context.Context, id uint) (Horse, error) {
	var horse Horse

	result := d.db.WithContext(ctx).Preload("Owner").First(&horse, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Horse{}, ErrHorseNotFound
		}

		return Horse{}, result.Error
	}

	return horse, nil
}

type HorseFilter struct {
	BoardingType string
	OwnerID      *uint
	IsActive     *bool
}

func (d *HorseDAO) List(ctx context.Context, filter HorseFilter, offset, limit int) ([]Horse, int64, error) {
	query := d.db.WithContext(ctx).Model(&Horse{})
	if filter.BoardingType != "" {
		query = query.Where("boarding_type = ?", filter.BoardingType)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var horses []Horse
	err := query.Preload("Owner").Order("name").Offset(offset).Limit(limit).Find(&horses).Error
	if err != nil {
		return nil, 0, err
	}

	return horses, total, nil
}

func (d *HorseDAO) Update(ctx context.Context, horse Horse) (Horse, error) {
	result := d.db.WithContext(ctx).Model(&Horse{ID: horse.ID}).Updates(map[string]interface{}{
		"name":          horse.Name,
		"breed":         horse.Breed,
		"date_of_birth": horse.DateOfBirth,
		"gender":        horse.Gender,
		"color":         horse.Color,
		"height_hands":  horse.HeightHands,
		"weight_kg":     horse.WeightKg,
		"boarding_type": horse.BoardingType,
		"medical_notes": horse.MedicalNotes,
		"special_needs": horse.SpecialNeeds,
		"owner_id":      horse.OwnerID,
	})
	if result.Error != nil {
		return Horse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Horse{}, ErrHorseNotFound
	}

	return d.FindByID(ctx, horse.ID)
}

func (d *HorseDAO) SetActive(ctx context.Context, id uint, active bool) error {
	result := d.db.WithContext(ctx).Model(&Horse{ID: id}).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrHorseNotFound
	}

	return nil
}

func (d *HorseDAO) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Horse{}).Where("is_active = ?", true).Count(&count).Error

	return count, err
}
