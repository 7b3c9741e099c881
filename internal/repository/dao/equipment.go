package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrEquipmentNotFound = errors.New("equipment not found")

type Equipment struct {
	ID uint `gorm:"primaryKey"`

	Name      string `gorm:"not null"`
	Category  string `gorm:"not null;index"`  // "saddle", "bridle", "grooming", "riding", "stable", "medical", or "other"
	Condition string `gorm:"not null;index"`  // "excellent", "good", "fair", "poor", or "unusable"
	Quantity  int    `gorm:"not null;default:1"`

	PurchaseDate  *time.Time
	PurchasePrice float64

	HorseID *uint  `gorm:"index"`
	Horse   *Horse `gorm:"foreignKey:HorseID"`

	LastMaintenanceAt *time.Time
	NextMaintenanceAt *time.Time
	Notes             string

	IsActive bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EquipmentDAO struct {
	db *gorm.DB
}

func NewEquipmentDAO(db *gorm.DB) *EquipmentDAO {
	return &EquipmentDAO{
		db: db,
	}
}

func (d *EquipmentDAO) Insert(ctx context.Context, equipment Equipment) (Equipment, error) {
	result := d.db.WithContext(ctx).Create(&equipment)
	if result.Error != nil {
		return Equipment{}, result.Error
	}

	return equipment, nil
}

func (d *EquipmentDAO) FindByID(ctx context.Context, id uint) (Equipment, error) {
	var equipment Equipment

	result := d.db.WithContext(ctx).Preload("Horse").First(&equipment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Equipment{}, ErrEquipmentNotFound
		}

		return Equipment{}, result.Error
	}

	return equipment, nil
}

type EquipmentFilter struct {
	Category  string
	Condition string
	HorseID   *uint
	IsActive  *bool
}

func (d *EquipmentDAO) List(ctx context.Context, filter EquipmentFilter, offset, limit int) ([]Equipment, int64, error) {
	query := d.db.WithContext(ctx).Model(&Equipment{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Condition != "" {
		query = query.Where("condition = ?", filter.Condition)
	}
	if filter.HorseID != nil {
		query = query.Where("horse_id = ?", *filter.HorseID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []Equipment
	err := query.Preload("Horse").Order("name").Offset(offset).Limit(limit).Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (d *EquipmentDAO) Update(ctx context.Context, equipment Equipment) (Equipment, error) {
	result := d.db.WithContext(ctx).Model(&Equipment{ID: equipment.ID}).Updates(map[string]interface{}{
		"name":                equipment.Name,
		"category":            equipment.Category,
		"condition":           equipment.Condition,
		"quantity":            equipment.Quantity,
		"purchase_date":       equipment.PurchaseDate,
		"purchase_price":      equipment.PurchasePrice,
		"horse_id":            equipment.HorseID,
		"last_maintenance_at": equipment.LastMaintenanceAt,
		"next_maintenance_at": equipment.NextMaintenanceAt,
		"notes":               equipment.Notes,
	})
	if result.Error != nil {
		return Equipment{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Equipment{}, ErrEquipmentNotFound
	}

	return d.FindByID(ctx, equipment.ID)
}

func (d *EquipmentDAO) SetActive(ctx context.Context, id uint, active bool) error {
	result := d.db.WithContext(ctx).Model(&Equipment{ID: id}).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEquipmentNotFound
	}

	return nil
}

func (d *EquipmentDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Equipment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEquipmentNotFound
	}

	return nil
}

func (d *EquipmentDAO) CountByCondition(ctx context.Context) (map[string]int64, error) {
	return countGrouped(d.db.WithContext(ctx), &Equipment{}, "condition")
}
