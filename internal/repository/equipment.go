package repository

import (
	"context"
	"fmt"

	"github.com/equicrm/equicrm/internal/domain"
	"github.com/equicrm/equicrm/internal/repository/dao"
)

var ErrEquipmentNotFound = dao.ErrEquipmentNotFound

type EquipmentDAO interface {
	Insert(ctx context.Context, equipment dao.Equipment) (dao.Equipment, error)
	FindByID(ctx context.Context, id uint) (dao.Equipment, error)
	List(ctx context.Context, filter dao.EquipmentFilter, offset, limit int) ([]dao.Equipment, int64, error)
	Update(ctx context.Context, equipment dao.Equipment) (dao.Equipment, error)
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
	CountByCondition(ctx context.Context) (map[string]int64, error)
}

type EquipmentFilter struct {
	Category  string
	Condition string
	HorseID   *uint
	IsActive  *bool
}

type EquipmentRepository struct {
	dao EquipmentDAO
}

func NewEquipmentRepository(dao EquipmentDAO) *EquipmentRepository {
	return &EquipmentRepository{
		dao: dao,
	}
}

func (r *EquipmentRepository) Create(ctx context.Context, equipment domain.Equipment) (domain.Equipment, error) {
	created, err := r.dao.Insert(ctx, equipmentDomainToDAO(equipment))
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return equipmentDAOToDomain(created), nil
}

func (r *EquipmentRepository) FindByID(ctx context.Context, id uint) (domain.Equipment, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return equipmentDAOToDomain(found), nil
}

func (r *EquipmentRepository) List(ctx context.Context, filter EquipmentFilter, offset, limit int) ([]domain.Equipment, int64, error) {
	found, total, err := r.dao.List(ctx, dao.EquipmentFilter(filter), offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	items := make([]domain.Equipment, len(found))
	for i, e := range found {
		items[i] = equipmentDAOToDomain(e)
	}

	return items, total, nil
}

func (r *EquipmentRepository) Update(ctx context.Context, equipment domain.Equipment) (domain.Equipment, error) {
	updated, err := r.dao.Update(ctx, equipmentDomainToDAO(equipment))
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return equipmentDAOToDomain(updated), nil
}

func (r *EquipmentRepository) SetActive(ctx context.Context, id uint, active bool) error {
	if err := r.dao.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("r.dao.SetActive -> %w", err)
	}

	return nil
}

func (r *EquipmentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EquipmentRepository) CountByCondition(ctx context.Context) (map[string]int64, error) {
	counts, err := r.dao.CountByCondition(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountByCondition -> %w", err)
	}

	return counts, nil
}

func equipmentDomainToDAO(e domain.Equipment) dao.Equipment {
	return dao.Equipment{
		ID:                e.ID,
		Name:              e.Name,
		Category:          e.Category,
		Condition:         e.Condition,
		Quantity:          e.Quantity,
		PurchaseDate:      e.PurchaseDate,
		PurchasePrice:     e.PurchasePrice,
		HorseID:           e.HorseID,
		LastMaintenanceAt: e.LastMaintenanceAt,
		NextMaintenanceAt: e.NextMaintenanceAt,
		Notes:             e.Notes,
		IsActive:          e.IsActive,
	}
}

func equipmentDAOToDomain(e dao.Equipment) domain.Equipment {
	return domain.Equipment{
		ID:                e.ID,
		Name:              e.Name,
		Category:          e.Category,
		Condition:         e.Condition,
		Quantity:          e.Quantity,
		PurchaseDate:      e.PurchaseDate,
		PurchasePrice:     e.PurchasePrice,
		HorseID:           e.HorseID,
		Horse:             horseDAOToDomainPtr(e.Horse),
		LastMaintenanceAt: e.LastMaintenanceAt,
		NextMaintenanceAt: e.NextMaintenanceAt,
		Notes:             e.Notes,
		IsActive:          e.IsActive,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}
