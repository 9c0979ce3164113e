package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dstepanov/warehouse-api/internal/domain"
	"github.com/dstepanov/warehouse-api/internal/repository/dao"
)

var (
	ErrWarehouseNotFound = dao.ErrWarehouseNotFound
	ErrInsufficientStock = dao.ErrInsufficientStock
)

type WarehouseDAO interface {
	Insert(ctx context.Context, warehouse dao.Warehouse) (dao.Warehouse, error)
	FindByID(ctx context.Context, id uint) (dao.Warehouse, error)
	List(ctx context.Context, offset, limit int) ([]dao.Warehouse, error)
	DecrementQuantity(ctx context.Context, id uint, amount int) (dao.Warehouse, error)
}

type WarehouseRepository struct {
	dao WarehouseDAO
}

func NewWarehouseRepository(dao WarehouseDAO) *WarehouseRepository {
	return &WarehouseRepository{
		dao: dao,
	}
}

func (r *WarehouseRepository) Create(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error) {
	created, err := r.dao.Insert(ctx, dao.Warehouse{
		Item:     warehouse.Item,
		Quantity: warehouse.Quantity,
		UserID:   warehouse.UserID,
	})
	if err != nil {
		return domain.Warehouse{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *WarehouseRepository) FindByID(ctx context.Context, id uint) (domain.Warehouse, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Warehouse{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *WarehouseRepository) List(ctx context.Context, offset, limit int) ([]domain.Warehouse, error) {
	found, err := r.dao.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	warehouses := make([]domain.Warehouse, len(found))
	for i, w := range found {
		warehouses[i] = r.daoToDomain(w)
	}

	return warehouses, nil
}

// DecrementQuantity atomically subtracts amount from the warehouse's stock.
// On ErrInsufficientStock the returned warehouse holds the quantity the
// decrement was refused against.
func (r *WarehouseRepository) DecrementQuantity(ctx context.Context, id uint, amount int) (domain.Warehouse, error) {
	updated, err := r.dao.DecrementQuantity(ctx, id, amount)
	if err != nil {
		if errors.Is(err, dao.ErrInsufficientStock) {
			return r.daoToDomain(updated), dao.ErrInsufficientStock
		}

		return domain.Warehouse{}, fmt.Errorf("r.dao.DecrementQuantity -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *WarehouseRepository) daoToDomain(w dao.Warehouse) domain.Warehouse {
	return domain.Warehouse{
		ID:        w.ID,
		Item:      w.Item,
		Quantity:  w.Quantity,
		UserID:    w.UserID,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
