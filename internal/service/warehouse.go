package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dstepanov/warehouse-api/internal/domain"
	"github.com/dstepanov/warehouse-api/internal/repository"
)

var (
	ErrWarehouseNotFound   = repository.ErrWarehouseNotFound
	ErrNotASeller          = errors.New("only sellers can add items")
	ErrOnlyCustomersCanBuy = errors.New("only customers can buy items")
	ErrOutOfStock          = errors.New("no items left in stock")
)

// InsufficientStockError reports a purchase that asked for more than the
// warehouse held, carrying how many items were missing.
type InsufficientStockError struct {
	Shortfall int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough items in stock, short by %v", e.Shortfall)
}

type WarehouseRepository interface {
	Create(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error)
	FindByID(ctx context.Context, id uint) (domain.Warehouse, error)
	List(ctx context.Context, offset, limit int) ([]domain.Warehouse, error)
	DecrementQuantity(ctx context.Context, id uint, amount int) (domain.Warehouse, error)
}

type WarehouseService struct {
	repo WarehouseRepository
}

func NewWarehouseService(repo WarehouseRepository) *WarehouseService {
	return &WarehouseService{
		repo: repo,
	}
}

func (s *WarehouseService) CreateWarehouse(ctx context.Context, warehouse domain.Warehouse, owner domain.User) (domain.Warehouse, error) {
	if !owner.IsSeller() {
		return domain.Warehouse{}, ErrNotASeller
	}

	warehouse.UserID = owner.ID
	created, err := s.repo.Create(ctx, warehouse)
	if err != nil {
		return domain.Warehouse{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *WarehouseService) GetWarehouse(ctx context.Context, id uint) (domain.Warehouse, error) {
	warehouse, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrWarehouseNotFound) {
			return domain.Warehouse{}, ErrWarehouseNotFound
		}

		return domain.Warehouse{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return warehouse, nil
}

func (s *WarehouseService) ListWarehouses(ctx context.Context, offset, limit int) ([]domain.Warehouse, error) {
	warehouses, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return warehouses, nil
}

// Purchase decrements a warehouse's stock by amount on behalf of buyer.
// Nothing is mutated until the role and stock checks pass; the decrement
// itself is a single conditional update, so a purchase that loses a race
// still surfaces as InsufficientStockError against the fresh quantity.
func (s *WarehouseService) Purchase(ctx context.Context, warehouseID uint, amount int, buyer domain.User) (domain.Warehouse, error) {
	if buyer.IsSeller() {
		return domain.Warehouse{}, ErrOnlyCustomersCanBuy
	}

	warehouse, err := s.GetWarehouse(ctx, warehouseID)
	if err != nil {
		return domain.Warehouse{}, err
	}

	if warehouse.Quantity == 0 {
		return domain.Warehouse{}, ErrOutOfStock
	}
	if amount > warehouse.Quantity {
		return domain.Warehouse{}, &InsufficientStockError{Shortfall: amount - warehouse.Quantity}
	}

	updated, err := s.repo.DecrementQuantity(ctx, warehouseID, amount)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return domain.Warehouse{}, &InsufficientStockError{Shortfall: amount - updated.Quantity}
		}
		if errors.Is(err, repository.ErrWarehouseNotFound) {
			return domain.Warehouse{}, ErrWarehouseNotFound
		}

		return domain.Warehouse{}, fmt.Errorf("s.repo.DecrementQuantity -> %w", err)
	}

	return updated, nil
}
