package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrWarehouseNotFound = errors.New("warehouse not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Warehouse struct {
	ID uint `gorm:"primaryKey"`

	Item     string `gorm:"not null;index"`
	Quantity int    `gorm:"not null"`
	UserID   uint   `gorm:"not null;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type WarehouseDAO struct {
	db *gorm.DB
}

func NewWarehouseDAO(db *gorm.DB) *WarehouseDAO {
	return &WarehouseDAO{
		db: db,
	}
}

func (d *WarehouseDAO) Insert(ctx context.Context, warehouse Warehouse) (Warehouse, error) {
	result := d.db.WithContext(ctx).Create(&warehouse)
	if result.Error != nil {
		return Warehouse{}, result.Error
	}

	return warehouse, nil
}

func (d *WarehouseDAO) FindByID(ctx context.Context, id uint) (Warehouse, error) {
	var warehouse Warehouse

	result := d.db.WithContext(ctx).First(&warehouse, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Warehouse{}, ErrWarehouseNotFound
		}

		return Warehouse{}, result.Error
	}

	return warehouse, nil
}

func (d *WarehouseDAO) List(ctx context.Context, offset, limit int) ([]Warehouse, error) {
	var warehouses []Warehouse

	result := d.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&warehouses)
	if result.Error != nil {
		return nil, result.Error
	}

	return warehouses, nil
}

// DecrementQuantity subtracts amount from the row's quantity in a single
// conditional UPDATE, so concurrent purchases against the same row can never
// drive it negative. When the guard fails, the current row is fetched to tell
// a missing warehouse apart from a short one; on ErrInsufficientStock the
// returned row carries the quantity the caller lost the race against.
func (d *WarehouseDAO) DecrementQuantity(ctx context.Context, id uint, amount int) (Warehouse, error) {
	result := d.db.WithContext(ctx).
		Model(&Warehouse{}).
		Where("id = ? AND quantity >= ?", id, amount).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity - ?", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return Warehouse{}, result.Error
	}

	if result.RowsAffected == 0 {
		current, err := d.FindByID(ctx, id)
		if err != nil {
			return Warehouse{}, err
		}

		return current, ErrInsufficientStock
	}

	return d.FindByID(ctx, id)
}
