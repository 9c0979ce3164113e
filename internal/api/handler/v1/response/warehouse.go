package response

import "github.com/dstepanov/warehouse-api/internal/domain"

type Warehouse struct {
	ID       uint   `json:"id"`
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	UserID   uint   `json:"user_id"`
}

func NewWarehouse(w domain.Warehouse) Warehouse {
	return Warehouse{
		ID:       w.ID,
		Item:     w.Item,
		Quantity: w.Quantity,
		UserID:   w.UserID,
	}
}

func NewWarehouses(warehouses []domain.Warehouse) []Warehouse {
	result := make([]Warehouse, len(warehouses))
	for i, w := range warehouses {
		result[i] = NewWarehouse(w)
	}

	return result
}
