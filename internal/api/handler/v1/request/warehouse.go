package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateWarehouseRequest struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

func (req *CreateWarehouseRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Item, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Quantity, validation.Min(0)),
	)
}

type BuyWarehouseRequest struct {
	Quantity int `json:"quantity"`
}

func (req *BuyWarehouseRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
	)
}
