package model

type PharmacyItem struct {
	Base
	Name     string  `db:"name" json:"name"`
	Price    float64 `db:"price" json:"price"`
	Quantity int64   `db:"quantity" json:"quantity"`
}

type CreatePharmacyItemRequest struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

// InventoryValuation is the sum of price * quantity over every pharmacy row.
type InventoryValuation struct {
	TotalValue float64 `db:"total_value" json:"total_value"`
	Items      int64   `db:"items" json:"items"`
}
