package models

// Sale is a historical record of a sold product quantity. Nothing in this
// core creates sales; they are read for reporting only, and ProductID is not
// guaranteed to reference a product that still exists.
type Sale struct {
	ID         int     `json:"id"`
	ProductID  int     `json:"product_id"`
	Quantity   int     `json:"quantity"`
	SaleDate   string  `json:"sale_date"`
	TotalPrice float64 `json:"total_price"`
}
