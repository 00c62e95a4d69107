package domain

// CartLine is one cart entry resolved against the current catalog. Unit price
// and name reflect the catalog at read time, not at add time; a product that
// has disappeared from the catalog yields a zero-priced line.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// Cart is the resolved view of a user's cart.
type Cart struct {
	Lines []CartLine `json:"items"`
	Total float64    `json:"total"`
}
