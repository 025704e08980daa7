package product

type Product struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Stock is the purchasable ceiling for a product at lookup time.
type Stock struct {
	ID     int64 `json:"id"`
	Amount int64 `json:"amount"`
}
