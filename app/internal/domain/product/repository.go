package product

import "context"

type Catalog interface {
	GetProduct(ctx context.Context, id int64) (*Product, error)
}

type StockOracle interface {
	GetStock(ctx context.Context, id int64) (*Stock, error)
}
