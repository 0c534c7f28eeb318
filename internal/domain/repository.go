package domain

import "context"

// CatalogRepository is a read-only snapshot of comparable products
type CatalogRepository interface {
	Get(ctx context.Context, id string) (*Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*Product, error)
	ListByCategory(ctx context.Context, category ProductCategory) ([]Product, error)
	List(ctx context.Context) ([]Product, error)
}

// ProductSource looks up product records from a remote database
type ProductSource interface {
	FetchProduct(ctx context.Context, barcode string) (*Product, error)
}
