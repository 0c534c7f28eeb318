package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product is neither cataloged nor known to the product source
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidProduct is returned when a product record fails boundary validation
	ErrInvalidProduct = errors.New("invalid product")

	// ErrInvalidProfile is returned when a user profile fails boundary validation
	ErrInvalidProfile = errors.New("invalid user profile")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrProductSourceFailure is returned when the remote product source request fails
	ErrProductSourceFailure = errors.New("product source request failed")

	// ErrCatalogUnavailable is returned when the catalog cannot be read
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
