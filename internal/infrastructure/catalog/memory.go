package catalog

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/safescan/backend/internal/domain"
)

// seedFile is the on-disk layout of a catalog seed
type seedFile struct {
	Products []domain.Product `yaml:"products"`
}

// MemoryStore is a thread-safe in-memory product catalog
type MemoryStore struct {
	products  map[string]domain.Product
	byBarcode map[string]string
	mutex     sync.RWMutex
}

// NewMemoryStore creates a catalog holding the given products
func NewMemoryStore(products ...domain.Product) *MemoryStore {
	store := &MemoryStore{
		products:  make(map[string]domain.Product),
		byBarcode: make(map[string]string),
	}
	for _, p := range products {
		store.Put(p)
	}
	return store
}

// ProductValidator rejects malformed product records
type ProductValidator interface {
	ValidateProduct(product *domain.Product) error
}

// LoadFile reads a YAML seed file into a new store. An empty path yields an
// empty catalog. Every seed product must pass validator; a nil validator only
// checks for an id.
func LoadFile(path string, validator ProductValidator) (*MemoryStore, error) {
	if path == "" {
		return NewMemoryStore(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading seed %s: %v", domain.ErrCatalogUnavailable, path, err)
	}
	return Parse(data, validator)
}

// Parse decodes YAML seed data into a new store
func Parse(data []byte, validator ProductValidator) (*MemoryStore, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("%w: decoding seed: %v", domain.ErrCatalogUnavailable, err)
	}

	for i := range seed.Products {
		p := &seed.Products[i]
		if p.ID == "" {
			return nil, fmt.Errorf("%w: seed product %d has no id", domain.ErrCatalogUnavailable, i)
		}
		if validator == nil {
			continue
		}
		if err := validator.ValidateProduct(p); err != nil {
			return nil, fmt.Errorf("%w: seed product %s: %w", domain.ErrCatalogUnavailable, p.ID, err)
		}
	}
	return NewMemoryStore(seed.Products...), nil
}

// Put adds or replaces a product. The store keeps its own copy.
func (s *MemoryStore) Put(product domain.Product) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if old, ok := s.products[product.ID]; ok && old.Barcode != "" {
		delete(s.byBarcode, old.Barcode)
	}
	s.products[product.ID] = cloneProduct(product)
	if product.Barcode != "" {
		s.byBarcode[product.Barcode] = product.ID
	}
}

// Get retrieves a product by ID
func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Product, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	product, exists := s.products[id]
	if !exists {
		return nil, domain.ErrProductNotFound
	}
	p := cloneProduct(product)
	return &p, nil
}

// GetByBarcode retrieves a product by barcode
func (s *MemoryStore) GetByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	id, exists := s.byBarcode[barcode]
	if !exists {
		return nil, domain.ErrProductNotFound
	}
	p := cloneProduct(s.products[id])
	return &p, nil
}

// ListByCategory returns every product of a category ordered by ID
func (s *MemoryStore) ListByCategory(ctx context.Context, category domain.ProductCategory) ([]domain.Product, error) {
	return s.list(func(p domain.Product) bool { return p.Category == category }), nil
}

// List returns every product ordered by ID
func (s *MemoryStore) List(ctx context.Context) ([]domain.Product, error) {
	return s.list(func(domain.Product) bool { return true }), nil
}

func (s *MemoryStore) list(keep func(domain.Product) bool) []domain.Product {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if keep(p) {
			result = append(result, cloneProduct(p))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Size returns the current number of products in the catalog
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.products)
}

// cloneProduct deep-copies the slices and pointers of a product so callers
// cannot mutate stored state
func cloneProduct(p domain.Product) domain.Product {
	p.Contaminants = cloneContaminants(p.Contaminants)
	p.Ingredients = cloneStrings(p.Ingredients)
	p.AllergenTags = cloneStrings(p.AllergenTags)
	p.AdditiveTags = cloneStrings(p.AdditiveTags)
	p.LabelTags = cloneStrings(p.LabelTags)
	if p.PFASLevel != nil {
		p.PFASLevel = domain.Float(*p.PFASLevel)
	}
	if p.PH != nil {
		p.PH = domain.Float(*p.PH)
	}
	return p
}

func cloneContaminants(in []domain.Contaminant) []domain.Contaminant {
	if in == nil {
		return nil
	}
	out := make([]domain.Contaminant, len(in))
	for i, c := range in {
		if c.MaxAllowed != nil {
			c.MaxAllowed = domain.Float(*c.MaxAllowed)
		}
		out[i] = c
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
