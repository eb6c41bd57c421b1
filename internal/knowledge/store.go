package knowledge

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"insurance-advisor/internal/domain"
)

type productRecord struct {
	BasePremium    float64  `yaml:"base_premium"`
	Description    string   `yaml:"description"`
	PricingFactors []string `yaml:"pricing_factors"`
}

// Store is the immutable product lookup. It is never written after
// construction and is safe for concurrent readers.
type Store struct {
	products map[string]domain.Product
	keys     []string
}

// Load reads the YAML knowledge base at path.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("knowledge base %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a mapping of product key to product definition.
func Parse(data []byte) (*Store, error) {
	var raw map[string]productRecord
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("no products defined")
	}
	products := make([]domain.Product, 0, len(raw))
	for key, rec := range raw {
		products = append(products, domain.Product{
			Key:            key,
			BasePremium:    rec.BasePremium,
			Description:    rec.Description,
			PricingFactors: rec.PricingFactors,
		})
	}
	return New(products)
}

// New builds a store from products, rejecting empty keys, duplicates and
// non-positive base premiums.
func New(products []domain.Product) (*Store, error) {
	s := &Store{products: make(map[string]domain.Product, len(products))}
	for _, p := range products {
		if p.Key == "" {
			return nil, errors.New("product with empty key")
		}
		if _, dup := s.products[p.Key]; dup {
			return nil, fmt.Errorf("duplicate product %q", p.Key)
		}
		if !(p.BasePremium > 0) {
			return nil, fmt.Errorf("product %q: base_premium must be positive, got %v", p.Key, p.BasePremium)
		}
		p.PricingFactors = append([]string(nil), p.PricingFactors...)
		s.products[p.Key] = p
		s.keys = append(s.keys, p.Key)
	}
	sort.Strings(s.keys)
	return s, nil
}

// Get returns the product for key.
func (s *Store) Get(key string) (domain.Product, bool) {
	p, ok := s.products[key]
	if ok {
		p.PricingFactors = append([]string(nil), p.PricingFactors...)
	}
	return p, ok
}

// Keys returns product keys in sorted order.
func (s *Store) Keys() []string { return append([]string(nil), s.keys...) }

func (s *Store) Len() int { return len(s.keys) }
