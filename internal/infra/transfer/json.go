package transfer

import (
	"encoding/json"
	"io"

	"veluna/internal/domain/entity"
	"veluna/internal/errors"
)

// WriteProductsJSON writes products as an indented JSON array.
func WriteProductsJSON(w io.Writer, products []entity.Product) error {
	if products == nil {
		products = []entity.Product{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return errors.WithStack(encoder.Encode(products))
}

// ReadProductsJSON parses a JSON array of products. Entries without a name
// or with a negative price are rejected.
func ReadProductsJSON(r io.Reader) ([]entity.Product, error) {
	var products []entity.Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}

	for i, p := range products {
		if p.Name == "" {
			return nil, errors.Errorf("item %d: name is required", i+1)
		}
		if p.Price < 0 {
			return nil, errors.Errorf("item %d: invalid price %v", i+1, p.Price)
		}
	}

	return products, nil
}
