// Package transfer converts products to and from CSV and JSON files.
package transfer

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"veluna/internal/domain/entity"
	"veluna/internal/errors"
)

// ProductCSVHeader is the column order written by WriteProductsCSV.
var ProductCSVHeader = []string{
	"id", "name", "price", "originalPrice", "category", "image",
	"rating", "reviews", "inStock", "stock",
}

// WriteProductsCSV writes a header row followed by one row per product.
func WriteProductsCSV(w io.Writer, products []entity.Product) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(ProductCSVHeader); err != nil {
		return errors.WithStack(err)
	}

	for _, p := range products {
		originalPrice := ""
		if p.OriginalPrice != nil {
			originalPrice = formatNumber(*p.OriginalPrice)
		}
		stock := ""
		if p.Stock != nil {
			stock = strconv.Itoa(*p.Stock)
		}

		record := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			formatNumber(p.Price),
			originalPrice,
			p.Category,
			p.Image,
			formatNumber(p.Rating),
			strconv.Itoa(p.Reviews),
			strconv.FormatBool(p.InStock),
			stock,
		}
		if err := writer.Write(record); err != nil {
			return errors.WithStack(err)
		}
	}

	writer.Flush()

	return errors.WithStack(writer.Error())
}

// ReadProductsCSV parses products from CSV. Columns are matched by header
// name, so order is free and unknown columns are ignored. The id column is
// read but callers are expected to assign fresh ids.
func ReadProductsCSV(r io.Reader) ([]entity.Product, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty CSV file")
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))] = i
	}
	for _, required := range []string{"name", "price"} {
		if _, ok := columns[required]; !ok {
			return nil, errors.Errorf("missing required column %q", required)
		}
	}

	var products []entity.Product
	lineNum := 1 // header

	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, errors.WithStack(readErr)
		}
		lineNum++

		if isBlank(record) {
			continue
		}

		product, parseErr := parseProduct(record, columns, lineNum)
		if parseErr != nil {
			return nil, parseErr
		}
		products = append(products, product)
	}

	return products, nil
}

func parseProduct(record []string, columns map[string]int, lineNum int) (entity.Product, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}

		return strings.TrimSpace(record[i])
	}

	p := entity.Product{
		Name:     field("name"),
		Category: field("category"),
		Image:    field("image"),
		InStock:  true,
	}
	if p.Name == "" {
		return p, errors.Errorf("line %d: name is required", lineNum)
	}

	var err error
	if v := field("id"); v != "" {
		if p.ID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return p, errors.Errorf("line %d: invalid id %q", lineNum, v)
		}
	}
	if p.Price, err = strconv.ParseFloat(field("price"), 64); err != nil || p.Price < 0 {
		return p, errors.Errorf("line %d: invalid price %q", lineNum, field("price"))
	}
	if v := field("originalPrice"); v != "" {
		originalPrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, errors.Errorf("line %d: invalid originalPrice %q", lineNum, v)
		}
		p.OriginalPrice = &originalPrice
	}
	if v := field("rating"); v != "" {
		if p.Rating, err = strconv.ParseFloat(v, 64); err != nil {
			return p, errors.Errorf("line %d: invalid rating %q", lineNum, v)
		}
	}
	if v := field("reviews"); v != "" {
		if p.Reviews, err = strconv.Atoi(v); err != nil {
			return p, errors.Errorf("line %d: invalid reviews %q", lineNum, v)
		}
	}
	if v := field("inStock"); v != "" {
		if p.InStock, err = strconv.ParseBool(v); err != nil {
			return p, errors.Errorf("line %d: invalid inStock %q", lineNum, v)
		}
	}
	if v := field("stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil || stock < 0 {
			return p, errors.Errorf("line %d: invalid stock %q", lineNum, v)
		}
		p.Stock = &stock
	}

	return p, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}

	return true
}
