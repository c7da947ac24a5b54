package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"
	productsvc "storefront/internal/service/product"

	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// Columns are the headers understood by the importer. Only name and price are
// required; the rest default to empty or zero.
var Columns = []string{"id", "name", "description", "price", "category", "stock", "imageUrl"}

// CSVImporter reads catalog CSV files and inserts/updates products by id.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and upserts one product per row. It stops at the first
// invalid row and reports how many rows were saved before it.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, required := range []string{"name", "price"} {
		if _, ok := index[required]; !ok {
			return 0, fmt.Errorf("missing %q column", required)
		}
	}

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)

		p, ok, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if !ok {
			continue
		}
		if err := productsvc.Validate(p); err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if _, err := i.productRepo.Upsert(ctx, p); err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", p.Name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return idx
}

// parseRow returns ok=false for blank rows.
func parseRow(record []string, index map[string]int) (domain.Product, bool, error) {
	p := domain.Product{
		ID:          pick(record, index, "id"),
		Name:        pick(record, index, "name"),
		Description: pick(record, index, "description"),
		Category:    pick(record, index, "category"),
		ImageURL:    pick(record, index, "imageUrl"),
	}
	priceStr := pick(record, index, "price")
	stockStr := pick(record, index, "stock")

	if p.ID == "" && p.Name == "" && priceStr == "" {
		return p, false, nil
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return p, false, fmt.Errorf("%w: invalid price %q", domain.ErrInvalidInput, priceStr)
	}
	p.Price = price

	if stockStr != "" {
		stock, err := strconv.Atoi(stockStr)
		if err != nil {
			return p, false, fmt.Errorf("%w: invalid stock %q", domain.ErrInvalidInput, stockStr)
		}
		p.Stock = stock
	}
	return p, true, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
