package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/khsakib1010-art/b2b-store/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV files and inserts/updates products keyed by
// style number. Colors and sizes are pipe-separated lists.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and upserts one product per row.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		product, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if product == nil {
			continue
		}

		if _, err := i.productRepo.Upsert(ctx, *product); err != nil {
			return imported, fmt.Errorf("upsert style %s: %w", product.StyleNumber, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	get := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	style := get("style_number")
	name := get("name")
	if style == "" && name == "" {
		return nil, nil // blank row
	}
	if style == "" || name == "" {
		return nil, fmt.Errorf("style_number and name are required (style=%q name=%q)", style, name)
	}

	colors := splitList(get("colors"))
	if len(colors) == 0 {
		return nil, fmt.Errorf("style %s: at least one color required", style)
	}
	sizes := splitList(get("sizes"))
	for i, s := range sizes {
		sizes[i] = domain.NormalizeSize(s)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("style %s: at least one size required", style)
	}

	p := &domain.Product{
		StyleNumber: style,
		Name:        name,
		Description: get("description"),
		Colors:      colors,
		Sizes:       sizes,
	}

	if raw := get("price_cents"); raw != "" {
		cents, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || cents < 0 {
			return nil, fmt.Errorf("style %s: invalid price_cents %q", style, raw)
		}
		p.PriceCents = &cents
	}

	return p, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, "|") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
