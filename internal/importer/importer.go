package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"dermayooth-storefront/internal/cart"
	"dermayooth-storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// productNamespace derives stable ids for rows exported without one, so a
// re-import updates the same products.
var productNamespace = uuid.MustParse("6f1c3a52-8d4e-4b0a-9e57-2f0d6c1b9a30")

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates products.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
	richText    *bluemonday.Policy
	plainText   *bluemonday.Policy
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
		richText:    newDescriptionPolicy(),
		plainText:   bluemonday.StrictPolicy(),
	}
}

func newDescriptionPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Run parses CSV rows and upserts one product per named row. Rows without an
// id and name that carry images extend the previous product.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("read headers: name column is required")
	}

	var (
		current  *domain.Product
		imported int
		line     = 1
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return imported, fmt.Errorf("read row %d: %w", line, err)
		}

		row, err := i.parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", line, err)
		}
		if row == nil {
			continue
		}

		if row.Name != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		if current != nil {
			current.Images = append(current.Images, row.Images...)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, p *domain.Product) error {
	if p.Price == "" || cart.ParsePrice(p.Price) == 0 {
		return fmt.Errorf("invalid product %q: price %q has no amount", p.Name, p.Price)
	}
	if p.ID == "" {
		p.ID = uuid.NewSHA1(productNamespace, []byte(strings.ToLower(p.Name))).String()
	}
	if _, err := i.productRepo.Upsert(ctx, *p); err != nil {
		return fmt.Errorf("upsert product %q: %w", p.Name, err)
	}
	return nil
}

func (i *CSVImporter) parseRow(record []string, index map[string]int) (*domain.Product, error) {
	name := i.plain(pick(record, index, "name"))
	images := splitList(pick(record, index, "images"))

	if name == "" {
		if len(images) == 0 {
			return nil, nil
		}
		return &domain.Product{Images: images}, nil
	}

	status := strings.ToLower(pick(record, index, "status"))
	switch status {
	case "":
		status = domain.ProductStatusActive
	case domain.ProductStatusActive, domain.ProductStatusInactive, domain.ProductStatusDraft:
	default:
		return nil, fmt.Errorf("product %q: unknown status %q", name, status)
	}

	var (
		featured bool
		order    int
		err      error
	)
	if raw := pick(record, index, "featured"); raw != "" {
		if featured, err = strconv.ParseBool(raw); err != nil {
			return nil, fmt.Errorf("product %q: featured %q: %w", name, raw, err)
		}
	}
	if raw := pick(record, index, "order"); raw != "" {
		if order, err = strconv.Atoi(raw); err != nil {
			return nil, fmt.Errorf("product %q: order %q: %w", name, raw, err)
		}
	}

	return &domain.Product{
		ID:               pick(record, index, "id"),
		Name:             name,
		ShortDescription: i.plain(pick(record, index, "shortDescription")),
		LongDescription:  i.richText.Sanitize(pick(record, index, "longDescription")),
		Price:            pick(record, index, "price"),
		Category:         i.plain(pick(record, index, "category")),
		Status:           status,
		Benefits:         splitList(pick(record, index, "benefits")),
		Ingredients:      i.richText.Sanitize(pick(record, index, "ingredients")),
		Directions:       i.richText.Sanitize(pick(record, index, "directions")),
		Specifications: domain.ProductSpecifications{
			Size:      pick(record, index, "size"),
			SkinType:  pick(record, index, "skinType"),
			ShelfLife: pick(record, index, "shelfLife"),
			MadeIn:    pick(record, index, "madeIn"),
		},
		Images:   images,
		Featured: featured,
		Order:    order,
	}, nil
}

// plain strips markup and returns readable text.
func (i *CSVImporter) plain(s string) string {
	return strings.TrimSpace(html.UnescapeString(i.plainText.Sanitize(s)))
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return idx
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
