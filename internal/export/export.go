// Package export renders a list view as a portable YAML or JSON document.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/basket/internal/aggregate"
	"github.com/idilsaglam/basket/internal/model"
)

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Document is one exported list. Amounts are rounded to cents.
type Document struct {
	ID         string     `json:"id" yaml:"id"`
	Title      string     `json:"title" yaml:"title"`
	CreatedAt  time.Time  `json:"created_at" yaml:"created_at"`
	Filter     string     `json:"filter,omitempty" yaml:"filter,omitempty"`
	TaxRate    float64    `json:"tax_rate" yaml:"tax_rate"`
	Count      int        `json:"count" yaml:"count"`
	Subtotal   float64    `json:"subtotal" yaml:"subtotal"`
	Tax        float64    `json:"tax" yaml:"tax"`
	Total      float64    `json:"total" yaml:"total"`
	Categories []Category `json:"categories" yaml:"categories"`
}

type Category struct {
	Name     string  `json:"name" yaml:"name"`
	Icon     string  `json:"icon" yaml:"icon"`
	Count    int     `json:"count" yaml:"count"`
	Subtotal float64 `json:"subtotal" yaml:"subtotal"`
	Total    float64 `json:"total" yaml:"total"`
	Items    []Line  `json:"items" yaml:"items"`
}

type Line struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Quantity  int       `json:"quantity" yaml:"quantity"`
	UnitPrice float64   `json:"unit_price" yaml:"unit_price"`
	Total     float64   `json:"total" yaml:"total"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Build assembles the document for list l from its computed view.
func Build(l model.List, v aggregate.ListView, filter string) Document {
	doc := Document{
		ID:         l.ID,
		Title:      l.Title,
		CreatedAt:  l.CreatedAt,
		Filter:     filter,
		TaxRate:    aggregate.TaxRate,
		Count:      v.Count,
		Subtotal:   cents(v.Subtotal),
		Tax:        cents(v.Tax),
		Total:      cents(v.Total),
		Categories: make([]Category, 0, len(v.Categories)),
	}
	for _, g := range v.Categories {
		c := Category{
			Name:     g.Key,
			Icon:     g.Icon,
			Count:    g.Count,
			Subtotal: cents(g.Subtotal),
			Total:    cents(g.Total),
			Items:    make([]Line, 0, len(g.Items)),
		}
		for _, it := range g.Items {
			c.Items = append(c.Items, Line{
				ID:        it.ID,
				Name:      it.Name,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				Total:     cents(aggregate.LineTotal(it.Quantity, it.UnitPrice)),
				CreatedAt: it.CreatedAt,
			})
		}
		doc.Categories = append(doc.Categories, c)
	}
	return doc
}

// Write encodes doc to w in format ("yaml" or "json").
func Write(w io.Writer, format string, doc Document) error {
	switch strings.ToLower(format) {
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown export format %q (want %s or %s)", format, FormatYAML, FormatJSON)
	}
}

func cents(x float64) float64 {
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}
