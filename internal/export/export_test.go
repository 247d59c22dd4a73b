package export_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/basket/internal/aggregate"
	"github.com/idilsaglam/basket/internal/export"
	"github.com/idilsaglam/basket/internal/model"
)

var t0 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func groceries() export.Document {
	l := model.List{ID: "l1", Title: "Groceries", CreatedAt: t0}
	items := []model.Item{
		{ID: "a", ListID: "l1", Name: "Bread", Category: "Food", Quantity: 1, UnitPrice: 8, CreatedAt: t0},
		{ID: "b", ListID: "l1", Name: "Soap", Category: "Cleaning", Quantity: 1, UnitPrice: 10.30, CreatedAt: t0.Add(time.Second)},
	}
	return export.Build(l, aggregate.ComputeView(items, ""), "")
}

func TestBuildRoundsToCents(t *testing.T) {
	doc := groceries()
	if doc.Total != 20.68 || doc.Count != 2 {
		t.Errorf("total=%v count=%d", doc.Total, doc.Count)
	}
	got := map[string]float64{}
	for _, c := range doc.Categories {
		got[c.Name] = c.Total
	}
	want := map[string]float64{"Food": 9.04, "Cleaning": 11.64}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("category totals (-want +got):\n%s", diff)
	}
	if doc.Categories[1].Items[0].Total != 11.64 {
		t.Errorf("line total = %v", doc.Categories[1].Items[0].Total)
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := export.Write(&buf, "yaml", groceries()); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"title: Groceries", "total: 20.68", "name: Cleaning", "tax_rate: 0.13"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "filter:") {
		t.Errorf("empty filter should be omitted:\n%s", out)
	}

	var back export.Document
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("yaml does not parse back: %v", err)
	}
	if diff := cmp.Diff(groceries(), back); diff != "" {
		t.Errorf("yaml round trip (-want +got):\n%s", diff)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := export.Write(&buf, "JSON", groceries()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("json does not parse: %v", err)
	}
	if back["total"] != 20.68 {
		t.Errorf("total = %v", back["total"])
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := export.Write(&bytes.Buffer{}, "csv", groceries()); err == nil {
		t.Error("expected an error for csv")
	}
}
