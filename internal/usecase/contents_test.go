package usecase

import (
	"fmt"
	"strings"
	"testing"

	"github.com/V4T54L/zid-tiktok-bridge/internal/pkg/fieldpath"
)

func TestBuildContents(t *testing.T) {
	t.Run("No items", func(t *testing.T) {
		if got := BuildContents(fieldpath.Parse([]byte(`{"value":10}`))); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("Items not an array", func(t *testing.T) {
		if got := BuildContents(fieldpath.Parse([]byte(`{"items":{"sku":"a"}}`))); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("Nested order products with aliases", func(t *testing.T) {
		payload := fieldpath.Parse([]byte(`{
			"order": {"products": [
				{"product_id": 42, "title": "Toy car", "unit_price": "12.50", "qty": 2},
				{"sku": "SKU-9", "name": "Ball", "price": 5},
				"not an object"
			]}
		}`))

		got := BuildContents(payload)
		if len(got) != 2 {
			t.Fatalf("expected 2 contents, got %d", len(got))
		}

		if got[0].ContentID != "42" || got[0].ContentName != "Toy car" || got[0].Price != 12.5 || got[0].Quantity != 2 {
			t.Errorf("unexpected first item: %+v", got[0])
		}
		if got[1].ContentID != "SKU-9" || got[1].Quantity != 1 {
			t.Errorf("unexpected second item: %+v", got[1])
		}
		for _, c := range got {
			if c.ContentType != "product" {
				t.Errorf("expected content_type product, got %q", c.ContentType)
			}
		}
	})

	t.Run("Zero quantity defaults to one", func(t *testing.T) {
		got := BuildContents(fieldpath.Parse([]byte(`{"items":[{"sku":"a","quantity":0}]}`)))
		if len(got) != 1 || got[0].Quantity != 1 {
			t.Errorf("unexpected contents: %+v", got)
		}
	})

	t.Run("Capped at fifty", func(t *testing.T) {
		parts := make([]string, 0, 75)
		for i := 0; i < 75; i++ {
			parts = append(parts, fmt.Sprintf(`{"sku":"s%d","price":1}`, i))
		}
		payload := fieldpath.Parse([]byte(`{"items":[` + strings.Join(parts, ",") + `]}`))

		got := BuildContents(payload)
		if len(got) != 50 {
			t.Fatalf("expected 50 contents, got %d", len(got))
		}
		if got[49].ContentID != "s49" {
			t.Errorf("expected first 50 items to be kept, last is %q", got[49].ContentID)
		}
	})
}
