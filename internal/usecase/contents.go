package usecase

import (
	"github.com/V4T54L/zid-tiktok-bridge/internal/domain"
	"github.com/V4T54L/zid-tiktok-bridge/internal/pkg/fieldpath"
)

const maxContents = 50

var (
	itemListPaths = []string{"items", "contents", "data.items", "data.products", "order.items", "order.products", "products"}
	itemIDPaths   = []string{"sku", "product_sku", "content_id", "id", "product_id", "variant_id", "sku_id"}
	itemNamePaths = []string{"name", "product_name", "content_name", "title"}
	itemPricePath = []string{"price", "unit_price", "sale_price", "original_price"}
	itemQtyPaths  = []string{"quantity", "qty", "count"}
)

// BuildContents maps the first item list found in payload to line items.
// At most 50 items are kept; entries that are not objects are skipped.
func BuildContents(payload fieldpath.Object) []domain.Content {
	items, ok := payload.Slice(itemListPaths...)
	if !ok || len(items) == 0 {
		return nil
	}
	if len(items) > maxContents {
		items = items[:maxContents]
	}

	contents := make([]domain.Content, 0, len(items))
	for _, raw := range items {
		item, ok := fieldpath.AsObject(raw)
		if !ok {
			continue
		}

		id, _ := item.String(itemIDPaths...)
		name, _ := item.String(itemNamePaths...)

		price, _ := item.Lookup(itemPricePath...)
		qtyRaw, _ := item.Lookup(itemQtyPaths...)
		qty := ToNumber(qtyRaw)
		if qty == 0 {
			qty = 1
		}

		contents = append(contents, domain.Content{
			ContentID:   id,
			ContentName: name,
			ContentType: "product",
			Price:       ToNumber(price),
			Quantity:    qty,
		})
	}

	if len(contents) == 0 {
		return nil
	}
	return contents
}
