package model

import (
	"errors"
	"fmt"
)

// フィルタで全商品を表すカテゴリID
const AllCategories = "all"

var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog は1セッション分の静的な商品とカテゴリ。
// 再読み込み時は丸ごと差し替える。
type Catalog struct {
	Products   []Product  `json:"products"`
	Categories []Category `json:"categories"`
}

// Validate は読み込んだデータの形をチェックする。
func (c Catalog) Validate() error {
	seen := make(map[string]struct{}, len(c.Products))
	for i, p := range c.Products {
		if p.ID == "" {
			return fmt.Errorf("%w: product #%d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate product id %q", ErrInvalidCatalog, p.ID)
		}
		seen[p.ID] = struct{}{}

		if p.Price.IsNegative() {
			return fmt.Errorf("%w: product %q has negative price", ErrInvalidCatalog, p.ID)
		}
	}
	for i, cat := range c.Categories {
		if cat.ID == "" {
			return fmt.Errorf("%w: category #%d has no id", ErrInvalidCatalog, i)
		}
	}
	return nil
}

// Filter はカテゴリで商品を絞り込む（カタログ順を維持）。
func (c Catalog) Filter(categoryID string) []Product {
	if categoryID == AllCategories {
		out := make([]Product, len(c.Products))
		copy(out, c.Products)
		return out
	}

	out := make([]Product, 0)
	for _, p := range c.Products {
		if p.Category == categoryID {
			out = append(out, p)
		}
	}
	return out
}

func (c Catalog) FindProduct(id string) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// CategoryName は表示名を返す。未知のIDはそのまま返す。
func (c Catalog) CategoryName(id string) string {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat.Name
		}
	}
	return id
}
