package view

import (
	"fmt"

	"storefront/internal/domain/model"
)

const PlaceholderImage = "/static/images/placeholder.svg"

type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}

// 商品カード1枚分
type ProductCard struct {
	ID           string
	Name         string
	Description  string
	Price        string
	CategoryName string
	Image        string
}

func newProductCard(c model.Catalog, p model.Product) ProductCard {
	img := p.Image
	if img == "" {
		img = PlaceholderImage
	}
	return ProductCard{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price.StringFixed(2),
		CategoryName: c.CategoryName(p.Category),
		Image:        img,
	}
}

// ProductCards は商品ごとに1枚（重複除去・ページングなし）。
func ProductCards(c model.Catalog, products []model.Product) []ProductCard {
	out := make([]ProductCard, 0, len(products))
	for _, p := range products {
		out = append(out, newProductCard(c, p))
	}
	return out
}

// CategoryOptions は先頭に "all"。
func CategoryOptions(c model.Catalog, selected string) []SelectOption {
	if selected == "" {
		selected = model.AllCategories
	}
	out := make([]SelectOption, 0, len(c.Categories)+1)
	out = append(out, SelectOption{
		Value:    model.AllCategories,
		Label:    "All categories",
		Selected: selected == model.AllCategories,
	})
	for _, cat := range c.Categories {
		out = append(out, SelectOption{
			Value:    cat.ID,
			Label:    cat.Name,
			Selected: selected == cat.ID,
		})
	}
	return out
}

// ProductOptions はクイック追加の選択肢（"名前 - 価格€"）。
func ProductOptions(products []model.Product, selected string) []SelectOption {
	out := make([]SelectOption, 0, len(products))
	for _, p := range products {
		out = append(out, SelectOption{
			Value:    p.ID,
			Label:    fmt.Sprintf("%s - %s€", p.Name, p.Price.StringFixed(2)),
			Selected: p.ID == selected,
		})
	}
	return out
}

// 詳細表示（ライトボックス）
type DetailView struct {
	ProductCard
	Quantity        string
	QuantityInvalid bool
}

// NewDetailView は未知のIDなら ok=false（何も開かない）。
func NewDetailView(c model.Catalog, productID string) (DetailView, bool) {
	p, ok := c.FindProduct(productID)
	if !ok {
		return DetailView{}, false
	}
	return DetailView{
		ProductCard: newProductCard(c, p),
		Quantity:    "1",
	}, true
}
