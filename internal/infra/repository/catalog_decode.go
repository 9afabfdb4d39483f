package repository

import (
	"encoding/json"
	"io"

	"storefront/internal/domain/model"

	"github.com/go-faster/errors"
)

// カタログJSON: {"products":[...], "categories":[...]}
// price は数値でも文字列でも受け付ける（decimal の UnmarshalJSON）。
func decodeCatalog(r io.Reader) (model.Catalog, error) {
	var c model.Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return model.Catalog{}, errors.Wrap(err, "decode catalog")
	}
	if c.Products == nil {
		c.Products = []model.Product{}
	}
	if c.Categories == nil {
		c.Categories = []model.Category{}
	}
	return c, nil
}
