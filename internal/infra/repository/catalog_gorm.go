package repository

import (
	"context"

	"storefront/internal/domain/model"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
)

// categories / products テーブルからカタログを読む。
type CatalogGormSource struct {
	db *gorm.DB
}

// DI
func NewCatalogGormSource(db *gorm.DB) *CatalogGormSource {
	return &CatalogGormSource{db: db}
}

func (s *CatalogGormSource) Load(ctx context.Context) (model.Catalog, error) {
	var c model.Catalog

	//同じスナップショットで読むためトランザクション
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("position asc").Order("id asc").Find(&c.Categories).Error; err != nil {
			return errors.Wrap(err, "list categories")
		}
		if err := tx.Order("position asc").Order("id asc").Find(&c.Products).Error; err != nil {
			return errors.Wrap(err, "list products")
		}
		return nil
	})
	if err != nil {
		return model.Catalog{}, err
	}

	if c.Products == nil {
		c.Products = []model.Product{}
	}
	if c.Categories == nil {
		c.Categories = []model.Category{}
	}
	return c, nil
}
