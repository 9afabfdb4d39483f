package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 静的カタログの取得だけを約束。
type CatalogSource interface {
	Load(ctx context.Context) (model.Catalog, error)
}
