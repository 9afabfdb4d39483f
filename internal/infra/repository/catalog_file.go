package repository

import (
	"context"
	"os"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/go-faster/errors"
)

// ローカルの静的ファイルからカタログを読む。
type CatalogFileSource struct {
	path string
}

// DI
func NewCatalogFileSource(path string) *CatalogFileSource {
	return &CatalogFileSource{path: path}
}

func (s *CatalogFileSource) Load(ctx context.Context) (model.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return model.Catalog{}, err
	}

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return model.Catalog{}, errors.Wrapf(repo.ErrNotFound, "open catalog file %s", s.path)
	}
	if err != nil {
		return model.Catalog{}, errors.Wrap(err, "open catalog file")
	}
	defer f.Close()

	return decodeCatalog(f)
}
