package repository

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/go-faster/errors"
)

// 静的ファイル（catalog.json）をHTTPで取得する。
// タイムアウトは付けない。中断は ctx のみ。
type CatalogHTTPSource struct {
	url    string
	client *http.Client
}

// DI
func NewCatalogHTTPSource(url string, client *http.Client) *CatalogHTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &CatalogHTTPSource{url: url, client: client}
}

func (s *CatalogHTTPSource) Load(ctx context.Context) (model.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return model.Catalog{}, errors.Wrap(err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return model.Catalog{}, errors.Wrap(err, "fetch catalog")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return model.Catalog{}, errors.Wrap(repo.ErrNotFound, "fetch catalog")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.Catalog{}, errors.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	return decodeCatalog(resp.Body)
}
