package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

var ErrCatalogUnavailable = errors.New("catalog unavailable")

type CatalogStatus string

const (
	CatalogNotLoaded CatalogStatus = "NOT_LOADED"
	CatalogReady     CatalogStatus = "READY"
	CatalogFailed    CatalogStatus = "FAILED"
)

// 画面のリトライ表示用
type CatalogState struct {
	Status   CatalogStatus `json:"status"`
	Error    string        `json:"error,omitempty"`
	LoadedAt time.Time     `json:"loaded_at,omitempty"`
}

// CatalogUsecase は読み込んだカタログを保持する。
// 読み込み成功時だけ丸ごと差し替える。
type CatalogUsecase struct {
	source repo.CatalogSource
	log    *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	catalog model.Catalog
	state   CatalogState
}

// DI
func NewCatalogUsecase(source repo.CatalogSource, log *slog.Logger, now func() time.Time) *CatalogUsecase {
	if log == nil {
		log = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &CatalogUsecase{
		source: source,
		log:    log,
		now:    now,
		state:  CatalogState{Status: CatalogNotLoaded},
	}
}

// Load はカタログを取得する。自動リトライはしない。
func (u *CatalogUsecase) Load(ctx context.Context) error {
	c, err := u.source.Load(ctx)
	if err == nil {
		err = c.Validate()
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if err != nil {
		u.state = CatalogState{Status: CatalogFailed, Error: "failed to load products"}
		u.log.ErrorContext(ctx, "catalog load failed", slog.String("error", err.Error()))
		return newHTTPErrorWithNotice(http.StatusServiceUnavailable, "catalog unavailable",
			"Failed to load products. Check your connection and try again.")
	}

	u.catalog = c
	u.state = CatalogState{Status: CatalogReady, LoadedAt: u.now()}
	u.log.InfoContext(ctx, "catalog loaded",
		slog.Int("products", len(c.Products)),
		slog.Int("categories", len(c.Categories)),
	)
	return nil
}

func (u *CatalogUsecase) State() CatalogState {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.state
}

// Snapshot は現在のカタログを返す（READY のときだけ）。
func (u *CatalogUsecase) Snapshot() (model.Catalog, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	if u.state.Status != CatalogReady {
		return model.Catalog{}, ErrCatalogUnavailable
	}
	return u.catalog, nil
}

func (u *CatalogUsecase) snapshotOrHTTPError() (model.Catalog, error) {
	c, err := u.Snapshot()
	if err != nil {
		return model.Catalog{}, NewHTTPError(http.StatusServiceUnavailable, "catalog unavailable")
	}
	return c, nil
}

type ProductListOutput struct {
	Category string          `json:"category"`
	Items    []model.Product `json:"items"`
}

// ListProducts はカテゴリで絞り込む。空文字は "all"。
func (u *CatalogUsecase) ListProducts(ctx context.Context, categoryID string) (ProductListOutput, error) {
	c, err := u.snapshotOrHTTPError()
	if err != nil {
		return ProductListOutput{}, err
	}
	if categoryID == "" {
		categoryID = model.AllCategories
	}
	return ProductListOutput{
		Category: categoryID,
		Items:    c.Filter(categoryID),
	}, nil
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, productID string) (model.Product, error) {
	c, err := u.snapshotOrHTTPError()
	if err != nil {
		return model.Product{}, err
	}
	p, ok := c.FindProduct(productID)
	if !ok {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	return p, nil
}
